package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/homotopylabs/infiniloom/internal/token"
)

var (
	tokensModel  string
	tokensExact  bool
	tokensHFFile string
	tokensMerges string
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [FILE]",
	Short: "Estimate token counts for a file or stdin",
	Long: `Tokens estimates how many tokens the input costs per model. The
default is a fast heuristic; --exact switches OpenAI models to the
real tiktoken encoding, --tokenizer-file loads a HuggingFace
tokenizer.json, and --merges loads a BPE merges.txt for exact
counting against a custom vocabulary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().StringVarP(&tokensModel, "model", "m", "", "Report a single model (claude, gpt-4o, gpt-4, gemini, llama, codellama)")
	tokensCmd.Flags().BoolVar(&tokensExact, "exact", false, "Use the exact tiktoken encoding for OpenAI models")
	tokensCmd.Flags().StringVar(&tokensHFFile, "tokenizer-file", "", "Path to a HuggingFace tokenizer.json used as exact backend")
	tokensCmd.Flags().StringVar(&tokensMerges, "merges", "", "Path to a BPE merges.txt for exact vocabulary counting")
}

func runTokens(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	text := string(data)

	est := token.NewEstimator()
	defer est.Close()

	if tokensMerges != "" {
		merges, err := os.ReadFile(tokensMerges)
		if err != nil {
			return fmt.Errorf("reading merges file: %w", err)
		}
		vocab := token.NewVocabulary(nil)
		if err := vocab.ParseMerges(string(merges)); err != nil {
			return err
		}
		est.WithVocabulary(vocab)
	}

	model := token.Claude
	if tokensModel != "" {
		m, ok := token.ModelFromName(tokensModel)
		if !ok {
			return fmt.Errorf("unknown model %q", tokensModel)
		}
		model = m
	}

	if tokensHFFile != "" {
		backend, err := token.NewHFCounterFromFile(tokensHFFile)
		if err != nil {
			return err
		}
		est.WithBackend(model, backend)
	} else if tokensExact {
		targets := []token.Model{token.GPT4o, token.GPT4}
		if tokensModel != "" {
			targets = []token.Model{model}
		}
		for _, m := range targets {
			backend, err := token.CachedTiktokenCounter(m.String())
			if err != nil {
				logger.Sugar().Debugf("no exact encoding for %s: %v", m, err)
				continue
			}
			est.WithBackend(m, backend)
		}
	}

	if tokensModel != "" {
		c := est.Estimate(text, model)
		fmt.Printf("%s: %d tokens (confidence %.2f)\n", model, c.Tokens, c.Confidence)
		return nil
	}

	counts := est.EstimateAll(text)
	fmt.Printf("claude:  %d\n", counts.Claude)
	fmt.Printf("gpt-4o:  %d\n", counts.GPT4o)
	fmt.Printf("gpt-4:   %d\n", counts.GPT4)
	fmt.Printf("gemini:  %d\n", counts.Gemini)
	fmt.Printf("llama:   %d\n", counts.Llama)
	return nil
}
