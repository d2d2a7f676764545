package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/homotopylabs/infiniloom/internal/compress"
	"github.com/homotopylabs/infiniloom/internal/detect"
)

var (
	compressLevel    string
	compressLanguage string
	compressOutput   string
)

var compressCmd = &cobra.Command{
	Use:   "compress [FILE]",
	Short: "Apply lossy compression to source text",
	Long: `Compress reduces source text for context packing. Levels range from
none (identity) through minimal, balanced and aggressive up to
extreme, which keeps only imports and definition lines. The language
is detected from the filename unless --language is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompress,
}

func init() {
	compressCmd.Flags().StringVarP(&compressLevel, "level", "l", "balanced", "Compression level: none, minimal, balanced, aggressive, extreme")
	compressCmd.Flags().StringVar(&compressLanguage, "language", "", "Source language (python, javascript, typescript, rust, go, java, ...)")
	compressCmd.Flags().StringVarP(&compressOutput, "output", "o", "", "Write the result to a file instead of stdout")
}

func runCompress(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	name := ""
	if len(args) == 1 && args[0] != "-" {
		name = args[0]
		data, err = os.ReadFile(name)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	lang := compress.Unknown
	if compressLanguage != "" {
		lang = compress.LanguageFromString(compressLanguage)
	} else if name != "" {
		if tag, ok := detect.LanguageForFile(name); ok {
			lang = compress.LanguageFromString(tag)
		}
	}

	out := compress.Compress(string(data), compress.LevelFromString(compressLevel), lang)

	if compressOutput != "" {
		if err := os.WriteFile(compressOutput, []byte(out), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	} else {
		fmt.Print(out)
	}

	fmt.Fprintf(os.Stderr, "%s -> %s (%.0f%% of original)\n",
		humanize.Bytes(uint64(len(data))), humanize.Bytes(uint64(len(out))), ratio(len(out), len(data)))
	return nil
}

func ratio(out, in int) float64 {
	if in == 0 {
		return 100
	}
	return float64(out) / float64(in) * 100
}
