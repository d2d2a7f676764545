package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/homotopylabs/infiniloom/internal/remote"
	"github.com/homotopylabs/infiniloom/internal/scan"
	"github.com/homotopylabs/infiniloom/internal/token"
)

var (
	scanHidden    bool
	scanNoIgnore  bool
	scanMaxSize   int64
	scanThreads   int
	scanSerial    bool
	scanInclude   []string
	scanExclude   []string
	scanClipboard bool
	scanNoTokens  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [PATH]",
	Short: "Scan a local tree or remote repository and summarize it",
	Long: `Scan walks a directory, applying ignore rules and binary detection,
and prints the files it would include as model context along with
per-model token estimates. PATH may also be a remote repository
(https URL, git@ URL, or owner/repo shorthand), which is cloned
shallowly into a temporary directory first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVarP(&scanHidden, "hidden", "H", false, "Include hidden files and directories")
	viper.BindPFlag("hidden", scanCmd.Flags().Lookup("hidden"))
	scanCmd.Flags().BoolVar(&scanNoIgnore, "no-ignore", false, "Don't respect the root .gitignore")
	viper.BindPFlag("no_ignore", scanCmd.Flags().Lookup("no-ignore"))
	scanCmd.Flags().Int64VarP(&scanMaxSize, "max-size", "s", 0, "Maximum file size in bytes (0 for the built-in cap)")
	viper.BindPFlag("max_size", scanCmd.Flags().Lookup("max-size"))
	scanCmd.Flags().IntVarP(&scanThreads, "threads", "t", 0, "Worker count for the parallel walk (0 for auto)")
	viper.BindPFlag("threads", scanCmd.Flags().Lookup("threads"))
	scanCmd.Flags().BoolVar(&scanSerial, "serial", false, "Walk serially instead of with the worker pool")
	scanCmd.Flags().StringSliceVarP(&scanInclude, "include", "i", nil, "Only include these extensions (e.g. go,py)")
	scanCmd.Flags().StringSliceVarP(&scanExclude, "exclude", "e", nil, "Exclude these extensions")
	scanCmd.Flags().BoolVarP(&scanClipboard, "clipboard", "c", false, "Copy the file list to the clipboard")
	scanCmd.Flags().BoolVar(&scanNoTokens, "no-tokens", false, "Skip token estimation")
}

func runScan(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	// A remote reference is cloned first and scanned like any local
	// tree. An existing local path always wins over the owner/repo
	// shorthand.
	if _, err := os.Stat(target); err != nil && remote.IsRemoteURL(target) {
		repo, err := remote.Parse(target)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Cloning %s...\n", repo.URL)
		dir, err := repo.Clone(cmd.Context(), "")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)
		target = dir
	}

	opts := scan.DefaultOptions().
		WithIncludeHidden(scanHidden).
		WithRespectIgnore(!scanNoIgnore).
		WithExtensions(scanInclude, scanExclude).
		WithWorkers(scanThreads).
		WithLogger(logger)
	if scanMaxSize > 0 {
		opts.WithMaxFileSize(scanMaxSize)
	}

	s := scan.New(opts)
	var err error
	if scanSerial {
		err = s.Walk(target)
	} else {
		err = s.WalkParallel(target)
	}
	if err != nil {
		return err
	}

	files := s.Files()
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })

	est := token.NewEstimator()
	defer est.Close()

	var totals token.Counts
	var list strings.Builder
	for _, f := range files {
		line := fmt.Sprintf("%s  (%s", f.RelPath, humanize.Bytes(uint64(f.Size)))
		if !scanNoTokens {
			counts := est.EstimateAll(string(f.Content))
			totals.Add(counts)
			line += fmt.Sprintf(", ~%d tokens", counts.Claude)
		}
		line += ")\n"
		list.WriteString(line)
	}
	fmt.Print(list.String())

	snap := s.Stats().Snapshot()
	fmt.Println("\n--- Summary ---")
	fmt.Printf("Files: %d (%s)\n", snap.FilesKept, humanize.Bytes(snap.BytesKept))
	fmt.Printf("Skipped: %d ignored, %d hidden, %d binary, %d oversize, %d unreadable\n",
		snap.SkippedIgnored, snap.SkippedHidden, snap.SkippedBinary, snap.SkippedOversize, snap.SkippedUnread)
	if !scanNoTokens {
		fmt.Printf("Tokens: claude ~%d, gpt-4o ~%d, gpt-4 ~%d, gemini ~%d, llama ~%d\n",
			totals.Claude, totals.GPT4o, totals.GPT4, totals.Gemini, totals.Llama)
	}
	fmt.Printf("Elapsed: %s\n", snap.Elapsed)

	if scanClipboard {
		if err := clipboard.WriteAll(list.String()); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to clipboard: %v\n", err)
		} else {
			fmt.Println("File list copied to clipboard.")
		}
	}
	return nil
}
