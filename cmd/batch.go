package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/g-s-k/psort/internal/pipeline"
)

var (
	batchSort      sortFlags
	batchOutDir    string
	batchWorkers   int
	batchHashNames bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir>",
	Short: "Sort every image under a directory",
	Long: `Scans a directory tree for images (png, jpg, jpeg, gif, webp, bmp,
tiff), sorts each one with the same settings, and writes the results to
the output directory, mirroring the input layout.

With --hash-names output files are content-addressed: <name>.<hash>.<ext>`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchSort.register(batchCmd.Flags())
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "./psort_out", "output directory")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	batchCmd.Flags().BoolVar(&batchHashNames, "hash-names", false, "content-addressed output filenames")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	h, opts, vertical, err := batchSort.resolve(cmd.Flags())
	if err != nil {
		return err
	}

	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(batchOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	logVerbose("input:     %s", absInput)
	logVerbose("output:    %s", absOutput)
	logVerbose("heuristic: %s (range %d..%d, invert=%v, reverse=%v, vertical=%v)",
		h, opts.Min, opts.Max, opts.Invert, opts.Reverse, vertical)

	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Heuristic: h,
		Options:   opts,
		Vertical:  vertical,
		Workers:   batchWorkers,
		Verbose:   verbose,
		HashNames: batchHashNames,
	})

	summary, err := p.Run()
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	printBatchReport(summary, h.String(), time.Since(start))
	return nil
}

func printBatchReport(s *pipeline.Summary, heuristicName string, elapsed time.Duration) {
	fmt.Println()
	fmt.Printf("  Sorted:      %d images (%s)\n", len(s.Sorted), heuristicName)
	if s.Failed > 0 {
		fmt.Printf("  Failed:      %d images\n", s.Failed)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(s.InputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(s.OutputBytes))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
