package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/g-s-k/psort/internal/imageio"
	"github.com/g-s-k/psort/internal/pipeline"
)

var (
	runSort    sortFlags
	runOutput  string
	runWorkers int
)

var runCmd = &cobra.Command{
	Use:   "run <image>",
	Short: "Sort the pixels of a single image",
	Long: `Decodes an image (png, jpg, gif, webp, bmp, tiff), sorts its pixels
row by row (or column by column with --vertical), and writes the result.
Without --output the result lands next to the input as <name>_1.<ext>.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runSort.register(runCmd.Flags())
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "output file (default: <name>_1.<ext>)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "parallel row workers (0 = NumCPU)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	input := args[0]
	start := time.Now()

	h, opts, vertical, err := runSort.resolve(cmd.Flags())
	if err != nil {
		return err
	}

	logVerbose("opening image at %s", input)
	img, format, err := imageio.Decode(input)
	if err != nil {
		return err
	}
	logVerbose("decoded %s (%dx%d, %s)", input, img.Bounds().Dx(), img.Bounds().Dy(), format)

	axis := "rows"
	total := img.Bounds().Dy()
	if vertical {
		axis = "columns"
		total = img.Bounds().Dx()
	}

	// Redraw at ~2% steps so huge images don't spam the terminal.
	step := total / 50
	if step < 1 {
		step = 1
	}
	progress := func(done int) {
		if done%step == 0 || done == total {
			fmt.Fprintf(os.Stderr, "\rSorting %s: %4d/%d", axis, done, total)
		}
	}

	img = pipeline.SortImage(img, h, opts, vertical, runWorkers, progress)
	fmt.Fprintln(os.Stderr)

	output := runOutput
	if output == "" {
		output = imageio.DerivedPath(input)
	}

	logVerbose("saving file to %s", output)
	if err := imageio.Encode(output, img); err != nil {
		return err
	}

	fmt.Printf("Sorted %s by %s in %s -> %s\n", input, h, time.Since(start).Round(time.Millisecond), output)
	return nil
}
