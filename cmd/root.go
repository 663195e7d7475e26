package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "psort",
	Short: "Sort the pixels in an image",
	Long: `psort — glitch-art pixel sorting.

Contiguous runs of pixels whose heuristic value (luma, hue, saturation,
channel values, ...) falls inside a configured range are reordered by
that value, row by row. Sort single files with "run" or whole
directories with "batch".`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"psort %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[psort] "+format+"\n", args...)
	}
}
