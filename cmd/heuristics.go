package cmd

import (
	"fmt"
	"image/color"

	"github.com/spf13/cobra"

	"github.com/g-s-k/psort/internal/heuristic"
)

var heuristicsCmd = &cobra.Command{
	Use:   "heuristics",
	Short: "List the available sort heuristics",
	Long: `Lists every heuristic name accepted by --heuristic, with the value it
assigns to a few reference pixels.`,
	Args: cobra.NoArgs,
	RunE: runHeuristics,
}

func init() {
	rootCmd.AddCommand(heuristicsCmd)
}

func runHeuristics(_ *cobra.Command, _ []string) error {
	samples := []struct {
		name string
		px   color.NRGBA
	}{
		{"red", color.NRGBA{R: 255, A: 255}},
		{"green", color.NRGBA{G: 255, A: 255}},
		{"blue", color.NRGBA{B: 255, A: 255}},
		{"gray", color.NRGBA{R: 128, G: 128, B: 128, A: 255}},
	}

	fmt.Printf("  %-12s", "heuristic")
	for _, s := range samples {
		fmt.Printf(" %6s", s.name)
	}
	fmt.Println()

	for _, name := range heuristic.Names() {
		h, err := heuristic.Parse(name)
		if err != nil {
			return err
		}
		fmt.Printf("  %-12s", name)
		for _, s := range samples {
			fmt.Printf(" %6d", h.Value(s.px))
		}
		fmt.Println()
	}
	return nil
}
