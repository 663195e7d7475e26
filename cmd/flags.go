package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/g-s-k/psort/internal/heuristic"
	"github.com/g-s-k/psort/internal/preset"
	"github.com/g-s-k/psort/internal/sorter"
)

// sortFlags is the flag set shared by run and batch.
type sortFlags struct {
	heuristicName string
	minimum       uint8
	maximum       uint8
	invert        bool
	reverse       bool
	vertical      bool
	maskAlpha     bool
	presetPath    string
}

func (s *sortFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&s.heuristicName, "heuristic", "f", "luma", "sort heuristic to use")
	fs.Uint8VarP(&s.minimum, "minimum", "m", 0, "minimum value to sort")
	fs.Uint8VarP(&s.maximum, "maximum", "x", 255, "maximum value to sort")
	fs.BoolVarP(&s.invert, "invert", "i", false, "sort outside specified range rather than inside")
	fs.BoolVarP(&s.reverse, "reverse", "r", false, "reverse the sort direction")
	fs.BoolVarP(&s.vertical, "vertical", "t", false, "sort vertically instead of horizontally")
	fs.BoolVar(&s.maskAlpha, "mask-alpha", false, "don't sort pixels that have zero alpha")
	fs.StringVar(&s.presetPath, "preset", "", "YAML preset file (explicit flags override it)")
}

// resolve merges preset values (if any) with explicitly set flags and
// returns the effective sort configuration.
func (s *sortFlags) resolve(fs *pflag.FlagSet) (heuristic.Heuristic, sorter.Options, bool, error) {
	p := preset.Default()
	if s.presetPath != "" {
		var err error
		p, err = preset.Load(s.presetPath)
		if err != nil {
			return 0, sorter.Options{}, false, err
		}
	}

	if fs.Changed("heuristic") {
		p.Heuristic = s.heuristicName
	}
	if fs.Changed("minimum") {
		p.Minimum = s.minimum
	}
	if fs.Changed("maximum") {
		p.Maximum = s.maximum
	}
	if fs.Changed("invert") {
		p.Invert = s.invert
	}
	if fs.Changed("reverse") {
		p.Reverse = s.reverse
	}
	if fs.Changed("vertical") {
		p.Vertical = s.vertical
	}
	if fs.Changed("mask-alpha") {
		p.MaskAlpha = s.maskAlpha
	}

	h, err := heuristic.Parse(p.Heuristic)
	if err != nil {
		return 0, sorter.Options{}, false, fmt.Errorf("--heuristic: %w", err)
	}

	opts := sorter.Options{
		Min:       p.Minimum,
		Max:       p.Maximum,
		Invert:    p.Invert,
		Reverse:   p.Reverse,
		MaskAlpha: p.MaskAlpha,
	}
	return h, opts, p.Vertical, nil
}
