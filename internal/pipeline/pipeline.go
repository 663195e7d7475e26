// Package pipeline orchestrates sorting many images: scan a directory,
// sort each file on a bounded worker pool, and write the results under
// an output directory.
package pipeline

import (
	"fmt"
	"image"
	"os"
	"runtime"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/g-s-k/psort/internal/heuristic"
	"github.com/g-s-k/psort/internal/sorter"
)

// Config holds all parameters for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Heuristic heuristic.Heuristic
	Options   sorter.Options
	Vertical  bool
	Workers   int
	Verbose   bool
	// HashNames switches output filenames to content-addressed form.
	HashNames bool
}

// Pipeline runs a batch of sorts.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{cfg: cfg}
}

// SortImage applies the row sorter to a whole image, handling the
// vertical orientation by transposing around the row pass. The returned
// image may be a new buffer when a rotation was involved.
func SortImage(img *image.NRGBA, h heuristic.Heuristic, o sorter.Options, vertical bool, workers int, progress func(rowsDone int)) *image.NRGBA {
	if vertical {
		img = imaging.Rotate270(img)
	}
	sorter.Image(img, h, o, workers, progress)
	if vertical {
		img = imaging.Rotate90(img)
	}
	return img
}

// Summary aggregates the outcome of a batch run.
type Summary struct {
	Sorted      []Output
	Failed      int
	InputBytes  int64
	OutputBytes int64
}

// Output describes one written result.
type Output struct {
	Source  Source
	RelPath string
	Size    int64
}

// Run scans the input directory and sorts everything it finds. Partial
// failures are reported to stderr but only an all-failed batch is an
// error.
func (p *Pipeline) Run() (*Summary, error) {
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}

	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[psort] found %d images\n", len(sources))
	}

	results := make([]fileResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{} // acquire
			defer func() { <-sem }() // release

			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[psort] sorting: %s\n", s.RelPath)
			}

			// Files already saturate the pool; sort rows serially.
			results[idx] = processFile(s, p.cfg)
		}(i, src)
	}
	wg.Wait()

	summary := &Summary{}
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		summary.Sorted = append(summary.Sorted, r.out)
		summary.InputBytes += r.out.Source.Size
		summary.OutputBytes += r.out.Size
	}
	summary.Failed = len(errs)

	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[psort] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to sort", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[psort] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	return summary, nil
}
