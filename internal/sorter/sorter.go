// Package sorter implements the pixel-sorting core: each row of an image
// is partitioned into alternating sortable and untouched runs, and every
// sortable run is reordered in place by a heuristic scalar. Rows are
// independent, so whole-image sorting fans out across a bounded worker
// pool.
package sorter

import (
	"image"
	"image/color"
	"runtime"
	"sort"
	"sync"

	"github.com/g-s-k/psort/internal/heuristic"
)

// Options selects which pixels are sortable and how runs are ordered.
// Min and Max bound the heuristic value of sortable pixels (closed
// interval); Invert complements that membership test. Reverse sorts runs
// descending. MaskAlpha excludes fully transparent pixels from sorting.
type Options struct {
	Min       uint8
	Max       uint8
	Invert    bool
	Reverse   bool
	MaskAlpha bool
}

// sortable reports whether a pixel belongs to the current sortable run.
func (o Options) sortable(h heuristic.Heuristic, px color.NRGBA) bool {
	if o.MaskAlpha && px.A == 0 {
		return false
	}
	v := h.Value(px)
	return (v >= o.Min && v <= o.Max) != o.Invert
}

// Row sorts one row in place. The row is scanned once left to right:
// maximal runs of sortable pixels are ordered by the heuristic value,
// pixels between runs keep their value and position. The multiset of
// pixels never changes. Tie order within a run is unspecified.
func Row(row []color.NRGBA, h heuristic.Heuristic, o Options) {
	for pos := 0; pos < len(row); {
		end := pos
		for end < len(row) && o.sortable(h, row[end]) {
			end++
		}

		run := row[pos:end]
		sort.Slice(run, func(i, j int) bool {
			if o.Reverse {
				return h.Value(run[j]) < h.Value(run[i])
			}
			return h.Value(run[i]) < h.Value(run[j])
		})
		pos = end

		// Skip ahead to the next sortable pixel.
		for pos < len(row) && !o.sortable(h, row[pos]) {
			pos++
		}
	}
}

// Image sorts every row of img in place. Rows are distributed over a
// bounded pool of workers (0 or negative means NumCPU); each worker owns
// a disjoint slice of the flat pixel buffer, so no locking is needed on
// the image itself. progress, if non-nil, is called once per completed
// row with the running total.
func Image(img *image.NRGBA, h heuristic.Heuristic, o Options, workers int, progress func(rowsDone int)) {
	bounds := img.Bounds()
	w, ht := bounds.Dx(), bounds.Dy()
	if w == 0 || ht == 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// One flat row-major buffer; row y is the subslice [y*w, (y+1)*w).
	pixels := fromNRGBA(img)

	var (
		wg   sync.WaitGroup
		sem  = make(chan struct{}, workers)
		mu   sync.Mutex
		done int
	)
	for y := 0; y < ht; y++ {
		wg.Add(1)
		go func(row []color.NRGBA) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			Row(row, h, o)

			if progress != nil {
				mu.Lock()
				done++
				progress(done)
				mu.Unlock()
			}
		}(pixels[y*w : (y+1)*w])
	}
	wg.Wait()

	toNRGBA(pixels, img)
}

// fromNRGBA flattens the image into a row-major pixel slice.
func fromNRGBA(img *image.NRGBA) []color.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]color.NRGBA, w*h)
	for y := 0; y < h; y++ {
		off := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		row := img.Pix[off : off+w*4]
		for x := 0; x < w; x++ {
			pixels[y*w+x] = color.NRGBA{
				R: row[x*4],
				G: row[x*4+1],
				B: row[x*4+2],
				A: row[x*4+3],
			}
		}
	}
	return pixels
}

// toNRGBA writes the flat pixel slice back into the image.
func toNRGBA(pixels []color.NRGBA, img *image.NRGBA) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	for y := 0; y < h; y++ {
		off := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		row := img.Pix[off : off+w*4]
		for x := 0; x < w; x++ {
			px := pixels[y*w+x]
			row[x*4] = px.R
			row[x*4+1] = px.G
			row[x*4+2] = px.B
			row[x*4+3] = px.A
		}
	}
}
