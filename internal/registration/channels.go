package registration

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// forEachChannel runs fn for every channel in [lo, hi). With Parallel set the
// calls run concurrently; fn must only write to its own slot.
func (r *Registrar) forEachChannel(lo, hi int, fn func(c int) error) error {
	if !r.opts.Parallel || hi-lo < 2 {
		for c := lo; c < hi; c++ {
			if err := fn(c); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	for c := lo; c < hi; c++ {
		c := c
		g.Go(func() error {
			return fn(c)
		})
	}
	return g.Wait()
}

// mean averages estimates stored in channel order, so the result does not
// depend on goroutine scheduling.
func mean(values []float64) float64 {
	return stat.Mean(values, nil)
}
