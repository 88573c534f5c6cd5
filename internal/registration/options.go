package registration

import "fmt"

const (
	// DefaultSizeTheta is the default number of angular sectors of the
	// log-polar raster (one third of a degree per sector).
	DefaultSizeTheta = 1080

	// DefaultSizeRho is the default number of radial rings of the log-polar
	// raster.
	DefaultSizeRho = 360

	// translationThreshold is the squared displacement length below which a
	// correction is skipped.
	translationThreshold = 0.001

	// rotationThreshold is the angle magnitude in radians below which a
	// correction is skipped.
	rotationThreshold = 0.001
)

// Options configures a Registrar. The log-polar resolution is fixed for the
// lifetime of a Registrar.
type Options struct {
	// SizeTheta is the number of angular sectors in the log-polar raster.
	SizeTheta int

	// SizeRho is the number of radial rings in the log-polar raster.
	SizeRho int

	// Parallel estimates channels (and series frames) concurrently.
	// Results are identical either way.
	Parallel bool
}

// DefaultOptions returns the 1080x360 log-polar resolution with parallel
// channel estimation enabled.
func DefaultOptions() Options {
	return Options{
		SizeTheta: DefaultSizeTheta,
		SizeRho:   DefaultSizeRho,
		Parallel:  true,
	}
}

// Validate checks the log-polar resolution.
func (o Options) Validate() error {
	if o.SizeTheta <= 0 || o.SizeRho <= 0 {
		return fmt.Errorf("%w: log-polar resolution %dx%d must be positive", ErrInvalidArgument, o.SizeTheta, o.SizeRho)
	}
	return nil
}

// Registrar runs the rotation estimator and the multi-channel corrections
// with a fixed log-polar resolution.
type Registrar struct {
	opts Options
}

// New validates opts and returns a Registrar.
func New(opts Options) (*Registrar, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Registrar{opts: opts}, nil
}

// Options returns the options the Registrar was built with.
func (r *Registrar) Options() Options {
	return r.opts
}
