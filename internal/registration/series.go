package registration

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/image-registration-mcp/internal/raster"
)

// Mode selects which corrections AlignSeries performs.
type Mode int

const (
	// ModeTranslation corrects translation only.
	ModeTranslation Mode = iota
	// ModeRotation corrects rotation only.
	ModeRotation
	// ModeBoth corrects translation, then rotation.
	ModeBoth
)

// ParseMode parses "translation", "rotation" or "both" (case-insensitive).
// The empty string yields ModeTranslation.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "translation":
		return ModeTranslation, nil
	case "rotation":
		return ModeRotation, nil
	case "both":
		return ModeBoth, nil
	default:
		return 0, fmt.Errorf("%w: unknown alignment mode %q", ErrInvalidArgument, s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeTranslation:
		return "translation"
	case ModeRotation:
		return "rotation"
	case ModeBoth:
		return "both"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// FrameReport describes the correction applied to one frame of a series.
type FrameReport struct {
	Index        int          `json:"index"`
	Reference    bool         `json:"reference"`
	Displacement Displacement `json:"displacement"`
	Angle        float64      `json:"angle"`
	Changed      bool         `json:"changed"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
}

// AlignSeries aligns every frame of a series onto frames[reference].
//
// Translation is estimated and applied first (ModeTranslation, ModeBoth),
// then rotation (ModeRotation, ModeBoth). With preserveSize false a
// translated frame grows, and its displacement is handed to FindRotation so
// the reference can be re-framed to match. The reference frame is returned
// unchanged. Frames are processed concurrently when Options.Parallel is set.
func (r *Registrar) AlignSeries(frames []*raster.Image, reference, channel int, mode Mode, preserveSize bool) ([]*raster.Image, []FrameReport, error) {
	if reference < 0 || reference >= len(frames) {
		return nil, nil, fmt.Errorf("%w: reference frame %d out of range [0,%d)", ErrInvalidArgument, reference, len(frames))
	}
	for i, f := range frames {
		if f == nil {
			return nil, nil, fmt.Errorf("%w: frame %d is nil", ErrInvalidArgument, i)
		}
	}

	ref := frames[reference]
	out := make([]*raster.Image, len(frames))
	reports := make([]FrameReport, len(frames))

	align := func(i int) error {
		if i == reference {
			out[i] = ref
			reports[i] = FrameReport{Index: i, Reference: true, Width: ref.Width, Height: ref.Height}
			return nil
		}
		img, rep, err := r.alignFrame(frames[i], ref, channel, mode, preserveSize)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		rep.Index = i
		out[i], reports[i] = img, rep
		return nil
	}

	if !r.opts.Parallel {
		for i := range frames {
			if err := align(i); err != nil {
				return nil, nil, err
			}
		}
		return out, reports, nil
	}

	var g errgroup.Group
	for i := range frames {
		i := i
		g.Go(func() error {
			return align(i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return out, reports, nil
}

func (r *Registrar) alignFrame(img, ref *raster.Image, channel int, mode Mode, preserveSize bool) (*raster.Image, FrameReport, error) {
	var rep FrameReport
	var previous *Displacement

	if mode == ModeTranslation || mode == ModeBoth {
		d, err := r.EstimateTranslation(img, ref, channel)
		if err != nil {
			return nil, rep, err
		}
		if NeedsTranslation(d) {
			img, err = ApplyTranslation(img, AllChannels, d, preserveSize)
			if err != nil {
				return nil, rep, err
			}
			rep.Displacement = d
			rep.Changed = true
			if !preserveSize {
				previous = &d
			}
		}
	}

	if mode == ModeRotation || mode == ModeBoth {
		angle, err := r.EstimateRotation(img, ref, channel, previous)
		if err != nil {
			return nil, rep, err
		}
		if NeedsRotation(angle) {
			img, err = ApplyRotation(img, AllChannels, angle, preserveSize)
			if err != nil {
				return nil, rep, err
			}
			rep.Angle = angle
			rep.Changed = true
		}
	}

	rep.Width, rep.Height = img.Width, img.Height
	return img, rep, nil
}
