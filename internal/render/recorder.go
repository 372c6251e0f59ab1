package render

import (
	"errors"

	"github.com/litescript/ls-starfield/internal/starfield"
)

// Recorder is a starfield.DrawTarget that remembers the last batch and
// forwards everything to Next, which may be nil.
type Recorder struct {
	Next starfield.DrawTarget

	uploaded int
	frames   int
	last     starfield.Batch
}

// Upload records the buffer size and forwards the buffer.
func (r *Recorder) Upload(vertices []starfield.GpuVertex) error {
	r.uploaded = len(vertices)
	if r.Next == nil {
		return nil
	}
	return r.Next.Upload(vertices)
}

// Draw keeps a copy of b and forwards it.
func (r *Recorder) Draw(b starfield.Batch) error {
	r.frames++
	r.last = b
	r.last.Ranges = append([]starfield.DrawRange(nil), b.Ranges...)
	if r.Next == nil {
		return nil
	}
	return r.Next.Draw(b)
}

// Last returns the most recent batch. Its ranges are owned by the recorder.
func (r *Recorder) Last() starfield.Batch { return r.last }

// Uploaded returns the size of the last uploaded buffer.
func (r *Recorder) Uploaded() int { return r.uploaded }

// Frames returns the number of draws seen.
func (r *Recorder) Frames() int { return r.frames }

// Tee is a starfield.DrawTarget that forwards to every target in order.
type Tee []starfield.DrawTarget

// Upload forwards the buffer to every target and joins their errors.
func (t Tee) Upload(vertices []starfield.GpuVertex) error {
	var errs []error
	for _, target := range t {
		if err := target.Upload(vertices); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Draw forwards b to every target and joins their errors.
func (t Tee) Draw(b starfield.Batch) error {
	var errs []error
	for _, target := range t {
		if err := target.Draw(b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
