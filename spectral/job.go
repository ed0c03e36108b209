// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"context"
	"image"
)

// Job is a spectrogram being rendered in the background.
type Job struct {
	done chan struct{}
	img  *image.RGBA
	err  error
}

func start(ctx context.Context, render func(context.Context) (*image.RGBA, error)) *Job {
	j := &Job{done: make(chan struct{})}

	go func() {
		defer close(j.done)
		j.img, j.err = render(ctx)
	}()

	return j
}

// Done is closed once the raster is fully painted or rendering failed.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the job finishes and returns its raster.
func (j *Job) Wait() (*image.RGBA, error) {
	<-j.done
	return j.img, j.err
}
