// SPDX-License-Identifier: EPL-2.0

package vinylpress

import (
	"fmt"

	"github.com/vinylpress/vinylpress/audio"
)

// LoadAudio drains src into a mono buffer at cfg.SampleRate, ready for
// Analyze or playback. Sources already at the target rate skip the
// resampler. src is closed on return.
func LoadAudio(src audio.Source, cfg Config) (*audio.Buffer, error) {
	defer src.Close()

	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, cfg.SampleRate)
	}
	if src.SampleRate() <= 0 {
		return nil, audio.ErrInvalidRate
	}
	if src.Channels() <= 0 {
		return nil, fmt.Errorf("source has %d channels", src.Channels())
	}

	var pipe audio.Source = src
	if src.SampleRate() != cfg.SampleRate {
		pipe = audio.NewResampler(pipe, cfg.SampleRate)
	}
	if pipe.Channels() != 1 {
		pipe = audio.NewMonoMixer(pipe)
	}

	buf, err := audio.ReadAll(pipe)
	if err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, audio.ErrEmptyBuffer
	}
	return buf, nil
}
