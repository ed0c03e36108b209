// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/vinylpress/vinylpress/audio"
)

// Player loops audio buffers on the default output device. The
// underlying device context can only be opened once per process, so all
// Players share it and its sample rate.
type Player struct {
	ctx  *oto.Context
	rate int

	mu sync.Mutex
	// voices keeps started players reachable until Stop.
	voices []*oto.Player
}

var (
	shared     *oto.Context
	sharedRate int
	sharedErr  error
	sharedOnce sync.Once
)

func device(sampleRate int) (*oto.Context, error) {
	sharedOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			sharedErr = fmt.Errorf("opening audio device: %w", err)
			return
		}
		<-ready
		shared, sharedRate = ctx, sampleRate
	})
	if sharedErr != nil {
		return nil, sharedErr
	}
	if sharedRate != sampleRate {
		return nil, fmt.Errorf("%d Hz requested, device at %d Hz: %w", sampleRate, sharedRate, ErrRateMismatch)
	}
	return shared, nil
}

// New opens the output device at sampleRate, or attaches to it if an
// earlier Player opened it at the same rate.
func New(sampleRate int) (*Player, error) {
	if sampleRate <= 0 {
		return nil, audio.ErrInvalidRate
	}
	ctx, err := device(sampleRate)
	if err != nil {
		return nil, err
	}
	return &Player{ctx: ctx, rate: sampleRate}, nil
}

func (p *Player) SampleRate() int { return p.rate }

// Play starts buf looping and returns at once. Buffers at another rate
// are resampled first. Playing again layers a new voice over the old
// ones; Stop silences them all.
func (p *Player) Play(buf *audio.Buffer) error {
	samples, err := p.prepare(buf)
	if err != nil {
		return err
	}

	voice := p.ctx.NewPlayer(newLoop(samples))
	voice.Play()

	p.mu.Lock()
	p.voices = append(p.voices, voice)
	p.mu.Unlock()
	return nil
}

// Playing reports how many voices are sounding.
func (p *Player) Playing() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, v := range p.voices {
		if v.IsPlaying() {
			n++
		}
	}
	return n
}

// Stop pauses and releases every voice started by p. It returns the
// first error a voice reported while playing.
func (p *Player) Stop() error {
	p.mu.Lock()
	voices := p.voices
	p.voices = nil
	p.mu.Unlock()

	var first error
	for _, v := range voices {
		v.Pause()
		if err := v.Err(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (p *Player) prepare(buf *audio.Buffer) ([]float32, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if buf.SampleRate == p.rate {
		return buf.Samples, nil
	}

	out, err := audio.ReadAll(audio.NewResampler(buf.NewReader(), p.rate))
	if err != nil {
		return nil, fmt.Errorf("resampling %d Hz to %d Hz: %w", buf.SampleRate, p.rate, err)
	}
	if out.Len() == 0 {
		return nil, audio.ErrEmptyBuffer
	}
	return out.Samples, nil
}
