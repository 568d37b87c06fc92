package emul8

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/go-audio/audio"
	"github.com/go-audio/generator"
	"github.com/gordonklaus/portaudio"
	"github.com/retroenv/retrogolib/log"
)

const (
	bufferSize int     = 512
	note       float64 = 440.0
)

var (
	format = audio.FormatMono44100
)

// Beep plays a sine tone on the default output device. It is the Speaker
// used for the sound timer.
type Beep struct {
	logger  *log.Logger
	wg      sync.WaitGroup
	beeping atomic.Bool
}

// NewBeep returns a stopped Beep that reports stream errors to logger.
func NewBeep(logger *log.Logger) *Beep {
	return &Beep{logger: logger}
}

// Start opens the output stream and plays until Stop is called or ctx is
// done. Calling Start while playing does nothing.
func (b *Beep) Start(ctx context.Context) error {
	if !b.beeping.CompareAndSwap(false, true) {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		b.beeping.Store(false)
		return err
	}

	buffer := &audio.FloatBuffer{
		Data:   make([]float64, bufferSize),
		Format: format,
	}

	osc := generator.NewOsc(generator.WaveSine, note, buffer.Format.SampleRate)
	osc.Amplitude = 1

	b.wg.Go(func() {
		defer func() {
			_ = portaudio.Terminate()
		}()

		out := make([]float32, bufferSize)

		stream, err := portaudio.OpenDefaultStream(0, 1, float64(buffer.Format.SampleRate), len(out), &out)
		if err != nil {
			b.logger.Error("Opening audio stream failed", err)
			return
		}
		defer func() {
			_ = stream.Close()
		}()

		if err := stream.Start(); err != nil {
			b.logger.Error("Starting audio stream failed", err)
			return
		}
		defer func() {
			_ = stream.Stop()
		}()

		for b.beeping.Load() && ctx.Err() == nil {
			if err := osc.Fill(buffer); err != nil {
				b.logger.Warn("Filling audio buffer failed", log.Err(err))
			}

			f64Tof32(out, buffer.Data)

			if err := stream.Write(); err != nil {
				b.logger.Warn("Writing to audio stream failed", log.Err(err))
			}
		}
	})

	return nil
}

// Stop silences the tone and waits for the stream to close.
func (b *Beep) Stop() {
	if !b.beeping.CompareAndSwap(true, false) {
		return
	}
	b.wg.Wait()
}

func f64Tof32(dst []float32, src []float64) {
	for i := range src {
		dst[i] = float32(src[i])
	}
}
