package emul8

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/chip8"
)

var keyMap = map[fyne.KeyName]uint8{
	fyne.Key1: 0x1, fyne.Key2: 0x2, fyne.Key3: 0x3, fyne.Key4: 0xC,
	fyne.KeyQ: 0x4, fyne.KeyW: 0x5, fyne.KeyE: 0x6, fyne.KeyR: 0xD,
	fyne.KeyA: 0x7, fyne.KeyS: 0x8, fyne.KeyD: 0x9, fyne.KeyF: 0xE,
	fyne.KeyZ: 0xA, fyne.KeyX: 0x0, fyne.KeyC: 0xB, fyne.KeyV: 0xF,
}

// imageRenderer paints every frame into a new RGBA image and hands it to
// show. An image is never written after it was shown, so the fyne render
// thread can read it without locking.
type imageRenderer struct {
	on, off color.Color
	show    func(*image.RGBA)
}

func newImageRenderer(show func(*image.RGBA)) *imageRenderer {
	return &imageRenderer{
		on:   color.White,
		off:  color.Black,
		show: show,
	}
}

func (r *imageRenderer) paint(frame *chip8.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height))
	for i, val := range frame {
		x, y := i%chip8.Width, i/chip8.Width
		c := r.off
		if val == 1 {
			c = r.on
		}
		img.Set(x, y, c)
	}
	return img
}

func (r *imageRenderer) Render(frame *chip8.Frame) {
	img := r.paint(frame)
	if r.show != nil {
		r.show(img)
	}
}

// RunWindow shows the emulator in a desktop window scaled by scale. It must
// be called from the main goroutine and returns when the window is closed,
// ctx is done or the processor faults.
func RunWindow(ctx context.Context, logger *log.Logger, emu *Emulator, keys *KeyLatch, scale int) error {
	a := app.New()
	w := a.NewWindow("Chip-8 Emulator")

	canv, ok := w.Canvas().(desktop.Canvas)
	if !ok {
		return errors.New("emulator cannot be run on mobile")
	}

	screen := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height)))
	renderer := newImageRenderer(func(img *image.RGBA) {
		fyne.Do(func() {
			screen.Image = img
			screen.Refresh()
		})
	})

	screen.FillMode = canvas.ImageFillStretch  // Scales the 64x32 grid to window size
	screen.ScaleMode = canvas.ImageScalePixels // Maintains "pixelated" retro look

	canv.SetOnKeyDown(func(k *fyne.KeyEvent) {
		switch k.Name {
		case fyne.KeyEscape:
			w.Close()
		case fyne.KeyBackspace:
			emu.Reset()
		default:
			if hex, ok := keyMap[k.Name]; ok {
				keys.Press(hex)
			}
		}
	})
	canv.SetOnKeyUp(func(k *fyne.KeyEvent) {
		if hex, ok := keyMap[k.Name]; ok {
			keys.Release(hex)
		}
	})

	w.SetContent(screen)
	w.Resize(fyne.NewSize(float32(chip8.Width*scale), float32(chip8.Height*scale)))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg     sync.WaitGroup
		closed atomic.Bool
		runErr error
	)

	wg.Go(func() {
		runErr = emu.Run(ctx, renderer)
		if !closed.Load() {
			fyne.Do(a.Quit)
		}
	})

	logger.Info("Window opened", log.Int("scale", scale))
	w.ShowAndRun()
	closed.Store(true)

	cancel()
	wg.Wait()

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}
