package emul8

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/chip8"
)

// KeyHold is how long a terminal key press stays latched. Terminals report
// no key releases, so a press is held long enough to span several frames.
const KeyHold = 150 * time.Millisecond

// cellRenderer draws each lit pixel as two terminal cells so the picture
// keeps roughly its aspect ratio.
type cellRenderer struct {
	on, off termbox.Attribute
}

func (r cellRenderer) Render(frame *chip8.Frame) {
	_ = termbox.Clear(termbox.ColorDefault, r.off)
	for i, val := range frame {
		if val == 0 {
			continue
		}
		x, y := i%chip8.Width, i/chip8.Width
		termbox.SetCell(2*x, y, ' ', r.on, r.on)
		termbox.SetCell(2*x+1, y, ' ', r.on, r.on)
	}
	_ = termbox.Flush()
}

// RunTerminal runs the emulator inside the terminal. Escape or Ctrl+C quits,
// Backspace restarts the program.
func RunTerminal(ctx context.Context, logger *log.Logger, emu *Emulator, keys *KeyLatch) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer termbox.Close()

	termbox.SetInputMode(termbox.InputEsc)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan termbox.Event)
	go func() {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				close(events)
				return
			}
			events <- ev
		}
	}()

	go func() {
		for ev := range events {
			if ev.Type != termbox.EventKey {
				continue
			}
			switch ev.Key {
			case termbox.KeyEsc, termbox.KeyCtrlC:
				cancel()
			case termbox.KeyBackspace, termbox.KeyBackspace2:
				emu.Reset()
			default:
				if hex, ok := keyRunes[unicode.ToLower(ev.Ch)]; ok {
					keys.Tap(hex, KeyHold)
				}
			}
		}
	}()

	logger.Debug("Terminal opened")
	err := emu.Run(ctx, cellRenderer{on: termbox.ColorWhite, off: termbox.ColorDefault})
	termbox.Interrupt()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
