// Package emul8 runs a CHIP-8 processor against a host: it refreshes the key
// latch, steps the processor at the instruction clock, ticks the timers at
// 60hz, forwards changed frames to a renderer and drives a speaker while the
// sound timer runs.
package emul8

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/chip8"
)

// Renderer receives the framebuffer whenever it changed during a cycle.
type Renderer interface {
	Render(frame *chip8.Frame)
}

// Speaker emits a tone between Start and Stop.
type Speaker interface {
	Start(ctx context.Context) error
	Stop()
}

// Config controls the host loop.
type Config struct {
	ClockRate time.Duration // time between two instructions, chip8.ClockRate if zero
	Seed      uint64        // seed for CXNN, random if zero
	Trace     bool          // log every executed instruction at debug level
}

// Emulator owns the processor and is the only goroutine touching it while
// Run is active.
type Emulator struct {
	logger  *log.Logger
	cpu     *chip8.Processor
	keys    KeySource
	speaker Speaker

	clock   time.Duration
	trace   bool
	beeping bool
	reset   chan struct{}
}

// New loads the program into a fresh processor. speaker may be nil.
func New(logger *log.Logger, rom []byte, keys KeySource, speaker Speaker, cfg Config) (*Emulator, error) {
	var opts []chip8.Option
	if cfg.Seed != 0 {
		opts = append(opts, chip8.WithRand(rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))))
	}

	cpu, err := chip8.New(rom, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	clock := cfg.ClockRate
	if clock <= 0 {
		clock = chip8.ClockRate
	}

	logger.Debug("Program loaded",
		log.Int("size", len(rom)),
		log.String("clock", clock.String()))

	return &Emulator{
		logger:  logger,
		cpu:     cpu,
		keys:    keys,
		speaker: speaker,
		clock:   clock,
		trace:   cfg.Trace,
		reset:   make(chan struct{}, 1),
	}, nil
}

// Processor returns the emulated machine. It must not be used concurrently
// with Run.
func (e *Emulator) Processor() *chip8.Processor {
	return e.cpu
}

// Cycle latches the keys, executes one instruction and hands a changed
// framebuffer to the renderer.
func (e *Emulator) Cycle(sink Renderer) error {
	e.cpu.SetKeys(e.keys.Keys())

	if e.trace {
		e.traceInstruction()
	}

	pc := e.cpu.ProgramCounter()
	if _, err := e.cpu.Step(); err != nil {
		return err
	}
	e.consumeKeyWait(pc)

	if frame, ok := e.cpu.Display().Consume(); ok && sink != nil {
		sink.Render(&frame)
	}
	return nil
}

// consumeKeyWait hands the key stored by a completed LD VX, K back to the
// key source.
func (e *Emulator) consumeKeyWait(pc uint16) {
	if e.cpu.Waiting() {
		return
	}
	opcode, err := e.cpu.Memory().Opcode(pc)
	if err != nil {
		return
	}
	in, err := chip8.Decode(opcode)
	if err != nil || in.Op != chip8.WaitForKey {
		return
	}
	e.keys.Consume(e.cpu.Register(in.X))
}

func (e *Emulator) traceInstruction() {
	if e.cpu.Waiting() {
		return
	}

	pc := e.cpu.ProgramCounter()
	opcode, err := e.cpu.Memory().Opcode(pc)
	if err != nil {
		return
	}

	text := "???"
	if in, err := chip8.Decode(opcode); err == nil {
		text = in.String()
	}

	e.logger.Debug("exec",
		log.String("pc", fmt.Sprintf("$%03X", pc)),
		log.String("opcode", opcode.String()),
		log.String("instruction", text))
}

// Tick advances the delay and sound timers by one 60hz period.
func (e *Emulator) Tick(ctx context.Context) {
	e.cpu.Tick()
	e.updateSpeaker(ctx)
}

// Reset asks a running emulator to restart the program. It does not block.
func (e *Emulator) Reset() {
	select {
	case e.reset <- struct{}{}:
	default:
	}
}

// Run steps the processor until ctx is done or the processor faults. The
// fault is returned as is, a cancelled context returns ctx.Err().
func (e *Emulator) Run(ctx context.Context, sink Renderer) error {
	cpuTicker := time.NewTicker(e.clock)
	defer cpuTicker.Stop()

	timerTicker := time.NewTicker(chip8.TimerRate)
	defer timerTicker.Stop()

	defer e.stopSpeaker()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-e.reset:
			e.logger.Info("Resetting program")
			e.cpu.Reset()

		case <-timerTicker.C:
			e.Tick(ctx)

		case <-cpuTicker.C:
			if err := e.Cycle(sink); err != nil {
				e.logger.Error("Processor halted", err)
				return err
			}
			e.updateSpeaker(ctx)
		}
	}
}

func (e *Emulator) updateSpeaker(ctx context.Context) {
	if e.speaker == nil {
		return
	}

	running := e.cpu.Timers().Sound() > 0
	switch {
	case running && !e.beeping:
		if err := e.speaker.Start(ctx); err != nil {
			e.logger.Warn("Starting sound failed", log.Err(err))
			return
		}
		e.beeping = true

	case !running && e.beeping:
		e.stopSpeaker()
	}
}

func (e *Emulator) stopSpeaker() {
	if e.speaker == nil || !e.beeping {
		return
	}
	e.speaker.Stop()
	e.beeping = false
}
