/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package chip8

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	RegisterCount int   = 16
	CarryFlag     uint8 = 0xF

	ClockRate time.Duration = time.Second / 700 // 700hz
)

// Effect reports what a cycle changed that the host may care about.
type Effect uint8

const (
	Delay   Effect = 1 << iota // delay timer is running
	Sound                      // sound timer is running
	Redraw                     // framebuffer was cleared or drawn to
	Waiting                    // FX0A found no key and will be replayed
)

// Has reports whether all bits of f are set in e.
func (e Effect) Has(f Effect) bool {
	return e&f == f
}

// State is a copy of the programmer-visible registers.
type State struct {
	V          [RegisterCount]byte
	I          uint16
	PC         uint16
	StackDepth int
	Delay      uint8
	Sound      uint8
	Waiting    bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithRand sets the random source used by CXNN.
func WithRand(r *rand.Rand) Option {
	return func(p *Processor) {
		p.rng = r
	}
}

// Processor is the CHIP-8 virtual machine. It owns every piece of machine
// state and is driven one cycle at a time by the host; it is not safe for
// concurrent use.
type Processor struct {
	memory  Memory
	v       [RegisterCount]byte
	stack   Stack
	display Display
	keypad  Keypad
	timers  Timers
	pc      uint16
	i       uint16

	rng     *rand.Rand
	program []byte
	fault   *Fault
}

// New returns a processor with the font table and program loaded and the
// program counter at $200.
func New(program []byte, opts ...Option) (*Processor, error) {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.Load(program); err != nil {
		return nil, err
	}
	return p, nil
}

// Load replaces the program and resets the machine. A program larger than
// the space above $200 fails with ErrInvalidROM and leaves the processor
// unchanged.
func (p *Processor) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: program of %d bytes exceeds %d bytes", ErrInvalidROM, len(program), MaxProgramSize)
	}
	p.program = append(p.program[:0], program...)
	p.Reset()
	return nil
}

// Reset returns the machine to the state right after the current program was
// loaded. Key state and the random source are kept.
func (p *Processor) Reset() {
	// sizes were validated by Load
	_ = p.memory.Load(fontSet, p.program)

	p.v = [RegisterCount]byte{}
	p.stack = Stack{}
	p.display = Display{}
	p.timers = Timers{}
	p.keypad.waiting = false
	p.i = 0
	p.pc = ProgramStartAddress
	p.fault = nil
}

// Step fetches the opcode at the program counter, advances the counter by
// two and executes the instruction. A returned error is a *Fault; the
// processor stays halted and keeps returning it until Reset or Load.
func (p *Processor) Step() (Effect, error) {
	if p.fault != nil {
		return 0, p.fault
	}

	pc := p.pc
	opcode, err := p.memory.Opcode(pc)
	if err != nil {
		return 0, p.halt(pc, opcode, err)
	}

	p.pc += 2

	in, err := Decode(opcode)
	if err != nil {
		return 0, p.halt(pc, opcode, err)
	}

	info, err := p.Execute(in)
	if err != nil {
		return 0, p.halt(pc, opcode, err)
	}

	if p.timers.Sound() > 0 {
		info |= Sound
	}
	if p.timers.Delay() > 0 {
		info |= Delay
	}
	return info, nil
}

func (p *Processor) halt(pc uint16, opcode Opcode, err error) error {
	p.fault = &Fault{PC: pc, Opcode: opcode, Err: err}
	return p.fault
}

// Fault returns the error that halted the processor, or nil.
func (p *Processor) Fault() error {
	if p.fault == nil {
		return nil
	}
	return p.fault
}

// Tick decrements the delay and sound timers. The host calls it at
// TimerRate, independent of the instruction rate.
func (p *Processor) Tick() {
	p.timers.Tick()
}

// SetKeys latches the key snapshot used by the next cycle.
func (p *Processor) SetKeys(keys Keys) {
	p.keypad.Latch(keys)
}

// Waiting reports whether the processor is replaying FX0A for a key press.
func (p *Processor) Waiting() bool {
	return p.keypad.Waiting()
}

// Display returns the framebuffer. The render sink calls Consume on it.
func (p *Processor) Display() *Display {
	return &p.display
}

// Memory returns the address space.
func (p *Processor) Memory() *Memory {
	return &p.memory
}

// Timers returns the delay and sound timers.
func (p *Processor) Timers() *Timers {
	return &p.timers
}

// Register returns VX. Only the low nibble of x is used.
func (p *Processor) Register(x uint8) uint8 {
	return p.v[x&0xF]
}

// SetRegister sets VX. Only the low nibble of x is used.
func (p *Processor) SetRegister(x, value uint8) {
	p.v[x&0xF] = value
}

func (p *Processor) Index() uint16 {
	return p.i
}

func (p *Processor) SetIndex(i uint16) {
	p.i = i
}

func (p *Processor) ProgramCounter() uint16 {
	return p.pc
}

// SetProgramCounter moves execution to pc. The next Step fails with
// ErrOutOfBounds if no whole opcode can be fetched there.
func (p *Processor) SetProgramCounter(pc uint16) {
	p.pc = pc
}

func (p *Processor) StackDepth() int {
	return p.stack.Len()
}

// Snapshot copies the programmer-visible state.
func (p *Processor) Snapshot() State {
	return State{
		V:          p.v,
		I:          p.i,
		PC:         p.pc,
		StackDepth: p.stack.Len(),
		Delay:      p.timers.Delay(),
		Sound:      p.timers.Sound(),
		Waiting:    p.keypad.Waiting(),
	}
}
