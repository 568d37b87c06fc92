package emul8

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/chip8"
)

type frameRecorder struct {
	frames []chip8.Frame
}

func (r *frameRecorder) Render(frame *chip8.Frame) {
	r.frames = append(r.frames, *frame)
}

type speakerRecorder struct {
	starts, stops int
}

func (s *speakerRecorder) Start(context.Context) error {
	s.starts++
	return nil
}

func (s *speakerRecorder) Stop() {
	s.stops++
}

func newTestEmulator(t *testing.T, keys KeySource, speaker Speaker, program ...byte) *Emulator {
	t.Helper()
	emu, err := New(log.NewTestLogger(t), program, keys, speaker, Config{
		ClockRate: time.Millisecond,
		Seed:      1,
		Trace:     true,
	})
	assert.NoError(t, err)
	return emu
}

func TestNewInvalidROM(t *testing.T) {
	_, err := New(log.NewTestLogger(t), make([]byte, chip8.MaxProgramSize+1), NewKeyLatch(), nil, Config{})
	assert.True(t, errors.Is(err, chip8.ErrInvalidROM))
}

func TestCycleRendersOnlyChangedFrames(t *testing.T) {
	// CLS, LD I $000, DRW V0 V0 5, JP $206
	emu := newTestEmulator(t, NewKeyLatch(), nil,
		0x00, 0xE0, 0xA0, 0x00, 0xD0, 0x05, 0x12, 0x06)

	var sink frameRecorder
	for range 10 {
		assert.NoError(t, emu.Cycle(&sink))
	}

	assert.Equal(t, 2, len(sink.frames))
	assert.Equal(t, chip8.Frame{}, sink.frames[0])
	assert.Equal(t, byte(1), sink.frames[1].At(0, 0))
	assert.Equal(t, byte(0), sink.frames[1].At(4, 0))
}

func TestCycleLatchesKeys(t *testing.T) {
	keys := NewKeyLatch()
	// LD V3, K then JP $202
	emu := newTestEmulator(t, keys, nil, 0xF3, 0x0A, 0x12, 0x02)

	for range 3 {
		assert.NoError(t, emu.Cycle(nil))
		assert.True(t, emu.Processor().Waiting())
	}

	keys.Press(0xB)
	assert.NoError(t, emu.Cycle(nil))
	assert.False(t, emu.Processor().Waiting())
	assert.Equal(t, uint8(0xB), emu.Processor().Register(0x3))
}

func TestCycleConsumesKeyTap(t *testing.T) {
	now := time.Unix(1000, 0)
	keys := NewKeyLatch()
	keys.now = func() time.Time { return now }

	// LD V0, K; ADD V1, 1; JP $200
	emu := newTestEmulator(t, keys, nil, 0xF0, 0x0A, 0x71, 0x01, 0x12, 0x00)

	keys.Tap(0x5, KeyHold)
	for range 105 {
		assert.NoError(t, emu.Cycle(nil))
	}

	assert.Equal(t, uint8(0x5), emu.Processor().Register(0x0))
	assert.Equal(t, uint8(1), emu.Processor().Register(0x1))
	assert.True(t, emu.Processor().Waiting())
	assert.False(t, keys.Keys()[0x5])

	keys.Tap(0x9, KeyHold)
	for range 3 {
		assert.NoError(t, emu.Cycle(nil))
	}
	assert.Equal(t, uint8(0x9), emu.Processor().Register(0x0))
	assert.Equal(t, uint8(2), emu.Processor().Register(0x1))
}

func TestCycleKeepsHeldKeyAfterWait(t *testing.T) {
	keys := NewKeyLatch()
	// LD V0, K; JP $202
	emu := newTestEmulator(t, keys, nil, 0xF0, 0x0A, 0x12, 0x02)

	keys.Press(0x2)
	assert.NoError(t, emu.Cycle(nil))
	assert.Equal(t, uint8(0x2), emu.Processor().Register(0x0))
	assert.True(t, keys.Keys()[0x2])
}

func TestTickDrivesSpeaker(t *testing.T) {
	var speaker speakerRecorder
	// LD V0, 2; LD ST, V0; JP $204
	emu := newTestEmulator(t, NewKeyLatch(), &speaker, 0x60, 0x02, 0xF0, 0x18, 0x12, 0x04)
	ctx := context.Background()

	assert.NoError(t, emu.Cycle(nil))
	assert.NoError(t, emu.Cycle(nil))
	emu.updateSpeaker(ctx)
	assert.Equal(t, 1, speaker.starts)

	emu.Tick(ctx)
	assert.Equal(t, 1, speaker.starts)
	assert.Equal(t, 0, speaker.stops)

	emu.Tick(ctx)
	assert.Equal(t, uint8(0), emu.Processor().Timers().Sound())
	assert.Equal(t, 1, speaker.stops)

	emu.Tick(ctx)
	assert.Equal(t, 1, speaker.stops)
}

func TestRunStopsOnFault(t *testing.T) {
	// RET with an empty stack
	emu := newTestEmulator(t, NewKeyLatch(), nil, 0x00, 0xEE)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := emu.Run(ctx, nil)
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))

	var fault *chip8.Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x200), fault.PC)
}

func TestRunStopsOnCancel(t *testing.T) {
	var speaker speakerRecorder
	// LD V0, $FF; LD ST, V0; JP $204
	emu := newTestEmulator(t, NewKeyLatch(), &speaker, 0x60, 0xFF, 0xF0, 0x18, 0x12, 0x04)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var sink frameRecorder
	err := emu.Run(ctx, &sink)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, uint16(0x204), emu.Processor().ProgramCounter())
	assert.Equal(t, 1, speaker.starts)
	assert.Equal(t, 1, speaker.stops)
	assert.Equal(t, 0, len(sink.frames))
}

func TestReset(t *testing.T) {
	// LD V1, 7; LD DT, V1; CALL $208; JP $206; LD V0, K
	emu := newTestEmulator(t, NewKeyLatch(), nil,
		0x61, 0x07, 0xF1, 0x15, 0x22, 0x08, 0x12, 0x06, 0xF0, 0x0A)
	for range 4 {
		assert.NoError(t, emu.Cycle(nil))
	}

	cpu := emu.Processor()
	assert.True(t, cpu.Waiting())
	cpu.SetRegister(0x2, 0x55)
	cpu.SetIndex(0x300)
	assert.NoError(t, cpu.Memory().SetByte(0x300, 0xAA))

	emu.Reset()
	emu.Reset() // a pending reset is not queued twice
	assert.Equal(t, 1, len(emu.reset))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_ = emu.Run(ctx, nil)

	assert.Equal(t, 0, len(emu.reset))
	assert.Equal(t, uint8(0), cpu.Register(0x2))
	assert.Equal(t, uint16(0), cpu.Index())
	b, err := cpu.Memory().Byte(0x300)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)

	// the program ran again from $200 up to the key wait
	assert.Equal(t, uint8(7), cpu.Register(0x1))
	assert.Equal(t, 1, cpu.StackDepth())
	assert.Equal(t, uint16(0x208), cpu.ProgramCounter())
	assert.True(t, cpu.Timers().Delay() <= 7)
}
