package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemoryLoad(t *testing.T) {
	var m Memory
	assert.NoError(t, m.SetByte(0x300, 0xAA))
	assert.NoError(t, m.Load(Font(), []byte{0x12, 0x34}))

	b, err := m.Byte(0x300)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)

	op, err := m.Opcode(ProgramStartAddress)
	assert.NoError(t, err)
	assert.Equal(t, Opcode(0x1234), op)

	b, err = m.Byte(FontStartAddress + 5)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x20), b)
}

func TestMemoryLoadTooLarge(t *testing.T) {
	var m Memory
	err := m.Load(Font(), make([]byte, MaxProgramSize+1))
	assert.True(t, errors.Is(err, ErrInvalidROM))

	err = m.Load(make([]byte, 0x201), nil)
	assert.True(t, errors.Is(err, ErrInvalidROM))
}

func TestMemoryBounds(t *testing.T) {
	var m Memory

	assert.NoError(t, m.SetByte(0xFFF, 1))
	b, err := m.Byte(0xFFF)
	assert.NoError(t, err)
	assert.Equal(t, byte(1), b)

	_, err = m.Byte(0x1000)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.True(t, errors.Is(m.SetByte(0x1000, 1), ErrOutOfBounds))

	assert.NoError(t, m.Write(0xFFE, []byte{1, 2}))
	assert.True(t, errors.Is(m.Write(0xFFE, []byte{1, 2, 3}), ErrOutOfBounds))
	assert.True(t, errors.Is(m.Read(0xFFF, make([]byte, 2)), ErrOutOfBounds))

	// a failed write leaves memory untouched
	b, err = m.Byte(0xFFE)
	assert.NoError(t, err)
	assert.Equal(t, byte(1), b)

	_, err = m.Opcode(LastAddress)
	assert.NoError(t, err)
	_, err = m.Opcode(LastAddress + 1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestFontIsCopy(t *testing.T) {
	font := Font()
	font[0] = 0
	assert.Equal(t, byte(0xF0), Font()[0])
}
