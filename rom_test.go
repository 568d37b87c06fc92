package emul8

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/senojj/emul8/chip8"
)

func TestReadROM(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.ch8")
	assert.NoError(t, os.WriteFile(valid, []byte{0x00, 0xE0}, 0o600))
	data, err := ReadROM(valid)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xE0}, data)

	empty := filepath.Join(dir, "empty.ch8")
	assert.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = ReadROM(empty)
	assert.True(t, errors.Is(err, chip8.ErrInvalidROM))

	large := filepath.Join(dir, "large.ch8")
	assert.NoError(t, os.WriteFile(large, make([]byte, chip8.MaxProgramSize+1), 0o600))
	_, err = ReadROM(large)
	assert.True(t, errors.Is(err, chip8.ErrInvalidROM))

	_, err = ReadROM(filepath.Join(dir, "missing.ch8"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
