package emul8

import (
	"fmt"
	"os"

	"github.com/senojj/emul8/chip8"
)

// ReadROM reads a program image from disk and checks that it fits into the
// address space above $200.
func ReadROM(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rom file '%s': %w", path, err)
	}

	switch {
	case len(data) == 0:
		return nil, fmt.Errorf("%w: '%s' is empty", chip8.ErrInvalidROM, path)
	case len(data) > chip8.MaxProgramSize:
		return nil, fmt.Errorf("%w: '%s' has %d bytes, at most %d fit into memory",
			chip8.ErrInvalidROM, path, len(data), chip8.MaxProgramSize)
	}
	return data, nil
}
