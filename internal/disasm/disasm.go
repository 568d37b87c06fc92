// Package disasm writes assembler listings of CHIP-8 programs.
package disasm

import (
	"fmt"
	"io"

	"github.com/senojj/emul8/chip8"
)

// Write outputs a linear listing of rom as loaded at $200. Every word is
// decoded as an instruction; words that do not decode are emitted as data.
func Write(w io.Writer, rom []byte) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM Disassembly\n; Program starts at $200 in CHIP-8 memory space\n\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", chip8.ProgramStartAddress); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	for offset := 0; offset < len(rom); offset += 2 {
		addr := int(chip8.ProgramStartAddress) + offset

		if offset+1 >= len(rom) {
			line := fmt.Sprintf(".byte $%02X", rom[offset])
			if err := writeLine(w, line, addr, rom[offset:offset+1]); err != nil {
				return err
			}
			break
		}

		data := rom[offset : offset+2]
		opcode := chip8.Opcode(uint16(data[0])<<8 | uint16(data[1]))

		line := fmt.Sprintf(".word $%s", opcode)
		if in, err := chip8.Decode(opcode); err == nil {
			line = in.String()
		}
		if err := writeLine(w, line, addr, data); err != nil {
			return err
		}
	}

	return nil
}

func writeLine(w io.Writer, code string, addr int, data []byte) error {
	comment := fmt.Sprintf("$%03X", addr)
	for _, b := range data {
		comment += fmt.Sprintf(" %02X", b)
	}
	if _, err := fmt.Fprintf(w, "  %-30s ; %s\n", code, comment); err != nil {
		return fmt.Errorf("writing offset $%03X: %w", addr, err)
	}
	return nil
}
