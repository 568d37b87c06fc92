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

import "fmt"

const (
	MemorySize          int    = 4096
	FontStartAddress    uint16 = 0x000
	ProgramStartAddress uint16 = 0x200
	LastAddress         uint16 = 0xFFE // last address an opcode can be fetched from
	MaxProgramSize      int    = MemorySize - int(ProgramStartAddress)

	glyphSize uint16 = 5
)

var fontSet = []byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Font returns a copy of the built-in hexadecimal glyph table.
func Font() []byte {
	font := make([]byte, len(fontSet))
	copy(font, fontSet)
	return font
}

// Memory is the flat 4 KiB address space. Every access is bounds checked,
// addresses never wrap.
type Memory struct {
	bytes [MemorySize]byte
}

// Load clears the address space, copies the font table to $000 and the
// program to $200.
func (m *Memory) Load(font, program []byte) error {
	if len(font) > int(ProgramStartAddress-FontStartAddress) {
		return fmt.Errorf("%w: font table of %d bytes overlaps program space", ErrInvalidROM, len(font))
	}
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: program of %d bytes exceeds %d bytes", ErrInvalidROM, len(program), MaxProgramSize)
	}

	m.bytes = [MemorySize]byte{}
	copy(m.bytes[FontStartAddress:], font)
	copy(m.bytes[ProgramStartAddress:], program)
	return nil
}

// Byte returns the byte stored at addr.
func (m *Memory) Byte(addr uint16) (byte, error) {
	if int(addr) >= MemorySize {
		return 0, outOfBounds(int(addr))
	}
	return m.bytes[addr], nil
}

// SetByte stores v at addr.
func (m *Memory) SetByte(addr uint16, v byte) error {
	if int(addr) >= MemorySize {
		return outOfBounds(int(addr))
	}
	m.bytes[addr] = v
	return nil
}

// Read fills data with the bytes starting at loc. Either the whole range is
// inside memory or nothing is read.
func (m *Memory) Read(loc uint16, data []byte) error {
	if end := int(loc) + len(data); end > MemorySize {
		return outOfBounds(end - 1)
	}
	copy(data, m.bytes[loc:])
	return nil
}

// Write stores data starting at loc. Either the whole range is inside memory
// or nothing is written.
func (m *Memory) Write(loc uint16, data []byte) error {
	if end := int(loc) + len(data); end > MemorySize {
		return outOfBounds(end - 1)
	}
	copy(m.bytes[loc:], data)
	return nil
}

// Opcode reads the big-endian instruction word at addr.
func (m *Memory) Opcode(addr uint16) (Opcode, error) {
	if addr > LastAddress {
		return 0, outOfBounds(int(addr) + 1)
	}

	// opcode is a 16bit value, comprised of two contiguous 8bit values
	// in memory, starting at the program counter
	high := uint16(m.bytes[addr])  // high-order bits of opcode
	low := uint16(m.bytes[addr+1]) // low-order bits of opcode
	return Opcode((high << 8) | low), nil
}
