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

// Opcode is a 16bit instruction word as fetched from memory.
type Opcode uint16

// First nibble of the opcode is the operation kind.
func (op Opcode) kind() uint8 {
	return uint8((op & 0xF000) >> 12)
}

// Second nibble of the opcode is the X register location.
func (op Opcode) x() uint8 {
	return uint8((op & 0x0F00) >> 8)
}

// Third nibble of the opcode is the Y register location.
func (op Opcode) y() uint8 {
	return uint8((op & 0x00F0) >> 4)
}

// Fourth nibble of the opcode is the N value.
func (op Opcode) n() uint8 {
	return uint8(op & 0x000F)
}

// Third and fourth nibbles of the opcode combine into the NN value.
func (op Opcode) nn() uint8 {
	return uint8(op & 0x00FF)
}

// Second, third, and fourth nibbles of the opcode combine into the NNN value.
func (op Opcode) nnn() uint16 {
	return uint16(op & 0x0FFF)
}

func (op Opcode) String() string {
	return fmt.Sprintf("%04X", uint16(op))
}

// Operation identifies one of the instruction forms the processor executes.
type Operation uint8

const (
	ClearScreen          Operation = iota // 00E0
	ReturnFromSubroutine                  // 00EE
	JumpToLocation                        // 1NNN
	CallSubroutine                        // 2NNN
	SkipIfXEqualsNN                       // 3XNN
	SkipIfXNotEqualsNN                    // 4XNN
	SkipIfXEqualsY                        // 5XY0
	SetXToNN                              // 6XNN
	AddNNToX                              // 7XNN
	SetXToY                               // 8XY0
	OrXY                                  // 8XY1
	AndXY                                 // 8XY2
	XorXY                                 // 8XY3
	AddXY                                 // 8XY4
	SubtractYFromX                        // 8XY5
	ShiftRightX                           // 8XY6
	SubtractXFromY                        // 8XY7
	ShiftLeftX                            // 8XYE
	SkipIfXNotEqualsY                     // 9XY0
	SetIToNNN                             // ANNN
	JumpWithOffset                        // BNNN
	SetXToRandom                          // CXNN
	DrawSprite                            // DXYN
	SkipIfKeyDown                         // EX9E
	SkipIfKeyUp                           // EXA1
	SetXToDelay                           // FX07
	WaitForKey                            // FX0A
	SetDelayToX                           // FX15
	SetSoundToX                           // FX18
	AddXToI                               // FX1E
	SetIToGlyph                           // FX29
	StoreBCD                              // FX33
	StoreRegisters                        // FX55
	LoadRegisters                         // FX65

	operationCount
)

// Instruction is a decoded opcode. Operand fields not used by Op are still
// filled from the opcode nibbles.
type Instruction struct {
	Op     Operation
	Opcode Opcode
	X      uint8
	Y      uint8
	N      uint8
	NN     uint8
	NNN    uint16
}

var (
	group8 = map[uint8]Operation{
		0x0: SetXToY,
		0x1: OrXY,
		0x2: AndXY,
		0x3: XorXY,
		0x4: AddXY,
		0x5: SubtractYFromX,
		0x6: ShiftRightX,
		0x7: SubtractXFromY,
		0xE: ShiftLeftX,
	}

	groupE = map[uint8]Operation{
		0x9E: SkipIfKeyDown,
		0xA1: SkipIfKeyUp,
	}

	groupF = map[uint8]Operation{
		0x07: SetXToDelay,
		0x0A: WaitForKey,
		0x15: SetDelayToX,
		0x18: SetSoundToX,
		0x1E: AddXToI,
		0x29: SetIToGlyph,
		0x33: StoreBCD,
		0x55: StoreRegisters,
		0x65: LoadRegisters,
	}

	// operations selected by the first nibble alone
	direct = map[uint8]Operation{
		0x1: JumpToLocation,
		0x2: CallSubroutine,
		0x3: SkipIfXEqualsNN,
		0x4: SkipIfXNotEqualsNN,
		0x6: SetXToNN,
		0x7: AddNNToX,
		0xA: SetIToNNN,
		0xB: JumpWithOffset,
		0xC: SetXToRandom,
		0xD: DrawSprite,
	}
)

// Decode maps an opcode to its instruction. Opcodes outside the instruction
// table return an error wrapping ErrIllegalInstruction.
func Decode(op Opcode) (Instruction, error) {
	in := Instruction{
		Opcode: op,
		X:      op.x(),
		Y:      op.y(),
		N:      op.n(),
		NN:     op.nn(),
		NNN:    op.nnn(),
	}

	var ok bool
	switch kind := op.kind(); kind {
	case 0x0:
		switch op {
		case 0x00E0:
			in.Op, ok = ClearScreen, true
		case 0x00EE:
			in.Op, ok = ReturnFromSubroutine, true
		}
	case 0x5:
		in.Op, ok = SkipIfXEqualsY, op.n() == 0
	case 0x8:
		in.Op, ok = group8[op.n()]
	case 0x9:
		in.Op, ok = SkipIfXNotEqualsY, op.n() == 0
	case 0xE:
		in.Op, ok = groupE[op.nn()]
	case 0xF:
		in.Op, ok = groupF[op.nn()]
	default:
		in.Op, ok = direct[kind]
	}

	if !ok {
		return Instruction{}, fmt.Errorf("%w: %s", ErrIllegalInstruction, op)
	}
	return in, nil
}
