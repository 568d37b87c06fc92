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
)

// Execute applies a decoded instruction to the machine state. The program
// counter must already point past the instruction.
func (p *Processor) Execute(in Instruction) (Effect, error) {
	var info Effect

	switch in.Op {
	case ClearScreen:
		p.clearScreen(&info)
	case ReturnFromSubroutine:
		return info, p.returnFromSubroutine()
	case JumpToLocation:
		p.jumpToLocation(in.NNN)
	case CallSubroutine:
		return info, p.callSubroutine(in.NNN)
	case SkipIfXEqualsNN:
		p.skipIf(p.v[in.X] == in.NN)
	case SkipIfXNotEqualsNN:
		p.skipIf(p.v[in.X] != in.NN)
	case SkipIfXEqualsY:
		p.skipIf(p.v[in.X] == p.v[in.Y])
	case SkipIfXNotEqualsY:
		p.skipIf(p.v[in.X] != p.v[in.Y])
	case SetXToNN:
		p.v[in.X] = in.NN
	case AddNNToX:
		p.v[in.X] += in.NN
	case SetXToY:
		p.v[in.X] = p.v[in.Y]
	case OrXY:
		p.v[in.X] |= p.v[in.Y]
	case AndXY:
		p.v[in.X] &= p.v[in.Y]
	case XorXY:
		p.v[in.X] ^= p.v[in.Y]
	case AddXY:
		p.addXY(in.X, in.Y)
	case SubtractYFromX:
		p.subtractYFromX(in.X, in.Y)
	case ShiftRightX:
		p.shiftRightX(in.X)
	case SubtractXFromY:
		p.subtractXFromY(in.X, in.Y)
	case ShiftLeftX:
		p.shiftLeftX(in.X)
	case SetIToNNN:
		p.i = in.NNN
	case JumpWithOffset:
		p.jumpToLocation(in.NNN + uint16(p.v[0x0]))
	case SetXToRandom:
		p.setXToRandom(in.X, in.NN)
	case DrawSprite:
		return info, p.drawSprite(in.X, in.Y, in.N, &info)
	case SkipIfKeyDown:
		p.skipIf(p.keypad.Pressed(p.v[in.X]))
	case SkipIfKeyUp:
		p.skipIf(!p.keypad.Pressed(p.v[in.X]))
	case SetXToDelay:
		p.v[in.X] = p.timers.Delay()
	case WaitForKey:
		p.pauseUntilKeyPressed(in.X, &info)
	case SetDelayToX:
		p.timers.SetDelay(p.v[in.X])
	case SetSoundToX:
		p.timers.SetSound(p.v[in.X])
	case AddXToI:
		p.i += uint16(p.v[in.X])
	case SetIToGlyph:
		p.setIToGlyph(in.X)
	case StoreBCD:
		return info, p.binaryCodedDecimal(in.X)
	case StoreRegisters:
		return info, p.setRegistersToMemory(in.X)
	case LoadRegisters:
		return info, p.setMemoryToRegisters(in.X)
	default:
		return info, fmt.Errorf("%w: %s", ErrIllegalInstruction, in.Opcode)
	}

	return info, nil
}

func (p *Processor) clearScreen(info *Effect) {
	p.display.Clear()
	*info |= Redraw
}

func (p *Processor) callSubroutine(nnn uint16) error {
	if err := p.stack.Push(p.pc); err != nil {
		return err
	}
	p.pc = nnn
	return nil
}

func (p *Processor) returnFromSubroutine() error {
	pc, err := p.stack.Pop()
	if err != nil {
		return err
	}
	p.pc = pc
	return nil
}

func (p *Processor) jumpToLocation(nnn uint16) {
	p.pc = nnn
}

func (p *Processor) skipIf(cond bool) {
	if cond {
		p.pc += 2
	}
}

// The flag is stored after the result for all 8XYn forms that set it, so
// VF as the destination ends up holding the flag.

func (p *Processor) addXY(x, y uint8) {
	sum := uint16(p.v[x]) + uint16(p.v[y])
	p.v[x] = byte(sum & 0xFF)
	p.v[CarryFlag] = flag(sum > 0xFF)
}

// VF is 1 when no borrow occurred and 0 when VY > VX.
func (p *Processor) subtractYFromX(x, y uint8) {
	noBorrow := p.v[x] >= p.v[y]
	p.v[x] -= p.v[y]
	p.v[CarryFlag] = flag(noBorrow)
}

// VF is 1 when no borrow occurred and 0 when VX > VY.
func (p *Processor) subtractXFromY(x, y uint8) {
	noBorrow := p.v[y] >= p.v[x]
	p.v[x] = p.v[y] - p.v[x]
	p.v[CarryFlag] = flag(noBorrow)
}

func (p *Processor) shiftRightX(x uint8) {
	bit := p.v[x] & 0x1
	p.v[x] >>= 1
	p.v[CarryFlag] = bit
}

func (p *Processor) shiftLeftX(x uint8) {
	bit := (p.v[x] & 0x80) >> 7
	p.v[x] <<= 1
	p.v[CarryFlag] = bit
}

func (p *Processor) setXToRandom(x, nn uint8) {
	var randomByte byte
	if p.rng != nil {
		randomByte = byte(p.rng.Uint32N(256))
	} else {
		randomByte = byte(rand.Uint32N(256))
	}
	p.v[x] = randomByte & nn
}

// VF is 1 when any lit pixel of the sprite area was turned off by this draw.
func (p *Processor) drawSprite(x, y, n uint8, info *Effect) error {
	sprite := make([]byte, n)
	if err := p.memory.Read(p.i, sprite); err != nil {
		return fmt.Errorf("reading sprite: %w", err)
	}

	collision := p.display.Draw(p.v[x], p.v[y], sprite)
	p.v[CarryFlag] = flag(collision)
	*info |= Redraw
	return nil
}

func (p *Processor) pauseUntilKeyPressed(x uint8, info *Effect) {
	key, ok := p.keypad.AnyPressed()
	if !ok {
		p.pc -= 2 // Move the program counter back, replaying the last opcode
		p.keypad.waiting = true
		*info |= Waiting
		return
	}

	p.v[x] = key
	p.keypad.waiting = false
}

func (p *Processor) setIToGlyph(x uint8) {
	digit := uint16(p.v[x] & 0x0F)
	p.i = FontStartAddress + (digit * glyphSize)
}

// binaryCodedDecimal stores the hundreds, tens and ones digits of VX at I,
// I+1 and I+2 using the double dabble shift-and-add-3 conversion.
func (p *Processor) binaryCodedDecimal(x uint8) error {
	var bcd uint32
	val := uint32(p.v[x])

	for i := range 8 {
		// Any BCD nibble >= 5 is corrected before the shift so it carries.
		if (bcd & 0x00F) >= 0x005 {
			bcd += 0x003
		}
		if (bcd & 0x0F0) >= 0x050 {
			bcd += 0x030
		}
		if (bcd & 0xF00) >= 0x500 {
			bcd += 0x300
		}

		// Shift BCD left by 1, and pull in the next bit from val
		bcd = (bcd << 1) | ((val >> (7 - i)) & 1)
	}

	digits := [3]byte{
		byte((bcd >> 8) & 0xF), // Hundreds
		byte((bcd >> 4) & 0xF), // Tens
		byte(bcd & 0xF),        // Ones
	}
	if err := p.memory.Write(p.i, digits[:]); err != nil {
		return fmt.Errorf("storing bcd: %w", err)
	}
	return nil
}

func (p *Processor) setRegistersToMemory(x uint8) error {
	if err := p.memory.Write(p.i, p.v[:x+1]); err != nil {
		return fmt.Errorf("storing registers: %w", err)
	}
	return nil
}

func (p *Processor) setMemoryToRegisters(x uint8) error {
	if err := p.memory.Read(p.i, p.v[:x+1]); err != nil {
		return fmt.Errorf("loading registers: %w", err)
	}
	return nil
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
