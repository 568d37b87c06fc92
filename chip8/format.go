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

var mnemonics = [operationCount]string{
	ClearScreen:          "CLS",
	ReturnFromSubroutine: "RET",
	JumpToLocation:       "JP",
	CallSubroutine:       "CALL",
	SkipIfXEqualsNN:      "SE",
	SkipIfXNotEqualsNN:   "SNE",
	SkipIfXEqualsY:       "SE",
	SetXToNN:             "LD",
	AddNNToX:             "ADD",
	SetXToY:              "LD",
	OrXY:                 "OR",
	AndXY:                "AND",
	XorXY:                "XOR",
	AddXY:                "ADD",
	SubtractYFromX:       "SUB",
	ShiftRightX:          "SHR",
	SubtractXFromY:       "SUBN",
	ShiftLeftX:           "SHL",
	SkipIfXNotEqualsY:    "SNE",
	SetIToNNN:            "LD",
	JumpWithOffset:       "JP",
	SetXToRandom:         "RND",
	DrawSprite:           "DRW",
	SkipIfKeyDown:        "SKP",
	SkipIfKeyUp:          "SKNP",
	SetXToDelay:          "LD",
	WaitForKey:           "LD",
	SetDelayToX:          "LD",
	SetSoundToX:          "LD",
	AddXToI:              "ADD",
	SetIToGlyph:          "LD",
	StoreBCD:             "LD",
	StoreRegisters:       "LD",
	LoadRegisters:        "LD",
}

// Mnemonic returns the assembler name of the operation.
func (o Operation) Mnemonic() string {
	if o >= operationCount {
		return "???"
	}
	return mnemonics[o]
}

// String formats the instruction in assembler syntax, for example
// "LD V1, $0A" or "DRW V0, V1, 5".
func (in Instruction) String() string {
	name := in.Op.Mnemonic()
	if params := in.params(); params != "" {
		return name + " " + params
	}
	return name
}

func (in Instruction) params() string {
	switch in.Op {
	case ClearScreen, ReturnFromSubroutine:
		return ""
	case JumpToLocation, CallSubroutine:
		return fmt.Sprintf("$%03X", in.NNN)
	case SetIToNNN:
		return fmt.Sprintf("I, $%03X", in.NNN)
	case JumpWithOffset:
		return fmt.Sprintf("V0, $%03X", in.NNN)
	case SkipIfXEqualsNN, SkipIfXNotEqualsNN, SetXToNN, AddNNToX, SetXToRandom:
		return fmt.Sprintf("V%X, $%02X", in.X, in.NN)
	case SkipIfXEqualsY, SkipIfXNotEqualsY, SetXToY, OrXY, AndXY, XorXY,
		AddXY, SubtractYFromX, SubtractXFromY:
		return fmt.Sprintf("V%X, V%X", in.X, in.Y)
	case ShiftRightX, ShiftLeftX, SkipIfKeyDown, SkipIfKeyUp:
		return fmt.Sprintf("V%X", in.X)
	case DrawSprite:
		return fmt.Sprintf("V%X, V%X, %d", in.X, in.Y, in.N)
	case SetXToDelay:
		return fmt.Sprintf("V%X, DT", in.X)
	case WaitForKey:
		return fmt.Sprintf("V%X, K", in.X)
	case SetDelayToX:
		return fmt.Sprintf("DT, V%X", in.X)
	case SetSoundToX:
		return fmt.Sprintf("ST, V%X", in.X)
	case AddXToI:
		return fmt.Sprintf("I, V%X", in.X)
	case SetIToGlyph:
		return fmt.Sprintf("F, V%X", in.X)
	case StoreBCD:
		return fmt.Sprintf("B, V%X", in.X)
	case StoreRegisters:
		return fmt.Sprintf("[I], V%X", in.X)
	case LoadRegisters:
		return fmt.Sprintf("V%X, [I]", in.X)
	}
	return ""
}
