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

// KeyCount is the number of keys on the hexadecimal keypad.
const KeyCount int = 16

// Keys is a snapshot of the keypad, indexed by key value 0x0-0xF.
type Keys [KeyCount]bool

// Keypad latches the key snapshot for the current cycle. The waiting flag is
// owned by the processor and set while FX0A is replaying.
type Keypad struct {
	keys    Keys
	waiting bool
}

// Latch replaces the whole key state.
func (k *Keypad) Latch(keys Keys) {
	k.keys = keys
}

// Pressed reports whether key is down. Only the low nibble of key is used.
func (k *Keypad) Pressed(key uint8) bool {
	return k.keys[key&0x0F]
}

// AnyPressed returns the lowest numbered key that is down.
func (k *Keypad) AnyPressed() (uint8, bool) {
	for i := range uint8(KeyCount) {
		if k.keys[i] {
			return i, true
		}
	}
	return 0, false
}

// Waiting reports whether the processor is blocked on FX0A.
func (k *Keypad) Waiting() bool {
	return k.waiting
}
