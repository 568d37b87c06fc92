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

// StackDepth is the number of return addresses the call stack can hold.
const StackDepth int = 16

// Stack holds subroutine return addresses. sp counts the occupied entries.
type Stack struct {
	entries [StackDepth]uint16
	sp      uint8
}

// Push stores a return address, failing when all entries are in use.
func (s *Stack) Push(addr uint16) error {
	if int(s.sp) >= len(s.entries) {
		return fmt.Errorf("%w: %d nested calls", ErrStackOverflow, len(s.entries))
	}
	s.entries[s.sp] = addr
	s.sp++
	return nil
}

// Pop removes the most recent return address.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, fmt.Errorf("%w: return without call", ErrStackUnderflow)
	}
	s.sp--
	return s.entries[s.sp], nil
}

// Len returns the number of addresses on the stack.
func (s *Stack) Len() int {
	return int(s.sp)
}
