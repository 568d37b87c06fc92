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

import "time"

// TimerRate is the cadence at which the host must call Tick.
const TimerRate time.Duration = time.Second / 60 // 60hz

type timer struct {
	value uint8
}

func (t *timer) Value() uint8 {
	return t.value
}

func (t *timer) Set(n uint8) {
	t.value = n
}

func (t *timer) Dec() {
	if t.value > 0 {
		t.value--
	}
}

// Timers holds the delay and sound counters. They only count down when the
// host calls Tick; instruction execution never decrements them.
type Timers struct {
	delay timer
	sound timer
}

// Tick decrements both counters toward zero.
func (t *Timers) Tick() {
	t.delay.Dec()
	t.sound.Dec()
}

func (t *Timers) Delay() uint8 {
	return t.delay.Value()
}

func (t *Timers) SetDelay(n uint8) {
	t.delay.Set(n)
}

func (t *Timers) Sound() uint8 {
	return t.sound.Value()
}

func (t *Timers) SetSound(n uint8) {
	t.sound.Set(n)
}
