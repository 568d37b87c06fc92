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
	Width  int = 64
	Height int = 32
	Area   int = Width * Height

	spriteWidth = 8
)

// Frame is a snapshot of the framebuffer, one byte per pixel in row-major
// order. Every cell is 0 or 1.
type Frame [Area]byte

// At returns the pixel at column x, row y. Coordinates must be on screen.
func (f *Frame) At(x, y int) byte {
	return f[y*Width+x]
}

// Display is the 64x32 monochrome framebuffer. Clear and Draw mark it dirty;
// the render sink consumes the dirty mark with Consume.
type Display struct {
	pixels Frame
	dirty  bool
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	for i := range d.pixels {
		d.pixels[i] = 0
	}
	d.dirty = true
}

// Draw XORs an 8 pixel wide sprite onto the framebuffer with its top left
// corner at (x mod 64, y mod 32). Pixels that run off an edge wrap around to
// the opposite edge. It reports whether any lit pixel was turned off.
func (d *Display) Draw(x, y byte, sprite []byte) bool {
	startX := int(x) % Width
	startY := int(y) % Height

	var collision bool
	for row, bits := range sprite {
		py := (startY + row) % Height
		for col := range spriteWidth {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := (startX + col) % Width
			cell := &d.pixels[py*Width+px]
			if *cell == 1 {
				collision = true
			}
			*cell ^= 1
		}
	}

	d.dirty = true
	return collision
}

// Pixel returns the pixel at column x, row y.
func (d *Display) Pixel(x, y int) (byte, error) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0, fmt.Errorf("%w: pixel (%d,%d)", ErrOutOfBounds, x, y)
	}
	return d.pixels[y*Width+x], nil
}

// Dirty reports whether the framebuffer changed since the last Consume.
func (d *Display) Dirty() bool {
	return d.dirty
}

// Frame returns a copy of the current framebuffer without touching the dirty
// mark.
func (d *Display) Frame() Frame {
	return d.pixels
}

// Consume returns a copy of the framebuffer and true if it changed since the
// previous call, clearing the dirty mark.
func (d *Display) Consume() (Frame, bool) {
	if !d.dirty {
		return Frame{}, false
	}
	d.dirty = false
	return d.pixels, true
}
