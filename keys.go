package emul8

import (
	"sync"
	"time"

	"github.com/senojj/emul8/chip8"
)

// KeySource supplies the key snapshot latched into the processor before
// every cycle. Consume is called with the key that satisfied a key wait.
type KeySource interface {
	Keys() chip8.Keys
	Consume(key uint8)
}

// KeyLatch collects key events from an input goroutine and hands the
// emulator a consistent snapshot of all 16 keys.
type KeyLatch struct {
	mu    sync.Mutex
	down  chip8.Keys
	until [chip8.KeyCount]time.Time
	now   func() time.Time
}

// NewKeyLatch returns a latch with every key released.
func NewKeyLatch() *KeyLatch {
	return &KeyLatch{now: time.Now}
}

// Press marks key as held until Release is called.
func (l *KeyLatch) Press(key uint8) {
	l.mu.Lock()
	l.down[key&0x0F] = true
	l.mu.Unlock()
}

// Release marks key as no longer held.
func (l *KeyLatch) Release(key uint8) {
	l.mu.Lock()
	l.down[key&0x0F] = false
	l.until[key&0x0F] = time.Time{}
	l.mu.Unlock()
}

// Tap marks key as held for the hold duration. It serves input sources that
// only report presses, such as terminals.
func (l *KeyLatch) Tap(key uint8, hold time.Duration) {
	l.mu.Lock()
	l.until[key&0x0F] = l.now().Add(hold)
	l.mu.Unlock()
}

// Consume drops the pending tap of key so that one tap satisfies one key
// wait. Keys held with Press stay down until Release.
func (l *KeyLatch) Consume(key uint8) {
	l.mu.Lock()
	l.until[key&0x0F] = time.Time{}
	l.mu.Unlock()
}

// Keys returns the current key snapshot.
func (l *KeyLatch) Keys() chip8.Keys {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	keys := l.down
	for i, deadline := range l.until {
		if now.Before(deadline) {
			keys[i] = true
		}
	}
	return keys
}

// keyRunes maps the left side of a QWERTY keyboard onto the hex keypad:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  <=  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var keyRunes = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}
