package emul8

import (
	"sync"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/senojj/emul8/chip8"
)

func TestKeyLatchPressRelease(t *testing.T) {
	l := NewKeyLatch()
	assert.Equal(t, chip8.Keys{}, l.Keys())

	l.Press(0xA)
	l.Press(0x13) // low nibble only
	keys := l.Keys()
	assert.True(t, keys[0xA])
	assert.True(t, keys[0x3])

	l.Release(0xA)
	keys = l.Keys()
	assert.False(t, keys[0xA])
	assert.True(t, keys[0x3])
}

func TestKeyLatchTap(t *testing.T) {
	now := time.Unix(1000, 0)
	l := NewKeyLatch()
	l.now = func() time.Time { return now }

	l.Tap(0x5, 100*time.Millisecond)
	assert.True(t, l.Keys()[0x5])

	now = now.Add(99 * time.Millisecond)
	assert.True(t, l.Keys()[0x5])

	now = now.Add(time.Millisecond)
	assert.False(t, l.Keys()[0x5])

	l.Tap(0x5, time.Second)
	l.Release(0x5)
	assert.False(t, l.Keys()[0x5])
}

func TestKeyLatchConsume(t *testing.T) {
	now := time.Unix(1000, 0)
	l := NewKeyLatch()
	l.now = func() time.Time { return now }

	l.Tap(0x5, time.Second)
	l.Consume(0x5)
	assert.False(t, l.Keys()[0x5])

	l.Press(0x6)
	l.Tap(0x6, time.Second)
	l.Consume(0x16) // low nibble only
	assert.True(t, l.Keys()[0x6])

	l.Release(0x6)
	assert.False(t, l.Keys()[0x6])
}

func TestKeyLatchConcurrentSnapshots(t *testing.T) {
	l := NewKeyLatch()

	var wg sync.WaitGroup
	wg.Go(func() {
		for range 1000 {
			for k := range uint8(chip8.KeyCount) {
				l.Press(k)
			}
			for k := range uint8(chip8.KeyCount) {
				l.Release(k)
			}
		}
	})

	for range 1000 {
		_ = l.Keys()
	}
	wg.Wait()
	assert.Equal(t, chip8.Keys{}, l.Keys())
}

func TestKeyRunes(t *testing.T) {
	seen := map[uint8]bool{}
	for _, key := range keyRunes {
		seen[key] = true
	}
	assert.Equal(t, chip8.KeyCount, len(seen))
	assert.Equal(t, uint8(0xC), keyRunes['4'])
	assert.Equal(t, uint8(0x0), keyRunes['x'])
}
