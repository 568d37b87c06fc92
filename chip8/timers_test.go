package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTimersTick(t *testing.T) {
	var tm Timers
	tm.SetDelay(2)
	tm.SetSound(1)

	tm.Tick()
	assert.Equal(t, uint8(1), tm.Delay())
	assert.Equal(t, uint8(0), tm.Sound())

	tm.Tick()
	tm.Tick()
	assert.Equal(t, uint8(0), tm.Delay())
	assert.Equal(t, uint8(0), tm.Sound())
}
