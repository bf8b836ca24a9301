package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockAllowed(t *testing.T) {
	p := DefaultPolicy()

	assert.True(t, p.LockAllowed(time.Second))
	assert.True(t, p.LockAllowed(7*24*time.Hour))
	assert.False(t, p.LockAllowed(0))
	assert.False(t, p.LockAllowed(-time.Hour))
	assert.False(t, p.LockAllowed(500*time.Millisecond))
	assert.False(t, p.LockAllowed(30*24*time.Hour+time.Millisecond))

	p.StrictLockPresets = true
	assert.True(t, p.LockAllowed(30*24*time.Hour))
	assert.False(t, p.LockAllowed(7*24*time.Hour))
}
