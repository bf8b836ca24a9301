package id

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUUIDFromString(t *testing.T) {
	a := UUIDFromString("ticker-eth")
	assert.Equal(t, a, UUIDFromString("ticker-eth"))
	assert.NotEqual(t, a, UUIDFromString("ticker-btc"))

	u, err := uuid.FromString(a)
	assert.Nil(t, err)
	assert.Equal(t, byte(3), u.Version())
}

func TestGenTraceID(t *testing.T) {
	assert.NotEqual(t, GenTraceID(), GenTraceID())
}
