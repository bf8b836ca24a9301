package param

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingQuery(t *testing.T) {
	var params struct {
		Account string `json:"account" valid:"required"`
		Limit   int    `json:"limit"`
	}

	r := httptest.NewRequest("GET", "/transactions?account=alice&limit=20", nil)
	require.Nil(t, Binding(r, &params))
	assert.Equal(t, "alice", params.Account)
	assert.Equal(t, 20, params.Limit)

	var missing struct {
		Account string `json:"account" valid:"required"`
		Limit   int    `json:"limit"`
	}
	r = httptest.NewRequest("GET", "/transactions?limit=20", nil)
	assert.NotNil(t, Binding(r, &missing))
}

func TestBindingBody(t *testing.T) {
	var params struct {
		Account string      `json:"account" valid:"required"`
		Amount  json.Number `json:"amount" valid:"required"`
		Lock    json.Number `json:"lock"`
	}

	body := `{"account":"alice","amount":"1000000000000000000000000","lock":2592000}`
	r := httptest.NewRequest("POST", "/savings/deposit", strings.NewReader(body))
	require.Nil(t, Binding(r, &params))

	amount, err := Amount(params.Amount)
	require.Nil(t, err)
	assert.Equal(t, "1000000000000000000000000", amount.Dec())

	lock, err := Duration(params.Lock)
	require.Nil(t, err)
	assert.Equal(t, 30*24*time.Hour, lock)
}

func TestAmount(t *testing.T) {
	_, err := Amount("")
	assert.NotNil(t, err)

	_, err = Amount("1.5")
	assert.NotNil(t, err)

	_, err = Amount("-1")
	assert.NotNil(t, err)

	amount, err := Amount(json.Number("100"))
	require.Nil(t, err)
	assert.Equal(t, uint64(100), amount.Uint64())
}

func TestDurationRange(t *testing.T) {
	_, err := Duration(json.Number("20000000000"))
	assert.NotNil(t, err)

	_, err = Duration(json.Number("-1"))
	assert.NotNil(t, err)

	limit := json.Number(fmt.Sprint(math.MaxInt64 / int64(time.Second)))
	d, err := Duration(limit)
	require.Nil(t, err)
	assert.True(t, d > 0)
}

func TestTime(t *testing.T) {
	assert.True(t, Time("").IsZero())
	assert.True(t, Time("yesterday").IsZero())
	assert.Equal(t, int64(1600000000), Time("2020-09-13T12:26:40Z").Unix())
}
