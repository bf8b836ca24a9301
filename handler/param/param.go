package param

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"cdp/pkg/number"

	"github.com/asaskevich/govalidator"
	"github.com/gorilla/schema"
	"github.com/holiman/uint256"
	"github.com/spf13/cast"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
}

// Binding decode query values for GET and the json body otherwise, then validate
func Binding(r *http.Request, v interface{}) error {
	if r.Method == http.MethodGet {
		if err := decoder.Decode(v, r.URL.Query()); err != nil {
			return err
		}
	} else {
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(v); err != nil {
			return err
		}
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// Amount parse a base unit amount given as a json string or number
func Amount(v json.Number) (*uint256.Int, error) {
	s := v.String()
	if s == "" {
		return nil, errors.New("amount required")
	}

	return number.Parse(s)
}

// Duration parse seconds given as a json string or number
func Duration(v json.Number) (time.Duration, error) {
	seconds, err := cast.ToInt64E(v.String())
	if err != nil {
		return 0, err
	}

	if seconds < 0 || seconds > math.MaxInt64/int64(time.Second) {
		return 0, fmt.Errorf("duration %d seconds out of range", seconds)
	}

	return time.Duration(seconds) * time.Second, nil
}

// Time parse an offset such as 2006-01-02T15:04:05Z, zero time if empty or malformed
func Time(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	t, err := cast.ToTimeE(s)
	if err != nil {
		return time.Time{}
	}

	return t
}
