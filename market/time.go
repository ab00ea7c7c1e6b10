package market

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Timestamp layouts the backend is known to emit. Python's isoformat() omits
// the timezone on naive datetimes, so plain RFC 3339 parsing is not enough.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time is a timestamp that decodes both RFC 3339 and the backend's
// zone-less ISO forms. Zone-less values are taken as UTC.
type Time struct {
	time.Time
}

// NewTime wraps a stdlib time.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return errors.Errorf("[Time.UnmarshalJSON] unrecognised timestamp %q", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}
