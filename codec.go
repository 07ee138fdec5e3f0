package valido

import (
	"fmt"
	"time"
)

// ParseDatetime accepts time.Time values as-is and adapts timestamp strings.
// With no layouts it accepts RFC3339, with optional fractional seconds; custom
// layouts are tried in order.
func ParseDatetime(layouts ...string) Validator {
	return AdaptBy(func(v any) (any, error) {
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			if len(layouts) == 0 {
				return parseRFC3339(t)
			}
			var err error
			for _, layout := range layouts {
				var out time.Time
				if out, err = time.Parse(layout, t); err == nil {
					return out, nil
				}
			}
			return nil, err
		}
		return nil, fmt.Errorf("must be datetime")
	})
}

func parseRFC3339(s string) (time.Time, error) {
	// RFC3339Nano also accepts timestamps without a fraction, so one layout
	// covers plain RFC3339 input too.
	return time.Parse(time.RFC3339Nano, s)
}

// ParseDuration accepts time.Duration values as-is and adapts strings such as
// "1h30m" via time.ParseDuration.
func ParseDuration() Validator {
	return AdaptBy(func(v any) (any, error) {
		switch d := v.(type) {
		case time.Duration:
			return d, nil
		case string:
			return time.ParseDuration(d)
		}
		return nil, fmt.Errorf("must be duration")
	})
}
