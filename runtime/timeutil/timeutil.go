// Package timeutil holds the time helpers called by generated entities.
package timeutil

import (
	"fmt"
	"time"
)

// ImportPath is the import path generated code uses for this package.
const ImportPath = "github.com/syssam/weave/runtime/timeutil"

// Precision is the resolution of high-precision timestamps.
const Precision = time.Microsecond

// now is replaced in tests.
var now = time.Now

// Now returns the current time truncated to Precision.
func Now() time.Time {
	return now().Truncate(Precision)
}

// Epoch returns the current time as whole seconds since the Unix epoch.
func Epoch() int64 {
	return now().Unix()
}

// DaysAgo returns the time n days before now.
func DaysAgo(n int) time.Time {
	return now().AddDate(0, 0, -n)
}

// ToTime converts a value assigned to a temporal column. It accepts
// time.Time, *time.Time and epoch seconds of any integer type.
func ToTime(v any) (time.Time, error) {
	switch v := v.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, nil
		}
		return *v, nil
	case int64:
		return time.Unix(v, 0), nil
	case int:
		return time.Unix(int64(v), 0), nil
	case int32:
		return time.Unix(int64(v), 0), nil
	case uint32:
		return time.Unix(int64(v), 0), nil
	default:
		return time.Time{}, fmt.Errorf("timeutil: cannot convert %T to time.Time", v)
	}
}

// MustTime is like ToTime but panics on unsupported values.
func MustTime(v any) time.Time {
	t, err := ToTime(v)
	if err != nil {
		panic(err)
	}
	return t
}
