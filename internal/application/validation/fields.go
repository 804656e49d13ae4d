package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Fields is a decoded request body. Numbers may arrive as float64 or
// json.Number depending on how the body was decoded.
type Fields map[string]any

// Has reports whether the field was sent, even as null.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Filled reports whether the field was sent with a non-blank value.
func (f Fields) Filled(key string) bool {
	v, ok := f[key]
	return ok && !isBlank(v)
}

// String returns the field as a trimmed string, or "" when blank.
func (f Fields) String(key string) string {
	s, _ := asString(f[key])
	return strings.TrimSpace(s)
}

// StringPtr returns nil for a blank value.
func (f Fields) StringPtr(key string) *string {
	if !f.Filled(key) {
		return nil
	}
	s := f.String(key)
	return &s
}

// Int64 returns the field as an integer, or 0 when it is not one.
func (f Fields) Int64(key string) int64 {
	n, _ := asInt64(f[key])
	return n
}

// Int64Ptr returns nil for a blank or non-integer value.
func (f Fields) Int64Ptr(key string) *int64 {
	n, ok := asInt64(f[key])
	if !ok {
		return nil
	}
	return &n
}

// Bool returns the field as a boolean, false when blank.
func (f Fields) Bool(key string) bool {
	b, _ := asBool(f[key])
	return b
}

// Decimal returns the field as a decimal, zero when not numeric.
func (f Fields) Decimal(key string) decimal.Decimal {
	d, _ := asDecimal(f[key])
	return d
}

// Date returns the field parsed as a date, zero when not a date.
func (f Fields) Date(key string) time.Time {
	t, _ := asDate(f[key])
	return t
}

// Only returns the subset of fields named in keys that were sent.
func (f Fields) Only(keys ...string) Fields {
	out := make(Fields, len(keys))
	for _, k := range keys {
		if v, ok := f[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Merge returns a copy of f overlaid with other.
func (f Fields) Merge(other Fields) Fields {
	out := make(Fields, len(f)+len(other))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// isBlank treats nil, whitespace-only strings and empty collections as blank.
func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

func asString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	}
	return "", false
}

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// asInt64 rejects values outside the int64 range rather than wrapping them.
func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) || x >= 1<<63 || x < math.MinInt64 {
			return 0, false
		}
		return int64(x), true
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, true
		}
		d, err := decimal.NewFromString(x.String())
		if err != nil || !d.Equal(d.Truncate(0)) || d.GreaterThan(maxInt64) || d.LessThan(minInt64) {
			return 0, false
		}
		return d.IntPart(), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func asDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(x), true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		return d, err == nil
	}
	return decimal.Zero, false
}

func asBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.TrimSpace(x) {
		case "1":
			return true, true
		case "0":
			return false, true
		}
	default:
		if n, ok := asInt64(v); ok && (n == 0 || n == 1) {
			return n == 1, true
		}
	}
	return false, false
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func asDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// lookupValue normalises a value for use as a query argument.
func lookupValue(v any) any {
	switch x := v.(type) {
	case json.Number, float64:
		if n, ok := asInt64(x); ok {
			return n
		}
		s, _ := asString(x)
		return s
	case string:
		return strings.TrimSpace(x)
	}
	return v
}

// Sent reports whether key should be applied for op: always on create, and
// on update only when the request carried it.
func (f Fields) Sent(op Operation, key string) bool {
	return op == Create || f.Has(key)
}
