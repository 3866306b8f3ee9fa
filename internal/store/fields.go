package store

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/condomaster/condomaster-api/internal/gateway"
)

// Rows coming back from the store may use either naming convention, so every
// read goes through one of the two ordered lookups below.

// firstSet returns the value of the first key that is present and non-null.
func firstSet(row map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := row[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstTruthy returns the value of the first key holding a truthy value:
// nil, false, zero, NaN and "" are skipped.
func firstTruthy(row map[string]any, keys ...string) any {
	for _, k := range keys {
		if v := row[k]; truthy(v) {
			return v
		}
	}
	return nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case []byte:
		return string(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func stringOr(v any, fallback string) string {
	if v == nil {
		return fallback
	}
	return asString(v)
}

// asNumber converts v the way a whole-value numeric cast would. Values that
// do not parse become 0.
func asNumber(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asInt(v any) int {
	return int(asNumber(v))
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	default:
		return truthy(v)
	}
}

var (
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
)

// parseFloatPrefix reads the longest numeric prefix of v ("15000abc" is
// 15000). Anything without one is 0.
func parseFloatPrefix(v any) float64 {
	s, ok := v.(string)
	if !ok {
		return asNumber(v)
	}
	m := floatPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

// parseIntPrefix reads the leading integer of v ("3rd" is 3).
func parseIntPrefix(v any) int {
	s, ok := v.(string)
	if !ok {
		return int(math.Trunc(asNumber(v)))
	}
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// field maps one API key to one store column.
type field struct {
	api   string
	store string
	conv  func(any) any
}

// toRow copies every field present in body into a store row, converting
// where the field asks for it. Absent keys are left out so the row can be
// used for partial updates.
func toRow(body map[string]any, fields []field) gateway.Row {
	row := gateway.Row{}
	for _, f := range fields {
		v, ok := body[f.api]
		if !ok {
			continue
		}
		if f.conv != nil {
			v = f.conv(v)
		}
		row[f.store] = v
	}
	return row
}

func numberValue(v any) any { return asNumber(v) }
func intValue(v any) any    { return asInt(v) }
