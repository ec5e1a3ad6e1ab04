package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MissingText is the textual form of a missing cell.
const MissingText = "nan"

// ToText converts a cell value to the text the name rules operate on.
// Missing values (nil, nil pointers, NaN) become MissingText.
func ToText(v any) string {
	switch x := v.(type) {
	case nil:
		return MissingText
	case string:
		return x
	case *string:
		if x == nil {
			return MissingText
		}
		return *x
	case []byte:
		return string(x)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case *int64:
		if x == nil {
			return MissingText
		}
		return strconv.FormatInt(*x, 10)
	case *float64:
		if x == nil {
			return MissingText
		}
		return formatFloat(*x, 64)
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	default:
		return fmt.Sprint(v)
	}
}

// formatFloat uses plain notation for ordinary magnitudes and renders integral
// floats with a trailing ".0" so 12345.0 does not read back as the integer 12345.
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return MissingText
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	format := byte('g')
	if abs := math.Abs(f); abs == 0 || (abs >= 1e-4 && abs < 1e16) {
		format = 'f'
	}
	s := strconv.FormatFloat(f, format, -1, bitSize)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
