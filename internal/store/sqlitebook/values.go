package sqlitebook

import (
	"fmt"
	"strconv"
	"time"

	"tvlog/internal/coerce"
)

// Value kinds stored next to each cell's text.
const (
	kindText    = "text"
	kindNumber  = "number"
	kindInteger = "integer"
	kindBool    = "bool"
)

// encodeValue maps a raw cell value to its stored kind and text. A nil value
// means "clear the cell" and is reported with ok=false.
func encodeValue(v any) (kind, text string, ok bool, err error) {
	switch value := v.(type) {
	case nil:
		return "", "", false, nil
	case string:
		return kindText, value, true, nil
	case bool:
		if value {
			return kindBool, "1", true, nil
		}
		return kindBool, "0", true, nil
	case int:
		return kindInteger, strconv.Itoa(value), true, nil
	case int32:
		return kindInteger, strconv.FormatInt(int64(value), 10), true, nil
	case int64:
		return kindInteger, strconv.FormatInt(value, 10), true, nil
	case float32:
		return kindNumber, strconv.FormatFloat(float64(value), 'g', -1, 32), true, nil
	case float64:
		return kindNumber, strconv.FormatFloat(value, 'g', -1, 64), true, nil
	case time.Time:
		return kindText, coerce.FormatDate(value), true, nil
	default:
		return "", "", false, fmt.Errorf("unsupported cell value type %T", v)
	}
}

// decodeValue is the inverse of encodeValue. Unknown kinds fall back to text
// so a newer workbook never breaks a read.
func decodeValue(kind, text string) any {
	switch kind {
	case kindBool:
		return text == "1"
	case kindInteger:
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return n
		}
	case kindNumber:
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f
		}
	}
	return text
}
