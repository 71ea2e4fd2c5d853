package entity

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MaxItemID - верхняя граница идентификатора для всех входных форм
const MaxItemID = math.MaxInt32

// ParseItemID разбирает идентификатор из пути, JSON или gRPC.
// Всё, что не является целым числом в диапазоне 1..MaxItemID, даёт ok=false.
func ParseItemID(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return ParseItemID(int64(v))
	case int32:
		return ParseItemID(int64(v))
	case int64:
		if v <= 0 || v > MaxItemID {
			return 0, false
		}
		return int(v), true
	case float64:
		if v <= 0 || v != math.Trunc(v) || v > MaxItemID {
			return 0, false
		}
		return int(v), true
	case json.Number:
		return ParseItemID(v.String())
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return ParseItemID(id)
	default:
		return 0, false
	}
}
