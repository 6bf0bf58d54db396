package catalog

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// SplitList flattens values that may each hold a comma separated list and
// drops blanks: ("a, b", "", "c") → [a b c].
func SplitList(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// ParseSizes accepts a JSON array string (`["S","M"]`) or a comma list
func ParseSizes(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	if strings.HasPrefix(raw, "[") {
		var arr []any
		if err := json.Unmarshal([]byte(raw), &arr); err == nil {
			out := make([]string, 0, len(arr))
			for _, v := range arr {
				s := strings.TrimSpace(toString(v))
				if s != "" {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return SplitList(raw)
}

// ParseBool interprets form flags: true, 1, yes and on (any case) are true
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

// ToBool is the strict flag reader used for product updates: only "true"
// and "1" are true.
func ToBool(raw string) bool {
	return raw == "true" || raw == "1"
}

// ParsePrice parses a decimal price; malformed input yields zero, which
// fails the positive-price rule.
func ParsePrice(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
