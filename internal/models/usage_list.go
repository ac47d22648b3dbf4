package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// UsageList stores the usage-location ids of an image as JSON, while
// tolerating legacy plain-string column data.
type UsageList []string

func (l UsageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *UsageList) Scan(value interface{}) error {
	if l == nil {
		return fmt.Errorf("models.UsageList: Scan on nil pointer")
	}
	if value == nil {
		*l = []string{}
		return nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("models.UsageList: unsupported Scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*l = []string{}
		return nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		*l = arr
		return nil
	}

	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		if single == "" {
			*l = []string{}
		} else {
			*l = []string{single}
		}
		return nil
	}

	*l = []string{raw}
	return nil
}

// Contains reports whether the list carries the given usage id.
func (l UsageList) Contains(usageID string) bool {
	for _, u := range l {
		if u == usageID {
			return true
		}
	}
	return false
}

// NormalizeUsedAt accepts the three wire shapes clients historically send
// for usedAt: a native JSON array, a JSON-encoded array string, or a plain
// comma-separated string when JSON parsing fails.
func NormalizeUsedAt(raw json.RawMessage) (UsageList, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, false
	}

	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return cleanUsageList(arr), true
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		var inner []string
		if err := json.Unmarshal([]byte(str), &inner); err == nil {
			return cleanUsageList(inner), true
		}
		return cleanUsageList(strings.Split(str, ",")), true
	}

	return cleanUsageList(strings.Split(trimmed, ",")), true
}

func cleanUsageList(items []string) UsageList {
	out := make(UsageList, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
