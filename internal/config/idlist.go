package config

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/spf13/cast"
)

// ParseIDList parses a JSON array of integer IDs such as `[123, "456"]`.
// Elements may be JSON numbers or numeric strings. Anything else, including a
// single malformed element, yields nil.
func ParseIDList(raw string) []snowflake.ID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	// Snowflakes overflow float64, keep the literal digits.
	dec.UseNumber()

	var items []interface{}
	if err := dec.Decode(&items); err != nil {
		return nil
	}
	// Trailing garbage after the array is malformed too.
	if _, err := dec.Token(); err != io.EOF {
		return nil
	}

	return toIDs(items)
}

// parseIDValue accepts whatever viper holds for a list key: a JSON string
// from the environment or a list from the settings file.
func parseIDValue(v interface{}) []snowflake.ID {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return ParseIDList(val)
	case []interface{}:
		return toIDs(val)
	default:
		strs, err := cast.ToStringSliceE(val)
		if err != nil {
			return nil
		}
		items := make([]interface{}, len(strs))
		for i, s := range strs {
			items[i] = s
		}
		return toIDs(items)
	}
}

func toIDs(items []interface{}) []snowflake.ID {
	ids := make([]snowflake.ID, 0, len(items))
	for _, item := range items {
		var s string
		switch it := item.(type) {
		case json.Number:
			s = it.String()
		case string:
			s = strings.TrimSpace(it)
		case bool, nil:
			return nil
		default:
			str, err := cast.ToStringE(it)
			if err != nil {
				return nil
			}
			s = str
		}

		id, err := snowflake.Parse(s)
		if err != nil {
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}
