package intelligence

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// looseText accepts the shapes models produce for a text field: a string,
// a number or boolean, a list of strings, or null.
type looseText string

func (t *looseText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = looseText(s)
	case '[':
		var items []looseText
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		parts := make([]string, 0, len(items))
		for _, it := range items {
			if it != "" {
				parts = append(parts, string(it))
			}
		}
		*t = looseText(strings.Join(parts, "; "))
	case '{':
		*t = looseText(data)
	default:
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		switch x := v.(type) {
		case float64:
			*t = looseText(strconv.FormatFloat(x, 'f', -1, 64))
		case bool:
			*t = looseText(strconv.FormatBool(x))
		}
	}
	return nil
}

// looseList accepts either a list of strings or a single string.
type looseList []string

func (l *looseList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*l = nil
		return nil
	}
	if data[0] != '[' {
		var t looseText
		if err := json.Unmarshal(data, &t); err != nil {
			return err
		}
		if t != "" {
			*l = looseList{string(t)}
		}
		return nil
	}

	var items []looseText
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(looseList, 0, len(items))
	for _, it := range items {
		out = append(out, string(it))
	}
	*l = out
	return nil
}
