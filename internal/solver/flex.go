package solver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexString holds a JSON value the server sends either as a string or as a number,
// e.g. "1.52 s" for processing_time and 431 for tokens_used.
type FlexString struct {
	Value   string
	Numeric bool
}

func Text(s string) FlexString {
	return FlexString{Value: s}
}

func Number(n float64) FlexString {
	return FlexString{Value: strconv.FormatFloat(n, 'f', -1, 64), Numeric: true}
}

// Empty reports whether the value should fall back to a placeholder.
// A numeric zero counts as empty, matching the web form which treated 0 as missing.
func (f FlexString) Empty() bool {
	if f.Value == "" {
		return true
	}
	if f.Numeric {
		n, err := strconv.ParseFloat(f.Value, 64)
		return err == nil && n == 0
	}
	return false
}

func (f FlexString) String() string {
	return f.Value
}

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = FlexString{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		*f = FlexString{Value: s}
	case '{', '[':
		return fmt.Errorf("unsupported value %s", string(data))
	case 't', 'f':
		*f = FlexString{Value: string(data)}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		*f = FlexString{Value: n.String(), Numeric: true}
	}
	return nil
}

func (f FlexString) MarshalJSON() ([]byte, error) {
	if f.Numeric {
		return []byte(f.Value), nil
	}
	return json.Marshal(f.Value)
}

func (f FlexString) IsZero() bool {
	return f.Value == ""
}

func (f FlexString) MarshalYAML() (interface{}, error) {
	if f.Numeric {
		if n, err := strconv.ParseFloat(f.Value, 64); err == nil {
			return n, nil
		}
	}
	return f.Value, nil
}
