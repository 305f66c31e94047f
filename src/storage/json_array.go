package storage

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONStringArray stores a []string as a JSON text column.
type JSONStringArray []string

// Scan implements sql.Scanner.
func (j *JSONStringArray) Scan(value interface{}) error {
	if value == nil {
		*j = []string{}
		return nil
	}

	switch v := value.(type) {
	case string:
		if v == "" || v == "[]" {
			*j = []string{}
			return nil
		}
		return json.Unmarshal([]byte(v), j)
	case []byte:
		if len(v) == 0 || string(v) == "[]" {
			*j = []string{}
			return nil
		}
		return json.Unmarshal(v, j)
	default:
		return fmt.Errorf("cannot scan type %T into JSONStringArray", value)
	}
}

// Value implements driver.Valuer.
func (j JSONStringArray) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(j))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Contains reports whether the array holds the given value.
func (j JSONStringArray) Contains(value string) bool {
	for _, v := range j {
		if v == value {
			return true
		}
	}
	return false
}
