package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonColumn stores a value as a MySQL JSON column.
type jsonColumn struct {
	json.RawMessage
}

func newJSONColumn(v interface{}) (jsonColumn, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return jsonColumn{}, err
	}
	return jsonColumn{RawMessage: data}, nil
}

func (j *jsonColumn) Unmarshal(v interface{}) error {
	if len(j.RawMessage) == 0 {
		return nil
	}
	return json.Unmarshal(j.RawMessage, v)
}

func (j *jsonColumn) Scan(value interface{}) error {
	if value == nil {
		j.RawMessage = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		j.RawMessage = append(json.RawMessage(nil), v...)
	case string:
		j.RawMessage = json.RawMessage(v)
	default:
		return fmt.Errorf("cannot scan %T into jsonColumn", value)
	}

	return nil
}

func (j jsonColumn) Value() (driver.Value, error) {
	if len(j.RawMessage) == 0 {
		return []byte("null"), nil
	}
	return []byte(j.RawMessage), nil
}
