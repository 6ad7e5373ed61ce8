package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// QuestionIDs is an ordered sequence of question identifiers. It is
// stored as a JSON array in a text column; in-memory callers only ever
// see the typed slice.
type QuestionIDs []uint

func (ids QuestionIDs) Value() (driver.Value, error) {
	if ids == nil {
		ids = QuestionIDs{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (ids *QuestionIDs) Scan(src interface{}) error {
	if src == nil {
		*ids = QuestionIDs{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into QuestionIDs", src)
	}
	if len(data) == 0 {
		*ids = QuestionIDs{}
		return nil
	}
	return json.Unmarshal(data, ids)
}
