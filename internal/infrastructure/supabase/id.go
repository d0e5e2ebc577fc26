// internal/infrastructure/supabase/id.go
package supabase

import (
	"encoding/json"
	"strconv"
)

// ID is a row identifier. The backend may key tables with bigserial numbers
// or uuids; ID decodes either and re-encodes numbers as numbers so filters
// and inserts keep the column's native type.
type ID string

func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts numeric and string keys, and null
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits numeric ids unquoted
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}
