package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an HR API identifier. The API returns numeric ids on most resources
// and string ids on a few, so both decode into the same string form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("upstream id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Ref is a foreign key that the HR API sends either as a bare id or as a
// nested object with an "id" field.
type Ref struct {
	ID   ID     `json:"id"`
	Name string `json:"name,omitempty"`
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		type plain Ref
		var p plain
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
		*r = Ref(p)
		return nil
	}
	return json.Unmarshal(b, &r.ID)
}
