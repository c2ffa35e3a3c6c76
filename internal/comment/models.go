package comment

import (
	"encoding/json"
	"errors"
)

// IDField is the wire and storage name of the store-assigned identifier.
const IDField = "_id"

var (
	ErrNotFound         = errors.New("comment not found")
	ErrInvalidPayload   = errors.New("invalid comment payload")
	ErrStoreUnavailable = errors.New("comment store unavailable")
)

// Comment is a schema-less comment record. Fields holds whatever the caller
// posted; ID is assigned by the store on insert.
type Comment struct {
	ID     string
	Fields map[string]interface{}
}

// New builds an unsaved comment from a decoded payload. A caller-supplied
// _id is dropped.
func New(fields map[string]interface{}) *Comment {
	f := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if k == IDField {
			continue
		}
		f[k] = v
	}
	return &Comment{Fields: f}
}

// Clone returns a shallow copy with its own field map.
func (c *Comment) Clone() *Comment {
	out := New(c.Fields)
	out.ID = c.ID
	return out
}

// MarshalJSON renders the comment as one flat object: every stored field plus _id.
func (c *Comment) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(c.Fields)+1)
	for k, v := range c.Fields {
		out[k] = v
	}
	out[IDField] = c.ID
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (c *Comment) UnmarshalJSON(b []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	id, _ := raw[IDField].(string)
	*c = *New(raw)
	c.ID = id
	return nil
}
