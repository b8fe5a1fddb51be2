package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ActivityCollection maps activity name to record, keeping the key order of
// the JSON object it was decoded from.
type ActivityCollection struct {
	names   []string
	records map[string]ActivityRecord
}

// NewActivityCollection returns an empty collection.
func NewActivityCollection() *ActivityCollection {
	return &ActivityCollection{records: make(map[string]ActivityRecord)}
}

// Set adds or replaces an activity. A replaced activity keeps its position.
func (c *ActivityCollection) Set(name string, rec ActivityRecord) {
	if c.records == nil {
		c.records = make(map[string]ActivityRecord)
	}
	if _, ok := c.records[name]; !ok {
		c.names = append(c.names, name)
	}
	c.records[name] = rec
}

// Get returns the named activity.
func (c *ActivityCollection) Get(name string) (ActivityRecord, bool) {
	rec, ok := c.records[name]
	return rec, ok
}

// Names returns activity names in collection order.
func (c *ActivityCollection) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of activities.
func (c *ActivityCollection) Len() int {
	return len(c.names)
}

// UnmarshalJSON decodes a JSON object of name -> record, token by token so
// that server ordering survives.
func (c *ActivityCollection) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("activities: expected object, got %v", tok)
	}

	*c = ActivityCollection{records: make(map[string]ActivityRecord)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var rec ActivityRecord
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("activity %q: %w", name, err)
		}
		c.Set(name, rec)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the collection as a JSON object in collection order.
func (c *ActivityCollection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.records[name])
		if err != nil {
			return nil, fmt.Errorf("activity %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
