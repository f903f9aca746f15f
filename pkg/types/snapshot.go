package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SnapshotVersion tags the serialized layout so stored rows stay readable if
// the shape ever changes.
const SnapshotVersion = 1

// Snapshot is a decoupled copy of an entity's field values taken at write
// time. It is persisted as JSONB and never holds a live reference, so later
// mutation of the entity cannot alter a stored row.
type Snapshot struct {
	Version int            `json:"version"`
	Fields  map[string]any `json:"fields"`
}

// NewSnapshot copies the provided fields into a fresh snapshot. The top-level
// map is copied so the caller may keep mutating its own map afterwards.
func NewSnapshot(fields map[string]any) *Snapshot {
	if fields == nil {
		return nil
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return &Snapshot{Version: SnapshotVersion, Fields: copied}
}

// Get returns the named field value and whether it was captured.
func (s *Snapshot) Get(key string) (any, bool) {
	if s == nil || s.Fields == nil {
		return nil, false
	}
	v, ok := s.Fields[key]
	return v, ok
}

// Value implements driver.Valuer for JSONB storage.
func (s Snapshot) Value() (driver.Value, error) {
	if s.Fields == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *Snapshot) Scan(src any) error {
	if src == nil {
		*s = Snapshot{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("snapshot: unsupported scan type %T", src)
	}
	if len(raw) == 0 {
		*s = Snapshot{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

// GormDataType keeps AutoMigrate on the JSONB column type.
func (Snapshot) GormDataType() string {
	return "jsonb"
}
