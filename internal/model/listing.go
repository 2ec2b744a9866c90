package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Sentinel substituted for missing well-known attributes at read time.
const NotAvailable = "N/A"

// WellKnownKeys are the attributes every listing is expected to carry by
// convention. The scraper emits them in Vietnamese, matching the source site.
var WellKnownKeys = []string{
	"Tiêu đề",  // title
	"Địa chỉ",  // address
	"Loại hình", // property type
	"Mức giá",  // price (free text, no currency parsing)
	"Diện tích", // area/size (free text)
	"Link",     // source URL
}

// Attributes is the loosely-typed field set of a listing, stored as a jsonb
// column. Arbitrary keys are accepted at write time; the schema lives in the
// reader, not the store.
type Attributes map[string]interface{}

func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		a = Attributes{}
	}
	return json.Marshal(a)
}

func (a *Attributes) Scan(value interface{}) error {
	if value == nil {
		*a = Attributes{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for attributes column")
	}
	return json.Unmarshal(raw, a)
}

// Listing is a schema-flexible real-estate record: a stable identifier plus
// whatever attributes the scraper or an admin supplied.
type Listing struct {
	ID         string     `gorm:"type:varchar(64);primaryKey"`
	Attributes Attributes `gorm:"type:jsonb"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MarshalJSON flattens the attribute set into the object itself so the wire
// shape is {"id": ..., "Tiêu đề": ..., ...}. Well-known keys that are absent
// or empty read back as the N/A sentinel.
func (l Listing) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(l.Attributes)+1)
	for k, v := range l.Attributes {
		out[k] = v
	}
	for _, k := range WellKnownKeys {
		if v, ok := out[k]; !ok || v == nil || v == "" {
			out[k] = NotAvailable
		}
	}
	out["id"] = l.ID
	return json.Marshal(out)
}

// UnmarshalJSON accepts any flat JSON object as a listing. An "id" key, if
// present, becomes the identifier; everything else lands in Attributes.
func (l *Listing) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if id, ok := raw["id"].(string); ok {
		l.ID = id
	}
	delete(raw, "id")
	l.Attributes = raw
	return nil
}
