package sync

import (
	"errors"
	"fmt"
	"time"
)

// Mappable provides a common interface for types that can be mapped.
// This enables shared field mapping logic.
type Mappable interface {
	GetFields() map[string]interface{}
	SetField(key string, value interface{})
}

// Row holds the mapped fields of one source row, keyed by player field name.
type Row map[string]interface{}

// GetFields returns the row's field map.
func (r Row) GetFields() map[string]interface{} { return r }

// SetField sets a field on the row.
func (r Row) SetField(key string, value interface{}) { r[key] = value }

func (r Row) String(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

func (r Row) Bool(key string) bool {
	if b, ok := r[key].(bool); ok {
		return b
	}
	return false
}

func (r Row) OptionalBool(key string) *bool {
	if b, ok := r[key].(bool); ok {
		return &b
	}
	return nil
}

func (r Row) Time(key string) *time.Time {
	if t, ok := r[key].(time.Time); ok {
		return &t
	}
	return nil
}

// TimestampLayouts are tried in order when mapping timestamp fields.
var TimestampLayouts = []string{time.RFC3339, "2006-01-02"}

func parseTimestamp(s string) (time.Time, error) {
	var err error
	for _, layout := range TimestampLayouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// MapFields maps fields from a source to a destination using the provided mappings.
// Missing values are mapped to nil. Timestamps that cannot be parsed are also
// mapped to nil and reported in the returned error.
func MapFields(mappings FieldMappings, source Source, destination Mappable) error {
	var errs []error
	if mappings.Strings != nil {
		for field, path := range mappings.Strings {
			// handle static strings as well as dynamic paths
			// escaping the value in backticks allows us to distinguish between the two
			if len(path) >= 2 && path[0] == '`' && path[len(path)-1] == '`' {
				destination.SetField(field, path[1:len(path)-1])
				continue
			}
			if result, exists := source.StringForPath(path); exists {
				destination.SetField(field, result)
			} else {
				destination.SetField(field, nil)
			}
		}
	}
	if mappings.Booleans != nil {
		for field, path := range mappings.Booleans {
			if result, exists := source.BoolForPath(path); exists {
				destination.SetField(field, result)
			} else {
				destination.SetField(field, nil)
			}
		}
	}
	if mappings.Timestamps != nil {
		for field, path := range mappings.Timestamps {
			result, exists := source.StringForPath(path)
			if !exists || result == "" {
				destination.SetField(field, nil)
				continue
			}
			t, err := parseTimestamp(result)
			if err != nil {
				errs = append(errs, fmt.Errorf("field %s has invalid timestamp %q", field, result))
				destination.SetField(field, nil)
				continue
			}
			destination.SetField(field, t)
		}
	}
	return errors.Join(errs...)
}
