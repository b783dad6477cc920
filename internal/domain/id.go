package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type idKind uint8

const (
	idNull idKind = iota
	idNumber
	idString
)

// ID is an opaque identifier as sent by the admin API. Numbers are the
// norm, but a string or null decodes too. A number and a string with the
// same digits are distinct ids; all null ids are equal. The zero value is null.
type ID struct {
	kind idKind
	raw  string
}

// NumericID returns the id the API sends as the JSON number n.
func NumericID(n int64) ID {
	return ID{kind: idNumber, raw: strconv.FormatInt(n, 10)}
}

// StringID returns the id the API sends as the JSON string s.
func StringID(s string) ID {
	return ID{kind: idString, raw: s}
}

// IsNull reports whether the id was null or absent.
func (id ID) IsNull() bool {
	return id.kind == idNull
}

// String renders id inside a text line, where null reads "null".
func (id ID) String() string {
	if id.kind == idNull {
		return "null"
	}
	return id.raw
}

// Cell renders id for a table cell, where null is blank.
func (id ID) Cell() string {
	if id.kind == idNull {
		return ""
	}
	return id.raw
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ID{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id: unsupported value %s", data)
		}
		*id = ID{kind: idNumber, raw: canonicalNumber(n)}
	}
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case idNumber:
		return []byte(id.raw), nil
	case idString:
		return json.Marshal(id.raw)
	default:
		return []byte("null"), nil
	}
}

// canonicalNumber spells equal numbers alike, so 7 and 7.0 are one id.
func canonicalNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}
