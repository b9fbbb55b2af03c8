package models

import (
	"pansyslog.io/internal/schema"
)

// PANLogEntry is one decoded PAN syslog line. Values are kept by position so
// iteration order always follows the governing schema. LogType holds the
// value at schema.TypeField; the schema names that position Subtype, so the
// Log_Type key of Fields is position 2, not the discriminator.
type PANLogEntry struct {
	LineNum int            `json:"line"`
	LogType string         `json:"log_type"`
	Schema  *schema.Schema `json:"-"`
	Values  []string       `json:"-"`
	Dropped int            `json:"dropped,omitempty"`
}

// Len is the number of mapped positions.
func (e *PANLogEntry) Len() int {
	return len(e.Values)
}

// At returns the value at pos, if the line carried it.
func (e *PANLogEntry) At(pos int) (string, bool) {
	if pos < 0 || pos >= len(e.Values) {
		return "", false
	}
	return e.Values[pos], true
}

// Get looks a value up by field name.
func (e *PANLogEntry) Get(name string) (string, bool) {
	if e.Schema == nil {
		return "", false
	}
	pos, ok := e.Schema.IndexOf(name)
	if !ok {
		return "", false
	}
	return e.At(pos)
}

// Fields returns the name to value mapping for every mapped position.
func (e *PANLogEntry) Fields() map[string]string {
	m := make(map[string]string, len(e.Values))
	if e.Schema == nil {
		return m
	}
	for i, v := range e.Values {
		name, err := e.Schema.NameAt(i)
		if err != nil {
			break
		}
		m[name] = v
	}
	return m
}

// FieldRow is the long-format Parquet row: one row per decoded field, so
// TRAFFIC and THREAT records share a single file layout.
type FieldRow struct {
	Line     int64  `parquet:"name=line, type=INT64"`
	LogType  string `parquet:"name=log_type, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Position int32  `parquet:"name=position, type=INT32"`
	Name     string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Value    string `parquet:"name=value, type=BYTE_ARRAY, convertedtype=UTF8"`
}
