// Package schema holds the static field layouts for Palo Alto Networks
// syslog records. A record's layout is chosen by the value found at
// TypeField; the tables are built once at init and never change.
package schema

import (
	"fmt"
	"strings"

	panerrors "pansyslog.io/internal/errors"
)

// TypeField is the zero-based position of the log type discriminator.
const TypeField = 3

// Kind identifies which layout governs a record.
type Kind int

const (
	KindUnsupported Kind = iota
	KindTraffic
	KindThreat
)

func (k Kind) String() string {
	switch k {
	case KindTraffic:
		return "TRAFFIC"
	case KindThreat:
		return "THREAT"
	default:
		return "UNSUPPORTED"
	}
}

// Schema is an immutable, ordered list of field names for one log type.
type Schema struct {
	kind   Kind
	fields []string
	index  map[string]int
}

var (
	Traffic = mustSchema(KindTraffic, trafficFields)
	Threat  = mustSchema(KindThreat, threatFields)
)

func mustSchema(kind Kind, fields []string) *Schema {
	index := make(map[string]int, len(fields))
	for i, name := range fields {
		if prev, dup := index[name]; dup {
			panic(fmt.Sprintf("schema %s: field %q at %d duplicates position %d", kind, name, i, prev))
		}
		index[name] = i
	}
	return &Schema{kind: kind, fields: fields, index: index}
}

// KindOf maps a discriminator value to its layout kind.
func KindOf(logType string) Kind {
	switch logType {
	case "TRAFFIC":
		return KindTraffic
	case "THREAT":
		return KindThreat
	default:
		return KindUnsupported
	}
}

// For returns the schema governing records whose discriminator is logType.
func For(logType string) (*Schema, error) {
	switch KindOf(logType) {
	case KindTraffic:
		return Traffic, nil
	case KindThreat:
		return Threat, nil
	}

	switch {
	case IsKnownLogType(logType):
		return nil, fmt.Errorf("log type %q has no field table: %w", logType, panerrors.ErrUnsupportedLogType)
	case IsSubtype(logType):
		return nil, fmt.Errorf("subtype %q found at position %d where the log type belongs: %w",
			logType, TypeField, panerrors.ErrUnsupportedLogType)
	default:
		return nil, fmt.Errorf("log type %q: %w", logType, panerrors.ErrUnsupportedLogType)
	}
}

// Modeled returns every schema that has a field table.
func Modeled() []*Schema {
	return []*Schema{Traffic, Threat}
}

// MaxLen is the length of the widest modeled schema.
func MaxLen() int {
	n := 0
	for _, s := range Modeled() {
		if s.Len() > n {
			n = s.Len()
		}
	}
	return n
}

func (s *Schema) Kind() Kind   { return s.kind }
func (s *Schema) Name() string { return s.kind.String() }
func (s *Schema) Len() int     { return len(s.fields) }

// NameAt returns the field name at pos.
func (s *Schema) NameAt(pos int) (string, error) {
	if pos < 0 || pos >= len(s.fields) {
		return "", fmt.Errorf("%s position %d (schema has %d fields): %w",
			s.Name(), pos, len(s.fields), panerrors.ErrOutOfRange)
	}
	return s.fields[pos], nil
}

// IndexOf returns the position of name, if the schema defines it.
func (s *Schema) IndexOf(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Fields returns a copy of the ordered field names.
func (s *Schema) Fields() []string {
	return append([]string(nil), s.fields...)
}

// IsKnownLogType reports whether v is a PAN log type name, modeled or not.
func IsKnownLogType(v string) bool {
	for _, lt := range LogTypes {
		if lt == v {
			return true
		}
	}
	return false
}

// IsSubtype reports whether v is a TRAFFIC subtype. Firmware writes these in
// lower case, so the comparison ignores case.
func IsSubtype(v string) bool {
	for _, st := range Subtypes {
		if strings.EqualFold(st, v) {
			return true
		}
	}
	return false
}
