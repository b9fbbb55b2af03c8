package parser

import (
	"fmt"
	"strings"

	"github.com/leodido/go-syslog/v4"
	"github.com/leodido/go-syslog/v4/rfc3164"

	panerrors "pansyslog.io/internal/errors"
	"pansyslog.io/internal/schema"
	"pansyslog.io/models"
)

// Delimiter separates values in a PAN syslog payload
const Delimiter = ","

// DecodeOptions controls how raw lines are turned into entries
type DecodeOptions struct {
	// StripEnvelope removes a leading RFC3164 "<PRI>timestamp host tag:"
	// header before splitting. Field positions are unchanged because the
	// header never contains the delimiter.
	StripEnvelope bool

	// StrictLength rejects lines with more values than the schema defines
	// instead of dropping the surplus.
	StrictLength bool
}

// Decoder converts raw lines into entries. A Decoder that strips envelopes
// keeps parser state and must not be shared between goroutines.
type Decoder struct {
	opts     DecodeOptions
	envelope syslog.Machine
}

func NewDecoder(opts DecodeOptions) *Decoder {
	d := &Decoder{opts: opts}
	if opts.StripEnvelope {
		d.envelope = rfc3164.NewParser(rfc3164.WithBestEffort())
	}
	return d
}

// Decode splits one line (terminator already removed) and maps each value
// to the field name at its position in the schema picked by the value at
// schema.TypeField.
func (d *Decoder) Decode(line string) (*models.PANLogEntry, error) {
	raw := strings.Split(d.payload(line), Delimiter)
	if len(raw) <= schema.TypeField {
		return nil, fmt.Errorf("%d values, log type expected at position %d: %w",
			len(raw), schema.TypeField, panerrors.ErrMalformedRecord)
	}

	logType := raw[schema.TypeField]
	s, err := schema.For(logType)
	if err != nil {
		return nil, err
	}

	n, dropped := len(raw), 0
	if n > s.Len() {
		if d.opts.StrictLength {
			return nil, fmt.Errorf("%s record has %d values, schema defines %d: %w",
				s.Name(), n, s.Len(), panerrors.ErrFieldCount)
		}
		dropped = n - s.Len()
		n = s.Len()
	}

	return &models.PANLogEntry{
		LogType: logType,
		Schema:  s,
		Values:  raw[:n:n],
		Dropped: dropped,
	}, nil
}

// payload returns the CSV part of line, falling back to the whole line when
// there is no envelope or it does not parse.
func (d *Decoder) payload(line string) string {
	if d.envelope == nil || !strings.HasPrefix(line, "<") {
		return line
	}

	result, err := d.envelope.Parse([]byte(line))
	if result == nil {
		return line
	}
	msg, ok := result.(*rfc3164.SyslogMessage)
	if !ok || msg == nil || msg.Message == nil {
		return line
	}
	if err != nil && !strings.Contains(*msg.Message, Delimiter) {
		return line
	}
	return *msg.Message
}
