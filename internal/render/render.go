// Package render turns decoded PAN log entries into output lines.
package render

import (
	"fmt"
	"strings"

	panerrors "pansyslog.io/internal/errors"
	"pansyslog.io/internal/schema"
	"pansyslog.io/models"
)

const (
	Header    = "<PAN_SYSLOG"
	Footer    = ">"
	Separator = "= "

	// IPInfoURL prefixes the address in ipinfo mode. Nothing is fetched;
	// the line is meant to be pasted into a shell.
	IPInfoURL = "http://ipinfo.io/"
)

// Mode selects what Render emits for each entry.
type Mode int

const (
	ModeFull Mode = iota
	ModePresetA
	ModePresetB
	ModeFields
	ModeIPInfo
	ModeZoneInternal
	ModeZoneExternal
)

var modeNames = map[Mode]string{
	ModeFull:         "full",
	ModePresetA:      "preset-a",
	ModePresetB:      "preset-b",
	ModeFields:       "fields",
	ModeIPInfo:       "ipinfo",
	ModeZoneInternal: "internal",
	ModeZoneExternal: "external",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode resolves a mode name as used in PAN_OUTPUT_MODE.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown output mode %q: %w", s, panerrors.ErrInvalidConfig)
}

// Options is the per-run rendering configuration.
type Options struct {
	Mode   Mode
	Fields Selection // ModeFields only
	Tag    bool
	Color  bool
}

// Projector renders entries according to fixed Options. It holds no
// per-entry state and is safe for concurrent use.
type Projector struct {
	opts    Options
	sel     Selection
	palette *palette
}

// NewProjector resolves the selection for opts.Mode and validates it before
// any record is seen.
func NewProjector(opts Options) (*Projector, error) {
	p := &Projector{opts: opts, palette: newPalette(opts.Color)}

	switch opts.Mode {
	case ModePresetA:
		p.sel = PresetA
	case ModePresetB:
		p.sel = PresetB
	case ModeFields:
		if len(opts.Fields) == 0 {
			return nil, fmt.Errorf("fields mode needs a field list: %w", panerrors.ErrInvalidFieldSpec)
		}
		p.sel = append(Selection(nil), opts.Fields...)
	case ModeFull, ModeIPInfo, ModeZoneInternal, ModeZoneExternal:
	default:
		return nil, fmt.Errorf("output mode %s: %w", opts.Mode, panerrors.ErrInvalidConfig)
	}

	if err := p.sel.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Render formats one entry as a single line without a trailing newline.
func (p *Projector) Render(entry *models.PANLogEntry) (string, error) {
	if entry.Schema == nil {
		return "", fmt.Errorf("log type %q: %w", entry.LogType, panerrors.ErrUnsupportedLogType)
	}

	switch p.opts.Mode {
	case ModeFull:
		return p.renderFull(entry)
	case ModePresetA, ModePresetB, ModeFields:
		return p.renderSelection(entry)
	case ModeIPInfo:
		ip, err := externalAddress(entry)
		if err != nil {
			return "", err
		}
		return "curl " + IPInfoURL + ip, nil
	case ModeZoneInternal:
		return zoneAddress(entry, "inside")
	case ModeZoneExternal:
		return zoneAddress(entry, "outside")
	}
	return "", fmt.Errorf("output mode %s: %w", p.opts.Mode, panerrors.ErrInvalidConfig)
}

func (p *Projector) renderFull(entry *models.PANLogEntry) (string, error) {
	parts := make([]string, 0, entry.Len()+2)
	if p.opts.Tag {
		parts = append(parts, Header)
	}
	for i, v := range entry.Values {
		name, err := entry.Schema.NameAt(i)
		if err != nil {
			return "", err
		}
		parts = append(parts, p.pair(name, v))
	}
	if p.opts.Tag {
		parts = append(parts, Footer)
	}
	return strings.Join(parts, " "), nil
}

// renderSelection renders like renderFull, restricted to the selected
// positions in selection order.
func (p *Projector) renderSelection(entry *models.PANLogEntry) (string, error) {
	parts := make([]string, 0, len(p.sel)+2)
	if p.opts.Tag {
		parts = append(parts, Header)
	}
	for _, pos := range p.sel {
		name, err := entry.Schema.NameAt(pos)
		if err != nil {
			return "", err
		}
		v, ok := entry.At(pos)
		if !ok {
			return "", fmt.Errorf("%s (position %d) missing from %d-field record: %w",
				name, pos, entry.Len(), panerrors.ErrUndefinedField)
		}
		parts = append(parts, p.pair(name, v))
	}
	if p.opts.Tag {
		parts = append(parts, Footer)
	}
	return strings.Join(parts, " "), nil
}

// externalAddress picks the address on the far side of the firewall.
func externalAddress(entry *models.PANLogEntry) (string, error) {
	zone, err := lookup(entry, schema.FieldSourceZone)
	if err != nil {
		return "", err
	}
	if zone == "outside" {
		return lookup(entry, schema.FieldSourceIP)
	}
	return lookup(entry, schema.FieldDestinationIP)
}

func zoneAddress(entry *models.PANLogEntry, zone string) (string, error) {
	src, err := lookup(entry, schema.FieldSourceZone)
	if err != nil {
		return "", err
	}
	if src == zone {
		return lookup(entry, schema.FieldSourceIP)
	}
	return lookup(entry, schema.FieldDestinationIP)
}

func lookup(entry *models.PANLogEntry, name string) (string, error) {
	v, ok := entry.Get(name)
	if !ok {
		return "", fmt.Errorf("%s missing from %d-field record: %w", name, entry.Len(), panerrors.ErrUndefinedField)
	}
	return v, nil
}
