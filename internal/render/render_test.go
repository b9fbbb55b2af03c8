package render

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	panerrors "pansyslog.io/internal/errors"
	"pansyslog.io/internal/schema"
	"pansyslog.io/models"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func trafficEntry(n int) *models.PANLogEntry {
	values := make([]string, n)
	for i := range values {
		values[i] = fmt.Sprintf("v%d", i)
	}
	if n > schema.TypeField {
		values[schema.TypeField] = "TRAFFIC"
	}
	return &models.PANLogEntry{LineNum: 1, LogType: "TRAFFIC", Schema: schema.Traffic, Values: values}
}

func threatEntry() *models.PANLogEntry {
	values := []string{"t1", "sn1", "THREAT", "Start", "0", "g", "1.1.1.1", "2.2.2.2", "0.0.0.0", "0.0.0.0",
		"rule", "u1", "u2", "app", "vsys", "z1", "z2", "in", "out", "fwd", "rx", "sid", "1", "100", "200",
		"0", "0", "flags", "6", "allow", "misc", "tid"}
	return &models.PANLogEntry{LineNum: 1, LogType: "THREAT", Schema: schema.Threat, Values: values}
}

func zoneEntry(zone string) *models.PANLogEntry {
	e := trafficEntry(20)
	e.Values[6] = "10.1.1.1"
	e.Values[7] = "203.0.113.9"
	e.Values[15] = zone
	return e
}

func mustProjector(t *testing.T, opts Options) *Projector {
	t.Helper()
	p, err := NewProjector(opts)
	require.NoError(t, err)
	return p
}

func TestRenderFullTagged(t *testing.T) {
	p := mustProjector(t, Options{Mode: ModeFull, Tag: true})

	line, err := p.Render(trafficEntry(61))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(line, Header+" Time_Stamp= v0 Serial_Number= v1"))
	assert.True(t, strings.HasSuffix(line, "UKNOWN7= v60 "+Footer))
	assert.Equal(t, 61, strings.Count(line, Separator))
}

func TestRenderFullUntaggedRoundTrip(t *testing.T) {
	p := mustProjector(t, Options{Mode: ModeFull})
	entry := trafficEntry(61)

	line, err := p.Render(entry)
	require.NoError(t, err)
	assert.NotContains(t, line, Header)

	names := schema.Traffic.Fields()
	rest := line
	for i, name := range names {
		require.True(t, strings.HasPrefix(rest, name+Separator), "position %d", i)
		rest = strings.TrimPrefix(rest, name+Separator)
		value, tail, _ := strings.Cut(rest, " ")
		assert.Equal(t, entry.Values[i], value)
		rest = tail
	}
	assert.Empty(t, rest)
}

func TestRenderFullShortRecord(t *testing.T) {
	p := mustProjector(t, Options{Mode: ModeFull})

	line, err := p.Render(trafficEntry(5))
	require.NoError(t, err)
	assert.Equal(t, "Time_Stamp= v0 Serial_Number= v1 Log_Type= v2 Subtype= TRAFFIC Repeat_count= v4", line)
}

func TestRenderUnsupported(t *testing.T) {
	p := mustProjector(t, Options{Mode: ModeFull, Tag: true})

	_, err := p.Render(&models.PANLogEntry{LogType: "CONFIG", Values: []string{"a", "b", "c", "CONFIG"}})
	require.ErrorIs(t, err, panerrors.ErrUnsupportedLogType)
}

func TestRenderPresetAThreat(t *testing.T) {
	p := mustProjector(t, Options{Mode: ModePresetA, Tag: true})

	line, err := p.Render(threatEntry())
	require.NoError(t, err)
	assert.Equal(t,
		"<PAN_SYSLOG Destination_IP= 2.2.2.2 NAT_Source_IP= 0.0.0.0 Miscellaneous= misc NAT_Source_Port= 0 Threat_ID= tid >",
		line)
}

func TestRenderSelectionUntagged(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		entry *models.PANLogEntry
		want  string
	}{
		{
			name:  "user fields",
			opts:  Options{Mode: ModeFields, Fields: Selection{31, 6, 7}},
			entry: threatEntry(),
			want:  "Threat_ID= tid Source_IP= 1.1.1.1 Destination_IP= 2.2.2.2",
		},
		{
			name:  "preset a",
			opts:  Options{Mode: ModePresetA},
			entry: trafficEntry(61),
			want:  "Destination_IP= v7 NAT_Source_IP= v8 Bytes= v30 NAT_Source_Port= v25 Bytes_Sent= v31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := mustProjector(t, tt.opts).Render(tt.entry)
			require.NoError(t, err)
			assert.Equal(t, tt.want, line)

			tagged := tt.opts
			tagged.Tag = true
			line, err = mustProjector(t, tagged).Render(tt.entry)
			require.NoError(t, err)
			assert.Equal(t, Header+" "+tt.want+" "+Footer, line)
		})
	}
}

func TestRenderPresetB(t *testing.T) {
	p := mustProjector(t, Options{Mode: ModePresetB, Tag: true})

	line, err := p.Render(trafficEntry(61))
	require.NoError(t, err)
	assert.Equal(t, len(PresetB), strings.Count(line, Separator))
	assert.Contains(t, line, "Virtual_System= v14 Destination_Port= v24")
}

func TestRenderSelectionErrors(t *testing.T) {
	t.Run("position past schema", func(t *testing.T) {
		p := mustProjector(t, Options{Mode: ModeFields, Fields: Selection{60}})
		_, err := p.Render(threatEntry())
		require.ErrorIs(t, err, panerrors.ErrOutOfRange)
	})

	t.Run("position past short record", func(t *testing.T) {
		p := mustProjector(t, Options{Mode: ModePresetA})
		_, err := p.Render(trafficEntry(10))
		require.ErrorIs(t, err, panerrors.ErrUndefinedField)
		assert.Contains(t, err.Error(), "Bytes (position 30)")
	})
}

func TestRenderColor(t *testing.T) {
	plain := mustProjector(t, Options{Mode: ModePresetA, Tag: true})
	colored := mustProjector(t, Options{Mode: ModePresetA, Tag: true, Color: true})

	want, err := plain.Render(threatEntry())
	require.NoError(t, err)
	got, err := colored.Render(threatEntry())
	require.NoError(t, err)

	assert.NotEqual(t, want, got)
	assert.Contains(t, got, "\x1b[35mDestination_IP")
	assert.Equal(t, want, ansi.ReplaceAllString(got, ""))
}

func TestRenderIdempotent(t *testing.T) {
	for _, opts := range []Options{
		{Mode: ModeFull, Tag: true},
		{Mode: ModePresetB, Color: true},
		{Mode: ModeZoneExternal},
	} {
		t.Run(opts.Mode.String(), func(t *testing.T) {
			p := mustProjector(t, opts)
			entry := trafficEntry(61)
			first, err := p.Render(entry)
			require.NoError(t, err)
			second, err := p.Render(entry)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestRenderZoneFilter(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		zone string
		want string
	}{
		{"internal from inside", ModeZoneInternal, "inside", "10.1.1.1"},
		{"internal from outside", ModeZoneInternal, "outside", "203.0.113.9"},
		{"external from outside", ModeZoneExternal, "outside", "10.1.1.1"},
		{"external from inside", ModeZoneExternal, "inside", "203.0.113.9"},
		{"internal from dmz", ModeZoneInternal, "dmz", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustProjector(t, Options{Mode: tt.mode, Tag: true, Color: true})
			got, err := p.Render(zoneEntry(tt.zone))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderIPInfo(t *testing.T) {
	p := mustProjector(t, Options{Mode: ModeIPInfo, Tag: true})

	got, err := p.Render(zoneEntry("outside"))
	require.NoError(t, err)
	assert.Equal(t, "curl http://ipinfo.io/10.1.1.1", got)

	got, err = p.Render(zoneEntry("inside"))
	require.NoError(t, err)
	assert.Equal(t, "curl http://ipinfo.io/203.0.113.9", got)

	_, err = p.Render(trafficEntry(10))
	require.ErrorIs(t, err, panerrors.ErrUndefinedField)
	assert.Contains(t, err.Error(), schema.FieldSourceZone)
}

func TestNewProjectorValidation(t *testing.T) {
	_, err := NewProjector(Options{Mode: ModeFields})
	require.ErrorIs(t, err, panerrors.ErrInvalidFieldSpec)

	_, err = NewProjector(Options{Mode: ModeFields, Fields: Selection{99, 100}})
	require.ErrorIs(t, err, panerrors.ErrOutOfRange)

	_, err = NewProjector(Options{Mode: Mode(42)})
	require.ErrorIs(t, err, panerrors.ErrInvalidConfig)
}

func TestParseFieldList(t *testing.T) {
	tests := []struct {
		spec    string
		want    Selection
		wantErr error
	}{
		{"7,8,30,25,31", Selection{7, 8, 30, 25, 31}, nil},
		{"31, 0", Selection{31, 0}, nil},
		{"60", Selection{60}, nil},
		{"99,100", nil, panerrors.ErrOutOfRange},
		{"61", nil, panerrors.ErrOutOfRange},
		{"-1", nil, panerrors.ErrOutOfRange},
		{"7,x", nil, panerrors.ErrInvalidFieldSpec},
		{"7,,8", nil, panerrors.ErrInvalidFieldSpec},
		{"", nil, panerrors.ErrInvalidFieldSpec},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseFieldList(tt.spec)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.ReplaceAll(tt.spec, " ", ""), got.String())
		})
	}
}

func TestParseMode(t *testing.T) {
	for m, name := range modeNames {
		got, err := ParseMode(strings.ToUpper(name))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseMode("csv")
	require.ErrorIs(t, err, panerrors.ErrInvalidConfig)
}
