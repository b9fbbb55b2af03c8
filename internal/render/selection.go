package render

import (
	"fmt"
	"strconv"
	"strings"

	panerrors "pansyslog.io/internal/errors"
	"pansyslog.io/internal/schema"
)

// Selection is an ordered list of field positions. Output follows the list
// order, not schema order.
type Selection []int

var (
	// PresetA mirrors: awk -F, '{ print $7 " " $8 " " $30 " " $25 " " $31 }'
	PresetA = Selection{7, 8, 30, 25, 31}
	// PresetB is the wider session summary: addresses, NAT, rule, users,
	// application, ports, action and byte counts.
	PresetB = Selection{6, 7, 8, 9, 10, 11, 12, 14, 24, 25, 29, 30, 31}
)

// ParseFieldList parses a comma separated list of positions such as
// "7,8,30,25,31" and validates it against the modeled schemas.
func ParseFieldList(spec string) (Selection, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("empty field list: %w", panerrors.ErrInvalidFieldSpec)
	}

	parts := strings.Split(spec, ",")
	sel := make(Selection, 0, len(parts))
	for _, part := range parts {
		pos, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("field %q in %q is not a number: %w", part, spec, panerrors.ErrInvalidFieldSpec)
		}
		sel = append(sel, pos)
	}

	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return sel, nil
}

// Validate checks every position against the widest modeled schema. A
// position that only fits the wider schema is caught per record instead.
func (s Selection) Validate() error {
	limit := schema.MaxLen()
	for _, pos := range s {
		if pos < 0 || pos >= limit {
			return fmt.Errorf("field position %d (valid: 0-%d): %w", pos, limit-1, panerrors.ErrOutOfRange)
		}
	}
	return nil
}

func (s Selection) String() string {
	parts := make([]string, len(s))
	for i, pos := range s {
		parts[i] = strconv.Itoa(pos)
	}
	return strings.Join(parts, ",")
}
