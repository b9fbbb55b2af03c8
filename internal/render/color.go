package render

import (
	"github.com/fatih/color"
)

type palette struct {
	name  *color.Color
	sep   *color.Color
	value *color.Color
}

// newPalette returns nil when decoration is off. Colors are forced on so
// output piped to a file keeps its escapes when the user asked for them.
func newPalette(enabled bool) *palette {
	if !enabled {
		return nil
	}
	p := &palette{
		name:  color.New(color.FgMagenta),
		sep:   color.New(color.FgBlue),
		value: color.New(color.FgGreen),
	}
	p.name.EnableColor()
	p.sep.EnableColor()
	p.value.EnableColor()
	return p
}

func (p *Projector) pair(name, value string) string {
	if p.palette == nil {
		return name + Separator + value
	}
	return p.palette.name.Sprint(name) + p.palette.sep.Sprint(Separator) + p.palette.value.Sprint(value)
}
