package output

import (
	"stylemod/css"
	"stylemod/utils/debug"
)

// String returns readable tree of extracted declarations, a new context line
// is started whenever breakpoint, selector or state changes. It exists
// solely for manual inspection and goes into debug report.
func (s *Source) String() string {
	if s == nil {
		return "<nil Source>"
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "Source %q kind[%s] charset[%s] declarations[%d]", s.Name, s.Kind, s.Charset, len(s.Declarations))

	current := ""
	for i, d := range s.Declarations {
		if key := d.Breakpoint.Key() + "|" + d.Selector + "|" + d.State; i == 0 || key != current {
			current = key
			tw.Line(1, "Context breakpoint[%s] selector[%q] state[%q]", d.Breakpoint.Key(), d.Selector, d.State)
		}
		tw.Line(2, "%s", d.Property)
		writeValueTree(tw, 3, d.Value)
	}
	return tw.String()
}

func writeValueTree(tw *debug.TreeWriter, depth int, v css.StyleValue) {
	switch v := v.(type) {
	case nil:
		tw.Line(depth, "<nil>")
	case css.TupleValue:
		tw.Line(depth, "tuple[%d]", len(v.Value))
		for _, item := range v.Value {
			writeValueTree(tw, depth+1, item)
		}
	case css.LayersValue:
		tw.Line(depth, "layers[%d]", len(v.Value))
		for _, item := range v.Value {
			writeValueTree(tw, depth+1, item)
		}
	case css.FunctionValue:
		tw.Line(depth, "function[%s]", v.Name)
		writeValueTree(tw, depth+1, v.Args)
	default:
		tw.Text(depth, v.Kind().String(), css.ToText(v))
	}
}
