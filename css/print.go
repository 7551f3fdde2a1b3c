package css

import (
	"strconv"
	"strings"
)

// ToText regenerates CSS text of a classified value.
func ToText(v StyleValue) string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeValue(sb *strings.Builder, v StyleValue) {
	switch v := v.(type) {
	case KeywordValue:
		sb.WriteString(v.Value)
	case UnitValue:
		sb.WriteString(formatNumber(v.Value))
		if v.Unit != UnitNumber {
			sb.WriteString(string(v.Unit))
		}
	case RGBValue:
		if v.Alpha >= 1 {
			sb.WriteString("rgb(")
		} else {
			sb.WriteString("rgba(")
		}
		sb.WriteString(strconv.Itoa(int(v.R)))
		sb.WriteString(", ")
		sb.WriteString(strconv.Itoa(int(v.G)))
		sb.WriteString(", ")
		sb.WriteString(strconv.Itoa(int(v.B)))
		if v.Alpha < 1 {
			sb.WriteString(", ")
			sb.WriteString(formatNumber(v.Alpha))
		}
		sb.WriteByte(')')
	case ImageValue:
		sb.WriteString(`url("`)
		sb.WriteString(cssEscapeDoubleQuoted(v.Value.URL))
		sb.WriteString(`")`)
	case TupleValue:
		writeList(sb, v.Value, " ")
	case LayersValue:
		writeList(sb, v.Value, ", ")
	case FunctionValue:
		sb.WriteString(v.Name)
		sb.WriteByte('(')
		switch args := v.Args.(type) {
		case TupleValue:
			sep := ", "
			if v.Name == "drop-shadow" {
				sep = " "
			}
			writeList(sb, args.Value, sep)
		case LayersValue:
			writeList(sb, args.Value, ", ")
		default:
			writeValue(sb, args)
		}
		sb.WriteByte(')')
	case UnparsedValue:
		sb.WriteString(v.Value)
	case InvalidValue:
		sb.WriteString(v.Value)
	}
}

func writeList(sb *strings.Builder, values []StyleValue, sep string) {
	for i, item := range values {
		if i > 0 {
			sb.WriteString(sep)
		}
		writeValue(sb, item)
	}
}
