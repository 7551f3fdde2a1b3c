package config

//go:generate go tool go-enum --names --marshal --nocase --mustparse

// Specification of requested output type.
// ENUM(json, yaml, ion, text, sqlite)
type OutputFmt int

// Static table to list.
// ENUM(keywords, units, repeatable, shorthands, grammars)
type TableKind int

// Ext returns file extension for the output format.
func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtJson:
		return ".json"
	case OutputFmtYaml:
		return ".yaml"
	case OutputFmtIon:
		return ".ion"
	case OutputFmtText:
		return ".txt"
	case OutputFmtSqlite:
		return ".sqlite"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// PerRun reports whether all inputs of a run go into a single output.
func (o OutputFmt) PerRun() bool {
	return o == OutputFmtSqlite
}
