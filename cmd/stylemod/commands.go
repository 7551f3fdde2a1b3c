package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"stylemod/config"
	"stylemod/css"
	"stylemod/state"
)

type classified struct {
	Property string         `json:"property" yaml:"property"`
	Text     string         `json:"text" yaml:"text"`
	Value    map[string]any `json:"value" yaml:"value"`
}

// classifyDeclaration expands shorthand (if any) and classifies every
// resulting longhand.
func classifyDeclaration(c *css.Classifier, property, value string) []classified {
	name := css.UnprefixProperty(css.HyphenateProperty(property))

	var out []classified
	for _, p := range css.ExpandShorthands([][2]string{{name, value}}) {
		prop := css.CamelCaseProperty(p[0])
		v := c.Classify(prop, p[1], true)
		out = append(out, classified{Property: prop, Text: css.ToText(v), Value: css.Document(v)})
	}
	return out
}

func classifyValue(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() < 2 {
		return errors.New("property and value must be specified")
	}
	property := cmd.Args().Get(0)
	value := strings.Join(cmd.Args().Slice()[1:], " ")

	format, err := config.ParseOutputFmt(cmd.String("to"))
	if err != nil || (format != config.OutputFmtJson && format != config.OutputFmtYaml) {
		return fmt.Errorf("unsupported output type '%s', only json and yaml are allowed", cmd.String("to"))
	}

	result := classifyDeclaration(css.NewClassifier(env.Log), property, value)
	for _, r := range result {
		if r.Value["type"] == css.ValueKindInvalid.String() {
			env.Log.Warn("Invalid value", zap.String("property", r.Property), zap.String("value", value))
		}
	}

	out := writerFor(cmd)
	if format == config.OutputFmtJson {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		err = enc.Encode(result)
	} else {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err = enc.Encode(result); err == nil {
			err = enc.Close()
		}
	}
	if err != nil {
		return fmt.Errorf("unable to write classification result: %w", err)
	}
	return nil
}

// tableLines renders requested static table one entry per line, sorted
// naturally. When names are given only matching entries are produced.
func tableLines(kind config.TableKind, names ...string) []string {
	entries := make(map[string]string)
	switch kind {
	case config.TableKindKeywords:
		for p, keywords := range css.KeywordTables {
			entries[p] = strings.Join(keywords, " | ")
		}
	case config.TableKindUnits:
		for group, units := range css.UnitGroups {
			entries[group] = strings.Join(units, " ")
		}
	case config.TableKindRepeatable:
		for p, ok := range css.RepeatableProperties {
			if ok {
				entries[p] = ""
			}
		}
	case config.TableKindShorthands:
		for _, p := range css.Shorthands() {
			entries[p] = strings.Join(css.Longhands(p), " ")
		}
	case config.TableKindGrammars:
		for p, grammar := range css.PropertyGrammars {
			entries[p] = grammar
		}
	default:
		// this should never happen
		panic("unsupported table requested")
	}

	wanted := make([]string, 0, len(names))
	for _, n := range names {
		wanted = append(wanted, css.HyphenateProperty(n))
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		if len(wanted) > 0 && !slices.Contains(wanted, css.HyphenateProperty(k)) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		if len(entries[k]) == 0 {
			lines = append(lines, k)
			continue
		}
		lines = append(lines, k+": "+entries[k])
	}
	return lines
}

func outputTables(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	kind, err := config.ParseTableKind(cmd.String("kind"))
	if err != nil {
		return fmt.Errorf("unknown table kind: %w", err)
	}

	lines := tableLines(kind, cmd.Args().Slice()...)
	if len(lines) == 0 {
		env.Log.Warn("Nothing to list", zap.Stringer("kind", kind), zap.Strings("names", cmd.Args().Slice()))
		return nil
	}

	out := writerFor(cmd)
	for _, l := range lines {
		if _, err := fmt.Fprintln(out, l); err != nil {
			return fmt.Errorf("unable to write table: %w", err)
		}
	}
	return nil
}

func writerFor(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := writerFor(cmd)
	if len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
