package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/template"

	"github.com/amazon-ion/ion-go/ion"
	yaml "gopkg.in/yaml.v3"

	"stylemod/config"
)

// DefaultTextTemplate is used for text output when configuration does not
// provide one. It is executed with *Document.
const DefaultTextTemplate = `/* {{ .Source }}: {{ len .Declarations }} declarations{{ with .Invalid }}, {{ . }} invalid{{ end }} */
{{ range .Declarations -}}
{{ with .Media }}@media {{ . }} { {{ end }}{{ .Selector | default "*" }}{{ .State }} { {{ .CSSProperty }}: {{ .Text }}; }{{ if .Media }} }{{ end }} /* {{ .Kind }} */
{{ end -}}
`

type encodeFunc func(w io.Writer, doc *Document) error

func newEncoder(format config.OutputFmt, textTemplate string) (encodeFunc, error) {
	switch format {
	case config.OutputFmtJson:
		return encodeJSON, nil
	case config.OutputFmtYaml:
		return encodeYAML, nil
	case config.OutputFmtIon:
		return encodeIon, nil
	case config.OutputFmtText:
		if textTemplate == "" {
			textTemplate = DefaultTextTemplate
		}
		tmpl, err := newTemplate(config.TextTemplateFieldName, textTemplate)
		if err != nil {
			return nil, err
		}
		return textEncoder(tmpl), nil
	}
	return nil, fmt.Errorf("format %s has no per source encoder", format)
}

func encodeJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

func encodeYAML(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func encodeIon(w io.Writer, doc *Document) error {
	iw := ion.NewTextWriter(w)
	if err := ion.MarshalTo(iw, doc); err != nil {
		return err
	}
	return iw.Finish()
}

func textEncoder(tmpl *template.Template) encodeFunc {
	return func(w io.Writer, doc *Document) error {
		return tmpl.Execute(w, doc)
	}
}
