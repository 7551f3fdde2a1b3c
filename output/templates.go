package output

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"stylemod/config"
)

// Values is a struct that holds variables we make available for output name
// template expansion
type Values struct {
	Context    string
	SourceFile string // base name without extension
	SourceExt  string // extension without leading dot
	SourceDir  string // directory part of the source path, slash separated
	Kind       string
	Charset    string
	Format     string
	RunID      string
	Count      int // number of declarations
	Invalid    int // number of declarations with rejected values
}

func newTemplate(name config.TemplateFieldName, field string) (*template.Template, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", name, err)
	}
	return tmpl, nil
}

func buildValues(name config.TemplateFieldName, doc *Document, format config.OutputFmt) Values {
	base := filepath.Base(doc.Source)
	ext := filepath.Ext(base)
	dir := filepath.ToSlash(filepath.Dir(doc.Source))
	if dir == "." {
		dir = ""
	}
	return Values{
		Context:    string(name),
		SourceFile: strings.TrimSuffix(base, ext),
		SourceExt:  strings.TrimPrefix(ext, "."),
		SourceDir:  dir,
		Kind:       doc.Kind,
		Charset:    doc.Charset,
		Format:     format.String(),
		RunID:      doc.RunID,
		Count:      len(doc.Declarations),
		Invalid:    doc.Invalid(),
	}
}

func expandTemplate(doc *Document, name config.TemplateFieldName, field string, format config.OutputFmt) (string, error) {
	tmpl, err := newTemplate(name, field)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, buildValues(name, doc, format)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
