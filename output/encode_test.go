package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/amazon-ion/ion-go/ion"
	yaml "gopkg.in/yaml.v3"

	"stylemod/config"
)

func TestEncodeJSON(t *testing.T) {
	doc := testDoc(t, "site.css")
	var buf bytes.Buffer
	if err := encodeJSON(&buf, doc); err != nil {
		t.Fatalf("encodeJSON() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unable to decode output: %v", err)
	}
	if got["source"] != "site.css" || got["runId"] != doc.RunID {
		t.Errorf("unexpected header: %v", got)
	}
	decls, _ := got["declarations"].([]any)
	if len(decls) != 4 {
		t.Fatalf("expected 4 declarations, got %d", len(decls))
	}
	first := decls[0].(map[string]any)
	value := first["value"].(map[string]any)
	if value["type"] != "rgb" || value["r"] != float64(255) {
		t.Errorf("unexpected value: %v", value)
	}
	if _, ok := first["breakpoint"]; ok {
		t.Error("expected breakpoint to be omitted")
	}
	third := decls[2].(map[string]any)
	bp := third["breakpoint"].(map[string]any)
	if bp["minWidth"] != float64(768) {
		t.Errorf("unexpected breakpoint: %v", bp)
	}
	if _, ok := bp["maxWidth"]; ok {
		t.Error("expected absent bound to be omitted")
	}
}

type decodedDocument struct {
	Source       string `yaml:"source" ion:"source"`
	Kind         string `yaml:"kind" ion:"kind"`
	Declarations []struct {
		Property string `yaml:"property" ion:"property"`
		State    string `yaml:"state" ion:"state"`
		Text     string `yaml:"text" ion:"text"`
	} `yaml:"declarations" ion:"declarations"`
}

func checkDecoded(t *testing.T, got decodedDocument) {
	t.Helper()
	if got.Source != "site.css" || got.Kind != "css" {
		t.Errorf("unexpected header: %+v", got)
	}
	if len(got.Declarations) != 4 {
		t.Fatalf("expected 4 declarations, got %d", len(got.Declarations))
	}
	if got.Declarations[1].Property != "marginTop" || got.Declarations[1].Text != "10px" || got.Declarations[1].State != ":hover" {
		t.Errorf("unexpected declaration: %+v", got.Declarations[1])
	}
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := encodeYAML(&buf, testDoc(t, "site.css")); err != nil {
		t.Fatalf("encodeYAML() error = %v", err)
	}
	var got decodedDocument
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unable to decode output: %v", err)
	}
	checkDecoded(t, got)
}

func TestEncodeIon(t *testing.T) {
	var buf bytes.Buffer
	if err := encodeIon(&buf, testDoc(t, "site.css")); err != nil {
		t.Fatalf("encodeIon() error = %v", err)
	}
	var got decodedDocument
	if err := ion.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unable to decode output: %v", err)
	}
	checkDecoded(t, got)
}

func TestEncodeText_Default(t *testing.T) {
	encode, err := newEncoder(config.OutputFmtText, "")
	if err != nil {
		t.Fatalf("newEncoder() error = %v", err)
	}
	var buf bytes.Buffer
	if err := encode(&buf, testDoc(t, "site.css")); err != nil {
		t.Fatalf("encode error = %v", err)
	}
	expected := `/* site.css: 4 declarations, 1 invalid */
.title { color: rgb(255, 0, 0); } /* rgb */
p:hover { margin-top: 10px; } /* unit */
@media (min-width: 768px) { .menu { display: none; } } /* keyword */
.box { width: red; } /* invalid */
`
	if buf.String() != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, buf.String())
	}
}

func TestEncodeText_Custom(t *testing.T) {
	encode, err := newEncoder(config.OutputFmtText, `{{ range .Declarations }}{{ .Property | upper }} {{ end }}`)
	if err != nil {
		t.Fatalf("newEncoder() error = %v", err)
	}
	var buf bytes.Buffer
	if err := encode(&buf, testDoc(t, "site.css")); err != nil {
		t.Fatalf("encode error = %v", err)
	}
	if got, want := buf.String(), "COLOR MARGINTOP DISPLAY WIDTH "; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNewEncoder_Errors(t *testing.T) {
	if _, err := newEncoder(config.OutputFmtText, "{{ .Source"); err == nil {
		t.Error("expected error for broken text template")
	}
	if _, err := newEncoder(config.OutputFmtSqlite, ""); err == nil {
		t.Error("expected error for format without per source encoder")
	}
}
