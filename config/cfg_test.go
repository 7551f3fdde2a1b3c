package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Extract.Format != OutputFmtJson {
		t.Errorf("Default format = %s, want json", cfg.Extract.Format)
	}
	if !cfg.Extract.StyleAttributes {
		t.Error("Expected style attributes to be extracted by default")
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Default console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
extract:
  format: sqlite
  output_name_template: "{{ .Source }}-{{ .Format }}"
  file_name_transliterate: true
  style_attributes: false
  keep_prefixed: ["-webkit-appearance", "-moz-appearance"]
logging:
  console:
    level: debug
  file:
    level: debug
    destination: ` + filepath.Join(tmpDir, "test.log") + `
    mode: append
reporting:
  destination: ` + filepath.Join(tmpDir, "report.zip") + `
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Extract.Format != OutputFmtSqlite {
		t.Errorf("Format = %s, want sqlite", cfg.Extract.Format)
	}
	if cfg.Extract.OutputNameTemplate != "{{ .Source }}-{{ .Format }}" {
		t.Errorf("OutputNameTemplate = %q, template must not be expanded", cfg.Extract.OutputNameTemplate)
	}
	if !cfg.Extract.FileNameTransliterate || cfg.Extract.StyleAttributes {
		t.Errorf("unexpected extract flags: %+v", cfg.Extract)
	}
	if len(cfg.Extract.KeepPrefixed) != 2 {
		t.Errorf("KeepPrefixed length = %d, want 2", len(cfg.Extract.KeepPrefixed))
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("File logger mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.yaml")

	if err := os.WriteFile(configPath, []byte("version: 1\nextract:\n  format: yaml\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Extract.Format != OutputFmtYaml {
		t.Errorf("Format = %s, want yaml", cfg.Extract.Format)
	}
	if !cfg.Extract.StyleAttributes {
		t.Error("Expected default for unspecified style_attributes")
	}
	if cfg.Reporting.Destination == "" {
		t.Error("Expected default reporting destination")
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\nextract:\n  format: json\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"invalid version", "version: 2\n"},
		{"unknown format", "version: 1\nextract:\n  format: pdf\n"},
		{"bad prefix", "version: 1\nextract:\n  keep_prefixed: [\"appearance\"]\n"},
		{"bad log level", "version: 1\nlogging:\n  console:\n    level: verbose\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}
			if _, err := LoadConfiguration(configPath); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}
	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty data")
	}
	if _, err = unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Extract: ExtractConfig{Format: OutputFmtIon, KeepPrefixed: []string{"-webkit-appearance"}},
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
			FileLogger:    LoggerConfig{Level: "none"},
		},
		Reporting: ReporterConfig{Destination: "report.zip"},
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "format: ion") {
		t.Errorf("expected enum to be dumped as text, got:\n%s", text)
	}

	restored, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("unable to read dumped config: %v", err)
	}
	if restored.Extract.Format != OutputFmtIon || restored.Extract.KeepPrefixed[0] != "-webkit-appearance" {
		t.Errorf("dumped config does not match: %+v", restored.Extract)
	}
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	_, err := unmarshalConfig([]byte("version: 99\n"), &Config{}, true)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "validat") {
		t.Errorf("expected error to mention validation, got: %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error, got bare error: %v", err)
	}
}

func TestOutputFmt_Parse(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFmt
		wantErr bool
	}{
		{"json", OutputFmtJson, false},
		{"YAML", OutputFmtYaml, false},
		{"ion", OutputFmtIon, false},
		{"text", OutputFmtText, false},
		{"sqlite", OutputFmtSqlite, false},
		{"xml", OutputFmt(0), true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFmt(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFmt(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrInvalidOutputFmt) {
			t.Errorf("ParseOutputFmt(%q) expected ErrInvalidOutputFmt, got %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseOutputFmt(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOutputFmt_Ext(t *testing.T) {
	tests := []struct {
		fmt  OutputFmt
		ext  string
		once bool
	}{
		{OutputFmtJson, ".json", false},
		{OutputFmtYaml, ".yaml", false},
		{OutputFmtIon, ".ion", false},
		{OutputFmtText, ".txt", false},
		{OutputFmtSqlite, ".sqlite", true},
	}
	for _, tt := range tests {
		if got := tt.fmt.Ext(); got != tt.ext {
			t.Errorf("%s.Ext() = %q, want %q", tt.fmt, got, tt.ext)
		}
		if got := tt.fmt.PerRun(); got != tt.once {
			t.Errorf("%s.PerRun() = %v, want %v", tt.fmt, got, tt.once)
		}
	}
}

func TestOutputFmt_Ext_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Ext() should panic for invalid format")
		}
	}()
	OutputFmt(99).Ext()
}

func TestTableKind_Names(t *testing.T) {
	names := TableKindNames()
	if len(names) != 5 || names[0] != "keywords" {
		t.Errorf("unexpected table kinds %v", names)
	}
	if TableKind(42).IsValid() {
		t.Error("expected out of range table kind to be invalid")
	}
}

func TestCleanFileName(t *testing.T) {
	if got := CleanFileName(""); got != "_bad_file_name_" {
		t.Errorf("CleanFileName(\"\") = %q", got)
	}
	if got := CleanFileName("a" + string(os.PathSeparator) + "b"); got != "ab" {
		t.Errorf("expected path separator to be removed, got %q", got)
	}
}
