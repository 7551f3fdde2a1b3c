package output

import (
	"path/filepath"
	"testing"

	"stylemod/config"
)

func testDoc(t *testing.T, name string) *Document {
	t.Helper()
	return NewDocument(testSource(name), setupTestEnv(t, false, false, "").RunID)
}

func TestBuildOutputPath_SimpleCase_NoDirs(t *testing.T) {
	env := setupTestEnv(t, true, false, "")
	dst := t.TempDir()

	result := buildOutputPath(testDoc(t, filepath.Join("themes", "site.css")), dst, config.OutputFmtJson, env)
	expected := filepath.Join(dst, "site.json")
	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_SimpleCase_WithDirs(t *testing.T) {
	env := setupTestEnv(t, false, false, "")
	dst := t.TempDir()

	result := buildOutputPath(testDoc(t, filepath.Join("themes", "site.css")), dst, config.OutputFmtYaml, env)
	expected := filepath.Join(dst, "themes", "site.yaml")
	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_DifferentFormats(t *testing.T) {
	tests := []struct {
		format config.OutputFmt
		ext    string
	}{
		{config.OutputFmtJson, ".json"},
		{config.OutputFmtYaml, ".yaml"},
		{config.OutputFmtIon, ".ion"},
		{config.OutputFmtText, ".txt"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			env := setupTestEnv(t, true, false, "")
			dst := t.TempDir()
			result := buildOutputPath(testDoc(t, "site.css"), dst, tt.format, env)
			expected := filepath.Join(dst, "site"+tt.ext)
			if result != expected {
				t.Errorf("buildOutputPath() = %q, want %q", result, expected)
			}
		})
	}
}

func TestBuildOutputPath_Transliterate(t *testing.T) {
	env := setupTestEnv(t, true, true, "")
	dst := t.TempDir()

	result := buildOutputPath(testDoc(t, "My Site Styles.css"), dst, config.OutputFmtJson, env)
	expected := filepath.Join(dst, "my-site-styles.json")
	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_Template(t *testing.T) {
	env := setupTestEnv(t, true, false, `{{ .Kind }}/{{ .SourceFile }}-{{ .Count }}`)
	dst := t.TempDir()

	result := buildOutputPath(testDoc(t, filepath.Join("a", "site.css")), dst, config.OutputFmtJson, env)
	expected := filepath.Join(dst, "css", "site-4.json")
	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_BadTemplateFallsBack(t *testing.T) {
	env := setupTestEnv(t, true, false, `{{ .NoSuchField }`)
	dst := t.TempDir()

	result := buildOutputPath(testDoc(t, "site.css"), dst, config.OutputFmtJson, env)
	expected := filepath.Join(dst, "site.json")
	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestDetermineOutputDir(t *testing.T) {
	dst := filepath.Join("out", "dir")
	src := filepath.Join("sub", "inner", "site.css")

	if result := determineOutputDir(src, dst, setupTestEnv(t, true, false, "")); result != dst {
		t.Errorf("determineOutputDir() = %q, want %q", result, dst)
	}
	expected := filepath.Join(dst, "sub", "inner")
	if result := determineOutputDir(src, dst, setupTestEnv(t, false, false, "")); result != expected {
		t.Errorf("determineOutputDir() = %q, want %q", result, expected)
	}
}

func TestBuildDefaultFileName(t *testing.T) {
	tests := []struct {
		name          string
		src           string
		transliterate bool
		expected      string
	}{
		{"css source", "site.css", false, "site.json"},
		{"uppercase extension", "SITE.CSS", false, "SITE.json"},
		{"html source keeps extension", "index.html", false, "index.html.json"},
		{"hidden name", ".site.css", false, "site.json"},
		{"transliterated", "Main Theme.css", true, "main-theme.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t, false, tt.transliterate, "")
			result := buildDefaultFileName(tt.src, config.OutputFmtJson, env)
			if result != tt.expected {
				t.Errorf("buildDefaultFileName() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{"single", "file", []string{"file"}},
		{"nested", filepath.Join("a", "b", "file"), []string{"a", "b", "file"}},
		{"trailing separator", filepath.Join("a", "b") + string(filepath.Separator), []string{"a", "b"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndCleanPath(tt.path)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndCleanPath() length = %d, want %d", len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndCleanPath()[%d] = %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestBuildPathFromTemplate(t *testing.T) {
	dst := filepath.Join("out")
	tests := []struct {
		name          string
		expanded      string
		transliterate bool
		expected      string
	}{
		{"plain", "styles", false, filepath.Join(dst, "styles.yaml")},
		{"subdirs", filepath.Join("css", "2024", "site"), false, filepath.Join(dst, "css", "2024", "site.yaml")},
		{"transliterated", filepath.Join("Main Dir", "Site Styles"), true, filepath.Join(dst, "main-dir", "site-styles.yaml")},
		{"escape attempt", filepath.Join("..", "site"), false, filepath.Join(dst, "_bad_file_name_", "site.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t, true, tt.transliterate, "")
			result := assemblePathWithSubdirs(dst, tt.expanded, config.OutputFmtYaml, env)
			if result != tt.expected {
				t.Errorf("assemblePathWithSubdirs() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestBuildPathFromTemplate_EmptyPath(t *testing.T) {
	env := setupTestEnv(t, true, false, "")
	dst := filepath.Join("out")
	if result := assemblePathWithSubdirs(dst, "", config.OutputFmtJson, env); result != dst {
		t.Errorf("assemblePathWithSubdirs() with empty path = %q, want %q", result, dst)
	}
}
