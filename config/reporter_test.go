package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("unable to open report archive: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		r, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReportClose_RemovesCopies(t *testing.T) {
	tmpDir := t.TempDir()
	conf := &ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}

	src := filepath.Join(tmpDir, "input")
	if err := os.MkdirAll(src, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "site.css"), []byte(".a { color: red }"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	single := filepath.Join(tmpDir, "single.css")
	if err := os.WriteFile(single, []byte(".b { width: 1px }"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if err := r.StoreCopy("source", src); err != nil {
		t.Fatalf("StoreCopy(dir) error: %v", err)
	}
	if err := r.StoreCopy("single", single); err != nil {
		t.Fatalf("StoreCopy(file) error: %v", err)
	}
	copies := []string{r.entries["source"].actual, r.entries["single"].actual}
	r.StoreData("data/result.json", []byte(`{}`))
	r.Store("original", single)

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	for _, c := range copies {
		if _, err := os.Stat(filepath.Dir(c)); !os.IsNotExist(err) {
			t.Errorf("expected temporary copy %s to be removed", c)
		}
	}
	if _, err := os.Stat(single); err != nil {
		t.Errorf("stored original file should not be removed, got error: %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["source/site.css"] != ".a { color: red }" {
		t.Errorf("expected copied directory in report, got %v", files)
	}
	if files["single"] != ".b { width: 1px }" {
		t.Errorf("expected copied file in report, got %q", files["single"])
	}
	if files["data/result.json"] != "{}" {
		t.Errorf("expected stored data in report, got %q", files["data/result.json"])
	}
	if !strings.Contains(files["MANIFEST"], "original") {
		t.Errorf("expected manifest to list entries, got %q", files["MANIFEST"])
	}
}

func TestPrepareManifest_NaturalOrder(t *testing.T) {
	entries := map[string]entry{
		"input-10": {original: "10"},
		"input-2":  {original: "2"},
		"input-1":  {original: "1"},
	}
	names, _ := prepareManifest(entries)
	want := []string{"input-1", "input-2", "input-10"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestReportStore_Collisions(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("results/a.json", "/tmp/x")
	r.Store("results/a.json", "/tmp/x")
	r.Store("results/a.json", "/tmp/y")
	r.StoreData("trees/a.css.txt", []byte("first"))
	r.StoreData("trees/a.css.txt", []byte("second"))
	r.StoreData("trees/a.css.txt", []byte("third"))

	want := map[string]string{
		"results/a.json":    "/tmp/x",
		"results/a-2.json":  "/tmp/y",
		"trees/a.css.txt":   "first",
		"trees/a.css-2.txt": "second",
		"trees/a.css-3.txt": "third",
	}
	if len(r.entries) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(r.entries), r.entries)
	}
	for name, content := range want {
		e, ok := r.entries[name]
		if !ok {
			t.Errorf("missing entry %s", name)
			continue
		}
		if got := e.original + string(e.data); got != content {
			t.Errorf("entry %s: expected %q, got %q", name, content, got)
		}
	}
}

func TestReportStoreData_KeepsAllVersions(t *testing.T) {
	tmpDir := t.TempDir()
	conf := &ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("unable to prepare report: %v", err)
	}
	r.StoreData("trees/themes/a.css.txt", []byte("dark"))
	r.StoreData("trees/themes/a.css.txt", []byte("light"))
	if err := r.Close(); err != nil {
		t.Fatalf("unable to close report: %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["trees/themes/a.css.txt"] != "dark" || files["trees/themes/a.css-2.txt"] != "light" {
		t.Errorf("expected both versions in archive, got %v", files)
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("expected empty name for nil report, got %q", r.Name())
	}
	r.Store("x", "y")
	r.StoreData("x", nil)
	if err := r.StoreCopy("x", "y"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
