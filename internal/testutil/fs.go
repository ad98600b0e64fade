package testutil

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// CreateTestCBZ creates a CBZ file in dir holding the given entries
// (name -> content). Entries are written in name order.
func CreateTestCBZ(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	filePath := filepath.Join(dir, name)
	file, err := os.Create(filePath)
	if err != nil {
		t.Fatalf("Failed to create temp cbz file: %v", err)
	}
	defer file.Close()

	zipWriter := zip.NewWriter(file)
	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		w, err := zipWriter.Create(n)
		if err != nil {
			t.Fatalf("Failed to create entry '%s' in zip: %v", n, err)
		}
		if _, err := w.Write([]byte(entries[n])); err != nil {
			t.Fatalf("Failed to write entry '%s': %v", n, err)
		}
	}
	if err := zipWriter.Close(); err != nil {
		t.Fatalf("Failed to finalize zip: %v", err)
	}
	return filePath
}

// ComicInfoXML renders a minimal ComicInfo document from field -> value pairs.
func ComicInfoXML(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	b.WriteString(`<ComicInfo xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` + "\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "  <%s>%s</%s>\n", k, fields[k], k)
	}
	b.WriteString("</ComicInfo>\n")
	return b.String()
}

// TouchFiles creates empty files under dir and returns their paths in the
// order given. Parent directories are created as needed.
func TouchFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", n, err)
		}
		if err := os.WriteFile(p, []byte("data"), 0o644); err != nil {
			t.Fatalf("Failed to create %s: %v", n, err)
		}
		paths = append(paths, p)
	}
	return paths
}
