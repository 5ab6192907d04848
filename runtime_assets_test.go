package formframe

import (
	"io/fs"
	"strings"
	"testing"
)

func TestRuntimeAssetsFSContainsRuntimeBundle(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), "formframe.js")
	if err != nil {
		t.Fatalf("expected runtime bundle to be readable: %v", err)
	}
	for _, marker := range []string{"[data-fg-scope]", "[data-fg-target]", "FG-Region", "URLSearchParams"} {
		if !strings.Contains(string(data), marker) {
			t.Fatalf("expected runtime bundle to reference %s", marker)
		}
	}
}

func TestRuntimeAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), "formframe.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), "--ff-accent") {
		t.Fatalf("expected stylesheet to use theme tokens")
	}
}

func TestEmbeddedTemplatesContainRegion(t *testing.T) {
	data, err := fs.ReadFile(EmbeddedTemplates(), "region.tpl")
	if err != nil {
		t.Fatalf("expected region template: %v", err)
	}
	if !strings.Contains(string(data), "data-fg-region") {
		t.Fatalf("expected region marker in template")
	}
}
