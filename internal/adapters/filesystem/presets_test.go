package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stepviz/internal/application"
	"stepviz/internal/domain"
)

func writePreset(t *testing.T, dir, file, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write preset: %v", err)
	}
}

func TestListPresets_MissingDirHasSample(t *testing.T) {
	repo := NewPresetRepository(filepath.Join(t.TempDir(), "absent"))

	presets, err := repo.ListPresets()
	if err != nil {
		t.Fatalf("ListPresets failed: %v", err)
	}
	if len(presets) != 1 || presets[0].Name != "sample" {
		t.Errorf("expected only the sample preset, got %+v", presets)
	}
}

func TestListPresets_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "chain.yaml", `
name: chain
description: three in a row
node_count: 3
values: [x, y, z]
edges:
  - [0, 1]
  - [1, 2]
target: z
depth_limit: 1
`)
	writePreset(t, dir, "binary.yml", "node_count: 15\nauto: true\n")
	writePreset(t, dir, "notes.txt", "ignored")

	presets, err := NewPresetRepository(dir).ListPresets()
	if err != nil {
		t.Fatalf("ListPresets failed: %v", err)
	}

	var names []string
	for _, p := range presets {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != "sample,binary,chain" {
		t.Errorf("expected sample,binary,chain, got %s", got)
	}

	chain := presets[2]
	if chain.Target != "z" || chain.DepthLimit != 1 {
		t.Errorf("unexpected chain preset: %+v", chain)
	}
	if len(chain.Spec.Edges) != 2 || chain.Spec.Edges[1] != (domain.Edge{Parent: 1, Child: 2}) {
		t.Errorf("unexpected edges: %+v", chain.Spec.Edges)
	}
	if presets[1].DepthLimit != domain.DefaultDepthLimit {
		t.Errorf("expected default depth limit, got %d", presets[1].DepthLimit)
	}
}

func TestListPresets_UserFileOverridesSample(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "sample.yaml", "name: sample\nnode_count: 3\nauto: true\n")

	presets, err := NewPresetRepository(dir).ListPresets()
	if err != nil {
		t.Fatalf("ListPresets failed: %v", err)
	}
	if len(presets) != 1 || presets[0].Spec.NodeCount != 3 {
		t.Errorf("expected overridden sample, got %+v", presets)
	}
}

func TestLoadPreset(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "bad.yaml", "node_count: 2\nedges:\n  - [0]\n")
	repo := NewPresetRepository(dir)

	p, err := repo.LoadPreset("sample")
	if err != nil {
		t.Fatalf("LoadPreset(sample) failed: %v", err)
	}
	if p.Target != "E" {
		t.Errorf("expected sample target E, got %q", p.Target)
	}

	if _, err := repo.LoadPreset("missing"); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := repo.LoadPreset("bad"); err == nil || !strings.Contains(err.Error(), "must be [parent, child]") {
		t.Errorf("expected malformed edge error, got %v", err)
	}
}

func TestSavePreset_RoundTrip(t *testing.T) {
	repo := NewPresetRepository(filepath.Join(t.TempDir(), "presets"))
	in := domain.Preset{
		Name:       "wide",
		Spec:       domain.BuildSpec{NodeCount: 4, Edges: []domain.Edge{{Parent: 0, Child: 1}, {Parent: 0, Child: 2}, {Parent: 0, Child: 3}}},
		Target:     "D",
		DepthLimit: 0,
	}

	path, err := repo.SavePreset(in)
	if err != nil {
		t.Fatalf("SavePreset failed: %v", err)
	}
	if filepath.Base(path) != "wide.yaml" {
		t.Errorf("unexpected path %s", path)
	}

	out, err := repo.LoadPreset("wide")
	if err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	if out.DepthLimit != 0 || len(out.Spec.Edges) != 3 || out.Target != "D" {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestSavePreset_RejectsBadName(t *testing.T) {
	repo := NewPresetRepository(t.TempDir())

	_, err := repo.SavePreset(domain.Preset{Name: "../escape"})
	var validationErr *application.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestPresetPath_WritesBuiltIn(t *testing.T) {
	dir := t.TempDir()
	repo := NewPresetRepository(dir)

	path, err := repo.PresetPath("sample")
	if err != nil {
		t.Fatalf("PresetPath failed: %v", err)
	}
	if path != filepath.Join(dir, "sample.yaml") {
		t.Errorf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("sample not written: %v", err)
	}
	if !strings.Contains(string(data), "node_count: 7") {
		t.Errorf("expected node_count in file, got:\n%s", data)
	}
}
