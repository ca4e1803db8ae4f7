package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"stepviz/internal/application"
	"stepviz/internal/domain"
)

var presetNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,39}$`)

// presetFile is the on-disk shape of a preset
type presetFile struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	NodeCount   int      `yaml:"node_count"`
	Values      []string `yaml:"values,omitempty"`
	Auto        bool     `yaml:"auto,omitempty"`
	Edges       [][]int  `yaml:"edges,omitempty"`
	Target      string   `yaml:"target,omitempty"`
	DepthLimit  *int     `yaml:"depth_limit,omitempty"`
}

// PresetRepository implements ports.SpecRepository over a directory of
// YAML files, with the sample tree always available
type PresetRepository struct {
	dir string
}

// NewPresetRepository creates a repository rooted at dir
func NewPresetRepository(dir string) *PresetRepository {
	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~") {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, dir[1:])
	}
	return &PresetRepository{dir: dir}
}

// Dir returns the presets directory
func (r *PresetRepository) Dir() string {
	return r.dir
}

// ListPresets returns the built-in sample followed by user presets sorted
// by name. A user file named after a built-in replaces it.
func (r *PresetRepository) ListPresets() ([]domain.Preset, error) {
	user, err := r.readAll()
	if err != nil {
		return nil, err
	}

	sample := domain.SamplePreset()
	presets := []domain.Preset{sample}
	for _, p := range user {
		if p.Name == sample.Name {
			presets[0] = p
			continue
		}
		presets = append(presets, p)
	}
	return presets, nil
}

// LoadPreset returns the named preset
func (r *PresetRepository) LoadPreset(name string) (*domain.Preset, error) {
	path := r.pathFor(name)
	p, err := readPreset(path)
	switch {
	case err == nil:
		return p, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	if sample := domain.SamplePreset(); name == sample.Name {
		return &sample, nil
	}
	return nil, fmt.Errorf("preset %q: %w", name, application.ErrNotFound)
}

// PresetPath returns the file backing a preset. Built-ins are written out
// first so they can be edited.
func (r *PresetRepository) PresetPath(name string) (string, error) {
	path := r.pathFor(name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	p, err := r.LoadPreset(name)
	if err != nil {
		return "", err
	}
	return r.SavePreset(*p)
}

// SavePreset writes p to <dir>/<name>.yaml
func (r *PresetRepository) SavePreset(p domain.Preset) (string, error) {
	if !presetNameRegex.MatchString(p.Name) {
		return "", &application.ValidationError{
			Field:   "preset",
			Message: fmt.Sprintf("invalid preset name: %q", p.Name),
		}
	}
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create presets directory: %w", err)
	}

	data, err := yaml.Marshal(toFile(p))
	if err != nil {
		return "", fmt.Errorf("failed to encode preset: %w", err)
	}

	path := r.pathFor(p.Name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write preset: %w", err)
	}
	return path, nil
}

func (r *PresetRepository) pathFor(name string) string {
	return filepath.Join(r.dir, name+".yaml")
}

// readAll loads every preset file; a missing directory means no presets
func (r *PresetRepository) readAll() ([]domain.Preset, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}

	var presets []domain.Preset
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		p, err := readPreset(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		presets = append(presets, *p)
	}

	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Name < presets[j].Name
	})
	return presets, nil
}

func readPreset(path string) (*domain.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f.toPreset(path)
}

func (f presetFile) toPreset(path string) (*domain.Preset, error) {
	p := &domain.Preset{
		Name:        f.Name,
		Description: f.Description,
		Target:      f.Target,
		DepthLimit:  domain.DefaultDepthLimit,
		Spec: domain.BuildSpec{
			NodeCount: f.NodeCount,
			Values:    f.Values,
			Auto:      f.Auto,
		},
	}
	if f.DepthLimit != nil {
		p.DepthLimit = *f.DepthLimit
	}
	for i, e := range f.Edges {
		if len(e) != 2 {
			return nil, fmt.Errorf("%s: edge %d must be [parent, child], got %v", filepath.Base(path), i, e)
		}
		p.Spec.Edges = append(p.Spec.Edges, domain.Edge{Parent: e[0], Child: e[1]})
	}
	return p, nil
}

func toFile(p domain.Preset) presetFile {
	limit := p.DepthLimit
	f := presetFile{
		Name:        p.Name,
		Description: p.Description,
		NodeCount:   p.Spec.NodeCount,
		Values:      p.Spec.Values,
		Auto:        p.Spec.Auto,
		Target:      p.Target,
		DepthLimit:  &limit,
	}
	for _, e := range p.Spec.Edges {
		f.Edges = append(f.Edges, []int{e.Parent, e.Child})
	}
	return f
}
