package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"stepviz/internal/application"
	"stepviz/internal/domain"
)

// memPresets is an in-memory SpecRepository
type memPresets struct {
	presets map[string]domain.Preset
	err     error
}

func newMemPresets(extra ...domain.Preset) *memPresets {
	m := &memPresets{presets: map[string]domain.Preset{}}
	sample := domain.SamplePreset()
	m.presets[sample.Name] = sample
	for _, p := range extra {
		m.presets[p.Name] = p
	}
	return m
}

func (m *memPresets) ListPresets() ([]domain.Preset, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Preset, 0, len(m.presets))
	for _, p := range m.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memPresets) LoadPreset(name string) (*domain.Preset, error) {
	p, ok := m.presets[name]
	if !ok {
		return nil, fmt.Errorf("preset %q: %w", name, application.ErrNotFound)
	}
	return &p, nil
}

func (m *memPresets) PresetPath(name string) (string, error) {
	return "/presets/" + name + ".yaml", nil
}

func (m *memPresets) SavePreset(p domain.Preset) (string, error) {
	m.presets[p.Name] = p
	return m.PresetPath(p.Name)
}

// memReports is an in-memory ReportStore
type memReports struct {
	reports []domain.Report
}

func (m *memReports) Open(string) error { return nil }
func (m *memReports) Close() error      { return nil }

func (m *memReports) SaveReport(_ context.Context, r *domain.Report) error {
	m.reports = append(m.reports, *r)
	return nil
}

func (m *memReports) ListReports(_ context.Context, limit int) ([]domain.Report, error) {
	out := make([]domain.Report, 0, len(m.reports))
	for i := len(m.reports) - 1; i >= 0; i-- {
		out = append(out, m.reports[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memReports) GetReport(_ context.Context, id string) (*domain.Report, error) {
	for _, r := range m.reports {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("report %s: %w", id, application.ErrNotFound)
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
