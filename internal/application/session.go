package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"stepviz/internal/domain"
)

// SearchSession bundles one tree, its search engine and the run controller
type SearchSession struct {
	ID         string
	Preset     string
	Structure  *domain.Structure
	Search     *domain.Search
	Controller *domain.Controller

	observers []domain.Observer
}

// NewSearchSession builds a session over s. The structure is owned by the
// session from here on.
func NewSearchSession(s *domain.Structure, preset string, req SearchRequest, obs ...domain.Observer) (*SearchSession, error) {
	if s == nil {
		return nil, domain.ErrNoNodes
	}
	sess := &SearchSession{
		ID:        uuid.NewString(),
		Preset:    preset,
		Structure: s,
		observers: obs,
	}
	if err := sess.Configure(req); err != nil {
		return nil, err
	}
	return sess, nil
}

// Configure replaces the search with a fresh one for req. The controller
// goes back to idle.
func (s *SearchSession) Configure(req SearchRequest) error {
	if err := ValidateSearch(req); err != nil {
		return err
	}
	d, err := domain.ParseDiscipline(req.Discipline)
	if err != nil {
		return err
	}

	opts := []domain.SearchOption{
		domain.WithTarget(req.Target),
		domain.WithDepthLimit(req.DepthLimit),
		domain.WithObserver(s.logEvent),
	}
	for _, fn := range s.observers {
		opts = append(opts, domain.WithObserver(fn))
	}

	s.Search = domain.NewSearch(s.Structure, d, opts...)
	s.Controller = domain.NewController(s.Search)

	logrus.WithFields(logrus.Fields{
		"session":    s.ID,
		"discipline": d.String(),
		"target":     req.Target,
		"limit":      req.DepthLimit,
	}).Debug("search configured")
	return nil
}

// Report returns the export record of a finished search
func (s *SearchSession) Report(now time.Time) (*domain.Report, error) {
	if !s.Search.Done() {
		return nil, ErrNotFinished
	}
	view := s.Search.View()
	return &domain.Report{
		ID:         uuid.NewString(),
		SessionID:  s.ID,
		Kind:       domain.ReportSearch,
		Subject:    view.Discipline.String(),
		Target:     view.Target,
		DepthLimit: view.DepthLimit,
		Outcome:    view.Status.String(),
		VisitOrder: s.Search.VisitOrder(),
		Steps:      view.Step,
		Log:        view.Log,
		CreatedAt:  now.UTC(),
	}, nil
}

func (s *SearchSession) logEvent(e domain.Event) {
	logrus.WithFields(logrus.Fields{
		"session": s.ID,
		"event":   e.Kind.String(),
		"step":    e.Step,
	}).Debug(e.Message)
}

// LinearSession holds one linear structure. Operations either arrive one
// at a time or come from a loaded program driven by the controller.
type LinearSession struct {
	ID         string
	Linear     *domain.Linear
	Program    *domain.LinearProgram
	Controller *domain.Controller
}

// NewLinearSession creates an empty structure for req
func NewLinearSession(req LinearRequest, obs ...domain.Observer) (*LinearSession, error) {
	if err := ValidateLinear(req); err != nil {
		return nil, err
	}
	kind, err := domain.ParseLinearKind(req.Kind)
	if err != nil {
		return nil, err
	}

	sess := &LinearSession{ID: uuid.NewString()}
	l, err := domain.NewLinear(kind, req.Capacity, append([]domain.Observer{sess.logEvent}, obs...)...)
	if err != nil {
		return nil, err
	}
	sess.Linear = l
	sess.LoadProgram(nil)

	logrus.WithFields(logrus.Fields{
		"session":  sess.ID,
		"kind":     kind.String(),
		"capacity": req.Capacity,
	}).Debug("linear structure created")
	return sess, nil
}

// Apply runs a single operation outside of any program. A loaded program
// is dropped first and the structure keeps its contents.
func (s *LinearSession) Apply(op domain.Operation) error {
	if s.ProgramLoaded() {
		s.Program = domain.NewLinearProgram(s.Linear, nil)
		s.Controller = domain.NewController(s.Program)
	}
	return s.Linear.Apply(op)
}

// ProgramLoaded reports whether a non-empty program is installed
func (s *LinearSession) ProgramLoaded() bool {
	return s.Program != nil && len(s.Program.Operations()) > 0
}

// LoadProgram empties the structure and installs ops as the program the
// controller will step through.
func (s *LinearSession) LoadProgram(ops []domain.Operation) {
	s.Program = domain.NewLinearProgram(s.Linear, ops)
	s.Program.Reset()
	s.Controller = domain.NewController(s.Program)
}

// LoadProgramText parses and installs a program such as "push a, pop"
func (s *LinearSession) LoadProgramText(text string) error {
	if err := ValidateRequired("program", text); err != nil {
		return err
	}
	ops, err := domain.ParseProgram(text)
	if err != nil {
		return &ValidationError{Field: "program", Message: err.Error()}
	}
	s.LoadProgram(ops)
	return nil
}

// Report returns the export record of the structure in its current state
func (s *LinearSession) Report(now time.Time) (*domain.Report, error) {
	if s.ProgramLoaded() && !s.Program.Done() {
		return nil, ErrNotFinished
	}
	view := s.Linear.View()
	return &domain.Report{
		ID:         uuid.NewString(),
		SessionID:  s.ID,
		Kind:       domain.ReportLinear,
		Subject:    view.Kind.String(),
		Outcome:    fmt.Sprintf("%d/%d occupied", view.Size, view.Capacity),
		VisitOrder: s.Linear.Values(),
		Steps:      view.Step,
		Log:        view.Log,
		CreatedAt:  now.UTC(),
	}, nil
}

func (s *LinearSession) logEvent(e domain.Event) {
	logrus.WithFields(logrus.Fields{
		"session": s.ID,
		"event":   e.Kind.String(),
		"step":    e.Step,
	}).Debug(e.Message)
}
