package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"stepviz/internal/domain"
)

// validate is shared by every request type
var validate = validator.New()

// BuildRequest is a tree specification as entered by a user or a tool call
type BuildRequest struct {
	NodeCount int      `validate:"min=1,max=31"`
	Values    []string `validate:"max=31,dive,max=12"`
	Edges     [][2]int
	Auto      bool
}

// Spec converts the request into a domain BuildSpec
func (r BuildRequest) Spec() domain.BuildSpec {
	spec := domain.BuildSpec{NodeCount: r.NodeCount, Values: r.Values, Auto: r.Auto}
	for _, e := range r.Edges {
		spec.Edges = append(spec.Edges, domain.Edge{Parent: e[0], Child: e[1]})
	}
	return spec
}

// SearchRequest configures a traversal
type SearchRequest struct {
	Discipline string `validate:"required,oneof=bfs dfs dls"`
	Target     string `validate:"max=12"`
	DepthLimit int    `validate:"min=0,max=30"`
}

// LinearRequest configures a linear structure
type LinearRequest struct {
	Kind     string `validate:"required,oneof=stack queue circular"`
	Capacity int    `validate:"min=1,max=32"`
}

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateBuild checks a BuildRequest before it reaches the builder
func ValidateBuild(r BuildRequest) error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if len(r.Values) > r.NodeCount {
		return &ValidationError{
			Field:   "values",
			Message: fmt.Sprintf("got %d values for %d nodes", len(r.Values), r.NodeCount),
		}
	}
	if !r.Auto && len(r.Edges) == 0 && r.NodeCount > 1 {
		return &ValidationError{
			Field:   "edges",
			Message: "edges are required unless auto layout is set",
		}
	}
	return nil
}

// ValidateSearch checks a SearchRequest
func ValidateSearch(r SearchRequest) error {
	return validateStruct(r)
}

// ValidateLinear checks a LinearRequest, including the narrower circular range
func ValidateLinear(r LinearRequest) error {
	if err := validateStruct(r); err != nil {
		return err
	}
	kind, _ := domain.ParseLinearKind(r.Kind)
	if lo, hi := kind.CapacityRange(); r.Capacity < lo || r.Capacity > hi {
		return &ValidationError{
			Field:   "capacity",
			Message: fmt.Sprintf("%s capacity must be between %d and %d", kind, lo, hi),
		}
	}
	return nil
}

// validateStruct runs the struct tags and reports the first violation
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	field := lowerFirst(fe.Field())
	return &ValidationError{
		Field:   field,
		Message: describeRule(formatFieldName(field), fe),
	}
}

func describeRule(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "nodeCount" -> "node count")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"nodeCount":  "node count",
		"depthLimit": "depth limit",
		"values":     "values",
		"discipline": "discipline",
		"capacity":   "capacity",
		"kind":       "kind",
		"preset":     "preset",
		"program":    "program",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	// Fallback: just return the field name as-is
	return fieldName
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
