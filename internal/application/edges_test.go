package application

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseEdges(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    [][2]int
		wantErr bool
	}{
		{name: "empty", input: "", want: nil},
		{name: "dashes", input: "0-1 0-2", want: [][2]int{{0, 1}, {0, 2}}},
		{name: "mixed separators", input: "0-1, 1>3; 2:4", want: [][2]int{{0, 1}, {1, 3}, {2, 4}}},
		{name: "missing child", input: "0-", wantErr: true},
		{name: "letters", input: "a-b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEdges(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseEdges(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEdges(%q) unexpected error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseEdges(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEdges_ErrorIsValidation(t *testing.T) {
	_, err := ParseEdges("0-1 2")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "edges" {
		t.Fatalf("ParseEdges() error = %v, want edges ValidationError", err)
	}
}
