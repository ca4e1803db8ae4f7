package application

import (
	"strconv"
	"strings"
)

// ParseEdges reads "0-1 0-2, 1>3" into parent/child pairs
func ParseEdges(s string) ([][2]int, error) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})

	var edges [][2]int
	for _, tok := range tokens {
		parts := strings.FieldsFunc(tok, func(r rune) bool {
			return r == '-' || r == '>' || r == ':'
		})
		if len(parts) != 2 {
			return nil, &ValidationError{Field: "edges", Message: "edge " + strconv.Quote(tok) + " must look like parent-child"}
		}
		p, err1 := strconv.Atoi(parts[0])
		c, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return nil, &ValidationError{Field: "edges", Message: "edge " + strconv.Quote(tok) + " must use node indices"}
		}
		edges = append(edges, [2]int{p, c})
	}
	return edges, nil
}
