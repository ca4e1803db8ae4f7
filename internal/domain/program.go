package domain

import (
	"fmt"
	"strings"
)

// OpCode is a linear structure operation
type OpCode int

const (
	OpPush OpCode = iota
	OpPop
	OpPeek
)

func (c OpCode) String() string {
	switch c {
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	case OpPeek:
		return "peek"
	default:
		return "unknown"
	}
}

// Operation is one instruction of a linear program
type Operation struct {
	Code  OpCode
	Value string
}

func (o Operation) String() string {
	if o.Code == OpPush {
		return fmt.Sprintf("push %s", o.Value)
	}
	return o.Code.String()
}

// ParseOperation reads "push 4", "push:4", "enqueue x", "pop", "dequeue" or "peek"
func ParseOperation(s string) (Operation, error) {
	fields := strings.Fields(strings.ReplaceAll(strings.TrimSpace(s), ":", " "))
	if len(fields) == 0 {
		return Operation{}, fmt.Errorf("%w: empty instruction", ErrUnknownOperation)
	}
	switch strings.ToLower(fields[0]) {
	case "push", "enqueue", "insert":
		if len(fields) != 2 {
			return Operation{}, fmt.Errorf("%w: %q needs exactly one value", ErrUnknownOperation, s)
		}
		return Operation{Code: OpPush, Value: fields[1]}, nil
	case "pop", "dequeue", "remove":
		return Operation{Code: OpPop}, nil
	case "peek", "front", "top":
		return Operation{Code: OpPeek}, nil
	}
	return Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, s)
}

// ParseProgram reads instructions separated by commas, semicolons or newlines
func ParseProgram(s string) ([]Operation, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	var ops []Operation
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		op, err := ParseOperation(p)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// programMark records one executed instruction
type programMark struct {
	accepted bool
	err      error
}

// LinearProgram runs a list of operations against a Linear, one per
// Advance, so linear simulators can be driven by a Controller.
type LinearProgram struct {
	engine *Linear
	ops    []Operation
	pc     int
	trail  []programMark
}

// NewLinearProgram creates a program positioned at its first instruction
func NewLinearProgram(engine *Linear, ops []Operation) *LinearProgram {
	return &LinearProgram{engine: engine, ops: ops}
}

// Advance executes the next instruction. Rejected instructions still
// consume their slot in the program but leave the engine unchanged.
func (p *LinearProgram) Advance() bool {
	if p.Done() {
		return false
	}
	err := p.engine.Apply(p.ops[p.pc])
	p.trail = append(p.trail, programMark{accepted: err == nil, err: err})
	p.pc++
	return true
}

// Undo rewinds one instruction, undoing its engine effect if it was accepted
func (p *LinearProgram) Undo() bool {
	if len(p.trail) == 0 {
		return false
	}
	last := p.trail[len(p.trail)-1]
	p.trail = p.trail[:len(p.trail)-1]
	if last.accepted {
		p.engine.Undo()
	}
	p.pc--
	return true
}

// Reset empties the engine and rewinds to the first instruction
func (p *LinearProgram) Reset() {
	p.engine.Reset()
	p.pc = 0
	p.trail = nil
}

// Done reports whether every instruction ran
func (p *LinearProgram) Done() bool {
	return p.pc >= len(p.ops)
}

// Engine returns the structure the program drives
func (p *LinearProgram) Engine() *Linear {
	return p.engine
}

// Counter returns the index of the next instruction
func (p *LinearProgram) Counter() int {
	return p.pc
}

// Operations returns the instruction list
func (p *LinearProgram) Operations() []Operation {
	return append([]Operation(nil), p.ops...)
}

// LastErr returns the rejection of the most recent instruction, if any
func (p *LinearProgram) LastErr() error {
	if len(p.trail) == 0 {
		return nil
	}
	return p.trail[len(p.trail)-1].err
}
