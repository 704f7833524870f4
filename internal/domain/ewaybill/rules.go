// Package ewaybill provides e-way bill generation for goods movements.
// Whether a document needs an e-way bill is decided by a configurable
// CEL expression evaluated against the document's money and movement
// facts, so threshold changes ship as configuration, not code.
package ewaybill

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// DefaultRule is the statutory threshold: consignments of fifty
// thousand rupees and above need an e-way bill.
const DefaultRule = `grandTotal >= 50000.0`

// RuleInput carries the facts the applicability rule can reference.
type RuleInput struct {
	// GrandTotal of the consignment
	GrandTotal float64

	// InterState is true for supplies crossing state lines
	InterState bool

	// DocType is the source document type ("delivery_challan", ...)
	DocType string

	// DistanceKm is the declared transport distance
	DistanceKm float64
}

// RuleEngine evaluates the compiled applicability expression.
type RuleEngine struct {
	prg cel.Program
}

// NewRuleEngine compiles a CEL applicability expression. The expression
// must evaluate to a boolean.
func NewRuleEngine(expr string) (*RuleEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable("grandTotal", cel.DoubleType),
		cel.Variable("interState", cel.BoolType),
		cel.Variable("docType", cel.StringType),
		cel.Variable("distanceKm", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile rule %q: %w", expr, issues.Err())
	}

	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("rule %q must evaluate to a boolean, got %s", expr, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program rule %q: %w", expr, err)
	}

	return &RuleEngine{prg: prg}, nil
}

// MustNewRuleEngine compiles the expression, panicking on error.
// Use only for constants and tests.
func MustNewRuleEngine(expr string) *RuleEngine {
	e, err := NewRuleEngine(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// Required reports whether the consignment needs an e-way bill.
func (e *RuleEngine) Required(in RuleInput) (bool, error) {
	out, _, err := e.prg.Eval(map[string]any{
		"grandTotal": in.GrandTotal,
		"interState": in.InterState,
		"docType":    in.DocType,
		"distanceKm": in.DistanceKm,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate rule: %w", err)
	}

	required, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule returned %T, want bool", out.Value())
	}
	return required, nil
}
