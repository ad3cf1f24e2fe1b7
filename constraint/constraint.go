// Package constraint turns CEL expressions into add hooks for namespace sets.
//
// An expression sees the element being added and the elements already in the
// set:
//
//	id_short    string        idShort of the element being added
//	model_type  string        model type name, e.g. "Property"
//	siblings    list(string)  idShorts of the elements already in the set
//	count       int           number of elements already in the set
//
// The expression must evaluate to a bool; false rejects the element.
//
//	c, err := constraint.Compile(`count < 16 && id_short.startsWith("Sensor")`)
//	if err != nil {
//	    return err
//	}
//	sm := model.NewSubmodel(id, model.WithAddHook(c.Hook()))
package constraint

import (
	"errors"
	"fmt"
	"iter"

	celgo "github.com/google/cel-go/cel"

	"github.com/zero-day-ai/aas/model"
)

// ErrViolation is returned by a hook whose expression evaluated to false.
var ErrViolation = errors.New("constraint violated")

// Constraint is a compiled CEL expression over an element and its siblings.
// It is safe for concurrent use.
type Constraint struct {
	expression string
	program    celgo.Program
}

// Compile parses and type-checks expression. Syntax errors, unknown
// variables and non-bool results are reported as model.ErrInvalidConfig.
func Compile(expression string) (*Constraint, error) {
	const op = "constraint.Compile"
	if expression == "" {
		return nil, model.NewInvalidConfigError(op, "expression must not be empty")
	}

	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, model.NewInvalidConfigError(op, fmt.Sprintf("parse %q: %v", expression, issues.Err()))
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, model.NewInvalidConfigError(op, fmt.Sprintf("check %q: %v", expression, issues.Err()))
	}
	if !checked.OutputType().IsExactType(celgo.BoolType) {
		return nil, model.NewInvalidConfigError(op,
			fmt.Sprintf("%q evaluates to %s, want bool", expression, checked.OutputType()))
	}
	prg, err := env.Program(checked)
	if err != nil {
		return nil, model.NewInvalidConfigError(op, fmt.Sprintf("program %q: %v", expression, err))
	}

	return &Constraint{expression: expression, program: prg}, nil
}

// MustCompile is Compile that panics on error. Use it for expressions fixed
// at build time.
func MustCompile(expression string) *Constraint {
	c, err := Compile(expression)
	if err != nil {
		panic(err)
	}
	return c
}

func newEnv() (*celgo.Env, error) {
	return celgo.NewEnv(
		celgo.Variable("id_short", celgo.StringType),
		celgo.Variable("model_type", celgo.StringType),
		celgo.Variable("siblings", celgo.ListType(celgo.StringType)),
		celgo.Variable("count", celgo.IntType),
	)
}

// String returns the source expression.
func (c *Constraint) String() string {
	return c.expression
}

// Check evaluates the expression for element. It returns an error wrapping
// ErrViolation when the expression is false.
func (c *Constraint) Check(element model.Referable, siblings iter.Seq[model.Referable]) error {
	var names []string
	for s := range siblings {
		names = append(names, s.IDShort())
	}
	if names == nil {
		names = []string{}
	}

	out, _, err := c.program.Eval(map[string]any{
		"id_short":   element.IDShort(),
		"model_type": element.ModelType().String(),
		"siblings":   names,
		"count":      int64(len(names)),
	})
	if err != nil {
		return fmt.Errorf("failed to evaluate constraint %q: %w", c.expression, err)
	}
	if ok, isBool := out.Value().(bool); !isBool || !ok {
		return fmt.Errorf("%w: %q rejects %s %q", ErrViolation, c.expression, element.ModelType(), element.IDShort())
	}
	return nil
}

// Hook adapts c to model.AddHook.
func (c *Constraint) Hook() model.AddHook {
	return c.Check
}

// All combines constraints into one hook that reports the first violation.
func All(constraints ...*Constraint) model.AddHook {
	return func(element model.Referable, siblings iter.Seq[model.Referable]) error {
		for _, c := range constraints {
			if err := c.Check(element, siblings); err != nil {
				return err
			}
		}
		return nil
	}
}
