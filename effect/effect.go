// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package effect computes effect sizes from fitted models.
//
// An effect size is the difference between a model's predictions for
// two inputs that differ in exactly one predictor. For a continuous
// predictor, the inputs differ by a step and the result is a slope.
// For a categorical predictor, the inputs differ in level and the
// result is a change.
package effect

import (
	"errors"
	"fmt"

	"github.com/aclements/go-ggformula/formula"
)

// Values maps predictor names to values. Continuous predictors take
// float64 values and categorical predictors take string levels.
type Values map[string]interface{}

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, x := range v {
		out[k] = x
	}
	return out
}

// Type is the scale of a model prediction.
type Type int

const (
	// Response predicts on the scale of the response variable.
	Response Type = iota

	// Link predicts on the scale of the model's linear
	// predictor. For classifiers, this is log odds, which are
	// bounded for classes with probability 0 or 1.
	Link
)

func (t Type) String() string {
	switch t {
	case Response:
		return "response"
	case Link:
		return "link"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType parses "response" or "link".
func ParseType(s string) (Type, error) {
	switch s {
	case "response", "":
		return Response, nil
	case "link":
		return Link, nil
	}
	return 0, fmt.Errorf("unknown prediction type %q", s)
}

// A Model is a fitted model that can make predictions.
type Model interface {
	// Predictors returns the names of the model's predictors.
	Predictors() []string

	// Predict returns the model's prediction for each row. Each
	// prediction has one value, or one value per class for
	// classifiers.
	Predict(rows []Values, typ Type) ([][]float64, error)
}

// A Leveler is a Model that knows the levels of its categorical
// predictors.
type Leveler interface {
	Model

	// Levels returns the levels of categorical predictor name,
	// or nil if name is not categorical.
	Levels(name string) []string
}

// A Classifier is a Model that predicts one value per class.
type Classifier interface {
	Model

	// Classes returns the class names, in prediction order.
	Classes() []string
}

// Options control EffectSize.
type Options struct {
	// Type is the prediction scale.
	Type Type

	// Step is the difference in a continuous predictor. If 0, it
	// defaults to 1.
	Step float64

	// To is the level a categorical predictor is changed to. If
	// "", it defaults to the first other level reported by a
	// Leveler model.
	To string
}

// Result is an effect size.
type Result struct {
	// Label is "slope" for a continuous predictor or "change" for
	// a categorical predictor.
	Label string

	// Variable is the predictor that was varied, from From to To.
	Variable string
	From, To interface{}

	// Values are the prediction differences. For slopes, these
	// are per unit of the predictor.
	Values []float64

	// Classes names each of Values for a Classifier model.
	Classes []string
}

func (r *Result) String() string {
	if len(r.Values) == 1 && r.Classes == nil {
		return fmt.Sprintf("%s = %g", r.Label, r.Values[0])
	}
	s := r.Label + ":"
	for i, v := range r.Values {
		name := fmt.Sprint(i)
		if i < len(r.Classes) {
			name = r.Classes[i]
		}
		s += fmt.Sprintf(" %s = %g", name, v)
	}
	return s
}

// LookupError reports a variable missing from the fixed values or
// from the model.
type LookupError struct {
	Name string
	In   string // "fixed values" or "model predictors"
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("effect: variable %q not in %s", e.Name, e.In)
}

// ErrNoContrast is returned when a categorical predictor has no level
// to compare its fixed level against.
var ErrNoContrast = errors.New("effect: no comparison level")

// EffectSize computes the effect on m's prediction of the variable
// named by the right side of variableFormula, such as "~ hp", holding
// the other predictors at fixed. fixed must also give the variable's
// base value.
func EffectSize(m Model, variableFormula string, fixed Values, opts Options) (*Result, error) {
	name, err := variable(variableFormula)
	if err != nil {
		return nil, err
	}
	base, ok := fixed[name]
	if !ok {
		return nil, &LookupError{name, "fixed values"}
	}
	if !contains(m.Predictors(), name) {
		return nil, &LookupError{name, "model predictors"}
	}

	from, to := fixed.clone(), fixed.clone()
	if v, ok := base.(int); ok {
		base = float64(v)
		from[name] = base
	}
	r := &Result{Variable: name, From: base}
	scale := 1.0
	switch v := base.(type) {
	case float64:
		step := opts.Step
		if step == 0 {
			step = 1
		}
		r.Label, r.To, scale = "slope", v+step, step
	case string:
		level := opts.To
		if level == "" {
			if lm, ok := m.(Leveler); ok {
				for _, l := range lm.Levels(name) {
					if l != v {
						level = l
						break
					}
				}
			}
		}
		if level == "" || level == v {
			return nil, fmt.Errorf("%w for %s = %s", ErrNoContrast, name, v)
		}
		r.Label, r.To = "change", level
	default:
		return nil, fmt.Errorf("effect: %s has unsupported value type %T", name, base)
	}
	to[name] = r.To

	ps, err := m.Predict([]Values{from, to}, opts.Type)
	if err != nil {
		return nil, fmt.Errorf("effect: predicting: %w", err)
	}
	if len(ps) != 2 || len(ps[0]) != len(ps[1]) {
		return nil, fmt.Errorf("effect: model returned malformed predictions")
	}
	r.Values = make([]float64, len(ps[0]))
	for i := range r.Values {
		r.Values[i] = (ps[1][i] - ps[0][i]) / scale
	}
	if c, ok := m.(Classifier); ok {
		r.Classes = c.Classes()
	}
	return r, nil
}

// variable returns the single variable named on the right side of f.
func variable(f string) (string, error) {
	pf, err := formula.Parse(f)
	if err != nil {
		return "", err
	}
	var names []string
	for _, t := range pf.RHS {
		if t.Positional() && !t.Literal {
			names = append(names, t.Value)
		}
	}
	if len(names) != 1 {
		return "", fmt.Errorf("effect: formula %q must name exactly one variable", f)
	}
	return names[0], nil
}

func contains(xs []string, x string) bool {
	for _, y := range xs {
		if x == y {
			return true
		}
	}
	return false
}
