// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package effect

import (
	"fmt"
	"math"
	"sort"
)

// Linear is a fitted generalized linear model.
type Linear struct {
	Intercept float64 `json:"intercept"`

	// Coefficients are the slopes of the continuous predictors.
	Coefficients map[string]float64 `json:"coefficients,omitempty"`

	// Factors are the categorical predictors.
	Factors map[string]*Factor `json:"factors,omitempty"`

	// Link is the link function: "identity" (the default), "log",
	// or "logit".
	Link string `json:"link,omitempty"`
}

// Factor is a categorical predictor of a Linear model.
type Factor struct {
	// Levels are the factor's levels. The first is the base
	// level.
	Levels []string `json:"levels"`

	// Effects are the offsets of each level from the base level.
	// Missing levels have no effect.
	Effects map[string]float64 `json:"effects,omitempty"`
}

var links = map[string]func(float64) float64{
	"":         func(x float64) float64 { return x },
	"identity": func(x float64) float64 { return x },
	"log":      math.Exp,
	"logit":    func(x float64) float64 { return 1 / (1 + math.Exp(-x)) },
}

func (m *Linear) validate() error {
	if _, ok := links[m.Link]; !ok {
		return fmt.Errorf("unknown link %q", m.Link)
	}
	for name, f := range m.Factors {
		if _, ok := m.Coefficients[name]; ok {
			return fmt.Errorf("predictor %q is both continuous and categorical", name)
		}
		if len(f.Levels) == 0 {
			return fmt.Errorf("factor %q has no levels", name)
		}
		for level := range f.Effects {
			if !contains(f.Levels, level) {
				return fmt.Errorf("factor %q has effect for unknown level %q", name, level)
			}
		}
	}
	return nil
}

func (m *Linear) Predictors() []string {
	var names []string
	for name := range m.Coefficients {
		names = append(names, name)
	}
	for name := range m.Factors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Linear) Levels(name string) []string {
	if f, ok := m.Factors[name]; ok {
		return f.Levels
	}
	return nil
}

func (m *Linear) Predict(rows []Values, typ Type) ([][]float64, error) {
	inv, ok := links[m.Link]
	if !ok {
		return nil, fmt.Errorf("unknown link %q", m.Link)
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		eta, err := m.linear(row)
		if err != nil {
			return nil, err
		}
		if typ == Response {
			eta = inv(eta)
		}
		out[i] = []float64{eta}
	}
	return out, nil
}

// linear returns the linear predictor for row.
func (m *Linear) linear(row Values) (float64, error) {
	// Sum in a fixed order so predictions are reproducible.
	eta := m.Intercept
	for _, name := range m.Predictors() {
		if f, ok := m.Factors[name]; ok {
			lv, err := level(row, name)
			if err != nil {
				return 0, err
			}
			if !contains(f.Levels, lv) {
				return 0, fmt.Errorf("%s: unknown level %q", name, lv)
			}
			eta += f.Effects[lv]
			continue
		}
		x, err := number(row, name)
		if err != nil {
			return 0, err
		}
		eta += m.Coefficients[name] * x
	}
	return eta, nil
}

func number(row Values, name string) (float64, error) {
	switch x := row[name].(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case nil:
		return 0, &LookupError{name, "fixed values"}
	default:
		return 0, fmt.Errorf("%s: want a number, got %v", name, x)
	}
}

func level(row Values, name string) (string, error) {
	switch x := row[name].(type) {
	case string:
		return x, nil
	case nil:
		return "", &LookupError{name, "fixed values"}
	default:
		return fmt.Sprint(x), nil
	}
}
