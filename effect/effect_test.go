// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package effect

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func mpgModel() *Linear {
	return &Linear{
		Intercept:    30,
		Coefficients: map[string]float64{"hp": -0.05, "wt": -2},
		Factors: map[string]*Factor{
			"cyl": {
				Levels:  []string{"4", "6", "8"},
				Effects: map[string]float64{"6": -4, "8": -6.5},
			},
		},
	}
}

func logitModel() *Linear {
	return &Linear{
		Intercept:    -1,
		Coefficients: map[string]float64{"x": 0.5},
		Factors: map[string]*Factor{
			"g": {Levels: []string{"a", "b"}, Effects: map[string]float64{"b": 1}},
		},
		Link: "logit",
	}
}

func speciesTree() *Tree {
	return &Tree{
		ClassNames: []string{"setosa", "versicolor", "virginica"},
		Factors:    map[string][]string{"soil": {"clay", "loam", "sand"}},
		Root: &Node{
			Var: "petal",
			Cut: 2.5,
			Left: &Node{
				Probs: []float64{0.9, 0.05, 0.05},
			},
			Right: &Node{
				Var:   "soil",
				In:    []string{"clay"},
				Left:  &Node{Probs: []float64{0.1, 0.7, 0.2}},
				Right: &Node{Probs: []float64{0.1, 0.2, 0.7}},
			},
		},
	}
}

const eps = 1e-12

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func predict1(t *testing.T, m Model, row Values, typ Type) []float64 {
	t.Helper()
	ps, err := m.Predict([]Values{row}, typ)
	if err != nil {
		t.Fatal(err)
	}
	return ps[0]
}

func TestSlope(t *testing.T) {
	m := mpgModel()
	fixed := Values{"hp": 110.0, "wt": 2.6, "cyl": "6"}
	for _, test := range []struct {
		f    string
		opts Options
		want float64
	}{
		{"~ hp", Options{}, -0.05},
		{"~ hp", Options{Step: 10}, -0.05},
		{"~ wt", Options{Step: 0.5}, -2},
		{"mpg ~ wt", Options{}, -2},
	} {
		r, err := EffectSize(m, test.f, fixed, test.opts)
		if err != nil {
			t.Errorf("%q: %v", test.f, err)
			continue
		}
		if r.Label != "slope" {
			t.Errorf("%q: label %q, want slope", test.f, r.Label)
		}
		if len(r.Values) != 1 || !near(r.Values[0], test.want) {
			t.Errorf("%q: got %v, want %v", test.f, r.Values, test.want)
		}
	}
}

func TestChange(t *testing.T) {
	m := mpgModel()
	fixed := Values{"hp": 110.0, "wt": 2.6, "cyl": "6"}

	r, err := EffectSize(m, "~ cyl", fixed, Options{To: "8"})
	if err != nil {
		t.Fatal(err)
	}
	if r.Label != "change" || r.From != "6" || r.To != "8" {
		t.Errorf("got %+v", r)
	}
	// The change is exactly the difference of the two predictions.
	to := Values{"hp": 110.0, "wt": 2.6, "cyl": "8"}
	want := predict1(t, m, to, Response)[0] - predict1(t, m, fixed, Response)[0]
	if r.Values[0] != want {
		t.Errorf("change = %v, want %v", r.Values[0], want)
	}

	// Without To, the first other level is used.
	r, err = EffectSize(m, "~ cyl", fixed, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if r.To != "4" || !near(r.Values[0], 4) {
		t.Errorf("default contrast: got %+v", r)
	}
}

func TestChangeScales(t *testing.T) {
	m := logitModel()
	fixed := Values{"x": 0.0, "g": "a"}
	for _, typ := range []Type{Response, Link} {
		r, err := EffectSize(m, "~ g", fixed, Options{Type: typ})
		if err != nil {
			t.Fatal(err)
		}
		to := Values{"x": 0.0, "g": "b"}
		want := predict1(t, m, to, typ)[0] - predict1(t, m, fixed, typ)[0]
		if r.Values[0] != want {
			t.Errorf("%v: change = %v, want %v", typ, r.Values[0], want)
		}
	}

	r, err := EffectSize(m, "~ g", fixed, Options{Type: Link})
	if err != nil {
		t.Fatal(err)
	}
	if !near(r.Values[0], 1) {
		t.Errorf("link change = %v, want 1", r.Values[0])
	}
	r, err = EffectSize(m, "~ g", fixed, Options{Type: Response})
	if err != nil {
		t.Fatal(err)
	}
	want := 1/(1+math.Exp(0)) - 1/(1+math.Exp(1))
	if !near(r.Values[0], want) {
		t.Errorf("response change = %v, want %v", r.Values[0], want)
	}
}

func TestTreeChange(t *testing.T) {
	m := speciesTree()
	fixed := Values{"petal": 4.0, "soil": "clay"}
	r, err := EffectSize(m, "~ soil", fixed, Options{To: "sand"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r.Classes, m.ClassNames) {
		t.Errorf("classes = %v", r.Classes)
	}
	want := []float64{0, -0.5, 0.5}
	for i := range want {
		if !near(r.Values[i], want[i]) {
			t.Errorf("values = %v, want %v", r.Values, want)
			break
		}
	}

	r, err = EffectSize(m, "~ petal", fixed, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if r.Label != "slope" {
		t.Errorf("label = %q, want slope", r.Label)
	}
	// Both rows land in the same leaf.
	for _, v := range r.Values {
		if v != 0 {
			t.Errorf("values = %v, want zeros", r.Values)
			break
		}
	}

	ps, err := m.Predict([]Values{{"petal": 1.0, "soil": "loam"}}, Link)
	if err != nil {
		t.Fatal(err)
	}
	if !near(ps[0][0], math.Log(0.9/0.1)) {
		t.Errorf("log odds = %v", ps[0])
	}
}

func TestTreePureLeaves(t *testing.T) {
	m := &Tree{
		ClassNames: []string{"no", "yes"},
		Root: &Node{
			Var:   "dose",
			Cut:   1,
			Left:  &Node{Probs: []float64{1, 0}},
			Right: &Node{Probs: []float64{0, 1}},
		},
	}
	r, err := EffectSize(m, "~ dose", Values{"dose": 0.5}, Options{Type: Link})
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range r.Values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Fatalf("values = %v, want finite", r.Values)
		}
	}
	if !(r.Values[0] < 0 && r.Values[1] > 0) {
		t.Errorf("values = %v, want no decreasing and yes increasing", r.Values)
	}
	want := 2 * math.Log((1-minProb)/minProb)
	if math.Abs(r.Values[1]-want) > 1e-6 || math.Abs(r.Values[0]+want) > 1e-6 {
		t.Errorf("values = %v, want ±%v", r.Values, want)
	}
}

func TestEffectSizeErrors(t *testing.T) {
	m := mpgModel()
	fixed := Values{"hp": 110.0, "wt": 2.6, "cyl": "6", "gear": 4.0}

	var lerr *LookupError
	_, err := EffectSize(m, "~ disp", fixed, Options{})
	if !errors.As(err, &lerr) || lerr.In != "fixed values" {
		t.Errorf("missing from fixed: got %v", err)
	}
	_, err = EffectSize(m, "~ gear", fixed, Options{})
	if !errors.As(err, &lerr) || lerr.In != "model predictors" {
		t.Errorf("missing from model: got %v", err)
	}
	_, err = EffectSize(m, "~ cyl", fixed, Options{To: "6"})
	if !errors.Is(err, ErrNoContrast) {
		t.Errorf("same level: got %v, want %v", err, ErrNoContrast)
	}
	_, err = EffectSize(m, "~ cyl", Values{"hp": 110.0, "wt": 2.6, "cyl": "12"}, Options{To: "8"})
	if err == nil || !strings.Contains(err.Error(), "unknown level") {
		t.Errorf("bad level: got %v", err)
	}
	for _, f := range []string{"~ hp + wt", "~ 3", "hp ~"} {
		if _, err := EffectSize(m, f, fixed, Options{}); err == nil {
			t.Errorf("%q: want error", f)
		}
	}
	_, err = EffectSize(m, "~ wt", Values{"hp": 110.0, "wt": 2.6}, Options{})
	if !errors.As(err, &lerr) || lerr.Name != "cyl" {
		t.Errorf("incomplete row: got %v", err)
	}
}

func TestIntValues(t *testing.T) {
	r, err := EffectSize(mpgModel(), "~ hp", Values{"hp": 110, "wt": 3, "cyl": "4"}, Options{Step: 2})
	if err != nil {
		t.Fatal(err)
	}
	if r.From != 110.0 || r.To != 112.0 || !near(r.Values[0], -0.05) {
		t.Errorf("got %+v", r)
	}
}

func TestLoadSave(t *testing.T) {
	rows := []Values{
		{"hp": 110.0, "wt": 2.6, "cyl": "6", "x": 1.0, "g": "b", "petal": 3.0, "soil": "loam"},
		{"hp": 175.0, "wt": 3.4, "cyl": "8", "x": -2.0, "g": "a", "petal": 1.0, "soil": "clay"},
	}
	for _, m := range []Model{mpgModel(), logitModel(), speciesTree()} {
		var buf bytes.Buffer
		if err := Save(&buf, m); err != nil {
			t.Fatal(err)
		}
		m2, err := Load(&buf)
		if err != nil {
			t.Fatalf("%T: %v", m, err)
		}
		if !reflect.DeepEqual(m.Predictors(), m2.Predictors()) {
			t.Errorf("%T: predictors %v became %v", m, m.Predictors(), m2.Predictors())
		}
		for _, typ := range []Type{Response, Link} {
			want, err := m.Predict(rows, typ)
			if err != nil {
				t.Fatal(err)
			}
			got, err := m2.Predict(rows, typ)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("%T %v: got %v, want %v", m, typ, got, want)
			}
		}
	}
}

func TestLoadErrors(t *testing.T) {
	for _, test := range []struct {
		in   string
		want string
	}{
		{`{"kind": "forest", "model": {}}`, "unknown model kind"},
		{`{"kind": "linear", "model": {"link": "probit"}}`, "unknown link"},
		{`{"kind": "linear", "model": {"factors": {"a": {"levels": []}}}}`, "no levels"},
		{`{"kind": "tree", "model": {"classes": ["a"]}}`, "no root"},
		{`{"kind": "tree", "model": {"classes": ["a", "b"], "root": {"probs": [1]}}}`, "1 probabilities for 2 classes"},
		{`{"kind": "tree", "model": {"classes": ["a"], "root": {"var": "x", "left": {"probs": [1]}}}}`, "malformed split"},
		{`{"kind": `, "decoding model"},
	} {
		_, err := Load(strings.NewReader(test.in))
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("Load(%s): got %v, want error containing %q", test.in, err, test.want)
		}
	}
}

func TestParseValues(t *testing.T) {
	got, err := ParseValues(mpgModel(), []string{"hp=110", "cyl=6", "name=fast", "wt=2.5e0"})
	if err != nil {
		t.Fatal(err)
	}
	want := Values{"hp": 110.0, "cyl": "6", "name": "fast", "wt": 2.5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if _, err := ParseValues(mpgModel(), []string{"=3"}); err == nil {
		t.Errorf("want error for empty name")
	}
	if _, err := ParseValues(mpgModel(), []string{"hp"}); err == nil {
		t.Errorf("want error for missing =")
	}
}

func TestParseType(t *testing.T) {
	for _, s := range []string{"response", "link"} {
		typ, err := ParseType(s)
		if err != nil || typ.String() != s {
			t.Errorf("ParseType(%q) = %v, %v", s, typ, err)
		}
	}
	if _, err := ParseType("probability"); err == nil {
		t.Errorf("want error")
	}
}
