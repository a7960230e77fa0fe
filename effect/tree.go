// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package effect

import (
	"fmt"
	"math"
	"sort"
)

// Tree is a fitted classification tree.
type Tree struct {
	// ClassNames are the classes the tree predicts.
	ClassNames []string `json:"classes"`

	// Factors gives the levels of each categorical predictor.
	Factors map[string][]string `json:"factors,omitempty"`

	Root *Node `json:"root"`
}

// Node is a node of a Tree. A node with Probs is a leaf. Otherwise, it
// splits on Var: rows with a continuous Var below Cut, or a
// categorical Var in In, go Left and the rest go Right.
type Node struct {
	Var   string   `json:"var,omitempty"`
	Cut   float64  `json:"cut,omitempty"`
	In    []string `json:"in,omitempty"`
	Left  *Node    `json:"left,omitempty"`
	Right *Node    `json:"right,omitempty"`

	// Probs are the class probabilities at a leaf.
	Probs []float64 `json:"probs,omitempty"`
}

func (n *Node) leaf() bool {
	return n.Probs != nil
}

func (m *Tree) validate() error {
	if len(m.ClassNames) == 0 {
		return fmt.Errorf("tree has no classes")
	}
	if m.Root == nil {
		return fmt.Errorf("tree has no root")
	}
	var walk func(n *Node) error
	walk = func(n *Node) error {
		if n.leaf() {
			if len(n.Probs) != len(m.ClassNames) {
				return fmt.Errorf("leaf has %d probabilities for %d classes", len(n.Probs), len(m.ClassNames))
			}
			return nil
		}
		if n.Var == "" || n.Left == nil || n.Right == nil {
			return fmt.Errorf("malformed split on %q", n.Var)
		}
		if err := walk(n.Left); err != nil {
			return err
		}
		return walk(n.Right)
	}
	return walk(m.Root)
}

func (m *Tree) Classes() []string {
	return m.ClassNames
}

func (m *Tree) Levels(name string) []string {
	return m.Factors[name]
}

func (m *Tree) Predictors() []string {
	seen := make(map[string]bool)
	for name := range m.Factors {
		seen[name] = true
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil || n.leaf() {
			return
		}
		seen[n.Var] = true
		walk(n.Left)
		walk(n.Right)
	}
	walk(m.Root)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// minProb bounds the probabilities of pure leaves away from 0 and 1
// on the link scale so their log odds are finite.
const minProb = 1e-6

// Predict returns the class probabilities of the leaf each row falls
// in. On the Link scale these are log odds, with probabilities
// clamped to [minProb, 1-minProb].
func (m *Tree) Predict(rows []Values, typ Type) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		probs, err := m.leaf(row)
		if err != nil {
			return nil, err
		}
		p := append([]float64(nil), probs...)
		if typ == Link {
			for j, x := range p {
				x = math.Max(minProb, math.Min(1-minProb, x))
				p[j] = math.Log(x / (1 - x))
			}
		}
		out[i] = p
	}
	return out, nil
}

func (m *Tree) leaf(row Values) ([]float64, error) {
	n := m.Root
	for !n.leaf() {
		var left bool
		if m.Factors[n.Var] != nil || n.In != nil {
			l, err := level(row, n.Var)
			if err != nil {
				return nil, err
			}
			left = contains(n.In, l)
		} else {
			x, err := number(row, n.Var)
			if err != nil {
				return nil, err
			}
			left = x < n.Cut
		}
		if left {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Probs, nil
}
