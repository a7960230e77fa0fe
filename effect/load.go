// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package effect

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// modelFile is the JSON encoding of a model:
//
//	{"kind": "linear", "model": {...}}
type modelFile struct {
	Kind  string          `json:"kind"`
	Model json.RawMessage `json:"model"`
}

// Load decodes a model from r.
func Load(r io.Reader) (Model, error) {
	var f modelFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("effect: decoding model: %w", err)
	}
	var m interface {
		Model
		validate() error
	}
	switch f.Kind {
	case "linear":
		m = new(Linear)
	case "tree":
		m = new(Tree)
	default:
		return nil, fmt.Errorf("effect: unknown model kind %q", f.Kind)
	}
	if err := json.Unmarshal(f.Model, m); err != nil {
		return nil, fmt.Errorf("effect: decoding %s model: %w", f.Kind, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("effect: bad %s model: %w", f.Kind, err)
	}
	return m, nil
}

// Save encodes m to w in the format read by Load.
func Save(w io.Writer, m Model) error {
	var kind string
	switch m.(type) {
	case *Linear:
		kind = "linear"
	case *Tree:
		kind = "tree"
	default:
		return fmt.Errorf("effect: cannot save %T", m)
	}
	body, err := json.Marshal(m)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(modelFile{kind, body})
}

// ParseValues parses "name=value" arguments. A value is a level if m
// reports levels for name or it is not a number.
func ParseValues(m Model, args []string) (Values, error) {
	lm, _ := m.(Leveler)
	vals := make(Values, len(args))
	for _, arg := range args {
		i := strings.Index(arg, "=")
		if i <= 0 {
			return nil, fmt.Errorf("malformed value %q; want name=value", arg)
		}
		name, val := arg[:i], arg[i+1:]
		if lm != nil && lm.Levels(name) != nil {
			vals[name] = val
		} else if x, err := strconv.ParseFloat(val, 64); err == nil {
			vals[name] = x
		} else {
			vals[name] = val
		}
	}
	return vals, nil
}
