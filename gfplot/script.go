// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aclements/go-ggformula/gf"
	"github.com/kballard/go-shellquote"
)

// layer is one layer of a plot.
type layer struct {
	geom    string
	formula string
	args    gf.Args

	// pos is where the layer was given, for error messages.
	pos string
}

// parseLayers parses command line arguments as geometry and formula
// pairs.
func parseLayers(args []string) ([]layer, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("geometry %q has no formula", args[len(args)-1])
	}
	var layers []layer
	for i := 0; i < len(args); i += 2 {
		layers = append(layers, layer{
			geom:    args[i],
			formula: args[i+1],
			pos:     fmt.Sprintf("layer %d", i/2+1),
		})
	}
	return layers, nil
}

// parseScript parses a layer script read from r.
func parseScript(r io.Reader, name string) ([]layer, error) {
	var layers []layer
	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pos := fmt.Sprintf("%s:%d", name, lineno)

		words, err := shellquote.Split(line)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pos, err)
		}
		if len(words) < 2 {
			return nil, fmt.Errorf("%s: want geometry and formula", pos)
		}
		l := layer{geom: words[0], formula: words[1], pos: pos}
		for _, word := range words[2:] {
			i := strings.Index(word, "=")
			if i <= 0 {
				return nil, fmt.Errorf("%s: malformed argument %q; want key=value", pos, word)
			}
			l.args = append(l.args, gf.Arg{Key: word[:i], Value: word[i+1:]})
		}
		layers = append(layers, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return layers, nil
}
