// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// parseColor parses an SVG color name or a "#rgb", "#rrggbb", or
// "#rrggbbaa" hex color.
func parseColor(s string) (color.Color, error) {
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("unknown color %q", s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("malformed color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("malformed color %q", s)
	}
	// color.Color is alpha-premultiplied.
	a := uint8(v)
	mul := func(c uint8) uint8 { return uint8(uint16(c) * uint16(a) / 0xff) }
	return color.RGBA{mul(uint8(v >> 24)), mul(uint8(v >> 16)), mul(uint8(v >> 8)), a}, nil
}
