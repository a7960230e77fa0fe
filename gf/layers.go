// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf

import (
	"fmt"
	"image/color"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
)

func (l *layer) points() error {
	xy, err := l.need("x", "y")
	if err != nil {
		return err
	}
	switch pos := l.arg("position", "identity"); pos {
	case "identity":
	case "jitter":
		w, err := l.float("width", 0.4)
		if err != nil {
			return err
		}
		h, err := l.float("height", 0.4)
		if err != nil {
			return err
		}
		seed, err := l.int("seed", 1)
		if err != nil {
			return err
		}
		l.stat(jitter{X: xy[0], Y: xy[1], Width: w, Height: h, Seed: int64(seed)})
	default:
		Warning.Printf("geom_%s: ignoring unsupported position %q", l.call.Geom.Name, pos)
	}
	l.p.Add(gg.LayerPoints{
		X:       xy[0],
		Y:       xy[1],
		Color:   l.col("color"),
		Opacity: l.col("alpha"),
		Size:    l.col("size"),
	})
	return nil
}

func (l *layer) pathLayer(x, y string) gg.LayerPaths {
	return gg.LayerPaths{X: x, Y: y, Color: l.col("color"), Fill: l.col("fill")}
}

func (l *layer) lines() error {
	xy, err := l.need("x", "y")
	if err != nil {
		return err
	}
	l.p.Add(gg.LayerLines(l.pathLayer(xy[0], xy[1])))
	return nil
}

func (l *layer) paths() error {
	xy, err := l.need("x", "y")
	if err != nil {
		return err
	}
	l.p.Add(l.pathLayer(xy[0], xy[1]))
	return nil
}

// stepModes maps directions to go-gg step modes. "vh" is missing
// because gg.StepVH mismatches its x and y lengths when drawn; it is
// built by the vhSteps stat instead.
var stepModes = map[string]gg.StepMode{
	"hv":   gg.StepHV,
	"mid":  gg.StepHMid,
	"vmid": gg.StepVMid,
}

func (l *layer) steps() error {
	xy, err := l.need("x", "y")
	if err != nil {
		return err
	}
	dir := l.arg("direction", "hv")
	if dir == "vh" {
		l.stat(vhSteps{X: xy[0], Y: xy[1]})
		l.p.Add(l.pathLayer(xy[0], xy[1]))
		return nil
	}
	mode, ok := stepModes[dir]
	if !ok {
		return fmt.Errorf("gf: geom_%s: unknown direction %q", l.call.Geom.Name, dir)
	}
	l.p.Add(gg.LayerSteps{LayerPaths: l.pathLayer(xy[0], xy[1]), Step: mode})
	return nil
}

// fill returns the fill column, defaulting to a constant gray so that
// filled marks are visible.
func (l *layer) fill() string {
	if f := l.col("fill"); f != "" {
		return f
	}
	return l.p.Const(color.Gray{192})
}

func (l *layer) includeZero() {
	if !l.call.Add {
		l.p.SetScale("y", gg.NewLinearScaler().Include(0))
	}
}

func (l *layer) area() error {
	xy, err := l.need("x", "y")
	if err != nil {
		return err
	}
	l.includeZero()
	l.p.Add(gg.LayerArea{X: xy[0], Upper: xy[1], Fill: l.fill()})
	return nil
}

func (l *layer) ribbon() error {
	cols, err := l.need("x", "ymin", "ymax")
	if err != nil {
		return err
	}
	l.p.Add(gg.LayerArea{X: cols[0], Lower: cols[1], Upper: cols[2], Fill: l.fill()})
	return nil
}

func (l *layer) density() error {
	x, err := l.need("x")
	if err != nil {
		return err
	}
	bw, err := l.float("bw", 0)
	if err != nil {
		return err
	}
	n, err := l.int("n", 0)
	if err != nil {
		return err
	}
	l.includeZero()
	l.stat(ggstat.Density{X: x[0], W: l.col("weight"), N: n, Bandwidth: bw})
	l.p.Add(l.pathLayer(x[0], "probability density"))
	return nil
}

func (l *layer) histogram() error {
	x, err := l.histStat()
	if err != nil {
		return err
	}
	l.p.Add(gg.LayerSteps{LayerPaths: l.pathLayer(x, "count"), Step: gg.StepHMid})
	return nil
}

func (l *layer) freqpoly() error {
	x, err := l.histStat()
	if err != nil {
		return err
	}
	l.p.Add(gg.LayerLines(l.pathLayer(x, "count")))
	return nil
}

// histStat bins the x column and returns its name.
func (l *layer) histStat() (string, error) {
	x, err := l.need("x")
	if err != nil {
		return "", err
	}
	bins, err := l.int("bins", 30)
	if err != nil {
		return "", err
	}
	if bins <= 0 {
		return "", fmt.Errorf("gf: geom_%s: bins must be positive", l.call.Geom.Name)
	}
	l.includeZero()
	l.stat(histogram{X: x[0], W: l.col("weight"), Bins: bins})
	return x[0], nil
}

func (l *layer) ecdf() error {
	x, err := l.need("x")
	if err != nil {
		return err
	}
	l.stat(ggstat.ECDF{X: x[0], W: l.col("weight")})
	l.p.Add(gg.LayerSteps{LayerPaths: l.pathLayer(x[0], "cumulative density"), Step: gg.StepHV})
	return nil
}

func (l *layer) boxplot() error {
	xy, err := l.need("x", "y")
	if err != nil {
		return err
	}
	base := l.p.Data()
	stroke := l.col("color")

	// One whisker path per x.
	l.p.SetData(boxSegments(base, xy[0], xy[1]))
	l.p.Add(gg.LayerPaths{X: xy[0], Y: xy[1], Color: stroke})

	// Quartiles and outliers.
	l.p.SetData(boxPoints(base, xy[0], xy[1]))
	l.p.Add(gg.LayerPoints{X: xy[0], Y: xy[1], Color: stroke, Size: l.col("size")})
	return nil
}

func (l *layer) bars() error {
	x, err := l.need("x")
	if err != nil {
		return err
	}
	y := "count"
	switch stat := l.arg("stat", "count"); stat {
	case "count":
		l.stat(count{X: x[0], W: l.col("weight")})
	case "identity":
		ys, err := l.need("y")
		if err != nil {
			return err
		}
		y = ys[0]
	default:
		return fmt.Errorf("gf: geom_%s: unknown stat %q", l.call.Geom.Name, stat)
	}
	if pos := l.arg("position", "identity"); pos != "identity" {
		Warning.Printf("geom_%s: ignoring unsupported position %q", l.call.Geom.Name, pos)
	}
	l.includeZero()

	if !isNumeric(l.p.Data(), x[0]) {
		// Discrete x has no width, so draw each bar as a
		// segment from 0.
		l.stat(barSegments{X: x[0], Y: y})
		l.p.GroupBy(barCol)
		l.p.Add(gg.LayerPaths{X: x[0], Y: y, Color: l.col("color")})
		return nil
	}
	w, err := l.float("width", 0.9)
	if err != nil {
		return err
	}
	l.stat(barRects{X: x[0], Y: y, Width: w})
	l.p.GroupBy(barCol)
	l.p.Add(gg.LayerArea{X: x[0], Upper: y, Fill: l.fill()})
	return nil
}

func (l *layer) smooth() error {
	xy, err := l.need("x", "y")
	if err != nil {
		return err
	}
	span, err := l.float("span", 0)
	if err != nil {
		return err
	}
	degree, err := l.int("degree", 0)
	if err != nil {
		return err
	}
	n, err := l.int("n", 0)
	if err != nil {
		return err
	}
	l.stat(ggstat.LOESS{X: xy[0], Y: xy[1], N: n, Span: span, Degree: degree})
	l.p.Add(gg.LayerLines(l.pathLayer(xy[0], xy[1])))
	return nil
}

func (l *layer) lm() error {
	xy, err := l.need("x", "y")
	if err != nil {
		return err
	}
	degree, err := l.int("degree", 1)
	if err != nil {
		return err
	}
	n, err := l.int("n", 0)
	if err != nil {
		return err
	}
	l.stat(ggstat.LeastSquares{X: xy[0], Y: xy[1], N: n, Degree: degree})
	l.p.Add(gg.LayerLines(l.pathLayer(xy[0], xy[1])))
	return nil
}

func (l *layer) text() error {
	cols, err := l.need("x", "y", "label")
	if err != nil {
		return err
	}
	l.p.Add(gg.LayerTags{X: cols[0], Y: cols[1], Label: cols[2]})
	return nil
}

func (l *layer) tiles() error {
	xy, err := l.need("x", "y")
	if err != nil {
		return err
	}
	l.p.Add(gg.LayerTiles{X: xy[0], Y: xy[1], Fill: l.col("fill")})
	return nil
}

// stat applies s to the layer's data. Constant columns and grouping
// columns that s drops are restored, so aesthetics bound to them
// survive the stat.
func (l *layer) stat(s gg.Stat) {
	before := l.p.Data()
	after := s.F(before)
	after = table.MapTables(after, func(gid table.GroupID, t *table.Table) *table.Table {
		src := before.Table(gid)
		if src == nil || src.Len() == 0 {
			return t
		}
		b := table.NewBuilder(t)
		for _, col := range src.Columns() {
			if t.Column(col) != nil {
				continue
			}
			if cv, ok := src.Const(col); ok {
				b.AddConst(col, cv)
			}
		}
		for _, col := range l.groups {
			if t.Column(col) == nil && src.Column(col) != nil {
				b.AddConst(col, first(src.Column(col)))
			}
		}
		return b.Done()
	})
	l.p.SetData(after)
}
