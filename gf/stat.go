// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf

import (
	"math"
	"math/rand"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// barCol is the column that identifies each bar of a bar layer.
const barCol = "[gf-bar]"

// jitter displaces each numeric X and Y value by a uniform random
// amount of up to Width and Height times the column's resolution.
type jitter struct {
	X, Y          string
	Width, Height float64
	Seed          int64
}

func (s jitter) F(g table.Grouping) table.Grouping {
	rng := rand.New(rand.NewSource(s.Seed))
	amounts := map[string]float64{
		s.X: s.Width * resolution(g, s.X),
		s.Y: s.Height * resolution(g, s.Y),
	}
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		nt := table.NewBuilder(t)
		for _, col := range []string{s.X, s.Y} {
			if _, ok := t.Const(col); ok || amounts[col] == 0 || !numericKinds[kind(t.MustColumn(col))] {
				continue
			}
			var xs []float64
			slice.Convert(&xs, t.MustColumn(col))
			out := make([]float64, len(xs))
			for i, x := range xs {
				out[i] = x + (2*rng.Float64()-1)*amounts[col]
			}
			nt.Add(col, out)
		}
		return nt.Done()
	})
}

// resolution returns the smallest difference between distinct values
// of numeric column col, or 1 if col is not numeric or has fewer than
// two distinct values.
func resolution(g table.Grouping, col string) float64 {
	if !isNumeric(g, col) {
		return 1
	}
	var all []float64
	for _, gid := range g.Tables() {
		var xs []float64
		slice.Convert(&xs, g.Table(gid).MustColumn(col))
		all = append(all, xs...)
	}
	sort.Float64s(all)
	res := math.Inf(1)
	for i := 1; i < len(all); i++ {
		if d := all[i] - all[i-1]; d > 0 && d < res {
			res = d
		}
	}
	if math.IsInf(res, 1) {
		return 1
	}
	return res
}

// vhSteps turns each group's points into a staircase that moves
// vertically and then horizontally between successive points.
type vhSteps struct {
	X, Y string
}

func (s vhSteps) F(g table.Grouping) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		xs := reflect.ValueOf(t.MustColumn(s.X))
		ys := reflect.ValueOf(t.MustColumn(s.Y))
		n := xs.Len()
		if n == 0 {
			return t
		}
		nx := reflect.MakeSlice(xs.Type(), 0, 2*n-1)
		ny := reflect.MakeSlice(ys.Type(), 0, 2*n-1)
		for i := 0; i < n; i++ {
			nx = reflect.Append(nx, xs.Index(i))
			ny = reflect.Append(ny, ys.Index(i))
			if i+1 < n {
				nx = reflect.Append(nx, xs.Index(i))
				ny = reflect.Append(ny, ys.Index(i+1))
			}
		}
		nt := new(table.Builder).Add(s.X, nx.Interface()).Add(s.Y, ny.Interface())
		preserveConsts(nt, t)
		return nt.Done()
	})
}

// histogram bins X into Bins equal-width bins spanning the combined
// range of all groups. It replaces X with the bin centers and adds a
// "count" column with the (weighted) number of values in each bin.
type histogram struct {
	X, W string
	Bins int
}

func (s histogram) F(g table.Grouping) table.Grouping {
	samples := map[table.GroupID]stats.Sample{}
	lo, hi := math.NaN(), math.NaN()
	for _, gid := range g.Tables() {
		t := g.Table(gid)
		var xs, ws []float64
		slice.Convert(&xs, t.MustColumn(s.X))
		if s.W != "" {
			slice.Convert(&ws, t.MustColumn(s.W))
		}
		sample := finite(xs, ws)
		samples[gid] = sample
		if len(sample.Xs) == 0 {
			continue
		}

		smin, smax := sample.Bounds()
		if smin < lo || math.IsNaN(lo) {
			lo = smin
		}
		if smax > hi || math.IsNaN(hi) {
			hi = smax
		}
	}
	if math.IsNaN(lo) {
		lo, hi = 0, 1
	} else if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(s.Bins)
	centers := []float64{(lo + hi) / 2}
	if s.Bins > 1 {
		centers = vec.Linspace(lo+width/2, hi-width/2, s.Bins)
	}

	return table.MapTables(g, func(gid table.GroupID, t *table.Table) *table.Table {
		sample := samples[gid]
		counts := make([]float64, s.Bins)
		for i, x := range sample.Xs {
			bin := int((x - lo) / width)
			if bin < 0 {
				bin = 0
			} else if bin >= s.Bins {
				// The maximum belongs to the last bin.
				bin = s.Bins - 1
			}
			w := 1.0
			if sample.Weights != nil {
				w = sample.Weights[i]
			}
			counts[bin] += w
		}
		return new(table.Builder).Add(s.X, centers).Add("count", counts).Done()
	})
}

// finite returns the sample of xs and weights ws (which may be nil)
// with the non-finite xs removed.
func finite(xs, ws []float64) stats.Sample {
	sample := stats.Sample{Xs: make([]float64, 0, len(xs))}
	if ws != nil {
		sample.Weights = make([]float64, 0, len(ws))
	}
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		sample.Xs = append(sample.Xs, x)
		if ws != nil {
			sample.Weights = append(sample.Weights, ws[i])
		}
	}
	return sample
}

// count reduces each group to the distinct values of X, in order of
// first appearance, and adds a "count" column with the (weighted)
// number of rows with each value.
type count struct {
	X, W string
}

func (s count) F(g table.Grouping) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		xs := reflect.ValueOf(t.MustColumn(s.X))
		var ws []float64
		if s.W != "" {
			slice.Convert(&ws, t.MustColumn(s.W))
		}

		index := make(map[interface{}]int)
		keys := reflect.MakeSlice(xs.Type(), 0, 0)
		var counts []float64
		for i := 0; i < xs.Len(); i++ {
			k := xs.Index(i).Interface()
			j, ok := index[k]
			if !ok {
				j = len(counts)
				index[k] = j
				keys = reflect.Append(keys, xs.Index(i))
				counts = append(counts, 0)
			}
			if ws != nil {
				counts[j] += ws[i]
			} else {
				counts[j]++
			}
		}
		return new(table.Builder).Add(s.X, keys.Interface()).Add("count", counts).Done()
	})
}

// barSegments turns each row into a vertical segment from 0 to Y,
// identified by barCol.
type barSegments struct {
	X, Y string
}

func (s barSegments) F(g table.Grouping) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		xs := reflect.ValueOf(t.MustColumn(s.X))
		var ys []float64
		slice.Convert(&ys, t.MustColumn(s.Y))

		nx := reflect.MakeSlice(xs.Type(), 0, 2*len(ys))
		ny := make([]float64, 0, 2*len(ys))
		ids := make([]int, 0, 2*len(ys))
		for i, y := range ys {
			nx = reflect.Append(nx, xs.Index(i), xs.Index(i))
			ny = append(ny, 0, y)
			ids = append(ids, i, i)
		}
		return new(table.Builder).Add(s.X, nx.Interface()).Add(s.Y, ny).Add(barCol, ids).Done()
	})
}

// barRects turns each row into the top edge of a bar Width times the
// resolution of X wide, identified by barCol.
type barRects struct {
	X, Y  string
	Width float64
}

func (s barRects) F(g table.Grouping) table.Grouping {
	half := s.Width * resolution(g, s.X) / 2
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		var xs, ys []float64
		slice.Convert(&xs, t.MustColumn(s.X))
		slice.Convert(&ys, t.MustColumn(s.Y))

		nx := make([]float64, 0, 2*len(xs))
		ny := make([]float64, 0, 2*len(xs))
		ids := make([]int, 0, 2*len(xs))
		for i, x := range xs {
			nx = append(nx, x-half, x+half)
			ny = append(ny, ys[i], ys[i])
			ids = append(ids, i, i)
		}
		return new(table.Builder).Add(s.X, nx).Add(s.Y, ny).Add(barCol, ids).Done()
	})
}

// boxStats summarizes a sample the way a Tukey box plot does.
type boxStats struct {
	// Lower and Upper are the whisker ends: the most extreme
	// values within 1.5 IQR of the quartiles.
	Lower, Upper float64

	Q1, Median, Q3 float64

	// Outliers are the values beyond the whiskers.
	Outliers []float64
}

func summarize(ys []float64) boxStats {
	sorted := append([]float64(nil), ys...)
	sort.Float64s(sorted)
	s := stats.Sample{Xs: sorted, Sorted: true}
	b := boxStats{Q1: s.Quantile(0.25), Median: s.Quantile(0.5), Q3: s.Quantile(0.75)}
	fence := 1.5 * (b.Q3 - b.Q1)
	b.Lower, b.Upper = b.Q1, b.Q3
	for _, y := range sorted {
		if y < b.Q1-fence || y > b.Q3+fence {
			b.Outliers = append(b.Outliers, y)
			continue
		}
		b.Lower = math.Min(b.Lower, y)
		b.Upper = math.Max(b.Upper, y)
	}
	return b
}

// boxSegments groups g by x and returns, for each group, a two-row
// table spanning the whiskers of y.
func boxSegments(g table.Grouping, x, y string) table.Grouping {
	return boxMap(g, x, y, func(b boxStats) []float64 {
		return []float64{b.Lower, b.Upper}
	})
}

// boxPoints groups g by x and returns, for each group, the quartiles
// and outliers of y.
func boxPoints(g table.Grouping, x, y string) table.Grouping {
	return boxMap(g, x, y, func(b boxStats) []float64 {
		return append([]float64{b.Q1, b.Median, b.Q3}, b.Outliers...)
	})
}

func boxMap(g table.Grouping, x, y string, f func(boxStats) []float64) table.Grouping {
	g = table.GroupBy(g, x)
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		if t.Len() == 0 {
			return new(table.Builder).Add(y, []float64{}).Add(x, emptyLike(t.MustColumn(x))).Done()
		}
		var ys []float64
		slice.Convert(&ys, t.MustColumn(y))
		nt := new(table.Builder).Add(y, f(summarize(ys)))
		nt.AddConst(x, first(t.MustColumn(x)))
		preserveConsts(nt, t)
		return nt.Done()
	})
}

func preserveConsts(nt *table.Builder, t *table.Table) {
	for _, col := range t.Columns() {
		if nt.Has(col) {
			continue
		}
		if cv, ok := t.Const(col); ok {
			nt.AddConst(col, cv)
		}
	}
}

// first returns the first element of slice s.
func first(s interface{}) interface{} {
	return reflect.ValueOf(s).Index(0).Interface()
}

func emptyLike(s interface{}) interface{} {
	return reflect.MakeSlice(reflect.TypeOf(s), 0, 0).Interface()
}

func kind(s interface{}) reflect.Kind {
	return reflect.TypeOf(s).Elem().Kind()
}
