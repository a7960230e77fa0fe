// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
)

// sameFloats is reflect.DeepEqual for []float64, treating NaNs as
// equal.
func sameFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
			return false
		}
	}
	return true
}

func checkCols(t *testing.T, tab *table.Table, want map[string]interface{}) {
	t.Helper()
	if len(tab.Columns()) != len(want) {
		t.Errorf("columns = %v, want %d columns", tab.Columns(), len(want))
	}
	for name, w := range want {
		got := tab.Column(name)
		if got == nil {
			t.Errorf("missing column %q", name)
			continue
		}
		if wf, ok := w.([]float64); ok {
			gf, ok := got.([]float64)
			if !ok || !sameFloats(gf, wf) {
				t.Errorf("column %q = %#v, want %#v", name, got, w)
			}
			continue
		}
		if !reflect.DeepEqual(got, w) {
			t.Errorf("column %q = %#v, want %#v", name, got, w)
		}
	}
}

func TestReadCSV(t *testing.T) {
	nan := math.NaN()
	tab, err := ReadCSV(strings.NewReader(`mpg, cyl,name,  empty
21,6,Mazda RX4,
22.8,4,"Datsun, 710",NA
NA,8,Hornet,
`))
	if err != nil {
		t.Fatal(err)
	}
	checkCols(t, tab, map[string]interface{}{
		"mpg":   []float64{21, 22.8, nan},
		"cyl":   []float64{6, 4, 8},
		"name":  []string{"Mazda RX4", "Datsun, 710", "Hornet"},
		"empty": []string{"", "NA", ""},
	})
	if got := tab.Columns(); !reflect.DeepEqual(got, []string{"mpg", "cyl", "name", "empty"}) {
		t.Errorf("column order = %v", got)
	}
}

func TestReadCSVErrors(t *testing.T) {
	for _, test := range []struct {
		in   string
		want string
	}{
		{"", "no header row"},
		{"a,b,a\n1,2,3\n", `duplicate column "a"`},
		{"a,,b\n1,2,3\n", "column 2 has no name"},
		{"a,b\n1,2,3\n", "wrong number of fields"},
	} {
		_, err := ReadCSV(strings.NewReader(test.in))
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("ReadCSV(%q): got %v, want error containing %q", test.in, err, test.want)
		}
	}
}

func TestReadBench(t *testing.T) {
	nan := math.NaN()
	tab, err := ReadBench(strings.NewReader(`
commit: 123456
goos: linux
BenchmarkX-4	100	2 ns/op	3 MB/s
BenchmarkX-4	100	3 ns/op	4 MB/s
BenchmarkY/size:20-8	10	40 ns/op
Benchmarkx	1	2 ns/op
BenchmarkZ	1
PASS
commit: abcdef
BenchmarkY/size:huge	10	60 ns/op	5 allocs/op
`))
	if err != nil {
		t.Fatal(err)
	}
	checkCols(t, tab, map[string]interface{}{
		"name":       []string{"X", "X", "Y", "Y"},
		"commit":     []string{"123456", "123456", "123456", "abcdef"},
		"goos":       []string{"linux", "linux", "linux", "linux"},
		"gomaxprocs": []int{4, 4, 8, 1},
		"size":       []string{"", "", "20", "huge"},
		"ns/op":      []float64{2, 3, 40, 60},
		"MB/s":       []float64{3, 4, nan, nan},
		"allocs/op":  []float64{nan, nan, nan, 5},
	})
}

func TestReadBenchStringConfig(t *testing.T) {
	tab, err := ReadBench(strings.NewReader(`
BenchmarkY/size:20	10	40 ns/op
BenchmarkY/size:huge	10	60 ns/op
`))
	if err != nil {
		t.Fatal(err)
	}
	if got := tab.Column("size"); !reflect.DeepEqual(got, []string{"20", "huge"}) {
		t.Errorf("size = %#v", got)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "cars.CSV")
	if err := ioutil.WriteFile(csvPath, []byte("x,y\n1,2\n"), 0666); err != nil {
		t.Fatal(err)
	}
	benchPath := filepath.Join(dir, "old.txt")
	if err := ioutil.WriteFile(benchPath, []byte("BenchmarkA 1 5 ns/op\n"), 0666); err != nil {
		t.Fatal(err)
	}

	tab, err := Open(csvPath, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := tab.Column("y"); !reflect.DeepEqual(got, []float64{2}) {
		t.Errorf("csv y = %v", got)
	}

	tab, err = Open(benchPath, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := tab.Column("ns/op"); !reflect.DeepEqual(got, []float64{5}) {
		t.Errorf("bench ns/op = %v", got)
	}

	// An explicit format overrides the extension.
	tab, err = Open(csvPath, "bench")
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 0 {
		t.Errorf("csv read as bench has %d rows", tab.Len())
	}

	if _, err := Open(csvPath, "xml"); err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("Open with bad format: %v", err)
	}
	if _, err := Open(filepath.Join(dir, "missing.csv"), ""); !os.IsNotExist(err) {
		t.Errorf("Open of missing file: %v", err)
	}
}

func TestName(t *testing.T) {
	for _, test := range []struct{ path, want string }{
		{"-", "stdin"},
		{"data/mtcars.csv", "mtcars"},
		{"bench.old.txt", "bench.old"},
		{"results", "results"},
	} {
		if got := Name(test.path); got != test.want {
			t.Errorf("Name(%q) = %q, want %q", test.path, got, test.want)
		}
	}
}

func TestOpenAll(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) string {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
			t.Fatal(err)
		}
		if err := ioutil.WriteFile(path, []byte(data), 0666); err != nil {
			t.Fatal(err)
		}
		return path
	}
	write("old/run.txt", "BenchmarkA 1 5 ns/op\nBenchmarkB 1 7 ns/op\n")
	write("new/deep/run2.txt", "BenchmarkA 1 4 ns/op 2 allocs/op\n")
	write("new/notes.md", "not a benchmark\n")

	paths, err := Glob(filepath.Join(dir, "**", "*.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Fatalf("Glob matched %v, want 2 files", paths)
	}
	tab, err := OpenAll(paths, "")
	if err != nil {
		t.Fatal(err)
	}
	byFile := map[string][]float64{}
	files := tab.MustColumn(FileCol).([]string)
	ns := tab.MustColumn("ns/op").([]float64)
	allocs := tab.MustColumn("allocs/op").([]float64)
	for i, f := range files {
		byFile[f] = append(byFile[f], ns[i])
		if f == "run" && !math.IsNaN(allocs[i]) {
			t.Errorf("row %d: allocs/op = %v, want NaN", i, allocs[i])
		}
	}
	if !reflect.DeepEqual(byFile, map[string][]float64{"run": {5, 7}, "run2": {4}}) {
		t.Errorf("ns/op by file = %v", byFile)
	}

	if _, err := Glob(filepath.Join(dir, "*.csv")); err == nil || !strings.Contains(err.Error(), "no matching files") {
		t.Errorf("Glob with no matches: %v", err)
	}
	if p, err := Glob("-"); err != nil || !reflect.DeepEqual(p, []string{"-"}) {
		t.Errorf("Glob(-) = %v, %v", p, err)
	}
}

func TestOpenAllConflict(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	if err := ioutil.WriteFile(a, []byte("x\n1\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(b, []byte("x\nhigh\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenAll([]string{a, b}, ""); err == nil || !strings.Contains(err.Error(), `column "x"`) {
		t.Errorf("got %v, want type conflict on x", err)
	}
}
