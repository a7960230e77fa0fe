// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
)

// ReadCSV reads a CSV file whose first record names the columns.
//
// A column whose cells all parse as numbers, ignoring missing cells,
// becomes a []float64 column with NaN for missing cells. Any other
// column becomes a []string column. A cell is missing if it is empty
// or "NA".
func ReadCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	header, rows := records[0], records[1:]

	seen := make(map[string]bool)
	b := new(table.Builder)
	for j, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("column %d has no name", j+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true

		cells := make([]string, len(rows))
		for i, row := range rows {
			cells[i] = strings.TrimSpace(row[j])
		}
		if nums, ok := parseFloats(cells); ok {
			b.Add(name, nums)
		} else {
			b.Add(name, cells)
		}
	}
	return b.Done(), nil
}

func missing(cell string) bool {
	return cell == "" || cell == "NA"
}

// parseFloats parses cells as numbers. It fails if any present cell
// isn't a number or if every cell is missing.
func parseFloats(cells []string) ([]float64, bool) {
	nums := make([]float64, len(cells))
	present := 0
	for i, cell := range cells {
		if missing(cell) {
			nums[i] = math.NaN()
			continue
		}
		x, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		nums[i] = x
		present++
	}
	return nums, present > 0
}
