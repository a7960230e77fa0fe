// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"bufio"
	"io"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aclements/go-gg/table"
)

// result is a single benchmark result line.
type result struct {
	name   string
	config map[string]string
	values map[string]float64
}

var configRe = regexp.MustCompile(`^(\p{Ll}[^\p{Lu}\s\x85\xa0\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}]*):(?:[ \t]+(.*))?$`)

// ReadBench reads Go benchmark results from r. The table has one row
// per result line, with a "name" column, a column for each
// configuration key, and a []float64 column for each unit.
//
// Configuration comes from configuration lines ("key: value") and
// from "/key:value" parts of benchmark names. A "-N" name suffix is
// recorded as "gomaxprocs". Configuration columns hold ints or
// float64s if every value parses as one, and strings otherwise.
// Results missing a unit have NaN in that unit's column.
func ReadBench(r io.Reader) (*table.Table, error) {
	var results []*result
	config := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := configRe.FindStringSubmatch(line); m != nil {
			config[m[1]] = m[2]
			continue
		}
		if strings.HasPrefix(line, "Benchmark") {
			if res := parseResult(line, config); res != nil {
				results = append(results, res)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return resultsTable(results), nil
}

func parseResult(line string, gconfig map[string]string) *result {
	f := strings.Fields(line)
	if len(f) < 4 {
		return nil
	}
	if f[0] != "Benchmark" {
		next, _ := utf8.DecodeRuneInString(f[0][len("Benchmark"):])
		if !unicode.IsUpper(next) {
			return nil
		}
	}
	if n, err := strconv.Atoi(f[1]); err != nil || n <= 0 {
		return nil
	}

	res := &result{
		config: make(map[string]string),
		values: make(map[string]float64),
	}
	for k, v := range gconfig {
		res.config[k] = v
	}

	name := strings.TrimPrefix(f[0], "Benchmark")
	if i := strings.LastIndex(name, "-"); i >= 0 {
		if _, err := strconv.Atoi(name[i+1:]); err == nil {
			res.config["gomaxprocs"] = name[i+1:]
			name = name[:i]
		}
	}
	parts := strings.Split(name, "/")
	res.name = parts[0]
	for _, part := range parts[1:] {
		if i := strings.Index(part, ":"); i >= 0 {
			res.config[part[:i]] = part[i+1:]
		}
	}
	if _, ok := res.config["gomaxprocs"]; !ok {
		res.config["gomaxprocs"] = "1"
	}

	for i := 2; i+2 <= len(f); i += 2 {
		val, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			continue
		}
		res.values[f[i+1]] = val
	}
	return res
}

// valueParsers are tried in order to type a configuration column. The
// first that parses every value wins; strings are the fallback.
var valueParsers = []struct {
	typ     reflect.Type
	missing interface{}
	parse   func(string) (interface{}, error)
}{
	{reflect.TypeOf(int(0)), nil, func(s string) (interface{}, error) { return strconv.Atoi(s) }},
	{reflect.TypeOf(float64(0)), math.NaN(), func(s string) (interface{}, error) { return strconv.ParseFloat(s, 64) }},
}

func configColumn(results []*result, key string) interface{} {
tryParsers:
	for _, vp := range valueParsers {
		col := reflect.MakeSlice(reflect.SliceOf(vp.typ), len(results), len(results))
		for i, res := range results {
			raw, ok := res.config[key]
			if !ok {
				if vp.missing == nil {
					continue tryParsers
				}
				col.Index(i).Set(reflect.ValueOf(vp.missing))
				continue
			}
			v, err := vp.parse(raw)
			if err != nil {
				continue tryParsers
			}
			col.Index(i).Set(reflect.ValueOf(v))
		}
		return col.Interface()
	}

	strs := make([]string, len(results))
	for i, res := range results {
		strs[i] = res.config[key]
	}
	return strs
}

func resultsTable(results []*result) *table.Table {
	names := make([]string, len(results))
	configs, units := map[string]bool{}, map[string][]float64{}
	for i, res := range results {
		names[i] = res.name
		for k := range res.config {
			configs[k] = true
		}
		for unit, v := range res.values {
			col, ok := units[unit]
			if !ok {
				col = make([]float64, len(results))
				for j := range col {
					col[j] = math.NaN()
				}
				units[unit] = col
			}
			col[i] = v
		}
	}

	tab := new(table.Builder).Add("name", names)
	for _, key := range sortedKeys(configs) {
		if key == "name" {
			continue
		}
		tab.Add(key, configColumn(results, key))
	}
	unitKeys := make(map[string]bool, len(units))
	for unit := range units {
		unitKeys[unit] = true
	}
	for _, unit := range sortedKeys(unitKeys) {
		tab.Add(unit, units[unit])
	}
	return tab.Done()
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
