package darshan

import (
	"sort"
	"strings"

	"github.com/go-errors/errors"
)

// Table is the wide form of a module: one row per record (rank, record id,
// file name, ...) with one column per counter.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Pivot converts a module's long-form (counter, value) rows into a wide
// table. Index columns are every column except counter and value; each
// distinct counter becomes a column (sorted by name); the first value seen
// for a (record, counter) pair wins. Missing counters stay empty.
// Rows are ordered by their index tuple.
func Pivot(m Module) (Table, error) {
	counterCol, valueCol := -1, -1
	var indexCols []int
	for i, c := range m.Columns {
		switch c {
		case "counter":
			counterCol = i
		case "value":
			valueCol = i
		default:
			indexCols = append(indexCols, i)
		}
	}
	if counterCol < 0 || valueCol < 0 {
		return Table{}, errors.Errorf("module %s: missing counter/value columns", m.Name)
	}

	type record struct {
		index  []string
		values map[string]string
	}

	byKey := make(map[string]*record)
	var keys []string
	counterSet := make(map[string]struct{})

	for n, row := range m.Rows {
		if len(row) != len(m.Columns) {
			return Table{}, errors.Errorf("module %s: row %d has %d fields, want %d", m.Name, n, len(row), len(m.Columns))
		}

		index := make([]string, 0, len(indexCols))
		for _, i := range indexCols {
			index = append(index, row[i])
		}
		key := strings.Join(index, "\x00")

		rec, ok := byKey[key]
		if !ok {
			rec = &record{index: index, values: make(map[string]string)}
			byKey[key] = rec
			keys = append(keys, key)
		}

		counter := row[counterCol]
		counterSet[counter] = struct{}{}
		if _, exists := rec.values[counter]; !exists {
			rec.values[counter] = row[valueCol]
		}
	}

	counters := make([]string, 0, len(counterSet))
	for c := range counterSet {
		counters = append(counters, c)
	}
	sort.Strings(counters)
	sort.Strings(keys)

	cols := make([]string, 0, len(indexCols)+len(counters))
	for _, i := range indexCols {
		cols = append(cols, m.Columns[i])
	}
	cols = append(cols, counters...)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rec := byKey[key]
		row := make([]string, 0, len(cols))
		row = append(row, rec.index...)
		for _, c := range counters {
			row = append(row, rec.values[c])
		}
		rows = append(rows, row)
	}

	return Table{Columns: cols, Rows: rows}, nil
}
