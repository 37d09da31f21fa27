package store

import (
	"strconv"

	"github.com/go-errors/errors"
	"github.com/hpcio/darsum/pkg/darshan"
)

// RecordsFromModule converts a module's long-form rows into store records.
// Standard darshan-parser columns (module, rank, record_id, counter, value,
// file_name, mount_pt, fs_type) are mapped by name; columns a module does
// not carry stay zero-valued.
func RecordsFromModule(runID string, m darshan.Module) ([]Record, error) {
	col := make(map[string]int, len(m.Columns))
	for i, c := range m.Columns {
		col[c] = i
	}
	counterCol, ok := col["counter"]
	if !ok {
		return nil, errors.Errorf("module %s: no counter column", m.Name)
	}
	valueCol, ok := col["value"]
	if !ok {
		return nil, errors.Errorf("module %s: no value column", m.Name)
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]Record, 0, len(m.Rows))
	for n, row := range m.Rows {
		if len(row) != len(m.Columns) {
			return nil, errors.Errorf("module %s: row %d has %d fields, want %d", m.Name, n, len(row), len(m.Columns))
		}

		value, err := strconv.ParseFloat(row[valueCol], 64)
		if err != nil {
			return nil, errors.Errorf("module %s: row %d: bad value %q: %w", m.Name, n, row[valueCol], err)
		}

		rank := 0
		if rs := field(row, "rank"); rs != "" {
			rank, err = strconv.Atoi(rs)
			if err != nil {
				return nil, errors.Errorf("module %s: row %d: bad rank %q: %w", m.Name, n, rs, err)
			}
		}

		records = append(records, Record{
			RunID:    runID,
			Module:   m.Name,
			Rank:     rank,
			RecordID: field(row, "record_id"),
			FileName: field(row, "file_name"),
			MountPt:  field(row, "mount_pt"),
			FSType:   field(row, "fs_type"),
			Counter:  row[counterCol],
			Value:    value,
		})
	}
	return records, nil
}
