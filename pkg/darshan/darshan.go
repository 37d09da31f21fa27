// Package darshan splits darshan-parser text dumps into per-module tables.
package darshan

import (
	"regexp"
	"strings"

	"github.com/go-errors/errors"
)

// Module is one module block from a darshan-parser dump, in long form:
// one row per (rank, record, counter) observation.
type Module struct {
	Name        string
	Columns     []string
	Description string
	Rows        [][]string
}

// skipLines is a warning block darshan-parser emits when the POSIX module
// ran out of memory during instrumentation. It interleaves with module
// descriptions and must not end up in them.
var skipLines = map[string]struct{}{
	"# *WARNING*: The POSIX module contains incomplete data!":     {},
	"#            This happens when a module runs out of":         {},
	"#            memory to store new record data.":               {},
	"# To avoid this error, consult the darshan-runtime":          {},
	"# documentation and consider setting the":                    {},
	"# DARSHAN_EXCLUDE_DIRS environment variable to prevent":      {},
	"# Darshan from instrumenting unecessary files.":              {},
}

var columnNamePattern = regexp.MustCompile(`<(.*?)>`)

// ExtractHeader returns the run metadata section: every line before the
// "log file regions" marker. It contains the executable name, job ID,
// process count, total runtime and similar run-level facts.
func ExtractHeader(dump string) string {
	var b strings.Builder
	for _, line := range strings.Split(dump, "\n") {
		if strings.Contains(line, "log file regions") {
			break
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// ExtractModules splits the dump into module blocks.
//
// Each block starts with a "<NAME> module data" banner followed by comment
// lines describing the counters, then a "#<module> <rank> ..." line naming
// the data columns, then whitespace-separated data rows until a blank line.
// The module name is taken from the first field of the first data row.
// Block order is preserved; a repeated module name replaces the earlier
// block in place, matching darshan-parser's effective output.
func ExtractModules(dump string) ([]Module, error) {
	if strings.TrimSpace(dump) == "" {
		return nil, errors.Errorf("empty darshan dump")
	}

	byName := make(map[string]int)
	var modules []Module

	var (
		current     string
		inModule    bool
		columns     []string
		description []string
	)

	for _, line := range strings.Split(dump, "\n") {
		if _, skip := skipLines[line]; skip {
			continue
		}

		switch {
		case strings.Contains(line, "module data"):
			description = description[:0]

		case strings.HasPrefix(line, "#<module>"):
			matches := columnNamePattern.FindAllStringSubmatch(line, -1)
			columns = make([]string, 0, len(matches))
			for _, m := range matches {
				columns = append(columns, strings.ReplaceAll(m[1], " ", "_"))
			}
			inModule = true

		case strings.HasPrefix(line, "#") && !inModule:
			description = append(description, line)

		case inModule:
			if strings.TrimSpace(line) == "" {
				inModule = false
				current = ""
				continue
			}
			fields := strings.Fields(line)
			if current == "" {
				current = fields[0]
				m := Module{
					Name:        current,
					Columns:     columns,
					Description: strings.Join(description, "\n"),
				}
				if idx, seen := byName[current]; seen {
					modules[idx] = m
				} else {
					byName[current] = len(modules)
					modules = append(modules, m)
				}
			}
			idx := byName[current]
			modules[idx].Rows = append(modules[idx].Rows, fields)
		}
	}

	return modules, nil
}
