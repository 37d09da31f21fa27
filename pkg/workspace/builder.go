// Package workspace writes the parsed form of a Darshan log to a directory:
// per-module CSV tables, counter descriptions, the run header, and mined
// access-path patterns, plus guidance for the analysis agent.
package workspace

import (
	"bytes"
	"embed"
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/go-errors/errors"
	"github.com/hpcio/darsum/pkg/darshan"
	"github.com/hpcio/darsum/pkg/pattern"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))

// pathsData is the data passed to paths.txt.tmpl.
type pathsData struct {
	Clusters []pattern.PathCluster
}

// agentsData is the data passed to AGENTS.md.tmpl.
type agentsData struct {
	Modules []string
}

// Builder prepares and writes workspace files for a parsed Darshan log.
type Builder struct {
	dir      string
	header   string
	modules  []darshan.Module
	clusters []pattern.PathCluster
}

// NewBuilder creates a Builder for the given directory. The directory is
// created on BuildAll if it does not exist.
func NewBuilder(dir, header string, modules []darshan.Module, clusters []pattern.PathCluster) *Builder {
	return &Builder{
		dir:      dir,
		header:   header,
		modules:  modules,
		clusters: clusters,
	}
}

// BuildAll writes all workspace files in order.
func (b *Builder) BuildAll() error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return errors.Errorf("create workspace dir: %w", err)
	}
	if err := b.WriteHeader(); err != nil {
		return err
	}
	if err := b.WriteModules(); err != nil {
		return err
	}
	if err := b.WritePaths(); err != nil {
		return err
	}
	return b.WriteAgentsMD()
}

// WriteHeader writes the run metadata to header.txt.
func (b *Builder) WriteHeader() error {
	return os.WriteFile(filepath.Join(b.dir, "header.txt"), []byte(b.header), 0o644)
}

// WriteModules writes one <MODULE>.csv (pivoted wide table) and one
// <MODULE>_description.txt per module.
func (b *Builder) WriteModules() error {
	for _, m := range b.modules {
		table, err := darshan.Pivot(m)
		if err != nil {
			return errors.Errorf("pivot module %s: %w", m.Name, err)
		}

		csvPath := filepath.Join(b.dir, m.Name+".csv")
		if err := writeCSV(csvPath, table); err != nil {
			return errors.Errorf("write %s: %w", csvPath, err)
		}

		descPath := filepath.Join(b.dir, m.Name+"_description.txt")
		if err := os.WriteFile(descPath, []byte(m.Description), 0o644); err != nil {
			return errors.Errorf("write %s: %w", descPath, err)
		}
	}
	return nil
}

// WritePaths writes mined access-path clusters to paths.txt.
func (b *Builder) WritePaths() error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "paths.txt.tmpl", pathsData{Clusters: b.clusters}); err != nil {
		return errors.Errorf("render paths template: %w", err)
	}
	return os.WriteFile(filepath.Join(b.dir, "paths.txt"), buf.Bytes(), 0o644)
}

// WriteAgentsMD writes the embedded guidance file for the analysis agent.
func (b *Builder) WriteAgentsMD() error {
	names := make([]string, 0, len(b.modules))
	for _, m := range b.modules {
		names = append(names, m.Name)
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "AGENTS.md.tmpl", agentsData{Modules: names}); err != nil {
		return errors.Errorf("render AGENTS.md template: %w", err)
	}
	return os.WriteFile(filepath.Join(b.dir, "AGENTS.md"), buf.Bytes(), 0o644)
}

func writeCSV(path string, table darshan.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ListModules returns the module names present in a workspace directory,
// derived from its *.csv files, sorted.
func ListModules(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("read workspace dir: %w", err)
	}
	var modules []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		modules = append(modules, strings.TrimSuffix(e.Name(), ".csv"))
	}
	sort.Strings(modules)
	return modules, nil
}
