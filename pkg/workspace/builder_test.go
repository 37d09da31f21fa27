package workspace_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/hpcio/darsum/pkg/darshan"
	"github.com/hpcio/darsum/pkg/pattern"
	"github.com/hpcio/darsum/pkg/workspace"
)

func testModules() []darshan.Module {
	return []darshan.Module{
		{
			Name:        "POSIX",
			Columns:     []string{"module", "rank", "record_id", "counter", "value", "file_name", "mount_pt", "fs_type"},
			Description: "#   POSIX_OPENS: number of open calls.",
			Rows: [][]string{
				{"POSIX", "-1", "123", "POSIX_OPENS", "16", "/projects/out.dat", "/projects", "lustre"},
				{"POSIX", "-1", "123", "POSIX_BYTES_READ", "1048576", "/projects/out.dat", "/projects", "lustre"},
			},
		},
		{
			Name:        "STDIO",
			Columns:     []string{"module", "rank", "record_id", "counter", "value", "file_name", "mount_pt", "fs_type"},
			Description: "#   STDIO_WRITES: write operation counts.",
			Rows: [][]string{
				{"STDIO", "0", "789", "STDIO_WRITES", "4", "/projects/log.txt", "/projects", "lustre"},
			},
		},
	}
}

func TestBuildAll(t *testing.T) {
	dir := t.TempDir()
	header := "# exe: /usr/bin/ior\n# nprocs: 64\n"
	clusters := []pattern.PathCluster{
		{ID: uuid.New(), Pattern: "/projects/out <*>", Count: 2},
	}

	b := workspace.NewBuilder(dir, header, testModules(), clusters)
	if err := b.BuildAll(); err != nil {
		t.Fatalf("BuildAll: %v", err)
	}

	// header.txt carries the run metadata verbatim.
	headerData, err := os.ReadFile(filepath.Join(dir, "header.txt"))
	if err != nil {
		t.Fatalf("read header.txt: %v", err)
	}
	if string(headerData) != header {
		t.Errorf("header.txt: got %q, want %q", headerData, header)
	}

	// One CSV and one description file per module.
	csvData, err := os.ReadFile(filepath.Join(dir, "POSIX.csv"))
	if err != nil {
		t.Fatalf("read POSIX.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	if len(lines) != 2 {
		t.Fatalf("POSIX.csv: expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "module,rank,record_id,file_name,mount_pt,fs_type,POSIX_BYTES_READ,POSIX_OPENS" {
		t.Errorf("POSIX.csv header: %s", lines[0])
	}
	if lines[1] != "POSIX,-1,123,/projects/out.dat,/projects,lustre,1048576,16" {
		t.Errorf("POSIX.csv row: %s", lines[1])
	}

	descData, err := os.ReadFile(filepath.Join(dir, "STDIO_description.txt"))
	if err != nil {
		t.Fatalf("read STDIO_description.txt: %v", err)
	}
	if !strings.Contains(string(descData), "STDIO_WRITES") {
		t.Errorf("STDIO description missing counter docs: %s", descData)
	}

	// paths.txt lists the mined clusters with counts.
	pathsData, err := os.ReadFile(filepath.Join(dir, "paths.txt"))
	if err != nil {
		t.Fatalf("read paths.txt: %v", err)
	}
	if !strings.Contains(string(pathsData), "/projects/out <*>") {
		t.Errorf("paths.txt missing cluster pattern: %s", pathsData)
	}
	if !strings.Contains(string(pathsData), "2 records") {
		t.Errorf("paths.txt missing cluster count: %s", pathsData)
	}

	// AGENTS.md names the modules and the layout.
	agentsData, err := os.ReadFile(filepath.Join(dir, "AGENTS.md"))
	if err != nil {
		t.Fatalf("read AGENTS.md: %v", err)
	}
	for _, want := range []string{"header.txt", "paths.txt", "POSIX", "STDIO"} {
		if !strings.Contains(string(agentsData), want) {
			t.Errorf("AGENTS.md missing %q", want)
		}
	}
}

func TestBuildAllNoPaths(t *testing.T) {
	dir := t.TempDir()
	b := workspace.NewBuilder(dir, "# header\n", testModules(), nil)
	if err := b.BuildAll(); err != nil {
		t.Fatalf("BuildAll: %v", err)
	}

	pathsData, err := os.ReadFile(filepath.Join(dir, "paths.txt"))
	if err != nil {
		t.Fatalf("read paths.txt: %v", err)
	}
	if !strings.Contains(string(pathsData), "No file paths recorded") {
		t.Errorf("expected placeholder for empty clusters: %s", pathsData)
	}
}

func TestBuildAllCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	b := workspace.NewBuilder(dir, "# header\n", testModules(), nil)
	if err := b.BuildAll(); err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "POSIX.csv")); err != nil {
		t.Errorf("workspace dir not created: %v", err)
	}
}

func TestListModules(t *testing.T) {
	dir := t.TempDir()
	b := workspace.NewBuilder(dir, "", testModules(), nil)
	if err := b.BuildAll(); err != nil {
		t.Fatalf("BuildAll: %v", err)
	}

	modules, err := workspace.ListModules(dir)
	if err != nil {
		t.Fatalf("ListModules: %v", err)
	}
	if !reflect.DeepEqual(modules, []string{"POSIX", "STDIO"}) {
		t.Errorf("ListModules: got %v", modules)
	}
}
