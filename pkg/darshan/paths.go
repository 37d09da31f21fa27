package darshan

// FilePaths returns the unique file names recorded across modules, in first
// appearance order. Modules without a file_name column contribute nothing.
func FilePaths(modules []Module) []string {
	seen := make(map[string]struct{})
	var paths []string
	for _, m := range modules {
		fileCol := -1
		for i, c := range m.Columns {
			if c == "file_name" {
				fileCol = i
				break
			}
		}
		if fileCol < 0 {
			continue
		}
		for _, row := range m.Rows {
			if fileCol >= len(row) {
				continue
			}
			p := row[fileCol]
			if p == "" {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			paths = append(paths, p)
		}
	}
	return paths
}
