// Package pattern mines access-path templates from the file names recorded
// in a Darshan log, using the Drain clustering algorithm.
package pattern

import (
	"sort"
	"sync"

	"github.com/go-errors/errors"
	"github.com/google/uuid"
	"github.com/jaeyo/go-drain3/pkg/drain3"
)

// PathMiner clusters file paths into templates like
// "/scratch/run_<*>/out_<*>.dat" using Drain.
type PathMiner struct {
	mu    sync.Mutex
	drain *drain3.Drain
	// clusterUUIDs maps Drain cluster IDs to stable UUIDs so templates keep
	// their identity across Templates() calls.
	clusterUUIDs map[int64]uuid.UUID
}

// NewPathMiner creates a PathMiner tuned for file paths: path separators and
// common file-name delimiters split tokens so numeric run IDs and shard
// suffixes generalize to <*>.
func NewPathMiner() (*PathMiner, error) {
	d, err := drain3.NewDrain(
		drain3.WithDepth(4),
		drain3.WithSimTh(0.4),
		drain3.WithExtraDelimiter([]string{"/", "_", "."}),
	)
	if err != nil {
		return nil, errors.Errorf("create drain: %w", err)
	}
	return &PathMiner{
		drain:        d,
		clusterUUIDs: make(map[int64]uuid.UUID),
	}, nil
}

// Feed processes a batch of file paths through the Drain algorithm.
func (p *PathMiner) Feed(paths []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, path := range paths {
		if path == "" {
			continue
		}
		cluster, _, err := p.drain.AddLogMessage(path)
		if err != nil {
			return errors.Errorf("drain add: %w", err)
		}
		if cluster == nil {
			continue
		}
		if _, ok := p.clusterUUIDs[cluster.ClusterId]; !ok {
			p.clusterUUIDs[cluster.ClusterId] = uuid.New()
		}
	}
	return nil
}

// Templates returns all discovered path clusters, largest first.
// Unlike log-template mining, single-member clusters are kept: a path the
// application touched exactly once is still an access worth reporting.
func (p *PathMiner) Templates() ([]PathCluster, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	clusters := p.drain.GetClusters()
	templates := make([]PathCluster, 0, len(clusters))
	for _, c := range clusters {
		id, ok := p.clusterUUIDs[c.ClusterId]
		if !ok {
			continue
		}
		templates = append(templates, PathCluster{
			ID:      id,
			Pattern: c.GetTemplate(),
			Count:   int(c.Size),
		})
	}
	sort.Slice(templates, func(i, j int) bool {
		if templates[i].Count != templates[j].Count {
			return templates[i].Count > templates[j].Count
		}
		return templates[i].Pattern < templates[j].Pattern
	})
	return templates, nil
}
