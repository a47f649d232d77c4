package engine

import (
	"time"

	da "github.com/lintang-b-s/navigatorx-indoor/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/graphbuilder"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/spatialindex"
)

// Snapshot. immutable published state of the engine.
type Snapshot struct {
	graph     *da.Graph
	waypoints *spatialindex.Rtree
	stats     graphbuilder.BuildStats
	version   uint64
	source    string
	format    string
	loadedAt  time.Time
}

func newSnapshot(graph *da.Graph, waypoints *spatialindex.Rtree, stats *graphbuilder.BuildStats,
	version uint64, source, format string) *Snapshot {
	snap := &Snapshot{
		graph:     graph,
		waypoints: waypoints,
		version:   version,
		source:    source,
		format:    format,
		loadedAt:  time.Now(),
	}
	if stats != nil {
		snap.stats = *stats
	}
	return snap
}

func (s *Snapshot) GetGraph() *da.Graph {
	return s.graph
}

func (s *Snapshot) GetWaypointIndex() *spatialindex.Rtree {
	return s.waypoints
}

func (s *Snapshot) GetStats() graphbuilder.BuildStats {
	return s.stats
}

func (s *Snapshot) GetVersion() uint64 {
	return s.version
}

func (s *Snapshot) GetSource() string {
	return s.source
}

func (s *Snapshot) GetFormat() string {
	return s.format
}

func (s *Snapshot) GetLoadedAt() time.Time {
	return s.loadedAt
}
