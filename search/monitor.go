package search

import "github.com/trangdata/askalex/core"

// Monitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps during ranking.
type Monitor interface {
	Start(query string)
	AfterQueryEmbedding(embedding []float32)
	AfterRanking(ranked core.Collection)
	Finish(results core.Collection)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                  {}
func (n *noopMonitor) AfterQueryEmbedding(_ []float32) {}
func (n *noopMonitor) AfterRanking(_ core.Collection)  {}
func (n *noopMonitor) Finish(_ core.Collection)        {}
