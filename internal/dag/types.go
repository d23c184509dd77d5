package dag

import "sync"

// Graph is a collection of nodes and directed edges. Nodes and edges keep
// their insertion order so traversals, and the cycles they report, are
// deterministic. All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects nodes and order during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order holds node IDs in insertion order.
	order []string
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs).
type node struct {
	id string
	// edges holds the successors of this node in insertion order.
	edges []*node
}
