package dag

import (
	"fmt"
	"slices"
	"strings"
)

// CycleError reports a cycle found by DetectCycles. Path starts and ends at
// the same node, e.g. [a b a].
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected: %s", strings.Join(e.Path, " -> "))
}

// Nodes returns the distinct nodes of the cycle in traversal order.
func (e *CycleError) Nodes() []string {
	if len(e.Path) == 0 {
		return nil
	}
	return slices.Clone(e.Path[:len(e.Path)-1])
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{id: id}
	g.order = append(g.order, id)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// A self-referential edge is accepted and reported by DetectCycles as a
// cycle of length one. Adding an existing edge again does nothing.
func (g *Graph) AddEdge(fromID, toID string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}
	if slices.Contains(fromNode.edges, toNode) {
		return nil
	}
	fromNode.edges = append(fromNode.edges, toNode)
	return nil
}

// DetectCycles checks the graph for cycles. It returns a *CycleError holding
// the path of the first cycle found, visiting roots in insertion order.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Classic depth-first search with three sets of nodes:
	// permanent: nodes fully visited and not part of a cycle.
	// stack: nodes on the current recursion path, in order.
	// unvisited: all other nodes.
	permanent := make(map[string]bool)
	onStack := make(map[string]int)
	var stack []string

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if pos, ok := onStack[n.id]; ok {
			path := append(slices.Clone(stack[pos:]), n.id)
			return &CycleError{Path: path}
		}

		onStack[n.id] = len(stack)
		stack = append(stack, n.id)

		for _, next := range n.edges {
			if err := visit(next); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(onStack, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}
	return nil
}
