package customfn

import (
	"errors"
	"fmt"
)

// FunctionNode is one call site of a function against concrete slots.
// Inputs and Outputs keep authoring insertion order; that order defines both
// the emitted parameter list and the call argument list.
type FunctionNode struct {
	ID      int
	Spec    FunctionSpec
	Inputs  []Slot
	Outputs []Slot
}

// Output returns the output slot with the given id.
func (n *FunctionNode) Output(slotID int) (Slot, bool) {
	for _, s := range n.Outputs {
		if s.ID == slotID {
			return s, true
		}
	}
	return Slot{}, false
}

// Input returns the input slot with the given id.
func (n *FunctionNode) Input(slotID int) (Slot, bool) {
	for _, s := range n.Inputs {
		if s.ID == slotID {
			return s, true
		}
	}
	return Slot{}, false
}

// Edge connects a producing node's output slot to a consuming node's input slot.
type Edge struct {
	FromNode int
	FromSlot int
	ToNode   int
	ToSlot   int
}

type slotKey struct {
	node, slot int
}

// Graph owns function nodes and the edges between them. Graph editing
// methods accumulate errors instead of failing fast so an entire authoring
// session can be validated with a single Err call; set NoEditPanic to get
// accumulation instead of panics, mirroring interactive-editor usage where
// malformed edits must not take the process down.
type Graph struct {
	NoEditPanic bool

	nodes     []*FunctionNode
	byID      map[int]*FunctionNode
	incoming  map[slotKey]Edge
	accumErrs []error
}

// NewGraph returns an empty graph that accumulates edit errors.
func NewGraph() *Graph {
	return &Graph{
		NoEditPanic: true,
		byID:        make(map[int]*FunctionNode),
		incoming:    make(map[slotKey]Edge),
	}
}

// Err returns all accumulated edit errors.
func (g *Graph) Err() error {
	if len(g.accumErrs) == 0 {
		return nil
	}
	return errors.Join(g.accumErrs...)
}

func (g *Graph) editErrorf(msg string, args ...any) {
	if !g.NoEditPanic {
		panic(fmt.Sprintf(msg, args...))
	}
	g.accumErrs = append(g.accumErrs, fmt.Errorf(msg, args...))
}

// AddNode adds a node to the graph and returns it. Slot ids must be unique
// within the node across both directions.
func (g *Graph) AddNode(n FunctionNode) *FunctionNode {
	if g.byID == nil {
		g.byID = make(map[int]*FunctionNode)
		g.incoming = make(map[slotKey]Edge)
	}
	if _, exists := g.byID[n.ID]; exists {
		g.editErrorf("duplicate node id %d", n.ID)
		return g.byID[n.ID]
	}
	seen := make(map[int]struct{}, len(n.Inputs)+len(n.Outputs))
	for _, s := range append(append([]Slot{}, n.Inputs...), n.Outputs...) {
		if !s.Type.IsValid() {
			g.editErrorf("node %d slot %d has invalid type", n.ID, s.ID)
		}
		if _, dup := seen[s.ID]; dup {
			g.editErrorf("node %d has duplicate slot id %d", n.ID, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	node := new(FunctionNode)
	*node = n
	g.nodes = append(g.nodes, node)
	g.byID[n.ID] = node
	return node
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (*FunctionNode, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The returned slice is owned by
// the graph and must not be mutated.
func (g *Graph) Nodes() []*FunctionNode { return g.nodes }

// Connect wires an output slot of one node to an input slot of another.
// An input accepts at most one incoming edge; reconnecting replaces the
// previous edge, matching interactive rewiring. Type mismatches are legal
// and adapted at code generation time.
func (g *Graph) Connect(fromNode, fromSlot, toNode, toSlot int) {
	src, ok := g.byID[fromNode]
	if !ok {
		g.editErrorf("connect: unknown producer node %d", fromNode)
		return
	}
	dst, ok := g.byID[toNode]
	if !ok {
		g.editErrorf("connect: unknown consumer node %d", toNode)
		return
	}
	if fromNode == toNode {
		g.editErrorf("connect: node %d cannot feed itself", fromNode)
		return
	}
	if _, ok := src.Output(fromSlot); !ok {
		g.editErrorf("connect: node %d has no output slot %d", fromNode, fromSlot)
		return
	}
	if _, ok := dst.Input(toSlot); !ok {
		g.editErrorf("connect: node %d has no input slot %d", toNode, toSlot)
		return
	}
	g.incoming[slotKey{toNode, toSlot}] = Edge{
		FromNode: fromNode, FromSlot: fromSlot,
		ToNode: toNode, ToSlot: toSlot,
	}
}

// Disconnect removes the incoming edge of an input slot if present.
func (g *Graph) Disconnect(toNode, toSlot int) {
	delete(g.incoming, slotKey{toNode, toSlot})
}

// Incoming returns the edge feeding the given input slot.
func (g *Graph) Incoming(nodeID, slotID int) (Edge, bool) {
	e, ok := g.incoming[slotKey{nodeID, slotID}]
	return e, ok
}

// SortedByDependency returns the nodes ordered so every producer precedes
// its consumers. Returns an error when the edges form a cycle.
func (g *Graph) SortedByDependency() ([]*FunctionNode, error) {
	indegree := make(map[int]int, len(g.nodes))
	consumers := make(map[int][]int)
	for _, e := range g.incoming {
		indegree[e.ToNode]++
		consumers[e.FromNode] = append(consumers[e.FromNode], e.ToNode)
	}
	// Seed the queue in insertion order so generation output is stable.
	var queue []*FunctionNode
	for _, n := range g.nodes {
		if indegree[n.ID] == 0 {
			queue = append(queue, n)
		}
	}
	sorted := make([]*FunctionNode, 0, len(g.nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		sorted = append(sorted, n)
		for _, consumerID := range consumers[n.ID] {
			indegree[consumerID]--
			if indegree[consumerID] == 0 {
				queue = append(queue, g.byID[consumerID])
			}
		}
	}
	if len(sorted) != len(g.nodes) {
		return nil, fmt.Errorf("graph has a dependency cycle among %d nodes", len(g.nodes)-len(sorted))
	}
	return sorted, nil
}
