package tilegen

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// NoHash is passed to Next when no pattern has produced a hash yet. It
// selects the first candidate.
const NoHash float32 = -1

// Graph is an ordered set of nodes with a designated root.
//
// A Graph is not safe for concurrent mutation. Evaluation only reads it, so
// several workers may evaluate the same graph; the renderer still gives each
// job its own Clone.
type Graph struct {
	root  uuid.UUID
	nodes []*Node
	index map[uuid.UUID]int

	// report is what the last UnmarshalJSON discarded.
	report DecodeReport
}

// NewGraph creates a graph holding a single root node of the given kind.
// rootKind should be KindTile or KindIsoTile.
func NewGraph(rootKind Kind) *Graph {
	g := &Graph{index: make(map[uuid.UUID]int)}
	root := NewNode(rootKind)
	g.root = root.ID
	g.append(root)
	return g
}

func (g *Graph) append(n *Node) {
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
}

func (g *Graph) reindex() {
	clear(g.index)
	for i, n := range g.nodes {
		g.index[n.ID] = i
	}
}

// Add appends a node. It returns ErrDuplicateNode if the id is taken.
func (g *Graph) Add(n *Node) error {
	if _, ok := g.index[n.ID]; ok {
		return fmt.Errorf("add %s: %w", n.ID, ErrDuplicateNode)
	}
	if n.Values == nil {
		n.Values = Values{}
	}
	if n.Out == nil {
		n.Out = make(map[Terminal][]uuid.UUID)
	}
	g.append(n)
	return nil
}

// AddKind creates a node of the given kind, adds it and returns it.
func (g *Graph) AddKind(kind Kind) *Node {
	n := NewNode(kind)
	g.append(n)
	return n
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id uuid.UUID) *Node {
	if i, ok := g.index[id]; ok {
		return g.nodes[i]
	}
	return nil
}

// Root returns the root node.
func (g *Graph) Root() *Node {
	return g.Node(g.root)
}

// Nodes returns the nodes in insertion order. The slice must not be modified.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Connect adds an edge from terminal t of node from to node to.
// Connecting an existing edge again is a no-op.
func (g *Graph) Connect(from uuid.UUID, t Terminal, to uuid.UUID) error {
	src, dst := g.Node(from), g.Node(to)
	if src == nil {
		return fmt.Errorf("connect from %s: %w", from, ErrNodeNotFound)
	}
	if dst == nil {
		return fmt.Errorf("connect to %s: %w", to, ErrNodeNotFound)
	}
	if !Legal(src.Role(), t, dst.Role()) {
		return fmt.Errorf("connect %s terminal %d to %s: %w",
			src.Role(), t, dst.Role(), ErrIllegalConnection)
	}
	src.link(t, to)
	return nil
}

// Disconnect removes the edge from terminal t of node from to node to, if
// present.
func (g *Graph) Disconnect(from uuid.UUID, t Terminal, to uuid.UUID) {
	if src := g.Node(from); src != nil {
		src.unlink(t, to)
	}
}

// Remove deletes a node and every edge that pointed at it.
func (g *Graph) Remove(id uuid.UUID) error {
	if id == g.root {
		return ErrRootRemoval
	}
	i, ok := g.index[id]
	if !ok {
		return fmt.Errorf("remove %s: %w", id, ErrNodeNotFound)
	}
	g.nodes = slices.Delete(g.nodes, i, i+1)
	g.reindex()
	for _, n := range g.nodes {
		for t := range n.Out {
			n.unlink(t, id)
		}
	}
	return nil
}

// Inbound returns the ids of the nodes that have an edge to id, in graph
// order.
func (g *Graph) Inbound(id uuid.UUID) []uuid.UUID {
	var in []uuid.UUID
	for _, n := range g.nodes {
		for _, targets := range n.Out {
			if slices.Contains(targets, id) {
				in = append(in, n.ID)
				break
			}
		}
	}
	return in
}

// Next resolves the collaborator of the given role that follows from.
//
// Targets that no longer exist or have a different role are skipped. With no
// candidate Next returns nil; with several it picks floor(hash*n), clamped
// to the last candidate, and NoHash picks the first.
func (g *Graph) Next(from *Node, role Role, hash float32) *Node {
	if from == nil {
		return nil
	}
	t, ok := TerminalFor(from.Role(), role)
	if !ok {
		return nil
	}
	return g.pick(from.Out[t], hash, func(n *Node) bool { return n.Role() == role })
}

// Follow resolves the target of terminal t of from, accepting any role the
// terminal allows. Selection among several targets is the same as Next.
func (g *Graph) Follow(from *Node, t Terminal, hash float32) *Node {
	if from == nil {
		return nil
	}
	role := from.Role()
	return g.pick(from.Out[t], hash, func(n *Node) bool { return Legal(role, t, n.Role()) })
}

// NextFace returns the shape connected to the given face terminal of an
// IsoTile node.
func (g *Graph) NextFace(iso *Node, face Terminal) *Node {
	if iso == nil || iso.Role() != RoleIsoTile {
		return nil
	}
	return g.Follow(iso, face, NoHash)
}

func (g *Graph) pick(ids []uuid.UUID, hash float32, accept func(*Node) bool) *Node {
	var buf [8]*Node
	candidates := buf[:0]
	for _, id := range ids {
		if n := g.Node(id); n != nil && accept(n) {
			candidates = append(candidates, n)
		}
	}
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	}
	last := len(candidates) - 1
	switch {
	case !(hash >= 0): // NoHash or NaN
		return candidates[0]
	case hash >= 1:
		return candidates[last]
	}
	i := int(hash * float32(len(candidates)))
	return candidates[min(max(i, 0), last)]
}

// Prune removes every edge whose target is missing, whose role pair is
// illegal, or that leaves from a terminal the source role does not have.
// It returns the number of edges removed.
func (g *Graph) Prune() int {
	removed := 0
	for _, n := range g.nodes {
		role := n.Role()
		for t, targets := range n.Out {
			kept := targets[:0]
			for _, id := range targets {
				dst := g.Node(id)
				if dst == nil || !Legal(role, t, dst.Role()) {
					removed++
					continue
				}
				kept = append(kept, id)
			}
			if len(kept) == 0 {
				delete(n.Out, t)
			} else {
				n.Out[t] = kept
			}
		}
	}
	return removed
}

// Reachable returns the set of nodes reachable from the root.
func (g *Graph) Reachable() map[uuid.UUID]bool {
	seen := make(map[uuid.UUID]bool, len(g.nodes))
	stack := []uuid.UUID{g.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := g.Node(id)
		if n == nil || seen[id] {
			continue
		}
		seen[id] = true
		for _, targets := range n.Out {
			stack = append(stack, targets...)
		}
	}
	return seen
}

// Clone returns a deep copy sharing no mutable state with g.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		root:  g.root,
		nodes: make([]*Node, 0, len(g.nodes)),
		index: make(map[uuid.UUID]int, len(g.nodes)),
	}
	for _, n := range g.nodes {
		c.append(n.clone())
	}
	return c
}

func (n *Node) clone() *Node {
	c := &Node{
		ID:     n.ID,
		Name:   n.Name,
		Kind:   n.Kind,
		Values: n.Values.Clone(),
		Out:    make(map[Terminal][]uuid.UUID, len(n.Out)),
	}
	for t, targets := range n.Out {
		c.Out[t] = slices.Clone(targets)
	}
	if err := copier.CopyWithOption(&c.Options, n.Options, copier.Option{DeepCopy: true}); err != nil {
		c.Options = DefaultOptions(n.Kind)
	}
	return c
}
