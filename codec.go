package tilegen

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// nodeRecord is the persisted form of a node.
type nodeRecord struct {
	Type         string                 `json:"type"`
	ID           uuid.UUID              `json:"id"`
	Name         string                 `json:"name,omitempty"`
	Role         string                 `json:"role"`
	Values       Values                 `json:"values"`
	TerminalsOut map[string][]uuid.UUID `json:"terminalsOut"`
	TerminalIn   []uuid.UUID            `json:"terminalIn,omitempty"`
}

// graphRecord is the persisted form of a graph.
type graphRecord struct {
	Root  uuid.UUID    `json:"root"`
	Nodes []nodeRecord `json:"nodes"`
}

// DroppedNode describes a persisted node that could not be restored.
type DroppedNode struct {
	ID   uuid.UUID
	Type string
	Err  error
}

// DecodeReport lists what DecodeGraph discarded. A decode with an empty
// report restored the graph exactly.
type DecodeReport struct {
	// Dropped lists nodes that were skipped.
	Dropped []DroppedNode

	// PrunedEdges counts edges removed because their target was missing or
	// their role pair was illegal.
	PrunedEdges int
}

// Clean reports whether nothing was discarded.
func (r DecodeReport) Clean() bool {
	return len(r.Dropped) == 0 && r.PrunedEdges == 0
}

// EncodeGraph writes g as JSON.
func EncodeGraph(w io.Writer, g *Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g.record())
}

func (g *Graph) record() graphRecord {
	rec := graphRecord{Root: g.root, Nodes: make([]nodeRecord, 0, len(g.nodes))}
	for _, n := range g.nodes {
		out := make(map[string][]uuid.UUID, len(n.Out))
		for t, targets := range n.Out {
			if len(targets) > 0 {
				out[strconv.Itoa(int(t))] = targets
			}
		}
		values := n.Values
		if values == nil {
			values = Values{}
		}
		rec.Nodes = append(rec.Nodes, nodeRecord{
			Type:         n.Kind.String(),
			ID:           n.ID,
			Name:         n.Name,
			Role:         n.Role().String(),
			Values:       values,
			TerminalsOut: out,
			TerminalIn:   g.Inbound(n.ID),
		})
	}
	return rec
}

// DecodeGraph reads a graph written by EncodeGraph.
//
// Nodes with an unknown type or a duplicate id are skipped and listed in the
// report, and edges that no longer make sense are pruned. Only a malformed
// document or a missing root node is an error. The persisted role and
// inbound lists are informational: roles derive from the type and inbound
// edges from the outbound maps.
func DecodeGraph(r io.Reader) (*Graph, DecodeReport, error) {
	var rec graphRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, DecodeReport{}, fmt.Errorf("decode graph: %w", err)
	}
	return graphFromRecord(rec)
}

func graphFromRecord(rec graphRecord) (*Graph, DecodeReport, error) {
	var report DecodeReport
	g := &Graph{index: make(map[uuid.UUID]int, len(rec.Nodes))}

	for _, nr := range rec.Nodes {
		kind, ok := ParseKind(nr.Type)
		if !ok {
			report.Dropped = append(report.Dropped, DroppedNode{ID: nr.ID, Type: nr.Type, Err: ErrUnknownNodeType})
			continue
		}
		if _, dup := g.index[nr.ID]; dup {
			report.Dropped = append(report.Dropped, DroppedNode{ID: nr.ID, Type: nr.Type, Err: ErrDuplicateNode})
			continue
		}
		n := &Node{
			ID:      nr.ID,
			Name:    nr.Name,
			Kind:    kind,
			Values:  nr.Values,
			Options: DefaultOptions(kind),
			Out:     make(map[Terminal][]uuid.UUID, len(nr.TerminalsOut)),
		}
		if n.Values == nil {
			n.Values = Values{}
		}
		if n.Name == "" {
			n.Name = kind.Title()
		}
		for _, key := range sortedKeys(nr.TerminalsOut) {
			t, err := strconv.ParseUint(key, 10, 8)
			if err != nil {
				report.PrunedEdges += len(nr.TerminalsOut[key])
				continue
			}
			for _, to := range nr.TerminalsOut[key] {
				n.link(Terminal(t), to)
			}
		}
		g.append(n)
	}

	g.root = rec.Root
	if root := g.Node(g.root); root == nil || !isRootRole(root.Role()) {
		g.root = uuid.Nil
		for _, n := range g.nodes {
			if isRootRole(n.Role()) {
				g.root = n.ID
				break
			}
		}
	}
	if g.root == uuid.Nil {
		return nil, report, ErrMissingRoot
	}

	report.PrunedEdges += g.Prune()

	for _, d := range report.Dropped {
		Logger().Warn("tilegen: dropped node",
			slog.String("id", d.ID.String()),
			slog.String("type", d.Type),
			slog.String("reason", d.Err.Error()))
		nodesDropped.WithLabelValues(dropReason(d.Err)).Inc()
	}
	if report.PrunedEdges > 0 {
		Logger().Warn("tilegen: pruned edges", slog.Int("count", report.PrunedEdges))
		nodesDropped.WithLabelValues("edge").Add(float64(report.PrunedEdges))
	}
	return g, report, nil
}

func isRootRole(r Role) bool {
	return r == RoleTile || r == RoleIsoTile
}

func dropReason(err error) string {
	switch err {
	case ErrUnknownNodeType:
		return "unknown_type"
	case ErrDuplicateNode:
		return "duplicate"
	default:
		return "other"
	}
}

func sortedKeys(m map[string][]uuid.UUID) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON encodes the graph in the EncodeGraph format.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.record())
}

// UnmarshalJSON decodes the graph in the EncodeGraph format. What was
// dropped is kept in DecodeReport.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var rec graphRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	decoded, report, err := graphFromRecord(rec)
	if err != nil {
		return err
	}
	*g = *decoded
	g.report = report
	return nil
}

// DecodeReport returns what was discarded when g was decoded with
// UnmarshalJSON. Graphs built in memory report nothing.
func (g *Graph) DecodeReport() DecodeReport {
	return g.report
}
