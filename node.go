package tilegen

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Role is the part a node plays in the graph. It fixes the meaning of the
// node's outbound terminals.
type Role uint8

const (
	// RoleTile is the root of a front-view graph.
	RoleTile Role = iota
	// RoleShape computes a signed distance.
	RoleShape
	// RoleModifier computes a scalar offset (noise).
	RoleModifier
	// RoleDecorator colors the inside of a mask.
	RoleDecorator
	// RolePattern computes a cellular mask and a per-cell hash.
	RolePattern
	// RoleIsoTile is the root of an isometric-view graph.
	RoleIsoTile
)

var roleNames = [...]string{"Tile", "Shape", "Modifier", "Decorator", "Pattern", "IsoTile"}

// String returns the role name.
func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", r)
}

// ParseRole parses a role name.
func ParseRole(s string) (Role, bool) {
	for i, n := range roleNames {
		if n == s {
			return Role(i), true
		}
	}
	return 0, false
}

// Kind is the concrete node type. The set is closed: every kind maps to
// exactly one persisted discriminator string and one role.
type Kind uint8

const (
	KindTile Kind = iota
	KindIsoTile
	KindShapeBox
	KindShapeDisk
	KindShapeGround
	KindModifierNoise
	KindModifierTiledNoise
	KindDecoratorColor
	KindDecoratorTilesAndBricks
	KindPatternTilesAndBricks
	KindPatternVoronoi
	KindPatternWorley
	KindPatternTrabeculum

	numKinds
)

var kindInfo = [numKinds]struct {
	name  string
	title string
	role  Role
}{
	KindTile:                    {"Tile", "Tile", RoleTile},
	KindIsoTile:                 {"IsoTile", "Iso Tile", RoleIsoTile},
	KindShapeBox:                {"ShapeBox", "Box", RoleShape},
	KindShapeDisk:               {"ShapeDisk", "Disk", RoleShape},
	KindShapeGround:             {"ShapeGround", "Ground", RoleShape},
	KindModifierNoise:           {"ModifierNoise", "Noise", RoleModifier},
	KindModifierTiledNoise:      {"ModifierTiledNoise", "Tiled Noise", RoleModifier},
	KindDecoratorColor:          {"DecoratorColor", "Color", RoleDecorator},
	KindDecoratorTilesAndBricks: {"DecoratorTilesAndBricks", "Tiles & Bricks", RoleDecorator},
	KindPatternTilesAndBricks:   {"PatternTilesAndBricks", "Tiles & Bricks", RolePattern},
	KindPatternVoronoi:          {"PatternVoronoi", "Voronoi", RolePattern},
	KindPatternWorley:           {"PatternWorley", "Worley", RolePattern},
	KindPatternTrabeculum:       {"PatternTrabeculum", "Trabeculum", RolePattern},
}

// String returns the persisted discriminator of the kind.
func (k Kind) String() string {
	if k < numKinds {
		return kindInfo[k].name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Title returns the default display name for nodes of this kind.
func (k Kind) Title() string {
	if k < numKinds {
		return kindInfo[k].title
	}
	return k.String()
}

// Role returns the role every node of this kind plays.
func (k Kind) Role() Role {
	if k < numKinds {
		return kindInfo[k].role
	}
	return RoleModifier
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k < numKinds
}

// ParseKind maps a persisted discriminator to its kind.
func ParseKind(s string) (Kind, bool) {
	for k := range numKinds {
		if kindInfo[k].name == s {
			return k, true
		}
	}
	return 0, false
}

// Kinds returns every declared kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := range numKinds {
		out = append(out, k)
	}
	return out
}

// Terminal is an outbound connection slot. Its meaning depends on the role
// of the node it belongs to; the constants below name each meaning.
type Terminal uint8

const (
	// TerminalRoot connects a Tile to its first Shape or Pattern.
	TerminalRoot Terminal = 0

	// TerminalFaceTop, TerminalFaceLeft and TerminalFaceRight connect an
	// IsoTile to the Shape drawn on each visible cube face.
	TerminalFaceTop   Terminal = 0
	TerminalFaceLeft  Terminal = 1
	TerminalFaceRight Terminal = 2

	// TerminalModifier connects a Shape, Decorator or Pattern to a Modifier.
	TerminalModifier Terminal = 0
	// TerminalDecorator connects a Shape, Decorator or Pattern to a Decorator.
	TerminalDecorator Terminal = 1
	// TerminalNext connects a Shape to the next Shape or Pattern.
	TerminalNext Terminal = 2
)

// roleSet is a bitmask of roles.
type roleSet uint8

func setOf(roles ...Role) roleSet {
	var s roleSet
	for _, r := range roles {
		s |= 1 << r
	}
	return s
}

func (s roleSet) has(r Role) bool {
	return s&(1<<r) != 0
}

// terminalTable lists, per source role, which target roles each terminal
// accepts. Anything not listed is illegal.
var terminalTable = map[Role][]roleSet{
	RoleTile:      {setOf(RoleShape, RolePattern)},
	RoleIsoTile:   {setOf(RoleShape), setOf(RoleShape), setOf(RoleShape)},
	RoleShape:     {setOf(RoleModifier), setOf(RoleDecorator), setOf(RoleShape, RolePattern)},
	RoleDecorator: {setOf(RoleModifier), setOf(RoleDecorator)},
	RolePattern:   {setOf(RoleModifier), setOf(RoleDecorator)},
}

// Legal reports whether terminal t of a from-role node may target a
// to-role node.
func Legal(from Role, t Terminal, to Role) bool {
	slots := terminalTable[from]
	return int(t) < len(slots) && slots[t].has(to)
}

// Terminals returns the number of outbound terminals a role has.
func Terminals(r Role) int {
	return len(terminalTable[r])
}

// TerminalFor returns the terminal a from-role node uses to reach a to-role
// node. For IsoTile sources the top face is returned; use the face
// terminals directly for the others.
func TerminalFor(from, to Role) (Terminal, bool) {
	for i, s := range terminalTable[from] {
		if s.has(to) {
			return Terminal(i), true
		}
	}
	return 0, false
}

// Node is one vertex of a tile graph.
//
// Nodes carry no per-render state: everything an evaluation produces (the
// pattern hash, the missing flag, accumulated distance) is returned from
// the evaluation call instead of stored here, so a graph may be read by any
// number of workers at once.
type Node struct {
	// ID is the stable identity of the node.
	ID uuid.UUID

	// Name is the display name.
	Name string

	// Kind is the concrete node type.
	Kind Kind

	// Values holds the node's parameters.
	Values Values

	// Options declares the editable parameters for the editor.
	Options []OptionGroup

	// Out maps each terminal to its ordered, duplicate-free targets.
	Out map[Terminal][]uuid.UUID
}

// NewNode creates a node of the given kind with a fresh id, the kind's
// default title and option declarations, and no values set.
func NewNode(kind Kind) *Node {
	return &Node{
		ID:      uuid.New(),
		Name:    kind.Title(),
		Kind:    kind,
		Values:  Values{},
		Options: DefaultOptions(kind),
		Out:     make(map[Terminal][]uuid.UUID),
	}
}

// Role returns the role of the node's kind.
func (n *Node) Role() Role {
	return n.Kind.Role()
}

// Targets returns the targets of terminal t. The slice must not be modified.
func (n *Node) Targets(t Terminal) []uuid.UUID {
	return n.Out[t]
}

// link appends to under terminal t unless it is already present.
func (n *Node) link(t Terminal, to uuid.UUID) bool {
	if slices.Contains(n.Out[t], to) {
		return false
	}
	if n.Out == nil {
		n.Out = make(map[Terminal][]uuid.UUID)
	}
	n.Out[t] = append(n.Out[t], to)
	return true
}

// unlink removes to from terminal t and reports whether it was present.
func (n *Node) unlink(t Terminal, to uuid.UUID) bool {
	targets := n.Out[t]
	i := slices.Index(targets, to)
	if i < 0 {
		return false
	}
	targets = slices.Delete(targets, i, i+1)
	if len(targets) == 0 {
		delete(n.Out, t)
	} else {
		n.Out[t] = targets
	}
	return true
}
