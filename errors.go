package tilegen

import "errors"

// Graph editing errors.
var (
	// ErrIllegalConnection is returned when a terminal cannot connect the
	// requested role pair.
	ErrIllegalConnection = errors.New("tilegen: illegal connection")

	// ErrNodeNotFound is returned when a node id is not part of the graph.
	ErrNodeNotFound = errors.New("tilegen: node not found")

	// ErrRootRemoval is returned when removing a graph's root node.
	ErrRootRemoval = errors.New("tilegen: cannot remove root node")

	// ErrDuplicateNode is returned when adding a node whose id already exists.
	ErrDuplicateNode = errors.New("tilegen: duplicate node id")
)

// Decoding errors.
var (
	// ErrUnknownNodeType is reported for a persisted node whose type
	// discriminator is not a known kind.
	ErrUnknownNodeType = errors.New("tilegen: unknown node type")

	// ErrMissingRoot is returned when a decoded node list has no root node.
	ErrMissingRoot = errors.New("tilegen: graph has no root node")
)

// Rendering errors.
var (
	// ErrResourceExhausted is returned when the output buffer for a render
	// would exceed the configured pixel budget.
	ErrResourceExhausted = errors.New("tilegen: output buffer exceeds pixel budget")

	// ErrEmptyLayer is returned when rendering a layer with no occupied cell.
	ErrEmptyLayer = errors.New("tilegen: layer has no occupied cells")

	// ErrUnknownFormat is returned when encoding to an unsupported image format.
	ErrUnknownFormat = errors.New("tilegen: unknown image format")
)
