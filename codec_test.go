package tilegen

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph(t *testing.T) (*Graph, *Node, *Node, *Node) {
	t.Helper()
	g := NewGraph(KindTile)
	box := g.AddKind(KindShapeBox)
	box.Name = "Frame"
	box.Values.Set(keyRounding, 0.25)
	box.Values.SetVec2(keyOffset, V2(0.25, 0.75))
	deco := g.AddKind(KindDecoratorColor)
	deco.Values.SetColor(keyColor, RGBA(1, 0.5, 0, 1))
	mod := g.AddKind(KindModifierTiledNoise)
	require.NoError(t, g.Connect(g.Root().ID, TerminalRoot, box.ID))
	require.NoError(t, g.Connect(box.ID, TerminalDecorator, deco.ID))
	require.NoError(t, g.Connect(box.ID, TerminalModifier, mod.ID))
	require.NoError(t, g.Connect(deco.ID, TerminalModifier, mod.ID))
	return g, box, deco, mod
}

func TestCodec_RoundTrip(t *testing.T) {
	g, box, deco, mod := sampleGraph(t)

	var buf bytes.Buffer
	require.NoError(t, EncodeGraph(&buf, g))

	got, report, err := DecodeGraph(&buf)
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, g.Len(), got.Len())
	assert.Equal(t, g.Root().ID, got.Root().ID)

	gbox := got.Node(box.ID)
	require.NotNil(t, gbox)
	assert.Equal(t, "Frame", gbox.Name)
	assert.Equal(t, KindShapeBox, gbox.Kind)
	assert.Equal(t, box.Values, gbox.Values)
	assert.Equal(t, []uuid.UUID{deco.ID}, gbox.Targets(TerminalDecorator))
	assert.Equal(t, []uuid.UUID{mod.ID}, gbox.Targets(TerminalModifier))
	assert.NotEmpty(t, gbox.Options)
	assert.Equal(t, []uuid.UUID{box.ID, deco.ID}, got.Inbound(mod.ID))
}

func TestCodec_PersistedShape(t *testing.T) {
	g, box, _, mod := sampleGraph(t)
	data, err := json.Marshal(g)
	require.NoError(t, err)

	var rec struct {
		Root  uuid.UUID `json:"root"`
		Nodes []struct {
			Type         string                 `json:"type"`
			ID           uuid.UUID              `json:"id"`
			Role         string                 `json:"role"`
			TerminalsOut map[string][]uuid.UUID `json:"terminalsOut"`
			TerminalIn   []uuid.UUID            `json:"terminalIn"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, g.Root().ID, rec.Root)
	require.Len(t, rec.Nodes, 4)

	n := rec.Nodes[1]
	assert.Equal(t, "ShapeBox", n.Type)
	assert.Equal(t, "Shape", n.Role)
	assert.Equal(t, box.ID, n.ID)
	assert.Equal(t, []uuid.UUID{mod.ID}, n.TerminalsOut["0"])
	assert.Equal(t, []uuid.UUID{g.Root().ID}, n.TerminalIn)
}

func TestCodec_UnknownTypeDropped(t *testing.T) {
	rootID, boxID, ghostID := uuid.New(), uuid.New(), uuid.New()
	doc := `{
		"root": "` + rootID.String() + `",
		"nodes": [
			{"type": "Tile", "id": "` + rootID.String() + `", "role": "Tile", "values": {},
			 "terminalsOut": {"0": ["` + ghostID.String() + `", "` + boxID.String() + `"]}},
			{"type": "ShapeHexagon", "id": "` + ghostID.String() + `", "role": "Shape", "values": {}},
			{"type": "ShapeBox", "id": "` + boxID.String() + `", "role": "Shape", "values": {"width": 0.5}}
		]
	}`

	g, report, err := DecodeGraph(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, report.Dropped, 1)
	assert.Equal(t, ghostID, report.Dropped[0].ID)
	assert.Equal(t, "ShapeHexagon", report.Dropped[0].Type)
	assert.ErrorIs(t, report.Dropped[0].Err, ErrUnknownNodeType)
	assert.Equal(t, 1, report.PrunedEdges, "edge to the dropped node")

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []uuid.UUID{boxID}, g.Root().Targets(TerminalRoot))
	assert.Equal(t, float32(0.5), g.Node(boxID).Values.Get(keyWidth, 1))
}

func TestCodec_IllegalEdgePruned(t *testing.T) {
	rootID, modID := uuid.New(), uuid.New()
	doc := `{
		"root": "` + rootID.String() + `",
		"nodes": [
			{"type": "Tile", "id": "` + rootID.String() + `", "values": {},
			 "terminalsOut": {"0": ["` + modID.String() + `"], "x": ["` + modID.String() + `"]}},
			{"type": "ModifierNoise", "id": "` + modID.String() + `", "values": {}}
		]
	}`

	g, report, err := DecodeGraph(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Empty(t, report.Dropped)
	assert.Equal(t, 2, report.PrunedEdges)
	assert.Empty(t, g.Root().Out)
}

func TestCodec_MissingRoot(t *testing.T) {
	doc := `{"nodes": [{"type": "ShapeBox", "id": "` + uuid.NewString() + `", "values": {}}]}`
	_, _, err := DecodeGraph(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrMissingRoot)
}

func TestCodec_RootFallback(t *testing.T) {
	isoID := uuid.New()
	doc := `{"nodes": [{"type": "IsoTile", "id": "` + isoID.String() + `"}]}`
	g, _, err := DecodeGraph(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, isoID, g.Root().ID)
	assert.NotNil(t, g.Root().Values)
	assert.Equal(t, "Iso Tile", g.Root().Name)
}

func TestCodec_Malformed(t *testing.T) {
	_, _, err := DecodeGraph(strings.NewReader(`{"nodes": [`))
	assert.Error(t, err)
}

func TestGraph_UnmarshalKeepsReport(t *testing.T) {
	rootID := uuid.New()
	doc := `{"root": "` + rootID.String() + `", "nodes": [
		{"type": "Tile", "id": "` + rootID.String() + `"},
		{"type": "Nope", "id": "` + uuid.NewString() + `"}
	]}`
	var g Graph
	require.NoError(t, json.Unmarshal([]byte(doc), &g))
	assert.Equal(t, 1, g.Len())
	assert.Len(t, g.DecodeReport().Dropped, 1)
}
