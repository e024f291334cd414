package tilegen

import (
	"bytes"
	"context"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleDocument_Valid(t *testing.T) {
	d := SampleDocument()
	require.NoError(t, d.Validate())
	assert.Empty(t, d.Reports())
	assert.Len(t, d.Layer.Areas(), 2)
	assert.Equal(t, image.Rect(0, 0, 3, 1), d.Layer.Bounds())
}

func TestDocument_RoundTrip(t *testing.T) {
	d := smallDocument()

	var buf bytes.Buffer
	require.NoError(t, d.Write(&buf))
	back, err := ReadDocument(&buf)
	require.NoError(t, err)
	require.NoError(t, back.Validate())
	assert.Empty(t, back.Reports())
	assert.Equal(t, d.Project.TileSize, back.Project.TileSize)
	require.Len(t, back.Layer.Areas(), 2)
	for i, a := range d.Layer.Areas() {
		got := back.Layer.Areas()[i]
		assert.Equal(t, a.ID, got.ID)
		assert.Equal(t, a.Rect, got.Rect)
		assert.Equal(t, a.Tile, got.Tile)
	}

	want := renderSync(t, NewRenderer(), d)
	got := renderSync(t, NewRenderer(), back)
	assert.True(t, want.Equal(got), "decoded document renders identically")
}

func TestDocument_SaveLoad(t *testing.T) {
	d := SampleDocument()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, d.Save(path))

	back, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Len(t, back.Project.TileSets, 1)

	_, err = LoadDocument(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestDocument_Reports(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SampleDocument().Write(&buf))
	data := bytes.ReplaceAll(buf.Bytes(), []byte(`"ModifierTiledNoise"`), []byte(`"Bogus"`))

	d, err := ReadDocument(bytes.NewReader(data))
	require.NoError(t, err)
	reports := d.Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, "front", reports[0].View)
	require.Len(t, reports[0].Report.Dropped, 1)
	assert.Equal(t, "Bogus", reports[0].Report.Dropped[0].Type)
	assert.ErrorIs(t, reports[0].Report.Dropped[0].Err, ErrUnknownNodeType)
	assert.Equal(t, 1, reports[0].Report.PrunedEdges)

	// The remaining graph still renders.
	d.Project.TileSize = testTileSize
	r := NewRenderer()
	require.NoError(t, r.Render(context.Background(), d.Project, d.Layer))
	r.Wait()
}

func TestDocument_Validate(t *testing.T) {
	d := SampleDocument()
	d.Project.TileSize = 0
	assert.Error(t, d.Validate())

	d = SampleDocument()
	d.Layer.AddArea(NewArea(image.Rect(5, 5, 6, 6), uuid.New(), uuid.New()))
	err := d.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNodeNotFound)

	assert.Error(t, (&Document{}).Validate())
}

func TestReadDocument_Errors(t *testing.T) {
	_, err := ReadDocument(strings.NewReader("{"))
	assert.Error(t, err)

	d, err := ReadDocument(strings.NewReader("{}"))
	require.NoError(t, err)
	assert.NotNil(t, d.Project)
	assert.NotNil(t, d.Layer)
	assert.Empty(t, d.Layer.Cells())
}
