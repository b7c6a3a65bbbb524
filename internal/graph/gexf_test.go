// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citegraph/pkg/types"
)

func TestWriteGEXF(t *testing.T) {
	g := NewDiGraph()
	g.AddNode("10.1/a", "ai")
	g.AddNode("10.1/b", types.SubAreaUnknown)
	g.AddArc("10.1/a", "10.1/b")

	var buf bytes.Buffer
	require.NoError(t, WriteGEXF(&buf, g))
	out := buf.String()

	assert.Contains(t, out, `<?xml`)
	assert.Contains(t, out, `defaultedgetype="directed"`)
	assert.Contains(t, out, `title="sub_area"`)
	assert.Contains(t, out, `<node id="10.1/a" label="10.1/a">`)
	assert.Contains(t, out, `<attvalue for="0" value="ai">`)
	assert.Contains(t, out, `<attvalue for="0" value="unknown">`)
	assert.Contains(t, out, `source="10.1/a" target="10.1/b"`)

	// The document must stay well-formed XML.
	var reparsed gexfDoc
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &reparsed))
	assert.Len(t, reparsed.Graph.Nodes, 2)
	assert.Len(t, reparsed.Graph.Edges, 1)
}

func TestWriteGEXFEmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGEXF(&buf, NewDiGraph()))

	var reparsed gexfDoc
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &reparsed))
	assert.Empty(t, reparsed.Graph.Nodes)
	assert.Empty(t, reparsed.Graph.Edges)
}

func TestGraphFileName(t *testing.T) {
	assert.Equal(t, "ai_citations.gexf", GraphFileName("ai", "citations"))
	assert.Equal(t, "se_open_citations.gexf", GraphFileName("se", "open_citations"))
}

func TestWriteAreaGraphs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "graphs")

	edges := []types.CitationEdge{
		{OriginDOI: "10.1/a", TargetDOI: "10.1/b", OriginSubArea: "ai"},
	}
	graphs := Partition(edges, testAreas)

	paths, err := WriteAreaGraphs(dir, "citations", graphs)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	for area, path := range paths {
		assert.Equal(t, filepath.Join(dir, GraphFileName(area, "citations")), path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "gexf")
	}
}
