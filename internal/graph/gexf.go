// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/citegraph/pkg/types"
)

// GEXF 1.2 document structure, directed static graphs only. No graph-
// serialization library in the ecosystem covers GEXF, so the document is
// built with encoding/xml directly.

type gexfDoc struct {
	XMLName xml.Name  `xml:"gexf"`
	XMLNS   string    `xml:"xmlns,attr"`
	Version string    `xml:"version,attr"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfGraph struct {
	Mode       string         `xml:"mode,attr"`
	EdgeType   string         `xml:"defaultedgetype,attr"`
	Attributes gexfAttributes `xml:"attributes"`
	Nodes      []gexfNode     `xml:"nodes>node"`
	Edges      []gexfEdge     `xml:"edges>edge"`
}

type gexfAttributes struct {
	Class string          `xml:"class,attr"`
	Attrs []gexfAttribute `xml:"attribute"`
}

type gexfAttribute struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type gexfNode struct {
	ID        string         `xml:"id,attr"`
	Label     string         `xml:"label,attr"`
	AttValues []gexfAttValue `xml:"attvalues>attvalue"`
}

type gexfAttValue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type gexfEdge struct {
	ID     int    `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

// subAreaAttrID is the GEXF attribute id of the node sub_area attribute.
const subAreaAttrID = "0"

// WriteGEXF serializes g as a directed GEXF 1.2 graph. Every node carries a
// sub_area attvalue; edges carry no attributes.
func WriteGEXF(w io.Writer, g *DiGraph) error {
	doc := gexfDoc{
		XMLNS:   "http://www.gexf.net/1.2draft",
		Version: "1.2",
		Graph: gexfGraph{
			Mode:     "static",
			EdgeType: "directed",
			Attributes: gexfAttributes{
				Class: "node",
				Attrs: []gexfAttribute{{ID: subAreaAttrID, Title: "sub_area", Type: "string"}},
			},
		},
	}

	for _, n := range g.Nodes() {
		doc.Graph.Nodes = append(doc.Graph.Nodes, gexfNode{
			ID:    n.ID,
			Label: n.ID,
			AttValues: []gexfAttValue{
				{For: subAreaAttrID, Value: string(n.SubArea)},
			},
		})
	}
	for i, a := range g.Arcs() {
		doc.Graph.Edges = append(doc.Graph.Edges, gexfEdge{ID: i, Source: a.Source, Target: a.Target})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding GEXF: %w", err)
	}
	return enc.Close()
}

// GraphFileName returns the deterministic output file name for an area's
// graph: <area>_<suffix>.gexf.
func GraphFileName(area types.SubArea, suffix string) string {
	return fmt.Sprintf("%s_%s.gexf", area, suffix)
}

// WriteAreaGraphs serializes each area graph into dir, creating it if
// needed, and returns the written file paths keyed by area.
func WriteAreaGraphs(dir, suffix string, graphs map[types.SubArea]*DiGraph) (map[types.SubArea]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating graph directory %s: %w", dir, err)
	}

	paths := make(map[types.SubArea]string, len(graphs))
	for area, g := range graphs {
		path := filepath.Join(dir, GraphFileName(area, suffix))
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("creating graph file %s: %w", path, err)
		}
		if err := WriteGEXF(f, g); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing graph for %s: %w", area, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		paths[area] = path
	}
	return paths, nil
}
