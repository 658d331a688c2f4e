package graph

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/pretty"
)

// DocumentSchemaVersion is bumped whenever Document's on-disk shape
// changes incompatibly. GraphFromDocument rejects any other value.
const DocumentSchemaVersion = 1

// Document is the flat, ordered, JSON-shaped mirror of a Graph used for
// storage and interchange. Where Graph indexes everything by id for O(1)
// lookup and derives adjacency, Document keeps plain ordered slices —
// the representation a file or a database row actually wants.
type Document struct {
	SchemaVersion int      `json:"schema_version"`
	GraphID       GraphId  `json:"graph_id"`
	Nodes         []Node   `json:"nodes"`
	Sockets       []Socket `json:"sockets"`
	Wires         []Wire   `json:"wires"`
	Frames        []Frame  `json:"frames"`
}

// GraphToDocument flattens g into its Document form, preserving node,
// wire, and frame insertion order. Socket order follows the owning
// node's declared Inputs then Outputs order, grouped by node in node
// insertion order.
func GraphToDocument(g Graph) Document {
	doc := Document{
		SchemaVersion: DocumentSchemaVersion,
		GraphID:       g.id,
	}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, n)
		for _, id := range n.Inputs {
			if s, ok := g.sockets[id]; ok {
				doc.Sockets = append(doc.Sockets, s)
			}
		}
		for _, id := range n.Outputs {
			if s, ok := g.sockets[id]; ok {
				doc.Sockets = append(doc.Sockets, s)
			}
		}
	}
	doc.Wires = append(doc.Wires, g.Wires()...)
	doc.Frames = append(doc.Frames, g.Frames()...)
	return doc
}

// GraphFromDocument rebuilds a Graph by replaying doc through the same
// AddNode/AddWire/AddFrame operations a live editor would call, so a
// document that round-trips here is guaranteed to satisfy every kernel
// invariant — it cannot smuggle in a cycle or a dangling socket that
// ValidateGraph would later reject.
func GraphFromDocument(doc Document) (Graph, error) {
	if doc.SchemaVersion != DocumentSchemaVersion {
		return Graph{}, fmt.Errorf("graph: unsupported document schema_version %d", doc.SchemaVersion)
	}

	socketsByNode := map[NodeId][]Socket{}
	for _, s := range doc.Sockets {
		socketsByNode[s.NodeID] = append(socketsByNode[s.NodeID], s)
	}

	g := CreateGraph(doc.GraphID)
	var err error
	for _, n := range doc.Nodes {
		g, err = AddNode(g, n, socketsByNode[n.ID])
		if err != nil {
			return Graph{}, err
		}
	}
	for _, w := range doc.Wires {
		g, err = AddWire(g, w.ID, w.FromSocketID, w.ToSocketID)
		if err != nil {
			return Graph{}, err
		}
	}
	for _, f := range doc.Frames {
		g, err = AddFrame(g, f)
		if err != nil {
			return Graph{}, err
		}
	}
	return g, nil
}

// MarshalDocumentIndent renders doc as indented JSON text, suitable for
// on-disk storage or display.
func MarshalDocumentIndent(doc Document) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(raw), nil
}

// UnmarshalDocument parses raw JSON text into a Document.
func UnmarshalDocument(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}
