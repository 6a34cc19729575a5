package models

// Node is one entity in the relationship graph. Style "dashed" marks an
// expected-but-missing entity or a weak text-only signal; renderers use it to
// distinguish found from absent.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Style string `json:"style,omitempty"`
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
}

// Edge connects two nodes by id.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Rel   string `json:"rel"`
	Style string `json:"style,omitempty"`
}

// EntityGraph is the node/edge payload handed to the presentation layer.
// The page node is always first and acts as the root.
type EntityGraph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}
