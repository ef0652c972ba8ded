package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/JonahSussman/sequoia-diff/node"
)

// jsonNode is the demo on-disk tree format: a JSON-encoded Node, since
// *node.Node itself keeps its children unexported and isn't a parser
// object the default tree-sitter loader understands. There is no real
// parser wired into this CLI — see the library's Non-goals.
type jsonNode struct {
	Type     string     `json:"type"`
	Label    *string    `json:"label,omitempty"`
	Children []jsonNode `json:"children,omitempty"`
}

func (j jsonNode) toNode() *node.Node {
	n := node.New(j.Type, j.Label, nil)
	for _, c := range j.Children {
		n.AppendChild(c.toNode())
	}
	return n
}

func loadJSONTree(path string) (*node.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	var j jsonNode
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, errors.Wrapf(err, "parsing %s as a node tree", path)
	}

	return j.toNode(), nil
}
