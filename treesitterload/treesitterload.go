// Package treesitterload is the default external adapter named in §6 of
// the core spec: it turns a tree-sitter parse tree into a Node tree,
// applying a langrules.Rules table the way the original sequoia_diff's
// from_tree_sitter_node does (flatten, alias, ignore).
package treesitterload

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/pkg/errors"

	"github.com/JonahSussman/sequoia-diff/langrules"
	"github.com/JonahSussman/sequoia-diff/node"
)

// ErrUnexpectedRawType is returned by Load when raw is not an Input value.
var ErrUnexpectedRawType = errors.New("treesitterload: raw must be a treesitterload.Input")

// DefaultLanguage is the language assumed when Load is called with no
// loader_args, matching §6's "loader_args = [\"java\"]" default.
const DefaultLanguage = "java"

// Input bundles a parsed tree-sitter tree with the source bytes it was
// parsed from; tree-sitter nodes only carry byte ranges into that buffer,
// not their own text.
type Input struct {
	Tree   *sitter.Tree
	Source []byte
}

// Load is the library's default loader: Load(Input{...}, "java") loads the
// Java-flavored default rules and converts the whole tree. With no
// language argument it falls back to DefaultLanguage.
func Load(raw any, args ...any) (*node.Node, error) {
	input, ok := raw.(Input)
	if !ok {
		return nil, ErrUnexpectedRawType
	}

	language := DefaultLanguage
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			language = s
		}
	}

	set, err := langrules.Default()
	if err != nil {
		return nil, errors.Wrap(err, "treesitterload: loading default rules")
	}

	rules, err := set.Get(language)
	if err != nil {
		return nil, errors.Wrapf(err, "treesitterload: language %q", language)
	}

	return FromTree(input.Tree, input.Source, rules), nil
}

// FromTree converts tree's root node using rules.
func FromTree(tree *sitter.Tree, source []byte, rules langrules.Rules) *node.Node {
	return FromNode(tree.RootNode(), source, rules)
}

// FromNode recursively converts a tree-sitter node (and, unless it's
// flattened, its children) into a Node, applying rules the way
// sequoia_diff/loaders.py's from_tree_sitter_node does: flattened nodes
// become a single labeled leaf carrying their source text; aliased nodes
// are renamed; ignored children are pruned before recursing.
func FromNode(n *sitter.Node, source []byte, rules langrules.Rules) *node.Node {
	kind := n.Type()
	flattened := rules.IsFlattened(kind)

	var label *string
	if n.ChildCount() == 0 || flattened {
		text := n.Content(source)
		label = &text
	}

	out := node.New(rules.Alias(kind), label, n)

	if !flattened {
		count := int(n.ChildCount())
		for i := 0; i < count; i++ {
			child := n.Child(i)
			if rules.IsIgnored(child.Type()) {
				continue
			}
			out.AppendChild(FromNode(child, source, rules))
		}
	}

	return out
}
