// Package sequoiadiff is the top-level entry point: TreeDiff wires the
// matcher pipeline (C8), the Chawathe edit-script generator (C9), and the
// simplification pass (C10) together, loading raw parser trees into Node
// roots first if needed.
package sequoiadiff

import (
	"github.com/pkg/errors"

	"github.com/JonahSussman/sequoia-diff/editscript"
	"github.com/JonahSussman/sequoia-diff/matcher"
	"github.com/JonahSussman/sequoia-diff/node"
	"github.com/JonahSussman/sequoia-diff/treesitterload"
)

// LoaderFunc converts a raw, caller-supplied parser object into a Node
// tree, given the loader-specific arguments TreeDiff was called with (for
// the default adapter, a single language name).
type LoaderFunc func(raw any, args ...any) (*node.Node, error)

// ErrLoaderArgsWithoutLoader is returned when loaderArgs is non-empty but
// loader is nil: per §6, loader_args without an explicit loader is a
// validation error rather than a silently-ignored argument.
var ErrLoaderArgsWithoutLoader = errors.New("sequoiadiff: loaderArgs given without a loader")

// TreeDiff computes the simplified Chawathe edit script turning src into
// dst. src and dst are each either a *node.Node (used as-is) or an opaque
// raw parser object to be converted with loader. If loader is nil, the
// default tree-sitter adapter is used with loaderArgs defaulting to
// ["java"] (§6); supplying loaderArgs without a loader is a validation
// error.
func TreeDiff(src, dst any, loader LoaderFunc, loaderArgs ...any) ([]editscript.Action, error) {
	if loader == nil && len(loaderArgs) > 0 {
		return nil, ErrLoaderArgsWithoutLoader
	}
	if loader == nil {
		loader = treesitterload.Load
		loaderArgs = []any{treesitterload.DefaultLanguage}
	}

	srcNode, err := resolve(src, loader, loaderArgs)
	if err != nil {
		return nil, errors.Wrap(err, "sequoiadiff: loading src")
	}
	dstNode, err := resolve(dst, loader, loaderArgs)
	if err != nil {
		return nil, errors.Wrap(err, "sequoiadiff: loading dst")
	}

	store, err := matcher.GenerateMappings(srcNode, dstNode, nil)
	if err != nil {
		return nil, errors.Wrap(err, "sequoiadiff: generating mappings")
	}

	actions, err := editscript.GenerateChawathe(store, srcNode, dstNode)
	if err != nil {
		return nil, errors.Wrap(err, "sequoiadiff: generating edit script")
	}

	return editscript.Simplify(actions), nil
}

func resolve(raw any, loader LoaderFunc, args []any) (*node.Node, error) {
	if n, ok := raw.(*node.Node); ok {
		return n, nil
	}
	return loader(raw, args...)
}
