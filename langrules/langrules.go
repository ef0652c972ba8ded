// Package langrules holds the per-language node-shaping rules consumed by
// the default tree-sitter adapter (§6 of the core spec, "Language-rule
// configuration"): which node kinds get flattened into a single labeled
// leaf, which get renamed, and which get dropped entirely while loading a
// parser tree into a Node.
package langrules

import (
	"embed"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesFS embed.FS

// ErrLanguageNotSupported is returned by Set.Get when asked for a language
// with no registered rules.
var ErrLanguageNotSupported = errors.New("langrules: language not supported")

// Rules is one language's node-shaping table.
type Rules struct {
	// Flattened node kinds have their entire subtree text captured as a
	// single labeled leaf; their children are never visited.
	Flattened []string `yaml:"flattened"`
	// Aliased renames a source kind to a canonical kind during loading.
	Aliased map[string]string `yaml:"aliased"`
	// Ignored node kinds are dropped, along with their subtrees, while
	// loading a parser tree.
	Ignored []string `yaml:"ignored"`

	flattened map[string]bool
	ignored   map[string]bool
}

// IsFlattened reports whether kind should be collapsed into a single leaf.
func (r Rules) IsFlattened(kind string) bool { return r.flattened[kind] }

// IsIgnored reports whether kind should be dropped entirely.
func (r Rules) IsIgnored(kind string) bool { return r.ignored[kind] }

// Alias returns the canonical kind for kind, or kind itself if unaliased.
func (r Rules) Alias(kind string) string {
	if canon, ok := r.Aliased[kind]; ok {
		return canon
	}
	return kind
}

func (r *Rules) index() {
	r.flattened = make(map[string]bool, len(r.Flattened))
	for _, k := range r.Flattened {
		r.flattened[k] = true
	}
	r.ignored = make(map[string]bool, len(r.Ignored))
	for _, k := range r.Ignored {
		r.ignored[k] = true
	}
	if r.Aliased == nil {
		r.Aliased = map[string]string{}
	}
}

// Set is a validated table of Rules keyed by language name.
type Set struct {
	byLanguage map[string]Rules
}

// Get returns the rules registered for language, or ErrLanguageNotSupported
// if no such language is registered, per §7's "Unsupported language" error
// case.
func (s *Set) Get(language string) (Rules, error) {
	if s == nil {
		return Rules{}, ErrLanguageNotSupported
	}
	r, ok := s.byLanguage[language]
	if !ok {
		return Rules{}, ErrLanguageNotSupported
	}
	return r, nil
}

// Default returns the rule set embedded in the binary.
func Default() (*Set, error) {
	data, err := defaultRulesFS.ReadFile("rules.yaml")
	if err != nil {
		return nil, errors.Wrap(err, "langrules: reading embedded rules.yaml")
	}
	return parse(data)
}

// Load reads and validates a rule set from path, in the same document
// shape as the embedded default.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "langrules: reading %s", path)
	}
	return parse(data)
}

func parse(data []byte) (*Set, error) {
	var raw map[string]Rules
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "langrules: parsing rule document")
	}

	set := &Set{byLanguage: make(map[string]Rules, len(raw))}
	for lang, r := range raw {
		r.index()
		set.byLanguage[lang] = r
	}
	return set, nil
}
