package formatter

import (
	"sort"
	"strings"
)

// ImportKind tells the two import statement shapes apart
type ImportKind int

const (
	PlainImport ImportKind = iota // import X
	FromImport                    // from X import A, B
)

// Import represents a single logical import statement
type Import struct {
	Kind     ImportKind
	Module   string   // absolute module path, relative imports already resolved
	Symbols  []string // imported names of a from-import, in source order
	Internal bool     // Module lives under the internal package prefix
	Line     int      // 1-based line the statement starts on
	path     string   // Module with the internal prefix stripped
}

// ImportGroup represents different types of import groups
type ImportGroup int

const (
	StdGroup ImportGroup = iota
	ThirdPartyGroup
	InternalGroup
)

func (g ImportGroup) String() string {
	switch g {
	case StdGroup:
		return "std"
	case ThirdPartyGroup:
		return "third-party"
	case InternalGroup:
		return "internal"
	default:
		return "unknown"
	}
}

func newImport(kind ImportKind, module string, symbols []string, prefix string, line int) Import {
	imp := Import{
		Kind:    kind,
		Module:  module,
		Symbols: symbols,
		Line:    line,
		path:    module,
	}
	if prefix != "" {
		switch {
		case module == prefix:
			imp.Internal = true
		case strings.HasPrefix(module, prefix+"."):
			imp.Internal = true
			imp.path = strings.TrimPrefix(module, prefix+".")
		}
	}
	return imp
}

// Path returns the module as rendered, relative to the internal prefix for
// internal imports.
func (i Import) Path() string {
	return i.path
}

// SortKey orders plain imports before from-imports, then by path.
func (i Import) SortKey() string {
	if i.Kind == PlainImport {
		return "AAA" + i.path
	}
	return "ZZZ" + i.path
}

func (i Import) String() string {
	if i.Kind == PlainImport {
		return "import " + i.path
	}
	symbols := append([]string(nil), i.Symbols...)
	sort.Strings(symbols)
	return "from " + i.path + " import " + strings.Join(symbols, ", ")
}

// sortImports sorts by SortKey. Statements with equal keys keep their source
// order.
func sortImports(imports []Import) {
	sort.SliceStable(imports, func(i, j int) bool {
		return imports[i].SortKey() < imports[j].SortKey()
	})
}
