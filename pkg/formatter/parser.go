package formatter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/siyuan-infoblox/py-imports-group/pkg/errors"
)

var (
	importRe     = regexp.MustCompile(`^import\s+(.*)`)
	fromImportRe = regexp.MustCompile(`^from\s+(.*)\s+import(\s+.*|\s*\(.*)$`)
	keywordRe    = regexp.MustCompile(`^(import|from)(\s|$)`)
)

const futureModule = "__future__"

// SourceFile is one file split into its import groups and body
type SourceFile struct {
	Path    string
	Package string   // dotted package the file lives in
	Lines   []string // original lines, right-trimmed
	Std     []Import
	Third   []Import
	Inner   []Import
	Body    []string // a blank line, then every line after the import block
}

// Imports returns the imports of one group
func (sf *SourceFile) Imports(group ImportGroup) []Import {
	switch group {
	case StdGroup:
		return sf.Std
	case ThirdPartyGroup:
		return sf.Third
	case InternalGroup:
		return sf.Inner
	default:
		return nil
	}
}

func (sf *SourceFile) add(group ImportGroup, imp Import) {
	switch group {
	case StdGroup:
		sf.Std = append(sf.Std, imp)
	case ThirdPartyGroup:
		sf.Third = append(sf.Third, imp)
	case InternalGroup:
		sf.Inner = append(sf.Inner, imp)
	}
}

// splitLines splits content into lines with trailing whitespace removed.
// A final line terminator does not start a new line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, isSpace)
	}
	return lines
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\v' || r == '\f'
}

// parse fills a SourceFile from content. Header comments are dropped, the
// import block is classified and the rest becomes the body.
func (g *formatter) parse(path, pkg string, content []byte) (*SourceFile, error) {
	sf := &SourceFile{
		Path:    path,
		Package: pkg,
		Lines:   splitLines(string(content)),
	}

	start := -1
	for i, line := range sf.Lines {
		if line != "" && !strings.HasPrefix(line, "#") {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%s: %w", path, errors.ErrNoContent)
	}

	for i := start; ; {
		if i >= len(sf.Lines) {
			return nil, errors.Newf(errors.MalformedImportBlock, path, len(sf.Lines), errors.ErrMsgImportsWithoutBody)
		}
		first := i
		logical, next, ok := readLogicalLine(sf.Lines, i)
		if !ok {
			return nil, errors.Newf(errors.MalformedImportBlock, path, first+1, errors.ErrMsgUnterminatedStatement)
		}
		i = next
		if logical == "" {
			continue
		}

		matched, err := g.parseStatement(sf, logical, first+1)
		if err != nil {
			return nil, err
		}
		if !matched {
			sf.Body = append([]string{""}, trimTrailingBlank(sf.Lines[first:])...)
			break
		}
	}

	for _, group := range []ImportGroup{StdGroup, ThirdPartyGroup, InternalGroup} {
		sortImports(sf.Imports(group))
	}
	return sf, nil
}

// readLogicalLine joins the physical lines starting at i into one logical
// line. Lines ending in a backslash continue on the next line, and so does
// an import statement with an open parenthesis. Trailing comments of an
// import statement are dropped. It returns the index of the first line after
// the statement, and false when the input ends first.
func readLogicalLine(lines []string, i int) (string, int, bool) {
	isImport := keywordRe.MatchString(strings.TrimSpace(lines[i]))
	physical := func(line string) string {
		if isImport {
			return stripComment(line)
		}
		return line
	}

	parts := []string{physical(lines[i])}
	depth := 0
	if isImport {
		depth = parenDepth(parts[0])
	}
	i++
	for strings.HasSuffix(parts[len(parts)-1], `\`) || depth > 0 {
		if i >= len(lines) {
			return "", i, false
		}
		part := physical(lines[i])
		parts = append(parts, part)
		if isImport {
			depth += parenDepth(part)
		}
		i++
	}

	joined := make([]string, 0, len(parts))
	for j, part := range parts {
		if j < len(parts)-1 {
			part = strings.TrimSuffix(part, `\`)
		}
		if part = strings.TrimSpace(part); part != "" {
			joined = append(joined, part)
		}
	}
	return strings.Join(joined, " "), i, true
}

// stripComment cuts a trailing comment. Import statements hold no string
// literals, so the first # always starts one.
func stripComment(line string) string {
	if before, _, found := strings.Cut(line, "#"); found {
		return strings.TrimRightFunc(before, isSpace)
	}
	return line
}

func parenDepth(line string) int {
	return strings.Count(line, "(") - strings.Count(line, ")")
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}
	return lines[:end]
}

// parseStatement classifies one logical line. It returns false when the line
// is not an import statement.
func (g *formatter) parseStatement(sf *SourceFile, logical string, line int) (bool, error) {
	if m := importRe.FindStringSubmatch(logical); m != nil {
		module := strings.TrimSpace(m[1])
		if module == "" {
			return false, g.unrecognized(sf.Path, line, logical)
		}
		imp := newImport(PlainImport, module, nil, g.config.PackagePrefix, line)
		sf.add(g.classifyImport(imp), imp)
		return true, nil
	}

	if m := fromImportRe.FindStringSubmatch(logical); m != nil {
		module := strings.TrimSpace(m[1])
		if module == futureModule {
			return true, nil
		}
		symbols, ok := splitSymbols(m[2])
		if module == "" || !ok {
			return false, g.unrecognized(sf.Path, line, logical)
		}
		imp := newImport(FromImport, absolutize(module, sf.Package), symbols, g.config.PackagePrefix, line)
		sf.add(g.classifyImport(imp), imp)
		return true, nil
	}

	if keywordRe.MatchString(logical) {
		return false, g.unrecognized(sf.Path, line, logical)
	}
	return false, nil
}

func (g *formatter) unrecognized(path string, line int, logical string) error {
	return errors.Newf(errors.UnrecognizedStatementShape, path, line, "%s: %q", errors.ErrMsgUnrecognizedStatement, logical)
}

// splitSymbols splits the names of a from-import. Duplicates are kept. A
// parenthesized list may end with a comma.
func splitSymbols(spec string) ([]string, bool) {
	spec = strings.TrimSpace(spec)
	parenthesized := strings.HasPrefix(spec, "(") && strings.HasSuffix(spec, ")")
	if parenthesized {
		spec = strings.TrimSpace(spec[1 : len(spec)-1])
	}
	if spec == "" {
		return nil, false
	}

	parts := strings.Split(spec, ",")
	symbols := make([]string, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			if parenthesized && i == len(parts)-1 {
				continue
			}
			return nil, false
		}
		symbols = append(symbols, part)
	}
	return symbols, true
}

// absolutize resolves a relative module against pkg. The first leading dot
// stands for pkg itself and each further dot for one parent package.
func absolutize(module, pkg string) string {
	if !strings.HasPrefix(module, ".") {
		return module
	}
	rest := strings.TrimLeft(module, ".")
	up := len(module) - len(rest) - 1

	var parts []string
	if pkg != "" {
		parts = strings.Split(pkg, ".")
	}
	if up > len(parts) {
		up = len(parts)
	}
	base := strings.Join(parts[:len(parts)-up], ".")

	switch {
	case base == "" && rest == "":
		return module
	case base == "":
		return rest
	case rest == "":
		return base
	default:
		return base + "." + rest
	}
}
