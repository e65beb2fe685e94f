package analyzers

import (
	"path"
	"regexp"
	"strings"

	"github.com/standardbeagle/codescan/internal/envelope"
)

// PythonAnalyzer handles .py files: import/from-import resolution
// (dotted and relative) and fn/method/class/UPPER_SNAKE-const symbol
// extraction.
type PythonAnalyzer struct{}

func NewPythonAnalyzer() *PythonAnalyzer { return &PythonAnalyzer{} }

func (PythonAnalyzer) Extensions() []string { return []string{".py"} }

var (
	pyImportRe     = regexp.MustCompile(`^\s*import\s+([A-Za-z_][A-Za-z0-9_.]*)`)
	pyFromRe       = regexp.MustCompile(`^\s*from\s+(\.*)([A-Za-z0-9_.]*)\s+import\s+`)
	pyDefRe        = regexp.MustCompile(`^(\s*)def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	pyClassRe      = regexp.MustCompile(`^(\s*)class\s+([A-Za-z_][A-Za-z0-9_]*)`)
	pyConstRe      = regexp.MustCompile(`^([A-Z][A-Z0-9_]*)\s*(?::[^=]+)?=`)
)

// ExtractImports maps dotted module paths to directories and emits both
// `x.py` and `x/__init__.py` candidates per segment chain, and resolves
// relative `from . import x` / `from ..y import z` against the file's
// own directory.
func (PythonAnalyzer) ExtractImports(content, filePath string) []ImportRef {
	dir := path.Dir(filePath)
	var refs []ImportRef

	addCandidates := func(base string) {
		refs = append(refs, ImportRef(base+".py"), ImportRef(path.Join(base, "__init__.py")))
	}

	for _, line := range strings.Split(content, "\n") {
		if m := pyImportRe.FindStringSubmatch(line); m != nil {
			addCandidates(strings.ReplaceAll(m[1], ".", "/"))
			continue
		}
		if m := pyFromRe.FindStringSubmatch(line); m != nil {
			dots, mod := m[1], m[2]
			if dots == "" {
				// Absolute `from a.b import c`: same mapping as `import a.b`.
				if mod != "" {
					addCandidates(strings.ReplaceAll(mod, ".", "/"))
				}
				continue
			}
			base := dir
			// Each extra leading dot beyond the first walks up one
			// directory ("from . import x" stays in dir; "from .. import
			// x" goes to the parent).
			for range dots[1:] {
				base = path.Dir(base)
			}
			if mod != "" {
				base = path.Join(base, strings.ReplaceAll(mod, ".", "/"))
			}
			addCandidates(base)
		}
	}
	return refs
}

// ExtractSymbols tracks indentation to tell a module-level `def` (fn)
// from one nested in a `class` body (method), and recognizes
// UPPER_SNAKE_CASE assignments at indent 0 as consts. Visibility is
// always unset: a leading underscore is a hint, not an access modifier.
func (PythonAnalyzer) ExtractSymbols(content string) []envelope.SymbolEntry {
	var out []envelope.SymbolEntry
	type frame struct {
		name   string
		indent int
	}
	var classStack []frame

	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}
		trimmed := strings.TrimLeft(line, " \t")
		indent := len(line) - len(trimmed)

		for len(classStack) > 0 && indent <= classStack[len(classStack)-1].indent {
			classStack = classStack[:len(classStack)-1]
		}

		if m := pyClassRe.FindStringSubmatch(line); m != nil {
			out = append(out, envelope.SymbolEntry{Kind: "class", Name: m[2], Line: lineNo, Signature: trimSignature(line)})
			classStack = append(classStack, frame{name: m[2], indent: indent})
			continue
		}
		if m := pyDefRe.FindStringSubmatch(line); m != nil {
			kind := "fn"
			var parent string
			if len(classStack) > 0 {
				kind = "method"
				parent = classStack[len(classStack)-1].name
			}
			out = append(out, envelope.SymbolEntry{Kind: kind, Name: m[2], Line: lineNo, Parent: parent, Signature: trimSignature(line)})
			continue
		}
		if indent == 0 {
			if m := pyConstRe.FindStringSubmatch(line); m != nil {
				out = append(out, envelope.SymbolEntry{Kind: "const", Name: m[1], Line: lineNo, Signature: trimSignature(line)})
			}
		}
	}
	return out
}
