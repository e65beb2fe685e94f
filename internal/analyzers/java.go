package analyzers

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/codescan/internal/envelope"
)

// JavaAnalyzer handles .java files: package-qualified import resolution
// (single-type and wildcard) and class/interface/enum/method symbol
// extraction.
type JavaAnalyzer struct{}

func NewJavaAnalyzer() *JavaAnalyzer { return &JavaAnalyzer{} }

func (JavaAnalyzer) Extensions() []string { return []string{".java"} }

var (
	javaImportRe   = regexp.MustCompile(`^\s*import\s+(?:static\s+)?([A-Za-z_][A-Za-z0-9_.]*(?:\.\*)?)\s*;`)
	javaClassRe    = regexp.MustCompile(`^(\s*)((?:public|private|protected)\s+)?(?:static\s+|final\s+|abstract\s+)*class\s+([A-Za-z_][A-Za-z0-9_]*)`)
	javaInterfaceRe = regexp.MustCompile(`^(\s*)((?:public|private|protected)\s+)?interface\s+([A-Za-z_][A-Za-z0-9_]*)`)
	javaEnumRe     = regexp.MustCompile(`^(\s*)((?:public|private|protected)\s+)?enum\s+([A-Za-z_][A-Za-z0-9_]*)`)
	javaMethodRe   = regexp.MustCompile(`^(\s+)((?:public|private|protected)\s+)?(?:static\s+|final\s+|abstract\s+|synchronized\s+)*[A-Za-z_][A-Za-z0-9_<>\[\],. ]*\s+([A-Za-z_][A-Za-z0-9_]*)\s*\([^)]*\)\s*(?:\{|throws|$)`)
)

// ExtractImports converts `import a.b.C;` into the file-form reference
// "a/b/C.java" and a wildcard `import a.b.*;` into the directory-form
// reference "a/b/".
func (JavaAnalyzer) ExtractImports(content, filePath string) []ImportRef {
	var refs []ImportRef
	for _, line := range strings.Split(content, "\n") {
		m := javaImportRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		pkg := m[1]
		if strings.HasSuffix(pkg, ".*") {
			refs = append(refs, ImportRef(strings.ReplaceAll(strings.TrimSuffix(pkg, ".*"), ".", "/")+"/"))
			continue
		}
		refs = append(refs, ImportRef(strings.ReplaceAll(pkg, ".", "/")+".java"))
	}
	return refs
}

// ExtractSymbols parents methods to the innermost enclosing class by
// brace depth, same discipline as the C# analyzer.
func (JavaAnalyzer) ExtractSymbols(content string) []envelope.SymbolEntry {
	var out []envelope.SymbolEntry
	type frame struct {
		name  string
		depth int
	}
	var typeStack []frame
	depth := 0

	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1
		switch {
		case javaClassRe.MatchString(line):
			m := javaClassRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "class", Name: m[3], Line: lineNo, Visibility: csVisibility(m[2]), Signature: trimSignature(line)})
			typeStack = append(typeStack, frame{name: m[3], depth: depth})
		case javaInterfaceRe.MatchString(line):
			m := javaInterfaceRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "interface", Name: m[3], Line: lineNo, Visibility: csVisibility(m[2]), Signature: trimSignature(line)})
			typeStack = append(typeStack, frame{name: m[3], depth: depth})
		case javaEnumRe.MatchString(line):
			m := javaEnumRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "enum", Name: m[3], Line: lineNo, Visibility: csVisibility(m[2]), Signature: trimSignature(line)})
			typeStack = append(typeStack, frame{name: m[3], depth: depth})
		case len(typeStack) > 0 && javaMethodRe.MatchString(line):
			m := javaMethodRe.FindStringSubmatch(line)
			parent := typeStack[len(typeStack)-1]
			out = append(out, envelope.SymbolEntry{Kind: "method", Name: m[3], Line: lineNo, Visibility: csVisibility(m[2]), Parent: parent.name, Signature: trimSignature(line)})
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		for len(typeStack) > 0 && depth <= typeStack[len(typeStack)-1].depth {
			typeStack = typeStack[:len(typeStack)-1]
		}
	}
	return out
}
