package analyzers

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/codescan/internal/envelope"
)

// KotlinAnalyzer handles .kt/.kts files: package-qualified import
// resolution and class/interface/object/enum/fun symbol extraction.
type KotlinAnalyzer struct{}

func NewKotlinAnalyzer() *KotlinAnalyzer { return &KotlinAnalyzer{} }

func (KotlinAnalyzer) Extensions() []string { return []string{".kt", ".kts"} }

var (
	ktImportRe    = regexp.MustCompile(`^\s*import\s+([A-Za-z_][A-Za-z0-9_.]*(?:\.\*)?)(?:\s+as\s+\S+)?\s*$`)
	ktClassRe     = regexp.MustCompile(`^(\s*)((?:public|private|protected|internal)\s+)?(?:data\s+|sealed\s+|open\s+|abstract\s+)*class\s+([A-Za-z_][A-Za-z0-9_]*)`)
	ktInterfaceRe = regexp.MustCompile(`^(\s*)((?:public|private|protected|internal)\s+)?interface\s+([A-Za-z_][A-Za-z0-9_]*)`)
	ktObjectRe    = regexp.MustCompile(`^(\s*)((?:public|private|protected|internal)\s+)?object\s+([A-Za-z_][A-Za-z0-9_]*)`)
	ktEnumRe      = regexp.MustCompile(`^(\s*)((?:public|private|protected|internal)\s+)?enum\s+class\s+([A-Za-z_][A-Za-z0-9_]*)`)
	ktFunRe       = regexp.MustCompile(`^(\s*)((?:public|private|protected|internal)\s+)?(?:suspend\s+|inline\s+)*fun\s+([A-Za-z_][A-Za-z0-9_]*)`)
)

// ExtractImports converts `import a.b.C` into the file-form reference
// "a/b/C.kt" (wildcard `import a.b.*` resolves to the directory form).
func (KotlinAnalyzer) ExtractImports(content, filePath string) []ImportRef {
	var refs []ImportRef
	for _, line := range strings.Split(content, "\n") {
		m := ktImportRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		pkg := m[1]
		if strings.HasSuffix(pkg, ".*") {
			refs = append(refs, ImportRef(strings.ReplaceAll(strings.TrimSuffix(pkg, ".*"), ".", "/")+"/"))
			continue
		}
		refs = append(refs, ImportRef(strings.ReplaceAll(pkg, ".", "/")+".kt"))
	}
	return refs
}

// ExtractSymbols parents top-level fun declarations inside a class/
// object body by brace depth, same as the C#/Java analyzers.
func (KotlinAnalyzer) ExtractSymbols(content string) []envelope.SymbolEntry {
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
		case ktEnumRe.MatchString(line):
			m := ktEnumRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "enum", Name: m[3], Line: lineNo, Visibility: csVisibility(m[2]), Signature: trimSignature(line)})
		case ktClassRe.MatchString(line):
			m := ktClassRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "class", Name: m[3], Line: lineNo, Visibility: csVisibility(m[2]), Signature: trimSignature(line)})
			typeStack = append(typeStack, frame{name: m[3], depth: depth})
		case ktInterfaceRe.MatchString(line):
			m := ktInterfaceRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "interface", Name: m[3], Line: lineNo, Visibility: csVisibility(m[2]), Signature: trimSignature(line)})
			typeStack = append(typeStack, frame{name: m[3], depth: depth})
		case ktObjectRe.MatchString(line):
			m := ktObjectRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "class", Name: m[3], Line: lineNo, Visibility: csVisibility(m[2]), Signature: trimSignature(line)})
			typeStack = append(typeStack, frame{name: m[3], depth: depth})
		case ktFunRe.MatchString(line):
			m := ktFunRe.FindStringSubmatch(line)
			kind, parent := "fn", ""
			if len(typeStack) > 0 && len(m[1]) > 0 {
				kind = "method"
				parent = typeStack[len(typeStack)-1].name
			}
			out = append(out, envelope.SymbolEntry{Kind: kind, Name: m[3], Line: lineNo, Visibility: csVisibility(m[2]), Parent: parent, Signature: trimSignature(line)})
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		for len(typeStack) > 0 && depth <= typeStack[len(typeStack)-1].depth {
			typeStack = typeStack[:len(typeStack)-1]
		}
	}
	return out
}
