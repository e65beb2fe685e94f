package analyzers

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/codescan/internal/envelope"
)

// CSharpAnalyzer handles .cs files: `using` namespace-prefix resolution
// and class/interface/struct/enum/method/namespace symbol extraction.
type CSharpAnalyzer struct{}

func NewCSharpAnalyzer() *CSharpAnalyzer { return &CSharpAnalyzer{} }

func (CSharpAnalyzer) Extensions() []string { return []string{".cs"} }

var (
	csUsingRe     = regexp.MustCompile(`^\s*using\s+(?:static\s+)?([A-Za-z_][A-Za-z0-9_.]*)\s*;`)
	csNamespaceRe = regexp.MustCompile(`^\s*namespace\s+([A-Za-z_][A-Za-z0-9_.]*)`)
	csClassRe     = regexp.MustCompile(`^(\s*)((?:public|private|protected|internal)\s+)?(?:static\s+|sealed\s+|abstract\s+|partial\s+)*class\s+([A-Za-z_][A-Za-z0-9_]*)`)
	csInterfaceRe = regexp.MustCompile(`^(\s*)((?:public|private|protected|internal)\s+)?(?:partial\s+)?interface\s+([A-Za-z_][A-Za-z0-9_]*)`)
	csStructRe    = regexp.MustCompile(`^(\s*)((?:public|private|protected|internal)\s+)?(?:readonly\s+|partial\s+)*struct\s+([A-Za-z_][A-Za-z0-9_]*)`)
	csEnumRe      = regexp.MustCompile(`^(\s*)((?:public|private|protected|internal)\s+)?enum\s+([A-Za-z_][A-Za-z0-9_]*)`)
	csMethodRe    = regexp.MustCompile(`^(\s+)((?:public|private|protected|internal)\s+)?(?:static\s+|virtual\s+|override\s+|async\s+)*[A-Za-z_][A-Za-z0-9_<>\[\],. ]*\s+([A-Za-z_][A-Za-z0-9_]*)\s*\([^)]*\)\s*(?:\{|=>)`)
)

// ExtractImports turns `using A.B;` into the directory-form reference
// "A/B/" the graph orchestrator resolves by prefix against the project
// file set (C# has no 1:1 file-per-import mapping).
func (CSharpAnalyzer) ExtractImports(content, filePath string) []ImportRef {
	var refs []ImportRef
	for _, line := range strings.Split(content, "\n") {
		if m := csUsingRe.FindStringSubmatch(line); m != nil {
			refs = append(refs, ImportRef(strings.ReplaceAll(m[1], ".", "/")+"/"))
		}
	}
	return refs
}

// ExtractSymbols tracks the enclosing type by brace depth so methods are
// parented to the class/struct they're declared in.
func (CSharpAnalyzer) ExtractSymbols(content string) []envelope.SymbolEntry {
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
		case csNamespaceRe.MatchString(line):
			m := csNamespaceRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "namespace", Name: m[1], Line: lineNo, Signature: trimSignature(line)})
		case csClassRe.MatchString(line):
			m := csClassRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "class", Name: m[3], Line: lineNo, Visibility: csVisibility(m[2]), Signature: trimSignature(line)})
			typeStack = append(typeStack, frame{name: m[3], depth: depth})
		case csInterfaceRe.MatchString(line):
			m := csInterfaceRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "interface", Name: m[3], Line: lineNo, Visibility: csVisibility(m[2]), Signature: trimSignature(line)})
			typeStack = append(typeStack, frame{name: m[3], depth: depth})
		case csStructRe.MatchString(line):
			m := csStructRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "struct", Name: m[3], Line: lineNo, Visibility: csVisibility(m[2]), Signature: trimSignature(line)})
			typeStack = append(typeStack, frame{name: m[3], depth: depth})
		case csEnumRe.MatchString(line):
			m := csEnumRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "enum", Name: m[3], Line: lineNo, Visibility: csVisibility(m[2]), Signature: trimSignature(line)})
		case len(typeStack) > 0 && csMethodRe.MatchString(line):
			m := csMethodRe.FindStringSubmatch(line)
			parent := typeStack[len(typeStack)-1]
			out = append(out, envelope.SymbolEntry{
				Kind: "method", Name: m[3], Line: lineNo, Visibility: csVisibility(m[2]), Parent: parent.name,
				Signature: trimSignature(line),
			})
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		for len(typeStack) > 0 && depth <= typeStack[len(typeStack)-1].depth {
			typeStack = typeStack[:len(typeStack)-1]
		}
	}
	return out
}

func csVisibility(modifier string) string {
	m := strings.TrimSpace(modifier)
	switch m {
	case "public", "private", "protected", "internal":
		return m
	}
	return ""
}
