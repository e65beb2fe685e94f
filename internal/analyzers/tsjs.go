package analyzers

import (
	"path"
	"regexp"
	"strings"

	"github.com/standardbeagle/codescan/internal/envelope"
)

// TSJSAnalyzer handles .ts/.tsx/.js/.jsx: import/require/export-from
// resolution with extension probing, and function/class/interface/type/
// enum/const (including arrow-assigned const) / method extraction.
type TSJSAnalyzer struct{}

func NewTSJSAnalyzer() *TSJSAnalyzer { return &TSJSAnalyzer{} }

func (TSJSAnalyzer) Extensions() []string {
	return []string{".ts", ".tsx", ".js", ".jsx"}
}

var (
	tsImportFromRe = regexp.MustCompile(`(?:import|export)\s+(?:[^'"]*\bfrom\s+)?['"](\.[^'"]*)['"]`)
	tsRequireRe    = regexp.MustCompile(`require\(\s*['"](\.[^'"]*)['"]\s*\)`)

	tsFunctionRe  = regexp.MustCompile(`^(\s*)(export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	tsClassRe     = regexp.MustCompile(`^(\s*)(export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	tsInterfaceRe = regexp.MustCompile(`^(\s*)(export\s+)?interface\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	tsTypeRe      = regexp.MustCompile(`^(\s*)(export\s+)?type\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=`)
	tsEnumRe      = regexp.MustCompile(`^(\s*)(export\s+)?(?:const\s+)?enum\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	tsConstRe     = regexp.MustCompile(`^(\s*)(export\s+)?const\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*(:[^=]+)?=\s*(.*)$`)
	tsMethodRe    = regexp.MustCompile(`^(\s+)(?:public\s+|private\s+|protected\s+|static\s+|async\s+)*([A-Za-z_$][A-Za-z0-9_$]*)\s*\([^)]*\)\s*(?::[^{]+)?\{`)

	// extProbeOrder is the candidate order for extensionless specifiers:
	// x.ts, x.tsx, x.js, x.jsx, then the same probes under x/index.*.
	extProbeOrder = []string{".ts", ".tsx", ".js", ".jsx"}
)

// ExtractImports resolves relative specifiers against every probed
// extension and the directory-index form; the graph orchestrator keeps
// whichever candidate actually exists in the project file set.
func (TSJSAnalyzer) ExtractImports(content, filePath string) []ImportRef {
	dir := path.Dir(filePath)
	var refs []ImportRef
	seen := make(map[string]bool)

	add := func(spec string) {
		clean := path.Clean(path.Join(dir, spec))
		if !seen[clean] {
			seen[clean] = true
			for _, ext := range extProbeOrder {
				refs = append(refs, ImportRef(clean+ext))
			}
			for _, ext := range extProbeOrder {
				refs = append(refs, ImportRef(path.Join(clean, "index"+ext)))
			}
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if m := tsImportFromRe.FindStringSubmatch(line); m != nil {
			add(m[1])
		}
		if m := tsRequireRe.FindStringSubmatch(line); m != nil {
			add(m[1])
		}
	}
	return refs
}

// ExtractSymbols recognizes top-level function/class/interface/type/
// enum/const declarations and, once inside a `class` body (tracked by
// brace depth), method declarations parented to that class.
func (TSJSAnalyzer) ExtractSymbols(content string) []envelope.SymbolEntry {
	var out []envelope.SymbolEntry
	type classFrame struct {
		name  string
		depth int
	}
	var classStack []classFrame
	depth := 0

	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1

		if m := tsClassRe.FindStringSubmatch(line); m != nil {
			out = append(out, envelope.SymbolEntry{
				Kind: "class", Name: m[3], Line: lineNo, Visibility: exportVis(m[2]),
				Signature: trimSignature(line),
			})
			classStack = append(classStack, classFrame{name: m[3], depth: depth})
		} else if m := tsInterfaceRe.FindStringSubmatch(line); m != nil {
			out = append(out, envelope.SymbolEntry{Kind: "interface", Name: m[3], Line: lineNo, Visibility: exportVis(m[2]), Signature: trimSignature(line)})
		} else if m := tsEnumRe.FindStringSubmatch(line); m != nil {
			out = append(out, envelope.SymbolEntry{Kind: "enum", Name: m[3], Line: lineNo, Visibility: exportVis(m[2]), Signature: trimSignature(line)})
		} else if m := tsTypeRe.FindStringSubmatch(line); m != nil {
			out = append(out, envelope.SymbolEntry{Kind: "type", Name: m[3], Line: lineNo, Visibility: exportVis(m[2]), Signature: trimSignature(line)})
		} else if m := tsFunctionRe.FindStringSubmatch(line); m != nil {
			out = append(out, envelope.SymbolEntry{Kind: "fn", Name: m[3], Line: lineNo, Visibility: exportVis(m[2]), Signature: trimSignature(line)})
		} else if m := tsConstRe.FindStringSubmatch(line); m != nil {
			kind := "const"
			if strings.Contains(m[5], "=>") || strings.HasPrefix(strings.TrimSpace(m[5]), "function") {
				kind = "fn"
			}
			out = append(out, envelope.SymbolEntry{Kind: kind, Name: m[3], Line: lineNo, Visibility: exportVis(m[2]), Signature: trimSignature(line)})
		} else if len(classStack) > 0 {
			if m := tsMethodRe.FindStringSubmatch(line); m != nil && !isControlKeyword(m[2]) {
				parent := classStack[len(classStack)-1]
				out = append(out, envelope.SymbolEntry{
					Kind: "method", Name: m[2], Line: lineNo, Parent: parent.name,
					Signature: trimSignature(line),
				})
			}
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		for len(classStack) > 0 && depth <= classStack[len(classStack)-1].depth {
			classStack = classStack[:len(classStack)-1]
		}
	}
	return out
}

func exportVis(modifier string) string {
	if strings.TrimSpace(modifier) == "" {
		return ""
	}
	return "export"
}

func isControlKeyword(name string) bool {
	switch name {
	case "if", "for", "while", "switch", "catch", "function", "return":
		return true
	}
	return false
}
