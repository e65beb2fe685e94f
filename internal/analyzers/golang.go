package analyzers

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/standardbeagle/codescan/internal/envelope"
)

// GoAnalyzer handles .go files: module-prefixed import resolution
// (requires walking up to the nearest go.mod, memoized per scan) and
// fn/method/struct/interface/type/const/var symbol extraction.
type GoAnalyzer struct {
	mu      sync.Mutex
	modules map[string]string // directory -> "modulePath\x00goModDir" ("" if none), one-shot per directory
}

// NewGoAnalyzer builds a fresh analyzer with an empty go.mod cache. A new
// instance must be created per scan (via Registry) so the memoization
// never outlives one invocation.
func NewGoAnalyzer() *GoAnalyzer {
	return &GoAnalyzer{modules: make(map[string]string)}
}

func (*GoAnalyzer) Extensions() []string { return []string{".go"} }

var (
	goImportSingleRe = regexp.MustCompile(`^\s*import\s+"([^"]+)"`)
	goImportGroupRe  = regexp.MustCompile(`^\s*"([^"]+)"`)
	goImportBlockRe  = regexp.MustCompile(`^\s*import\s*\(`)
	goModuleLineRe   = regexp.MustCompile(`^module\s+(\S+)`)

	goFuncRe    = regexp.MustCompile(`^func\s+(?:\(([A-Za-z_][A-Za-z0-9_]*)\s+\*?([A-Za-z_][A-Za-z0-9_]*)\)\s+)?([A-Za-z_][A-Za-z0-9_]*)`)
	goStructRe  = regexp.MustCompile(`^type\s+([A-Za-z_][A-Za-z0-9_]*)\s+struct\b`)
	goIfaceRe   = regexp.MustCompile(`^type\s+([A-Za-z_][A-Za-z0-9_]*)\s+interface\b`)
	goTypeRe    = regexp.MustCompile(`^type\s+([A-Za-z_][A-Za-z0-9_]*)\s+\S`)
	goConstRe   = regexp.MustCompile(`^const\s+([A-Za-z_][A-Za-z0-9_]*)`)
	goVarRe     = regexp.MustCompile(`^var\s+([A-Za-z_][A-Za-z0-9_]*)`)
)

// ExtractImports recognizes both `import "path"` and grouped
// `import (\n  "path"\n)` forms, keeping only paths under the file's
// module prefix, and yields the directory-form reference
// "{goModDir}/{relativeDir}/", where goModDir is the go.mod directory in
// the same form (absolute or relative) as filePath.
func (a *GoAnalyzer) ExtractImports(content, filePath string) []ImportRef {
	modPath, modDir, ok := a.moduleFor(filePath)
	if !ok {
		return nil
	}

	var refs []ImportRef
	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		if goImportBlockRe.MatchString(line) {
			inBlock = true
			continue
		}
		if inBlock {
			if strings.TrimSpace(line) == ")" {
				inBlock = false
				continue
			}
			if m := goImportGroupRe.FindStringSubmatch(line); m != nil {
				if ref, ok := a.resolveGoImport(m[1], modPath, modDir); ok {
					refs = append(refs, ref)
				}
			}
			continue
		}
		if m := goImportSingleRe.FindStringSubmatch(line); m != nil {
			if ref, ok := a.resolveGoImport(m[1], modPath, modDir); ok {
				refs = append(refs, ref)
			}
		}
	}
	return refs
}

func (a *GoAnalyzer) resolveGoImport(importPath, modPath, modDir string) (ImportRef, bool) {
	if importPath != modPath && !strings.HasPrefix(importPath, modPath+"/") {
		return "", false
	}
	rel := strings.TrimPrefix(strings.TrimPrefix(importPath, modPath), "/")
	dir := path.Join(filepath.ToSlash(modDir), rel)
	return ImportRef(strings.TrimSuffix(dir, "/") + "/"), true
}

// moduleFor walks up from filePath's directory to the nearest go.mod,
// memoizing the result per directory for the lifetime of this analyzer
// (one scan).
func (a *GoAnalyzer) moduleFor(filePath string) (modPath, modDir string, ok bool) {
	dir := path.Dir(filePath)

	a.mu.Lock()
	if cached, found := a.modules[dir]; found {
		a.mu.Unlock()
		if cached == "" {
			return "", "", false
		}
		parts := strings.SplitN(cached, "\x00", 2)
		return parts[0], parts[1], true
	}
	a.mu.Unlock()

	searchDir := dir
	for {
		data, err := os.ReadFile(filepath.Join(filepath.FromSlash(searchDir), "go.mod"))
		if err == nil {
			if m := goModuleLineRe.FindSubmatch(data); m != nil {
				mod := string(m[1])
				a.mu.Lock()
				a.modules[dir] = mod + "\x00" + searchDir
				a.mu.Unlock()
				return mod, searchDir, true
			}
		}
		parent := path.Dir(searchDir)
		if parent == searchDir {
			break
		}
		searchDir = parent
	}
	a.mu.Lock()
	a.modules[dir] = ""
	a.mu.Unlock()
	return "", "", false
}

// ExtractSymbols recognizes top-level fn/method/struct/interface/type/
// const/var declarations. An uppercase initial letter infers "pub"
// visibility; lowercase leaves Visibility unset.
func (*GoAnalyzer) ExtractSymbols(content string) []envelope.SymbolEntry {
	var out []envelope.SymbolEntry
	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1
		switch {
		case goFuncRe.MatchString(line):
			m := goFuncRe.FindStringSubmatch(line)
			name := m[3]
			kind := "fn"
			var parent string
			if m[2] != "" {
				kind = "method"
				parent = strings.TrimPrefix(m[2], "*")
			}
			out = append(out, envelope.SymbolEntry{Kind: kind, Name: name, Line: lineNo, Visibility: goVisibility(name), Parent: parent, Signature: trimSignature(line)})
		case goStructRe.MatchString(line):
			m := goStructRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "struct", Name: m[1], Line: lineNo, Visibility: goVisibility(m[1]), Signature: trimSignature(line)})
		case goIfaceRe.MatchString(line):
			m := goIfaceRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "interface", Name: m[1], Line: lineNo, Visibility: goVisibility(m[1]), Signature: trimSignature(line)})
		case goTypeRe.MatchString(line):
			m := goTypeRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "type", Name: m[1], Line: lineNo, Visibility: goVisibility(m[1]), Signature: trimSignature(line)})
		case goConstRe.MatchString(line):
			m := goConstRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "const", Name: m[1], Line: lineNo, Visibility: goVisibility(m[1]), Signature: trimSignature(line)})
		case goVarRe.MatchString(line):
			m := goVarRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "var", Name: m[1], Line: lineNo, Visibility: goVisibility(m[1]), Signature: trimSignature(line)})
		}
	}
	return out
}

func goVisibility(name string) string {
	if name == "" {
		return ""
	}
	r := name[0]
	if r >= 'A' && r <= 'Z' {
		return "pub"
	}
	return ""
}
