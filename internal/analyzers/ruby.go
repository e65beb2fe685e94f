package analyzers

import (
	"path"
	"regexp"
	"strings"

	"github.com/standardbeagle/codescan/internal/envelope"
)

// RubyAnalyzer handles .rb files: require_relative resolution and
// class/module/def symbol extraction. Ruby has no braces, so nesting is
// tracked with a keyword/`end` stack rather than brace depth.
type RubyAnalyzer struct{}

func NewRubyAnalyzer() *RubyAnalyzer { return &RubyAnalyzer{} }

func (RubyAnalyzer) Extensions() []string { return []string{".rb"} }

var (
	rbRequireRelativeRe = regexp.MustCompile(`^\s*require_relative\s+['"]([^'"]+)['"]`)
	rbRequireRe         = regexp.MustCompile(`^\s*require\s+['"]([^'"]+)['"]`)
	rbClassRe           = regexp.MustCompile(`^(\s*)class\s+([A-Za-z_][A-Za-z0-9_:]*)`)
	rbModuleRe          = regexp.MustCompile(`^(\s*)module\s+([A-Za-z_][A-Za-z0-9_:]*)`)
	rbDefRe             = regexp.MustCompile(`^(\s*)def\s+(?:self\.)?([A-Za-z_][A-Za-z0-9_!?=]*)`)
	rbOpenerRe          = regexp.MustCompile(`^\s*(?:class|module|def|if|unless|while|until|case|begin|do)\b`)
	rbEndRe             = regexp.MustCompile(`^\s*end\b`)
)

// ExtractImports resolves `require_relative './x'` against the file's
// directory. A plain `require 'x'` names a gem or a load-path-relative
// file the project file set generally won't contain, so it is recorded
// as a bare top-level candidate only.
func (RubyAnalyzer) ExtractImports(content, filePath string) []ImportRef {
	dir := path.Dir(filePath)
	var refs []ImportRef
	for _, line := range strings.Split(content, "\n") {
		if m := rbRequireRelativeRe.FindStringSubmatch(line); m != nil {
			refs = append(refs, ImportRef(path.Clean(path.Join(dir, m[1]))+".rb"))
			continue
		}
		if m := rbRequireRe.FindStringSubmatch(line); m != nil {
			refs = append(refs, ImportRef(m[1]+".rb"))
		}
	}
	return refs
}

// ExtractSymbols maintains a stack of (kind, name) frames pushed by
// class/module/def openers and popped by a matching `end`, since Ruby
// has no brace nesting to track by depth.
func (RubyAnalyzer) ExtractSymbols(content string) []envelope.SymbolEntry {
	var out []envelope.SymbolEntry
	type frame struct {
		kind, name string
	}
	var stack []frame

	parentClassOrModule := func() string {
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].kind == "class" || stack[i].kind == "mod" {
				return stack[i].name
			}
		}
		return ""
	}

	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1
		switch {
		case rbClassRe.MatchString(line):
			m := rbClassRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "class", Name: m[2], Line: lineNo, Signature: trimSignature(line)})
			stack = append(stack, frame{kind: "class", name: m[2]})
		case rbModuleRe.MatchString(line):
			m := rbModuleRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "mod", Name: m[2], Line: lineNo, Signature: trimSignature(line)})
			stack = append(stack, frame{kind: "mod", name: m[2]})
		case rbDefRe.MatchString(line):
			m := rbDefRe.FindStringSubmatch(line)
			kind := "fn"
			parent := parentClassOrModule()
			if parent != "" {
				kind = "method"
			}
			out = append(out, envelope.SymbolEntry{Kind: kind, Name: m[2], Line: lineNo, Parent: parent, Signature: trimSignature(line)})
			stack = append(stack, frame{kind: "def"})
		case rbEndRe.MatchString(line):
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case rbOpenerRe.MatchString(line):
			stack = append(stack, frame{kind: "block"})
		}
	}
	return out
}
