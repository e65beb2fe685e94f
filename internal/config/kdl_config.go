package config

import (
	"fmt"
	"os"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// FileConfig is the subset of .codescan.kdl this scanner understands:
// additional exclusions, additional recognized extensions, and an
// override of the "use built-in defaults" behavior. Per-invocation
// settings (--dir, --pad, --format, ...) stay CLI-only and out of the
// file format entirely.
type FileConfig struct {
	Exclude    []string
	Extensions []string
	NoDefaults bool
}

// LoadFileConfig reads path (typically ".codescan.kdl" in the scan
// root). A missing file is not an error; it returns a zero FileConfig.
func LoadFileConfig(path string) (*FileConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	doc, err := kdl.Parse(strings.NewReader(string(content)))
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := &FileConfig{}
	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "exclude":
			cfg.Exclude = append(cfg.Exclude, collectStringArgs(n)...)
		case "extensions":
			cfg.Extensions = append(cfg.Extensions, collectStringArgs(n)...)
		case "no-defaults", "no_defaults":
			if b, ok := firstBoolArg(n); ok {
				cfg.NoDefaults = b
			} else {
				cfg.NoDefaults = true
			}
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

// collectStringArgs pulls string values either from inline arguments
// (`exclude "vendor" "dist"`) or from block-form children
// (`exclude { vendor; dist; }`), matching the two forms KDL allows.
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}

	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}
