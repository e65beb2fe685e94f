// Build artifact detection from language-specific configuration files:
// parses Cargo.toml / pyproject.toml to find declared output
// directories, and scans package.json / vite.config.* for an outDir
// hint, folding whatever it finds into the exclusion set so a custom
// build directory is pruned even when the caller never names it.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DetectBuildExclusions scans known build-configuration files under root
// and returns the directory basenames they declare as build output.
func DetectBuildExclusions(root string) []string {
	var names []string
	names = append(names, detectRustOutputs(root)...)
	names = append(names, detectPythonOutputs(root)...)
	names = append(names, detectJavaScriptOutputs(root)...)
	return dedupe(names)
}

func detectRustOutputs(root string) []string {
	var names []string
	data, err := os.ReadFile(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		return nil
	}
	var cargo map[string]any
	if toml.Unmarshal(data, &cargo) != nil {
		return nil
	}
	if profile, ok := cargo["profile"].(map[string]any); ok {
		if release, ok := profile["release"].(map[string]any); ok {
			if dir, ok := release["target-dir"].(string); ok {
				names = append(names, baseName(dir))
			}
		}
	}
	return names
}

func detectPythonOutputs(root string) []string {
	var names []string
	data, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	if err != nil {
		return nil
	}
	var proj map[string]any
	if toml.Unmarshal(data, &proj) != nil {
		return nil
	}
	if tool, ok := proj["tool"].(map[string]any); ok {
		if poetry, ok := tool["poetry"].(map[string]any); ok {
			if build, ok := poetry["build"].(map[string]any); ok {
				if dir, ok := build["target-dir"].(string); ok {
					names = append(names, baseName(dir))
				}
			}
		}
	}
	return names
}

// detectJavaScriptOutputs needs no third-party dependency:
// package.json/tsconfig.json are decoded with encoding/json and
// vite.config.* is probed for an outDir hint with a plain string scan.
func detectJavaScriptOutputs(root string) []string {
	var names []string

	if data, err := os.ReadFile(filepath.Join(root, "package.json")); err == nil {
		var pkg map[string]any
		if json.Unmarshal(data, &pkg) == nil {
			if build, ok := pkg["build"].(map[string]any); ok {
				if dir, ok := build["outDir"].(string); ok {
					names = append(names, baseName(dir))
				}
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join(root, "tsconfig.json")); err == nil {
		var tsconfig map[string]any
		if json.Unmarshal(data, &tsconfig) == nil {
			if co, ok := tsconfig["compilerOptions"].(map[string]any); ok {
				if dir, ok := co["outDir"].(string); ok {
					names = append(names, baseName(dir))
				}
			}
		}
	}

	for _, vite := range []string{"vite.config.js", "vite.config.ts"} {
		data, err := os.ReadFile(filepath.Join(root, vite))
		if err != nil {
			continue
		}
		content := string(data)
		idx := strings.Index(content, "outDir")
		if idx == -1 {
			continue
		}
		substr := content[idx+len("outDir"):]
		colon := strings.Index(substr, ":")
		if colon == -1 {
			continue
		}
		substr = substr[colon+1:]
		for _, quote := range []string{"'", "\""} {
			parts := strings.SplitN(substr, quote, 3)
			if len(parts) >= 3 {
				names = append(names, baseName(strings.TrimSpace(parts[1])))
				break
			}
		}
	}

	return names
}

func baseName(dir string) string {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return ""
	}
	return filepath.Base(dir)
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
