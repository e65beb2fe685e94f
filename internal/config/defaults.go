// Package config supplies the scanner's external configuration: the
// default exclusion set, the recognized source extensions, and the
// exclusion filter that evaluates them against a directory walk.
package config

// DefaultExcludedNames is the built-in set of directory/file basenames
// pruned from every scan unless --no-defaults is given.
var DefaultExcludedNames = []string{
	".git", ".hg", ".svn", ".jj",
	"node_modules", "bower_components",
	"vendor", "target", "dist", "build", "out", "bin", "obj",
	".venv", "venv", "__pycache__", ".mypy_cache", ".pytest_cache", ".tox",
	".idea", ".vscode", ".vs",
	".next", ".nuxt", ".cache", ".parcel-cache",
	"coverage", ".gradle",
}

// DefaultSourceExtensions is the built-in recognized-source-extensions
// set used by tree, stats, and symbol modes. Dotted, lower case.
var DefaultSourceExtensions = []string{
	".go", ".rs",
	".py",
	".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs",
	".java", ".kt", ".kts",
	".rb",
	".cs",
	".c", ".h", ".cc", ".cpp", ".cxx", ".hpp",
	".php",
	".swift", ".scala", ".m", ".mm",
	".sh", ".sql",
	".md",
}
