// Package output implements the structured output emitter: one pass
// over an OutputEnvelope that writes either YAML (default) or JSON.
package output

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/standardbeagle/codescan/internal/envelope"
)

// Format selects the serialization the writer emits.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Write serializes env in the requested format to w. JSON reuses the
// envelope's own `json:"camelCase"` struct tags via encoding/json; YAML
// is built through a yaml.Node tree (see buildEnvelopeNode) rather than
// a plain yaml.Marshal(env), so multi-line content/signature fields
// render as literal block scalars instead of escaped double-quoted
// strings.
func Write(w io.Writer, env *envelope.OutputEnvelope, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	default:
		node := buildEnvelopeNode(env)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return err
		}
		return enc.Close()
	}
}

func buildEnvelopeNode(env *envelope.OutputEnvelope) *yaml.Node {
	m := newMap()
	putKV(m, "meta", buildMetaNode(&env.Meta))
	if env.Tree != nil {
		putKV(m, "tree", buildScanResultNode(env.Tree))
	}
	if len(env.Files) > 0 {
		putKV(m, "files", buildFileEntriesNode(env.Files))
	}
	if len(env.Graph) > 0 {
		putKV(m, "graph", buildGraphNode(env.Graph))
	}
	if len(env.Symbols) > 0 {
		putKV(m, "symbols", buildFileEntriesNode(env.Symbols))
	}
	if env.Stats != nil {
		putKV(m, "stats", buildStatsNode(env.Stats))
	}
	if env.Error != "" {
		putKV(m, "error", strNode(env.Error))
	}
	return m
}

func buildMetaNode(meta *envelope.MetaInfo) *yaml.Node {
	m := newMap()
	putKV(m, "elapsedMs", intNode(meta.ElapsedMs))
	if meta.Timeout {
		putKV(m, "timeout", boolNode(true))
	}
	if meta.FilesScanned != 0 {
		putKV(m, "filesScanned", intNode(int64(meta.FilesScanned)))
	}
	if meta.FilesMatched != 0 {
		putKV(m, "filesMatched", intNode(int64(meta.FilesMatched)))
	}
	if meta.TotalMatches != 0 {
		putKV(m, "totalMatches", intNode(int64(meta.TotalMatches)))
	}
	if meta.ScanID != "" {
		putKV(m, "scanID", strNode(meta.ScanID))
	}
	return m
}

func buildScanResultNode(n *envelope.ScanResult) *yaml.Node {
	m := newMap()
	putKV(m, "name", strNode(n.Name))
	if len(n.Children) > 0 {
		seq := newSeq()
		for i := range n.Children {
			seq.Content = append(seq.Content, buildScanResultNode(&n.Children[i]))
		}
		putKV(m, "children", seq)
	}
	if len(n.Files) > 0 {
		putKV(m, "files", strSeqNode(n.Files))
	}
	return m
}

func buildFileEntriesNode(entries []envelope.FileEntry) *yaml.Node {
	seq := newSeq()
	for i := range entries {
		seq.Content = append(seq.Content, buildFileEntryNode(&entries[i]))
	}
	return seq
}

func buildFileEntryNode(e *envelope.FileEntry) *yaml.Node {
	m := newMap()
	putKV(m, "path", strNode(e.Path))
	if e.Language != "" {
		putKV(m, "language", strNode(e.Language))
	}
	switch {
	case e.Error != "":
		putKV(m, "error", strNode(e.Error))
	case e.Count != nil:
		putKV(m, "count", intNode(int64(*e.Count)))
	case len(e.Symbols) > 0:
		seq := newSeq()
		for i := range e.Symbols {
			seq.Content = append(seq.Content, buildSymbolNode(&e.Symbols[i]))
		}
		putKV(m, "symbols", seq)
	case e.Contents != "":
		putKV(m, "contents", blockScalar(e.Contents))
	case len(e.Chunks) > 0:
		seq := newSeq()
		for i := range e.Chunks {
			seq.Content = append(seq.Content, buildChunkNode(&e.Chunks[i]))
		}
		putKV(m, "chunks", seq)
	}
	return m
}

func buildChunkNode(c *envelope.FileChunk) *yaml.Node {
	m := newMap()
	putKV(m, "startLine", intNode(int64(c.StartLine)))
	putKV(m, "endLine", intNode(int64(c.EndLine)))
	putKV(m, "content", blockScalar(c.Content))
	return m
}

func buildSymbolNode(s *envelope.SymbolEntry) *yaml.Node {
	m := newMap()
	putKV(m, "kind", strNode(s.Kind))
	putKV(m, "name", strNode(s.Name))
	putKV(m, "line", intNode(int64(s.Line)))
	if s.Visibility != "" {
		putKV(m, "visibility", strNode(s.Visibility))
	}
	if s.Parent != "" {
		putKV(m, "parent", strNode(s.Parent))
	}
	putKV(m, "signature", blockScalar(s.Signature))
	return m
}

func buildGraphNode(entries []envelope.GraphEntry) *yaml.Node {
	seq := newSeq()
	for _, g := range entries {
		m := newMap()
		putKV(m, "file", strNode(g.File))
		putKV(m, "imports", strSeqNode(g.Imports))
		seq.Content = append(seq.Content, m)
	}
	return seq
}

func buildStatsNode(s *envelope.StatsResult) *yaml.Node {
	m := newMap()
	langSeq := newSeq()
	for _, l := range s.Languages {
		lm := newMap()
		putKV(lm, "extension", strNode(l.Extension))
		putKV(lm, "files", intNode(int64(l.Files)))
		putKV(lm, "lines", intNode(l.Lines))
		putKV(lm, "bytes", intNode(l.Bytes))
		langSeq.Content = append(langSeq.Content, lm)
	}
	putKV(m, "languages", langSeq)

	tm := newMap()
	putKV(tm, "files", intNode(int64(s.Totals.Files)))
	putKV(tm, "lines", intNode(s.Totals.Lines))
	putKV(tm, "bytes", intNode(s.Totals.Bytes))
	putKV(m, "totals", tm)

	if len(s.Largest) > 0 {
		lgSeq := newSeq()
		for _, f := range s.Largest {
			fm := newMap()
			putKV(fm, "path", strNode(f.Path))
			putKV(fm, "bytes", intNode(f.Bytes))
			lgSeq.Content = append(lgSeq.Content, fm)
		}
		putKV(m, "largest", lgSeq)
	}
	return m
}

// --- yaml.Node construction helpers ---

func newMap() *yaml.Node  { return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"} }
func newSeq() *yaml.Node  { return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"} }

func putKV(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, keyNode(key), value)
}

// keyNode builds a plain scalar for a map key. Our keys are all fixed
// identifiers (never user data), so no quoting rule ever applies to
// them; quoting only matters for value scalars carrying scanned text.
func keyNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

// strNode builds a scalar for a value that may be arbitrary scanned
// text (a path, symbol name, error message, ...). Style is left at 0
// (auto) so the encoder's own resolver quotes only when it must: a
// leading -, [, {, *, &, ?, #, a colon or # inside, or a bare
// true/false/null/yes/no in any casing.
func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// blockScalar forces literal block style ("|") for multi-line content.
// Single-line values fall back to the normal auto-quoted scalar.
func blockScalar(s string) *yaml.Node {
	n := strNode(s)
	if strings.Contains(s, "\n") {
		n.Style = yaml.LiteralStyle
	}
	return n
}

func intNode(v int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v, 10)}
}

func boolNode(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}

func strSeqNode(items []string) *yaml.Node {
	seq := newSeq()
	for _, s := range items {
		seq.Content = append(seq.Content, strNode(s))
	}
	return seq
}
