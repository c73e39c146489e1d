// Package grammar parses Python source with the tree-sitter Python grammar and
// reports the first defect the parser recovered from.
//
// Tree-sitter never fails: it recovers and returns a tree with ERROR and
// MISSING nodes, and sometimes a clean-looking tree that silently dropped a
// token. Check keeps the earliest of the failure point inside an ERROR node,
// a silent defect and a significant token that no leaf covers.
package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/odvcencio/gotreesitter"
	"github.com/odvcencio/gotreesitter/grammars"

	"pycheck/internal/diag"
	"pycheck/internal/source"
	"pycheck/internal/token"
)

const invalidSyntax = "invalid syntax"

// Python is the tree-sitter backend of the driver's parser contract. One
// value holds one tree-sitter parser and must not be used concurrently.
type Python struct {
	entry  grammars.LangEntry
	lang   *gotreesitter.Language
	parser *gotreesitter.Parser
}

// NewPython loads the tree-sitter Python grammar.
func NewPython() (*Python, error) {
	entry := grammars.DetectLanguage("main.py")
	if entry == nil {
		return nil, fmt.Errorf("python grammar is not registered")
	}
	lang := entry.Language()
	if lang == nil {
		return nil, fmt.Errorf("language loader returned nil for %q", entry.Name)
	}
	return &Python{
		entry:  *entry,
		lang:   lang,
		parser: gotreesitter.NewParser(lang),
	}, nil
}

// Check parses file and returns its earliest defect, or nil when the tree is
// clean and covers every significant token. The tree is released before
// Check returns.
func (p *Python) Check(file *source.File, tokens []token.Token) (*diag.Diagnostic, error) {
	if len(file.Content) == 0 {
		return nil, nil
	}

	tree, err := p.parseTree(file.Content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file.Path, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("parse %s: parser returned no tree", file.Path)
	}
	defer tree.Release()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parse %s: parser returned an empty tree", file.Path)
	}

	found := earliest(p.locate(root), p.silentDefect(root), uncovered(root, file, tokens))
	if found == nil && root.HasError() {
		// дерево помечено, но дефект не нашли: не пропускаем файл
		found = nodeDefect(root, false, "")
	}
	if found == nil {
		return nil, nil
	}
	return found.diagnostic(file), nil
}

func (p *Python) parseTree(src []byte) (*gotreesitter.Tree, error) {
	if p.entry.TokenSourceFactory != nil {
		if ts := p.entry.TokenSourceFactory(src, p.lang); ts != nil {
			return p.parser.ParseWithTokenSource(src, ts)
		}
	}
	return p.parser.Parse(src)
}

// defect is a byte range of the file plus what went wrong there.
type defect struct {
	start, end uint32
	missing    string // тип вставленного узла для MISSING
}

func nodeDefect(n *gotreesitter.Node, missing bool, typ string) *defect {
	d := &defect{start: n.StartByte(), end: n.EndByte()}
	if missing {
		d.missing = typ
	}
	return d
}

// locate walks children in source order and returns the first defect under
// n. Subtrees without errors are skipped.
func (p *Python) locate(n *gotreesitter.Node) *defect {
	switch {
	case n.IsMissing():
		return nodeDefect(n, true, n.Type(p.lang))
	case n.IsError():
		return p.failurePoint(n)
	case !n.HasError():
		return nil
	}
	for _, child := range n.Children() {
		if d := p.locate(child); d != nil {
			return d
		}
	}
	return nil
}

// failurePoint finds where parsing actually broke inside an ERROR node.
// Recovery often folds the good statements before the failure into the same
// ERROR node, so its own start can be several lines too early: complete
// statements are skipped and the first remaining child is the culprit.
func (p *Python) failurePoint(errNode *gotreesitter.Node) *defect {
	for _, child := range errNode.Children() {
		if p.isCompleteStatement(child) {
			continue
		}
		if child.IsError() || child.IsMissing() || child.HasError() {
			if d := p.locate(child); d != nil {
				return d
			}
		}
		return nodeDefect(child, false, "")
	}
	return nodeDefect(errNode, false, "")
}

func (p *Python) isCompleteStatement(n *gotreesitter.Node) bool {
	if n.IsError() || n.IsMissing() || n.HasError() || !n.IsNamed() {
		return false
	}
	switch typ := n.Type(p.lang); typ {
	case "assignment", "augmented_assignment", "comment":
		return true
	default:
		return strings.HasSuffix(typ, "_statement") || strings.HasSuffix(typ, "_definition")
	}
}

// silentDefect finds defects that do not mark their ancestors with an
// error: MISSING leaves and assignment targets standing alone as statements,
// which is what recovery leaves behind for "x = = 1".
func (p *Python) silentDefect(root *gotreesitter.Node) *defect {
	var found *defect
	gotreesitter.Walk(root, func(n *gotreesitter.Node, _ int) gotreesitter.WalkAction {
		var cand *defect
		switch {
		case n.IsMissing():
			cand = nodeDefect(n, true, n.Type(p.lang))
		case p.isStrayPattern(n):
			cand = nodeDefect(n, false, "")
		}
		found = earliest(found, cand)
		return gotreesitter.WalkContinue
	})
	return found
}

func (p *Python) isStrayPattern(n *gotreesitter.Node) bool {
	switch n.Type(p.lang) {
	case "pattern", "pattern_list":
	default:
		return false
	}
	parent := n.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type(p.lang) {
	case "module", "block":
		return true
	}
	return false
}

// earliest keeps the defect with the lowest start; ties go to the first one.
func earliest(ds ...*defect) *defect {
	var best *defect
	for _, d := range ds {
		if d != nil && (best == nil || d.start < best.start) {
			best = d
		}
	}
	return best
}

// uncovered returns the first significant token that no tree leaf overlaps.
// Recovery may drop a token without leaving an ERROR node ("foo(1 2)").
func uncovered(root *gotreesitter.Node, file *source.File, tokens []token.Token) *defect {
	if len(tokens) == 0 {
		return nil
	}
	var leaves []source.Span
	gotreesitter.Walk(root, func(n *gotreesitter.Node, _ int) gotreesitter.WalkAction {
		if n.ChildCount() == 0 && n.EndByte() > n.StartByte() {
			leaves = append(leaves, source.Span{File: file.ID, Start: n.StartByte(), End: n.EndByte()})
		}
		return gotreesitter.WalkContinue
	})
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].Before(leaves[j]) })

	for _, tok := range tokens {
		if tok.IsStructural() || tok.Kind == token.Invalid {
			continue
		}
		// первый лист, заканчивающийся после начала токена
		i := sort.Search(len(leaves), func(i int) bool { return leaves[i].End > tok.Span.Start })
		if i == len(leaves) || !leaves[i].Overlaps(tok.Span) {
			return &defect{start: tok.Span.Start, end: tok.Span.End}
		}
	}
	return nil
}

func (d *defect) diagnostic(file *source.File) *diag.Diagnostic {
	span := source.Span{File: file.ID, Start: d.start, End: d.end}
	if d.missing == "" {
		out := diag.NewError(diag.SynInvalidSyntax, span, invalidSyntax)
		return &out
	}
	out := diag.NewError(diag.SynMissingToken, span, invalidSyntax).
		WithNote(span, fmt.Sprintf("expected %q", d.missing))
	return &out
}
