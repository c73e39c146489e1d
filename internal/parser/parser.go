// Package parser recognizes Python 3 source over the token stream produced by
// internal/lexer and reports the first grammar defect.
//
// The recognizer builds no tree. Expression parsers return a small shape
// (see expr) that is just enough to reject invalid assignment, deletion and
// keyword-argument targets the way CPython's ast.parse does. The Python 2
// print and exec statements are accepted because the lexer reserves both words.
package parser

import (
	"slices"

	"pycheck/internal/diag"
	"pycheck/internal/source"
	"pycheck/internal/token"
)

const (
	msgInvalidSyntax = "invalid syntax"
	msgUnexpectedEOF = "unexpected EOF while parsing"
	msgTooDeep       = "too many nested parentheses"

	defaultMaxNesting = 200
)

type Options struct {
	// MaxNesting caps bracket nesting; 0 means 200.
	MaxNesting int
}

// Grammar is the native Python grammar. It satisfies the driver's parser
// contract and keeps no state between calls.
type Grammar struct {
	opts Options
}

// NewGrammar returns a grammar with the given limits.
func NewGrammar(opts Options) *Grammar {
	return &Grammar{opts: opts}
}

// Check parses tokens (as returned by lexer.Tokenize for file) and returns
// the first defect, or nil when the stream is a valid module.
func (g *Grammar) Check(_ *source.File, tokens []token.Token) (*diag.Diagnostic, error) {
	return Parse(tokens, g.opts), nil
}

// Parse recognizes one module. The stream must end with EOF.
func Parse(tokens []token.Token, opts Options) *diag.Diagnostic {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != token.EOF {
		tokens = append(slices.Clip(tokens), token.Token{Kind: token.EOF})
	}
	if opts.MaxNesting <= 0 {
		opts.MaxNesting = defaultMaxNesting
	}
	p := Parser{toks: tokens, opts: opts}
	return p.run()
}

// Parser: состояние разбора одного потока токенов.
type Parser struct {
	toks    []token.Token
	pos     int
	opts    Options
	nesting int
	found   *diag.Diagnostic
}

// bailout прерывает разбор на первой ошибке; ловится в run и attempt.
type bailout struct{}

func (p *Parser) run() (d *diag.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			d = p.found
		}
	}()
	p.parseModule()
	return nil
}

// attempt runs fn speculatively and rewinds the stream either way.
// It reports whether fn finished without a defect.
func (p *Parser) attempt(fn func()) (ok bool) {
	pos, nesting := p.pos, p.nesting
	defer func() {
		p.pos, p.nesting = pos, nesting
		if r := recover(); r != nil {
			if _, isBail := r.(bailout); !isBail {
				panic(r)
			}
			p.found = nil
			ok = false
		}
	}()
	fn()
	return true
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekAt смотрит на n токенов вперёд; за концом потока всегда EOF.
func (p *Parser) peekAt(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atOp(op string) bool { return p.peek().IsOp(op) }

func (p *Parser) atOps(ops ...string) bool {
	tok := p.peek()
	return tok.Kind == token.Op && slices.Contains(ops, tok.Text)
}

// atKw matches a reserved word; soft keywords go through atSoft.
func (p *Parser) atKw(kw string) bool {
	tok := p.peek()
	return tok.Kind == token.Keyword && tok.Text == kw
}

func (p *Parser) atSoft(word string) bool {
	tok := p.peek()
	return tok.Kind == token.Name && tok.Text == word
}

func (p *Parser) eatOp(op string) bool {
	if p.atOp(op) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) eatKw(kw string) bool {
	if p.atKw(kw) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectOp(op string) token.Token {
	if !p.atOp(op) {
		p.unexpected()
	}
	return p.advance()
}

func (p *Parser) expectKw(kw string) token.Token {
	if !p.atKw(kw) {
		p.unexpected()
	}
	return p.advance()
}

func (p *Parser) expect(k token.Kind) token.Token {
	if !p.at(k) {
		p.unexpected()
	}
	return p.advance()
}

// expectName съедает идентификатор; print и exec в Python 3 тоже имена.
func (p *Parser) expectName() token.Token {
	if !isName(p.peek()) {
		p.unexpected()
	}
	return p.advance()
}

func isName(tok token.Token) bool {
	switch tok.Kind {
	case token.Name:
		return true
	case token.Keyword:
		return tok.Text == "print" || tok.Text == "exec"
	}
	return false
}

// unexpected reports the current token as the point of failure.
func (p *Parser) unexpected() {
	tok := p.peek()
	if tok.Kind == token.EOF {
		p.fail(tok, diag.SynUnexpectedEOF, msgUnexpectedEOF)
	}
	p.fail(tok, diag.SynInvalidSyntax, msgInvalidSyntax)
}

func (p *Parser) fail(tok token.Token, code diag.Code, msg string) {
	if p.found == nil {
		d := diag.NewError(code, tok.Span, msg)
		p.found = &d
	}
	panic(bailout{})
}

// openBracket/closeBracket считают вложенность скобок для защиты стека.
func (p *Parser) openBracket() token.Token {
	tok := p.advance()
	p.nesting++
	if p.nesting > p.opts.MaxNesting {
		p.fail(tok, diag.SynTooDeep, msgTooDeep)
	}
	return tok
}

func (p *Parser) closeBracket(op string) {
	p.expectOp(op)
	p.nesting--
}
