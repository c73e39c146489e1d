package parser

import (
	"pycheck/internal/diag"
	"pycheck/internal/token"
)

// matchAhead reports whether the soft keyword "match" at the cursor starts a
// match statement. The header is parsed speculatively: "match(x)" and
// "match = 1" remain ordinary expressions.
func (p *Parser) matchAhead() bool {
	return p.attempt(p.parseMatchHeader)
}

func (p *Parser) parseMatchHeader() {
	p.advance()
	p.parseNamedList()
	p.expectOp(":")
	p.expect(token.Newline)
	p.expect(token.Indent)
	if !p.atSoft("case") {
		p.unexpected()
	}
}

func (p *Parser) parseMatch() {
	p.parseMatchHeader()
	for {
		if !p.atSoft("case") {
			p.unexpected()
		}
		p.parseCase()
		if p.at(token.Dedent) {
			break
		}
	}
	p.expect(token.Dedent)
}

// case patterns ['if' guard] suite
func (p *Parser) parseCase() {
	p.advance()
	p.parseMaybeStarPattern()
	for p.eatOp(",") {
		if p.atOp(":") || p.atKw("if") {
			break
		}
		p.parseMaybeStarPattern()
	}
	if p.eatKw("if") {
		p.parseNamed()
	}
	p.parseSuite()
}

func (p *Parser) parseMaybeStarPattern() {
	if p.eatOp("*") {
		p.expectName()
		return
	}
	p.parsePattern()
}

// parsePattern: or_pattern ['as' capture].
func (p *Parser) parsePattern() {
	p.parseClosedPattern()
	for p.eatOp("|") {
		p.parseClosedPattern()
	}
	if p.eatKw("as") {
		if name := p.expectName(); name.Text == "_" {
			p.fail(name, diag.SynInvalidTarget, "cannot use '_' as a target")
		}
	}
}

func (p *Parser) parseClosedPattern() {
	tok := p.peek()
	switch {
	case tok.Kind == token.Number || tok.IsOp("-"):
		p.parseNumberPattern()
	case tok.Kind == token.String:
		p.parseStrings()
	case tok.Kind == token.Keyword && (tok.Text == "None" || tok.Text == "True" || tok.Text == "False"):
		p.advance()
	case isName(tok):
		// capture, wildcard, value (a.b.c) или класс
		p.advance()
		for p.eatOp(".") {
			p.expectName()
		}
		if p.atOp("(") {
			p.parseClassPattern()
		}
	case tok.IsOp("("):
		p.openBracket()
		p.parsePatternItems(")")
		p.closeBracket(")")
	case tok.IsOp("["):
		p.openBracket()
		p.parsePatternItems("]")
		p.closeBracket("]")
	case tok.IsOp("{"):
		p.parseMappingPattern()
	default:
		p.unexpected()
	}
}

// parseNumberPattern: ['-'] number [('+'|'-') number], the complex form
// "1 + 2j" included.
func (p *Parser) parseNumberPattern() {
	p.eatOp("-")
	p.parseNumberLiteral()
	if p.atOps("+", "-") {
		p.advance()
		p.parseNumberLiteral()
	}
}

func (p *Parser) parseNumberLiteral() {
	tok := p.expect(token.Number)
	if !validNumber(tok.Text) {
		p.fail(tok, diag.SynInvalidLiteral, msgInvalidSyntax)
	}
}

func (p *Parser) parsePatternItems(closer string) {
	for !p.atOp(closer) {
		p.parseMaybeStarPattern()
		if !p.eatOp(",") {
			return
		}
	}
}

// {key: pattern, ..., **rest}
func (p *Parser) parseMappingPattern() {
	p.openBracket()
	for !p.atOp("}") {
		if p.eatOp("**") {
			p.expectName()
			p.eatOp(",")
			break
		}
		p.parseClosedPattern()
		p.expectOp(":")
		p.parsePattern()
		if !p.eatOp(",") {
			break
		}
	}
	p.closeBracket("}")
}

// Cls(pos..., kw=pattern...)
func (p *Parser) parseClassPattern() {
	p.openBracket()
	sawKeyword := false
	for !p.atOp(")") {
		tok := p.peek()
		if isName(tok) && p.peekAt(1).IsOp("=") {
			p.advance()
			p.advance()
			p.parsePattern()
			sawKeyword = true
		} else {
			p.parsePattern()
			if sawKeyword {
				p.fail(tok, diag.SynInvalidSyntax, "positional patterns follow keyword patterns")
			}
		}
		if !p.eatOp(",") {
			break
		}
	}
	p.closeBracket(")")
}
