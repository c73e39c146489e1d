package parser

import (
	"pycheck/internal/diag"
	"pycheck/internal/token"
)

// paramList tracks ordering rules of a def or lambda parameter list.
type paramList struct {
	count      int
	sawDefault bool
	sawSlash   bool
	star       *token.Token // '*' или '*args'
	bareStar   bool
	afterStar  int
	sawKwargs  bool
}

// parseParams reads parameters up to closer (')' for def, ':' for lambda).
// annotations enables "name: expr".
func (p *Parser) parseParams(closer string, annotations bool) {
	var pl paramList
	for !p.atOp(closer) {
		if pl.sawKwargs {
			// после **kwargs допустима только закрывающая скобка
			p.unexpected()
		}
		tok := p.peek()
		switch {
		case p.eatOp("/"):
			switch {
			case pl.count == 0:
				p.fail(tok, diag.SynInvalidParams, "at least one argument must precede /")
			case pl.sawSlash:
				p.fail(tok, diag.SynInvalidParams, "/ may appear only once")
			case pl.star != nil:
				p.fail(tok, diag.SynInvalidParams, "/ must be ahead of *")
			}
			pl.sawSlash = true
		case p.eatOp("*"):
			if pl.star != nil {
				p.fail(tok, diag.SynInvalidParams, "* argument may appear only once")
			}
			pl.star = &tok
			if isName(p.peek()) {
				p.advance()
				if annotations && p.eatOp(":") {
					p.parseTestOrStar()
				}
			} else {
				pl.bareStar = true
			}
		case p.eatOp("**"):
			p.expectName()
			if annotations && p.eatOp(":") {
				p.parseTest()
			}
			pl.sawKwargs = true
		default:
			name := p.expectName()
			if annotations && p.eatOp(":") {
				p.parseTest()
			}
			switch {
			case p.eatOp("="):
				p.parseTest()
				pl.sawDefault = true
			case pl.sawDefault && pl.star == nil:
				p.fail(name, diag.SynInvalidParams, "non-default argument follows default argument")
			}
			if pl.star != nil {
				pl.afterStar++
			}
		}
		pl.count++
		if !p.eatOp(",") {
			break
		}
	}
	if pl.bareStar && pl.afterStar == 0 {
		p.fail(*pl.star, diag.SynInvalidParams, "named arguments must follow bare *")
	}
}

// parseTypeParams: '[' (name [':' bound] | '*' name | '**' name), ... ']'.
func (p *Parser) parseTypeParams() {
	p.openBracket()
	if p.atOp("]") {
		p.unexpected()
	}
	for !p.atOp("]") {
		switch {
		case p.eatOp("*"), p.eatOp("**"):
			p.expectName()
		default:
			p.expectName()
			if p.eatOp(":") {
				p.parseTest()
			}
		}
		if !p.eatOp(",") {
			break
		}
	}
	p.closeBracket("]")
}
