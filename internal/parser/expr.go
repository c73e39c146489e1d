package parser

import (
	"strings"

	"pycheck/internal/diag"
	"pycheck/internal/token"
)

// Уровни бинарных операторов от слабого к сильному (от '|' до '*').
var binaryLevels = [...][]string{
	{"|"},
	{"^"},
	{"&"},
	{"<<", ">>"},
	{"+", "-"},
	{"*", "/", "%", "//", "@"},
}

var compareOps = []string{"<", ">", "==", ">=", "<=", "!="}

// startsExpr reports whether tok can begin an expression.
func startsExpr(tok token.Token) bool {
	switch tok.Kind {
	case token.Name, token.Number, token.String:
		return true
	case token.Keyword:
		switch tok.Text {
		case "None", "True", "False", "not", "lambda", "await", "print", "exec":
			return true
		}
	case token.Op:
		switch tok.Text {
		case "(", "[", "{", "-", "+", "~", "*", "...":
			return true
		}
	}
	return false
}

func (p *Parser) atCompFor() bool {
	if p.atKw("for") {
		return true
	}
	next := p.peekAt(1)
	return p.atKw("async") && next.Kind == token.Keyword && next.Text == "for"
}

// parseNamed: test [':=' test].
func (p *Parser) parseNamed() expr {
	e := p.parseTest()
	if p.atOp(":=") {
		if e.kind != exprName {
			p.fail(e.tok, diag.SynInvalidTarget, "cannot use named assignment with "+e.kind.String())
		}
		p.advance()
		p.parseTest()
		return shape(exprNamed, e.tok)
	}
	return e
}

func (p *Parser) parseNamedOrStar() expr {
	if p.atOp("*") {
		return p.parseStarExpr()
	}
	return p.parseNamed()
}

func (p *Parser) parseTestOrStar() expr {
	if p.atOp("*") {
		return p.parseStarExpr()
	}
	return p.parseTest()
}

// parseTest: lambda | or_test ['if' or_test 'else' test].
func (p *Parser) parseTest() expr {
	if p.atKw("lambda") {
		return p.parseLambda(false)
	}
	e := p.parseOrTest()
	if p.eatKw("if") {
		p.parseOrTest()
		p.expectKw("else")
		p.parseTest()
		return shape(exprConditional, e.tok)
	}
	return e
}

// parseTestNoCond is the condition of a comprehension 'if' clause.
func (p *Parser) parseTestNoCond() expr {
	if p.atKw("lambda") {
		return p.parseLambda(true)
	}
	return p.parseOrTest()
}

func (p *Parser) parseLambda(noCond bool) expr {
	tok := p.expectKw("lambda")
	p.parseParams(":", false)
	p.expectOp(":")
	if noCond {
		p.parseTestNoCond()
	} else {
		p.parseTest()
	}
	return shape(exprLambda, tok)
}

func (p *Parser) parseOrTest() expr {
	e := p.parseAndTest()
	for p.eatKw("or") {
		p.parseAndTest()
		e = shape(exprOperator, e.tok)
	}
	return e
}

func (p *Parser) parseAndTest() expr {
	e := p.parseNotTest()
	for p.eatKw("and") {
		p.parseNotTest()
		e = shape(exprOperator, e.tok)
	}
	return e
}

func (p *Parser) parseNotTest() expr {
	if p.atKw("not") {
		tok := p.advance()
		p.parseNotTest()
		return shape(exprOperator, tok)
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() expr {
	e := p.parseBinary(0)
	for p.eatCompareOp() {
		p.parseBinary(0)
		e = shape(exprCompare, e.tok)
	}
	return e
}

func (p *Parser) eatCompareOp() bool {
	switch {
	case p.atOps(compareOps...), p.atKw("in"):
		p.advance()
	case p.atKw("not"):
		next := p.peekAt(1)
		if next.Kind != token.Keyword || next.Text != "in" {
			return false
		}
		p.advance()
		p.advance()
	case p.atKw("is"):
		p.advance()
		p.eatKw("not")
	default:
		return false
	}
	return true
}

// parseExpr is the bitwise-or level: the grammar's plain 'expr'.
func (p *Parser) parseExpr() expr { return p.parseBinary(0) }

func (p *Parser) parseBinary(level int) expr {
	if level == len(binaryLevels) {
		return p.parseFactor()
	}
	e := p.parseBinary(level + 1)
	for p.atOps(binaryLevels[level]...) {
		p.advance()
		p.parseBinary(level + 1)
		e = shape(exprOperator, e.tok)
	}
	return e
}

func (p *Parser) parseFactor() expr {
	if p.atOps("+", "-", "~") {
		tok := p.advance()
		p.parseFactor()
		return shape(exprOperator, tok)
	}
	e := p.parseAwaitPrimary()
	if p.eatOp("**") {
		p.parseFactor()
		return shape(exprOperator, e.tok)
	}
	return e
}

func (p *Parser) parseAwaitPrimary() expr {
	if p.atKw("await") {
		tok := p.advance()
		p.parsePrimary()
		return shape(exprAwait, tok)
	}
	return p.parsePrimary()
}

// parsePrimary: atom trailer*.
func (p *Parser) parsePrimary() expr {
	e := p.parseAtom()
	for {
		switch {
		case p.atOp("("):
			p.parseCallArgs()
			e = shape(exprCall, e.tok)
		case p.atOp("["):
			p.parseSubscripts()
			e = shape(exprSubscript, e.tok)
		case p.atOp("."):
			p.advance()
			p.expectName()
			e = shape(exprAttribute, e.tok)
		default:
			return e
		}
	}
}

func (p *Parser) parseStarExpr() expr {
	tok := p.expectOp("*")
	inner := p.parseExpr()
	e := shape(exprStarred, tok)
	e.bad = inner.badTarget()
	return e
}

func (p *Parser) parseAtom() expr {
	tok := p.peek()
	switch tok.Kind {
	case token.Name:
		p.advance()
		return shape(exprName, tok)
	case token.Number:
		if !validNumber(tok.Text) {
			p.fail(tok, diag.SynInvalidLiteral, msgInvalidSyntax)
		}
		p.advance()
		return shape(exprLiteral, tok)
	case token.String:
		return p.parseStrings()
	case token.Keyword:
		switch tok.Text {
		case "None":
			p.advance()
			return shape(exprNone, tok)
		case "True":
			p.advance()
			return shape(exprTrue, tok)
		case "False":
			p.advance()
			return shape(exprFalse, tok)
		case "print", "exec":
			p.advance()
			return shape(exprName, tok)
		}
	case token.Op:
		switch tok.Text {
		case "(":
			return p.parseParenAtom()
		case "[":
			return p.parseListAtom()
		case "{":
			return p.parseBraceAtom()
		case "...":
			p.advance()
			return shape(exprEllipsis, tok)
		}
	}
	p.unexpected()
	return expr{}
}

// parseStrings съедает неявную конкатенацию литералов.
func (p *Parser) parseStrings() expr {
	first := p.peek()
	firstBytes := isBytesLiteral(first.Text)
	kind := exprLiteral
	for p.at(token.String) {
		tok := p.advance()
		if isBytesLiteral(tok.Text) != firstBytes {
			p.fail(tok, diag.SynInvalidLiteral, "cannot mix bytes and nonbytes literals")
		}
		if strings.ContainsAny(stringPrefix(tok.Text), "fF") {
			kind = exprFString
		}
	}
	return shape(kind, first)
}

func stringPrefix(lit string) string {
	if i := strings.IndexAny(lit, `'"`); i >= 0 {
		return lit[:i]
	}
	return lit
}

func isBytesLiteral(lit string) bool {
	return strings.ContainsAny(stringPrefix(lit), "bB")
}

// parseParenAtom: () | (yield ...) | (x) | (x, ...) | (x for ...).
func (p *Parser) parseParenAtom() expr {
	open := p.openBracket()
	if p.atOp(")") {
		p.closeBracket(")")
		return shape(exprTuple, open)
	}
	if p.atKw("yield") {
		p.parseYield()
		p.closeBracket(")")
		return shape(exprYield, open)
	}
	first := p.parseNamedOrStar()
	if p.atCompFor() {
		p.noUnpackingIn(first)
		p.parseCompFor()
		p.closeBracket(")")
		return shape(exprGenerator, open)
	}
	if !p.atOp(",") {
		p.closeBracket(")")
		return first
	}
	elems := p.parseSequenceTail(first, ")")
	p.closeBracket(")")
	return sequence(exprTuple, open, elems)
}

func (p *Parser) parseListAtom() expr {
	open := p.openBracket()
	if p.atOp("]") {
		p.closeBracket("]")
		return shape(exprList, open)
	}
	first := p.parseNamedOrStar()
	if p.atCompFor() {
		p.noUnpackingIn(first)
		p.parseCompFor()
		p.closeBracket("]")
		return shape(exprListComp, open)
	}
	elems := p.parseSequenceTail(first, "]")
	p.closeBracket("]")
	return sequence(exprList, open, elems)
}

// parseSequenceTail дочитывает ", x, *y, ..." до закрывающей скобки.
func (p *Parser) parseSequenceTail(first expr, closer string) []expr {
	elems := []expr{first}
	for p.eatOp(",") {
		if p.atOp(closer) {
			break
		}
		elems = append(elems, p.parseNamedOrStar())
	}
	return elems
}

func (p *Parser) noUnpackingIn(e expr) {
	if e.kind == exprStarred {
		p.fail(e.tok, diag.SynInvalidSyntax, "iterable unpacking cannot be used in comprehension")
	}
}

// parseBraceAtom: dict or set display or comprehension.
func (p *Parser) parseBraceAtom() expr {
	open := p.openBracket()
	if p.atOp("}") {
		p.closeBracket("}")
		return shape(exprDict, open)
	}

	isDict := false
	first := p.peek()
	switch {
	case p.atOp("**"):
		p.advance()
		p.parseExpr()
		isDict = true
	case p.atOp("*"):
		p.parseStarExpr()
	default:
		p.parseTest()
		if p.eatOp(":") {
			p.parseTest()
			isDict = true
		}
	}

	if p.atCompFor() {
		switch {
		case first.IsOp("**"):
			p.fail(first, diag.SynInvalidSyntax, "dict unpacking cannot be used in dict comprehension")
		case first.IsOp("*"):
			p.fail(first, diag.SynInvalidSyntax, "iterable unpacking cannot be used in comprehension")
		}
		p.parseCompFor()
		p.closeBracket("}")
		if isDict {
			return shape(exprDictComp, open)
		}
		return shape(exprSetComp, open)
	}

	for p.eatOp(",") {
		if p.atOp("}") {
			break
		}
		if isDict {
			p.parseDictItem()
		} else {
			p.parseTestOrStar()
		}
	}
	p.closeBracket("}")
	if isDict {
		return shape(exprDict, open)
	}
	return shape(exprSet, open)
}

func (p *Parser) parseDictItem() {
	if p.eatOp("**") {
		p.parseExpr()
		return
	}
	p.parseTest()
	p.expectOp(":")
	p.parseTest()
}

// parseCompFor: ('async'? 'for' targets 'in' or_test ('if' test_nocond)*)+.
func (p *Parser) parseCompFor() {
	for p.atCompFor() {
		p.eatKw("async")
		p.expectKw("for")
		p.checkTarget(p.parseTargetList())
		p.expectKw("in")
		p.parseOrTest()
		for p.eatKw("if") {
			p.parseTestNoCond()
		}
	}
}

// parseTargetList is the grammar's exprlist: targets of for and del.
func (p *Parser) parseTargetList() expr {
	first := p.parseExprOrStar()
	if !p.atOp(",") {
		return first
	}
	elems := []expr{first}
	for p.eatOp(",") {
		if !startsExpr(p.peek()) {
			break
		}
		elems = append(elems, p.parseExprOrStar())
	}
	return sequence(exprTuple, first.tok, elems)
}

func (p *Parser) parseExprOrStar() expr {
	if p.atOp("*") {
		return p.parseStarExpr()
	}
	return p.parseExpr()
}

// parseTestList: test-or-star (',' test-or-star)* [','], a bare tuple when
// there is a comma.
func (p *Parser) parseTestList() expr {
	first := p.parseTestOrStar()
	if !p.atOp(",") {
		return first
	}
	elems := []expr{first}
	for p.eatOp(",") {
		if !startsExpr(p.peek()) {
			break
		}
		elems = append(elems, p.parseTestOrStar())
	}
	return sequence(exprTuple, first.tok, elems)
}

// parseNamedList is parseTestList with assignment expressions allowed
// (match subjects, 3.9 star expressions).
func (p *Parser) parseNamedList() expr {
	first := p.parseNamedOrStar()
	if !p.atOp(",") {
		return first
	}
	elems := []expr{first}
	for p.eatOp(",") {
		if !startsExpr(p.peek()) {
			break
		}
		elems = append(elems, p.parseNamedOrStar())
	}
	return sequence(exprTuple, first.tok, elems)
}

func (p *Parser) parseYield() expr {
	tok := p.expectKw("yield")
	if p.eatKw("from") {
		p.parseTest()
	} else if startsExpr(p.peek()) {
		p.parseTestList()
	}
	return shape(exprYield, tok)
}

func (p *Parser) parseSubscripts() {
	p.openBracket()
	for {
		p.parseSubscript()
		if !p.eatOp(",") || p.atOp("]") {
			break
		}
	}
	p.closeBracket("]")
}

// parseSubscript: test | [test] ':' [test] [':' [test]] | '*' expr.
func (p *Parser) parseSubscript() {
	switch {
	case p.atOp("*"):
		p.parseStarExpr()
		return
	case !p.atOp(":"):
		p.parseNamed()
		if !p.atOp(":") {
			return
		}
	}
	p.expectOp(":")
	if !p.atOps(":", ",", "]") {
		p.parseTest()
	}
	if p.eatOp(":") && !p.atOps(",", "]") {
		p.parseTest()
	}
}

// parseCallArgs checks argument order the way CPython's AST builder does.
func (p *Parser) parseCallArgs() {
	p.openBracket()
	var (
		sawKeyword, sawKwUnpack bool
		generator               *token.Token
		count                   int
		trailingComma           bool
	)
	for !p.atOp(")") {
		tok := p.peek()
		switch {
		case p.eatOp("*"):
			p.parseTest()
			if sawKwUnpack {
				p.fail(tok, diag.SynInvalidArguments, "iterable argument unpacking follows keyword argument unpacking")
			}
		case p.eatOp("**"):
			p.parseTest()
			sawKwUnpack = true
		default:
			e := p.parseTest()
			positional := true
			switch {
			case p.atOp("="):
				p.checkKeywordName(e)
				p.advance()
				p.parseTest()
				sawKeyword, positional = true, false
			case p.atOp(":="):
				if e.kind != exprName {
					p.fail(e.tok, diag.SynInvalidTarget, "cannot use named assignment with "+e.kind.String())
				}
				p.advance()
				p.parseTest()
			case p.atCompFor():
				p.parseCompFor()
				generator = &tok
			}
			if positional {
				switch {
				case sawKwUnpack:
					p.fail(tok, diag.SynInvalidArguments, "positional argument follows keyword argument unpacking")
				case sawKeyword:
					p.fail(tok, diag.SynInvalidArguments, "positional argument follows keyword argument")
				}
			}
		}
		count++
		trailingComma = p.eatOp(",")
		if !trailingComma {
			break
		}
	}
	p.closeBracket(")")
	if generator != nil && (count > 1 || trailingComma) {
		p.fail(*generator, diag.SynInvalidArguments, "Generator expression must be parenthesized")
	}
}

func (p *Parser) checkKeywordName(e expr) {
	switch e.kind {
	case exprName:
		return
	case exprNone, exprTrue, exprFalse:
		p.fail(e.tok, diag.SynInvalidTarget, "cannot assign to "+e.kind.String())
	}
	p.fail(e.tok, diag.SynInvalidArguments, `expression cannot contain assignment, perhaps you meant "=="?`)
}
