package parser

import (
	"pycheck/internal/diag"
	"pycheck/internal/token"
)

var augAssignOps = []string{
	"+=", "-=", "*=", "/=", "//=", "%=", "@=",
	"&=", "|=", "^=", "<<=", ">>=", "**=",
}

func (p *Parser) parseModule() {
	for !p.at(token.EOF) {
		if p.at(token.Newline) {
			p.advance()
			continue
		}
		p.parseStatement()
	}
}

func (p *Parser) parseStatement() {
	tok := p.peek()
	if tok.Kind == token.Keyword {
		switch tok.Text {
		case "if":
			p.parseIf()
			return
		case "while":
			p.parseWhile()
			return
		case "for":
			p.parseFor()
			return
		case "try":
			p.parseTry()
			return
		case "with":
			p.parseWith()
			return
		case "def":
			p.parseFuncDef()
			return
		case "class":
			p.parseClassDef()
			return
		case "async":
			p.parseAsync()
			return
		}
	}
	switch {
	case tok.IsOp("@"):
		p.parseDecorated()
	case p.atSoft("match") && p.matchAhead():
		p.parseMatch()
	default:
		p.parseSimpleStatements()
	}
}

// parseSuite: ':' (simple_stmts | NEWLINE INDENT stmt+ DEDENT).
func (p *Parser) parseSuite() {
	p.expectOp(":")
	if !p.at(token.Newline) {
		p.parseSimpleStatements()
		return
	}
	p.advance()
	p.expect(token.Indent)
	for {
		p.parseStatement()
		if p.at(token.Dedent) {
			break
		}
	}
	p.expect(token.Dedent)
}

func (p *Parser) parseSimpleStatements() {
	p.parseSmallStatement()
	for p.eatOp(";") {
		if p.at(token.Newline) {
			break
		}
		p.parseSmallStatement()
	}
	p.expect(token.Newline)
}

func (p *Parser) parseSmallStatement() {
	tok := p.peek()
	if tok.Kind == token.Keyword {
		switch tok.Text {
		case "pass", "break", "continue":
			p.advance()
			return
		case "del":
			p.advance()
			p.parseDelTargets()
			return
		case "return":
			p.advance()
			if startsExpr(p.peek()) {
				p.noBareStar(p.parseTestList())
			}
			return
		case "raise":
			p.advance()
			if startsExpr(p.peek()) {
				p.parseTest()
				if p.eatKw("from") {
					p.parseTest()
				}
			}
			return
		case "global", "nonlocal":
			p.advance()
			p.expectName()
			for p.eatOp(",") {
				p.expectName()
			}
			return
		case "assert":
			p.advance()
			p.parseTest()
			if p.eatOp(",") {
				p.parseTest()
			}
			return
		case "import":
			p.parseImport()
			return
		case "from":
			p.parseFromImport()
			return
		case "print":
			if p.legacyStatementAhead() {
				p.parsePrint()
				return
			}
		case "exec":
			if p.legacyStatementAhead() {
				p.parseExec()
				return
			}
		}
	}
	if p.atSoft("type") && p.typeAliasAhead() {
		p.parseTypeAlias()
		return
	}
	p.parseExpressionStatement()
}

// parseExpressionStatement covers expressions, assignment chains,
// augmented and annotated assignment.
func (p *Parser) parseExpressionStatement() {
	e := p.parseValue()
	switch {
	case p.atOp(":"):
		p.checkAnnotationTarget(e)
		p.advance()
		p.parseTest()
		if p.eatOp("=") {
			p.parseValue()
		}
	case p.atOps(augAssignOps...):
		p.checkAugTarget(e)
		p.advance()
		p.parseValue()
	case p.atOp("="):
		for p.atOp("=") {
			if e.kind == exprStarred {
				p.fail(e.tok, diag.SynInvalidTarget, "starred assignment target must be in a list or tuple")
			}
			p.checkTarget(e)
			p.advance()
			e = p.parseValue()
		}
		p.noBareStar(e)
	default:
		p.noBareStar(e)
	}
}

// parseValue: yield_expr | testlist_star_expr.
func (p *Parser) parseValue() expr {
	if p.atKw("yield") {
		return p.parseYield()
	}
	return p.parseTestList()
}

func (p *Parser) noBareStar(e expr) {
	if e.kind == exprStarred {
		p.fail(e.tok, diag.SynInvalidSyntax, "can't use starred expression here")
	}
}

func (p *Parser) parseDelTargets() {
	e := p.parseTargetList()
	if e.kind == exprStarred {
		p.fail(e.tok, diag.SynInvalidTarget, "cannot delete starred")
	}
	p.checkDeleteTarget(e)
}

func (p *Parser) parseDottedName() {
	p.expectName()
	for p.eatOp(".") {
		p.expectName()
	}
}

// import a.b [as c], ...
func (p *Parser) parseImport() {
	p.expectKw("import")
	for {
		p.parseDottedName()
		if p.eatKw("as") {
			p.expectName()
		}
		if !p.eatOp(",") {
			return
		}
	}
}

// from (.|...)* [dotted] import (* | (names) | names)
func (p *Parser) parseFromImport() {
	p.expectKw("from")
	dots := 0
	for p.atOps(".", "...") {
		p.advance()
		dots++
	}
	if dots == 0 || !p.atKw("import") {
		p.parseDottedName()
	}
	p.expectKw("import")
	switch {
	case p.eatOp("*"):
	case p.atOp("("):
		p.openBracket()
		p.parseImportNames(true)
		p.closeBracket(")")
	default:
		p.parseImportNames(false)
	}
}

func (p *Parser) parseImportNames(trailingComma bool) {
	for {
		p.expectName()
		if p.eatKw("as") {
			p.expectName()
		}
		if !p.eatOp(",") {
			return
		}
		if trailingComma && p.atOp(")") {
			return
		}
	}
}

// legacyStatementAhead decides whether print/exec start a Python 2
// statement rather than a name: "print x" is a statement, "print(x)" and
// "print = f" are not.
func (p *Parser) legacyStatementAhead() bool {
	next := p.peekAt(1)
	switch next.Kind {
	case token.Name, token.Number, token.String:
		return true
	case token.Keyword:
		switch next.Text {
		case "not", "lambda", "None", "True", "False", "await", "print", "exec":
			return true
		}
	case token.Op:
		return next.Text == ">>" && p.peek().Text == "print"
	}
	return false
}

// print [>> test ,] [test (, test)* [,]]
func (p *Parser) parsePrint() {
	p.expectKw("print")
	if p.eatOp(">>") {
		p.parseTest()
		if !p.eatOp(",") {
			return
		}
	}
	for startsExpr(p.peek()) {
		p.parseTest()
		if !p.eatOp(",") {
			return
		}
	}
}

// exec expr [in test [, test]]
func (p *Parser) parseExec() {
	p.expectKw("exec")
	p.parseExpr()
	if p.eatKw("in") {
		p.parseTest()
		if p.eatOp(",") {
			p.parseTest()
		}
	}
}

func (p *Parser) typeAliasAhead() bool {
	if !isName(p.peekAt(1)) {
		return false
	}
	next := p.peekAt(2)
	return next.IsOp("=") || next.IsOp("[")
}

// type X[T] = expr
func (p *Parser) parseTypeAlias() {
	p.advance()
	p.expectName()
	if p.atOp("[") {
		p.parseTypeParams()
	}
	p.expectOp("=")
	p.parseTest()
}

func (p *Parser) parseIf() {
	p.expectKw("if")
	p.parseNamed()
	p.parseSuite()
	for p.eatKw("elif") {
		p.parseNamed()
		p.parseSuite()
	}
	if p.eatKw("else") {
		p.parseSuite()
	}
}

func (p *Parser) parseWhile() {
	p.expectKw("while")
	p.parseNamed()
	p.parseSuite()
	if p.eatKw("else") {
		p.parseSuite()
	}
}

func (p *Parser) parseFor() {
	p.expectKw("for")
	p.checkTarget(p.parseTargetList())
	p.expectKw("in")
	p.parseTestList()
	p.parseSuite()
	if p.eatKw("else") {
		p.parseSuite()
	}
}

func (p *Parser) parseTry() {
	p.expectKw("try")
	p.parseSuite()
	if p.eatKw("finally") {
		p.parseSuite()
		return
	}
	if !p.atKw("except") {
		p.unexpected()
	}
	plain, star := false, false
	for p.atKw("except") {
		tok := p.advance()
		isStar := p.eatOp("*")
		if isStar {
			star = true
		} else {
			plain = true
		}
		if plain && star {
			p.fail(tok, diag.SynInvalidSyntax, "cannot have both 'except' and 'except*' on the same 'try'")
		}
		if isStar || !p.atOp(":") {
			p.parseTest()
			if p.eatKw("as") {
				p.expectName()
			}
		}
		p.parseSuite()
	}
	if p.eatKw("else") {
		p.parseSuite()
	}
	if p.eatKw("finally") {
		p.parseSuite()
	}
}

func (p *Parser) parseWith() {
	p.expectKw("with")
	if p.atOp("(") && p.parenthesizedWithItems() {
		p.openBracket()
		for {
			p.parseWithItem()
			if !p.eatOp(",") || p.atOp(")") {
				break
			}
		}
		p.closeBracket(")")
	} else {
		p.parseWithItem()
		for p.eatOp(",") {
			p.parseWithItem()
		}
	}
	p.parseSuite()
}

func (p *Parser) parseWithItem() {
	p.parseTest()
	if p.eatKw("as") {
		p.checkTarget(p.parseExprOrStar())
	}
}

// parenthesizedWithItems reports whether the '(' at the cursor opens the
// "with (a as b, c):" form: its matching ')' is directly followed by ':'.
func (p *Parser) parenthesizedWithItems() bool {
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		tok := p.toks[i]
		if tok.Kind != token.Op {
			if tok.Kind == token.Newline || tok.Kind == token.EOF {
				return false
			}
			continue
		}
		switch tok.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
			if depth == 0 {
				return i+1 < len(p.toks) && p.toks[i+1].IsOp(":")
			}
		}
	}
	return false
}

func (p *Parser) parseFuncDef() {
	p.expectKw("def")
	p.expectName()
	if p.atOp("[") {
		p.parseTypeParams()
	}
	if !p.atOp("(") {
		p.unexpected()
	}
	p.openBracket()
	p.parseParams(")", true)
	p.closeBracket(")")
	if p.eatOp("->") {
		p.parseTest()
	}
	p.parseSuite()
}

func (p *Parser) parseClassDef() {
	p.expectKw("class")
	p.expectName()
	if p.atOp("[") {
		p.parseTypeParams()
	}
	if p.atOp("(") {
		p.parseCallArgs()
	}
	p.parseSuite()
}

func (p *Parser) parseAsync() {
	p.expectKw("async")
	switch {
	case p.atKw("def"):
		p.parseFuncDef()
	case p.atKw("for"):
		p.parseFor()
	case p.atKw("with"):
		p.parseWith()
	default:
		p.unexpected()
	}
}

// parseDecorated: ('@' namedexpr NEWLINE)+ (def | class | async def).
func (p *Parser) parseDecorated() {
	for p.eatOp("@") {
		p.parseNamed()
		p.expect(token.Newline)
	}
	switch {
	case p.atKw("def"):
		p.parseFuncDef()
	case p.atKw("class"):
		p.parseClassDef()
	case p.atKw("async") && p.peekAt(1).Text == "def":
		p.parseAsync()
	default:
		p.unexpected()
	}
}
