package parser

import (
	"pycheck/internal/diag"
	"pycheck/internal/token"
)

// exprKind: грубая форма выражения: ровно то, что нужно для проверки целей.
type exprKind uint8

const (
	exprName exprKind = iota
	exprAttribute
	exprSubscript
	exprStarred
	exprTuple
	exprList

	exprLiteral
	exprFString
	exprEllipsis
	exprNone
	exprTrue
	exprFalse
	exprCall
	exprOperator
	exprCompare
	exprLambda
	exprConditional
	exprYield
	exprAwait
	exprNamed
	exprListComp
	exprSetComp
	exprDictComp
	exprGenerator
	exprDict
	exprSet
)

// Описания в формулировках CPython: "cannot assign to <desc>".
var exprDescriptions = [...]string{
	exprName:        "name",
	exprAttribute:   "attribute",
	exprSubscript:   "subscript",
	exprStarred:     "starred",
	exprTuple:       "tuple",
	exprList:        "list",
	exprLiteral:     "literal",
	exprFString:     "f-string expression",
	exprEllipsis:    "Ellipsis",
	exprNone:        "None",
	exprTrue:        "True",
	exprFalse:       "False",
	exprCall:        "function call",
	exprOperator:    "operator",
	exprCompare:     "comparison",
	exprLambda:      "lambda",
	exprConditional: "conditional expression",
	exprYield:       "yield expression",
	exprAwait:       "await expression",
	exprNamed:       "named expression",
	exprListComp:    "list comprehension",
	exprSetComp:     "set comprehension",
	exprDictComp:    "dict comprehension",
	exprGenerator:   "generator expression",
	exprDict:        "dict display",
	exprSet:         "set display",
}

func (k exprKind) String() string {
	if int(k) < len(exprDescriptions) {
		return exprDescriptions[k]
	}
	return "expression"
}

// expr is the shape of a parsed expression. For tuples, lists and starred
// expressions bad points at the first element that cannot be a target.
type expr struct {
	kind exprKind
	tok  token.Token // первый токен выражения
	bad  *expr
}

func shape(kind exprKind, tok token.Token) expr {
	return expr{kind: kind, tok: tok}
}

// sequence builds a tuple or list shape and remembers its first element that
// is not a valid target.
func sequence(kind exprKind, tok token.Token, elems []expr) expr {
	e := shape(kind, tok)
	for i := range elems {
		if bad := elems[i].badTarget(); bad != nil {
			e.bad = bad
			break
		}
	}
	return e
}

// badTarget returns the part of e that cannot be assigned to, or nil.
func (e expr) badTarget() *expr {
	switch e.kind {
	case exprName, exprAttribute, exprSubscript:
		return nil
	case exprStarred, exprTuple, exprList:
		return e.bad
	default:
		return &e
	}
}

// checkTarget rejects e as the target of an assignment, a for loop, a
// comprehension or a with/as clause.
func (p *Parser) checkTarget(e expr) {
	if bad := e.badTarget(); bad != nil {
		p.fail(bad.tok, diag.SynInvalidTarget, "cannot assign to "+bad.kind.String())
	}
}

func (p *Parser) checkDeleteTarget(e expr) {
	if bad := e.badTarget(); bad != nil {
		p.fail(bad.tok, diag.SynInvalidTarget, "cannot delete "+bad.kind.String())
	}
}

func (p *Parser) checkAugTarget(e expr) {
	switch e.kind {
	case exprName, exprAttribute, exprSubscript:
		return
	}
	p.fail(e.tok, diag.SynInvalidTarget, "illegal expression for augmented assignment")
}

func (p *Parser) checkAnnotationTarget(e expr) {
	switch e.kind {
	case exprName, exprAttribute, exprSubscript:
		return
	case exprTuple, exprList:
		p.fail(e.tok, diag.SynInvalidTarget, "only single target (not "+e.kind.String()+") can be annotated")
	}
	p.fail(e.tok, diag.SynInvalidTarget, "illegal target for annotation")
}
