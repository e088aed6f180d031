// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"fmt"
	"strconv"

	"github.com/collomatique/cml/ast"
	"github.com/collomatique/cml/common"
)

// Parser is a single-pass, backtrack-free recursive-descent parser over
// a token stream. It never panics: every malformed construct is
// recorded in errs and the parser resynchronizes at the next plausible
// statement boundary so that a whole module's errors are reported in
// one pass, matching the accumulate-don't-stop-at-first-error style of
// common.Errors.
type Parser struct {
	toks  []Token
	pos   int
	src   *common.Source
	errs  *common.Errors
	idgen ast.IDGenerator
}

// ParseModule lexes and parses src into an ast.Module, reporting every
// diagnostic found into errs. The returned Module is always non-nil,
// even when errs is non-empty, so callers can keep checking whatever
// parsed successfully.
func ParseModule(src *common.Source, name string) (*ast.Module, *common.Errors) {
	errs := common.NewErrors()
	lex := NewLexer(src, errs)
	p := &Parser{toks: lex.Tokens(), src: src, errs: errs, idgen: ast.NewIDGenerator()}
	mod := p.parseModule(name)
	return mod, errs
}

// ParseStandaloneExpr parses a single expression out of text with no
// surrounding module, used to re-parse the `` `expr` `` placeholders
// embedded in docstrings for re-evaluation against a call's concrete
// argument bindings (see value.Origin).
func ParseStandaloneExpr(text string) (*ast.Expr, error) {
	src := common.NewSource("<docstring>", text)
	errs := common.NewErrors()
	lex := NewLexer(src, errs)
	p := &Parser{toks: lex.Tokens(), src: src, errs: errs, idgen: ast.NewIDGenerator()}
	expr := p.parseExpr()
	if !errs.Empty() {
		return nil, fmt.Errorf("parser: %s", errs.String())
	}
	return expr, nil
}

func (p *Parser) cur() Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) span() common.Span { return p.cur().Span(p.src) }

func (p *Parser) isOp(s string) bool {
	t := p.cur()
	return t.Kind == TokOp && t.Text == s
}

func (p *Parser) isKeyword(s string) bool {
	t := p.cur()
	return t.Kind == TokKeyword && t.Text == s
}

func (p *Parser) isEOF() bool { return p.cur().Kind == TokEOF }

func (p *Parser) eatOp(s string) bool {
	if p.isOp(s) {
		p.advance()
		return true
	}
	p.errorf("expected %q", s)
	return false
}

func (p *Parser) eatKeyword(s string) bool {
	if p.isKeyword(s) {
		p.advance()
		return true
	}
	p.errorf("expected keyword %q", s)
	return false
}

func (p *Parser) expectIdent() (string, common.Span, bool) {
	t := p.cur()
	if t.Kind == TokIdent {
		p.advance()
		return t.Text, t.Span(p.src), true
	}
	p.errorf("expected identifier")
	return "", t.Span(p.src), false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errs.ReportError(p.span(), format, args...)
}

// synchronize skips tokens until a position from which a fresh
// declaration or statement plausibly starts.
func (p *Parser) synchronize(stops ...string) {
	for !p.isEOF() {
		for _, s := range stops {
			if p.isOp(s) {
				p.advance()
				return
			}
		}
		if p.isKeyword("pub") || p.isKeyword("let") || p.isKeyword("reify") ||
			p.isKeyword("import") || p.isKeyword("type") {
			return
		}
		p.advance()
	}
}

func (p *Parser) newID() int64 { return p.idgen() }

// ---- top level ----

func (p *Parser) parseModule(name string) *ast.Module {
	mod := &ast.Module{Name: name}
	var pendingDoc string
	for !p.isEOF() {
		if p.cur().Kind == TokDocComment {
			if pendingDoc != "" {
				pendingDoc += "\n"
			}
			pendingDoc += p.cur().Text
			p.advance()
			continue
		}
		switch {
		case p.isKeyword("import"):
			if d, ok := p.parseImport(); ok {
				mod.Imports = append(mod.Imports, d)
			}
		case p.isKeyword("type"):
			if d, ok := p.parseCustomType(); ok {
				mod.Types = append(mod.Types, d)
			}
		case p.isKeyword("reify"):
			if d, ok := p.parseReify(); ok {
				mod.Reifies = append(mod.Reifies, d)
			}
		case p.isKeyword("pub") || p.isKeyword("let"):
			if d, ok := p.parseFuncDecl(pendingDoc); ok {
				mod.Functions = append(mod.Functions, d)
			}
		default:
			p.errorf("expected a top-level declaration")
			p.synchronize(";")
		}
		pendingDoc = ""
	}
	return mod
}

func (p *Parser) parseImport() (ast.ImportDecl, bool) {
	start := p.span()
	p.eatKeyword("import")
	path, _, ok := p.expectIdent()
	if !ok {
		p.synchronize(";")
		return ast.ImportDecl{}, false
	}
	for p.isOp(".") {
		p.advance()
		seg, _, ok := p.expectIdent()
		if !ok {
			break
		}
		path += "." + seg
	}
	p.eatOp(";")
	return ast.ImportDecl{Span: joinSpan(start, p.span()), Module: path}, true
}

func (p *Parser) parseCustomType() (ast.CustomTypeDecl, bool) {
	start := p.span()
	p.eatKeyword("type")
	name, _, ok := p.expectIdent()
	if !ok {
		p.synchronize(";")
		return ast.CustomTypeDecl{}, false
	}
	p.eatOp("=")
	var variants []ast.CustomVariantDecl
	for {
		vname, _, ok := p.expectIdent()
		if !ok {
			break
		}
		var payload *ast.TypeExpr
		if p.isOp("(") {
			p.advance()
			payload = p.parseTypeExpr()
			p.eatOp(")")
		}
		variants = append(variants, ast.CustomVariantDecl{Name: vname, Payload: payload})
		if p.isOp("|") {
			p.advance()
			continue
		}
		break
	}
	p.eatOp(";")
	return ast.CustomTypeDecl{Span: joinSpan(start, p.span()), Name: name, Variants: variants}, true
}

func (p *Parser) parseReify() (ast.ReifyDecl, bool) {
	start := p.span()
	p.eatKeyword("reify")
	fname, _, ok := p.expectIdent()
	if !ok {
		p.synchronize(";")
		return ast.ReifyDecl{}, false
	}
	p.eatKeyword("as")
	t := p.cur()
	if t.Kind != TokUserVar {
		p.errorf("expected $Name after 'as'")
		p.synchronize(";")
		return ast.ReifyDecl{}, false
	}
	p.advance()
	p.eatOp(";")
	return ast.ReifyDecl{Span: joinSpan(start, p.span()), FuncName: fname, AsName: t.Text}, true
}

func (p *Parser) parseFuncDecl(doc string) (ast.FuncDecl, bool) {
	start := p.span()
	pub := false
	if p.isKeyword("pub") {
		pub = true
		p.advance()
	}
	p.eatKeyword("let")
	name, _, ok := p.expectIdent()
	if !ok {
		p.synchronize(";")
		return ast.FuncDecl{}, false
	}
	p.eatOp("(")
	var params []ast.Param
	for !p.isOp(")") && !p.isEOF() {
		pname, _, ok := p.expectIdent()
		if !ok {
			break
		}
		p.eatOp(":")
		ptyp := p.parseTypeExpr()
		params = append(params, ast.Param{Name: pname, Type: ptyp})
		if p.isOp(",") {
			p.advance()
			continue
		}
		break
	}
	p.eatOp(")")
	p.eatOp("->")
	ret := p.parseTypeExpr()
	p.eatOp("=")
	body := p.parseExpr()
	p.eatOp(";")
	return ast.FuncDecl{
		Span: joinSpan(start, p.span()), Pub: pub, Name: name,
		Params: params, ReturnType: ret, Body: body, Docstring: doc,
	}, true
}

// ---- type expressions ----

func (p *Parser) parseTypeExpr() *ast.TypeExpr {
	start := p.span()
	first := p.parseTypeAtom()
	variants := []*ast.TypeExpr{first}
	for p.isOp("|") {
		p.advance()
		variants = append(variants, p.parseTypeAtom())
	}
	optional := false
	if p.isOp("?") {
		p.advance()
		optional = true
	}
	if len(variants) == 1 && !optional {
		return first
	}
	return &ast.TypeExpr{Span: joinSpan(start, p.span()), Name: "Sum", Sum: variants, Optional: optional}
}

func (p *Parser) parseTypeAtom() *ast.TypeExpr {
	start := p.span()
	if p.isOp("(") {
		p.advance()
		var elems []*ast.TypeExpr
		for !p.isOp(")") && !p.isEOF() {
			elems = append(elems, p.parseTypeExpr())
			if p.isOp(",") {
				p.advance()
				continue
			}
			break
		}
		p.eatOp(")")
		return &ast.TypeExpr{Span: joinSpan(start, p.span()), Name: "Tuple", Elems: elems}
	}
	if p.isOp("{") {
		p.advance()
		fields := map[string]*ast.TypeExpr{}
		for !p.isOp("}") && !p.isEOF() {
			fname, _, ok := p.expectIdent()
			if !ok {
				break
			}
			p.eatOp(":")
			fields[fname] = p.parseTypeExpr()
			if p.isOp(",") {
				p.advance()
				continue
			}
			break
		}
		p.eatOp("}")
		return &ast.TypeExpr{Span: joinSpan(start, p.span()), Name: "Struct", Fields: fields}
	}
	if p.isOp("[") {
		p.advance()
		elem := p.parseTypeExpr()
		p.eatOp("]")
		return &ast.TypeExpr{Span: joinSpan(start, p.span()), Name: "List", Elem: elem}
	}
	name, _, ok := p.expectIdent()
	if !ok {
		return &ast.TypeExpr{Span: start, Name: "Int"}
	}
	te := &ast.TypeExpr{Span: start, Name: name}
	if p.isOp("<") {
		p.advance()
		te.Elem = p.parseTypeExpr()
		for p.isOp(",") {
			p.advance()
			te.Elems = append(te.Elems, p.parseTypeExpr())
		}
		p.eatOp(">")
	}
	te.Span = joinSpan(start, p.span())
	return te
}

// ---- expressions ----

func (p *Parser) parseExpr() *ast.Expr {
	switch {
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("let"):
		return p.parseLet()
	case p.isKeyword("match"):
		return p.parseMatch()
	default:
		return p.parseOr()
	}
}

func (p *Parser) parseIf() *ast.Expr {
	start := p.span()
	p.eatKeyword("if")
	cond := p.parseExpr()
	p.eatOp("{")
	then := p.parseExpr()
	p.eatOp("}")
	p.eatKeyword("else")
	p.eatOp("{")
	els := p.parseExpr()
	p.eatOp("}")
	return &ast.Expr{ID: p.newID(), Kind: ast.IfKind, Span: joinSpan(start, p.span()), Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseLet() *ast.Expr {
	start := p.span()
	p.eatKeyword("let")
	name, _, _ := p.expectIdent()
	p.eatOp("=")
	val := p.parseExpr()
	p.eatKeyword("in")
	body := p.parseExpr()
	return &ast.Expr{ID: p.newID(), Kind: ast.LetKind, Span: joinSpan(start, p.span()), Name: name, LetValue: val, Body: body}
}

func (p *Parser) parseMatch() *ast.Expr {
	start := p.span()
	p.eatKeyword("match")
	scrutinee := p.parseExpr()
	p.eatOp("{")
	var branches []ast.MatchBranch
	for !p.isOp("}") && !p.isEOF() {
		bstart := p.span()
		bindName, _, _ := p.expectIdent()
		var asType, intoType *ast.TypeExpr
		var where *ast.Expr
		if p.isKeyword("as") {
			p.advance()
			asType = p.parseTypeExpr()
		}
		if p.isKeyword("into") {
			p.advance()
			intoType = p.parseTypeExpr()
		}
		if p.isKeyword("where") {
			p.advance()
			where = p.parseExpr()
		}
		p.eatOp("{")
		body := p.parseExpr()
		p.eatOp("}")
		branches = append(branches, ast.MatchBranch{
			BindName: bindName, AsType: asType, IntoType: intoType, Where: where, Body: body,
			Span: joinSpan(bstart, p.span()),
		})
		if p.isOp(",") {
			p.advance()
		}
	}
	p.eatOp("}")
	return &ast.Expr{ID: p.newID(), Kind: ast.MatchKind, Span: joinSpan(start, p.span()), Scrutinee: scrutinee, Branches: branches}
}

func (p *Parser) parseOr() *ast.Expr {
	left := p.parseAnd()
	for p.isKeyword("or") {
		start := left.Span
		p.advance()
		right := p.parseAnd()
		left = &ast.Expr{ID: p.newID(), Kind: ast.BinaryKind, Span: joinSpan(start, p.span()), Op: "or", LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseAnd() *ast.Expr {
	left := p.parseNot()
	for p.isKeyword("and") {
		start := left.Span
		p.advance()
		right := p.parseNot()
		left = &ast.Expr{ID: p.newID(), Kind: ast.BinaryKind, Span: joinSpan(start, p.span()), Op: "and", LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseNot() *ast.Expr {
	if p.isKeyword("not") {
		start := p.span()
		p.advance()
		operand := p.parseNot()
		return &ast.Expr{ID: p.newID(), Kind: ast.UnaryKind, Span: joinSpan(start, p.span()), Op: "not", Operand: operand}
	}
	return p.parseRelational()
}

var relOps = []string{"===", "<==", ">==", "==", "!=", "<=", ">=", "<", ">"}

func (p *Parser) parseRelational() *ast.Expr {
	left := p.parseIn()
	for _, op := range relOps {
		if p.isOp(op) {
			start := left.Span
			p.advance()
			right := p.parseIn()
			return &ast.Expr{ID: p.newID(), Kind: ast.BinaryKind, Span: joinSpan(start, p.span()), Op: op, LHS: left, RHS: right}
		}
	}
	return left
}

func (p *Parser) parseIn() *ast.Expr {
	left := p.parseSet()
	if p.isKeyword("in") {
		start := left.Span
		p.advance()
		right := p.parseSet()
		return &ast.Expr{ID: p.newID(), Kind: ast.BinaryKind, Span: joinSpan(start, p.span()), Op: "in", LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseSet() *ast.Expr {
	left := p.parseAdd()
	for p.isKeyword("union") || p.isKeyword("inter") || p.isOp("\\") {
		start := left.Span
		op := p.cur().Text
		p.advance()
		right := p.parseAdd()
		left = &ast.Expr{ID: p.newID(), Kind: ast.BinaryKind, Span: joinSpan(start, p.span()), Op: op, LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseAdd() *ast.Expr {
	left := p.parseMul()
	for p.isOp("+") || p.isOp("-") {
		start := left.Span
		op := p.cur().Text
		p.advance()
		right := p.parseMul()
		left = &ast.Expr{ID: p.newID(), Kind: ast.BinaryKind, Span: joinSpan(start, p.span()), Op: op, LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseMul() *ast.Expr {
	left := p.parseUnary()
	for p.isOp("*") || p.isOp("/") || p.isOp("%") {
		start := left.Span
		op := p.cur().Text
		p.advance()
		right := p.parseUnary()
		left = &ast.Expr{ID: p.newID(), Kind: ast.BinaryKind, Span: joinSpan(start, p.span()), Op: op, LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseUnary() *ast.Expr {
	if p.isOp("-") {
		start := p.span()
		p.advance()
		operand := p.parseUnary()
		return &ast.Expr{ID: p.newID(), Kind: ast.UnaryKind, Span: joinSpan(start, p.span()), Op: "-", Operand: operand}
	}
	return p.parseCardinality()
}

func (p *Parser) parseCardinality() *ast.Expr {
	if p.isOp("|") {
		start := p.span()
		p.advance()
		operand := p.parseExpr()
		p.eatOp("|")
		return &ast.Expr{ID: p.newID(), Kind: ast.UnaryKind, Span: joinSpan(start, p.span()), Op: "card", Operand: operand}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() *ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.isOp("."):
			p.advance()
			field, _, ok := p.expectIdent()
			if !ok {
				return expr
			}
			if expr.Kind == ast.PathKind {
				expr.Fields = append(expr.Fields, field)
				expr.Span = joinSpan(expr.Span, p.span())
				continue
			}
			expr = &ast.Expr{ID: p.newID(), Kind: ast.PathKind, Span: joinSpan(expr.Span, p.span()), Base: expr, Fields: []string{field}}
		case p.isOp("("):
			start := expr.Span
			args := p.parseArgs()
			name := ""
			if expr.Kind == ast.IdentKind {
				name = expr.Name
			}
			expr = &ast.Expr{ID: p.newID(), Kind: ast.CallKind, Span: joinSpan(start, p.span()), FuncName: name, Args: args}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgs() []*ast.Expr {
	p.eatOp("(")
	var args []*ast.Expr
	for !p.isOp(")") && !p.isEOF() {
		args = append(args, p.parseExpr())
		if p.isOp(",") {
			p.advance()
			continue
		}
		break
	}
	p.eatOp(")")
	return args
}

func (p *Parser) parsePrimary() *ast.Expr {
	start := p.span()
	t := p.cur()
	switch {
	case t.Kind == TokInt:
		p.advance()
		n, err := strconv.ParseInt(t.Text, 10, 32)
		if err != nil {
			p.errorf("invalid integer literal %q", t.Text)
		}
		return &ast.Expr{ID: p.newID(), Kind: ast.LiteralKind, Span: start, Lit: ast.IntLit, Int: int32(n)}
	case t.Kind == TokString:
		p.advance()
		return &ast.Expr{ID: p.newID(), Kind: ast.LiteralKind, Span: start, Lit: ast.StringLit, Str: t.Text}
	case p.isKeyword("true") || p.isKeyword("false"):
		p.advance()
		return &ast.Expr{ID: p.newID(), Kind: ast.LiteralKind, Span: start, Lit: ast.BoolLit, Bool: t.Text == "true"}
	case p.isKeyword("none"):
		p.advance()
		return &ast.Expr{ID: p.newID(), Kind: ast.LiteralKind, Span: start, Lit: ast.NoneLit}
	case t.Kind == TokUserVar:
		p.advance()
		args := p.parseArgs()
		return &ast.Expr{ID: p.newID(), Kind: ast.UserVarCallKind, Span: joinSpan(start, p.span()), FuncName: t.Text, Args: args}
	case t.Kind == TokIdent:
		p.advance()
		return &ast.Expr{ID: p.newID(), Kind: ast.IdentKind, Span: start, Name: t.Text}
	case p.isOp("("):
		p.advance()
		first := p.parseExpr()
		if p.isOp(",") {
			elems := []*ast.Expr{first}
			for p.isOp(",") {
				p.advance()
				if p.isOp(")") {
					break
				}
				elems = append(elems, p.parseExpr())
			}
			p.eatOp(")")
			return &ast.Expr{ID: p.newID(), Kind: ast.TupleKind, Span: joinSpan(start, p.span()), Elems: elems}
		}
		p.eatOp(")")
		return first
	case p.isOp("["):
		return p.parseListLike(start)
	case p.isOp("{"):
		return p.parseStructLit(start)
	case p.isOp("@["):
		p.advance()
		name, _, _ := p.expectIdent()
		p.eatOp("]")
		return &ast.Expr{ID: p.newID(), Kind: ast.ObjectSetKind, Span: joinSpan(start, p.span()), Name: name}
	case p.isKeyword("forall") || p.isKeyword("sum"):
		return p.parseQuantifier(start)
	default:
		p.errorf("unexpected token %q", t.Text)
		p.advance()
		return &ast.Expr{ID: p.newID(), Kind: ast.LiteralKind, Span: start, Lit: ast.NoneLit}
	}
}

func (p *Parser) parseListLike(start common.Span) *ast.Expr {
	p.eatOp("[")
	if p.isOp("]") {
		p.advance()
		return &ast.Expr{ID: p.newID(), Kind: ast.ListKind, Span: joinSpan(start, p.span())}
	}
	first := p.parseExpr()
	switch {
	case p.isOp(".."):
		p.advance()
		hi := p.parseExpr()
		p.eatOp("]")
		return &ast.Expr{ID: p.newID(), Kind: ast.RangeKind, Span: joinSpan(start, p.span()), Lo: first, Hi: hi}
	case p.isKeyword("for"):
		binders := p.parseForBinders()
		var where *ast.Expr
		if p.isKeyword("where") {
			p.advance()
			where = p.parseExpr()
		}
		p.eatOp("]")
		return &ast.Expr{ID: p.newID(), Kind: ast.ComprehensionKind, Span: joinSpan(start, p.span()), Body: first, Binders: binders, Where: where}
	default:
		elems := []*ast.Expr{first}
		for p.isOp(",") {
			p.advance()
			if p.isOp("]") {
				break
			}
			elems = append(elems, p.parseExpr())
		}
		p.eatOp("]")
		return &ast.Expr{ID: p.newID(), Kind: ast.ListKind, Span: joinSpan(start, p.span()), Elems: elems}
	}
}

func (p *Parser) parseForBinders() []ast.ForBinder {
	var binders []ast.ForBinder
	for p.isKeyword("for") {
		p.advance()
		name, _, _ := p.expectIdent()
		p.eatKeyword("in")
		coll := p.parseSet()
		binders = append(binders, ast.ForBinder{Name: name, Collection: coll})
	}
	return binders
}

func (p *Parser) parseStructLit(start common.Span) *ast.Expr {
	p.eatOp("{")
	var fields []ast.StructFieldInit
	for !p.isOp("}") && !p.isEOF() {
		name, _, ok := p.expectIdent()
		if !ok {
			break
		}
		p.eatOp(":")
		val := p.parseExpr()
		fields = append(fields, ast.StructFieldInit{Name: name, Value: val})
		if p.isOp(",") {
			p.advance()
			continue
		}
		break
	}
	p.eatOp("}")
	return &ast.Expr{ID: p.newID(), Kind: ast.StructKind, Span: joinSpan(start, p.span()), StructFields: fields}
}

func (p *Parser) parseQuantifier(start common.Span) *ast.Expr {
	op := ast.Forall
	if p.isKeyword("sum") {
		op = ast.Sum
	}
	p.advance()
	var binders []ast.ForBinder
	for {
		name, _, _ := p.expectIdent()
		p.eatKeyword("in")
		coll := p.parseSet()
		binders = append(binders, ast.ForBinder{Name: name, Collection: coll})
		if p.isOp(",") {
			p.advance()
			continue
		}
		break
	}
	var where *ast.Expr
	if p.isKeyword("where") {
		p.advance()
		where = p.parseExpr()
	}
	p.eatOp("{")
	body := p.parseExpr()
	p.eatOp("}")
	return &ast.Expr{ID: p.newID(), Kind: ast.QuantifierKind, Span: joinSpan(start, p.span()), QuantOp: op, Binders: binders, Where: where, Body: body}
}

func joinSpan(a, b common.Span) common.Span {
	if a.Source == nil {
		return b
	}
	return common.Span{Source: a.Source, Start: a.Start, End: b.Start}
}
