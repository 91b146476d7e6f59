package parser

import (
	"github.com/bop-lang/bop/ast"
	"github.com/bop-lang/bop/lexer"
	"github.com/bop-lang/bop/srcerr"
)

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
}

func (p *parser) parseStmt() (ast.Stmt, error) {
	tok := p.cur()
	if tok.Kind == lexer.Keyword {
		switch tok.Text {
		case "let":
			return p.parseLet()
		case "if":
			return p.parseIfStmt()
		case "while":
			return p.parseWhile()
		case "repeat":
			return p.parseRepeat()
		case "for":
			return p.parseForIn()
		case "fn":
			return p.parseFnDecl()
		case "return":
			return p.parseReturn()
		case "break":
			p.advance()
			return ast.NewBreak(tok.Line), nil
		case "continue":
			p.advance()
			return ast.NewContinue(tok.Line), nil
		}
	}
	return p.parseExprOrAssignStmt()
}

func (p *parser) parseLet() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // 'let'
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp("="); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewLet(line, name, value), nil
}

func (p *parser) expectOp(text string) error {
	if !p.isOp(text) {
		return srcerr.New(p.cur().Line, "expected %q, got %s %q", text, p.cur().Kind, p.cur().Text)
	}
	p.advance()
	return nil
}

func isAssignTarget(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.Index:
		return true
	default:
		return false
	}
}

func (p *parser) parseExprOrAssignStmt() (ast.Stmt, error) {
	line := p.cur().Line
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == lexer.Op && assignOps[p.cur().Text] {
		op := p.advance().Text
		if !isAssignTarget(expr) {
			return nil, srcerr.New(line, "invalid assignment target")
		}
		rhs, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewAssign(line, expr, op, rhs), nil
	}
	return ast.NewExprStmt(line, expr), nil
}

func (p *parser) parseIfStmt() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // 'if'
	var conds []ast.Expr
	var blocks [][]ast.Stmt

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	conds = append(conds, cond)
	blocks = append(blocks, body)

	for p.isKeyword("else") {
		p.advance()
		if p.isKeyword("if") {
			p.advance()
			c, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			b, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			conds = append(conds, c)
			blocks = append(blocks, b)
			continue
		}
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return ast.NewIf(line, conds, blocks, elseBody), nil
	}
	return ast.NewIf(line, conds, blocks, nil), nil
}

func (p *parser) parseWhile() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // 'while'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(line, cond, body), nil
}

func (p *parser) parseRepeat() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // 'repeat'
	count, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewRepeat(line, count, body), nil
}

func (p *parser) parseForIn() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // 'for'
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("in"); err != nil {
		return nil, err
	}
	iter, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewForIn(line, name, iter, body), nil
}

func (p *parser) parseFnDecl() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // 'fn'
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectDelim("("); err != nil {
		return nil, err
	}
	var params []string
	for !p.isDelim(")") {
		pn, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		params = append(params, pn)
		if p.isDelim(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectDelim(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFnDecl(line, name, params, body), nil
}

func (p *parser) parseReturn() (ast.Stmt, error) {
	line := p.cur().Line
	p.advance() // 'return'
	if p.cur().Kind == lexer.Semicolon || p.isDelim("}") || p.atEnd() {
		return ast.NewReturn(line, nil), nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewReturn(line, value), nil
}
