package parser

import (
	"github.com/bop-lang/bop/ast"
	"github.com/bop-lang/bop/lexer"
	"github.com/bop-lang/bop/srcerr"
)

// parseExpression is the entry point for the full precedence chain,
// lowest (||) to highest (postfix call/index/method), all
// left-associative.
func (p *parser) parseExpression() (ast.Expr, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isOp("||") {
		line := p.cur().Line
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(line, "||", left, right)
	}
	return left, nil
}

func (p *parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.isOp("&&") {
		line := p.cur().Line
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(line, "&&", left, right)
	}
	return left, nil
}

func (p *parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.isOp("==") || p.isOp("!=") {
		op := p.cur().Text
		line := p.cur().Line
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(line, op, left, right)
	}
	return left, nil
}

func (p *parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.isOp("<") || p.isOp(">") || p.isOp("<=") || p.isOp(">=") {
		op := p.cur().Text
		line := p.cur().Line
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(line, op, left, right)
	}
	return left, nil
}

func (p *parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.isOp("+") || p.isOp("-") {
		op := p.cur().Text
		line := p.cur().Line
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(line, op, left, right)
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*") || p.isOp("/") || p.isOp("%") {
		op := p.cur().Text
		line := p.cur().Line
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(line, op, left, right)
	}
	return left, nil
}

// parseUnary recurses on itself for chained unary operators ("--x", "!!x"),
// so depth is tracked here too.
func (p *parser) parseUnary() (ast.Expr, error) {
	if p.isOp("!") || p.isOp("-") {
		op := p.cur().Text
		line := p.cur().Line
		p.advance()
		if err := p.enterDepth(); err != nil {
			return nil, err
		}
		defer p.leaveDepth()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(line, op, x), nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isDelim("["):
			line := p.cur().Line
			p.advance()
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectDelim("]"); err != nil {
				return nil, err
			}
			expr = ast.NewIndex(line, expr, idx)
		case p.isDelim("."):
			line := p.cur().Line
			p.advance()
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			if err := p.expectDelim("("); err != nil {
				return nil, err
			}
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = ast.NewMethodCall(line, expr, name, args)
		default:
			return expr, nil
		}
	}
}

// parseArgs parses a comma-separated, optionally trailing-comma argument
// list up to and including the closing ')'.
func (p *parser) parseArgs() ([]ast.Expr, error) {
	var args []ast.Expr
	for !p.isDelim(")") {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.isDelim(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectDelim(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()

	switch tok.Kind {
	case lexer.Number:
		p.advance()
		return ast.NewNumberLit(tok.Line, tok.Num), nil
	case lexer.Str:
		p.advance()
		return ast.NewStrLit(tok.Line, tok.Text), nil
	case lexer.InterpStr:
		p.advance()
		return ast.NewInterpStr(tok.Line, tok.Parts), nil
	case lexer.Ident:
		p.advance()
		if p.isDelim("(") {
			p.advance()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return ast.NewCall(tok.Line, tok.Text, args), nil
		}
		return ast.NewIdentifier(tok.Line, tok.Text), nil
	case lexer.Keyword:
		switch tok.Text {
		case "true":
			p.advance()
			return ast.NewBoolLit(tok.Line, true), nil
		case "false":
			p.advance()
			return ast.NewBoolLit(tok.Line, false), nil
		case "none":
			p.advance()
			return ast.NewNoneLit(tok.Line), nil
		case "if":
			return p.parseIfExpr()
		}
	case lexer.Delim:
		switch tok.Text {
		case "(":
			p.advance()
			if err := p.enterDepth(); err != nil {
				return nil, err
			}
			defer p.leaveDepth()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectDelim(")"); err != nil {
				return nil, err
			}
			return expr, nil
		case "[":
			return p.parseArrayLit()
		case "{":
			return p.parseDictLit()
		}
	}

	return nil, srcerr.New(tok.Line, "unexpected token %s %q", tok.Kind, tok.Text)
}

func (p *parser) parseIfExpr() (ast.Expr, error) {
	line := p.cur().Line
	p.advance() // 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectDelim("{"); err != nil {
		return nil, err
	}
	thenExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectDelim("}"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("else"); err != nil {
		return nil, err
	}
	if err := p.expectDelim("{"); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectDelim("}"); err != nil {
		return nil, err
	}
	return ast.NewIfExpr(line, cond, thenExpr, elseExpr), nil
}

func (p *parser) parseArrayLit() (ast.Expr, error) {
	line := p.cur().Line
	p.advance() // '['
	var elems []ast.Expr
	for !p.isDelim("]") {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.isDelim(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectDelim("]"); err != nil {
		return nil, err
	}
	return ast.NewArrayLit(line, elems), nil
}

func (p *parser) parseDictLit() (ast.Expr, error) {
	line := p.cur().Line
	p.advance() // '{'
	var keys []string
	var values []ast.Expr
	for !p.isDelim("}") {
		if p.cur().Kind != lexer.Str {
			return nil, srcerr.New(p.cur().Line, "dict keys must be quoted strings")
		}
		key := p.advance().Text
		if err := p.expectDelim(":"); err != nil {
			return nil, err
		}
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		values = append(values, v)
		if p.isDelim(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectDelim("}"); err != nil {
		return nil, err
	}
	return ast.NewDictLit(line, keys, values), nil
}
