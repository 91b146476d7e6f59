// Package parser implements Bop's depth-limited recursive-descent parser,
// turning a lexer.Token stream into an *ast.Program.
package parser

import (
	"github.com/bop-lang/bop/ast"
	"github.com/bop-lang/bop/lexer"
	"github.com/bop-lang/bop/srcerr"
)

// MaxDepth is the maximum recursion depth tracked around block bodies,
// parenthesized expressions and unary operators.
const MaxDepth = 128

// Parse lexes and parses src into a Program, or returns the first lex or
// parse error encountered. Parse is a pure function of src.
func Parse(src string) (*ast.Program, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseProgram()
}

type parser struct {
	toks  []lexer.Token
	pos   int
	depth int
}

func (p *parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *parser) atEnd() bool       { return p.cur().Kind == lexer.EOF }
func (p *parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) enterDepth() error {
	p.depth++
	if p.depth > MaxDepth {
		return srcerr.New(p.cur().Line, "Code is nested too deeply")
	}
	return nil
}

func (p *parser) leaveDepth() { p.depth-- }

func (p *parser) isKeyword(text string) bool {
	t := p.cur()
	return t.Kind == lexer.Keyword && t.Text == text
}

func (p *parser) isDelim(text string) bool {
	t := p.cur()
	return t.Kind == lexer.Delim && t.Text == text
}

func (p *parser) isOp(text string) bool {
	t := p.cur()
	return t.Kind == lexer.Op && t.Text == text
}

func (p *parser) expectDelim(text string) error {
	if !p.isDelim(text) {
		return srcerr.New(p.cur().Line, "expected %q, got %s %q", text, p.cur().Kind, p.cur().Text)
	}
	p.advance()
	return nil
}

func (p *parser) expectKeyword(text string) error {
	if !p.isKeyword(text) {
		return srcerr.New(p.cur().Line, "expected keyword %q, got %s %q", text, p.cur().Kind, p.cur().Text)
	}
	p.advance()
	return nil
}

func (p *parser) expectIdent() (string, error) {
	if p.cur().Kind != lexer.Ident {
		return "", srcerr.New(p.cur().Line, "expected identifier, got %s %q", p.cur().Kind, p.cur().Text)
	}
	t := p.advance()
	return t.Text, nil
}

// skipSemicolons consumes zero or more statement-separator tokens.
func (p *parser) skipSemicolons() {
	for p.cur().Kind == lexer.Semicolon {
		p.advance()
	}
}

func (p *parser) parseProgram() (*ast.Program, error) {
	p.skipSemicolons()
	var stmts []ast.Stmt
	for !p.atEnd() {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		if p.atEnd() {
			break
		}
		if p.cur().Kind != lexer.Semicolon {
			return nil, srcerr.New(p.cur().Line, "expected end of statement, got %s %q", p.cur().Kind, p.cur().Text)
		}
		p.skipSemicolons()
	}
	return &ast.Program{Stmts: stmts}, nil
}

// parseBlock parses a brace-delimited statement list, depth-limited.
func (p *parser) parseBlock() ([]ast.Stmt, error) {
	if err := p.enterDepth(); err != nil {
		return nil, err
	}
	defer p.leaveDepth()

	if err := p.expectDelim("{"); err != nil {
		return nil, err
	}
	p.skipSemicolons()
	var stmts []ast.Stmt
	for !p.isDelim("}") {
		if p.atEnd() {
			return nil, srcerr.New(p.cur().Line, "unexpected end of input, expected '}'")
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		if p.isDelim("}") {
			break
		}
		if p.cur().Kind != lexer.Semicolon {
			return nil, srcerr.New(p.cur().Line, "expected end of statement, got %s %q", p.cur().Kind, p.cur().Text)
		}
		p.skipSemicolons()
	}
	if err := p.expectDelim("}"); err != nil {
		return nil, err
	}
	return stmts, nil
}
