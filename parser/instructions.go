package parser

import "github.com/bop-lang/bop/ast"

// CountInstructions is the public, format-independent instruction
// analyzer: each statement contributes 1; if/while/repeat/for recurse
// into their bodies; fn declarations count 1 but do not recurse into
// their body, intentionally rewarding factoring code into functions.
func CountInstructions(prog *ast.Program) int {
	return countBlock(prog.Stmts)
}

func countBlock(stmts []ast.Stmt) int {
	n := 0
	for _, s := range stmts {
		n += countStmt(s)
	}
	return n
}

func countStmt(s ast.Stmt) int {
	switch v := s.(type) {
	case *ast.If:
		n := 1
		for _, b := range v.Blocks {
			n += countBlock(b)
		}
		n += countBlock(v.Else)
		return n
	case *ast.While:
		return 1 + countBlock(v.Body)
	case *ast.Repeat:
		return 1 + countBlock(v.Body)
	case *ast.ForIn:
		return 1 + countBlock(v.Body)
	case *ast.FnDecl:
		return 1
	default:
		return 1
	}
}
