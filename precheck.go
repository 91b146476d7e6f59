package bop

import "strings"

// reservedWords lists identifiers a Bop program may never bind, whether
// because the language already uses them, reserves them for a future
// feature, or because they would confuse a reader coming from another
// language.
var reservedWords = []string{
	// Core language
	"let", "fn", "return", "if", "else", "while", "for", "in", "repeat", "break", "continue",
	// Literals
	"true", "false", "none",
	// Future
	"on", "event", "entity", "spawn", "state", "match", "loop", "class", "self", "import", "from",
	"as",
	// Error prevention
	"try", "catch", "throw", "async", "await", "yield", "const", "var", "pub", "use", "mod",
	"enum", "struct", "type",
	// Confusion prevention
	"null",
}

// CheckReservedWords scans src's raw text for reserved words used as a
// `let` or `fn` name, before the lexer ever sees it, so the error can
// point at a readable line of source rather than an obscure parse
// failure. Exported so a host can run it ahead of Run, e.g. to surface
// the hint in an editor before execution.
func CheckReservedWords(src string) *Error {
	lines := strings.Split(src, "\n")
	for _, kw := range reservedWords {
		letPattern := "let " + kw + " "
		if strings.Contains(src, letPattern) {
			return reservedWordError(lines, letPattern, kw, "variable")
		}

		fnPattern := "fn " + kw + "("
		fnPatternSpace := "fn " + kw + " ("
		if strings.Contains(src, fnPattern) || strings.Contains(src, fnPatternSpace) {
			if found := firstLineContaining(lines, fnPattern, fnPatternSpace); found > 0 {
				return newError(found, "`%s` is a reserved word in Bop", kw).
					WithHint("You can't name a function `" + kw + "` — try something like `do_" + kw + "` instead!")
			}
		}
	}
	return nil
}

func reservedWordError(lines []string, pattern, kw, what string) *Error {
	line := firstLineContaining(lines, pattern)
	err := newError(line, "`%s` is a reserved word in Bop", kw)
	if what == "variable" {
		err.WithHint("You can't use `" + kw + "` as a variable name — try something like `my_" + kw + "` instead!")
	}
	return err
}

func firstLineContaining(lines []string, patterns ...string) int {
	for i, line := range lines {
		for _, p := range patterns {
			if strings.Contains(line, p) {
				return i + 1
			}
		}
	}
	return 0
}
