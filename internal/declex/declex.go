// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package declex tokenizes the C declarator fragments that appear in
// tracefs "field:" lines: things like "unsigned long long", "char *",
// "struct foo *", or the "__data_loc char[]" prefix that marks a dynamic
// string field.
//
// It is a narrow descendant of the full C tokenizer in this module's
// teacher (internal/cparse/lex.go): field declarators never need a
// preprocessor, an expression grammar, or character/numeric literal
// parsing, so this lexer keeps only what a declarator needs — identifiers,
// bracketed lengths, parenthesized groups (skipped whole, since function
// pointers never appear here), quoted strings (also skipped whole), and
// single-character punctuation with '*' called out by name since pointer
// detection is the one punctuation question callers actually ask.
package declex

import "strings"

// TokKind classifies a Tok.
type TokKind uint8

const (
	Ident TokKind = iota
	Bracket // a whole "[...]" group, Text includes the brackets
	Paren   // a whole "(...)" group, Text includes the parens
	Quoted  // a whole "..." or '...' group, Text includes the quotes
	Star    // a single '*'
	Punct   // any other single-character punctuation
)

// Tok is one lexical token.
type Tok struct {
	Kind TokKind
	Text string
}

// Tokenize splits s into a sequence of Tok. It never returns an error:
// unterminated brackets/parens/quotes consume to the end of s, matching
// the "never fails" posture of the rest of this decoder.
func Tokenize(s string) []Tok {
	var toks []Tok
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case isSpace(c):
			i++
		case isIdentStart(c):
			j := i + 1
			for j < len(s) && isIdentCont(s[j]) {
				j++
			}
			toks = append(toks, Tok{Ident, s[i:j]})
			i = j
		case c == '[':
			j := matching(s, i, '[', ']')
			toks = append(toks, Tok{Bracket, s[i:j]})
			i = j
		case c == '(':
			j := matching(s, i, '(', ')')
			toks = append(toks, Tok{Paren, s[i:j]})
			i = j
		case c == '"' || c == '\'':
			j := matchingQuote(s, i, c)
			toks = append(toks, Tok{Quoted, s[i:j]})
			i = j
		case c == '*':
			toks = append(toks, Tok{Star, "*"})
			i++
		default:
			toks = append(toks, Tok{Punct, string(c)})
			i++
		}
	}
	return toks
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isIdentStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || '0' <= c && c <= '9'
}

// matching returns the index just past the closing delimiter matching an
// open delimiter at s[open], handling nesting. If no closing delimiter is
// found, it returns len(s).
func matching(s string, open int, openCh, closeCh byte) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}

func matchingQuote(s string, open int, quote byte) int {
	for i := open + 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == quote {
			return i + 1
		}
	}
	return len(s)
}

// idents returns the Text of every Ident token in toks, in order. Kept
// for the tokenizer's own tests; tracefmt.tokenizeDecl needs positional
// context (which ident came before which) that this flattening throws
// away, so it walks tok.Kind itself instead of calling this.
func idents(toks []Tok) []string {
	var out []string
	for _, t := range toks {
		if t.Kind == Ident {
			out = append(out, t.Text)
		}
	}
	return out
}

// hasStar reports whether toks contains a Star token, i.e. whether the
// declarator is a pointer type.
func hasStar(toks []Tok) bool {
	for _, t := range toks {
		if t.Kind == Star {
			return true
		}
	}
	return false
}

// bracketLength parses the content of the first Bracket token in toks as
// a decimal integer array length. ok is false if there is no Bracket
// token, or its content is empty (a VLA-style "[]") or not a plain
// decimal integer.
func bracketLength(toks []Tok) (n int, ok bool) {
	for _, t := range toks {
		if t.Kind != Bracket {
			continue
		}
		inner := strings.TrimSuffix(strings.TrimPrefix(t.Text, "["), "]")
		inner = strings.TrimSpace(inner)
		if inner == "" {
			return 0, false
		}
		v := 0
		for i := 0; i < len(inner); i++ {
			if inner[i] < '0' || inner[i] > '9' {
				return 0, false
			}
			v = v*10 + int(inner[i]-'0')
		}
		return v, true
	}
	return 0, false
}

// hasBracket reports whether toks contains a Bracket token at all (array
// declared, length unknown from this call alone).
func hasBracket(toks []Tok) bool {
	for _, t := range toks {
		if t.Kind == Bracket {
			return true
		}
	}
	return false
}
