// This file is part of jackc - https://github.com/db47h/jackc
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jack

import (
	"regexp"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"
)

// TokenType classifies a lexeme.
type TokenType int

// Token types. EOF marks stream exhaustion.
const (
	EOF TokenType = iota
	Keyword
	Symbol
	IntConst
	StringConst
	Identifier
)

func (t TokenType) String() string {
	switch t {
	case Keyword:
		return "keyword"
	case Symbol:
		return "symbol"
	case IntConst:
		return "integer constant"
	case StringConst:
		return "string constant"
	case Identifier:
		return "identifier"
	}
	return "end of input"
}

// Token is a single lexeme tagged with its type and source position. For
// string constants, Text holds the contents without the enclosing quotes.
type Token struct {
	Type TokenType
	Text string
	Pos  scanner.Position
}

// maxIntConst is the largest integer literal representable in a VM word.
const maxIntConst = 32767

const symbolChars = "{}()[].,;+-*/&|<>=~"

var keywords = map[string]bool{
	"class": true, "constructor": true, "function": true, "method": true,
	"field": true, "static": true, "var": true, "int": true, "char": true,
	"boolean": true, "void": true, "true": true, "false": true, "null": true,
	"this": true, "let": true, "do": true, "if": true, "else": true,
	"while": true, "return": true,
}

// The three recognisers applied at each scan step. Word covers both maximal
// alphanumeric runs and single symbol characters. Comment covers line
// comments (newline inclusive) and non-greedy block comments, which also
// takes care of /** doc comments.
var (
	stringRE  = regexp.MustCompile(`"[^"]*"`)
	wordRE    = regexp.MustCompile(`[0-9A-Za-z_]+|[{}()\[\].,;+\-*/&|<>=~]`)
	commentRE = regexp.MustCompile(`(?s)//[^\n]*\n?|/\*.*?\*/`)
)

// Tokenizer splits Jack source text into a stream of tokens, skipping
// comments. It maintains the current token and a single token of lookahead.
type Tokenizer struct {
	src     string
	pos     scanner.Position
	cur     Token
	next    Token
	nextErr error
}

// NewTokenizer returns a Tokenizer reading from src. The name parameter is
// used in error messages and token positions to name the source of the text.
// If the source is a file, name should be the file name.
//
// There is no current token until the first call to Advance.
func NewTokenizer(name, src string) *Tokenizer {
	t := &Tokenizer{
		src: src,
		pos: scanner.Position{Filename: name, Line: 1, Column: 1},
	}
	t.next, t.nextErr = t.scan()
	return t
}

// HasMore reports whether at least one more token can be produced by Advance.
// A pending lexical error counts as one more: Advance will return it.
func (t *Tokenizer) HasMore() bool {
	return t.next.Type != EOF || t.nextErr != nil
}

// Advance makes the next token the current one. At stream exhaustion the
// current token has type EOF. Lexical errors are reported by the Advance call
// that would have produced the offending token.
func (t *Tokenizer) Advance() error {
	if t.nextErr != nil {
		return t.nextErr
	}
	t.cur = t.next
	if t.cur.Type != EOF {
		t.next, t.nextErr = t.scan()
	}
	return nil
}

// Token returns the current token.
func (t *Tokenizer) Token() Token {
	return t.cur
}

// Peek returns the token that the next call to Advance will make current,
// without consuming it. At stream exhaustion, or if producing that token
// failed, the returned token has type EOF.
func (t *Tokenizer) Peek() Token {
	return t.next
}

// skip consumes the first n bytes of the remaining source, updating the
// position.
func (t *Tokenizer) skip(n int) {
	s := t.src[:n]
	t.pos.Offset += n
	if nl := strings.Count(s, "\n"); nl > 0 {
		t.pos.Line += nl
		t.pos.Column = n - strings.LastIndexByte(s, '\n')
	} else {
		t.pos.Column += n
	}
	t.src = t.src[n:]
}

// gap checks that the n bytes ahead of the chosen match are all whitespace.
// Anything else is either an unterminated string constant or a character no
// recogniser accepts; neither may be silently consumed.
func (t *Tokenizer) gap(n int) error {
	for i, r := range t.src[:n] {
		if unicode.IsSpace(r) {
			continue
		}
		t.skip(i)
		if r == '"' {
			return &Error{t.pos, "Unterminated string constant"}
		}
		return &Error{t.pos, "Invalid character " + strconv.QuoteRune(r)}
	}
	return nil
}

// scan produces the next token. Each recogniser yields its leftmost match;
// the smallest start offset wins, with ties broken in favour of comments,
// whose span is discarded before rescanning.
func (t *Tokenizer) scan() (Token, error) {
	for {
		best := stringRE.FindStringIndex(t.src)
		if w := wordRE.FindStringIndex(t.src); best == nil || w != nil && w[0] < best[0] {
			best = w
		}
		if c := commentRE.FindStringIndex(t.src); c != nil && (best == nil || c[0] <= best[0]) {
			if err := t.gap(c[0]); err != nil {
				return Token{}, err
			}
			t.skip(c[1])
			continue
		}
		if best == nil {
			if err := t.gap(len(t.src)); err != nil {
				return Token{}, err
			}
			t.skip(len(t.src))
			return Token{Type: EOF, Pos: t.pos}, nil
		}
		if err := t.gap(best[0]); err != nil {
			return Token{}, err
		}
		t.skip(best[0])
		text := t.src[:best[1]-best[0]]
		tok, err := t.classify(text)
		if err != nil {
			return Token{}, err
		}
		t.skip(len(text))
		return tok, nil
	}
}

// classify tags the matched text with its token type.
func (t *Tokenizer) classify(text string) (Token, error) {
	tok := Token{Text: text, Pos: t.pos}
	switch {
	case keywords[text]:
		tok.Type = Keyword
	case len(text) == 1 && strings.Contains(symbolChars, text):
		tok.Type = Symbol
	case isDigits(text):
		if n, err := strconv.Atoi(text); err != nil || n > maxIntConst {
			return Token{}, &Error{t.pos, "Integer constant " + text + " out of range"}
		}
		tok.Type = IntConst
	case text[0] == '"':
		tok.Type = StringConst
		tok.Text = text[1 : len(text)-1]
	default:
		tok.Type = Identifier
	}
	return tok, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
