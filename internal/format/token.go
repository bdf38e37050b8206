// Package format implements the DSL's tokenizer, parser, type system,
// statement AST, and expression nodes (spec.md §4.4-4.6): the hardest part
// of this repository. It is grounded on the teacher's scanner
// (vippsas-sqlcode/sqlparser/scanner.go), generalized from T-SQL tokens to
// the C-like grammar of spec.md §4.6.
package format

import (
	"sort"

	"github.com/ad-tool/ad/internal/diag"
)

type TokenType int

const (
	WhitespaceToken TokenType = iota + 1
	MultilineCommentToken
	SinglelineCommentToken

	LeftParenToken
	RightParenToken
	LeftBraceToken
	RightBraceToken
	LeftAngleToken
	RightAngleToken
	SemicolonToken
	ColonToken
	CommaToken
	EqualToken
	ScopeToken // "::"

	IdentifierToken
	NumberToken
	FloatToken
	StringToken
	CharToken
	KeywordToken

	PlusToken
	MinusToken
	StarToken
	SlashToken
	PercentToken
	AmpToken
	PipeToken
	CaretToken
	TildeToken
	BangToken
	QuestionToken
	ShlToken
	ShrToken
	AmpAmpToken
	PipePipeToken
	CaretCaretToken
	EqEqToken
	NotEqToken
	LeToken
	GeToken

	EOFToken
	NonUTF8ErrorToken
	UnterminatedStringErrorToken
	UnterminatedCharErrorToken
	UnexpectedCharacterToken
)

func (tt TokenType) String() string {
	if s, ok := tokenToDescription[tt]; ok {
		return s
	}
	return "UnknownToken"
}

var tokenToDescription = map[TokenType]string{
	WhitespaceToken:              "WhitespaceToken",
	MultilineCommentToken:        "MultilineCommentToken",
	SinglelineCommentToken:       "SinglelineCommentToken",
	LeftParenToken:               "LeftParenToken",
	RightParenToken:              "RightParenToken",
	LeftBraceToken:               "LeftBraceToken",
	RightBraceToken:              "RightBraceToken",
	LeftAngleToken:               "LeftAngleToken",
	RightAngleToken:              "RightAngleToken",
	SemicolonToken:               "SemicolonToken",
	ColonToken:                   "ColonToken",
	CommaToken:                   "CommaToken",
	EqualToken:                   "EqualToken",
	ScopeToken:                   "ScopeToken",
	IdentifierToken:              "IdentifierToken",
	NumberToken:                  "NumberToken",
	FloatToken:                   "FloatToken",
	StringToken:                  "StringToken",
	CharToken:                    "CharToken",
	KeywordToken:                 "KeywordToken",
	PlusToken:                    "PlusToken",
	MinusToken:                   "MinusToken",
	StarToken:                    "StarToken",
	SlashToken:                   "SlashToken",
	PercentToken:                 "PercentToken",
	AmpToken:                     "AmpToken",
	PipeToken:                    "PipeToken",
	CaretToken:                   "CaretToken",
	TildeToken:                   "TildeToken",
	BangToken:                    "BangToken",
	QuestionToken:                "QuestionToken",
	ShlToken:                     "ShlToken",
	ShrToken:                     "ShrToken",
	AmpAmpToken:                  "AmpAmpToken",
	PipePipeToken:                "PipePipeToken",
	CaretCaretToken:              "CaretCaretToken",
	EqEqToken:                    "EqEqToken",
	NotEqToken:                   "NotEqToken",
	LeToken:                      "LeToken",
	GeToken:                      "GeToken",
	EOFToken:                     "EOFToken",
	NonUTF8ErrorToken:            "NonUTF8ErrorToken",
	UnterminatedStringErrorToken: "UnterminatedStringErrorToken",
	UnterminatedCharErrorToken:   "UnterminatedCharErrorToken",
	UnexpectedCharacterToken:     "UnexpectedCharacterToken",
}

// keywords is the reserved-word set from spec.md §4.6.
var keywords = map[string]struct{}{
	"alignas": {}, "bool": {}, "break": {}, "case": {}, "default": {},
	"enum": {}, "false": {}, "float": {}, "int": {}, "offsetof": {},
	"sizeof": {}, "struct": {}, "switch": {}, "true": {}, "typedef": {},
	"uint": {}, "utf8": {}, "utf16": {}, "utf32": {}, "be": {}, "le": {},
	"if": {}, "else": {},
}

// IsKeyword reports whether s is one of the DSL's reserved words; exported
// so internal/format/scope.Parse can stop scoped-name parsing at a keyword
// boundary per spec.md §4.3.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// Keywords returns the sorted reserved-word list.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Pos is re-exported so callers of this package never need to import
// internal/diag directly just to read a token's location.
type Pos = diag.Pos

// Range is re-exported for the same reason.
type Range = diag.Range
