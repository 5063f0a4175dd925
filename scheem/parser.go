package scheem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

type Parser struct {
	lexer *Lexer
	depth int
}

// MaxParseDepth bounds how deeply lists and quotes may nest in source.
const MaxParseDepth = DefaultMaxDepth

var ErrUnexpectedEnd = errors.New("Unexpected end of input")
var ErrUnexpectedRParen = errors.New("Unexpected ')'")

const SliceDefaultCap = 10

func ParseList(parser *Parser) (Sexp, error) {
	lexer := parser.lexer
	list := make(SexpList, 0, SliceDefaultCap)

	for {
		tok, err := lexer.PeekNextToken()
		if err != nil {
			return SexpEnd, err
		}

		if tok.typ == TokenEnd {
			return SexpEnd, ErrUnexpectedEnd
		}

		if tok.typ == TokenRParen {
			// pop off the )
			_, _ = lexer.GetNextToken()
			break
		}

		expr, err := ParseExpression(parser)
		if err != nil {
			return SexpNil, err
		}
		list = append(list, expr)
	}

	return list, nil
}

func ParseExpression(parser *Parser) (Sexp, error) {
	lexer := parser.lexer
	tok, err := lexer.GetNextToken()
	if err != nil {
		return SexpEnd, err
	}

	switch tok.typ {
	case TokenLParen, TokenQuote:
		parser.depth++
		defer func() { parser.depth-- }()
		if parser.depth > MaxParseDepth {
			return SexpNil, fmt.Errorf("nesting deeper than %d: %w", MaxParseDepth, ErrRecursionDepth)
		}
	}

	switch tok.typ {
	case TokenLParen:
		return ParseList(parser)
	case TokenRParen:
		return SexpNil, ErrUnexpectedRParen
	case TokenQuote:
		expr, err := ParseExpression(parser)
		if err != nil {
			return SexpNil, err
		}
		if expr == SexpEnd {
			return SexpNil, ErrUnexpectedEnd
		}
		return MakeList(MakeSymbol("quote"), expr), nil
	case TokenSymbol:
		return MakeSymbol(tok.str), nil
	case TokenBool:
		return SexpBool(tok.str == trueToken), nil
	case TokenNil:
		return SexpNil, nil
	case TokenNumber:
		f, err := strconv.ParseFloat(tok.str, 64)
		if err != nil {
			return SexpNil, err
		}
		return SexpNumber(f), nil
	case TokenEnd:
		return SexpEnd, nil
	}
	return SexpNil, errors.New("Invalid syntax")
}

func ParseTokens(lexer *Lexer) ([]Sexp, error) {
	expressions := make([]Sexp, 0, SliceDefaultCap)
	parser := Parser{lexer: lexer}

	for {
		expr, err := ParseExpression(&parser)
		if err != nil {
			return expressions, err
		}
		if expr == SexpEnd {
			break
		}
		expressions = append(expressions, expr)
	}
	return expressions, nil
}

// ParseStream reads every top-level expression from stream.
func ParseStream(stream io.RuneReader) ([]Sexp, error) {
	lexer := NewLexerFromStream(stream)

	expressions, err := ParseTokens(lexer)
	if err != nil {
		return nil, fmt.Errorf("Error on line %d: %w", lexer.Linenum(), err)
	}
	return expressions, nil
}

func ParseString(str string) ([]Sexp, error) {
	return ParseStream(bytes.NewBufferString(str))
}
