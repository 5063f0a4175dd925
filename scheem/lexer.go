package scheem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
)

type TokenType int

const (
	TokenLParen TokenType = iota
	TokenRParen
	TokenQuote
	TokenSymbol
	TokenBool
	TokenNil
	TokenNumber
	TokenEnd
)

type Token struct {
	typ TokenType
	str string
}

func (t Token) String() string {
	switch t.typ {
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenQuote:
		return "'"
	case TokenEnd:
		return "End"
	}
	return t.str
}

type LexerState int

const (
	LexerNormal LexerState = iota
	LexerComment
)

type Lexer struct {
	state    LexerState
	tokens   []Token
	buffer   *bytes.Buffer
	stream   io.RuneReader
	linenum  int
	finished bool
}

var (
	BoolRegex   = regexp.MustCompile(`^#[tf]$`)
	NumberRegex = regexp.MustCompile(`^[-+]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][-+]?[0-9]+)?$`)
	// atoms draw from letters, digits and _?!+-=@#$%^&*/.<>
	SymbolRegex = regexp.MustCompile(`^[A-Za-z0-9_?!+\-=@#$%^&*/.<>]+$`)
)

const (
	trueToken  = "#t"
	falseToken = "#f"
	nilToken   = "#nil"
	errorToken = "error"
)

// IsNumberLiteral reports whether the lexer would read s as a number.
// Such text can never name a variable.
func IsNumberLiteral(s string) bool {
	return NumberRegex.MatchString(s)
}

func DecodeAtom(atom string) (Token, error) {
	if BoolRegex.MatchString(atom) {
		return Token{TokenBool, atom}, nil
	}
	if atom == nilToken {
		return Token{TokenNil, atom}, nil
	}
	if NumberRegex.MatchString(atom) {
		return Token{TokenNumber, atom}, nil
	}
	if SymbolRegex.MatchString(atom) {
		return Token{TokenSymbol, atom}, nil
	}
	return Token{}, fmt.Errorf("Unrecognized atom: '%s'", atom)
}

func (lexer *Lexer) dumpBuffer() error {
	if lexer.buffer.Len() <= 0 {
		return nil
	}

	tok, err := DecodeAtom(lexer.buffer.String())
	if err != nil {
		return err
	}

	lexer.buffer.Reset()
	lexer.tokens = append(lexer.tokens, tok)
	return nil
}

func DecodeBrace(brace rune) Token {
	switch brace {
	case '(':
		return Token{TokenLParen, ""}
	case ')':
		return Token{TokenRParen, ""}
	}
	return Token{TokenEnd, ""}
}

func (lexer *Lexer) LexNextRune(r rune) error {
	if lexer.state == LexerComment {
		if r == '\n' {
			lexer.linenum++
			lexer.state = LexerNormal
		}
		return nil
	}

	switch r {
	case ';':
		err := lexer.dumpBuffer()
		if err != nil {
			return err
		}
		lexer.state = LexerComment
		return nil

	case '\'':
		if lexer.buffer.Len() > 0 {
			return errors.New("Unexpected quote")
		}
		lexer.tokens = append(lexer.tokens, Token{TokenQuote, ""})
		return nil

	case '(', ')':
		err := lexer.dumpBuffer()
		if err != nil {
			return err
		}
		lexer.tokens = append(lexer.tokens, DecodeBrace(r))
		return nil

	case ' ', '\n', '\t', '\r':
		if r == '\n' {
			lexer.linenum++
		}
		return lexer.dumpBuffer()
	}

	_, err := lexer.buffer.WriteRune(r)
	return err
}

func (lexer *Lexer) PeekNextToken() (Token, error) {
	if lexer.finished && len(lexer.tokens) == 0 {
		return Token{TokenEnd, ""}, nil
	}
	for len(lexer.tokens) == 0 {
		r, _, err := lexer.stream.ReadRune()
		if err != nil {
			lexer.finished = true
			if lexer.buffer.Len() > 0 {
				if err := lexer.dumpBuffer(); err != nil {
					return Token{TokenEnd, ""}, err
				}
				return lexer.tokens[0], nil
			}
			return Token{TokenEnd, ""}, nil
		}

		err = lexer.LexNextRune(r)
		if err != nil {
			return Token{TokenEnd, ""}, err
		}
	}

	return lexer.tokens[0], nil
}

func (lexer *Lexer) GetNextToken() (Token, error) {
	tok, err := lexer.PeekNextToken()
	if err != nil || tok.typ == TokenEnd {
		return Token{TokenEnd, ""}, err
	}
	lexer.tokens = lexer.tokens[1:]
	return tok, nil
}

func NewLexerFromStream(stream io.RuneReader) *Lexer {
	return &Lexer{
		tokens:  make([]Token, 0, 10),
		buffer:  new(bytes.Buffer),
		state:   LexerNormal,
		stream:  stream,
		linenum: 1,
	}
}

func (lexer *Lexer) Linenum() int {
	return lexer.linenum
}
