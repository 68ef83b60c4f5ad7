package interpreter

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

type ScanError struct {
	line    int
	message string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("Error on line %d: %s", e.line+1, e.message)
}

// Line returns the 1-based line the error was found on.
func (e *ScanError) Line() int {
	return e.line + 1
}

func NewScanner(source string) *Scanner {
	return &Scanner{source: source}
}

type Scanner struct {
	source  string
	start   int
	current int
	line    int
	tokens  []Token
}

func (s *Scanner) ScanTokens() ([]Token, error) {
	for !s.isAtEnd() {
		// we're at the beginning of the next lexeme
		s.start = s.current
		err := s.scanToken()
		if err != nil {
			return nil, err
		}
	}

	s.tokens = append(s.tokens, Token{TokenType: TokenEof, Line: s.line, Start: s.current})
	return s.tokens, nil
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) scanToken() error {
	char := s.advance()

	switch char {
	case '/':
		if !s.match('/') {
			return s.error("unexpected character: '/'")
		}
		for s.peek() != '\n' && !s.isAtEnd() {
			s.advance()
		}

	// Ignore whitespace
	case ' ', '\t', '\r':

	case '\n':
		s.addToken(TokenNewline)
		s.line++

	case ';':
		s.addToken(TokenSemicolon)
	case '=':
		s.addToken(TokenEqual)
	case '+':
		s.addToken(TokenPlus)
	case '*':
		s.addToken(TokenStar)
	case '(':
		s.addToken(TokenLeftParen)
	case ')':
		s.addToken(TokenRightParen)

	default:
		if s.isDigit(char) {
			err := s.number()
			if err != nil {
				return err
			}
		} else if s.isAlpha(char) {
			s.identifier()
		} else {
			return s.error(fmt.Sprintf("unexpected character: %s", strconv.QuoteRune(char)))
		}
	}

	return nil
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return '\000'
	}
	return rune(s.source[s.current])
}

func (s *Scanner) match(expected rune) bool {
	if s.isAtEnd() {
		return false
	}

	if rune(s.source[s.current]) != expected {
		return false
	}

	s.current++
	return true
}

func (s *Scanner) isDigit(char rune) bool {
	return char >= '0' && char <= '9'
}

func (s *Scanner) advance() rune {
	curr, size := utf8.DecodeRuneInString(s.source[s.current:])
	s.current += size
	return curr
}

func (s *Scanner) addToken(tokenType TokenType) {
	s.addTokenWithLiteral(tokenType, nil)
}

func (s *Scanner) number() error {
	for s.isDigit(s.peek()) {
		s.advance()
	}
	if s.isAlpha(s.peek()) {
		return s.error(fmt.Sprintf("invalid number: %q", s.source[s.start:s.current+1]))
	}

	val, err := strconv.Atoi(s.source[s.start:s.current])
	if err != nil {
		return s.error(fmt.Sprintf("integer literal out of range: %s", s.source[s.start:s.current]))
	}

	s.addTokenWithLiteral(TokenNumber, IntegerValue(val))
	return nil
}

func (s *Scanner) isAlpha(char rune) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char == '_')
}

var keywords = map[string]TokenType{
	"int":   TokenInt,
	"print": TokenPrint,
}

func (s *Scanner) identifier() {
	for s.isAlphaNumeric(s.peek()) {
		s.advance()
	}

	text := s.source[s.start:s.current]
	tokenType, found := keywords[text]
	if !found {
		tokenType = TokenIdentifier
	}
	s.addToken(tokenType)
}

func (s *Scanner) addTokenWithLiteral(tokenType TokenType, literal Value) {
	text := s.source[s.start:s.current]
	token := Token{
		TokenType: tokenType,
		Lexeme:    text,
		Literal:   literal,
		Line:      s.line,
		Start:     s.start,
	}
	s.tokens = append(s.tokens, token)
}

func (s *Scanner) isAlphaNumeric(char rune) bool {
	return s.isAlpha(char) || s.isDigit(char)
}

func (s *Scanner) error(message string) error {
	return &ScanError{line: s.line, message: message}
}
