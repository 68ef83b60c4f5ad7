package interpreter

type TokenType int

const (
	TokenEof TokenType = iota
	TokenNewline
	TokenNumber
	TokenIdentifier
	TokenSemicolon
	TokenEqual
	TokenPlus
	TokenStar
	TokenLeftParen
	TokenRightParen
	TokenInt
	TokenPrint
)

var tokenNames = map[TokenType]string{
	TokenEof:        "end of input",
	TokenNewline:    "newline",
	TokenNumber:     "number",
	TokenIdentifier: "identifier",
	TokenSemicolon:  "';'",
	TokenEqual:      "'='",
	TokenPlus:       "'+'",
	TokenStar:       "'*'",
	TokenLeftParen:  "'('",
	TokenRightParen: "')'",
	TokenInt:        "'int'",
	TokenPrint:      "'print'",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown token"
}

type Token struct {
	TokenType TokenType
	Line      int
	Lexeme    string
	Start     int
	Literal   interface{}
}
