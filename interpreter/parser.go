package interpreter

import (
	"fmt"
)

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

/*
Parser grammar:

	program    => ( statement? terminator )* EOF
	terminator => NEWLINE | ";"
	statement  => defineStmt | printStmt | assignStmt
	defineStmt => "int" "*"? IDENTIFIER "=" expression
	printStmt  => "print" "(" expression ")"
	assignStmt => expression "=" expression
	expression => primary ( "+" primary )*
	primary    => NUMBER | IDENTIFIER | "*" IDENTIFIER | "(" expression ")"
*/
type Parser struct {
	tokens  []Token
	current int
}

func (p *Parser) Parse() (statements Program, err error) {
	defer func() {
		if recoveredErr := recover(); recoveredErr != nil {
			var ok bool
			if err, ok = recoveredErr.(parseError); !ok {
				panic(recoveredErr)
			}
		}
	}()

	statements = Program{}
	for !p.isAtEnd() {
		if p.match(TokenNewline, TokenSemicolon) {
			continue
		}
		stmt := p.statement()
		statements = append(statements, stmt)
		if !p.isAtEnd() {
			p.consume("expect end of statement", TokenNewline, TokenSemicolon)
		}
	}
	return statements, nil
}

// ParseExpression parses source holding a single expression.
func ParseExpression(source string) (expr Expr, err error) {
	tokens, err := NewScanner(source).ScanTokens()
	if err != nil {
		return nil, err
	}
	p := NewParser(tokens)
	defer func() {
		if recoveredErr := recover(); recoveredErr != nil {
			var ok bool
			if err, ok = recoveredErr.(parseError); !ok {
				panic(recoveredErr)
			}
		}
	}()

	expr = p.expression()
	if !p.isAtEnd() {
		panic(p.error("unexpected %s at end of expression", p.peek().TokenType))
	}
	return expr, nil
}

func (p *Parser) statement() Stmt {
	switch {
	case p.match(TokenInt):
		return p.defineStmt()
	case p.match(TokenPrint):
		return p.printStmt()
	}
	return p.assignStmt()
}

func (p *Parser) defineStmt() Stmt {
	declared := IntType
	if p.match(TokenStar) {
		declared = PointerType
	}
	name := p.consume("expect variable name", TokenIdentifier)
	p.consume("expect '=' after variable name", TokenEqual)
	initializer := p.expression()
	return DefineStmt{Type: declared, Name: name, Initializer: initializer}
}

func (p *Parser) printStmt() Stmt {
	p.consume("expect '(' after print", TokenLeftParen)
	expr := p.expression()
	p.consume("expect ')' after print argument", TokenRightParen)
	return PrintStmt{Expr: expr}
}

func (p *Parser) assignStmt() Stmt {
	target := p.expression()
	p.consume("expect '=' in assignment", TokenEqual)
	value := p.expression()
	return AssignStmt{Target: target, Value: value}
}

func (p *Parser) expression() Expr {
	expr := p.primary()

	for p.match(TokenPlus) {
		right := p.primary()
		expr = PlusExpr{Left: expr, Right: right}
	}
	return expr
}

func (p *Parser) primary() Expr {
	switch {
	case p.match(TokenNumber):
		return IntegerExpr{Value: p.previous().Literal.(IntegerValue)}
	case p.match(TokenIdentifier):
		return VariableExpr{Name: p.previous()}
	case p.match(TokenStar):
		name := p.consume("expect variable name after '*'", TokenIdentifier)
		return DerefExpr{Name: name}
	case p.match(TokenLeftParen):
		expr := p.expression()
		p.consume("expect ')' after expression", TokenRightParen)
		return expr
	}

	panic(p.error("expect expression, but got %s", p.peek().TokenType))
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tokenType := range types {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}

	return false
}

func (p *Parser) check(tokenType TokenType) bool {
	if p.isAtEnd() {
		return false
	}

	return p.peek().TokenType == tokenType
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().TokenType == TokenEof
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(message string, tokenTypes ...TokenType) Token {
	for _, tokenType := range tokenTypes {
		if p.check(tokenType) {
			return p.advance()
		}
	}
	panic(p.error("%s", message))
}

func (p *Parser) error(format string, any ...any) parseError {
	return parseError{line: p.peek().Line, message: fmt.Sprintf(format, any...)}
}
