// Package parser builds a surface AST (internal/ast) from a token stream
// (internal/lexer), using the reader's nested save/rewind frames to
// resolve local ambiguities: whether a statement-initial identifier begins
// a function call or an assignment, whether an `if` has a trailing `else`,
// and whether a member access chain continues.
package parser

import (
	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/lexer"
	"github.com/vexlang/vexc/internal/rpn"
	"github.com/vexlang/vexc/internal/token"
)

// Parse tokenizes and parses src into a Module named name.
func Parse(name, src string) (*ast.Module, error) {
	reader := lexer.NewTokenReader(src)
	var body []ast.Expression
	cur, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	for cur.Kind != token.EOF {
		stmt, err := parseStatement(cur, reader)
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		cur, err = reader.NextToken()
		if err != nil {
			return nil, err
		}
	}
	return &ast.Module{Name: name, Body: body}, nil
}

func expect(reader *lexer.TokenReader, kind token.Kind) (token.Token, error) {
	tok, err := reader.NextToken()
	if err != nil {
		return tok, err
	}
	if tok.Kind != kind {
		return tok, &lexer.UnexpectedTokenError{Token: tok}
	}
	return tok, nil
}

func parseStatement(cur token.Token, reader *lexer.TokenReader) (ast.Expression, error) {
	switch cur.Kind {
	case token.VAR, token.LET:
		return parseVariableDeclaration(cur, reader)
	case token.FUNCTION:
		return parseFunctionDeclaration(cur, reader)
	case token.RETURN:
		return parseReturnStatement(cur, reader)
	case token.LBRACE:
		return parseBlockStatement(cur, reader)
	case token.IF:
		return parseIfElseStatement(cur, reader)
	case token.WHILE:
		return parseWhileLoop(cur, reader)
	case token.DO:
		return parseDoWhileLoop(cur, reader)
	case token.IDENT:
		return parseIdentifierStatement(cur, reader)
	default:
		return nil, &lexer.UnexpectedTokenError{Token: cur}
	}
}

// parseIdentifierStatement resolves the statement-initial ambiguity
// between a function call ("foo(...)") and an assignment or bare
// reference ("foo = ...", "foo;"): it speculatively tries the call parse,
// and falls back to an assignment parse if that fails.
func parseIdentifierStatement(cur token.Token, reader *lexer.TokenReader) (ast.Expression, error) {
	reader.StartSaving()
	call, err := tryParseFunctionCallStatement(cur, reader)
	if err == nil {
		reader.ResetSaving()
		return call, nil
	}
	reader.StopSaving()
	return parseVariableAssignmentStatement(cur, reader)
}

func tryParseFunctionCallStatement(cur token.Token, reader *lexer.TokenReader) (*ast.FunctionCall, error) {
	if _, err := expect(reader, token.LPAREN); err != nil {
		return nil, err
	}
	args, err := parseArgList(reader)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionCall{Position: cur.Pos, Name: cur.Text, Args: args}, nil
}

func parseVariableAssignmentStatement(cur token.Token, reader *lexer.TokenReader) (*ast.VariableAssignment, error) {
	left, err := parseMemberExpression(cur, reader)
	if err != nil {
		return nil, err
	}
	reader.StartSaving()
	next, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	if next.Kind != token.ASSIGN {
		reader.StopSaving()
		return &ast.VariableAssignment{Position: cur.Pos, Left: left}, nil
	}
	reader.ResetSaving()
	rhsTok, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	right, err := parseVariableExpression(rhsTok, reader)
	if err != nil {
		return nil, err
	}
	return &ast.VariableAssignment{Position: cur.Pos, Left: left, Right: right}, nil
}

func parseMemberExpression(cur token.Token, reader *lexer.TokenReader) (*ast.MemberExpression, error) {
	chain, err := parsePropertyChain(reader)
	if err != nil {
		return nil, err
	}
	return &ast.MemberExpression{Position: cur.Pos, Root: cur.Text, Property: chain}, nil
}

// parsePropertyChain recurses to build an arbitrary-depth Property list,
// peeking one token at a time to decide whether the chain continues.
func parsePropertyChain(reader *lexer.TokenReader) (*ast.Property, error) {
	reader.StartSaving()
	next, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	switch next.Kind {
	case token.DOT:
		reader.ResetSaving()
		nameTok, err := expect(reader, token.IDENT)
		if err != nil {
			return nil, err
		}
		isCall, callArgs, err := maybeParseCallArgs(reader)
		if err != nil {
			return nil, err
		}
		rest, err := parsePropertyChain(reader)
		if err != nil {
			return nil, err
		}
		return &ast.Property{Position: next.Pos, Name: nameTok.Text, IsCall: isCall, Args: callArgs, Next: rest}, nil
	case token.LBRACKET:
		reader.ResetSaving()
		keyTok, err := reader.NextToken()
		if err != nil {
			return nil, err
		}
		key, err := parseVariableExpression(keyTok, reader)
		if err != nil {
			return nil, err
		}
		if _, err := expect(reader, token.RBRACKET); err != nil {
			return nil, err
		}
		rest, err := parsePropertyChain(reader)
		if err != nil {
			return nil, err
		}
		return &ast.Property{Position: next.Pos, Computed: true, Key: key, Next: rest}, nil
	default:
		reader.StopSaving()
		return nil, nil
	}
}

// maybeParseCallArgs peeks past a dotted property name for a following "(".
// If present, it is a method call and the argument list is consumed and
// returned; otherwise the lookahead is undone and the property is a plain
// field access.
func maybeParseCallArgs(reader *lexer.TokenReader) (bool, []ast.VariableExpression, error) {
	reader.StartSaving()
	next, err := reader.NextToken()
	if err != nil {
		return false, nil, err
	}
	if next.Kind != token.LPAREN {
		reader.StopSaving()
		return false, nil, nil
	}
	reader.ResetSaving()
	args, err := parseArgList(reader)
	if err != nil {
		return false, nil, err
	}
	return true, args, nil
}

func parseArgList(reader *lexer.TokenReader) ([]ast.VariableExpression, error) {
	var args []ast.VariableExpression
	tok, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.RPAREN {
		return args, nil
	}
	for {
		arg, err := parseVariableExpression(tok, reader)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		sep, err := reader.NextToken()
		if err != nil {
			return nil, err
		}
		switch sep.Kind {
		case token.RPAREN:
			return args, nil
		case token.COMMA:
			tok, err = reader.NextToken()
			if err != nil {
				return nil, err
			}
		default:
			return nil, &lexer.UnexpectedTokenError{Token: sep}
		}
	}
}

func parseArgNames(reader *lexer.TokenReader) ([]string, error) {
	var names []string
	tok, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.RPAREN {
		return names, nil
	}
	for {
		if tok.Kind != token.IDENT {
			return nil, &lexer.UnexpectedTokenError{Token: tok}
		}
		names = append(names, tok.Text)
		sep, err := reader.NextToken()
		if err != nil {
			return nil, err
		}
		switch sep.Kind {
		case token.RPAREN:
			return names, nil
		case token.COMMA:
			tok, err = reader.NextToken()
			if err != nil {
				return nil, err
			}
		default:
			return nil, &lexer.UnexpectedTokenError{Token: sep}
		}
	}
}

func parseVariableDeclaration(cur token.Token, reader *lexer.TokenReader) (*ast.VariableDeclaration, error) {
	nameTok, err := expect(reader, token.IDENT)
	if err != nil {
		return nil, err
	}
	decl := &ast.VariableDeclaration{Position: cur.Pos, Let: cur.Kind == token.LET, Name: nameTok.Text}

	reader.StartSaving()
	next, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	if next.Kind != token.ASSIGN {
		reader.StopSaving()
		return decl, nil
	}
	reader.ResetSaving()
	rhsTok, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	right, err := parseVariableExpression(rhsTok, reader)
	if err != nil {
		return nil, err
	}
	decl.Right = right
	return decl, nil
}

func parseFunctionDeclaration(cur token.Token, reader *lexer.TokenReader) (*ast.FunctionDeclaration, error) {
	nameTok, err := expect(reader, token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := expect(reader, token.LPAREN); err != nil {
		return nil, err
	}
	args, err := parseArgNames(reader)
	if err != nil {
		return nil, err
	}
	bodyTok, err := expect(reader, token.LBRACE)
	if err != nil {
		return nil, err
	}
	body, err := parseBlockStatement(bodyTok, reader)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{Position: cur.Pos, Name: nameTok.Text, Args: args, Body: body}, nil
}

// startsNewStatement reports whether kind can only begin a fresh statement
// (or end the enclosing block), which is how parseReturnStatement tells a
// bare `return` apart from `return <expr>` despite `;` carrying no token
// of its own.
func startsNewStatement(k token.Kind) bool {
	switch k {
	case token.RBRACE, token.VAR, token.LET, token.FUNCTION, token.RETURN,
		token.IF, token.WHILE, token.DO, token.EOF:
		return true
	}
	return false
}

func parseReturnStatement(cur token.Token, reader *lexer.TokenReader) (*ast.ReturnStatement, error) {
	reader.StartSaving()
	next, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	if startsNewStatement(next.Kind) {
		reader.StopSaving()
		return &ast.ReturnStatement{Position: cur.Pos}, nil
	}
	reader.ResetSaving()
	value, err := parseVariableExpression(next, reader)
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Position: cur.Pos, Value: value}, nil
}

func parseBlockStatement(cur token.Token, reader *lexer.TokenReader) (*ast.BlockStatement, error) {
	block := &ast.BlockStatement{Position: cur.Pos}
	tok, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	for tok.Kind != token.RBRACE {
		stmt, err := parseStatement(tok, reader)
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, stmt)
		tok, err = reader.NextToken()
		if err != nil {
			return nil, err
		}
	}
	return block, nil
}

func parseIfElseStatement(cur token.Token, reader *lexer.TokenReader) (*ast.IfElseStatement, error) {
	if _, err := expect(reader, token.LPAREN); err != nil {
		return nil, err
	}
	condTok, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	cond, err := parseVariableExpression(condTok, reader)
	if err != nil {
		return nil, err
	}
	if _, err := expect(reader, token.RPAREN); err != nil {
		return nil, err
	}
	ifBodyTok, err := expect(reader, token.LBRACE)
	if err != nil {
		return nil, err
	}
	ifClause, err := parseBlockStatement(ifBodyTok, reader)
	if err != nil {
		return nil, err
	}

	reader.StartSaving()
	next, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	elseClause := &ast.BlockStatement{Position: cur.Pos}
	if next.Kind == token.ELSE {
		reader.ResetSaving()
		elseBodyTok, err := expect(reader, token.LBRACE)
		if err != nil {
			return nil, err
		}
		elseClause, err = parseBlockStatement(elseBodyTok, reader)
		if err != nil {
			return nil, err
		}
	} else {
		reader.StopSaving()
	}
	return &ast.IfElseStatement{Position: cur.Pos, Condition: cond, IfClause: ifClause, ElseClause: elseClause}, nil
}

func parseWhileLoop(cur token.Token, reader *lexer.TokenReader) (*ast.WhileLoop, error) {
	if _, err := expect(reader, token.LPAREN); err != nil {
		return nil, err
	}
	condTok, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	cond, err := parseVariableExpression(condTok, reader)
	if err != nil {
		return nil, err
	}
	if _, err := expect(reader, token.RPAREN); err != nil {
		return nil, err
	}
	bodyTok, err := expect(reader, token.LBRACE)
	if err != nil {
		return nil, err
	}
	body, err := parseBlockStatement(bodyTok, reader)
	if err != nil {
		return nil, err
	}
	return &ast.WhileLoop{Position: cur.Pos, Condition: cond, Body: body}, nil
}

func parseDoWhileLoop(cur token.Token, reader *lexer.TokenReader) (*ast.DoWhileLoop, error) {
	bodyTok, err := expect(reader, token.LBRACE)
	if err != nil {
		return nil, err
	}
	body, err := parseBlockStatement(bodyTok, reader)
	if err != nil {
		return nil, err
	}
	if _, err := expect(reader, token.WHILE); err != nil {
		return nil, err
	}
	if _, err := expect(reader, token.LPAREN); err != nil {
		return nil, err
	}
	condTok, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	cond, err := parseVariableExpression(condTok, reader)
	if err != nil {
		return nil, err
	}
	if _, err := expect(reader, token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.DoWhileLoop{Position: cur.Pos, Body: body, Condition: cond}, nil
}

// parseVariableExpression parses a value expression via the rpn package:
// prefix operators are pushed eagerly, each primary term is fed in as a
// Value, and a following binary operator is detected with a one-token save
// frame so an expression cleanly hands back control (without consuming the
// token that ends it) the moment it sees something that isn't one.
func parseVariableExpression(cur token.Token, reader *lexer.TokenReader) (ast.VariableExpression, error) {
	transformer := rpn.New(priorityOf)
	tok := cur
	for {
		for tok.Kind == token.NOT || tok.Kind == token.SUB {
			op := ast.UnaryNot
			if tok.Kind == token.SUB {
				op = ast.UnaryNeg
			}
			if err := transformer.Push(rpn.PrefixOp(op)); err != nil {
				return nil, err
			}
			next, err := reader.NextToken()
			if err != nil {
				return nil, err
			}
			tok = next
		}

		val, err := parsePrimary(tok, reader)
		if err != nil {
			return nil, err
		}
		if err := transformer.Push(rpn.Value(val)); err != nil {
			return nil, err
		}

		reader.StartSaving()
		next, err := reader.NextToken()
		if err != nil {
			return nil, err
		}
		binOp, isBin := binaryOpOf(next.Kind)
		if !isBin {
			reader.StopSaving()
			break
		}
		reader.ResetSaving()
		if err := transformer.Push(rpn.BinaryOp(binOp)); err != nil {
			return nil, err
		}
		following, err := reader.NextToken()
		if err != nil {
			return nil, err
		}
		tok = following
	}

	tree, err := transformer.Finish()
	if err != nil {
		return nil, err
	}
	return fromRPN(tree), nil
}

func parsePrimary(cur token.Token, reader *lexer.TokenReader) (ast.VariableExpression, error) {
	switch cur.Kind {
	case token.NUMBER:
		return &ast.NumberLiteral{Position: cur.Pos, Value: cur.NumberValue}, nil
	case token.STRING:
		return &ast.StringLiteral{Position: cur.Pos, Value: cur.Text}, nil
	case token.BOOLEAN:
		return &ast.BooleanLiteral{Position: cur.Pos, Value: cur.BoolValue}, nil
	case token.UNDEFINED:
		return &ast.UndefinedLiteral{Position: cur.Pos}, nil
	case token.NULL:
		return &ast.NullLiteral{Position: cur.Pos}, nil
	case token.NAN:
		return &ast.NaNLiteral{Position: cur.Pos}, nil
	case token.INFINITY:
		return &ast.InfinityLiteral{Position: cur.Pos}, nil
	case token.LPAREN:
		return parseGrouping(cur, reader)
	case token.LBRACE:
		return parseObjectExpression(cur, reader)
	case token.LBRACKET:
		return parseArrayExpression(cur, reader)
	case token.IDENT:
		return parseIdentifierValue(cur, reader)
	default:
		return nil, &lexer.UnexpectedTokenError{Token: cur}
	}
}

func parseIdentifierValue(cur token.Token, reader *lexer.TokenReader) (ast.VariableExpression, error) {
	reader.StartSaving()
	next, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	if next.Kind == token.LPAREN {
		reader.ResetSaving()
		args, err := parseArgList(reader)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCallValue{Position: cur.Pos, Name: cur.Text, Args: args}, nil
	}
	reader.StopSaving()
	return parseMemberExpression(cur, reader)
}

func parseGrouping(cur token.Token, reader *lexer.TokenReader) (ast.VariableExpression, error) {
	innerTok, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	inner, err := parseVariableExpression(innerTok, reader)
	if err != nil {
		return nil, err
	}
	if _, err := expect(reader, token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.Grouping{Position: cur.Pos, Inner: inner}, nil
}

func parseObjectExpression(cur token.Token, reader *lexer.TokenReader) (ast.VariableExpression, error) {
	obj := &ast.ObjectExpression{Position: cur.Pos}
	tok, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.RBRACE {
		return obj, nil
	}
	for {
		if tok.Kind != token.IDENT && tok.Kind != token.STRING {
			return nil, &lexer.UnexpectedTokenError{Token: tok}
		}
		key := tok.Text
		if _, err := expect(reader, token.COLON); err != nil {
			return nil, err
		}
		valTok, err := reader.NextToken()
		if err != nil {
			return nil, err
		}
		value, err := parseVariableExpression(valTok, reader)
		if err != nil {
			return nil, err
		}
		obj.Properties = append(obj.Properties, ast.ObjectProperty{Key: key, Value: value})
		sep, err := reader.NextToken()
		if err != nil {
			return nil, err
		}
		switch sep.Kind {
		case token.RBRACE:
			return obj, nil
		case token.COMMA:
			tok, err = reader.NextToken()
			if err != nil {
				return nil, err
			}
		default:
			return nil, &lexer.UnexpectedTokenError{Token: sep}
		}
	}
}

func parseArrayExpression(cur token.Token, reader *lexer.TokenReader) (ast.VariableExpression, error) {
	arr := &ast.ArrayExpression{Position: cur.Pos}
	tok, err := reader.NextToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.RBRACKET {
		return arr, nil
	}
	for {
		elem, err := parseVariableExpression(tok, reader)
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, elem)
		sep, err := reader.NextToken()
		if err != nil {
			return nil, err
		}
		switch sep.Kind {
		case token.RBRACKET:
			return arr, nil
		case token.COMMA:
			tok, err = reader.NextToken()
			if err != nil {
				return nil, err
			}
		default:
			return nil, &lexer.UnexpectedTokenError{Token: sep}
		}
	}
}

func binaryOpOf(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.AND:
		return ast.BinaryAnd, true
	case token.OR:
		return ast.BinaryOr, true
	case token.EQ:
		return ast.BinaryEq, true
	case token.NE:
		return ast.BinaryNe, true
	case token.SEQ:
		return ast.BinarySEq, true
	case token.SNE:
		return ast.BinarySNe, true
	case token.GT:
		return ast.BinaryGt, true
	case token.GE:
		return ast.BinaryGe, true
	case token.LT:
		return ast.BinaryLt, true
	case token.LE:
		return ast.BinaryLe, true
	case token.ADD:
		return ast.BinaryAdd, true
	case token.SUB:
		return ast.BinarySub, true
	case token.MUL:
		return ast.BinaryMul, true
	case token.DIV:
		return ast.BinaryDiv, true
	default:
		return 0, false
	}
}

func priorityOf(op any) uint8 {
	switch op.(ast.BinaryOp) {
	case ast.BinaryOr:
		return 1
	case ast.BinaryAnd:
		return 2
	case ast.BinaryEq, ast.BinaryNe, ast.BinarySEq, ast.BinarySNe:
		return 3
	case ast.BinaryGt, ast.BinaryGe, ast.BinaryLt, ast.BinaryLe:
		return 4
	case ast.BinaryAdd, ast.BinarySub:
		return 5
	case ast.BinaryMul, ast.BinaryDiv:
		return 6
	default:
		return 0
	}
}

func fromRPN(e rpn.Expr) ast.VariableExpression {
	switch v := e.(type) {
	case rpn.ValueExpr:
		return v.Value.(ast.VariableExpression)
	case rpn.UnaryExpr:
		operand := fromRPN(v.Operand)
		return &ast.UnaryExpression{Position: operand.Pos(), Op: v.Op.(ast.UnaryOp), Operand: operand}
	case rpn.BinaryExpr:
		left := fromRPN(v.Left)
		right := fromRPN(v.Right)
		return &ast.BinaryExpression{Position: left.Pos(), Op: v.Op.(ast.BinaryOp), Left: left, Right: right}
	default:
		panic("parser: unrecognized rpn expression node")
	}
}
