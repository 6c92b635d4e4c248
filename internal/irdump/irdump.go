// Package irdump renders Resolved IR (internal/resolved) as JSON. It
// builds the document path-by-path with sjson rather than through
// encoding/json reflection, so the JSON shape is dictated by Resolved IR's
// own structure - kind-tagged nodes, generation-suffixed identifiers -
// instead of Go struct tags and zero-value elision.
package irdump

import (
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/vexlang/vexc/internal/resolved"
)

// Dump renders mod as a JSON document.
func Dump(mod *resolved.Module) (string, error) {
	doc := "{}"
	var err error

	if doc, err = sjson.Set(doc, "name", mod.Name); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "functions", []any{}); err != nil {
		return "", err
	}
	for i, fn := range mod.Functions {
		if doc, err = setFunctionDeclaration(doc, fmt.Sprintf("functions.%d", i), fn); err != nil {
			return "", err
		}
	}
	if doc, err = sjson.Set(doc, "body", []any{}); err != nil {
		return "", err
	}
	for i, stmt := range mod.Body {
		if doc, err = setStatement(doc, fmt.Sprintf("body.%d", i), stmt); err != nil {
			return "", err
		}
	}
	return doc, nil
}

func setIdentifier(doc, path string, id resolved.Identifier) (string, error) {
	var err error
	if doc, err = sjson.Set(doc, path+".name", id.Name); err != nil {
		return "", err
	}
	return sjson.Set(doc, path+".generation", id.Generation)
}

func setFunctionDeclaration(doc, path string, fn *resolved.FunctionDeclaration) (string, error) {
	var err error
	if doc, err = setIdentifier(doc, path+".name", fn.Name); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, path+".args", []any{}); err != nil {
		return "", err
	}
	for i, arg := range fn.Args {
		if doc, err = setIdentifier(doc, fmt.Sprintf("%s.args.%d", path, i), arg); err != nil {
			return "", err
		}
	}
	return setBlockStatement(doc, path+".body", fn.Body)
}

func setBlockStatement(doc, path string, block *resolved.BlockStatement) (string, error) {
	var err error
	if doc, err = sjson.Set(doc, path+".body", []any{}); err != nil {
		return "", err
	}
	for i, stmt := range block.Body {
		if doc, err = setStatement(doc, fmt.Sprintf("%s.body.%d", path, i), stmt); err != nil {
			return "", err
		}
	}
	return doc, nil
}

func setStatement(doc, path string, stmt resolved.Statement) (string, error) {
	var err error
	switch n := stmt.(type) {
	case *resolved.VariableDeclaration:
		if doc, err = sjson.Set(doc, path+".kind", "variable_declaration"); err != nil {
			return "", err
		}
		if doc, err = setIdentifier(doc, path+".name", n.Name); err != nil {
			return "", err
		}
		return setOptionalExpression(doc, path+".value", n.Value)

	case *resolved.VariableAssignment:
		if doc, err = sjson.Set(doc, path+".kind", "variable_assignment"); err != nil {
			return "", err
		}
		if doc, err = setMemberExpression(doc, path+".left", n.Left); err != nil {
			return "", err
		}
		return setOptionalExpression(doc, path+".value", n.Value)

	case *resolved.FunctionCall:
		if doc, err = sjson.Set(doc, path+".kind", "function_call"); err != nil {
			return "", err
		}
		if doc, err = setIdentifier(doc, path+".name", n.Name); err != nil {
			return "", err
		}
		return setExpressionList(doc, path+".args", n.Args)

	case *resolved.BlockStatement:
		if doc, err = sjson.Set(doc, path+".kind", "block"); err != nil {
			return "", err
		}
		return setBlockStatement(doc, path, n)

	case *resolved.IfElseStatement:
		if doc, err = sjson.Set(doc, path+".kind", "if_else"); err != nil {
			return "", err
		}
		if doc, err = setExpression(doc, path+".condition", n.Condition); err != nil {
			return "", err
		}
		if doc, err = setBlockStatement(doc, path+".if_clause", n.IfClause); err != nil {
			return "", err
		}
		return setBlockStatement(doc, path+".else_clause", n.ElseClause)

	case *resolved.WhileLoop:
		if doc, err = sjson.Set(doc, path+".kind", "while"); err != nil {
			return "", err
		}
		if doc, err = setExpression(doc, path+".condition", n.Condition); err != nil {
			return "", err
		}
		return setBlockStatement(doc, path+".body", n.Body)

	case *resolved.DoWhileLoop:
		if doc, err = sjson.Set(doc, path+".kind", "do_while"); err != nil {
			return "", err
		}
		if doc, err = setBlockStatement(doc, path+".body", n.Body); err != nil {
			return "", err
		}
		return setExpression(doc, path+".condition", n.Condition)

	case *resolved.ReturnStatement:
		if doc, err = sjson.Set(doc, path+".kind", "return"); err != nil {
			return "", err
		}
		return setOptionalExpression(doc, path+".value", n.Value)

	default:
		return "", fmt.Errorf("irdump: unhandled statement %T", stmt)
	}
}

func setOptionalExpression(doc, path string, e resolved.Expression) (string, error) {
	if e == nil {
		return sjson.Set(doc, path, nil)
	}
	return setExpression(doc, path, e)
}

func setExpressionList(doc, path string, list []resolved.Expression) (string, error) {
	var err error
	if doc, err = sjson.Set(doc, path, []any{}); err != nil {
		return "", err
	}
	for i, e := range list {
		if doc, err = setExpression(doc, fmt.Sprintf("%s.%d", path, i), e); err != nil {
			return "", err
		}
	}
	return doc, nil
}

func setMemberExpression(doc, path string, n *resolved.MemberExpression) (string, error) {
	var err error
	if doc, err = setIdentifier(doc, path+".root", n.Root); err != nil {
		return "", err
	}
	if n.Property == nil {
		return sjson.Set(doc, path+".property", nil)
	}
	return setProperty(doc, path+".property", n.Property)
}

func setProperty(doc, path string, p *resolved.Property) (string, error) {
	var err error
	if doc, err = sjson.Set(doc, path+".computed", p.Computed); err != nil {
		return "", err
	}
	if p.Computed {
		if doc, err = setExpression(doc, path+".key", p.Key); err != nil {
			return "", err
		}
	} else {
		if doc, err = sjson.Set(doc, path+".name", p.Name); err != nil {
			return "", err
		}
	}
	if doc, err = sjson.Set(doc, path+".isCall", p.IsCall); err != nil {
		return "", err
	}
	if p.IsCall {
		if doc, err = setExpressionList(doc, path+".args", p.Args); err != nil {
			return "", err
		}
	}
	if p.Next == nil {
		return sjson.Set(doc, path+".next", nil)
	}
	return setProperty(doc, path+".next", p.Next)
}

func setExpression(doc, path string, e resolved.Expression) (string, error) {
	var err error
	switch n := e.(type) {
	case *resolved.NumberLiteral:
		if doc, err = sjson.Set(doc, path+".kind", "number"); err != nil {
			return "", err
		}
		return sjson.Set(doc, path+".value", n.Value)

	case *resolved.StringLiteral:
		if doc, err = sjson.Set(doc, path+".kind", "string"); err != nil {
			return "", err
		}
		return sjson.Set(doc, path+".value", n.Value)

	case *resolved.BooleanLiteral:
		if doc, err = sjson.Set(doc, path+".kind", "boolean"); err != nil {
			return "", err
		}
		return sjson.Set(doc, path+".value", n.Value)

	case *resolved.UndefinedLiteral:
		return sjson.Set(doc, path+".kind", "undefined")

	case *resolved.NullLiteral:
		return sjson.Set(doc, path+".kind", "null")

	case *resolved.NaNLiteral:
		return sjson.Set(doc, path+".kind", "nan")

	case *resolved.InfinityLiteral:
		return sjson.Set(doc, path+".kind", "infinity")

	case *resolved.MemberExpression:
		if doc, err = sjson.Set(doc, path+".kind", "member"); err != nil {
			return "", err
		}
		return setMemberExpression(doc, path, n)

	case *resolved.FunctionCallValue:
		if doc, err = sjson.Set(doc, path+".kind", "call"); err != nil {
			return "", err
		}
		if doc, err = setIdentifier(doc, path+".name", n.Name); err != nil {
			return "", err
		}
		return setExpressionList(doc, path+".args", n.Args)

	case *resolved.ObjectExpression:
		if doc, err = sjson.Set(doc, path+".kind", "object"); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, path+".properties", []any{}); err != nil {
			return "", err
		}
		for i, prop := range n.Properties {
			propPath := fmt.Sprintf("%s.properties.%d", path, i)
			if doc, err = sjson.Set(doc, propPath+".key", prop.Key); err != nil {
				return "", err
			}
			if doc, err = setExpression(doc, propPath+".value", prop.Value); err != nil {
				return "", err
			}
		}
		return doc, nil

	case *resolved.ArrayExpression:
		if doc, err = sjson.Set(doc, path+".kind", "array"); err != nil {
			return "", err
		}
		return setExpressionList(doc, path+".elements", n.Elements)

	case *resolved.UnaryExpression:
		if doc, err = sjson.Set(doc, path+".kind", "unary"); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, path+".op", int(n.Op)); err != nil {
			return "", err
		}
		return setExpression(doc, path+".operand", n.Operand)

	case *resolved.BinaryExpression:
		if doc, err = sjson.Set(doc, path+".kind", "binary"); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, path+".op", int(n.Op)); err != nil {
			return "", err
		}
		if doc, err = setExpression(doc, path+".left", n.Left); err != nil {
			return "", err
		}
		return setExpression(doc, path+".right", n.Right)

	default:
		return "", fmt.Errorf("irdump: unhandled expression %T", e)
	}
}
