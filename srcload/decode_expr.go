// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcload

import (
	"encoding/json"

	"golang.org/x/xerrors"

	"github.com/nyxlang/nyxc/ast"
)

// decodeExpression dispatches one tagged-union expression node.
func decodeExpression(raw json.RawMessage) (ast.Expression, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var k kindPeek
	if err := json.Unmarshal(raw, &k); err != nil {
		return nil, xerrors.Errorf("srcload: decoding expression kind: %w", err)
	}
	switch k.Kind {
	case "identifier":
		var e struct {
			Name string    `json:"name"`
			R    rangeJSON `json:"r"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		return &ast.IdentifierExpression{Name: e.Name, R: e.R.toAST()}, nil

	case "this":
		var e struct {
			R rangeJSON `json:"r"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		return &ast.ThisExpression{R: e.R.toAST()}, nil

	case "super":
		var e struct {
			R rangeJSON `json:"r"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		return &ast.SuperExpression{R: e.R.toAST()}, nil

	case "string":
		var e struct {
			Value string    `json:"value"`
			R     rangeJSON `json:"r"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		return &ast.StringLiteralExpression{Value: e.Value, R: e.R.toAST()}, nil

	case "number":
		var e struct {
			Value int64     `json:"value"`
			R     rangeJSON `json:"r"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		return &ast.NumberLiteralExpression{Value: e.Value, R: e.R.toAST()}, nil

	case "paren":
		var e struct {
			Expr json.RawMessage `json:"expr"`
			R    rangeJSON       `json:"r"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		inner, err := decodeExpression(e.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ParenthesizedExpression{Expr: inner, R: e.R.toAST()}, nil

	case "assertion":
		var e struct {
			Expr   json.RawMessage `json:"expr"`
			ToType json.RawMessage `json:"toType"`
			R      rangeJSON       `json:"r"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		inner, err := decodeExpression(e.Expr)
		if err != nil {
			return nil, err
		}
		toType, err := decodeTypeNode(e.ToType)
		if err != nil {
			return nil, err
		}
		return &ast.AssertionExpression{Expr: inner, ToType: toType, R: e.R.toAST()}, nil

	case "propertyAccess":
		var e struct {
			Target json.RawMessage `json:"target"`
			Name   string          `json:"name"`
			R      rangeJSON       `json:"r"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		target, err := decodeExpression(e.Target)
		if err != nil {
			return nil, err
		}
		return &ast.PropertyAccessExpression{Target: target, Name: e.Name, R: e.R.toAST()}, nil

	case "elementAccess":
		var e struct {
			Target json.RawMessage `json:"target"`
			Index  json.RawMessage `json:"index"`
			R      rangeJSON       `json:"r"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		target, err := decodeExpression(e.Target)
		if err != nil {
			return nil, err
		}
		index, err := decodeExpression(e.Index)
		if err != nil {
			return nil, err
		}
		return &ast.ElementAccessExpression{Target: target, Index: index, R: e.R.toAST()}, nil

	case "call":
		var e struct {
			Target        json.RawMessage   `json:"target"`
			TypeArguments []json.RawMessage `json:"typeArguments"`
			Arguments     []json.RawMessage `json:"arguments"`
			R             rangeJSON         `json:"r"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		target, err := decodeExpression(e.Target)
		if err != nil {
			return nil, err
		}
		typeArgs, err := decodeTypeNodeList(e.TypeArguments)
		if err != nil {
			return nil, err
		}
		args := make([]ast.Expression, 0, len(e.Arguments))
		for _, a := range e.Arguments {
			arg, err := decodeExpression(a)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return &ast.CallExpression{Target: target, TypeArguments: typeArgs, Arguments: args, R: e.R.toAST()}, nil

	case "binary":
		var e struct {
			Op    string          `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
			R     rangeJSON       `json:"r"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		left, err := decodeExpression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Op: e.Op, Left: left, Right: right, R: e.R.toAST()}, nil

	case "arrayLiteral":
		var e struct {
			Elements []json.RawMessage `json:"elements"`
			R        rangeJSON         `json:"r"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		elems := make([]ast.Expression, 0, len(e.Elements))
		for _, el := range e.Elements {
			v, err := decodeExpression(el)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return &ast.ArrayLiteralExpression{Elements: elems, R: e.R.toAST()}, nil

	default:
		return nil, xerrors.Errorf("srcload: unknown expression kind %q", k.Kind)
	}
}

// decodeTypeNode dispatches one tagged-union type node.
func decodeTypeNode(raw json.RawMessage) (ast.TypeNode, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var k kindPeek
	if err := json.Unmarshal(raw, &k); err != nil {
		return nil, xerrors.Errorf("srcload: decoding type node kind: %w", err)
	}
	switch k.Kind {
	case "named":
		var t struct {
			Name          string            `json:"name"`
			TypeArguments []json.RawMessage `json:"typeArguments"`
			R             rangeJSON         `json:"r"`
		}
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, err
		}
		args, err := decodeTypeNodeList(t.TypeArguments)
		if err != nil {
			return nil, err
		}
		return &ast.NamedTypeNode{Name: t.Name, TypeArguments: args, R: t.R.toAST()}, nil

	case "function":
		var t struct {
			This       json.RawMessage   `json:"this"`
			Parameters []parameterJSON   `json:"parameters"`
			ReturnType json.RawMessage   `json:"returnType"`
			R          rangeJSON         `json:"r"`
		}
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, err
		}
		this, err := decodeTypeNode(t.This)
		if err != nil {
			return nil, err
		}
		params, err := decodeParameters(t.Parameters)
		if err != nil {
			return nil, err
		}
		ret, err := decodeTypeNode(t.ReturnType)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionTypeNode{This: this, Parameters: params, ReturnType: ret, R: t.R.toAST()}, nil

	default:
		return nil, xerrors.Errorf("srcload: unknown type node kind %q", k.Kind)
	}
}

func decodeTypeNodeList(raw []json.RawMessage) ([]ast.TypeNode, error) {
	out := make([]ast.TypeNode, 0, len(raw))
	for _, r := range raw {
		t, err := decodeTypeNode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

type parameterJSON struct {
	Name    string          `json:"name"`
	Type    json.RawMessage `json:"type"`
	Default json.RawMessage `json:"default"`
	IsRest  bool            `json:"isRest"`
	R       rangeJSON       `json:"r"`
}

func decodeParameters(raw []parameterJSON) ([]*ast.ParameterNode, error) {
	out := make([]*ast.ParameterNode, 0, len(raw))
	for _, p := range raw {
		t, err := decodeTypeNode(p.Type)
		if err != nil {
			return nil, err
		}
		def, err := decodeExpression(p.Default)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.ParameterNode{Name: p.Name, Type: t, Default: def, IsRest: p.IsRest, R: p.R.toAST()})
	}
	return out, nil
}
