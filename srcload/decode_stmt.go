// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcload

import (
	"encoding/json"

	"golang.org/x/xerrors"

	"github.com/nyxlang/nyxc/ast"
)

// decodeStatement dispatches one tagged-union statement node, covering
// both declarations (class, function, ...) and control-flow statements.
func decodeStatement(raw json.RawMessage) (ast.Statement, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var k kindPeek
	if err := json.Unmarshal(raw, &k); err != nil {
		return nil, xerrors.Errorf("srcload: decoding statement kind: %w", err)
	}
	switch k.Kind {
	case "class":
		var d struct {
			Name            string            `json:"name"`
			TypeParameters  []typeParamJSON    `json:"typeParameters"`
			ExtendsType     json.RawMessage    `json:"extendsType"`
			ImplementsTypes []json.RawMessage  `json:"implementsTypes"`
			Members         []json.RawMessage  `json:"members"`
			Flags           []string           `json:"flags"`
			Decorators      []decoratorJSON    `json:"decorators"`
			R               rangeJSON          `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		var extends *ast.NamedTypeNode
		if len(d.ExtendsType) > 0 && string(d.ExtendsType) != "null" {
			t, err := decodeTypeNode(d.ExtendsType)
			if err != nil {
				return nil, err
			}
			nt, ok := t.(*ast.NamedTypeNode)
			if !ok {
				return nil, xerrors.Errorf("srcload: class extendsType must be a named type")
			}
			extends = nt
		}
		implements, err := decodeNamedTypeList(d.ImplementsTypes)
		if err != nil {
			return nil, err
		}
		members, err := decodeStatementList(d.Members)
		if err != nil {
			return nil, err
		}
		decorators, err := decodeDecorators(d.Decorators)
		if err != nil {
			return nil, err
		}
		return &ast.ClassDeclaration{
			Name:            d.Name,
			TypeParameters:  decodeTypeParams(d.TypeParameters),
			ExtendsType:     extends,
			ImplementsTypes: implements,
			Members:         members,
			Flags:           declFlagsOf(d.Flags),
			Decorators:      decorators,
			R:               d.R.toAST(),
		}, nil

	case "interface":
		var d struct {
			Name            string            `json:"name"`
			TypeParameters  []typeParamJSON   `json:"typeParameters"`
			ImplementsTypes []json.RawMessage `json:"implementsTypes"`
			Members         []json.RawMessage `json:"members"`
			Flags           []string          `json:"flags"`
			Decorators      []decoratorJSON   `json:"decorators"`
			R               rangeJSON         `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		implements, err := decodeNamedTypeList(d.ImplementsTypes)
		if err != nil {
			return nil, err
		}
		members, err := decodeStatementList(d.Members)
		if err != nil {
			return nil, err
		}
		decorators, err := decodeDecorators(d.Decorators)
		if err != nil {
			return nil, err
		}
		return &ast.InterfaceDeclaration{
			Name:            d.Name,
			TypeParameters:  decodeTypeParams(d.TypeParameters),
			ImplementsTypes: implements,
			Members:         members,
			Flags:           declFlagsOf(d.Flags),
			Decorators:      decorators,
			R:               d.R.toAST(),
		}, nil

	case "field":
		var d struct {
			Name        string          `json:"name"`
			Type        json.RawMessage `json:"type"`
			Initializer json.RawMessage `json:"initializer"`
			Flags       []string        `json:"flags"`
			R           rangeJSON       `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		typ, err := decodeTypeNode(d.Type)
		if err != nil {
			return nil, err
		}
		init, err := decodeExpression(d.Initializer)
		if err != nil {
			return nil, err
		}
		return &ast.FieldDeclaration{Name: d.Name, Type: typ, Initializer: init, Flags: declFlagsOf(d.Flags), R: d.R.toAST()}, nil

	case "method":
		var d struct {
			Name           string            `json:"name"`
			TypeParameters []typeParamJSON   `json:"typeParameters"`
			Signature      json.RawMessage   `json:"signature"`
			Body           []json.RawMessage `json:"body"`
			Flags          []string          `json:"flags"`
			Decorators     []decoratorJSON   `json:"decorators"`
			R              rangeJSON         `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		sig, err := decodeFunctionType(d.Signature)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatementList(d.Body)
		if err != nil {
			return nil, err
		}
		decorators, err := decodeDecorators(d.Decorators)
		if err != nil {
			return nil, err
		}
		return &ast.MethodDeclaration{
			Name:           d.Name,
			TypeParameters: decodeTypeParams(d.TypeParameters),
			Signature:      sig,
			Body:           body,
			Flags:          declFlagsOf(d.Flags),
			Decorators:     decorators,
			R:              d.R.toAST(),
		}, nil

	case "function":
		var d struct {
			Name           string            `json:"name"`
			TypeParameters []typeParamJSON   `json:"typeParameters"`
			Signature      json.RawMessage   `json:"signature"`
			Body           []json.RawMessage `json:"body"`
			Flags          []string          `json:"flags"`
			Decorators     []decoratorJSON   `json:"decorators"`
			R              rangeJSON         `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		sig, err := decodeFunctionType(d.Signature)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatementList(d.Body)
		if err != nil {
			return nil, err
		}
		decorators, err := decodeDecorators(d.Decorators)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionDeclaration{
			Name:           d.Name,
			TypeParameters: decodeTypeParams(d.TypeParameters),
			Signature:      sig,
			Body:           body,
			Flags:          declFlagsOf(d.Flags),
			Decorators:     decorators,
			R:              d.R.toAST(),
		}, nil

	case "enum":
		var d struct {
			Name   string `json:"name"`
			Values []struct {
				Name        string          `json:"name"`
				Initializer json.RawMessage `json:"initializer"`
				R           rangeJSON       `json:"r"`
			} `json:"values"`
			Flags []string  `json:"flags"`
			R     rangeJSON `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		values := make([]*ast.EnumValueDeclaration, 0, len(d.Values))
		for _, v := range d.Values {
			init, err := decodeExpression(v.Initializer)
			if err != nil {
				return nil, err
			}
			values = append(values, &ast.EnumValueDeclaration{Name: v.Name, Initializer: init, R: v.R.toAST()})
		}
		return &ast.EnumDeclaration{Name: d.Name, Values: values, Flags: declFlagsOf(d.Flags), R: d.R.toAST()}, nil

	case "namespace":
		var d struct {
			Name    string            `json:"name"`
			Members []json.RawMessage `json:"members"`
			Flags   []string          `json:"flags"`
			R       rangeJSON         `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		members, err := decodeStatementList(d.Members)
		if err != nil {
			return nil, err
		}
		return &ast.NamespaceDeclaration{Name: d.Name, Members: members, Flags: declFlagsOf(d.Flags), R: d.R.toAST()}, nil

	case "typeAlias":
		var d struct {
			Name           string          `json:"name"`
			TypeParameters []typeParamJSON `json:"typeParameters"`
			Type           json.RawMessage `json:"type"`
			Flags          []string        `json:"flags"`
			R              rangeJSON       `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		typ, err := decodeTypeNode(d.Type)
		if err != nil {
			return nil, err
		}
		return &ast.TypeDeclaration{
			Name:           d.Name,
			TypeParameters: decodeTypeParams(d.TypeParameters),
			Type:           typ,
			Flags:          declFlagsOf(d.Flags),
			R:              d.R.toAST(),
		}, nil

	case "variable":
		var d struct {
			Declarations []struct {
				Name        string          `json:"name"`
				Type        json.RawMessage `json:"type"`
				Initializer json.RawMessage `json:"initializer"`
				Flags       []string        `json:"flags"`
				R           rangeJSON       `json:"r"`
			} `json:"declarations"`
			R rangeJSON `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		decls := make([]*ast.VariableDeclarator, 0, len(d.Declarations))
		for _, v := range d.Declarations {
			typ, err := decodeTypeNode(v.Type)
			if err != nil {
				return nil, err
			}
			init, err := decodeExpression(v.Initializer)
			if err != nil {
				return nil, err
			}
			decls = append(decls, &ast.VariableDeclarator{Name: v.Name, Type: typ, Initializer: init, Flags: declFlagsOf(v.Flags), R: v.R.toAST()})
		}
		return &ast.VariableStatement{Declarations: decls, R: d.R.toAST()}, nil

	case "import":
		var d struct {
			Declarations []struct {
				Name         string    `json:"name"`
				ExternalName string    `json:"externalName"`
				R            rangeJSON `json:"r"`
			} `json:"declarations"`
			NamespaceName string    `json:"namespaceName"`
			InternalPath  string    `json:"internalPath"`
			R             rangeJSON `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		decls := make([]*ast.ImportDeclaration, 0, len(d.Declarations))
		for _, v := range d.Declarations {
			decls = append(decls, &ast.ImportDeclaration{Name: v.Name, ExternalName: v.ExternalName, R: v.R.toAST()})
		}
		return &ast.ImportStatement{Declarations: decls, NamespaceName: d.NamespaceName, InternalPath: d.InternalPath, R: d.R.toAST()}, nil

	case "export":
		var d struct {
			Members []struct {
				Name         string `json:"name"`
				ExternalName string `json:"externalName"`
			} `json:"members"`
			InternalPath string    `json:"internalPath"`
			R            rangeJSON `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		members := make([]*ast.ExportMember, 0, len(d.Members))
		for _, v := range d.Members {
			members = append(members, &ast.ExportMember{Name: v.Name, ExternalName: v.ExternalName})
		}
		return &ast.ExportStatement{Members: members, InternalPath: d.InternalPath, R: d.R.toAST()}, nil

	case "expressionStatement":
		var d struct {
			Expr json.RawMessage `json:"expr"`
			R    rangeJSON       `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		expr, err := decodeExpression(d.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expr: expr, R: d.R.toAST()}, nil

	case "block":
		var d struct {
			Statements []json.RawMessage `json:"statements"`
			R          rangeJSON         `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		stmts, err := decodeStatementList(d.Statements)
		if err != nil {
			return nil, err
		}
		return &ast.BlockStatement{Statements: stmts, R: d.R.toAST()}, nil

	case "if":
		var d struct {
			Condition json.RawMessage `json:"condition"`
			Then      json.RawMessage `json:"then"`
			Else      json.RawMessage `json:"else"`
			R         rangeJSON       `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		cond, err := decodeExpression(d.Condition)
		if err != nil {
			return nil, err
		}
		then, err := decodeStatement(d.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeStatement(d.Else)
		if err != nil {
			return nil, err
		}
		return &ast.IfStatement{Condition: cond, Then: then, Else: els, R: d.R.toAST()}, nil

	case "while":
		var d struct {
			Condition json.RawMessage `json:"condition"`
			Body      json.RawMessage `json:"body"`
			R         rangeJSON       `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		cond, err := decodeExpression(d.Condition)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(d.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WhileStatement{Condition: cond, Body: body, R: d.R.toAST()}, nil

	case "for":
		var d struct {
			Init      json.RawMessage `json:"init"`
			Condition json.RawMessage `json:"condition"`
			Update    json.RawMessage `json:"update"`
			Body      json.RawMessage `json:"body"`
			R         rangeJSON       `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		init, err := decodeStatement(d.Init)
		if err != nil {
			return nil, err
		}
		cond, err := decodeExpression(d.Condition)
		if err != nil {
			return nil, err
		}
		update, err := decodeExpression(d.Update)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(d.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForStatement{Init: init, Condition: cond, Update: update, Body: body, R: d.R.toAST()}, nil

	case "return":
		var d struct {
			Value json.RawMessage `json:"value"`
			R     rangeJSON       `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		val, err := decodeExpression(d.Value)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStatement{Value: val, R: d.R.toAST()}, nil

	case "break":
		var d struct {
			R rangeJSON `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &ast.BreakStatement{R: d.R.toAST()}, nil

	case "continue":
		var d struct {
			R rangeJSON `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &ast.ContinueStatement{R: d.R.toAST()}, nil

	case "throw":
		var d struct {
			Value json.RawMessage `json:"value"`
			R     rangeJSON       `json:"r"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		val, err := decodeExpression(d.Value)
		if err != nil {
			return nil, err
		}
		return &ast.ThrowStatement{Value: val, R: d.R.toAST()}, nil

	default:
		return nil, xerrors.Errorf("srcload: unknown statement kind %q", k.Kind)
	}
}

func decodeStatementList(raw []json.RawMessage) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(raw))
	for _, r := range raw {
		s, err := decodeStatement(r)
		if err != nil {
			return nil, err
		}
		if s != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func decodeNamedTypeList(raw []json.RawMessage) ([]*ast.NamedTypeNode, error) {
	out := make([]*ast.NamedTypeNode, 0, len(raw))
	for _, r := range raw {
		t, err := decodeTypeNode(r)
		if err != nil {
			return nil, err
		}
		nt, ok := t.(*ast.NamedTypeNode)
		if !ok {
			return nil, xerrors.Errorf("srcload: expected a named type")
		}
		out = append(out, nt)
	}
	return out, nil
}

func decodeFunctionType(raw json.RawMessage) (*ast.FunctionTypeNode, error) {
	t, err := decodeTypeNode(raw)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, xerrors.Errorf("srcload: missing function signature")
	}
	ft, ok := t.(*ast.FunctionTypeNode)
	if !ok {
		return nil, xerrors.Errorf("srcload: signature must be a function type")
	}
	return ft, nil
}
