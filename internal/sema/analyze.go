package sema

import (
	"fmt"

	"github.com/td12dk/td12dk/internal/ast"
	"github.com/td12dk/td12dk/internal/diag"
)

// AnalyzedFunction is the annotated form of a FunctionBlock.
type AnalyzedFunction struct {
	Name      string
	Def       *ast.FunctionBlock
	Table     *Table
	Params    []*Symbol
	ReturnVar *Symbol // nil if the function declares no return type
	Body      *CodeBlock
}

// AnalyzedFile is the annotated form of an entire File: a global symbol
// table plus normalized enums and analyzed functions. Structs pass through
// unmodified; no member layout is computed for them here or in the code
// generator.
type AnalyzedFile struct {
	Globals   *Table
	Structs   []*ast.StructBlock
	Enums     []*ast.EnumBlock
	Functions []*AnalyzedFunction
}

// Analyze runs both passes over file and returns the annotated tree, or the
// first diagnostic encountered.
func Analyze(file *ast.File) (*AnalyzedFile, error) {
	af := &AnalyzedFile{Globals: NewTable(nil)}

	for _, item := range file.Items {
		switch v := item.(type) {
		case *ast.StructBlock:
			if err := af.Globals.Declare(&Symbol{Name: v.Name, Kind: StructSym, Def: v}); err != nil {
				return nil, err
			}

			af.Structs = append(af.Structs, v)
		case *ast.EnumBlock:
			if err := af.Globals.Declare(&Symbol{Name: v.Name, Kind: EnumSym, Def: v}); err != nil {
				return nil, err
			}

			af.Enums = append(af.Enums, normalizeEnum(v))
		case *ast.FunctionBlock:
			if err := af.Globals.Declare(&Symbol{Name: v.Name, Kind: FunctionSym, Def: v}); err != nil {
				return nil, err
			}
		case *ast.Directive:
			// Passed through verbatim to the linker; no symbol of its own.
		default:
			return nil, diag.New(diag.Semantic, "UnsupportedTopLevel",
				fmt.Sprintf("cannot register %T", item), item.Span())
		}
	}

	counter := &tempCounter{}

	for _, item := range file.Items {
		fn, ok := item.(*ast.FunctionBlock)
		if !ok {
			continue
		}

		analyzed, err := analyzeFunction(af.Globals, counter, fn)
		if err != nil {
			return nil, err
		}

		af.Functions = append(af.Functions, analyzed)
	}

	return af, nil
}

func analyzeFunction(globals *Table, counter *tempCounter, fn *ast.FunctionBlock) (*AnalyzedFunction, error) {
	table := NewTable(globals)
	afn := &AnalyzedFunction{Name: fn.Name, Def: fn, Table: table}

	if fn.ReturnType != nil {
		sym := &Symbol{Name: fn.Name, Kind: ReturnVariableSym, Def: fn}
		if err := table.Declare(sym); err != nil {
			return nil, err
		}

		afn.ReturnVar = sym
	}

	for _, param := range fn.Params {
		p := param
		sym := &Symbol{Name: p.Name, Kind: ParameterSym, Def: p}
		if err := table.Declare(sym); err != nil {
			return nil, err
		}

		afn.Params = append(afn.Params, sym)
	}

	body, err := analyzeBody(globals, table, counter, fn.Body)
	if err != nil {
		return nil, err
	}

	afn.Body = body

	return afn, nil
}

// analyzeBody walks stmts in order, flattening and resolving each one into
// block.
func analyzeBody(globals, table *Table, counter *tempCounter, stmts []ast.Stmt) (*CodeBlock, error) {
	block := &CodeBlock{Table: table}

	for _, stmt := range stmts {
		if err := analyzeStatement(globals, table, counter, block, stmt); err != nil {
			return nil, err
		}
	}

	return block, nil
}

// registerItem records an InternalDefinition's synthesized name in table
// (and resolves identifiers within its defining expression), or simply
// resolves identifiers within any other item.
func registerItem(table *Table, n Node) error {
	if def, ok := n.(*InternalDefinition); ok {
		if err := table.Declare(&Symbol{Name: def.Name, Kind: InternalSym, Def: def}); err != nil {
			return err
		}

		return resolveRefs(table, def.Expr)
	}

	return resolveRefs(table, n)
}

// appendFlattened runs counter.flatten(expr), registers every hoisted item
// into table, appends them (and the resolved result) to block.Code, and
// returns the terminal value for callers that need to reference it (e.g.
// the let initializer).
func appendFlattened(table *Table, counter *tempCounter, block *CodeBlock, expr ast.Expr) (Node, error) {
	items, result, err := counter.flatten(expr)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		if err := registerItem(table, it); err != nil {
			return nil, err
		}

		block.Code = append(block.Code, it)
	}

	return result, nil
}

func analyzeStatement(globals, table *Table, counter *tempCounter, block *CodeBlock, stmt ast.Stmt) error {
	switch v := stmt.(type) {
	case *ast.NoOperation:
		return nil
	case *ast.LetStatement:
		return analyzeLet(table, counter, block, v)
	case *ast.LoopStatement:
		block.Code = append(block.Code, v)
		return nil
	case *ast.ExpressionStatement:
		result, err := appendFlattened(table, counter, block, v.X)
		if err != nil {
			return err
		}

		if result == nil {
			return nil
		}

		if err := resolveRefs(table, result); err != nil {
			return err
		}

		block.Code = append(block.Code, result)

		return nil
	case *ast.IfBlock:
		return analyzeIf(globals, table, counter, block, v)
	case *ast.WhileBlock:
		return analyzeWhile(globals, table, counter, block, v)
	case *ast.DoBlock:
		return analyzeDo(globals, table, counter, block, v)
	case *ast.ForBlock:
		return analyzeFor(globals, table, counter, block, v)
	default:
		return diag.New(diag.Semantic, "UnsupportedStatement",
			fmt.Sprintf("cannot analyze %T", stmt), stmt.Span())
	}
}

func analyzeLet(table *Table, counter *tempCounter, block *CodeBlock, v *ast.LetStatement) error {
	sym := &Symbol{Name: v.Name, Kind: VariableSym, Static: v.Static, Def: v}
	if err := table.Declare(sym); err != nil {
		return err
	}

	if v.Static {
		block.Members = append(block.Members, sym)
	}

	if v.Init == nil {
		return nil
	}

	result, err := appendFlattened(table, counter, block, v.Init)
	if err != nil {
		return err
	}

	init := &Assign{LHS: &ast.Identifier{Name: v.Name, Sp: v.Sp}, RHS: result, Sp: v.Sp}
	if err := resolveRefs(table, init); err != nil {
		return err
	}

	block.Code = append(block.Code, init)

	return nil
}

func analyzeIf(globals, table *Table, counter *tempCounter, block *CodeBlock, v *ast.IfBlock) error {
	condResult, err := appendFlattened(table, counter, block, v.Condition)
	if err != nil {
		return err
	}

	if err := resolveRefs(table, condResult); err != nil {
		return err
	}

	body, err := analyzeBody(globals, table, counter, v.Body)
	if err != nil {
		return err
	}

	var elseBody *CodeBlock
	if v.Else != nil {
		elseBody, err = analyzeBody(globals, table, counter, v.Else.Body)
		if err != nil {
			return err
		}
	}

	block.Code = append(block.Code, &IfIR{Cond: condResult, Body: body, Else: elseBody, Sp: v.Sp})

	return nil
}

func analyzeWhile(globals, table *Table, counter *tempCounter, block *CodeBlock, v *ast.WhileBlock) error {
	condResult, err := appendFlattened(table, counter, block, v.Condition)
	if err != nil {
		return err
	}

	if err := resolveRefs(table, condResult); err != nil {
		return err
	}

	body, err := analyzeBody(globals, table, counter, v.Body)
	if err != nil {
		return err
	}

	var elseBody *CodeBlock
	if v.Else != nil {
		elseBody, err = analyzeBody(globals, table, counter, v.Else.Body)
		if err != nil {
			return err
		}
	}

	block.Code = append(block.Code, &WhileIR{Cond: condResult, Body: body, Else: elseBody, Sp: v.Sp})

	return nil
}

func analyzeDo(globals, table *Table, counter *tempCounter, block *CodeBlock, v *ast.DoBlock) error {
	body, err := analyzeBody(globals, table, counter, v.Body)
	if err != nil {
		return err
	}

	// The condition's hoisted items are kept on the DoIR rather than
	// appended to the outer block, since do-while evaluates it after the
	// body on every iteration; their names go into the enclosing table.
	condItems, cond, err := counter.flatten(v.Condition)
	if err != nil {
		return err
	}

	for _, it := range condItems {
		if err := registerItem(table, it); err != nil {
			return err
		}
	}

	if err := resolveRefs(table, cond); err != nil {
		return err
	}

	var second *CodeBlock
	if v.Second != nil {
		second, err = analyzeBody(globals, table, counter, v.Second)
		if err != nil {
			return err
		}
	}

	var elseBody *CodeBlock
	if v.Else != nil {
		elseBody, err = analyzeBody(globals, table, counter, v.Else.Body)
		if err != nil {
			return err
		}
	}

	block.Code = append(block.Code, &DoIR{
		Body: body, CondItems: condItems, Cond: cond, Second: second, Else: elseBody, Sp: v.Sp,
	})

	return nil
}

func analyzeFor(globals, table *Table, counter *tempCounter, block *CodeBlock, v *ast.ForBlock) error {
	overlay := NewTable(table)

	preBlock := &CodeBlock{Table: overlay}
	if err := analyzeStatement(globals, overlay, counter, preBlock, v.Pre); err != nil {
		return err
	}

	condItems, cond, err := counter.flatten(v.Condition)
	if err != nil {
		return err
	}

	for _, it := range condItems {
		if err := registerItem(overlay, it); err != nil {
			return err
		}
	}

	if err := resolveRefs(overlay, cond); err != nil {
		return err
	}

	postStmt, ok := v.Post.(*ast.ExpressionStatement)
	if !ok {
		return diag.New(diag.Semantic, "UnsupportedStatement", "for-loop post clause must be an expression", v.Post.Span())
	}

	postItems, post, err := counter.flatten(postStmt.X)
	if err != nil {
		return err
	}

	for _, it := range postItems {
		if err := registerItem(overlay, it); err != nil {
			return err
		}
	}

	if err := resolveRefs(overlay, post); err != nil {
		return err
	}

	body, err := analyzeBody(globals, overlay, counter, v.Body)
	if err != nil {
		return err
	}

	var elseBody *CodeBlock
	if v.Else != nil {
		elseBody, err = analyzeBody(globals, overlay, counter, v.Else.Body)
		if err != nil {
			return err
		}
	}

	block.Code = append(block.Code, &ForIR{
		Table: overlay, Pre: preBlock.Code, CondItems: condItems, Cond: cond,
		PostItems: postItems, Post: post, Body: body, Else: elseBody, Sp: v.Sp,
	})

	return nil
}

// resolveRefs walks a syntax or annotated node, resolving every identifier
// it finds against table and recording a reference. Function calls resolve
// their callee only against function symbols; everything else resolves
// against any symbol kind.
func resolveRefs(table *Table, n Node) error {
	switch v := n.(type) {
	case nil:
		return nil
	case *ast.Identifier:
		sym, ok := table.Resolve(v.Name)
		if !ok {
			return diag.New(diag.Semantic, "UndeclaredVariable",
				fmt.Sprintf("undeclared variable %q", v.Name), v.Sp).
				WithCause(diag.ErrUndeclaredVariable)
		}

		sym.reference(v.Sp)

		return nil
	case *ast.NumberLiteral, *ast.CharLiteral, *ast.StringLiteral, *ast.BuiltInConst:
		return nil
	case *TempRef:
		return nil
	case *InternalDefinition:
		return resolveRefs(table, v.Expr)
	case *CompoundIdentifier:
		return resolveRefs(table, v.Base)
	case *AddressOfIdentifier:
		return resolveRefs(table, v.Operand)
	case *DereferenceIdentifier:
		return resolveRefs(table, v.Operand)
	case *Assign:
		if err := resolveRefs(table, v.LHS); err != nil {
			return err
		}

		return resolveRefs(table, v.RHS)
	case *CompoundAssign:
		if err := resolveRefs(table, v.LHS); err != nil {
			return err
		}

		return resolveRefs(table, v.RHS)
	case *UnaryOp:
		return resolveRefs(table, v.Operand)
	case *BinaryOp:
		if err := resolveRefs(table, v.A); err != nil {
			return err
		}

		return resolveRefs(table, v.B)
	case *TernaryOp:
		if err := resolveRefs(table, v.Cond); err != nil {
			return err
		}

		if err := resolveRefs(table, v.True); err != nil {
			return err
		}

		return resolveRefs(table, v.False)
	case *Call:
		fnSym, ok := table.Resolve(v.Callee)
		if !ok || fnSym.Kind != FunctionSym {
			return diag.New(diag.Semantic, "UndeclaredVariable",
				fmt.Sprintf("undeclared function %q", v.Callee), v.Sp).
				WithCause(diag.ErrUndeclaredVariable)
		}

		fnSym.reference(v.Sp)

		for _, a := range v.Args {
			if err := resolveRefs(table, a); err != nil {
				return err
			}
		}

		return nil
	default:
		return nil
	}
}
