package codegen

import (
	"fmt"

	"github.com/td12dk/td12dk/internal/ast"
	"github.com/td12dk/td12dk/internal/diag"
	"github.com/td12dk/td12dk/internal/sema"
)

// stackTop is the last RAM address, used to initialize the stack pointer.
const stackTop = 0xFFF

// entryFunction is the conventional name of the program's entry point.
const entryFunction = "main"

// notImplemented reports a construct outside the generator's supported
// subset: addition, assignment, identifier load, immediate load, and
// while-true loops.
func notImplemented(sp diag.Span) error {
	return diag.New(diag.CodeGeneration, "CodeGenerationNotImplemented",
		"this construct is not yet supported by the code generator", sp).
		WithCause(diag.ErrCodeGenNotImplemented)
}

// Generate lowers an analyzed file to assembly text.
func Generate(af *sema.AnalyzedFile) (string, error) {
	g := NewGenerator()

	var entry *sema.AnalyzedFunction

	for _, fn := range af.Functions {
		if fn.Name == entryFunction {
			entry = fn
		}
	}

	if entry == nil {
		return "", diag.New(diag.Compiler, "MissingEntryPoint",
			fmt.Sprintf("no function named %q", entryFunction), diag.Span{})
	}

	g.genBoot()

	for _, fn := range af.Functions {
		if err := g.genFunction(fn); err != nil {
			return "", err
		}
	}

	return g.out.String(), nil
}

// genBoot emits the fixed prologue at ROM address zero: initialize the
// stack pointer to the top of RAM, then jump to the entry point.
func (g *Generator) genBoot() {
	fmt.Fprintln(&g.out, ".0x000")
	g.comment("initialize stack pointer")
	g.emit("liu %d", (stackTop>>6)&0x3F)
	g.emit("lil %d", stackTop&0x3F)
	g.emit("or SP, MP, ZR")
	g.comment("jump to entry point")
	g.emit("liu :%s", entryFunction)
	g.emit("lil :%s", entryFunction)
	g.emit("or PC, MP, ZR")
}

func (g *Generator) genFunction(fn *sema.AnalyzedFunction) error {
	g.enterFunction()

	// Assign every static local a global address and every ordinary local
	// (including synthesized temporaries) a frame slot before emitting any
	// instructions, so the prologue's frame-size subtraction is exact.
	for _, name := range fn.Table.Order {
		sym := fn.Table.Symbols[name]

		switch sym.Kind {
		case sema.VariableSym:
			if sym.Static {
				g.allocGlobal(name)
			} else {
				g.allocLocal(name)
			}
		case sema.InternalSym:
			g.allocLocal(name)
		}
	}

	g.label(fn.Name)

	if g.frameSize > 0 {
		scratch, err := g.allocReg(g.anonName(), fn.Def.Sp)
		if err != nil {
			return err
		}

		if err := g.loadImmediate(g.frameSize, ""); err != nil {
			return err
		}

		g.emit("or %s, MP, ZR", scratch)
		g.emit("sub SP, SP, %s", scratch)
	}

	for _, item := range fn.Body.Code {
		if err := g.genItem(item); err != nil {
			return err
		}
	}

	if g.frameSize > 0 {
		scratch, err := g.allocReg(g.anonName(), fn.Def.Sp)
		if err != nil {
			return err
		}

		if err := g.loadImmediate(g.frameSize, ""); err != nil {
			return err
		}

		g.emit("or %s, MP, ZR", scratch)
		g.emit("add SP, SP, %s", scratch)
	}

	g.emit("hlt")

	return nil
}

// genItem emits one statement-level item from a CodeBlock's code list.
func (g *Generator) genItem(item sema.Node) error {
	switch v := item.(type) {
	case *sema.InternalDefinition:
		_, err := g.genValue(v.Expr, v.Name)
		return err
	case *sema.Assign:
		_, err := g.genValue(v, "")
		return err
	case *sema.WhileIR:
		return g.genWhile(v)
	case *ast.LoopStatement:
		return g.genLoopKeyword(v)
	default:
		return notImplemented(item.Span())
	}
}

func (g *Generator) genLoopKeyword(v *ast.LoopStatement) error {
	switch v.Keyword {
	case ast.Break:
		if len(g.breakLabels) == 0 {
			return notImplemented(v.Sp)
		}

		target := g.breakLabels[len(g.breakLabels)-1]
		g.emit("liu :%s", target)
		g.emit("lil :%s", target)
		g.emit("or PC, MP, ZR")

		return nil
	case ast.Continue:
		if len(g.continueLabels) == 0 {
			return notImplemented(v.Sp)
		}

		target := g.continueLabels[len(g.continueLabels)-1]
		g.emit("liu :%s", target)
		g.emit("lil :%s", target)
		g.emit("or PC, MP, ZR")

		return nil
	default:
		return notImplemented(v.Sp)
	}
}

// genWhile emits the while(true) loop pattern; any other condition is
// outside the generator's supported subset.
func (g *Generator) genWhile(v *sema.WhileIR) error {
	cond, ok := v.Cond.(*ast.BuiltInConst)
	if !ok || cond.Kind != ast.ConstTrue {
		return notImplemented(v.Sp)
	}

	start := g.freshLabel("while_start")
	end := g.freshLabel("while_end")
	brk := g.freshLabel("while_break")

	g.continueLabels = append(g.continueLabels, start)
	g.breakLabels = append(g.breakLabels, brk)

	g.label(start)

	for _, item := range v.Body.Code {
		if err := g.genItem(item); err != nil {
			return err
		}
	}

	g.emit("liu :%s", start)
	g.emit("lil :%s", start)
	g.emit("or PC, MP, ZR")
	g.label(end)

	if v.Else != nil {
		for _, item := range v.Else.Code {
			if err := g.genItem(item); err != nil {
				return err
			}
		}
	}

	g.label(brk)

	g.continueLabels = g.continueLabels[:len(g.continueLabels)-1]
	g.breakLabels = g.breakLabels[:len(g.breakLabels)-1]

	return nil
}

// genValue evaluates v into a register and returns it. bindName, if
// non-empty, is the name under which the result should remain resident
// (an InternalDefinition's synthesized name); an empty bindName allocates
// an anonymous scratch register.
func (g *Generator) genValue(v sema.Node, bindName string) (string, error) {
	switch t := v.(type) {
	case *ast.NumberLiteral:
		n, err := parseNumber(t.Text)
		if err != nil {
			return "", diag.New(diag.CodeGeneration, "InvalidOperand", err.Error(), t.Sp)
		}

		return g.genImmediate(n, bindName, t.Sp)
	case *ast.BuiltInConst:
		n := 0
		if t.Kind == ast.ConstTrue {
			n = 1
		}

		return g.genImmediate(n, bindName, t.Sp)
	case *ast.Identifier:
		return g.genIdentifier(t.Name, t.Sp)
	case *sema.TempRef:
		return g.genIdentifier(t.Name, t.Sp)
	case *sema.BinaryOp:
		if t.Op != "+" {
			return "", notImplemented(t.Sp)
		}

		a, err := g.genValue(t.A, "")
		if err != nil {
			return "", err
		}

		b, err := g.genValue(t.B, "")
		if err != nil {
			return "", err
		}

		name := bindName
		if name == "" {
			name = g.anonName()
		}

		dst, err := g.allocReg(name, t.Sp)
		if err != nil {
			return "", err
		}

		g.emit("add %s, %s, %s", dst, a, b)

		return dst, nil
	case *sema.Assign:
		return g.genAssign(t, bindName)
	default:
		return "", notImplemented(v.Span())
	}
}

func (g *Generator) genImmediate(n int, bindName string, sp diag.Span) (string, error) {
	name := bindName
	if name == "" {
		name = g.anonName()
	}

	reg, err := g.allocReg(name, sp)
	if err != nil {
		return "", err
	}

	if err := g.loadImmediate(n, ""); err != nil {
		return "", err
	}

	g.emit("or %s, MP, ZR", reg)

	return reg, nil
}

func (g *Generator) genIdentifier(name string, sp diag.Span) (string, error) {
	if reg, ok := g.regFor(name); ok {
		return reg, nil
	}

	reg, err := g.allocReg(name, sp)
	if err != nil {
		return "", err
	}

	if addr, ok := g.globals[name]; ok {
		if err := g.loadImmediate(addr, ""); err != nil {
			return "", err
		}
	} else if off, ok := g.locals[name]; ok {
		if err := g.loadAddressOffset(off); err != nil {
			return "", err
		}
	} else {
		return "", diag.New(diag.CodeGeneration, "CodeGenerationNotImplemented",
			fmt.Sprintf("no storage assigned for %q", name), sp).
			WithCause(diag.ErrCodeGenNotImplemented)
	}

	g.emit("lod %s", reg)

	return reg, nil
}

func (g *Generator) genAssign(a *sema.Assign, bindName string) (string, error) {
	rhs, err := g.genValue(a.RHS, "")
	if err != nil {
		return "", err
	}

	ident, ok := a.LHS.(*ast.Identifier)
	if !ok {
		return "", notImplemented(a.Sp)
	}

	if addr, ok := g.globals[ident.Name]; ok {
		if err := g.loadImmediate(addr, ""); err != nil {
			return "", err
		}
	} else {
		off, ok := g.locals[ident.Name]
		if !ok {
			off = g.allocLocal(ident.Name)
		}

		if err := g.loadAddressOffset(off); err != nil {
			return "", err
		}
	}

	g.emit("str %s", rhs)

	// The assigned-to variable's prior register binding, if any, is now
	// stale; the store above is its home-slot copy.
	for i, occ := range g.occupant {
		if occ == ident.Name {
			g.occupant[i] = ""
		}
	}

	if bindName == "" {
		return rhs, nil
	}

	dst, err := g.allocReg(bindName, a.Sp)
	if err != nil {
		return "", err
	}

	if dst != rhs {
		g.emit("or %s, %s, ZR", dst, rhs)
	}

	return dst, nil
}
