package codegen_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/td12dk/td12dk/internal/codegen"
	"github.com/td12dk/td12dk/internal/diag"
	"github.com/td12dk/td12dk/internal/parser"
	"github.com/td12dk/td12dk/internal/sema"
)

func generate(t *testing.T, src string) (string, error) {
	t.Helper()

	file, err := parser.Parse("test.tdc", src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	af, err := sema.Analyze(file)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	return codegen.Generate(af)
}

func TestGenerate_AdditionAndAssignment(t *testing.T) {
	out, err := generate(t, `fn main() { let x: int = 1; let y: int = x + 2; }`)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, want := range []string{"main:", "add", "str", "lod", "hlt"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerate_Boot(t *testing.T) {
	out, err := generate(t, `fn main() { let x: int = 1; }`)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.HasPrefix(out, ".0x000\n") {
		t.Fatalf("expected output to start with the boot directive, got:\n%s", out)
	}

	if !strings.Contains(out, ":main") {
		t.Errorf("expected a deferred jump to :main, got:\n%s", out)
	}
}

func TestGenerate_WhileTrue(t *testing.T) {
	out, err := generate(t, `fn main() { while (True) { let x: int = 1; break; } }`)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.Contains(out, "_while_start_") {
		t.Errorf("expected a while-start label, got:\n%s", out)
	}
}

func TestGenerate_MissingEntryPoint(t *testing.T) {
	_, err := generate(t, `fn setup() { let x: int = 1; }`)
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestGenerate_UnsupportedOperatorNotImplemented(t *testing.T) {
	_, err := generate(t, `fn main() { let x: int = 1 - 2; }`)
	if err == nil {
		t.Fatal("expected an error")
	}

	if !errors.Is(err, diag.ErrCodeGenNotImplemented) {
		t.Fatalf("got %v, want ErrCodeGenNotImplemented", err)
	}
}

func TestGenerate_IfNotImplemented(t *testing.T) {
	_, err := generate(t, `fn main() { if (True) { let x: int = 1; } }`)
	if err == nil {
		t.Fatal("expected an error")
	}

	if !errors.Is(err, diag.ErrCodeGenNotImplemented) {
		t.Fatalf("got %v, want ErrCodeGenNotImplemented", err)
	}
}
