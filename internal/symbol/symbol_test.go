package symbol_test

import (
	"testing"

	"github.com/cwbudde/nslc/internal/symbol"
)

func TestInternReturnsStableSymbol(t *testing.T) {
	table := symbol.NewTable()
	a := table.Intern("foo")
	b := table.Intern("foo")
	if a != b {
		t.Error("expected interning the same name twice to return equal symbols")
	}
	if a.String() != "foo" {
		t.Errorf("expected symbol to stringify to its name, got %q", a.String())
	}
}

func TestInternDistinguishesNames(t *testing.T) {
	table := symbol.NewTable()
	a := table.Intern("foo")
	b := table.Intern("bar")
	if a == b {
		t.Error("expected distinct names to intern to distinct symbols")
	}
}
