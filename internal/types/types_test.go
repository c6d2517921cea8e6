package types_test

import (
	"testing"

	"github.com/cwbudde/nslc/internal/types"
)

func TestFromName(t *testing.T) {
	cases := map[string]types.Type{
		"int":    types.Int,
		"string": types.String,
	}
	for name, want := range cases {
		got, ok := types.FromName(name)
		if !ok {
			t.Errorf("FromName(%q): expected ok", name)
			continue
		}
		if !got.Equals(want) {
			t.Errorf("FromName(%q) = %s, want %s", name, got, want)
		}
	}

	if _, ok := types.FromName("widget"); ok {
		t.Error("expected FromName to reject an unknown type name")
	}
}

func TestIsDefined(t *testing.T) {
	if types.IsDefined(types.Undefined) {
		t.Error("expected Undefined to not be defined")
	}
	if !types.IsDefined(types.Int) {
		t.Error("expected Int to be defined")
	}
	if types.IsDefined(nil) {
		t.Error("expected a nil Type to not be defined")
	}
}

func TestEqualsDistinguishesKinds(t *testing.T) {
	if types.Int.Equals(types.String) {
		t.Error("expected Int and String to be unequal")
	}
	if !types.Int.Equals(types.Int) {
		t.Error("expected Int to equal itself")
	}
}
