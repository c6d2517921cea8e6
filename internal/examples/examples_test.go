package examples_test

import (
	"testing"

	"github.com/cwbudde/nslc/internal/examples"
)

func TestBuildKnownExamples(t *testing.T) {
	for _, name := range examples.Names {
		if _, err := examples.Build(name); err != nil {
			t.Errorf("Build(%q) failed: %v", name, err)
		}
	}
}

func TestBuildUnknownExampleFails(t *testing.T) {
	if _, err := examples.Build("does-not-exist"); err == nil {
		t.Fatal("expected an error for an unknown example name")
	}
}
