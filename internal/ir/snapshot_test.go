package ir_test

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/nslc/internal/examples"
)

// TestIRSnapshots locks down the printed IR text of every built-in
// example program, the way fixture-driven golden tests elsewhere in
// this codebase pin down an interpreter's observable output.
func TestIRSnapshots(t *testing.T) {
	for _, name := range examples.Names {
		name := name
		t.Run(name, func(t *testing.T) {
			program, err := examples.Build(name)
			if err != nil {
				t.Fatalf("build %s: %v", name, err)
			}
			lowered := mustCompile(t, program)
			snaps.MatchSnapshot(t, printed(lowered))
		})
	}
}

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
