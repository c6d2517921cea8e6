// Command nslc drives the nested-scope language's semantic analysis
// and IR generation pipeline over a set of built-in example programs.
package main

import "github.com/cwbudde/nslc/cmd/nslc/cmd"

func main() {
	cmd.Execute()
}
