package main

import (
	"encoding/json"
	"fmt"
	"os"

	"tyflow/analyzer-go/pkg/parser"
)

// runAST parses one source file and prints its tree as indented JSON.
func runAST(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "ast expects exactly one source file")
		return 1
	}
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		return 1
	}

	p, err := parser.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer p.Close()

	program, err := p.ParseProgram(path, source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	serialized, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal %s: %v\n", path, err)
		return 1
	}
	os.Stdout.Write(append(serialized, '\n'))
	return 0
}
