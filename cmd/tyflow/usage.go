package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  tyflow check [--config <tyflow.yml>] [--repo <url[@rev]>] [--report <out.yml>] [--log-level <level>] [paths]")
	fmt.Fprintln(os.Stderr, "  tyflow ast <file.js>")
	fmt.Fprintln(os.Stderr, "  tyflow version")
	fmt.Fprintln(os.Stderr, "  tyflow help")
}
