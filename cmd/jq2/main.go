// Program jq2 is a small command-line consumer for the dom/cbor/jpath
// stack: it evaluates a JSONPath expression against a JSON document, or
// dumps a CBOR document as JSON.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		usage()
		return 2
	}

	var err error
	switch args[0] {
	case "path":
		err = runPath(args[1:])
	case "cbor":
		err = runCBOR(args[1:])
	default:
		usage()
		return 2
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "jq2: %v\n", err)
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  jq2 path [-paths] <expr> <file>   evaluate a JSONPath expression
  jq2 cbor <file>                   dump a CBOR document as JSON`)
}
