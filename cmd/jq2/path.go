package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/creachadair/jsonkit/dom"
	"github.com/creachadair/jsonkit/domevent"
	"github.com/creachadair/jsonkit/jpath"
)

func runPath(args []string) error {
	fs := flag.NewFlagSet("path", flag.ContinueOnError)
	paths := fs.Bool("paths", false, "print normalized paths instead of values")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		usage()
		return fmt.Errorf("path: want <expr> <file>")
	}
	expr, file := fs.Arg(0), fs.Arg(1)

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	root, err := dom.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}

	w := domevent.NewJSONWriter(os.Stdout)
	if *paths {
		got, err := jpath.QueryPaths(root, expr)
		if err != nil {
			return err
		}
		if err := writeStrings(w, got); err != nil {
			return err
		}
	} else {
		got, err := jpath.Query(root, expr)
		if err != nil {
			return err
		}
		if err := domevent.Emit(dom.NewArrayFrom(got...), w); err != nil {
			return err
		}
	}
	if err := w.Err(); err != nil {
		return err
	}
	fmt.Println()
	return nil
}

func writeStrings(w *domevent.JSONWriter, ss []string) error {
	vs := make([]dom.Value, len(ss))
	for i, s := range ss {
		vs[i] = dom.String(s)
	}
	return domevent.Emit(dom.NewArrayFrom(vs...), w)
}
