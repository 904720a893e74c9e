package main

import (
	"fmt"
	"os"

	"github.com/creachadair/jsonkit/cbor"
	"github.com/creachadair/jsonkit/domevent"
)

func runCBOR(args []string) error {
	if len(args) != 1 {
		usage()
		return fmt.Errorf("cbor: want <file>")
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	v, err := cbor.FromBytes(b)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}

	w := domevent.NewJSONWriter(os.Stdout)
	if err := v.Dump(w); err != nil {
		return err
	}
	if err := w.Err(); err != nil {
		return err
	}
	fmt.Println()
	return nil
}
