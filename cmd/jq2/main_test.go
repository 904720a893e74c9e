package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jsonkit/cbor"
	"github.com/creachadair/jsonkit/dom"
)

func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	f()
	w.Close()
	os.Stdout = old

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunPathValues(t *testing.T) {
	file := writeTemp(t, "doc.json", `{"store":{"book":[{"price":5},{"price":10}]}}`)

	var code int
	out := captureStdout(t, func() {
		code = run([]string{"path", "$.store.book[*].price", file})
	})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if got, want := strings.TrimSpace(out), "[5,10]"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunPathPaths(t *testing.T) {
	file := writeTemp(t, "doc.json", `{"a":[1,2,3]}`)

	var code int
	out := captureStdout(t, func() {
		code = run([]string{"path", "-paths", "$.a[*]", file})
	})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	want := `["$['a'][0]","$['a'][1]","$['a'][2]"]`
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunPathBadExpression(t *testing.T) {
	file := writeTemp(t, "doc.json", `{}`)
	code := run([]string{"path", ".store", file})
	if code != 1 {
		t.Fatalf("run() = %d, want 1 for a malformed expression", code)
	}
}

func TestRunCBOR(t *testing.T) {
	root := dom.NewObject()
	root.Set("a", dom.NewArrayFrom(dom.Int(1), dom.Bool(true), dom.Null{}))
	enc, err := cbor.Marshal(root)
	if err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(t.TempDir(), "doc.cbor")
	if err := os.WriteFile(file, enc, 0644); err != nil {
		t.Fatal(err)
	}

	var code int
	out := captureStdout(t, func() {
		code = run([]string{"cbor", file})
	})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if got, want := strings.TrimSpace(out), `{"a":[1,true,null]}`; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunUnknownSubcommand(t *testing.T) {
	if code := run([]string{"bogus"}); code != 2 {
		t.Fatalf("run() = %d, want 2 for an unknown subcommand", code)
	}
}

func TestRunNoArgs(t *testing.T) {
	if code := run(nil); code != 2 {
		t.Fatalf("run() = %d, want 2 with no arguments", code)
	}
}
