package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the concurrent writes of watch.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCompileFiles(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	good := writeSource(t, dir, "good.src", "program Good is begin end program.")
	bad := writeSource(t, dir, "bad.src", "program Bad is begin end program")

	got, err := run(t, "--out", out, good, filepath.Join(dir, "missing.src"), bad)
	if err != nil {
		t.Fatal(err)
	}

	want := "true\n\n" +
		"Failed to read file path.\n" +
		"Failed to scan value. Unable to determine line location.\nfalse\n\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	if _, err := os.Stat(filepath.Join(out, "Good.ll")); err != nil {
		t.Error(err)
	}
	if _, err := os.Stat(filepath.Join(out, "Bad.ll")); err == nil {
		t.Error("Bad.ll written for an invalid program")
	}
}

func TestLLVMVersionFlag(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "p.src", "program P is global string s; begin end program.")

	if _, err := run(t, "--out", dir, "--llvm-version", "15.0.0", src); err != nil {
		t.Fatal(err)
	}
	ir, err := os.ReadFile(filepath.Join(dir, "P.ll"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(ir), "global ptr null") {
		t.Errorf("IR = %q, want opaque pointers", ir)
	}

	if _, err := run(t, "--llvm-version", "not-a-version", src); err == nil {
		t.Error("expected an error for a malformed version")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "p.src", "program P is begin end program.")
	cfgOut := filepath.Join(dir, "from-config")
	flagOut := filepath.Join(dir, "from-flag")
	cfg := writeSource(t, dir, "plc.json", `{"out_dir": "`+filepath.ToSlash(cfgOut)+`", "jobs": 2}`)

	if _, err := run(t, "--config", cfg, src); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(cfgOut, "P.ll")); err != nil {
		t.Errorf("config out_dir ignored: %v", err)
	}

	if _, err := run(t, "--config", cfg, "--out", flagOut, src); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(flagOut, "P.ll")); err != nil {
		t.Errorf("--out did not override out_dir: %v", err)
	}
}

func TestInvalidFlags(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "p.src", "program P is begin end program.")

	tests := [][]string{
		{"--color", "sometimes", src},
		{"--jobs", "-2", src},
		{},
	}
	for _, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("run(%q) succeeded, want an error", args)
		}
	}
}

func TestTokensCommand(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "p.src", "x := 1;")

	got, err := run(t, "tokens", src)
	if err != nil {
		t.Fatal(err)
	}
	want := "1:1 IDENTITY \"x\"\n" +
		"1:3 ASSIGN \":=\"\n" +
		"1:6 INTEGER \"1\"\n" +
		"1:7 SEMICOLON \";\"\n" +
		"1:8 EOF\n"
	if got != want {
		t.Errorf("tokens =\n%s\nwant\n%s", got, want)
	}
}

func TestSymbolsCommand(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "p.src", "program P is\nglobal bool flag;\nbegin\nend program.")

	got, err := run(t, "--out", dir, "symbols", src)
	if err != nil {
		t.Fatal(err)
	}
	want := "== " + src + "\n" +
		"p PROGRAM global line 1\n" +
		"p.flag BOOL global line 2\n" +
		"true\n\n"
	if got != want {
		t.Errorf("symbols =\n%s\nwant\n%s", got, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "P.ll")); err == nil {
		t.Error("symbols wrote an IR file")
	}
}

func TestVersionCommand(t *testing.T) {
	got, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "plc v") || !strings.Contains(got, "Target: llvm 14.0.0 (typed pointers)") {
		t.Errorf("version = %q", got)
	}

	got, err = run(t, "--llvm-version", "16.0.0", "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"tool": "plc"`, `"target": "llvm 16.0.0 (opaque pointers)"`} {
		if !strings.Contains(got, want) {
			t.Errorf("json version missing %s:\n%s", want, got)
		}
	}
}

func TestWatchPolling(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "w.src", "program W is begin end program.")
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(src, old, old); err != nil {
		t.Fatal(err)
	}

	out := &syncBuffer{}
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--out", dir, "watch", "--poll", "--interval", "20ms", src})
	cmd.SetOut(out)
	cmd.SetErr(&syncBuffer{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	waitFor(t, out, "true\n\n")
	if err := os.WriteFile(src, []byte("program W is begin end program"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, out, "false\n\n")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func waitFor(t *testing.T, out *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), want) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in %q", want, out.String())
}
