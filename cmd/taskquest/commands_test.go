package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLIQuestLifecycle(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "quest.db")

	out, err := run(t, "secret1\n", "--db", db, "signup", "Mario@Example.com")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if !strings.Contains(out, "signed in as mario@example.com") {
		t.Fatalf("unexpected signup output: %q", out)
	}

	if _, err := run(t, "", "--db", db, "add", "Rescue", "princess", "p:high", "w:castle"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := run(t, "", "--db", db, "add", "Collect", "coins"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err = run(t, "", "--db", db, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.Contains(lines[0], "Rescue princess") || !strings.Contains(lines[0], "8-4") {
		t.Fatalf("expected high priority castle mission first, got:\n%s", out)
	}
	if !strings.Contains(lines[2], "score 000000") {
		t.Fatalf("unexpected summary line: %q", lines[2])
	}

	out, err = run(t, "", "--db", db, "list", "--world", "pipe")
	if err != nil {
		t.Fatalf("list pipe: %v", err)
	}
	if !strings.Contains(out, "NO MISSIONS ACTIVE") {
		t.Fatalf("expected empty pipe world, got %q", out)
	}

	pdfPath := filepath.Join(dir, "card.pdf")
	if _, err := run(t, "", "--db", db, "report", "--out", pdfPath); err != nil {
		t.Fatalf("report: %v", err)
	}
	raw, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF-")) {
		t.Fatalf("report is not a pdf: %q", raw[:8])
	}

	if _, err := run(t, "", "--db", db, "signout"); err != nil {
		t.Fatalf("signout: %v", err)
	}
	if _, err := run(t, "", "--db", db, "list"); err == nil || !strings.Contains(err.Error(), "not signed in") {
		t.Fatalf("expected not signed in error, got %v", err)
	}
}

func TestCLISignInRejectsWrongPassword(t *testing.T) {
	db := filepath.Join(t.TempDir(), "quest.db")
	if _, err := run(t, "secret1\n", "--db", db, "signup", "luigi@example.com"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := run(t, "wrong-pass\n", "--db", db, "signin", "luigi@example.com"); err == nil {
		t.Fatal("expected invalid credentials")
	}
}

func TestCLIAddRejectsBadToken(t *testing.T) {
	db := filepath.Join(t.TempDir(), "quest.db")
	if _, err := run(t, "", "--db", db, "add", "Jump", "p:urgent"); err == nil {
		t.Fatal("expected invalid priority error")
	}
}
