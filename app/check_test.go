package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"unitcalc/app/lang"
)

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.calc")
	os.WriteFile(path, []byte("x = 2 km\n; comment\n2 +\nx to m\n"), 0644)

	state := &lang.ParseState{}
	var buf bytes.Buffer
	failed, err := checkFile(&buf, state, path, false)
	if err != nil {
		t.Fatalf("checkFile: %v", err)
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	want := path + ":1: x = 2 km\n" +
		path + ":3:4: expected expression, found end of input\n" +
		path + ":4: (x to m)\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}

	// Unchanged file reports nothing when only changes are wanted
	buf.Reset()
	if _, err := checkFile(&buf, state, path, true); err != nil {
		t.Fatalf("checkFile: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}

	os.WriteFile(path, []byte("x = 2 km\n; comment\n2 + 1\nx to m\n"), 0644)
	buf.Reset()
	failed, err = checkFile(&buf, state, path, true)
	if err != nil {
		t.Fatalf("checkFile: %v", err)
	}
	if failed != 0 {
		t.Errorf("failed = %d, want 0", failed)
	}
	if buf.String() != path+":3: (2 + 1)\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestCheckFileDeps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deps.calc")
	os.WriteFile(path, []byte("v = d / t to km\r\n"), 0644)

	checkDeps = true
	defer func() { checkDeps = false }()

	var buf bytes.Buffer
	if _, err := checkFile(&buf, &lang.ParseState{}, path, false); err != nil {
		t.Fatalf("checkFile: %v", err)
	}
	want := path + ":1: v = ((d / t) to km)  [assigns: v; vars: d, t; units: km]\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestCheckFileMissing(t *testing.T) {
	var buf bytes.Buffer
	if _, err := checkFile(&buf, &lang.ParseState{}, filepath.Join(t.TempDir(), "none.calc"), false); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatchFileTriggersCheck(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.calc")
	os.WriteFile(file, []byte("1"), 0644)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var checks atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, file, 10*time.Millisecond, func() error { checks.Add(1); return nil })
	}()

	time.Sleep(200 * time.Millisecond)
	os.WriteFile(file, []byte("2 kg"), 0644)

	for i := 0; i < 20; i++ {
		if checks.Load() > 0 {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	cancel()

	if checks.Load() == 0 {
		t.Fatal("expected check to be triggered")
	}
	if err := <-done; err != nil {
		t.Errorf("watchFile returned %v", err)
	}
}

func TestWatchFileIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.calc")
	os.WriteFile(file, []byte("1"), 0644)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var checks atomic.Int32
	go watchFile(ctx, file, 10*time.Millisecond, func() error { checks.Add(1); return nil })

	time.Sleep(200 * time.Millisecond)
	os.WriteFile(filepath.Join(dir, "b.calc"), []byte("2"), 0644)
	time.Sleep(300 * time.Millisecond)

	if n := checks.Load(); n != 0 {
		t.Errorf("got %d checks for an unrelated file", n)
	}
}
