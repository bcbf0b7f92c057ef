package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Label", "Count"},
		[][]string{{"on-task", "3"}, {"off-task", "1"}},
		[]columnAlignment{alignLeft, alignRight},
	)
	// go-pretty's rounded style uppercases header cells
	for _, want := range []string{"LABEL", "COUNT", "on-task", "off-task"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := renderTable(nil, nil, nil); out != "" {
		t.Errorf("empty headers rendered %q", out)
	}
}

func TestRenderStatusLine(t *testing.T) {
	line := renderStatusLine("State", statusOK, "capturing", false)
	if !strings.Contains(line, "State:") || !strings.Contains(line, "capturing") {
		t.Errorf("line = %q", line)
	}
	colored := renderStatusLine("State", statusOK, "capturing", true)
	if !strings.Contains(colored, ansiGreen) || !strings.HasSuffix(colored, ansiReset) {
		t.Errorf("colored line = %q", colored)
	}
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader("Monitoring", false)
	if len(lines) != 2 {
		t.Fatalf("%d lines, want 2", len(lines))
	}
	if lines[0] != "== Monitoring ==" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines[1]) != len(lines[0]) {
		t.Errorf("rule length %d != header length %d", len(lines[1]), len(lines[0]))
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := executeCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample not written: %v", err)
	}

	// refuses to clobber
	if _, err := executeCommand(t, "config", "init", "--path", target); err == nil {
		t.Error("second init overwrote the config")
	}
}

func TestConfigShowHonorsConfigFlag(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	contents := "[capture]\ninterval_min = 42\ninterval_max = 99\n"
	if err := os.WriteFile(target, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "config", "show", "-c", target)
	if err != nil {
		t.Fatalf("config show: %v\n%s", err, out)
	}
	if !strings.Contains(out, target) {
		t.Errorf("output does not name the loaded file:\n%s", out)
	}
	for _, want := range []string{"interval_min = 42", "interval_max = 99"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestClassifyRejectsNonLabels(t *testing.T) {
	if _, err := executeCommand(t, "classify", "screenshot_20260831_090000.png", "productive"); err == nil {
		t.Error("unknown label accepted")
	}
	// discard is a decision but not a label; it has its own command
	if _, err := executeCommand(t, "classify", "screenshot_20260831_090000.png", "discard"); err == nil {
		t.Error("discard accepted as a label")
	}
}

func TestWrapDialError(t *testing.T) {
	err := wrapDialError(os.ErrNotExist, "/tmp/vigild.sock")
	if !strings.Contains(err.Error(), "vigild") {
		t.Errorf("error %q does not point at the daemon", err)
	}
}
