package main

import (
	"reflect"
	"testing"
)

func TestBuildEditorCommandSupportsQuotedPathAndArgs(t *testing.T) {
	template := `"/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code" -g "{target}" --reuse-window`
	name, args, err := buildEditorCommand(template, "/tmp/my file.go", 12, 4, "/tmp/my file.go:12:4")
	if err != nil {
		t.Fatalf("buildEditorCommand returned error: %v", err)
	}

	if name != "/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code" {
		t.Fatalf("name = %q", name)
	}

	wantArgs := []string{"-g", "/tmp/my file.go:12:4", "--reuse-window"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args = %#v, want %#v", args, wantArgs)
	}
}

func TestBuildEditorCommandPreservesEmptyArgument(t *testing.T) {
	template := `cmd /C start "" "{file}"`
	name, args, err := buildEditorCommand(template, `C:\Program Files\Editor\file.go`, 8, 1, `C:\Program Files\Editor\file.go:8:1`)
	if err != nil {
		t.Fatalf("buildEditorCommand returned error: %v", err)
	}

	if name != "cmd" {
		t.Fatalf("name = %q, want cmd", name)
	}

	wantArgs := []string{"/C", "start", "", `C:\Program Files\Editor\file.go`}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args = %#v, want %#v", args, wantArgs)
	}
}

func TestBuildEditorCommandRejectsUnclosedQuote(t *testing.T) {
	if _, _, err := buildEditorCommand(`code -g "{target}`, "file.go", 1, 1, "file.go:1:1"); err == nil {
		t.Fatalf("expected error for unclosed quote")
	}
}

func TestBuildEditorCommandKeepsBackslashes(t *testing.T) {
	name, args, err := buildEditorCommand(`C:\tools\code.exe -g {target}`, `C:\repo\file.go`, 3, 2, `C:\repo\file.go:3:2`)
	if err != nil {
		t.Fatalf("buildEditorCommand returned error: %v", err)
	}
	if name != `C:\tools\code.exe` {
		t.Fatalf("name = %q", name)
	}

	wantArgs := []string{"-g", `C:\repo\file.go:3:2`}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args = %#v, want %#v", args, wantArgs)
	}
}

func TestHostWordRegexAgreesWithResolver(t *testing.T) {
	line := `+++ b/src/main.go:12:3 (/root 2/x.rs)`
	words := hostWordRe.FindAllString(line, -1)
	want := []string{"+++", "b/src/main.go:12:3", "(/root", "2/x.rs)"}
	if !reflect.DeepEqual(words, want) {
		t.Fatalf("words = %q, want %q", words, want)
	}
}

func TestHighlightLinesUnknownFileTypePassesThrough(t *testing.T) {
	in := []string{"some opaque content", ""}
	out := highlightLines("/tmp/file.unknownext", in, "nord")
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("out = %q, want input unchanged", out)
	}
}
