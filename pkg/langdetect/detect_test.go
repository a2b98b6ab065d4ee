package langdetect_test

import (
	"testing"

	"github.com/yaklabco/rulekit/pkg/langdetect"
	"github.com/yaklabco/rulekit/pkg/rules"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    rules.Language
		wantOK  bool
	}{
		{"c source", "main.c", "#include <stdio.h>\nint main(void) { return 0; }\n", rules.LangC, true},
		{"cpp source", "widget.cpp", "#include <vector>\nclass Widget {};\n", rules.LangCPP, true},
		{"csharp source", "Program.cs", "namespace App { class Program { static void Main() {} } }\n", rules.LangCS, true},
		{"javascript", "app.js", "const x = 1;\nmodule.exports = x;\n", rules.LangJS, true},
		{"typescript", "app.ts", "const x: number = 1;\nexport default x;\n", rules.LangTS, true},
		{"css", "style.css", "body { margin: 0; }\n", rules.LangCSS, true},
		{"unsupported go", "main.go", "package main\nfunc main() {}\n", rules.Language{}, false},
		{"unsupported text", "readme.txt", "hello\n", rules.Language{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := langdetect.Detect(tt.path, []byte(tt.content))
			if ok != tt.wantOK {
				t.Fatalf("Detect(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && got.Key != tt.want.Key {
				t.Errorf("Detect(%q) = %q, want %q", tt.path, got.Key, tt.want.Key)
			}
		})
	}
}

func TestDetect_HeaderFile(t *testing.T) {
	t.Parallel()

	// ".h" is ambiguous between C and C++; either analyzable language is
	// acceptable, but the file must not be skipped.
	got, ok := langdetect.Detect("list.h", []byte("struct node { struct node *next; };\n"))
	if !ok {
		t.Fatal("header files should be analyzable")
	}
	if got.Key != rules.LangC.Key && got.Key != rules.LangCPP.Key {
		t.Errorf("Detect(list.h) = %q, want c or cpp", got.Key)
	}
}
