package ruledoc_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/rulekit/pkg/ruledoc"
)

func TestRender_Paragraph(t *testing.T) {
	t.Parallel()

	got, err := ruledoc.Render("Shared naming conventions allow teams to collaborate.")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(got, "Shared naming conventions allow teams to collaborate.") {
		t.Errorf("Render output = %q", got)
	}
}

func TestRender_StripsInlineMarkup(t *testing.T) {
	t.Parallel()

	got, err := ruledoc.Render("Prefer `std::unique_ptr` over raw pointers.")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if strings.Contains(got, "`") {
		t.Errorf("backticks should be stripped: %q", got)
	}
	if !strings.Contains(got, "std::unique_ptr") {
		t.Errorf("code span text should survive: %q", got)
	}
}

func TestRender_HeadingUnderlined(t *testing.T) {
	t.Parallel()

	got, err := ruledoc.Render("## Noncompliant code example\n\nBody.")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(got, "Noncompliant code example\n-------------------------") {
		t.Errorf("heading should be underlined:\n%s", got)
	}
}

func TestRender_CodeBlockIndented(t *testing.T) {
	t.Parallel()

	got, err := ruledoc.Render("```cpp\nvoid DoSomething();\n```")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(got, "    void DoSomething();") {
		t.Errorf("code should be indented:\n%s", got)
	}
}

func TestRender_ListItems(t *testing.T) {
	t.Parallel()

	got, err := ruledoc.Render("- first\n- second\n")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(got, "  - first\n") || !strings.Contains(got, "  - second\n") {
		t.Errorf("list rendering:\n%s", got)
	}
}
