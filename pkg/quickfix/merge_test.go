package quickfix_test

import (
	"context"
	"testing"

	"github.com/yaklabco/rulekit/pkg/quickfix"
)

const docMain = quickfix.DocumentID("main")

// testSolution builds a one-project solution with a single document.
func testSolution() *quickfix.Solution {
	return &quickfix.Solution{
		Projects: map[string]*quickfix.Project{
			"app": {
				Name: "app",
				Documents: map[quickfix.DocumentID]*quickfix.Document{
					docMain: {ID: docMain, Path: "main.c", Text: "int main() {\n  return 1;\n}\n", Version: 1},
				},
				MetadataReferences: []string{"libc"},
			},
		},
	}
}

func TestChangedDocuments_YieldsSingleTextChange(t *testing.T) {
	t.Parallel()

	original := testSolution()
	changed := original.WithDocumentText(docMain, "int main() {\n  return 0;\n}\n")
	current := original.Clone()

	pairs, err := quickfix.ChangedDocuments(context.Background(), original, changed, current, nil)
	if err != nil {
		t.Fatalf("ChangedDocuments returned error: %v", err)
	}

	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].Original.ID != docMain || pairs[0].Changed.ID != docMain {
		t.Errorf("pair = %+v", pairs[0])
	}
	if pairs[0].Changed.Text == pairs[0].Original.Text {
		t.Error("changed document should carry the new text")
	}
}

func TestChangedDocuments_DeclinesWhenWorkspaceMoved(t *testing.T) {
	t.Parallel()

	original := testSolution()
	changed := original.WithDocumentText(docMain, "int main() {\n  return 0;\n}\n")
	// The user edited the document after the diagnostic was computed.
	current := original.WithDocumentText(docMain, "int main() {\n  return 2;\n}\n")

	pairs, err := quickfix.ChangedDocuments(context.Background(), original, changed, current, nil)
	if err != nil {
		t.Fatalf("ChangedDocuments returned error: %v", err)
	}
	if pairs != nil {
		t.Errorf("expected decline, got %d pairs", len(pairs))
	}
}

func TestChangedDocuments_DeclinesWhenDocumentDeleted(t *testing.T) {
	t.Parallel()

	original := testSolution()
	changed := original.WithDocumentText(docMain, "int main() {\n  return 0;\n}\n")

	current := original.Clone()
	delete(current.Projects["app"].Documents, docMain)

	pairs, err := quickfix.ChangedDocuments(context.Background(), original, changed, current, nil)
	if err != nil {
		t.Fatalf("ChangedDocuments returned error: %v", err)
	}
	if pairs != nil {
		t.Error("expected decline when the target document no longer exists")
	}
}

func TestChangedDocuments_DeclinesStructuralChanges(t *testing.T) {
	t.Parallel()

	original := testSolution()

	tests := []struct {
		name   string
		mutate func(s *quickfix.Solution)
	}{
		{
			name: "project added",
			mutate: func(s *quickfix.Solution) {
				s.Projects["extra"] = &quickfix.Project{Name: "extra"}
			},
		},
		{
			name: "solution analyzer reference added",
			mutate: func(s *quickfix.Solution) {
				s.AnalyzerReferences = append(s.AnalyzerReferences, "analyzer.dll")
			},
		},
		{
			name: "document added",
			mutate: func(s *quickfix.Solution) {
				s.Projects["app"].Documents["other"] = &quickfix.Document{ID: "other", Path: "other.c"}
			},
		},
		{
			name: "metadata reference removed",
			mutate: func(s *quickfix.Solution) {
				s.Projects["app"].MetadataReferences = nil
			},
		},
		{
			name: "project reference added",
			mutate: func(s *quickfix.Solution) {
				s.Projects["app"].ProjectReferences = []string{"lib"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			changed := original.WithDocumentText(docMain, "int main() {\n  return 0;\n}\n")
			tt.mutate(changed)

			pairs, err := quickfix.ChangedDocuments(context.Background(), original, changed, original.Clone(), nil)
			if err != nil {
				t.Fatalf("ChangedDocuments returned error: %v", err)
			}
			if pairs != nil {
				t.Error("structural changes must decline the whole proposal")
			}
		})
	}
}

func TestChangedDocuments_DeclinesWhenNothingChanged(t *testing.T) {
	t.Parallel()

	original := testSolution()

	pairs, err := quickfix.ChangedDocuments(context.Background(), original, original.Clone(), original.Clone(), nil)
	if err != nil {
		t.Fatalf("ChangedDocuments returned error: %v", err)
	}
	if pairs != nil {
		t.Error("a proposal that changes nothing must be declined")
	}
}

func TestChangedDocuments_PropagatesCancellation(t *testing.T) {
	t.Parallel()

	original := testSolution()
	changed := original.WithDocumentText(docMain, "x\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := quickfix.ChangedDocuments(ctx, original, changed, original.Clone(), nil); err == nil {
		t.Error("cancelled context should surface an error")
	}
}
