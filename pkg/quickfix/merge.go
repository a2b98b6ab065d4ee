package quickfix

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/rulekit/internal/logging"
)

// DocumentPair is one document's (original, changed) snapshot pair, ready
// for text-diff extraction.
type DocumentPair struct {
	Original *Document
	Changed  *Document
}

// ChangedDocuments reduces a code-action's proposed solution change to the
// document pairs whose text can be safely rewritten in the live workspace.
//
// original is the solution the proposal was computed against, changed is
// the proposal, and current is the workspace's solution right now. The
// whole proposal is declined (nil, nil) when anything other than text
// changed, or when the live workspace has moved since original:
//
//   - the proposal adds or removes projects or solution-level analyzer
//     references;
//   - any project adds or removes documents, additional documents,
//     analyzer-config documents, or any kind of reference;
//   - no document text actually changed;
//   - a changed document no longer exists in current;
//   - a changed document's current text differs from its original text.
//
// Documents whose version is unchanged are skipped without declining the
// rest. The returned pairs preserve project order (sorted by name) and
// document order within a project.
func ChangedDocuments(ctx context.Context, original, changed, current *Solution, logger *log.Logger) ([]DocumentPair, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if original == nil || changed == nil || current == nil {
		return nil, fmt.Errorf("changed documents: solution is nil")
	}

	if !sameProjectSet(original, changed) || !slices.Equal(original.AnalyzerReferences, changed.AnalyzerReferences) {
		logger.Debug("declining fix: proposal changes solution structure")
		return nil, nil
	}

	var pairs []DocumentPair
	for _, name := range original.ProjectNames() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("changed documents: %w", err)
		}

		origProject := original.Projects[name]
		changedProject := changed.Projects[name]

		if !sameProjectShape(origProject, changedProject) {
			logger.Debug("declining fix: proposal changes project structure", logging.FieldProject, name)
			return nil, nil
		}

		projectPairs, ok := changedDocumentsInProject(origProject, changedProject, current, logger)
		if !ok {
			return nil, nil
		}
		pairs = append(pairs, projectPairs...)
	}

	if len(pairs) == 0 {
		logger.Debug("declining fix: no document text changed")
		return nil, nil
	}

	return pairs, nil
}

// changedDocumentsInProject collects the safe text-change pairs for one
// project. ok=false means the whole proposal must be declined.
func changedDocumentsInProject(origProject, changedProject *Project, current *Solution, logger *log.Logger) ([]DocumentPair, bool) {
	var pairs []DocumentPair

	ids := slices.Collect(maps.Keys(origProject.Documents))
	slices.Sort(ids)

	for _, id := range ids {
		origDoc := origProject.Documents[id]
		changedDoc := changedProject.Documents[id]

		// Same version means the proposal left this document alone.
		if origDoc.Version == changedDoc.Version {
			continue
		}

		// The live workspace is read fresh here: it may have moved since
		// the diagnostic was computed.
		currentDoc, exists := current.Document(id)
		if !exists {
			logger.Debug("declining fix: document no longer exists",
				logging.FieldDocument, string(id))
			return nil, false
		}
		if currentDoc.Text != origDoc.Text {
			logger.Debug("declining fix: document changed since diagnostic was computed",
				logging.FieldDocument, string(id))
			return nil, false
		}

		pairs = append(pairs, DocumentPair{Original: origDoc, Changed: changedDoc})
	}

	return pairs, true
}

// sameProjectSet reports whether both solutions contain exactly the same
// project names.
func sameProjectSet(a, b *Solution) bool {
	if len(a.Projects) != len(b.Projects) {
		return false
	}
	for name := range a.Projects {
		if _, ok := b.Projects[name]; !ok {
			return false
		}
	}
	return true
}

// sameProjectShape reports whether two snapshots of a project agree on
// everything except document text: document sets and all reference lists.
func sameProjectShape(a, b *Project) bool {
	return sameDocumentSet(a.Documents, b.Documents) &&
		sameDocumentSet(a.AdditionalDocuments, b.AdditionalDocuments) &&
		sameDocumentSet(a.AnalyzerConfigDocuments, b.AnalyzerConfigDocuments) &&
		slices.Equal(a.MetadataReferences, b.MetadataReferences) &&
		slices.Equal(a.AnalyzerReferences, b.AnalyzerReferences) &&
		slices.Equal(a.ProjectReferences, b.ProjectReferences)
}

func sameDocumentSet(a, b map[DocumentID]*Document) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}
