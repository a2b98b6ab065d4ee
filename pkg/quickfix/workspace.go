package quickfix

import (
	"maps"
	"slices"
)

// DocumentID identifies a document across solution snapshots.
type DocumentID string

// Document is an immutable snapshot of one source document.
type Document struct {
	ID   DocumentID
	Path string
	Text string

	// Version increments whenever Text changes. Two snapshots of the same
	// document with equal versions have equal text.
	Version int
}

// Project is a snapshot of one project's documents and references.
type Project struct {
	Name string

	Documents               map[DocumentID]*Document
	AdditionalDocuments     map[DocumentID]*Document
	AnalyzerConfigDocuments map[DocumentID]*Document

	MetadataReferences []string
	AnalyzerReferences []string
	ProjectReferences  []string
}

// Solution is an immutable snapshot of a workspace.
type Solution struct {
	Projects map[string]*Project

	// AnalyzerReferences are solution-level analyzer references.
	AnalyzerReferences []string
}

// Document finds a document by id across all projects.
func (s *Solution) Document(id DocumentID) (*Document, bool) {
	for _, name := range s.ProjectNames() {
		if doc, ok := s.Projects[name].Documents[id]; ok {
			return doc, true
		}
	}
	return nil, false
}

// ProjectNames returns the project names, sorted.
func (s *Solution) ProjectNames() []string {
	names := slices.Collect(maps.Keys(s.Projects))
	slices.Sort(names)
	return names
}

// WithDocumentText returns a deep copy of the solution where the document
// with the given id carries the new text and a bumped version. The
// receiver is unchanged. Returns the receiver when the id is unknown.
func (s *Solution) WithDocumentText(id DocumentID, text string) *Solution {
	if _, ok := s.Document(id); !ok {
		return s
	}

	out := s.Clone()
	for _, project := range out.Projects {
		if doc, ok := project.Documents[id]; ok {
			updated := *doc
			updated.Text = text
			updated.Version = doc.Version + 1
			project.Documents[id] = &updated
		}
	}
	return out
}

// Clone returns a deep copy of the solution.
func (s *Solution) Clone() *Solution {
	out := &Solution{
		Projects:           make(map[string]*Project, len(s.Projects)),
		AnalyzerReferences: slices.Clone(s.AnalyzerReferences),
	}
	for name, project := range s.Projects {
		cloned := &Project{
			Name:                    project.Name,
			Documents:               cloneDocuments(project.Documents),
			AdditionalDocuments:     cloneDocuments(project.AdditionalDocuments),
			AnalyzerConfigDocuments: cloneDocuments(project.AnalyzerConfigDocuments),
			MetadataReferences:      slices.Clone(project.MetadataReferences),
			AnalyzerReferences:      slices.Clone(project.AnalyzerReferences),
			ProjectReferences:       slices.Clone(project.ProjectReferences),
		}
		out.Projects[name] = cloned
	}
	return out
}

func cloneDocuments(docs map[DocumentID]*Document) map[DocumentID]*Document {
	if docs == nil {
		return nil
	}
	return maps.Clone(docs)
}
