package git

import "context"

// MockReader is a test double for Reader.
// It allows tests to provide predefined commits without needing a real Git repository.
type MockReader struct {
	Commits []Commit
	Error   error
}

// NewMockReader creates a new MockReader with the given data.
func NewMockReader(commits []Commit, err error) *MockReader {
	return &MockReader{
		Commits: commits,
		Error:   err,
	}
}

// ReadCommits returns the predefined commits or error.
func (m *MockReader) ReadCommits(_ context.Context) ([]Commit, error) {
	return m.Commits, m.Error
}

// Compile-time interface conformance check.
var _ Reader = (*MockReader)(nil)
