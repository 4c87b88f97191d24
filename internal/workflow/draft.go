package workflow

import (
	"sync"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/pipeline"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

// DraftManager holds per-workflow working copies of pipelines during
// editing. Drafts are keyed by workflow ID, so concurrent edits to different
// workflows never observe each other; edits to a draft only reach the store
// when the caller commits and persists the result.
type DraftManager struct {
	mu     sync.Mutex
	drafts map[types.ID]pipeline.Pipeline
}

// NewDraftManager creates an empty DraftManager.
func NewDraftManager() *DraftManager {
	return &DraftManager{
		drafts: make(map[types.ID]pipeline.Pipeline),
	}
}

// Begin opens a draft for the workflow, seeding it with a copy of the given
// pipeline. An existing draft for the same workflow is replaced.
func (m *DraftManager) Begin(id types.ID, p pipeline.Pipeline) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[id] = p.Clone()
}

// Get returns a copy of the current draft for the workflow. The second
// return is false if no draft is open.
func (m *DraftManager) Get(id types.ID) (pipeline.Pipeline, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.drafts[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Apply runs an editing operation against the draft and stores the result.
// It is a no-op returning false if no draft is open for the workflow.
func (m *DraftManager) Apply(id types.ID, edit func(pipeline.Pipeline) pipeline.Pipeline) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.drafts[id]
	if !ok {
		return false
	}
	m.drafts[id] = edit(p)
	return true
}

// Commit closes the draft and returns its final pipeline. The second return
// is false if no draft was open.
func (m *DraftManager) Commit(id types.ID) (pipeline.Pipeline, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.drafts[id]
	if !ok {
		return nil, false
	}
	delete(m.drafts, id)
	return p, true
}

// Discard drops the draft without returning it.
func (m *DraftManager) Discard(id types.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
}

// Open returns the number of currently open drafts.
func (m *DraftManager) Open() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.drafts)
}
