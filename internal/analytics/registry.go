// Package analytics turns survey snapshots into per-question summaries and
// paginated response listings. Everything here is a pure function of its
// inputs: no I/O, no state besides the question kind registry.
package analytics

import (
	"sort"
	"sync"
	"sync/atomic"

	"surveydash/internal/model"
)

// Capability knows how to validate and summarize answers of one question kind
type Capability interface {
	// ValidateConfig checks that the question's kind-specific configuration is consistent
	ValidateConfig(q *model.Question) error
	// ValidateAnswer checks a non-blank answer value against the question
	ValidateAnswer(q *model.Question, v model.AnswerValue) error
	// IsBlank reports whether the value carries no answer at all
	IsBlank(v model.AnswerValue) bool
	// Aggregate reduces the answers of q into a summary
	Aggregate(q *model.Question, answers []model.Answer) model.Summary
}

// Registry maps question kinds to capabilities.
// Resolve is lock-free; Register swaps in a fresh copy of the mapping.
type Registry struct {
	kinds atomic.Pointer[map[model.QuestionKind]Capability]
	mu    sync.Mutex // serializes writers
}

// NewRegistry creates a registry with the built-in kinds registered
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.Register(model.KindMultiChoice, MultiChoice{})
	r.Register(model.KindLikert, Likert{})
	return r
}

// NewEmptyRegistry creates a registry where every kind resolves to Unsupported
func NewEmptyRegistry() *Registry {
	r := &Registry{}
	empty := make(map[model.QuestionKind]Capability)
	r.kinds.Store(&empty)
	return r
}

// Register adds or replaces the capability for kind. Last registration wins.
func (r *Registry) Register(kind model.QuestionKind, c Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := *r.kinds.Load()
	next := make(map[model.QuestionKind]Capability, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	next[kind] = c
	r.kinds.Store(&next)
}

// Resolve returns the capability for kind, or Unsupported if none is registered
func (r *Registry) Resolve(kind model.QuestionKind) Capability {
	if c, ok := (*r.kinds.Load())[kind]; ok {
		return c
	}
	return Unsupported{}
}

// Supports reports whether kind has a registered capability
func (r *Registry) Supports(kind model.QuestionKind) bool {
	_, ok := (*r.kinds.Load())[kind]
	return ok
}

// Kinds returns the registered kind names in sorted order
func (r *Registry) Kinds() []model.QuestionKind {
	current := *r.kinds.Load()
	kinds := make([]model.QuestionKind, 0, len(current))
	for k := range current {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
