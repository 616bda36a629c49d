package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/suiamor/alignd/core"
)

// Snapshot is an immutable view of the loaded catalog plus all data derived
// from it. After construction it is never mutated, so any number of request
// goroutines may read it without synchronization.
type Snapshot struct {
	answers        map[string]*core.AnswerOption
	answerOrder    []*core.AnswerOption
	alignments     map[string]*core.Alignment
	alignmentOrder []*core.Alignment
	revision       core.ID
	updatedAt      time.Time
}

// Stats summarizes a snapshot for health and reload reporting.
type Stats struct {
	AnswersCount    int            `json:"answers_count"`
	AlignmentsCount int            `json:"alignments_count"`
	ByType          map[string]int `json:"alignments_by_type"`
	Revision        core.ID        `json:"revision"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NewSnapshot builds a snapshot from parsed answers and alignments, deriving
// each alignment's trait-space position and category set. Duplicate ids keep
// the first occurrence.
func NewSnapshot(answers []core.AnswerOption, alignments []core.Alignment, revision core.ID) *Snapshot {
	s := &Snapshot{
		answers:    make(map[string]*core.AnswerOption, len(answers)),
		alignments: make(map[string]*core.Alignment, len(alignments)),
		revision:   revision,
		updatedAt:  time.Now().UTC(),
	}

	for i := range answers {
		answer := answers[i]
		if _, ok := s.answers[answer.ID]; ok {
			continue
		}
		s.answers[answer.ID] = &answer
		s.answerOrder = append(s.answerOrder, &answer)
	}

	for i := range alignments {
		alignment := alignments[i]
		if _, ok := s.alignments[alignment.ID]; ok {
			continue
		}
		alignment.Axes = s.deriveAxes(alignment.Components)
		alignment.Categories = s.deriveCategories(alignment.Components)
		s.alignments[alignment.ID] = &alignment
		s.alignmentOrder = append(s.alignmentOrder, &alignment)
	}

	return s
}

// deriveAxes computes the weighted average of the resolved components' axes.
// The weight is 1/(position+1) with the position taken over the full
// component list, so an unresolved id still occupies its slot and later
// components keep their lower weights. Zero resolvable components yields the
// origin.
func (s *Snapshot) deriveAxes(components []string) core.Axes {
	var out core.Axes
	var total float64

	for i, id := range components {
		answer, ok := s.answers[id]
		if !ok {
			continue
		}
		w := 1.0 / float64(i+1)
		for a := 0; a < core.NumAxes; a++ {
			out[a] += answer.Axes[a] * w
		}
		total += w
	}

	if total > 0 {
		for a := 0; a < core.NumAxes; a++ {
			out[a] /= total
		}
	}
	return out
}

// deriveCategories returns the sorted union of the resolved components'
// non-empty categories.
func (s *Snapshot) deriveCategories(components []string) []string {
	set := make(map[string]struct{})
	for _, id := range components {
		answer, ok := s.answers[id]
		if !ok || answer.Category == "" {
			continue
		}
		set[answer.Category] = struct{}{}
	}

	categories := make([]string, 0, len(set))
	for c := range set {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

// Answer looks up an answer option by id.
func (s *Snapshot) Answer(id string) (*core.AnswerOption, bool) {
	answer, ok := s.answers[id]
	return answer, ok
}

// Alignment looks up an alignment by id.
func (s *Snapshot) Alignment(id string) (*core.Alignment, bool) {
	alignment, ok := s.alignments[id]
	return alignment, ok
}

// Answers returns all answer options in source order.
// The returned slice must not be modified.
func (s *Snapshot) Answers() []*core.AnswerOption {
	return s.answerOrder
}

// Alignments returns all alignments in source order.
// The returned slice must not be modified.
func (s *Snapshot) Alignments() []*core.Alignment {
	return s.alignmentOrder
}

// AnswerCount returns the number of answer options.
func (s *Snapshot) AnswerCount() int {
	return len(s.answerOrder)
}

// AlignmentCount returns the number of alignments.
func (s *Snapshot) AlignmentCount() int {
	return len(s.alignmentOrder)
}

// Revision returns the content-hash id of the source this snapshot was
// built from.
func (s *Snapshot) Revision() core.ID {
	return s.revision
}

// UpdatedAt returns when this snapshot was built.
func (s *Snapshot) UpdatedAt() time.Time {
	return s.updatedAt
}

// EmbeddingText builds the text representation of an alignment that the
// semantic fallback index embeds: title, description and the display text of
// every resolvable component.
func (s *Snapshot) EmbeddingText(alignment *core.Alignment) string {
	parts := []string{alignment.Title, alignment.Description}
	for _, id := range alignment.Components {
		if answer, ok := s.answers[id]; ok {
			parts = append(parts, answer.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Stats returns summary statistics for this snapshot.
func (s *Snapshot) Stats() Stats {
	byType := make(map[string]int)
	for _, alignment := range s.alignmentOrder {
		byType[string(alignment.Type)]++
	}
	return Stats{
		AnswersCount:    len(s.answerOrder),
		AlignmentsCount: len(s.alignmentOrder),
		ByType:          byType,
		Revision:        s.revision,
		UpdatedAt:       s.updatedAt,
	}
}
