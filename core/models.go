package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored entities such as catalog revisions.
// It is generated by content-based hashing so identical sources map to the
// same revision.
type ID uint64

// IDFromContent generates a deterministic ID from raw content using BLAKE2b hashing.
func IDFromContent(data []byte) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// String renders the ID as fixed-width hex.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// AlignmentType classifies an alignment. The set is closed; source values are
// case-normalized to upper case on load.
type AlignmentType string

const (
	AlignmentSynergy   AlignmentType = "SYNERGY"
	AlignmentHarmony   AlignmentType = "HARMONY"
	AlignmentResonance AlignmentType = "RESONANCE"
	AlignmentPolarity  AlignmentType = "POLARITY"
	AlignmentSolo      AlignmentType = "SOLO"
)

// ParseAlignmentType normalizes a raw source value to an AlignmentType.
// Returns ErrInvalidAlignmentType for values outside the closed set.
func ParseAlignmentType(raw string) (AlignmentType, error) {
	t := AlignmentType(strings.ToUpper(strings.TrimSpace(raw)))
	switch t {
	case AlignmentSynergy, AlignmentHarmony, AlignmentResonance, AlignmentPolarity, AlignmentSolo:
		return t, nil
	}
	return "", ErrInvalidAlignmentType
}

// OrderSensitive reports whether component order matters for Tier-1 matching
// of alignments of this type. Synergies and harmonies describe a progression,
// so the user must have selected their components in listed order.
func (t AlignmentType) OrderSensitive() bool {
	return t == AlignmentSynergy || t == AlignmentHarmony
}

// AnswerOption is a selectable quiz answer from the catalog.
type AnswerOption struct {
	ID           string
	QuestionID   string
	QuestionText string
	Text         string
	Category     string
	ParentID     string // weak reference to a hierarchically superior answer, may be empty
	Axes         Axes
}

// Alignment is a named combination of answer options forming a thematic unit.
// Axes and Categories are derived from the resolved components at load time;
// component ids that do not resolve to catalog answers stay in Components for
// exact matching but contribute nothing to the derived fields.
type Alignment struct {
	ID             string
	Type           AlignmentType
	Title          string
	Description    string
	Components     []string // ordered as listed in the source
	OrderSensitive bool
	Axes           Axes
	Categories     []string // sorted union of resolved component categories
}

// HasAnyCategory reports whether the alignment shares at least one category
// with the given set.
func (a *Alignment) HasAnyCategory(categories map[string]struct{}) bool {
	for _, c := range a.Categories {
		if _, ok := categories[c]; ok {
			return true
		}
	}
	return false
}

// NormalizedAnswer is a raw quiz answer resolved to a catalog answer id.
// Derived per request, never persisted.
type NormalizedAnswer struct {
	AnswerID       string
	SelectionOrder int // global 0-based index across the whole submission
	QuestionOrder  int // index within its question or sub-question
	Axes           Axes
	Category       string
	Text           string
	Question       string
	SubQuestion    string
}

// Submission is the normalized input shape for a quiz evaluation request.
// The boundary layer constructs it once; the core never consumes raw maps.
type Submission struct {
	Questions []QuestionAnswers
}

// QuestionAnswers carries the free-text answers given for one question,
// optionally organized into sub-questions.
type QuestionAnswers struct {
	Question     string
	Answers      []string
	SubQuestions []SubQuestionAnswers
}

// SubQuestionAnswers carries the answers for one hierarchical sub-question.
type SubQuestionAnswers struct {
	SubQuestion string
	Answers     []string
}

// MatchTier identifies the stage of the fallback chain that produced a result.
type MatchTier string

const (
	TierExact            MatchTier = "exact"
	TierAxis             MatchTier = "axis"
	TierVector           MatchTier = "vector"
	TierCategoryFallback MatchTier = "category_fallback"
)

// MatchResult is one recommended alignment with its match provenance.
// Confidence is monotonic within a tier but not comparable across tiers.
type MatchResult struct {
	ID          string        `json:"id"`
	Type        AlignmentType `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	MatchTier   MatchTier     `json:"match_tier"`
	Confidence  float64       `json:"confidence"` // rounded to 2 decimals
	Distance    float64       `json:"distance"`   // rounded to 3 decimals
}

// CatalogRevision describes one persisted catalog source upload.
type CatalogRevision struct {
	Id              ID
	Filename        string
	AnswersCount    int
	AlignmentsCount int
	UploadedAt      time.Time
}
