package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suiamor/alignd/catalog"
	"github.com/suiamor/alignd/core"
)

func testSnapshot() *catalog.Snapshot {
	answers := []core.AnswerOption{
		{ID: "COLOR_RED", Text: "Red", Category: "COLOR", Axes: core.Axes{80, 20, 50, 10, 90}},
		{ID: "COLOR_BLUE", Text: "Blue", Category: "COLOR", Axes: core.Axes{20, 80, 50, 10, 90}},
		{ID: "NAV_FLOW", Text: "I go with the flow!", Category: "NAV", Axes: core.Axes{10, 60, 40, 20, 30}},
		{ID: "NAV_PLAN", Text: "I plan everything ahead", Category: "NAV"},
	}
	return catalog.NewSnapshot(answers, nil, core.ID(1))
}

func TestResolve_Exact(t *testing.T) {
	n := New(testSnapshot())

	answer, ok := n.Resolve("  Red ")
	require.True(t, ok)
	assert.Equal(t, "COLOR_RED", answer.ID)

	answer, ok = n.Resolve("BLUE")
	require.True(t, ok)
	assert.Equal(t, "COLOR_BLUE", answer.ID)
}

func TestResolve_Cleaned(t *testing.T) {
	n := New(testSnapshot())

	// punctuation and doubled whitespace strip away
	answer, ok := n.Resolve("I go with   the flow")
	require.True(t, ok)
	assert.Equal(t, "NAV_FLOW", answer.ID)
}

func TestResolve_Substring(t *testing.T) {
	n := New(testSnapshot())

	// input contained in a catalog text
	answer, ok := n.Resolve("plan everything")
	require.True(t, ok)
	assert.Equal(t, "NAV_PLAN", answer.ID)

	// catalog text contained in the input
	answer, ok = n.Resolve("honestly I go with the flow most days")
	require.True(t, ok)
	assert.Equal(t, "NAV_FLOW", answer.ID)
}

func TestResolve_ShortInputNeverSubstringMatches(t *testing.T) {
	n := New(testSnapshot())

	// "re" is inside "red" but too short for the substring rule
	_, ok := n.Resolve("re")
	assert.False(t, ok)
}

func TestResolve_ShortInputLengthCountsRunes(t *testing.T) {
	answers := []core.AnswerOption{
		{ID: "MOOD_CAFE", Text: " Génération café culture", Category: "MOOD"},
	}
	n := New(catalog.NewSnapshot(answers, nil, core.ID(1)))

	// three runes but six bytes, still too short for the substring rule
	_, ok := n.Resolve("éné")
	assert.False(t, ok)

	answer, ok := n.Resolve("génération")
	require.True(t, ok)
	assert.Equal(t, "MOOD_CAFE", answer.ID)
}

func TestResolve_Miss(t *testing.T) {
	n := New(testSnapshot())

	_, ok := n.Resolve("quetzalcoatl")
	assert.False(t, ok)
}

func TestResolve_CatalogTextAlwaysResolvesToItsID(t *testing.T) {
	snap := testSnapshot()
	n := New(snap)

	for _, answer := range snap.Answers() {
		got, ok := n.Resolve(answer.Text)
		require.True(t, ok, "catalog text %q must resolve", answer.Text)
		assert.Equal(t, answer.ID, got.ID)
	}
}

func TestNormalize_SelectionOrderSpansSubmission(t *testing.T) {
	n := New(testSnapshot())

	sub := core.Submission{Questions: []core.QuestionAnswers{
		{
			Question: "Pick a color",
			Answers:  []string{"Red", "Blue"},
			SubQuestions: []core.SubQuestionAnswers{
				{SubQuestion: "And a backup?", Answers: []string{"I go with the flow!"}},
			},
		},
		{
			Question: "How do you move",
			Answers:  []string{"I plan everything ahead"},
		},
	}}

	normalized, unmatched := n.Normalize(sub)
	require.Len(t, normalized, 4)
	assert.Empty(t, unmatched)

	assert.Equal(t, []string{"COLOR_RED", "COLOR_BLUE", "NAV_FLOW", "NAV_PLAN"},
		[]string{normalized[0].AnswerID, normalized[1].AnswerID, normalized[2].AnswerID, normalized[3].AnswerID})
	for i, na := range normalized {
		assert.Equal(t, i, na.SelectionOrder)
	}

	assert.Equal(t, "And a backup?", normalized[2].SubQuestion)
	assert.Equal(t, "Pick a color", normalized[2].Question)
	assert.Equal(t, 0, normalized[3].QuestionOrder)
}

func TestNormalize_UnmatchedSkippedWithoutGaps(t *testing.T) {
	n := New(testSnapshot())

	sub := core.Submission{Questions: []core.QuestionAnswers{
		{Question: "Pick a color", Answers: []string{"Red", "chartreuse hexagon", "Blue"}},
	}}

	normalized, unmatched := n.Normalize(sub)
	require.Len(t, normalized, 2)
	assert.Equal(t, []string{"chartreuse hexagon"}, unmatched)

	// the dropped text does not consume a selection slot
	assert.Equal(t, 0, normalized[0].SelectionOrder)
	assert.Equal(t, 1, normalized[1].SelectionOrder)
	assert.Equal(t, 2, normalized[1].QuestionOrder)
}

func TestNormalize_EmptySubmission(t *testing.T) {
	n := New(testSnapshot())

	normalized, unmatched := n.Normalize(core.Submission{})
	assert.Empty(t, normalized)
	assert.Empty(t, unmatched)
}

func TestNormalize_CarriesCatalogData(t *testing.T) {
	n := New(testSnapshot())

	sub := core.Submission{Questions: []core.QuestionAnswers{
		{Question: "Pick a color", Answers: []string{"red"}},
	}}

	normalized, _ := n.Normalize(sub)
	require.Len(t, normalized, 1)
	assert.Equal(t, "Red", normalized[0].Text)
	assert.Equal(t, "COLOR", normalized[0].Category)
	assert.Equal(t, core.Axes{80, 20, 50, 10, 90}, normalized[0].Axes)
}
