package alignd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suiamor/alignd/core"
)

const testSource = `Answer_ID,Question_ID,Question_Text,Answer_Text,Category,Parent_Answer_ID,Axis_Energy,Axis_Pace,Axis_Orientation,Axis_Structure,Axis_Expression,Is_Selectable,Alignment_ID,Alignment_Type,Alignment_Name,Alignment_Text,Alignment_Components
COLOR_RED,Q1,Pick a color,Red,COLOR,,80,20,50,10,90,TRUE,,,,,
COLOR_BLUE,Q1,Pick a color,Blue,COLOR,,20,80,50,10,90,TRUE,,,,,
,,,,,,,,,,,,POLARITY_RED_BLUE,POLARITY,Red and Blue,Passion meets peace,COLOR_RED+COLOR_BLUE,
`

func newTestService(t *testing.T) *Service {
	t.Helper()
	service, err := NewService("", WithInMemoryStorage())
	require.NoError(t, err)
	t.Cleanup(func() { service.Close() })
	return service
}

func submission(answers ...string) core.Submission {
	return core.Submission{Questions: []core.QuestionAnswers{
		{Question: "quiz", Answers: answers},
	}}
}

func TestService_UploadAndMatch(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	stats, err := service.UploadCatalog(ctx, "alignments.csv", []byte(testSource))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.AnswersCount)
	assert.Equal(t, 1, stats.AlignmentsCount)

	results, err := service.Match(ctx, submission("Red", "Blue"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "POLARITY_RED_BLUE", results[0].ID)
	assert.Equal(t, core.TierExact, results[0].MatchTier)
}

func TestService_RestoreBeforeAnyUpload(t *testing.T) {
	service := newTestService(t)

	restored, err := service.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, restored)

	_, err = service.Stats()
	assert.Error(t, err)
}

func TestService_RestoreActivatesLatestUpload(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	_, err := service.UploadCatalog(ctx, "alignments.csv", []byte(testSource))
	require.NoError(t, err)

	restored, err := service.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, restored)

	stats, err := service.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.AnswersCount)
}

func TestService_Revisions(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	_, err := service.UploadCatalog(ctx, "alignments.csv", []byte(testSource))
	require.NoError(t, err)

	revisions, err := service.Revisions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, revisions, 1)
	assert.Equal(t, "alignments.csv", revisions[0].Filename)
	assert.Equal(t, core.IDFromContent([]byte(testSource)), revisions[0].Id)
}

func TestService_Unmatched(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	_, err := service.UploadCatalog(ctx, "alignments.csv", []byte(testSource))
	require.NoError(t, err)

	unmatched, err := service.Unmatched(submission("Red", "chartreuse hexagon"))
	require.NoError(t, err)
	assert.Equal(t, []string{"chartreuse hexagon"}, unmatched)
}
