package server

import (
	"time"

	"github.com/suiamor/alignd/catalog"
	"github.com/suiamor/alignd/core"
)

// MatchRequest is the request body for POST /api/v1/match. The shape
// mirrors the quiz payload: each entry carries the flat answers for one
// question and, optionally, nested sub-question answers.
type MatchRequest struct {
	Answers []QuizItem `json:"answers"`
}

// QuizItem is one question entry of a quiz submission.
type QuizItem struct {
	Question     string        `json:"question"`
	Answers      []string      `json:"answers,omitempty"`
	SubQuestions []SubQuestion `json:"sub_questions,omitempty"`
}

// SubQuestion is one hierarchical sub-question entry.
type SubQuestion struct {
	SubQuestion string   `json:"sub_question"`
	SubAnswers  []string `json:"sub_answers,omitempty"`
}

// Submission converts the wire shape into the core input type.
func (r *MatchRequest) Submission() core.Submission {
	questions := make([]core.QuestionAnswers, len(r.Answers))
	for i, item := range r.Answers {
		subs := make([]core.SubQuestionAnswers, len(item.SubQuestions))
		for j, sub := range item.SubQuestions {
			subs[j] = core.SubQuestionAnswers{
				SubQuestion: sub.SubQuestion,
				Answers:     sub.SubAnswers,
			}
		}
		questions[i] = core.QuestionAnswers{
			Question:     item.Question,
			Answers:      item.Answers,
			SubQuestions: subs,
		}
	}
	return core.Submission{Questions: questions}
}

// MatchResponse is the response body for POST /api/v1/match. Unmatched
// lists the submitted texts that resolved to no catalog answer.
type MatchResponse struct {
	Matches   []core.MatchResult `json:"matches"`
	Unmatched []string           `json:"unmatched,omitempty"`
}

// UploadResponse is the response body for POST /api/v1/catalog.
type UploadResponse struct {
	Revision        string    `json:"revision"`
	AnswersCount    int       `json:"answers_count"`
	AlignmentsCount int       `json:"alignments_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func uploadResponse(stats catalog.Stats) UploadResponse {
	return UploadResponse{
		Revision:        stats.Revision.String(),
		AnswersCount:    stats.AnswersCount,
		AlignmentsCount: stats.AlignmentsCount,
		UpdatedAt:       stats.UpdatedAt,
	}
}

// RevisionInfo is one entry of the upload history.
type RevisionInfo struct {
	Revision        string    `json:"revision"`
	Filename        string    `json:"filename"`
	AnswersCount    int       `json:"answers_count"`
	AlignmentsCount int       `json:"alignments_count"`
	UploadedAt      time.Time `json:"uploaded_at"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status        string `json:"status"`
	CatalogLoaded bool   `json:"catalog_loaded"`
}
