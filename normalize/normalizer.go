// Copyright 2025 Sui Amor
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/suiamor/alignd/catalog"
	"github.com/suiamor/alignd/core"
)

// minSubstringLen guards the substring rule against short false
// positives like "a" or "the".
const minSubstringLen = 3

type lookupEntry struct {
	key    string
	answer *core.AnswerOption
}

// Normalizer resolves raw answer texts against a catalog snapshot.
// Lookups are read-only after construction.
type Normalizer struct {
	byKey map[string]*core.AnswerOption

	// entries preserves insertion order so the substring rule resolves
	// deterministically when several catalog texts would match.
	entries []lookupEntry
}

// New builds the lookup table from every answer in the snapshot. Each
// answer contributes its lower-cased trimmed text and, when different,
// a cleaned alphanumeric form.
func New(snap *catalog.Snapshot) *Normalizer {
	n := &Normalizer{byKey: make(map[string]*core.AnswerOption, snap.AnswerCount()*2)}

	for _, answer := range snap.Answers() {
		exact := strings.ToLower(strings.TrimSpace(answer.Text))
		n.add(exact, answer)

		if cleaned := cleanText(answer.Text); cleaned != exact {
			n.add(cleaned, answer)
		}
	}

	return n
}

func (n *Normalizer) add(key string, answer *core.AnswerOption) {
	if _, ok := n.byKey[key]; ok {
		return
	}
	n.byKey[key] = answer
	n.entries = append(n.entries, lookupEntry{key: key, answer: answer})
}

// Resolve maps a single raw answer text to a catalog answer. The rules
// run in order and the first hit wins: exact lower-cased match, cleaned
// match, then a substring test in either direction for cleaned inputs
// longer than minSubstringLen.
func (n *Normalizer) Resolve(raw string) (*core.AnswerOption, bool) {
	if answer, ok := n.byKey[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return answer, true
	}

	cleaned := cleanText(raw)
	if answer, ok := n.byKey[cleaned]; ok {
		return answer, true
	}

	if utf8.RuneCountInString(cleaned) <= minSubstringLen {
		return nil, false
	}
	for _, entry := range n.entries {
		if strings.Contains(entry.key, cleaned) || strings.Contains(cleaned, entry.key) {
			return entry.answer, true
		}
	}

	return nil, false
}

// Normalize walks a submission and resolves every raw answer text. Flat
// answers come first within each question, then the question's
// sub-question answers, and one shared counter assigns selection_order
// across the whole submission. Texts that resolve to no catalog answer
// are returned separately and do not consume a selection slot.
func (n *Normalizer) Normalize(sub core.Submission) ([]core.NormalizedAnswer, []string) {
	var (
		normalized []core.NormalizedAnswer
		unmatched  []string
		order      int
	)

	resolve := func(raw, question, subQuestion string, questionOrder int) {
		answer, ok := n.Resolve(raw)
		if !ok {
			unmatched = append(unmatched, raw)
			return
		}
		normalized = append(normalized, core.NormalizedAnswer{
			AnswerID:       answer.ID,
			SelectionOrder: order,
			QuestionOrder:  questionOrder,
			Axes:           answer.Axes,
			Category:       answer.Category,
			Text:           answer.Text,
			Question:       question,
			SubQuestion:    subQuestion,
		})
		order++
	}

	for _, question := range sub.Questions {
		for idx, raw := range question.Answers {
			resolve(raw, question.Question, "", idx)
		}
		for _, subQ := range question.SubQuestions {
			for idx, raw := range subQ.Answers {
				resolve(raw, question.Question, subQ.SubQuestion, idx)
			}
		}
	}

	return normalized, unmatched
}

// cleanText lower-cases, strips every rune that is not a letter, digit
// or space, and collapses internal whitespace.
func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
