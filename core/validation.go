// Copyright 2025 Sui Amor
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateAnswerOption validates an AnswerOption according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//
// NOT validated:
//   - Axes (the origin is a legal position; missing source values coerce to 0)
//   - ParentID (weak reference, may dangle)
func ValidateAnswerOption(answer *AnswerOption) error {
	if answer == nil {
		return fmt.Errorf("%w: answer is nil", ErrInvalidAnswerOption)
	}

	if answer.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAnswerOption, ErrEmptyID)
	}

	return nil
}

// ValidateAlignment validates an Alignment according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Type must be one of the closed set
//   - Components must list at least two ids, except SOLO which needs one
//
// NOT validated (derived at load time):
//   - Axes and Categories (zero resolvable components legally yields the
//     origin and an empty category set)
//   - Component resolvability (unresolved ids are kept for exact matching)
func ValidateAlignment(alignment *Alignment) error {
	if alignment == nil {
		return fmt.Errorf("%w: alignment is nil", ErrInvalidAlignment)
	}

	if alignment.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAlignment, ErrEmptyID)
	}

	if _, err := ParseAlignmentType(string(alignment.Type)); err != nil {
		return fmt.Errorf("%w: %w %q", ErrInvalidAlignment, err, alignment.Type)
	}

	minComponents := 2
	if alignment.Type == AlignmentSolo {
		minComponents = 1
	}
	if len(alignment.Components) < minComponents {
		return fmt.Errorf("%w: %w (got %d)", ErrInvalidAlignment, ErrTooFewComponents, len(alignment.Components))
	}

	return nil
}
