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

import "errors"

// Domain validation errors
var (
	// ErrInvalidAlignmentType indicates an alignment type outside the closed set.
	ErrInvalidAlignmentType = errors.New("invalid alignment type")

	// ErrInvalidAnswerOption indicates an AnswerOption failed validation.
	ErrInvalidAnswerOption = errors.New("invalid answer option")

	// ErrInvalidAlignment indicates an Alignment failed validation.
	ErrInvalidAlignment = errors.New("invalid alignment")

	// ErrEmptyID indicates a required identifier field is empty.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrTooFewComponents indicates an alignment with fewer than two components.
	ErrTooFewComponents = errors.New("alignment needs at least two components")
)
