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


package catalog

import "errors"

var (
	// ErrEmptySource is returned when the catalog source has no header row.
	ErrEmptySource = errors.New("catalog source is empty")

	// ErrMissingColumn is returned when a required column is absent from the
	// source header. The wrapping error names the column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrMalformedSource is returned when the source cannot be parsed as CSV.
	ErrMalformedSource = errors.New("malformed catalog source")
)
