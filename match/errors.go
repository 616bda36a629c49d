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

package match

import "errors"

var (
	// ErrNotLoaded indicates the engine has no active catalog yet.
	ErrNotLoaded = errors.New("no catalog loaded")

	// ErrInvalidConfig indicates a configuration value outside its
	// allowed range.
	ErrInvalidConfig = errors.New("invalid engine configuration")
)
