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


// Package ai provides abstractions for the embedding services used by alignd.
//
// The matching engine only touches embeddings through the interfaces defined
// here, so the core never couples to a concrete vendor API. Two implementation
// sub-packages exist:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles for unit testing without a service
//
// openai.NewProvider returns the Provider interface to enforce abstraction;
// mock constructors return concrete types so tests can inject behavior and
// assert call counts.
package ai
