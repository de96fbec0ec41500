// Copyright 2026 the askalex authors
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

// Package search ranks candidate publications against a question and
// assembles the token-budgeted context block used to ground the answer.
//
// The Searcher embeds each abstract and the query through a shared
// embedding service, scores candidates by cosine similarity with a stable
// descending sort, and keeps the top N. AssembleContext then packs ranked
// abstracts first-fit-by-rank into a bounded token budget.
package search
