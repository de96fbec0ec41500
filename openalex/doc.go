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

// Package openalex retrieves candidate publications from the OpenAlex
// works API.
//
// Searches filter on abstract text with a "+"-joined keyword expression.
// A query that matches nothing is progressively relaxed by dropping the
// last keyword term; an exhausted query yields an empty collection rather
// than an error. Abstracts are decoded from OpenAlex's inverted-index
// representation and shortened to a bounded word count before entering
// the pipeline.
package openalex
