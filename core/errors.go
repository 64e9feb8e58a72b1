// Copyright 2025 Poiesic Systems
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
	// ErrInvalidQuestion indicates a Question failed validation.
	ErrInvalidQuestion = errors.New("invalid question")

	// ErrEmptyQuestion indicates the question text is empty after trimming.
	ErrEmptyQuestion = errors.New("question text cannot be empty")

	// ErrInvalidThreshold indicates a relevance threshold outside [0,1].
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyDocumentText indicates the document has no extractable text.
	ErrEmptyDocumentText = errors.New("document text cannot be empty")

	// ErrInvalidConfidence indicates a confidence value outside [0,1].
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")

	// ErrInvalidSourceTag indicates an unknown source tag value.
	ErrInvalidSourceTag = errors.New("invalid source tag")
)
