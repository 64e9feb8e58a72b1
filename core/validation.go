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

import (
	"fmt"
	"strings"
)

// ValidateQuestion validates a Question according to domain rules.
//
// Validation rules:
//   - Text must be non-empty after trimming whitespace
//   - Threshold, when set, must be within [0, 1]
//
// NOT validated:
//   - SessionID (empty means DefaultSessionID)
func ValidateQuestion(q Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuestion, ErrEmptyQuestion)
	}
	if q.Threshold != nil && (*q.Threshold < 0 || *q.Threshold > 1) {
		return fmt.Errorf("%w: %w", ErrInvalidQuestion, ErrInvalidThreshold)
	}
	return nil
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//
// NOT validated (populated by the store):
//   - ID (0 means "derive from content")
//   - UploadedAt (set at ingest time)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocumentText)
	}
	return nil
}

// ValidateConfidence checks that a confidence value is within [0, 1].
func ValidateConfidence(confidence float64) error {
	if confidence < 0 || confidence > 1 {
		return fmt.Errorf("%w: got %f", ErrInvalidConfidence, confidence)
	}
	return nil
}

// ValidateSourceTag checks that a SourceTag is one of the known values.
func ValidateSourceTag(tag SourceTag) error {
	switch tag {
	case SourceLocalDocument, SourceVectorStore, SourceWebSearch, SourceFallback:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidSourceTag, tag)
}

// ValidateTurn validates a ConversationTurn before it is recorded.
func ValidateTurn(turn *ConversationTurn) error {
	if turn == nil {
		return fmt.Errorf("turn is nil")
	}
	if err := ValidateConfidence(turn.Confidence); err != nil {
		return err
	}
	return ValidateSourceTag(turn.Source)
}
