package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateQuestion(t *testing.T) {
	low, high := 0.5, 1.5

	tests := []struct {
		name    string
		q       Question
		wantErr error
	}{
		{"valid", Question{Text: "what is a vector store?"}, nil},
		{"valid with threshold", Question{Text: "hi", Threshold: &low}, nil},
		{"empty", Question{Text: ""}, ErrEmptyQuestion},
		{"whitespace only", Question{Text: "   \t\n"}, ErrEmptyQuestion},
		{"threshold out of range", Question{Text: "hi", Threshold: &high}, ErrInvalidThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestion(tt.q)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrInvalidQuestion)
			}
		})
	}
}

func TestValidateDocument(t *testing.T) {
	t.Run("nil document", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDocument(nil), ErrInvalidDocument)
	})

	t.Run("empty text", func(t *testing.T) {
		err := ValidateDocument(&Document{Filename: "a.txt"})
		assert.ErrorIs(t, err, ErrEmptyDocumentText)
	})

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateDocument(&Document{Text: "content"}))
	})
}

func TestValidateConfidence(t *testing.T) {
	assert.NoError(t, ValidateConfidence(0))
	assert.NoError(t, ValidateConfidence(1))
	assert.NoError(t, ValidateConfidence(0.3))
	assert.ErrorIs(t, ValidateConfidence(-0.1), ErrInvalidConfidence)
	assert.ErrorIs(t, ValidateConfidence(1.1), ErrInvalidConfidence)
}

func TestValidateSourceTag(t *testing.T) {
	for _, tag := range []SourceTag{SourceLocalDocument, SourceVectorStore, SourceWebSearch, SourceFallback} {
		assert.NoError(t, ValidateSourceTag(tag))
	}
	assert.ErrorIs(t, ValidateSourceTag("astradb"), ErrInvalidSourceTag)
}
