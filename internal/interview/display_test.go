package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"jo@x.com", "jo**@x.com"},
		{"jane.doe@example.com", "ja**@example.com"},
		{"a@b.io", "a**@b.io"},
		{"not-an-email", "not-an-email"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Mask(MaskEmail, tt.value), "value %q", tt.value)
	}
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "********567", Mask(MaskPhone, "15551234567"))
	assert.Equal(t, "********567", Mask(MaskPhone, "+1 (555) 123-4567"))
	assert.Equal(t, "123", Mask(MaskPhone, "123"))
}

func TestMaskNoneIsUntouched(t *testing.T) {
	assert.Equal(t, "Jane Doe", Mask(MaskNone, "Jane Doe"))
}

func TestDisplayShowsCollectedFieldsInOrder(t *testing.T) {
	s := NewSession()
	s.Candidate[FieldEmail] = "jo@x.com"
	s.Candidate[FieldFullName] = "Jane Doe"
	s.Warnings[FieldEmail] = true

	display := s.Display()

	require.Len(t, display.Fields, 2)
	assert.Equal(t, FieldFullName, display.Fields[0].Name)
	assert.Equal(t, FieldEmail, display.Fields[1].Name)
	assert.Equal(t, MaskEmail, display.Fields[1].Mask)
	assert.True(t, display.Fields[1].Warning)
	assert.Equal(t, "jo@x.com", display.Fields[1].Value, "the projection carries the raw value")
}

func TestDisplayQuestionProgress(t *testing.T) {
	s := NewSession()

	display := s.Display()
	assert.Zero(t, display.Progress.Total)
	assert.Zero(t, display.Progress.Answered)

	s.Questions = []Question{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	s.QuestionIndex = 2

	display = s.Display()
	assert.Equal(t, 3, display.Progress.Total)
	assert.Equal(t, 2, display.Progress.Answered)
}
