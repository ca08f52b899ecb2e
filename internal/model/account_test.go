package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"minimum length", "Ash", false},
		{"maximum length", "SixteenCharsName", false},
		{"typical name", "Red", false},
		{"too short", "ab", true},
		{"empty", "", true},
		{"too long", "ThisNameIsSeventeen", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDisplayName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDisplayName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
