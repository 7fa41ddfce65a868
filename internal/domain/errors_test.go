package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	tests := []struct {
		err      error
		category error
	}{
		{ErrNameRequired, ErrValidation},
		{ErrInvalidAmount, ErrValidation},
		{ErrInvalidDate, ErrValidation},
		{ErrAccountNotFound, ErrNotFound},
		{ErrBillNotFound, ErrNotFound},
		{ErrNotAnObject, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.category)
			wrapped := fmt.Errorf("context: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.err)
			assert.ErrorIs(t, wrapped, tt.category)
		})
	}
}

func TestErrorCategories_AreDisjoint(t *testing.T) {
	assert.False(t, errors.Is(ErrNameRequired, ErrNotFound))
	assert.False(t, errors.Is(ErrAccountNotFound, ErrValidation))
	assert.Equal(t, "name is required", ErrNameRequired.Error())
}
