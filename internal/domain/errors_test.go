package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrors_AreDistinctAndWrappable(t *testing.T) {
	all := []error{
		ErrTemplateNotFound,
		ErrFontLoad,
		ErrEmptyInput,
		ErrTooManyNames,
		ErrNameTooLong,
		ErrUnknownTemplate,
		ErrInvalidAPIKey,
		ErrTokenStoreNotReady,
	}

	for i, a := range all {
		assert.NotEmpty(t, a.Error())
		for j, b := range all {
			if i != j {
				assert.NotEqual(t, a, b)
			}
		}

		wrapped := fmt.Errorf("context: %w", a)
		assert.True(t, errors.Is(wrapped, a))

		joined := errors.Join(errors.New("other"), a)
		assert.True(t, errors.Is(joined, a))
	}
}
