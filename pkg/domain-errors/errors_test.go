package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct code", func(t *testing.T) {
		err := New(CodeValidation, "bad")
		assert.True(t, HasCode(err, CodeValidation))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", New(CodeNotInitialized, "not ready"))
		assert.True(t, HasCode(err, CodeNotInitialized))
	})

	t.Run("matches inner coded cause", func(t *testing.T) {
		inner := New(CodeInvalidSubject, "Data subject not found")
		err := Wrap(inner, CodeInternal, "request failed")
		assert.True(t, HasCode(err, CodeInternal))
		assert.True(t, HasCode(err, CodeInvalidSubject))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	err := Wrap(errors.New("connection refused"), CodeInternal, "audit append failed")
	assert.Equal(t, "audit append failed: connection refused", err.Error())
	assert.Equal(t, "not ready", New(CodeNotInitialized, "not ready").Error())
}
