package apperror

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessageWinsOverWrappedSentinel(t *testing.T) {
	err := New(http.StatusTooManyRequests, "you can post another review in 25s", ErrRateLimitExceeded)

	assert.Equal(t, "you can post another review in 25s", err.Error())
	assert.ErrorIs(t, err, ErrRateLimitExceeded)
	assert.Equal(t, http.StatusTooManyRequests, MapErrorToStatus(err))
}

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrConflict, http.StatusConflict},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, MapErrorToStatus(tc.err), "err=%v", tc.err)
	}
}
