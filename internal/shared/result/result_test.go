package result

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errBlogMissing = NotFound("blog not found")

func TestSentinelSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("load: %w", errBlogMissing.Wrap(errors.New("no rows")))

	assert.ErrorIs(t, err, errBlogMissing)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
	assert.Equal(t, "blog not found", PublicMessage(err))
}

func TestInternalHidesCause(t *testing.T) {
	err := Internal(errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.Equal(t, "internal server error", PublicMessage(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Invalid("bad"), http.StatusBadRequest},
		{Unauthenticated("who"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{Conflict("dup"), http.StatusConflict},
		{New(KindSlugExhausted, "slug"), http.StatusConflict},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestResultErr(t *testing.T) {
	ok := Ok(3, "audit log failed")
	assert.True(t, ok.OK)
	assert.NoError(t, ok.Err())
	assert.Equal(t, []string{"audit log failed"}, ok.Warnings)

	failed := Fail[int](Forbidden("not the owner"))
	assert.False(t, failed.OK)
	assert.Equal(t, KindForbidden, failed.Kind)
	assert.ErrorIs(t, failed.Err(), Forbidden("not the owner"))
}
