package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckGuards(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        error
	}{
		{"ok", "Title", "<p>Twenty characters of text here</p>", nil},
		{"title trimmed", "  ab  ", "<p>Twenty characters of text here</p>", ErrTitleTooShort},
		{"markup does not count", "Title", "<h1></h1><p><strong>short</strong></p>", ErrContentTooShort},
		{"entities do not count", "Title", "&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;abc", ErrContentTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckGuards(tt.title, tt.description)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
