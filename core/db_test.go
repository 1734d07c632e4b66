package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderBy(t *testing.T) {
	allowed := map[string]string{"name": "name", "credits": "total_credits"}
	byID := DBOrdering{Field: "id", Ascending: true}

	tests := []struct {
		name      string
		orderings []DBOrdering
		defaults  []DBOrdering
		want      string
	}{
		{name: "none", want: ""},
		{name: "defaults", defaults: []DBOrdering{byID}, want: " ORDER BY id ASC"},
		{name: "mapped column", orderings: []DBOrdering{{Field: "credits"}}, want: " ORDER BY total_credits DESC"},
		{
			name:      "unknown fields are dropped",
			orderings: []DBOrdering{{Field: "name; DROP TABLE degrees", Ascending: true}, {Field: "name", Ascending: true}},
			defaults:  []DBOrdering{byID},
			want:      " ORDER BY name ASC",
		},
		{name: "only unknown", orderings: []DBOrdering{{Field: "lol"}}, defaults: []DBOrdering{byID}, want: " ORDER BY id ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderBy(tt.orderings, allowed, tt.defaults...))
		})
	}
}

func TestValidationError(t *testing.T) {
	assert.Equal(t, "name: cannot be blank", NewValidationError(nil, FieldError{Field: "name", Error: "cannot be blank"}).Error())
	assert.True(t, IsShutdown(NewShutdownError("integrity issue")))
	assert.False(t, IsShutdown(NewValidationError(nil)))
}
