package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"+7 (999) 123-4567", "+79991234567", true},
		{"8 800 555-35-35", "88005553535", true},
		{"123456", "123456", true},
		{"12345", "", false},
		{"+1-23-45", "", false},
		{"phone123456", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := normalizePhone(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, isValidEmail("a@b.co"))
	assert.True(t, isValidEmail("ivan.petrov@mail.example.ru"))
	assert.False(t, isValidEmail("a@b"))
	assert.False(t, isValidEmail("a b@c.co"))
	assert.False(t, isValidEmail("@b.co"))
}

func TestIsSkipDistinctFromRejection(t *testing.T) {
	assert.True(t, isSkip("Skip"))
	assert.True(t, isSkip(" ПРОПУСТИТЬ "))
	assert.True(t, isSkip("нет"))
	assert.False(t, isSkip("не надо"))
	assert.False(t, isSkip(""))
}
