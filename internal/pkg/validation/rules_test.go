package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"prof@example.edu", true},
		{"first.last+tag@berkeley.edu", true},
		{"UPPER@EXAMPLE.ORG", true},
		{"", false},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"spaces in@example.edu", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IsEmail(tc.value), "IsEmail(%q)", tc.value)
	}
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("123e4567-e89b-12d3-a456-426614174000"))
	assert.True(t, IsUUID("123E4567-E89B-12D3-A456-426614174000"), "uuid check is case-insensitive")
	assert.False(t, IsUUID("123e4567"))
	assert.False(t, IsUUID("not-a-uuid-at-all-but-with-dashes"))
	assert.False(t, IsUUID(""))
}

func TestTitleSlug(t *testing.T) {
	assert.Equal(t, "intro_to_testing", TitleSlug("Intro to Testing"))
	assert.Equal(t, "c_programming_fall_2025_", TitleSlug("C++ Programming (Fall 2025)"))

	long := strings.Repeat("abcde ", 20)
	slug := TitleSlug(long)
	assert.LessOrEqual(t, len(slug), SlugMaxLength)
}
