package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "&lt;script&gt;", SanitizeString("<script>"))
}

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", SanitizeEmail("  User@Example.COM "))
	assert.Equal(t, "user@example.com", SanitizeEmail("user@example.com\x00"))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "line one\nline two", SanitizeText("line one\nline two"))
	assert.Equal(t, "a &amp; b", SanitizeText(" a & b "))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("First.Last+tag@sub.example.org"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("user@"))
}

func TestValidateLocationCategory(t *testing.T) {
	type payload struct {
		Category string `validate:"required,location_category"`
	}

	assert.NoError(t, ValidateStruct(&payload{Category: "restroom"}))
	assert.NoError(t, ValidateStruct(&payload{Category: "restaurant"}))
	assert.NoError(t, ValidateStruct(&payload{Category: "public building"}))
	assert.Error(t, ValidateStruct(&payload{Category: "museum"}))
	assert.Error(t, ValidateStruct(&payload{Category: ""}))
}
