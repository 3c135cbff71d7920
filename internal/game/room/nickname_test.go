package room

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNickname(t *testing.T) {
	// Simple test to ensure not empty
	name1 := GenerateNickname()
	assert.NotEmpty(t, name1)

	name2 := GenerateNickname()
	assert.NotEmpty(t, name2)
	// It's possible they are the same due to randomness, but highly unlikely if pool is large enough.
	// We won't assert inequality to avoid flaky tests, but we checked basic generation.
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "甲", SanitizeName("  甲  "))
	assert.Equal(t, "", SanitizeName("   "))

	// Over-long names are truncated by rune count, not bytes
	long := strings.Repeat("长", 30)
	assert.Equal(t, 16, len([]rune(SanitizeName(long))))
}
