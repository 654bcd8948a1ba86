package utils_test

import (
	"testing"

	"github.com/euroblaze/ear-backend/internal/core/utils"
	"github.com/stretchr/testify/assert"
)

func TestStripImages(t *testing.T) {
	t.Run("removes markdown images", func(t *testing.T) {
		text := "Before ![screenshot](https://example.com/a.png) after"
		assert.Equal(t, "Before  after", utils.StripImages(text))
	})

	t.Run("removes html images", func(t *testing.T) {
		text := `Look: <img src="a.png" alt="x"> done`
		assert.Equal(t, "Look:  done", utils.StripImages(text))
	})

	t.Run("collapses blank lines left behind", func(t *testing.T) {
		text := "line one\n\n![img](x.png)\n\nline two"
		assert.NotContains(t, utils.StripImages(text), "\n\n")
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		assert.Equal(t, "", utils.StripImages(""))
	})
}

func TestFirstNWords(t *testing.T) {
	t.Run("short text passes through untruncated", func(t *testing.T) {
		assert.Equal(t, "printer is offline", utils.FirstNWords("printer is offline", 10))
	})

	t.Run("long text is cut with an ellipsis", func(t *testing.T) {
		got := utils.FirstNWords("one two three four five", 3)
		assert.Equal(t, "one two three...", got)
	})

	t.Run("markdown formatting is stripped first", func(t *testing.T) {
		text := "The **bold** fix for [the bug](https://example.com) works"
		assert.Equal(t, "The bold fix for the bug works", utils.FirstNWords(text, 10))
	})

	t.Run("code blocks do not count as words", func(t *testing.T) {
		text := "Error seen:\n```\npanic: nil deref\n```\nafter restart"
		assert.Equal(t, "Error seen: after restart", utils.FirstNWords(text, 10))
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Equal(t, "", utils.FirstNWords("", 5))
		assert.Equal(t, "", utils.FirstNWords("   ", 5))
	})
}
