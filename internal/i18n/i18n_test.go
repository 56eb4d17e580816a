package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		tag      string
		expected Locale
	}{
		{tag: "en", expected: LocaleEN},
		{tag: "zh-TW", expected: LocaleZhTW},
		{tag: "", expected: DefaultLocale},
		{tag: "fr", expected: DefaultLocale},
		{tag: "EN", expected: DefaultLocale},
	}

	for _, tt := range tests {
		t.Run("tag "+tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.tag))
		})
	}
}

func TestErrorResult(t *testing.T) {
	en := ErrorResult(LocaleEN)
	assert.Equal(t, 0, en.Score)
	assert.Contains(t, en.Analysis, "a bit of a problem")
	assert.NotEmpty(t, en.DeathScene)
	assert.NotEmpty(t, en.Rationale)
	assert.Zero(t, en.SurvivalTimeMs)

	zh := ErrorResult(LocaleZhTW)
	assert.Equal(t, 0, zh.Score)
	assert.NotEqual(t, en.Analysis, zh.Analysis)
	assert.NotEmpty(t, zh.DeathScene)
}

func TestLoadingMessage(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.NotEmpty(t, LoadingMessage(LocaleEN))
		assert.NotEmpty(t, LoadingMessage(LocaleZhTW))
		// Unknown locales fall back instead of panicking.
		assert.NotEmpty(t, LoadingMessage(Locale("fr")))
	}
}
