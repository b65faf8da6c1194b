package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	assert.Equal(t, language.Romanian, Match(""))
	assert.Equal(t, language.Romanian, Match("ro-RO,ro;q=0.9"))
	assert.Equal(t, language.English, Match("en-US,en;q=0.9"))
	assert.Equal(t, language.Romanian, Match("de-DE"))
	assert.Equal(t, language.Romanian, Match("not a header;;"))
}

func TestT(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "Acest link a expirat. Cereți un link nou.", T(r, TokenExpired))

	r.Header.Set("Accept-Language", "en")
	assert.Equal(t, "This link has expired. Please request a new one.", T(r, TokenExpired))
	assert.Equal(t, "File rejected: a.txt", T(r, UploadInvalidFiles, "a.txt"))
}

func TestEveryKeyHasBothLanguages(t *testing.T) {
	for key, m := range messages {
		assert.NotEmpty(t, m[0], "ro message for %s", key)
		assert.NotEmpty(t, m[1], "en message for %s", key)
		assert.NotEqual(t, key, Printer(language.English).Sprintf(key, "x"))
	}
}
