package i18n

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/pusdatin/simontok/internal/common/cnst"
)

func newTestI18n(t *testing.T) *I18n {
	t.Helper()

	dir := t.TempDir()
	idToml := `
[Greeting]
other = "Selamat datang, {{.Name}}"

[OnlyID]
other = "hanya bahasa Indonesia"
`
	enToml := `
[Greeting]
other = "Welcome, {{.Name}}"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "id.toml"), []byte(idToml), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.toml"), []byte(enToml), 0o644))

	tr := NewI18n(language.Indonesian)
	require.NoError(t, tr.LoadTranslations(dir))
	return tr
}

func TestTranslate(t *testing.T) {
	tr := newTestI18n(t)

	got := tr.Translate("Greeting", "id", map[string]interface{}{"Name": "Budi"})
	assert.Equal(t, "Selamat datang, Budi", got)

	got = tr.Translate("Greeting", "en", map[string]interface{}{"Name": "Budi"})
	assert.Equal(t, "Welcome, Budi", got)
}

func TestTranslateFallsBackToDefaultLanguage(t *testing.T) {
	tr := newTestI18n(t)

	got := tr.Translate("OnlyID", "en", nil)
	assert.Equal(t, "hanya bahasa Indonesia", got)
}

func TestTranslateUnknownIDReturnsID(t *testing.T) {
	tr := newTestI18n(t)

	assert.Equal(t, "NoSuchMessage", tr.Translate("NoSuchMessage", "id", nil))
}

func TestNormalizeLang(t *testing.T) {
	assert.Equal(t, "en", normalizeLang("en-US"))
	assert.Equal(t, "id", normalizeLang("ID"))
	assert.Equal(t, defaultLang, normalizeLang("fr"))
}

func TestLangFromRequestPrecedence(t *testing.T) {
	// Header beats cookie beats Accept-Language.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(cnst.XLang, "en")
	r.AddCookie(&http.Cookie{Name: cnst.LangCookie, Value: "id"})
	r.Header.Set("Accept-Language", "id-ID,id;q=0.9")
	assert.Equal(t, "en", LangFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: cnst.LangCookie, Value: "en"})
	r.Header.Set("Accept-Language", "id-ID,id;q=0.9")
	assert.Equal(t, "en", LangFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "en-US,en;q=0.9")
	assert.Equal(t, "en", LangFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, defaultLang, LangFromRequest(r))
}

func TestLangFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, defaultLang, LangFromContext(c))

	c.Set(cnst.CtxLang, "en")
	assert.Equal(t, "en", LangFromContext(c))
}
