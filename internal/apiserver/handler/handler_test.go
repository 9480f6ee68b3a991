package handler

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pusdatin/simontok/internal/apiserver/database"
	"github.com/pusdatin/simontok/internal/apiserver/middleware"
	"github.com/pusdatin/simontok/internal/auth/jwt"
	"github.com/pusdatin/simontok/internal/common/cnst"
	"github.com/pusdatin/simontok/internal/common/config"
	"github.com/pusdatin/simontok/internal/session"
	"github.com/pusdatin/simontok/pkg/metrics"
)

// stubTemplates stands in for the real template tree so the tests never
// depend on the on-disk assets.
var stubTemplates = template.Must(template.New("").Parse(`
{{define "login.tmpl"}}login {{.Message}}{{end}}
{{define "register.tmpl"}}register {{.Message}}{{end}}
{{define "dashboard.tmpl"}}dashboard{{end}}
{{define "personnel_list.tmpl"}}personnel {{len .Result.Rows}}{{end}}
{{define "personnel_form.tmpl"}}form {{.Message}}{{end}}
{{define "distribution_list.tmpl"}}distribution{{end}}
`))

type testApp struct {
	db      *database.DB
	jwt     *jwt.Service
	flashes session.Store
	r       *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbi, err := database.NewDatabase(&config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbi.Close() })

	jwtSvc, err := jwt.NewService(config.JWTConfig{
		SecretKey: "test-secret-key-of-at-least-32-chars!",
		Duration:  time.Hour,
	})
	require.NoError(t, err)

	logger := zap.NewNop()
	flashes := session.NewMemoryStore(logger)
	h := New(dbi, jwtSvc, flashes, metrics.New(config.MetricsConfig{Namespace: "test"}), logger, &config.Config{})

	r := gin.New()
	r.Use(middleware.Auth(jwtSvc))
	r.SetHTMLTemplate(stubTemplates)
	h.Routes(r)

	return &testApp{db: dbi.(*database.DB), jwt: jwtSvc, flashes: flashes, r: r}
}

func (a *testApp) seedUser(t *testing.T, username, password string, role int, office string) *database.User {
	t.Helper()
	ctx := context.Background()

	if _, err := a.db.GetOffice(ctx, office); err != nil {
		require.NoError(t, a.db.CreateOffice(ctx, &database.Office{
			Trigram: office,
			Name:    "Perwakilan " + office,
			Country: "Negara",
			Kind:    database.KindKBRI,
		}))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &database.User{Name: "Uji " + username, Username: username, Password: string(hash), Role: role, Office: office}
	require.NoError(t, a.db.CreateUser(ctx, u))
	return u
}

func (a *testApp) cookie(t *testing.T, role int, office string) *http.Cookie {
	t.Helper()
	token, err := a.jwt.GenerateToken("U0001", "Uji", role, office, "sid-test")
	require.NoError(t, err)
	return &http.Cookie{Name: cnst.SessionCookie, Value: token}
}

func postForm(r *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginSuccessSetsCookie(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "budi", "rahasia", session.RoleRegular, "TKY")

	w := postForm(app.r, "/login", url.Values{"username": {"budi"}, "password": {"rahasia"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	var found bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == cnst.SessionCookie && ck.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "session cookie not set")
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "budi", "rahasia", session.RoleRegular, "TKY")

	w := postForm(app.r, "/login", url.Values{"username": {"budi"}, "password": {"salah"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "login")
	assert.Empty(t, w.Header().Get("Location"))
}

func TestAnonymousIsRedirected(t *testing.T) {
	app := newTestApp(t)

	w := get(app.r, "/personel")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRootRedirectsByLoginState(t *testing.T) {
	app := newTestApp(t)

	w := get(app.r, "/")
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = get(app.r, "/", app.cookie(t, session.RoleRegular, "TKY"))
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestAdminPagesRefuseRegularUsers(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "budi", "rahasia", session.RoleRegular, "TKY")

	for _, path := range []string{"/perwakilan", "/pengguna", "/kategori", "/jenisalat"} {
		w := get(app.r, path, app.cookie(t, session.RoleRegular, "TKY"))
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"), path)
	}

	// Each refusal queued a flash for the next rendered page.
	flashes, err := app.flashes.PopFlashes(context.Background(), "sid-test")
	require.NoError(t, err)
	require.Len(t, flashes, 4)
	assert.Equal(t, session.FlashError, flashes[0].Level)
}

func TestDistributionLimitedToCentralOffice(t *testing.T) {
	app := newTestApp(t)

	w := get(app.r, "/distribusi", app.cookie(t, session.RoleRegular, "TKY"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = get(app.r, "/distribusi", app.cookie(t, session.RoleRegular, cnst.TrigramCentral))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPersonnelListScopedToOffice(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "budi", "rahasia", session.RoleRegular, "TKY")
	ctx := context.Background()

	require.NoError(t, app.db.CreateOffice(ctx, &database.Office{Trigram: "CNB", Name: "Perwakilan CNB", Country: "Negara", Kind: database.KindKJRI}))
	require.NoError(t, app.db.CreatePersonnel(ctx, &database.Personnel{Name: "Orang TKY", Office: "TKY"}))
	require.NoError(t, app.db.CreatePersonnel(ctx, &database.Personnel{Name: "Orang CNB", Office: "CNB"}))

	w := get(app.r, "/personel", app.cookie(t, session.RoleRegular, "TKY"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "personnel 1")

	w = get(app.r, "/personel", app.cookie(t, session.RoleAdmin, ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "personnel 2")
}

func TestSystemRecordOwnershipFollowsType(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "budi", "rahasia", session.RoleRegular, "TKY")
	ctx := context.Background()

	require.NoError(t, app.db.CreateOffice(ctx, &database.Office{Trigram: "CNB", Name: "Perwakilan CNB", Country: "Negara", Kind: database.KindKJRI}))
	st := &database.SystemType{Name: "Jenis CNB", Office: "CNB"}
	require.NoError(t, app.db.CreateSystemType(ctx, st))
	rec := &database.SystemRecord{TypeID: st.ID, Name: "Sistem CNB", Status: database.StatusActive}
	require.NoError(t, app.db.CreateSystemRecord(ctx, rec))

	// A TKY user may not delete a record owned through a CNB type.
	w := postForm(app.r, "/sistem/delete/"+rec.ID, url.Values{},
		app.cookie(t, session.RoleRegular, "TKY"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/sistem", w.Header().Get("Location"))

	_, err := app.db.GetSystemRecord(ctx, rec.ID)
	assert.NoError(t, err)

	// Nor edit it.
	w = postForm(app.r, "/sistem/edit/"+rec.ID, url.Values{
		"name":   {"Diubah"},
		"type":   {st.ID},
		"status": {database.StatusActive},
	}, app.cookie(t, session.RoleRegular, "TKY"))
	assert.Equal(t, http.StatusFound, w.Code)

	got, err := app.db.GetSystemRecord(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sistem CNB", got.Name)
}

func TestLoginPageExplainsExpiredSession(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: cnst.SessionCookie, Value: "stale-token"})
	w := httptest.NewRecorder()
	app.r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ErrorUnauthorized")

	// A clean visit carries no notice.
	w = get(app.r, "/login")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "ErrorUnauthorized")
}

func TestUserEditPasswordChangeFlash(t *testing.T) {
	app := newTestApp(t)
	target := app.seedUser(t, "budi", "rahasia", session.RoleRegular, "TKY")

	w := postForm(app.r, "/pengguna/edit/"+target.ID, url.Values{
		"name":     {target.Name},
		"role":     {"1"},
		"office":   {"TKY"},
		"password": {"rahasia-baru"},
	}, app.cookie(t, session.RoleAdmin, "TKY"))

	assert.Equal(t, http.StatusFound, w.Code)

	flashes, err := app.flashes.PopFlashes(context.Background(), "sid-test")
	require.NoError(t, err)
	require.Len(t, flashes, 1)
	assert.Equal(t, "MsgPasswordChanged", flashes[0].Message)
}

func TestPersonnelCreateValidationWritesNothing(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "budi", "rahasia", session.RoleRegular, "TKY")

	w := postForm(app.r, "/personel/create", url.Values{"name": {""}},
		app.cookie(t, session.RoleRegular, "TKY"))

	assert.Equal(t, http.StatusOK, w.Code)

	count, err := app.db.CountPersonnel(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestPersonnelCreateNormalizesInput(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "admin", "rahasia", session.RoleAdmin, "TKY")

	w := postForm(app.r, "/personel/create", url.Values{
		"name":   {"  Budi Santoso  "},
		"office": {"tky"},
	}, app.cookie(t, session.RoleAdmin, "TKY"))

	assert.Equal(t, http.StatusFound, w.Code)

	result, err := app.db.ListPersonnel(context.Background(), database.ListOptions{})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Budi Santoso", result.Rows[0].Name)
	assert.Equal(t, "TKY", result.Rows[0].Office)
}

func TestPersonnelExportPDF(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "budi", "rahasia", session.RoleRegular, "TKY")
	require.NoError(t, app.db.CreatePersonnel(context.Background(), &database.Personnel{Name: "Orang", Office: "TKY"}))

	w := get(app.r, "/personel/export/pdf", app.cookie(t, session.RoleRegular, "TKY"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestPersonnelExportUnknownFormat(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "budi", "rahasia", session.RoleRegular, "TKY")

	w := get(app.r, "/personel/export/csv", app.cookie(t, session.RoleRegular, "TKY"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDistributionCreateRedirectsAfterSave(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "pusat", "rahasia", session.RoleRegular, cnst.TrigramCentral)
	ctx := context.Background()

	dt := &database.DeviceType{Name: "Mesin Sandi"}
	require.NoError(t, app.db.CreateDeviceType(ctx, dt))
	require.NoError(t, app.db.CreateCryptoDevice(ctx, &database.CryptoDevice{
		Serial: "CR-001", TypeID: dt.ID, Office: cnst.TrigramCentral, Status: database.StatusActive,
	}))

	form := url.Values{
		"serial":        {"CR-001"},
		"borrow_unit":   {"Biro Umum"},
		"borrower_name": {"Peminjam"},
		"official_name": {"Pejabat"},
		"action":        {"save"},
	}
	w := postForm(app.r, "/distribusi/create", form, app.cookie(t, session.RoleRegular, cnst.TrigramCentral))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/distribusi", w.Header().Get("Location"))

	// The device is now on loan.
	dev, err := app.db.GetCryptoDevice(ctx, "CR-001")
	require.NoError(t, err)
	assert.True(t, dev.OnLoan)
}

func TestDistributionReceiptStreamsPDF(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "pusat", "rahasia", session.RoleRegular, cnst.TrigramCentral)
	ctx := context.Background()

	dt := &database.DeviceType{Name: "Mesin Sandi"}
	require.NoError(t, app.db.CreateDeviceType(ctx, dt))
	require.NoError(t, app.db.CreateCryptoDevice(ctx, &database.CryptoDevice{
		Serial: "CR-001", TypeID: dt.ID, Office: cnst.TrigramCentral, Status: database.StatusActive,
	}))
	dist := &database.Distribution{DeviceSerial: "CR-001", BorrowUnit: "Biro Umum", BorrowerName: "Peminjam", OfficialName: "Pejabat"}
	require.NoError(t, app.db.CreateDistribution(ctx, dist))

	w := get(app.r, "/distribusi/receipt/"+dist.ID, app.cookie(t, session.RoleRegular, cnst.TrigramCentral))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}
