// Package handler implements the server-rendered web UI: list/create/edit/
// delete pages per entity, report downloads, authentication and the loan
// distribution workflow.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pusdatin/simontok/internal/apiserver/database"
	"github.com/pusdatin/simontok/internal/apiserver/middleware"
	"github.com/pusdatin/simontok/internal/auth/jwt"
	"github.com/pusdatin/simontok/internal/common/config"
	"github.com/pusdatin/simontok/internal/export"
	"github.com/pusdatin/simontok/internal/i18n"
	"github.com/pusdatin/simontok/internal/session"
	"github.com/pusdatin/simontok/pkg/metrics"
)

// Handler carries the shared dependencies of every page handler.
type Handler struct {
	db      database.Database
	jwt     *jwt.Service
	flashes session.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
	cfg     *config.Config
}

// New assembles the web handler.
func New(db database.Database, jwtSvc *jwt.Service, flashes session.Store, m *metrics.Metrics, logger *zap.Logger, cfg *config.Config) *Handler {
	return &Handler{
		db:      db,
		jwt:     jwtSvc,
		flashes: flashes,
		metrics: m,
		logger:  logger,
		cfg:     cfg,
	}
}

// account returns the logged-in account; guarded routes guarantee non-nil.
func (h *Handler) account(c *gin.Context) *session.Account {
	return middleware.GetAccount(c)
}

// listOptions reads the shared list-view query parameters, forcing the
// office scope for non-admin callers.
func (h *Handler) listOptions(c *gin.Context, acct *session.Account) database.ListOptions {
	page, _ := strconv.Atoi(c.Query("page"))
	opt := database.ListOptions{
		Search: strings.TrimSpace(c.Query("search")),
		Sort:   c.Query("sort"),
		Dir:    database.ParseSortDir(c.Query("dir")),
		Page:   page,
	}
	if acct != nil && !acct.IsAdmin() {
		opt.Office = acct.Office
	}
	return opt
}

// flash queues a localized one-shot message for the account's next page.
func (h *Handler) flash(c *gin.Context, acct *session.Account, level, msgID string) {
	if acct == nil || acct.SessionID == "" {
		return
	}
	msg := i18n.TranslateMessage(c, msgID, nil)
	if err := h.flashes.PushFlash(c.Request.Context(), acct.SessionID, session.Flash{Level: level, Message: msg}); err != nil {
		h.logger.Warn("failed to push flash", zap.Error(err))
	}
}

// render writes an HTML page with the layout data every template expects:
// the account, the drained flash queue and the display language.
func (h *Handler) render(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	acct := h.account(c)
	data["Account"] = acct
	data["Lang"] = i18n.LangFromContext(c)
	if acct != nil && acct.SessionID != "" {
		flashes, err := h.flashes.PopFlashes(c.Request.Context(), acct.SessionID)
		if err != nil && !errors.Is(err, session.ErrSessionNotFound) {
			h.logger.Warn("failed to pop flashes", zap.Error(err))
		}
		data["Flashes"] = flashes
	}
	c.HTML(http.StatusOK, name, data)
}

// failure maps a store error onto the localized flash message for it and
// logs the underlying cause.
func (h *Handler) failure(c *gin.Context, acct *session.Account, err error) {
	h.logger.Error("operation failed", zap.Error(err))
	var msgID string
	switch {
	case errors.Is(err, database.ErrNotFound):
		msgID = i18n.ErrorRecordNotFound.MessageID
	case errors.Is(err, database.ErrReferenced):
		msgID = i18n.ErrorRecordInUse.MessageID
	case errors.Is(err, database.ErrDuplicate):
		msgID = i18n.ErrorInvalidValue.MessageID
	case errors.Is(err, database.ErrDeviceUnavailable):
		msgID = i18n.ErrorDeviceNotAvail.MessageID
	default:
		msgID = i18n.ErrorDatabaseFailure.MessageID
	}
	h.flash(c, acct, session.FlashError, msgID)
}

// forbidden bounces an out-of-scope request back to a safe page with a
// localized flash and no write.
func (h *Handler) forbidden(c *gin.Context, acct *session.Account, fallback string) {
	h.flash(c, acct, session.FlashError, i18n.ErrorForbiddenAccess.MessageID)
	c.Redirect(http.StatusFound, fallback)
}

// ownOffice reports whether the caller may act on a row owned by trigram.
func ownOffice(acct *session.Account, trigram string) bool {
	return acct.IsAdmin() || acct.Office == trigram
}

// nowFunc is swapped out by tests that need a fixed clock.
var nowFunc = time.Now

// stamp fills the audit columns for an insert or update.
func stamp(acct *session.Account, a *database.Audit, update bool) {
	now := nowFunc()
	if update {
		a.UserUpdate = acct.UserID
		a.DateUpdate = now
		return
	}
	a.UserInput = acct.UserID
	a.DateInput = now
	a.UserUpdate = acct.UserID
	a.DateUpdate = now
}

// field returns a trimmed form value; code fields go through upperField.
func field(c *gin.Context, name string) string {
	return strings.TrimSpace(c.PostForm(name))
}

func upperField(c *gin.Context, name string) string {
	return strings.ToUpper(field(c, name))
}

func intField(c *gin.Context, name string) int {
	n, _ := strconv.Atoi(field(c, name))
	return n
}

// dateField parses a yyyy-mm-dd form value; the zero time means unset.
func dateField(c *gin.Context, name string) time.Time {
	t, err := time.Parse("2006-01-02", field(c, name))
	if err != nil {
		return time.Time{}
	}
	return t
}

// errMsg translates a validation error for inline display on a form.
func errMsg(c *gin.Context, e *i18n.ErrorWithCode) string {
	return e.TranslateByContext(c)
}

// sendPDF streams a generated report as a timestamped attachment.
func (h *Handler) sendPDF(c *gin.Context, resource string, data []byte) {
	h.metrics.ExportDone(resource, "pdf")
	name := fmt.Sprintf("%s_%s.pdf", resource, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// sendExcel streams a generated workbook as a timestamped attachment.
func (h *Handler) sendExcel(c *gin.Context, resource string, data []byte) {
	h.metrics.ExportDone(resource, "excel")
	name := fmt.Sprintf("%s_%s.xlsx", resource, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// sendTable renders and streams a table in the requested format.
func (h *Handler) sendTable(c *gin.Context, resource, format string, t export.Table) {
	acct := h.account(c)
	t = t.ForRole(acct.IsAdmin())

	switch format {
	case "pdf":
		data, err := export.PDF(t)
		if err != nil {
			h.failure(c, acct, err)
			c.Redirect(http.StatusFound, "/"+resource)
			return
		}
		h.sendPDF(c, resource, data)
	case "excel":
		data, err := export.Excel(t)
		if err != nil {
			h.failure(c, acct, err)
			c.Redirect(http.StatusFound, "/"+resource)
			return
		}
		h.sendExcel(c, resource, data)
	default:
		c.AbortWithStatus(http.StatusNotFound)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02-01-2006")
}

func formatYear(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}
