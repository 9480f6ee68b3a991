package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pusdatin/simontok/internal/apiserver/database"
	"github.com/pusdatin/simontok/internal/export"
	"github.com/pusdatin/simontok/internal/i18n"
	"github.com/pusdatin/simontok/internal/session"
)

// functionalParent loads and ownership-checks the personnel a functional
// grade operation targets.
func (h *Handler) functionalParent(c *gin.Context, personnelID string) *database.Personnel {
	acct := h.account(c)
	person, err := h.db.GetPersonnel(c.Request.Context(), personnelID)
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return nil
	}
	if !ownOffice(acct, person.Office) {
		h.forbidden(c, acct, "/personel")
		return nil
	}
	return person
}

func (h *Handler) FunctionalCreatePage(c *gin.Context) {
	person := h.functionalParent(c, c.Param("key"))
	if person == nil {
		return
	}
	h.render(c, "functional_form.tmpl", gin.H{
		"Title":     "Tambah Jenjang Fungsional",
		"Personnel": person,
		"Row":       &database.FunctionalGrade{},
	})
}

func (h *Handler) FunctionalCreate(c *gin.Context) {
	acct := h.account(c)
	person := h.functionalParent(c, c.Param("key"))
	if person == nil {
		return
	}

	row := &database.FunctionalGrade{
		PersonnelID:   person.ID,
		Grade:         field(c, "grade"),
		DecreeNo:      field(c, "decree_no"),
		EffectiveDate: dateField(c, "effective_date"),
	}
	if row.Grade == "" {
		h.render(c, "functional_form.tmpl", gin.H{
			"Title":     "Tambah Jenjang Fungsional",
			"Personnel": person,
			"Row":       row,
			"Message":   errMsg(c, i18n.ErrorRequiredField),
		})
		return
	}

	stamp(acct, &row.Audit, false)
	if err := h.db.CreateFunctional(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel/detail/"+person.ID)
		return
	}

	h.flash(c, acct, session.FlashSuccess, i18n.MsgCreated)
	c.Redirect(http.StatusFound, "/personel/detail/"+person.ID)
}

func (h *Handler) FunctionalEditPage(c *gin.Context) {
	acct := h.account(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	row, err := h.db.GetFunctional(c.Request.Context(), uint(id))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}
	person := h.functionalParent(c, row.PersonnelID)
	if person == nil {
		return
	}
	h.render(c, "functional_form.tmpl", gin.H{
		"Title":     "Ubah Jenjang Fungsional",
		"Personnel": person,
		"Row":       row,
		"Edit":      true,
	})
}

func (h *Handler) FunctionalEdit(c *gin.Context) {
	acct := h.account(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	row, err := h.db.GetFunctional(c.Request.Context(), uint(id))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}
	person := h.functionalParent(c, row.PersonnelID)
	if person == nil {
		return
	}

	row.Grade = field(c, "grade")
	row.DecreeNo = field(c, "decree_no")
	row.EffectiveDate = dateField(c, "effective_date")
	if row.Grade == "" {
		h.render(c, "functional_form.tmpl", gin.H{
			"Title":     "Ubah Jenjang Fungsional",
			"Personnel": person,
			"Row":       row,
			"Edit":      true,
			"Message":   errMsg(c, i18n.ErrorRequiredField),
		})
		return
	}

	stamp(acct, &row.Audit, true)
	if err := h.db.UpdateFunctional(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel/detail/"+person.ID)
		return
	}

	h.flash(c, acct, session.FlashSuccess, i18n.MsgUpdated)
	c.Redirect(http.StatusFound, "/personel/detail/"+person.ID)
}

func (h *Handler) FunctionalDelete(c *gin.Context) {
	acct := h.account(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	row, err := h.db.GetFunctional(c.Request.Context(), uint(id))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}
	person := h.functionalParent(c, row.PersonnelID)
	if person == nil {
		return
	}

	if err := h.db.DeleteFunctional(c.Request.Context(), row.ID); err != nil {
		h.failure(c, acct, err)
	} else {
		h.flash(c, acct, session.FlashSuccess, i18n.MsgDeleted)
	}
	c.Redirect(http.StatusFound, "/personel/detail/"+person.ID)
}

// FunctionalExport streams the grouped functional-grade report.
func (h *Handler) FunctionalExport(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	rows, err := h.db.FunctionalReport(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}

	t := export.Table{
		Title:     "Laporan Jenjang Fungsional",
		Sheet:     "Fungsional",
		GroupCols: 2,
		Columns: []export.Column{
			{Header: "ID", Ratio: 1, Min: 18, Width: 10},
			{Header: "Nama", Ratio: 4, Min: 45, Width: 30},
			{Header: "Jenjang Fungsional", Ratio: 3, Min: 40, Width: 26},
			{Header: "No SK", Ratio: 2, Min: 32, Width: 20},
			{Header: "TMT", Ratio: 1, Min: 24, Width: 14},
			{Header: "Perwakilan", Ratio: 1, Min: 22, Width: 12, AdminOnly: true},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.PersonnelID, r.PersonnelName, r.Grade, r.DecreeNo,
			formatDate(r.EffectiveDate), r.Office,
		})
	}
	h.sendTable(c, "fungsional", c.Param("format"), t)
}
