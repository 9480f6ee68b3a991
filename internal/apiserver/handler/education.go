package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pusdatin/simontok/internal/apiserver/database"
	"github.com/pusdatin/simontok/internal/export"
	"github.com/pusdatin/simontok/internal/i18n"
	"github.com/pusdatin/simontok/internal/session"
)

// EducationEditPage renders the bulk education form for one personnel: all
// existing rows editable in place, plus blank rows for additions.
func (h *Handler) EducationEditPage(c *gin.Context) {
	acct := h.account(c)
	person, err := h.db.GetPersonnel(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}
	if !ownOffice(acct, person.Office) {
		h.forbidden(c, acct, "/personel")
		return
	}

	rows, err := h.db.EducationFor(c.Request.Context(), person.ID)
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}

	h.render(c, "education_edit.tmpl", gin.H{
		"Title":     "Riwayat Pendidikan",
		"Personnel": person,
		"Rows":      rows,
	})
}

// EducationEdit applies the whole bulk form in one transaction: updates,
// deletions flagged per row, and any filled-in new rows.
func (h *Handler) EducationEdit(c *gin.Context) {
	acct := h.account(c)
	person, err := h.db.GetPersonnel(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}
	if !ownOffice(acct, person.Office) {
		h.forbidden(c, acct, "/personel")
		return
	}

	var changes []database.EducationChange

	for _, idStr := range c.PostFormArray("row_id") {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			continue
		}
		ch := database.EducationChange{ID: uint(id)}
		if c.PostForm("delete_"+idStr) != "" {
			ch.Delete = true
		} else {
			ch.Row = database.Education{
				Level:       field(c, "level_"+idStr),
				Institution: field(c, "institution_"+idStr),
				Major:       field(c, "major_"+idStr),
				GradYear:    intField(c, "year_"+idStr),
			}
			stamp(acct, &ch.Row.Audit, true)
		}
		changes = append(changes, ch)
	}

	levels := c.PostFormArray("new_level")
	institutions := c.PostFormArray("new_institution")
	majors := c.PostFormArray("new_major")
	years := c.PostFormArray("new_year")
	for i, level := range levels {
		if strings.TrimSpace(level) == "" {
			continue
		}
		row := database.Education{Level: strings.TrimSpace(level)}
		if i < len(institutions) {
			row.Institution = strings.TrimSpace(institutions[i])
		}
		if i < len(majors) {
			row.Major = strings.TrimSpace(majors[i])
		}
		if i < len(years) {
			row.GradYear, _ = strconv.Atoi(strings.TrimSpace(years[i]))
		}
		stamp(acct, &row.Audit, false)
		changes = append(changes, database.EducationChange{Row: row})
	}

	if err := h.db.ReplaceEducation(c.Request.Context(), person.ID, changes); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel/detail/"+person.ID)
		return
	}

	h.flash(c, acct, session.FlashSuccess, i18n.MsgUpdated)
	c.Redirect(http.StatusFound, "/personel/detail/"+person.ID)
}

// EducationExport streams the grouped education report: parent personnel
// columns repeated per study row, merged in the rendered output.
func (h *Handler) EducationExport(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	rows, err := h.db.EducationReport(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}

	t := export.Table{
		Title:     "Laporan Pendidikan Personel",
		Sheet:     "Pendidikan",
		GroupCols: 2,
		Columns: []export.Column{
			{Header: "ID", Ratio: 1, Min: 18, Width: 10},
			{Header: "Nama", Ratio: 4, Min: 45, Width: 30},
			{Header: "Jenjang", Ratio: 1, Min: 20, Width: 12},
			{Header: "Institusi", Ratio: 3, Min: 40, Width: 28},
			{Header: "Jurusan", Ratio: 3, Min: 35, Width: 24},
			{Header: "Tahun Lulus", Ratio: 1, Min: 22, Width: 12},
			{Header: "Perwakilan", Ratio: 1, Min: 22, Width: 12, AdminOnly: true},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.PersonnelID, r.PersonnelName, r.Level, r.Institution, r.Major,
			formatYear(r.GradYear), r.Office,
		})
	}
	h.sendTable(c, "pendidikan", c.Param("format"), t)
}
