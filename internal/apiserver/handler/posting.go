package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pusdatin/simontok/internal/apiserver/database"
	"github.com/pusdatin/simontok/internal/i18n"
	"github.com/pusdatin/simontok/internal/session"
)

const maxPostings = 7

func (h *Handler) PostingCreatePage(c *gin.Context) {
	person := h.functionalParent(c, c.Param("key"))
	if person == nil {
		return
	}
	offices, _ := h.db.AllOffices(c.Request.Context())
	h.render(c, "posting_form.tmpl", gin.H{
		"Title":     "Tambah Penempatan",
		"Personnel": person,
		"Offices":   offices,
		"Row":       &database.Posting{},
	})
}

func (h *Handler) PostingCreate(c *gin.Context) {
	acct := h.account(c)
	person := h.functionalParent(c, c.Param("key"))
	if person == nil {
		return
	}

	row := &database.Posting{
		PersonnelID: person.ID,
		PostingNo:   intField(c, "posting_no"),
		Office:      upperField(c, "office"),
		StartYear:   intField(c, "start_year"),
		EndYear:     intField(c, "end_year"),
	}

	if msg := h.validatePosting(c, row); msg != "" {
		offices, _ := h.db.AllOffices(c.Request.Context())
		h.render(c, "posting_form.tmpl", gin.H{
			"Title":     "Tambah Penempatan",
			"Personnel": person,
			"Offices":   offices,
			"Row":       row,
			"Message":   msg,
		})
		return
	}

	stamp(acct, &row.Audit, false)
	if err := h.db.CreatePosting(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel/detail/"+person.ID)
		return
	}

	h.flash(c, acct, session.FlashSuccess, i18n.MsgCreated)
	c.Redirect(http.StatusFound, "/personel/detail/"+person.ID)
}

func (h *Handler) PostingEditPage(c *gin.Context) {
	acct := h.account(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	row, err := h.db.GetPosting(c.Request.Context(), uint(id))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}
	person := h.functionalParent(c, row.PersonnelID)
	if person == nil {
		return
	}
	offices, _ := h.db.AllOffices(c.Request.Context())
	h.render(c, "posting_form.tmpl", gin.H{
		"Title":     "Ubah Penempatan",
		"Personnel": person,
		"Offices":   offices,
		"Row":       row,
		"Edit":      true,
	})
}

func (h *Handler) PostingEdit(c *gin.Context) {
	acct := h.account(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	row, err := h.db.GetPosting(c.Request.Context(), uint(id))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}
	person := h.functionalParent(c, row.PersonnelID)
	if person == nil {
		return
	}

	row.PostingNo = intField(c, "posting_no")
	row.Office = upperField(c, "office")
	row.StartYear = intField(c, "start_year")
	row.EndYear = intField(c, "end_year")

	if msg := h.validatePosting(c, row); msg != "" {
		offices, _ := h.db.AllOffices(c.Request.Context())
		h.render(c, "posting_form.tmpl", gin.H{
			"Title":     "Ubah Penempatan",
			"Personnel": person,
			"Offices":   offices,
			"Row":       row,
			"Edit":      true,
			"Message":   msg,
		})
		return
	}

	stamp(acct, &row.Audit, true)
	if err := h.db.UpdatePosting(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel/detail/"+person.ID)
		return
	}

	h.flash(c, acct, session.FlashSuccess, i18n.MsgUpdated)
	c.Redirect(http.StatusFound, "/personel/detail/"+person.ID)
}

func (h *Handler) PostingDelete(c *gin.Context) {
	acct := h.account(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	row, err := h.db.GetPosting(c.Request.Context(), uint(id))
	if err != nil {
		h.failure(c, acct, err)
		c.Redirect(http.StatusFound, "/personel")
		return
	}
	person := h.functionalParent(c, row.PersonnelID)
	if person == nil {
		return
	}

	if err := h.db.DeletePosting(c.Request.Context(), row.ID); err != nil {
		h.failure(c, acct, err)
	} else {
		h.flash(c, acct, session.FlashSuccess, i18n.MsgDeleted)
	}
	c.Redirect(http.StatusFound, "/personel/detail/"+person.ID)
}

func (h *Handler) validatePosting(c *gin.Context, row *database.Posting) string {
	if row.Office == "" || row.PostingNo == 0 {
		return errMsg(c, i18n.ErrorRequiredField)
	}
	if row.PostingNo < 1 || row.PostingNo > maxPostings {
		return errMsg(c, i18n.ErrorInvalidValue)
	}
	if _, err := h.db.GetOffice(c.Request.Context(), row.Office); err != nil {
		return errMsg(c, i18n.ErrorInvalidValue)
	}
	return ""
}
