package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pusdatin/simontok/internal/apiserver/database"
	"github.com/pusdatin/simontok/internal/export"
	"github.com/pusdatin/simontok/internal/i18n"
	"github.com/pusdatin/simontok/internal/session"
)

// Loan distribution workflow, restricted to the central office. Step one
// picks a device type, step two picks an available serial and fills in the
// borrower, and the final submit records the loan.

func (h *Handler) DistributionList(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	result, err := h.db.ListDistributions(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		h.render(c, "distribution_list.tmpl", gin.H{"Title": "Distribusi"})
		return
	}
	h.render(c, "distribution_list.tmpl", gin.H{
		"Title":  "Distribusi",
		"Result": result,
		"Query":  opt,
	})
}

// DistributionCreatePage renders step one without a type selected, step two
// with one: the availability list only shows active devices not on loan.
func (h *Handler) DistributionCreatePage(c *gin.Context) {
	typeID := strings.ToUpper(strings.TrimSpace(c.Query("type")))
	if typeID == "" {
		types, err := h.db.AllDeviceTypes(c.Request.Context())
		if err != nil {
			h.failure(c, h.account(c), err)
			c.Redirect(http.StatusFound, "/distribusi")
			return
		}
		h.render(c, "distribution_step1.tmpl", gin.H{
			"Title": "Distribusi - Pilih Jenis Alat",
			"Types": types,
		})
		return
	}

	devices, err := h.db.AvailableCryptoDevices(c.Request.Context(), typeID)
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/distribusi")
		return
	}
	h.render(c, "distribution_step2.tmpl", gin.H{
		"Title":   "Distribusi - Data Peminjam",
		"TypeID":  typeID,
		"Devices": devices,
		"Row":     &database.Distribution{},
	})
}

// DistributionCreate records the loan. The submit button decides whether the
// browser gets a redirect with a flash or the receipt PDF straight away.
func (h *Handler) DistributionCreate(c *gin.Context) {
	acct := h.account(c)
	typeID := upperField(c, "type")

	row := &database.Distribution{
		DeviceSerial: upperField(c, "serial"),
		BorrowUnit:   field(c, "borrow_unit"),
		BorrowerName: field(c, "borrower_name"),
		BorrowerNIP:  field(c, "borrower_nip"),
		OfficialName: field(c, "official_name"),
		OfficialNIP:  field(c, "official_nip"),
		Date:         dateField(c, "date"),
	}
	if row.Date.IsZero() {
		row.Date = nowFunc()
	}

	renderErr := func(msg string) {
		devices, _ := h.db.AvailableCryptoDevices(c.Request.Context(), typeID)
		h.render(c, "distribution_step2.tmpl", gin.H{
			"Title":   "Distribusi - Data Peminjam",
			"TypeID":  typeID,
			"Devices": devices,
			"Row":     row,
			"Message": msg,
		})
	}

	if row.DeviceSerial == "" || row.BorrowUnit == "" || row.BorrowerName == "" || row.OfficialName == "" {
		renderErr(errMsg(c, i18n.ErrorRequiredField))
		return
	}

	stamp(acct, &row.Audit, false)
	if err := h.db.CreateDistribution(c.Request.Context(), row); err != nil {
		h.failure(c, acct, err)
		renderErr(errMsg(c, i18n.ErrorDeviceNotAvail))
		return
	}

	if c.PostForm("action") == "receipt" {
		h.streamReceipt(c, row)
		return
	}

	h.flash(c, acct, session.FlashSuccess, i18n.MsgDistributed)
	c.Redirect(http.StatusFound, "/distribusi")
}

// DistributionReceipt regenerates the receipt for a stored loan record.
func (h *Handler) DistributionReceipt(c *gin.Context) {
	row, err := h.db.GetDistribution(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/distribusi")
		return
	}
	h.streamReceipt(c, row)
}

func (h *Handler) streamReceipt(c *gin.Context, row *database.Distribution) {
	data := export.ReceiptData{
		ID:           row.ID,
		DeviceSerial: row.DeviceSerial,
		BorrowUnit:   row.BorrowUnit,
		BorrowerName: row.BorrowerName,
		BorrowerNIP:  row.BorrowerNIP,
		OfficialName: row.OfficialName,
		OfficialNIP:  row.OfficialNIP,
		Date:         row.Date,
	}
	if dev, err := h.db.GetCryptoDevice(c.Request.Context(), row.DeviceSerial); err == nil {
		if dt, err := h.db.GetDeviceType(c.Request.Context(), dev.TypeID); err == nil {
			data.DeviceType = dt.Name
		}
	}

	pdf, err := export.Receipt(data)
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/distribusi")
		return
	}
	h.sendPDF(c, "tandaterima", pdf)
}

func (h *Handler) DistributionExport(c *gin.Context) {
	opt := h.listOptions(c, h.account(c))
	rows, err := h.db.ExportDistributions(c.Request.Context(), opt)
	if err != nil {
		h.failure(c, h.account(c), err)
		c.Redirect(http.StatusFound, "/distribusi")
		return
	}

	t := export.Table{
		Title: "Daftar Distribusi",
		Sheet: "Distribusi",
		Columns: []export.Column{
			{Header: "ID", Ratio: 1, Min: 18, Width: 10},
			{Header: "No Seri", Ratio: 2, Min: 36, Width: 22},
			{Header: "Unit Peminjam", Ratio: 3, Min: 42, Width: 28},
			{Header: "Nama Peminjam", Ratio: 3, Min: 42, Width: 28},
			{Header: "Pejabat", Ratio: 3, Min: 42, Width: 28},
			{Header: "Tanggal", Ratio: 1, Min: 24, Width: 14},
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.ID, r.DeviceSerial, r.BorrowUnit, r.BorrowerName, r.OfficialName,
			formatDate(r.Date),
		})
	}
	h.sendTable(c, "distribusi", c.Param("format"), t)
}
