package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pusdatin/simontok/internal/apiserver/middleware"
	"github.com/pusdatin/simontok/internal/common/cnst"
)

// Routes wires every page route onto the engine. Office and user management
// plus the catalogs are admin-only; the distribution workflow is limited to
// the central office.
func (h *Handler) Routes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		if middleware.GetAccount(c) != nil {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
		c.Redirect(http.StatusFound, "/login")
	})

	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)

	auth := r.Group("", middleware.RequireLogin())
	auth.GET("/dashboard", h.Dashboard)

	admin := auth.Group("", middleware.RequireAdmin(h.flashes))

	admin.GET("/perwakilan", h.OfficeList)
	admin.GET("/perwakilan/create", h.OfficeCreatePage)
	admin.POST("/perwakilan/create", h.OfficeCreate)
	admin.GET("/perwakilan/edit/:key", h.OfficeEditPage)
	admin.POST("/perwakilan/edit/:key", h.OfficeEdit)
	admin.POST("/perwakilan/delete/:key", h.OfficeDelete)
	admin.GET("/perwakilan/export/:format", h.OfficeExport)

	admin.GET("/pengguna", h.UserList)
	admin.GET("/pengguna/create", h.UserCreatePage)
	admin.POST("/pengguna/create", h.UserCreate)
	admin.GET("/pengguna/edit/:key", h.UserEditPage)
	admin.POST("/pengguna/edit/:key", h.UserEdit)
	admin.POST("/pengguna/delete/:key", h.UserDelete)
	admin.GET("/pengguna/export/:format", h.UserExport)

	admin.GET("/kategori", h.CategoryList)
	admin.GET("/kategori/create", h.CategoryCreatePage)
	admin.POST("/kategori/create", h.CategoryCreate)
	admin.GET("/kategori/edit/:key", h.CategoryEditPage)
	admin.POST("/kategori/edit/:key", h.CategoryEdit)
	admin.POST("/kategori/delete/:key", h.CategoryDelete)
	admin.GET("/kategori/export/:format", h.CategoryExport)

	admin.GET("/jenisalat", h.DeviceTypeList)
	admin.GET("/jenisalat/create", h.DeviceTypeCreatePage)
	admin.POST("/jenisalat/create", h.DeviceTypeCreate)
	admin.GET("/jenisalat/edit/:key", h.DeviceTypeEditPage)
	admin.POST("/jenisalat/edit/:key", h.DeviceTypeEdit)
	admin.POST("/jenisalat/delete/:key", h.DeviceTypeDelete)
	admin.GET("/jenisalat/export/:format", h.DeviceTypeExport)

	auth.GET("/personel", h.PersonnelList)
	auth.GET("/personel/detail/:key", h.PersonnelDetail)
	auth.GET("/personel/create", h.PersonnelCreatePage)
	auth.POST("/personel/create", h.PersonnelCreate)
	auth.GET("/personel/edit/:key", h.PersonnelEditPage)
	auth.POST("/personel/edit/:key", h.PersonnelEdit)
	auth.POST("/personel/delete/:key", h.PersonnelDelete)
	auth.GET("/personel/export/:format", h.PersonnelExport)

	auth.GET("/pendidikan/edit/:key", h.EducationEditPage)
	auth.POST("/pendidikan/edit/:key", h.EducationEdit)
	auth.GET("/pendidikan/export/:format", h.EducationExport)

	auth.GET("/fungsional/create/:key", h.FunctionalCreatePage)
	auth.POST("/fungsional/create/:key", h.FunctionalCreate)
	auth.GET("/fungsional/edit/:id", h.FunctionalEditPage)
	auth.POST("/fungsional/edit/:id", h.FunctionalEdit)
	auth.POST("/fungsional/delete/:id", h.FunctionalDelete)
	auth.GET("/fungsional/export/:format", h.FunctionalExport)

	auth.GET("/penempatan/create/:key", h.PostingCreatePage)
	auth.POST("/penempatan/create/:key", h.PostingCreate)
	auth.GET("/penempatan/edit/:id", h.PostingEditPage)
	auth.POST("/penempatan/edit/:id", h.PostingEdit)
	auth.POST("/penempatan/delete/:id", h.PostingDelete)

	auth.GET("/alatkomunikasi", h.CommDeviceList)
	auth.GET("/alatkomunikasi/create", h.CommDeviceCreatePage)
	auth.POST("/alatkomunikasi/create", h.CommDeviceCreate)
	auth.GET("/alatkomunikasi/edit/:key", h.CommDeviceEditPage)
	auth.POST("/alatkomunikasi/edit/:key", h.CommDeviceEdit)
	auth.POST("/alatkomunikasi/delete/:key", h.CommDeviceDelete)
	auth.GET("/alatkomunikasi/export/:format", h.CommDeviceExport)

	auth.GET("/palsan", h.CryptoDeviceList)
	auth.GET("/palsan/create", h.CryptoDeviceCreatePage)
	auth.POST("/palsan/create", h.CryptoDeviceCreate)
	auth.GET("/palsan/edit/:key", h.CryptoDeviceEditPage)
	auth.POST("/palsan/edit/:key", h.CryptoDeviceEdit)
	auth.POST("/palsan/delete/:key", h.CryptoDeviceDelete)
	auth.GET("/palsan/export/:format", h.CryptoDeviceExport)

	auth.GET("/jenissistem", h.SystemTypeList)
	auth.GET("/jenissistem/create", h.SystemTypeCreatePage)
	auth.POST("/jenissistem/create", h.SystemTypeCreate)
	auth.GET("/jenissistem/edit/:key", h.SystemTypeEditPage)
	auth.POST("/jenissistem/edit/:key", h.SystemTypeEdit)
	auth.POST("/jenissistem/delete/:key", h.SystemTypeDelete)
	auth.GET("/jenissistem/export/:format", h.SystemTypeExport)

	auth.GET("/sistem", h.SystemList)
	auth.GET("/sistem/create", h.SystemCreatePage)
	auth.POST("/sistem/create", h.SystemCreate)
	auth.GET("/sistem/edit/:key", h.SystemEditPage)
	auth.POST("/sistem/edit/:key", h.SystemEdit)
	auth.POST("/sistem/delete/:key", h.SystemDelete)
	auth.GET("/sistem/export/:format", h.SystemExport)

	central := auth.Group("", middleware.RequireCentral(cnst.TrigramCentral, h.flashes))
	central.GET("/distribusi", h.DistributionList)
	central.GET("/distribusi/create", h.DistributionCreatePage)
	central.POST("/distribusi/create", h.DistributionCreate)
	central.GET("/distribusi/receipt/:key", h.DistributionReceipt)
	central.GET("/distribusi/export/:format", h.DistributionExport)
}
