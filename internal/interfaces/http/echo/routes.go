package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, importHandler *ImportHandler, identityHandler *IdentityHandler) {
	api := server.Group("/api/v1")

	api.POST("/imports/profiles", importHandler.ImportProfiles)
	api.GET("/imports/profiles/template", importHandler.Template)
	api.GET("/imports/:id", importHandler.GetImport)
	api.GET("/imports/:id/reports/:kind", importHandler.DownloadReport)

	api.GET("/identities/:id", identityHandler.GetIdentity)
}
