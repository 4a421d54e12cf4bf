package echo

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/profile-import/internal/application/profileimport"
)

const templateFileName = "profile-import-template.csv"

type ImportHandler struct {
	startImport    app.StartImport
	getImport      app.GetImport
	downloadReport app.DownloadReport
}

type importProfilesRequest struct {
	SourcePath string `json:"source_path"`
}

func NewImportHandler(startImport app.StartImport, getImport app.GetImport, downloadReport app.DownloadReport) *ImportHandler {
	return &ImportHandler{
		startImport:    startImport,
		getImport:      getImport,
		downloadReport: downloadReport,
	}
}

// ImportProfiles queues a feed given either as a server-side source_path or
// as a multipart "file" upload.
func (h *ImportHandler) ImportProfiles(c echo.Context) error {
	var in app.StartImportInput

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		header, err := c.FormFile("file")
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "bad_request", "multipart field file is required")
		}
		upload, err := header.Open()
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "bad_request", "uploaded file cannot be read")
		}
		defer upload.Close()

		in.Upload = upload
		in.FileName = header.Filename
	} else {
		var req importProfilesRequest
		if err := c.Bind(&req); err != nil {
			return errorJSON(c, http.StatusBadRequest, "bad_request", "invalid request body")
		}
		in.SourcePath = req.SourcePath
	}

	out, err := h.startImport.Execute(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, app.ErrInvalidImportSource) {
			return errorJSON(c, http.StatusBadRequest, "invalid_source", "source must be a .csv file")
		}
		return errorJSON(c, http.StatusInternalServerError, "internal_error", "failed to enqueue import job")
	}

	return c.JSON(http.StatusAccepted, apiResponse{Data: out})
}

func (h *ImportHandler) GetImport(c echo.Context) error {
	out, err := h.getImport.Execute(c.Request().Context(), app.GetImportInput{ID: c.Param("id")})
	if err != nil {
		if errors.Is(err, app.ErrInvalidImportID) {
			return errorJSON(c, http.StatusBadRequest, "invalid_import_id", "id must be a valid UUID")
		}
		if errors.Is(err, app.ErrImportNotFound) {
			return errorJSON(c, http.StatusNotFound, "not_found", "import not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "internal_error", "failed to get import")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) DownloadReport(c echo.Context) error {
	out, err := h.downloadReport.Execute(c.Request().Context(), app.DownloadReportInput{
		JobID: c.Param("id"),
		Kind:  c.Param("kind"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidImportID) {
			return errorJSON(c, http.StatusBadRequest, "invalid_import_id", "id must be a valid UUID")
		}
		if errors.Is(err, app.ErrInvalidReportKind) {
			return errorJSON(c, http.StatusBadRequest, "invalid_report_kind", "kind must be committed or rejected")
		}
		if errors.Is(err, app.ErrImportNotFound) {
			return errorJSON(c, http.StatusNotFound, "not_found", "import not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "internal_error", "failed to build import report")
	}

	return csvAttachment(c, out.FileName, out.Content)
}

func (h *ImportHandler) Template(c echo.Context) error {
	var buf bytes.Buffer
	if err := app.WriteTemplate(&buf); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "internal_error", "failed to build template")
	}
	return csvAttachment(c, templateFileName, buf.Bytes())
}
