package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func errorJSON(c echo.Context, status int, code, message string) error {
	return c.JSON(status, apiResponse{Error: &errorBody{
		Code:    code,
		Message: message,
	}})
}

func csvAttachment(c echo.Context, fileName string, content []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", content)
}
