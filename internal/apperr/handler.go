package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/echo-paginate/internal/catalog"
	"github.com/DjordjeVuckovic/echo-paginate/pkg/pagination"
	"github.com/labstack/echo/v4"
)

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if ve, ok := AsValidation(err); ok {
			body := map[string]string{"error": ve.Message, "title": "validation error"}
			if ve.Param != "" {
				body["param"] = ve.Param
			}
			_ = c.JSON(http.StatusBadRequest, body)
			return
		}

		var se *pagination.InvalidResultShapeError
		if errors.As(err, &se) {
			slog.Error("Handler result cannot be paginated", "route", c.Path(), "error", se)
			_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}

		if errors.Is(err, catalog.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
