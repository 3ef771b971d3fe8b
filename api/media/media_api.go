package media

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"productmedia.GO/api"
	"productmedia.GO/core/auth"
	mediaService "productmedia.GO/service/media"
)

func init() {
	api.RegisterModule(RegisterMediaRoutes)
}

// MediaRunner is the part of mediaService.Runner the routes use.
type MediaRunner interface {
	Export(ctx context.Context, in io.Reader, out io.Writer, opts mediaService.RunOptions) (*mediaService.RunResult, error)
	Import(ctx context.Context, in io.Reader, opts mediaService.RunOptions) (*mediaService.RunResult, error)
	Serials(ctx context.Context) ([]string, error)
	Purge(ctx context.Context) error
}

func RegisterMediaRoutes(apiGroup *echo.Group, runner *mediaService.Runner) {
	registerRoutes(apiGroup, runner)
}

func registerRoutes(apiGroup *echo.Group, runner MediaRunner) {
	g := apiGroup.Group("/media", auth.RequireResource(auth.ResourceProducts))

	// POST /api/media/artefacts – product CSV in, media artefact CSV out
	g.POST("/artefacts", func(c echo.Context) error {
		start := time.Now()
		in, err := csvBody(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		defer in.Close()

		var out bytes.Buffer
		opts := runOptions(c)
		res, err := runner.Export(c.Request().Context(), in, &out, opts)
		duration := time.Since(start).Milliseconds()
		// with skip_errors the artefacts of the good rows are still returned
		if err != nil && (res == nil || !opts.SkipErrors) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		h := c.Response().Header()
		h.Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		h.Set("X-Artefact-Count", strconv.Itoa(res.Artefacts))
		if err != nil {
			h.Set("X-Failed-Rows", strconv.Itoa(res.Failed))
			h.Set("X-Run-Error", headerValue(err.Error()))
		}
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", out.Bytes())
	})

	// POST /api/media/gallery – media artefact CSV in, gallery counters out
	g.POST("/gallery", func(c echo.Context) error {
		start := time.Now()
		in, err := csvBody(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		defer in.Close()

		res, err := runner.Import(c.Request().Context(), in, runOptions(c))
		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		if res == nil {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		body := echo.Map{
			"rows":                res.TotalRows,
			"processed":           res.Processed,
			"skipped":             res.Skipped,
			"failed":              res.Failed,
			"galleries_created":   res.Gallery.GalleriesCreated,
			"galleries_updated":   res.Gallery.GalleriesUpdated,
			"links_created":       res.Gallery.LinksCreated,
			"values_created":      res.Gallery.ValuesCreated,
			"values_updated":      res.Gallery.ValuesUpdated,
			"videos":              res.Gallery.Videos,
			"warnings":            res.Warnings,
			"request_duration_ms": duration,
		}
		if err != nil {
			body["error"] = err.Error()
			return c.JSON(http.StatusUnprocessableEntity, body)
		}
		return c.JSON(http.StatusOK, body)
	})

	// GET /api/media/runs – serials of runs whose status is still registered
	g.GET("/runs", func(c echo.Context) error {
		serials, err := runner.Serials(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"runs": serials, "count": len(serials)})
	})

	// DELETE /api/media/runs – drop every registered run status
	g.DELETE("/runs", func(c echo.Context) error {
		if err := runner.Purge(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	})
}

// headerValue folds a multi-line error onto one line.
func headerValue(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// csvBody returns the uploaded "file" form field, or the raw body when the
// request is not a multipart upload.
func csvBody(c echo.Context) (io.ReadCloser, error) {
	if fh, err := c.FormFile("file"); err == nil {
		return fh.Open()
	}
	if c.Request().Body == nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "CSV body is required")
	}
	return c.Request().Body, nil
}

func runOptions(c echo.Context) mediaService.RunOptions {
	return mediaService.RunOptions{
		SkipErrors:      c.QueryParam("skip_errors") == "true",
		OriginalColumns: c.QueryParam("original_columns") == "true",
	}
}
