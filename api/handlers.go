package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"project-board/board"
	"project-board/domain"
	"project-board/store"
)

// Register wires up all board routes on the provided Echo instance.
func Register(e *echo.Echo, st *store.Store, cache *store.SnapshotCache, form Submitter, views map[domain.Status]*board.ListView, deduper Deduper, logger *log.Logger) {
	broker := newChangeBroker()
	st.Subscribe(func([]domain.Project) { broker.notify() })

	e.GET("/api/projects", getProjects(cache, logger))
	e.POST("/api/projects", postProject(form))
	e.POST("/api/commands", postCommands(form, st, deduper, logger))
	e.POST("/api/lists/:status/drop", dropProject(views))
	e.GET("/api/lists/:status", getListFragment(views))
	e.GET("/api/stream", streamProjects(st, broker))
	e.GET("/healthz", healthz())
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func getProjects(cache *store.SnapshotCache, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newProjectsRequestMetrics(ctx, logger)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		var status domain.Status
		if raw := c.QueryParam("status"); raw != "" {
			metrics.SetStatusFilter(raw)
			var parseErr error
			status, parseErr = domain.ParseStatus(raw)
			if parseErr != nil {
				metrics.SetErrorStage("invalid_status")
				err = c.String(http.StatusBadRequest, "invalid status")
				return err
			}
		}

		fetchStart := time.Now()
		data, fetchErr := cache.ListJSON(ctx, status)
		metrics.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			metrics.SetErrorStage("snapshot")
			c.Logger().Error(fetchErr)
			err = c.String(http.StatusInternalServerError, fetchErr.Error())
			return err
		}
		metrics.SetBytesReturned(len(data))

		err = c.JSONBlob(http.StatusOK, data)
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func postProject(form Submitter) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req submitRequest
		contentType := c.Request().Header.Get(echo.HeaderContentType)
		if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
			lr := io.LimitReader(c.Request().Body, submitMaxSize)
			dec := sonic.ConfigStd.NewDecoder(lr)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
			}
		} else {
			req.Title = c.FormValue("title")
			req.Description = c.FormValue("description")
			req.People = c.FormValue("people")
		}

		p, err := form.Submit(req.Title, req.Description, req.People)
		if err != nil {
			if errors.Is(err, board.ErrInvalidInput) {
				return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "submission failed"})
		}
		return c.JSON(http.StatusCreated, p)
	}
}

// dropProject is the drop-target protocol: the dragged payload must declare
// the plain-text format, and its body is the project identity to move into
// this list. Unknown identities and same-status drops succeed as no-ops.
func dropProject(views map[domain.Status]*board.ListView) echo.HandlerFunc {
	return func(c echo.Context) error {
		view, err := viewForParam(views, c.Param("status"))
		if err != nil {
			return c.String(http.StatusNotFound, "unknown list")
		}

		format := payloadFormat(c.Request().Header.Get(echo.HeaderContentType))
		if !view.AcceptsDrop(format) {
			return c.NoContent(http.StatusUnsupportedMediaType)
		}
		view.DragOver(format)

		payload, err := io.ReadAll(io.LimitReader(c.Request().Body, dropPayloadMaxSize))
		if err != nil {
			view.DragLeave()
			return c.String(http.StatusBadRequest, "invalid payload")
		}
		view.Drop(strings.TrimSpace(string(payload)))
		return c.NoContent(http.StatusNoContent)
	}
}

func getListFragment(views map[domain.Status]*board.ListView) echo.HandlerFunc {
	return func(c echo.Context) error {
		view, err := viewForParam(views, c.Param("status"))
		if err != nil {
			return c.String(http.StatusNotFound, "unknown list")
		}
		html, err := view.RenderHTML()
		if err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, "render failed")
		}
		return c.HTMLBlob(http.StatusOK, html)
	}
}

func viewForParam(views map[domain.Status]*board.ListView, param string) (*board.ListView, error) {
	status, err := domain.ParseStatus(param)
	if err != nil {
		return nil, err
	}
	view, ok := views[status]
	if !ok {
		return nil, errors.New("no view for status")
	}
	return view, nil
}

// payloadFormat strips media type parameters such as charset.
func payloadFormat(contentType string) string {
	format, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(format)
}
