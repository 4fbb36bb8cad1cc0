package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/praxislex/billing-console/internal/core/domain"
	"github.com/praxislex/billing-console/internal/core/paginate"
	"github.com/praxislex/billing-console/internal/core/ports"
	"github.com/praxislex/billing-console/internal/core/state"
)

const defaultPerPage = 10

// listResponse is the windowed view of a container the table views render.
type listResponse[E domain.Entity] struct {
	Status       state.Status `json:"status"`
	Error        string       `json:"error,omitempty"`
	Unauthorized bool         `json:"unauthorized,omitempty"`
	Page         int          `json:"page"`
	PerPage      int          `json:"per_page"`
	MaxPage      int          `json:"max_page"`
	Total        int          `json:"total"`
	Data         []E          `json:"data"`
}

// ListEndpoint dispatches a list on the container and returns the requested
// page of the settled snapshot. The page number is clamped, never rejected.
//
// @Summary      List a resource collection, windowed
// @Produce      json
// @Param        page      query  int     false  "1-based page number"
// @Param        per_page  query  int     false  "items per page"
// @Param        search    query  string  false  "search filter"
// @Param        status    query  string  false  "status filter"
func ListEndpoint[E domain.Entity](container *state.Container[E]) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := ports.ListParams{
			Search: c.QueryParam("search"),
			Status: c.QueryParam("status"),
		}
		snap := container.List(c.Request().Context(), params)

		perPage := queryInt(c, "per_page", defaultPerPage)
		if perPage < 1 {
			perPage = defaultPerPage
		}
		maxPage := paginate.MaxPage(len(snap.Items), perPage)
		page := paginate.Jump(queryInt(c, "page", 1), maxPage)

		return c.JSON(http.StatusOK, listResponse[E]{
			Status:       snap.Status,
			Error:        snap.Err,
			Unauthorized: snap.Unauthorized,
			Page:         page,
			PerPage:      perPage,
			MaxPage:      maxPage,
			Total:        len(snap.Items),
			Data:         paginate.Window(snap.Items, perPage, page),
		})
	}
}

// GetEndpoint fetches a single entity into the container and returns the
// settled snapshot.
func GetEndpoint[E domain.Entity](container *state.Container[E]) echo.HandlerFunc {
	return func(c echo.Context) error {
		snap := container.Get(c.Request().Context(), c.Param("id"))
		return c.JSON(http.StatusOK, snap)
	}
}

// CreateEndpoint forwards the request body as the create payload.
func CreateEndpoint[E domain.Entity](container *state.Container[E]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var payload map[string]any
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		snap := container.Create(c.Request().Context(), payload)
		return c.JSON(http.StatusOK, snap)
	}
}

// UpdateEndpoint forwards the request body as the update payload.
func UpdateEndpoint[E domain.Entity](container *state.Container[E]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var payload map[string]any
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		snap := container.Update(c.Request().Context(), c.Param("id"), payload)
		return c.JSON(http.StatusOK, snap)
	}
}

// DeleteEndpoint removes the entity from the backend and the container.
func DeleteEndpoint[E domain.Entity](container *state.Container[E]) echo.HandlerFunc {
	return func(c echo.Context) error {
		snap := container.Delete(c.Request().Context(), c.Param("id"))
		return c.JSON(http.StatusOK, snap)
	}
}

func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
