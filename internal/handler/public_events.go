package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campus-events/bulletin/internal/middleware"
	"github.com/campus-events/bulletin/internal/repository"
	"github.com/campus-events/bulletin/internal/utils"
)

// EventsHandler serves the public, filterable event listing.
type EventsHandler struct {
	Events *repository.EventRepo
	Types  *repository.EventTypeRepo
}

func NewEventsHandler(events *repository.EventRepo, types *repository.EventTypeRepo) *EventsHandler {
	return &EventsHandler{Events: events, Types: types}
}

// List renders the bulletin. Filters arrive as query parameters; a storage
// failure degrades to an empty listing with a message, never an error page.
func (h *EventsHandler) List(c echo.Context) error {
	filter := repository.EventFilter{
		StartDate:  c.QueryParam("startDate"),
		EndDate:    c.QueryParam("endDate"),
		Categories: c.QueryParams()["categories"],
		Search:     strings.TrimSpace(c.QueryParam("search")),
		Sort:       "asc",
	}
	if c.QueryParam("sort") == "desc" {
		filter.Sort = "desc"
	}
	format := c.QueryParam("format")
	if format == "" {
		format = "grid"
	}

	ident := middleware.CurrentIdentity(c)
	data := map[string]any{
		"Role":       ident.Role,
		"IsLoggedIn": !ident.IsAnonymous(),
		"CurrentURL": c.Request().RequestURI,
		"CurrentFilters": map[string]any{
			"StartDate":  filter.StartDate,
			"EndDate":    filter.EndDate,
			"Categories": filter.Categories,
			"Format":     format,
			"Search":     filter.Search,
			"Sort":       filter.Sort,
		},
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	types, terr := h.Types.ListByName(ctx)
	events, eerr := h.Events.List(ctx, filter, utils.CivilNow(time.Now()))
	if terr != nil || eerr != nil {
		if terr != nil {
			c.Logger().Errorf("load event types: %v", terr)
		}
		if eerr != nil {
			c.Logger().Errorf("load events: %v", eerr)
		}
		data["Events"] = []repository.Event(nil)
		data["EventTypes"] = []repository.EventType(nil)
		data["ErrorMessage"] = "Failed to load events."
		return c.Render(http.StatusOK, "events", data)
	}

	data["Events"] = events
	data["EventTypes"] = types
	return c.Render(http.StatusOK, "events", data)
}
