package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campus-events/bulletin/internal/repository"
	"github.com/campus-events/bulletin/internal/upload"
	"github.com/campus-events/bulletin/internal/utils"
)

// AdminEventsHandler covers the admin dashboard and direct CRUD on the
// canonical events table.
type AdminEventsHandler struct {
	Events  *repository.EventRepo
	Types   *repository.EventTypeRepo
	Subs    *repository.SubmissionRepo
	Uploads *upload.Saver
}

func NewAdminEventsHandler(events *repository.EventRepo, types *repository.EventTypeRepo, subs *repository.SubmissionRepo, uploads *upload.Saver) *AdminEventsHandler {
	return &AdminEventsHandler{Events: events, Types: types, Subs: subs, Uploads: uploads}
}

// Dashboard loads every event and partitions past/upcoming in memory, plus
// the pending and denied submission queues.
func (h *AdminEventsHandler) Dashboard(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	events, eerr := h.Events.ListAll(ctx)
	pending, perr := h.Subs.ListByStatus(ctx, repository.StatusPending)
	denied, derr := h.Subs.ListByStatus(ctx, repository.StatusDenied)
	if eerr != nil || perr != nil || derr != nil {
		for _, err := range []error{eerr, perr, derr} {
			if err != nil {
				c.Logger().Errorf("load admin dashboard: %v", err)
			}
		}
		return c.Render(http.StatusOK, "adminDashboard", map[string]any{
			"UpcomingEvents":     []repository.Event(nil),
			"PastEvents":         []repository.Event(nil),
			"PendingSubmissions": []repository.Submission(nil),
			"DeniedSubmissions":  []repository.Submission(nil),
			"PendingCount":       0,
			"Role":               "admin",
			"ErrorMessage":       "Database error loading events.",
		})
	}

	now := utils.CivilNow(time.Now())
	var upcoming, past []repository.Event
	for _, e := range events {
		if e.EndTime > now {
			upcoming = append(upcoming, e)
		} else {
			past = append(past, e)
		}
	}

	return c.Render(http.StatusOK, "adminDashboard", map[string]any{
		"UpcomingEvents":     upcoming,
		"PastEvents":         past,
		"PendingSubmissions": pending,
		"DeniedSubmissions":  denied,
		"PendingCount":       len(pending),
		"Role":               "admin",
	})
}

// CreateForm shows the empty create form.
func (h *AdminEventsHandler) CreateForm(c echo.Context) error {
	return h.renderCreate(c, EventForm{}, "")
}

// Create validates the form, stages the optional image and inserts the
// event. Any failure after the image was staged removes it again.
func (h *AdminEventsHandler) Create(c echo.Context) error {
	form := ParseEventForm(c)

	imagePath := ""
	if fh, err := c.FormFile("eventimage"); err == nil && fh != nil {
		imagePath, err = h.Uploads.Save(fh)
		if err != nil {
			return h.renderCreate(c, form, uploadErrorMessage(err))
		}
	}

	if msg := form.Validate(false); msg != "" {
		h.discard(c, imagePath)
		return h.renderCreate(c, form, msg)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	event := form.ToEvent(imagePath)
	if _, err := h.Events.Create(ctx, &event); err != nil {
		c.Logger().Errorf("create event: %v", err)
		h.discard(c, imagePath)
		return h.renderCreate(c, form, "Failed to create event. Please check your input and try again.")
	}
	return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

// EditForm shows the edit form pre-filled from the stored row.
func (h *AdminEventsHandler) EditForm(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	event, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			c.Logger().Errorf("load event %d: %v", id, err)
		}
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}
	return h.renderEdit(c, event, FormFromEvent(event), "")
}

// Edit updates an event. Without a new upload the stored image path is
// preserved; with one, the old file is deleted only after the row update
// succeeds, and a failed update removes the newly staged file instead.
func (h *AdminEventsHandler) Edit(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}
	form := ParseEventForm(c)

	newImage := ""
	staged := false
	if fh, err := c.FormFile("eventimage"); err == nil && fh != nil {
		newImage, err = h.Uploads.Save(fh)
		if err != nil {
			return h.editFailed(c, id, form, uploadErrorMessage(err))
		}
		staged = true
	}

	if msg := form.Validate(false); msg != "" {
		h.discard(c, newImage)
		return h.editFailed(c, id, form, msg)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	existing, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			c.Logger().Errorf("load event %d: %v", id, err)
		}
		h.discard(c, newImage)
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}

	event := form.ToEvent(existing.ImagePath)
	event.ID = id
	if staged {
		event.ImagePath = newImage
	}
	if err := h.Events.Update(ctx, &event); err != nil {
		c.Logger().Errorf("update event %d: %v", id, err)
		h.discard(c, newImage)
		return h.editFailed(c, id, form, "Failed to update event. Please check your input and try again.")
	}
	if staged {
		h.discard(c, existing.ImagePath)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

// Delete removes the event row and then its image file, if any.
func (h *AdminEventsHandler) Delete(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	existing, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			c.Logger().Errorf("load event %d: %v", id, err)
		}
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}
	if err := h.Events.Delete(ctx, id); err != nil {
		c.Logger().Errorf("delete event %d: %v", id, err)
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}
	h.discard(c, existing.ImagePath)
	return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

func (h *AdminEventsHandler) renderCreate(c echo.Context, form EventForm, errMsg string) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	types, err := h.Types.ListByName(ctx)
	if err != nil {
		c.Logger().Errorf("load event types: %v", err)
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}
	return c.Render(http.StatusOK, "adminCreate", map[string]any{
		"EventTypes":   types,
		"FormData":     form,
		"ErrorMessage": errMsg,
		"Role":         "admin",
	})
}

func (h *AdminEventsHandler) renderEdit(c echo.Context, event repository.Event, form EventForm, errMsg string) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	types, err := h.Types.ListByName(ctx)
	if err != nil {
		c.Logger().Errorf("load event types: %v", err)
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}
	return c.Render(http.StatusOK, "adminEdit", map[string]any{
		"Event":        event,
		"EventTypes":   types,
		"FormData":     form,
		"ErrorMessage": errMsg,
		"Role":         "admin",
	})
}

// editFailed reloads the row so the edit view can still show the stored
// image, then re-renders with the user's entered values.
func (h *AdminEventsHandler) editFailed(c echo.Context, id uint64, form EventForm, errMsg string) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	event, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}
	return h.renderEdit(c, event, form, errMsg)
}

func (h *AdminEventsHandler) discard(c echo.Context, imagePath string) {
	if err := h.Uploads.Remove(imagePath); err != nil {
		c.Logger().Errorf("remove image file: %v", err)
	}
}

// paramID parses the :id route parameter; a non-numeric id is treated the
// same as a missing row.
func paramID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
