package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campus-events/bulletin/internal/queue"
	"github.com/campus-events/bulletin/internal/repository"
	queue_publisher "github.com/campus-events/bulletin/internal/service"
	"github.com/campus-events/bulletin/internal/utils"
)

// ModerationHandler drives the pending -> approved/denied state machine.
// Both actions answer with a redirect and no error detail: a race lost to
// another admin looks exactly like success from the dashboard.
type ModerationHandler struct {
	Subs *repository.SubmissionRepo
}

func NewModerationHandler(subs *repository.SubmissionRepo) *ModerationHandler {
	return &ModerationHandler{Subs: subs}
}

// Approve promotes a pending submission into the canonical events table.
func (h *ModerationHandler) Approve(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	eventID, sub, err := h.Subs.Approve(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotPending) {
			c.Logger().Errorf("approve submission %d: %v", id, err)
		}
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}

	publishModerated(queue.SubmissionModeratedEvent{
		SubmissionID: sub.ID,
		EventID:      eventID,
		SubmitterID:  sub.SubmitterID,
		EventName:    sub.Name,
		Status:       repository.StatusApproved,
		ModeratedAt:  utils.CivilNow(time.Now().UTC()),
	})
	return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

// Deny marks a pending submission as denied.
func (h *ModerationHandler) Deny(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	sub, err := h.Subs.Deny(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotPending) {
			c.Logger().Errorf("deny submission %d: %v", id, err)
		}
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}

	publishModerated(queue.SubmissionModeratedEvent{
		SubmissionID: sub.ID,
		SubmitterID:  sub.SubmitterID,
		EventName:    sub.Name,
		Status:       repository.StatusDenied,
		ModeratedAt:  utils.CivilNow(time.Now().UTC()),
	})
	return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

// publishModerated fires the audit event off the request path. The broker
// being down must not slow moderation, so the publish runs in its own
// goroutine and its error is already logged by the publisher.
func publishModerated(ev queue.SubmissionModeratedEvent) {
	go func() {
		_ = queue_publisher.PublishSubmissionModerated(context.Background(), ev)
	}()
}
