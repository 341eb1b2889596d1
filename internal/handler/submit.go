package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campus-events/bulletin/internal/middleware"
	"github.com/campus-events/bulletin/internal/repository"
	"github.com/campus-events/bulletin/internal/session"
	"github.com/campus-events/bulletin/internal/upload"
)

// SubmitHandler covers the submitter side of the workflow: the proposal
// form and the dashboard listing their own submissions.
type SubmitHandler struct {
	Types   *repository.EventTypeRepo
	Subs    *repository.SubmissionRepo
	Uploads *upload.Saver
}

func NewSubmitHandler(types *repository.EventTypeRepo, subs *repository.SubmissionRepo, uploads *upload.Saver) *SubmitHandler {
	return &SubmitHandler{Types: types, Subs: subs, Uploads: uploads}
}

// SubmitPage shows the proposal form. The route itself is public so the
// signup flow can land here, but without a submitter session visitors are
// sent to signup first.
func (h *SubmitHandler) SubmitPage(c echo.Context) error {
	ident := middleware.CurrentIdentity(c)
	if !ident.IsSubmitter() {
		return c.Redirect(http.StatusSeeOther, "/signup")
	}
	success := ""
	if c.QueryParam("success") != "" {
		success = "Thanks! We'll review your submission shortly."
	}
	return h.renderSubmitPage(c, ident, success, "", EventForm{})
}

// Submit validates and stores a proposal with status pending. The optional
// image is staged before validation, mirroring how the upload middleware
// ran first in the original flow, so every failure path below has to clean
// the staged file up.
func (h *SubmitHandler) Submit(c echo.Context) error {
	ident := middleware.CurrentIdentity(c)
	if !ident.IsSubmitter() {
		return c.Redirect(http.StatusSeeOther, "/signup")
	}

	form := ParseEventForm(c)

	imagePath := ""
	if fh, err := c.FormFile("eventimage"); err == nil && fh != nil {
		imagePath, err = h.Uploads.Save(fh)
		if err != nil {
			return h.renderSubmitPage(c, ident, "", uploadErrorMessage(err), form)
		}
	}

	if msg := form.Validate(true); msg != "" {
		h.discard(c, imagePath)
		return h.renderSubmitPage(c, ident, "", msg, form)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	sub := form.ToSubmission(ident.UserID, imagePath)
	if _, err := h.Subs.Create(ctx, &sub); err != nil {
		c.Logger().Errorf("save submission: %v", err)
		h.discard(c, imagePath)
		return h.renderSubmitPage(c, ident, "", "Unable to submit your event. Please try again later.", form)
	}
	return c.Redirect(http.StatusSeeOther, "/submitter/dashboard?success=1")
}

// Dashboard lists the submitter's own submissions, newest first.
func (h *SubmitHandler) Dashboard(c echo.Context) error {
	ident := middleware.CurrentIdentity(c)

	success := ""
	if c.QueryParam("success") != "" {
		success = "Thanks! We'll review your submission shortly."
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	subs, err := h.Subs.ListBySubmitter(ctx, ident.UserID)
	data := map[string]any{
		"Submissions":    subs,
		"SubmitterEmail": ident.Email,
		"SuccessMessage": success,
		"ErrorMessage":   "",
		"Role":           ident.Role,
	}
	if err != nil {
		c.Logger().Errorf("load submitter dashboard: %v", err)
		data["Submissions"] = []repository.Submission(nil)
		data["SuccessMessage"] = ""
		data["ErrorMessage"] = "Unable to load your submissions right now."
	}
	return c.Render(http.StatusOK, "submitterDashboard", data)
}

// renderSubmitPage loads the dropdown data plus the submitter's previous
// submissions and renders the form, echoing back whatever was entered.
func (h *SubmitHandler) renderSubmitPage(c echo.Context, ident session.Identity, success, errMsg string, form EventForm) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	data := map[string]any{
		"SuccessMessage": success,
		"ErrorMessage":   errMsg,
		"FormData":       form,
		"Role":           ident.Role,
	}

	types, terr := h.Types.ListByName(ctx)
	subs, serr := h.Subs.ListBySubmitter(ctx, ident.UserID)
	if terr != nil || serr != nil {
		if terr != nil {
			c.Logger().Errorf("load event types: %v", terr)
		}
		if serr != nil {
			c.Logger().Errorf("load submissions: %v", serr)
		}
		data["EventTypes"] = []repository.EventType(nil)
		data["Submissions"] = []repository.Submission(nil)
		if errMsg == "" {
			data["ErrorMessage"] = "Unable to load event types. Please try again later."
		}
		return c.Render(http.StatusOK, "submitEvent", data)
	}

	data["EventTypes"] = types
	data["Submissions"] = subs
	return c.Render(http.StatusOK, "submitEvent", data)
}

// discard removes a staged upload after a downstream failure so rejected
// submissions leave no orphaned files behind.
func (h *SubmitHandler) discard(c echo.Context, imagePath string) {
	if err := h.Uploads.Remove(imagePath); err != nil {
		c.Logger().Errorf("remove staged upload: %v", err)
	}
}

// uploadErrorMessage maps upload failures onto user-facing text alongside
// the other field validation messages.
func uploadErrorMessage(err error) string {
	if errors.Is(err, upload.ErrBadType) || errors.Is(err, upload.ErrTooLarge) {
		return err.Error()
	}
	return "Unable to save the uploaded image. Please try again."
}
