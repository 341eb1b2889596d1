package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campus-events/bulletin/internal/repository"
	"github.com/campus-events/bulletin/internal/utils"
)

const requiredFieldsMessage = "Please fill in all required fields (Event Name, Start Time, End Time, Location, Event Type)."

// EventForm carries the posted fields of the create, edit and submit forms.
// The raw values are kept so a failed validation can echo exactly what the
// user typed back into the form; the Norm* fields hold the civil timestamps
// produced by a successful Validate.
type EventForm struct {
	Name        string
	Description string
	StartTime   string // raw datetime-local value
	EndTime     string
	Location    string
	Host        string
	TypeID      string // raw select value
	URL         string
	LinkText    string

	NormStart string
	NormEnd   string
	TypeIDNum uint64
}

// ParseEventForm reads the shared event fields out of a posted form,
// trimming everything except the datetime values (which are validated, not
// trimmed into shape).
func ParseEventForm(c echo.Context) EventForm {
	return EventForm{
		Name:        strings.TrimSpace(c.FormValue("eventName")),
		Description: strings.TrimSpace(c.FormValue("eventDescription")),
		StartTime:   c.FormValue("startTime"),
		EndTime:     c.FormValue("endTime"),
		Location:    strings.TrimSpace(c.FormValue("eventLocation")),
		Host:        strings.TrimSpace(c.FormValue("eventHost")),
		TypeID:      c.FormValue("eventTypeID"),
		URL:         strings.TrimSpace(c.FormValue("eventURL")),
		LinkText:    strings.TrimSpace(c.FormValue("eventLinkText")),
	}
}

// Validate checks required fields, normalizes the datetimes and rejects an
// end time at or before the start time. It returns an empty string on
// success, otherwise the message to show the user. requireDescription is
// true for submitter submissions, where the description is mandatory.
func (f *EventForm) Validate(requireDescription bool) string {
	if f.Name == "" || f.StartTime == "" || f.EndTime == "" || f.Location == "" || f.TypeID == "" {
		return requiredFieldsMessage
	}
	if requireDescription && f.Description == "" {
		return requiredFieldsMessage
	}
	start, err := utils.NormalizeLocalDateTime(f.StartTime)
	if err != nil {
		return requiredFieldsMessage
	}
	end, err := utils.NormalizeLocalDateTime(f.EndTime)
	if err != nil {
		return requiredFieldsMessage
	}
	// Fixed-width civil form: string order is time order.
	if end <= start {
		return "End time must be after start time."
	}
	typeID, err := strconv.ParseUint(strings.TrimSpace(f.TypeID), 10, 64)
	if err != nil || typeID == 0 {
		return requiredFieldsMessage
	}
	f.NormStart = start
	f.NormEnd = end
	f.TypeIDNum = typeID
	return ""
}

// ToEvent maps a validated form onto an event row.
func (f *EventForm) ToEvent(imagePath string) repository.Event {
	return repository.Event{
		Name:        f.Name,
		Description: f.Description,
		StartTime:   f.NormStart,
		EndTime:     f.NormEnd,
		Location:    f.Location,
		Host:        f.Host,
		URL:         f.URL,
		LinkText:    f.LinkText,
		ImagePath:   imagePath,
		TypeID:      f.TypeIDNum,
	}
}

// ToSubmission maps a validated form onto a pending submission row.
func (f *EventForm) ToSubmission(submitterID uint64, imagePath string) repository.Submission {
	return repository.Submission{
		Name:        f.Name,
		Description: f.Description,
		StartTime:   f.NormStart,
		EndTime:     f.NormEnd,
		Location:    f.Location,
		Host:        f.Host,
		URL:         f.URL,
		LinkText:    f.LinkText,
		ImagePath:   imagePath,
		TypeID:      f.TypeIDNum,
		SubmitterID: submitterID,
	}
}

// FormFromEvent pre-fills the edit form from an existing event row,
// converting civil timestamps back to datetime-local input values.
func FormFromEvent(e repository.Event) EventForm {
	return EventForm{
		Name:        e.Name,
		Description: e.Description,
		StartTime:   utils.DenormalizeCivil(e.StartTime),
		EndTime:     utils.DenormalizeCivil(e.EndTime),
		Location:    e.Location,
		Host:        e.Host,
		TypeID:      strconv.FormatUint(e.TypeID, 10),
		URL:         e.URL,
		LinkText:    e.LinkText,
	}
}
