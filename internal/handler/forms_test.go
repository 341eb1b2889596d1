package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func validForm() EventForm {
	return EventForm{
		Name:        "Career Fair",
		Description: "Meet local employers.",
		StartTime:   "2025-10-10T09:00",
		EndTime:     "2025-10-10T15:00",
		Location:    "Student Union",
		TypeID:      "3",
	}
}

func TestEventFormValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EventForm)
		reqDesc bool
		want    string
	}{
		{"valid", func(f *EventForm) {}, false, ""},
		{"valid with required description", func(f *EventForm) {}, true, ""},
		{"missing name", func(f *EventForm) { f.Name = "" }, false, requiredFieldsMessage},
		{"missing start", func(f *EventForm) { f.StartTime = "" }, false, requiredFieldsMessage},
		{"missing end", func(f *EventForm) { f.EndTime = "" }, false, requiredFieldsMessage},
		{"missing location", func(f *EventForm) { f.Location = "" }, false, requiredFieldsMessage},
		{"missing type", func(f *EventForm) { f.TypeID = "" }, false, requiredFieldsMessage},
		{"description optional for admins", func(f *EventForm) { f.Description = "" }, false, ""},
		{"description required for submissions", func(f *EventForm) { f.Description = "" }, true, requiredFieldsMessage},
		{"malformed start", func(f *EventForm) { f.StartTime = "next tuesday" }, false, requiredFieldsMessage},
		{"malformed end", func(f *EventForm) { f.EndTime = "2025-13-40T09:00" }, false, requiredFieldsMessage},
		{"end equals start", func(f *EventForm) { f.EndTime = f.StartTime }, false, "End time must be after start time."},
		{"end before start", func(f *EventForm) { f.EndTime = "2025-10-10T08:00" }, false, "End time must be after start time."},
		{"end after start across days", func(f *EventForm) { f.EndTime = "2025-10-11T01:00" }, false, ""},
		{"non-numeric type", func(f *EventForm) { f.TypeID = "music" }, false, requiredFieldsMessage},
		{"zero type", func(f *EventForm) { f.TypeID = "0" }, false, requiredFieldsMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			if got := f.Validate(tt.reqDesc); got != tt.want {
				t.Errorf("Validate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEventFormValidatePopulatesNormalizedFields(t *testing.T) {
	f := validForm()
	if msg := f.Validate(true); msg != "" {
		t.Fatalf("Validate() = %q, want success", msg)
	}
	if f.NormStart != "2025-10-10 09:00:00" {
		t.Errorf("NormStart = %q", f.NormStart)
	}
	if f.NormEnd != "2025-10-10 15:00:00" {
		t.Errorf("NormEnd = %q", f.NormEnd)
	}
	if f.TypeIDNum != 3 {
		t.Errorf("TypeIDNum = %d, want 3", f.TypeIDNum)
	}
}

func TestParseEventForm(t *testing.T) {
	body := url.Values{
		"eventName":        {"  Open Mic Night  "},
		"eventDescription": {" Bring your own poems. "},
		"startTime":        {"2025-11-01T19:00"},
		"endTime":          {"2025-11-01T22:00"},
		"eventLocation":    {" Coffee House "},
		"eventHost":        {" Poetry Club "},
		"eventTypeID":      {"2"},
		"eventURL":         {" https://example.edu/openmic "},
		"eventLinkText":    {" Sign up "},
	}
	req := httptest.NewRequest(http.MethodPost, "/submit-event", strings.NewReader(body.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	f := ParseEventForm(c)
	want := EventForm{
		Name:        "Open Mic Night",
		Description: "Bring your own poems.",
		StartTime:   "2025-11-01T19:00",
		EndTime:     "2025-11-01T22:00",
		Location:    "Coffee House",
		Host:        "Poetry Club",
		TypeID:      "2",
		URL:         "https://example.edu/openmic",
		LinkText:    "Sign up",
	}
	if f != want {
		t.Errorf("ParseEventForm() = %+v, want %+v", f, want)
	}
}

func TestFormFromEventRoundTrip(t *testing.T) {
	f := validForm()
	if msg := f.Validate(false); msg != "" {
		t.Fatalf("Validate() = %q, want success", msg)
	}
	e := f.ToEvent("/uploads/events/fair.png")
	if e.StartTime != f.NormStart || e.EndTime != f.NormEnd {
		t.Fatalf("ToEvent times = %q/%q", e.StartTime, e.EndTime)
	}
	if e.ImagePath != "/uploads/events/fair.png" {
		t.Errorf("ImagePath = %q", e.ImagePath)
	}

	back := FormFromEvent(e)
	if back.StartTime != f.StartTime || back.EndTime != f.EndTime {
		t.Errorf("FormFromEvent times = %q/%q, want %q/%q",
			back.StartTime, back.EndTime, f.StartTime, f.EndTime)
	}
	if back.TypeID != f.TypeID {
		t.Errorf("TypeID = %q, want %q", back.TypeID, f.TypeID)
	}
}

func TestToSubmissionCarriesSubmitter(t *testing.T) {
	f := validForm()
	if msg := f.Validate(true); msg != "" {
		t.Fatalf("Validate() = %q, want success", msg)
	}
	s := f.ToSubmission(42, "")
	if s.SubmitterID != 42 {
		t.Errorf("SubmitterID = %d, want 42", s.SubmitterID)
	}
	if s.Status != "" {
		t.Errorf("Status = %q, want empty (set on insert)", s.Status)
	}
}
