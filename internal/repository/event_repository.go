package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Event mirrors the 'events' table with the type name joined in for display.
// StartTime and EndTime are civil "YYYY-MM-DD HH:MM:SS" strings; optional
// fields are empty strings when NULL in the row.
type Event struct {
	ID          uint64
	Name        string
	Description string
	StartTime   string
	EndTime     string
	Location    string
	Host        string
	URL         string
	LinkText    string
	ImagePath   string
	TypeID      uint64
	TypeName    string
}

type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventColumns = `e.eventid, e.eventname, e.eventdescription, e.starttime, e.endtime,
	e.eventlocation, e.eventhost, e.eventurl, e.eventlinktext, e.eventimagepath,
	e.eventtypeid, t.eventtypename`

const eventFrom = ` FROM events e LEFT JOIN eventtypes t ON e.eventtypeid = t.eventtypeid`

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var (
		e                              Event
		desc, host, url, link, img, tn sql.NullString
		typeID                         sql.NullInt64
	)
	err := row.Scan(&e.ID, &e.Name, &desc, &e.StartTime, &e.EndTime,
		&e.Location, &host, &url, &link, &img, &typeID, &tn)
	if err != nil {
		return Event{}, err
	}
	e.Description = strOf(desc)
	e.Host = strOf(host)
	e.URL = strOf(url)
	e.LinkText = strOf(link)
	e.ImagePath = strOf(img)
	e.TypeID = idOf(typeID)
	e.TypeName = strOf(tn)
	return e, nil
}

// Create inserts an event and returns its ID.
func (r *EventRepo) Create(ctx context.Context, e *Event) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO events
			(eventname, eventdescription, starttime, endtime, eventlocation,
			 eventhost, eventurl, eventlinktext, eventimagepath, eventtypeid)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		e.Name, nullStr(e.Description), e.StartTime, e.EndTime, e.Location,
		nullStr(e.Host), nullStr(e.URL), nullStr(e.LinkText), nullStr(e.ImagePath), nullID(e.TypeID))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	e.ID = uint64(id)
	return e.ID, nil
}

// Update rewrites every mutable column of an event.
func (r *EventRepo) Update(ctx context.Context, e *Event) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE events SET
			eventname=?, eventdescription=?, starttime=?, endtime=?, eventlocation=?,
			eventhost=?, eventurl=?, eventlinktext=?, eventimagepath=?, eventtypeid=?
		 WHERE eventid=?`,
		e.Name, nullStr(e.Description), e.StartTime, e.EndTime, e.Location,
		nullStr(e.Host), nullStr(e.URL), nullStr(e.LinkText), nullStr(e.ImagePath), nullID(e.TypeID),
		e.ID)
	return err
}

// Delete removes the event row. The caller is responsible for removing any
// associated image file afterwards.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM events WHERE eventid=?", id)
	return err
}

// GetByID fetches a single event with its type name.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (Event, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+eventColumns+eventFrom+" WHERE e.eventid=?", id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrNotFound
	}
	return e, err
}

// ListAll returns every event ordered by start time. The admin dashboard
// partitions the result into past and upcoming in memory; there is no "now"
// filter at the query level here.
func (r *EventRepo) ListAll(ctx context.Context) ([]Event, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+eventColumns+eventFrom+" ORDER BY e.starttime ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
