package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Submission status values. pending is the only state moderation actions
// accept; approved and denied are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

// Submission mirrors the 'event_submissions' table. TypeName and
// SubmitterEmail are joined in for the moderation lists.
type Submission struct {
	ID             uint64
	Name           string
	Description    string
	StartTime      string
	EndTime        string
	Location       string
	Host           string
	URL            string
	LinkText       string
	ImagePath      string
	TypeID         uint64
	SubmitterID    uint64
	Status         string
	CreatedAt      string
	TypeName       string
	SubmitterEmail string
}

type SubmissionRepo struct{ DB *sql.DB }

func NewSubmissionRepo(db *sql.DB) *SubmissionRepo { return &SubmissionRepo{DB: db} }

const submissionColumns = `s.submissionid, s.eventname, s.eventdescription, s.starttime, s.endtime,
	s.eventlocation, s.eventhost, s.eventurl, s.eventlinktext, s.eventimagepath,
	s.eventtypeid, s.submitterid, s.status, s.created_at, t.eventtypename, u.email`

const submissionFrom = ` FROM event_submissions s
	LEFT JOIN eventtypes t ON s.eventtypeid = t.eventtypeid
	LEFT JOIN users u ON s.submitterid = u.id`

func scanSubmission(row interface{ Scan(...any) error }) (Submission, error) {
	var (
		s                              Submission
		host, url, link, img, tn, mail sql.NullString
		typeID                         sql.NullInt64
	)
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.StartTime, &s.EndTime,
		&s.Location, &host, &url, &link, &img, &typeID, &s.SubmitterID,
		&s.Status, &s.CreatedAt, &tn, &mail)
	if err != nil {
		return Submission{}, err
	}
	s.Host = strOf(host)
	s.URL = strOf(url)
	s.LinkText = strOf(link)
	s.ImagePath = strOf(img)
	s.TypeID = idOf(typeID)
	s.TypeName = strOf(tn)
	s.SubmitterEmail = strOf(mail)
	return s, nil
}

// Create inserts a submission with status 'pending' and returns its ID.
func (r *SubmissionRepo) Create(ctx context.Context, s *Submission) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO event_submissions
			(eventname, eventdescription, starttime, endtime, eventlocation,
			 eventhost, eventurl, eventlinktext, eventimagepath, eventtypeid,
			 submitterid, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		s.Name, s.Description, s.StartTime, s.EndTime, s.Location,
		nullStr(s.Host), nullStr(s.URL), nullStr(s.LinkText), nullStr(s.ImagePath), nullID(s.TypeID),
		s.SubmitterID, StatusPending)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	s.ID = uint64(id)
	return s.ID, nil
}

// ListBySubmitter returns a submitter's own submissions, newest first.
func (r *SubmissionRepo) ListBySubmitter(ctx context.Context, submitterID uint64) ([]Submission, error) {
	return r.list(ctx,
		"SELECT "+submissionColumns+submissionFrom+
			" WHERE s.submitterid=? ORDER BY s.created_at DESC", submitterID)
}

// ListByStatus returns submissions in a given status for the admin
// dashboard: pending oldest-first (review queue order), everything else
// newest-first.
func (r *SubmissionRepo) ListByStatus(ctx context.Context, status string) ([]Submission, error) {
	order := "DESC"
	if status == StatusPending {
		order = "ASC"
	}
	return r.list(ctx,
		"SELECT "+submissionColumns+submissionFrom+
			" WHERE s.status=? ORDER BY s.created_at "+order, status)
}

func (r *SubmissionRepo) list(ctx context.Context, query string, args ...any) ([]Submission, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// Approve promotes a pending submission in one transaction: a conditional
// status flip guarded by affected-row count, then an insert of the event
// copy. Two concurrent approvals of the same id cannot both pass the guard,
// and a rollback leaves neither write behind. Returns the new event id and
// the promoted submission, or ErrNotPending when the id is missing or its
// status already left 'pending'.
func (r *SubmissionRepo) Approve(ctx context.Context, id uint64) (uint64, Submission, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, Submission{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"UPDATE event_submissions SET status=? WHERE submissionid=? AND status=?",
		StatusApproved, id, StatusPending)
	if err != nil {
		return 0, Submission{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, Submission{}, err
	}
	if n == 0 {
		return 0, Submission{}, ErrNotPending
	}

	row := tx.QueryRowContext(ctx,
		"SELECT "+submissionColumns+submissionFrom+" WHERE s.submissionid=?", id)
	sub, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, Submission{}, ErrNotPending
		}
		return 0, Submission{}, err
	}

	ins, err := tx.ExecContext(ctx,
		`INSERT INTO events
			(eventname, eventdescription, starttime, endtime, eventlocation,
			 eventhost, eventurl, eventlinktext, eventimagepath, eventtypeid)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		sub.Name, nullStr(sub.Description), sub.StartTime, sub.EndTime, sub.Location,
		nullStr(sub.Host), nullStr(sub.URL), nullStr(sub.LinkText), nullStr(sub.ImagePath), nullID(sub.TypeID))
	if err != nil {
		return 0, Submission{}, err
	}
	eventID, err := ins.LastInsertId()
	if err != nil {
		return 0, Submission{}, err
	}
	if err := tx.Commit(); err != nil {
		return 0, Submission{}, err
	}
	sub.Status = StatusApproved
	return uint64(eventID), sub, nil
}

// Deny marks a pending submission as denied. Only pending submissions can
// be denied: denying an approved submission would orphan the event it
// created, so the transition is forbidden and reported as ErrNotPending.
func (r *SubmissionRepo) Deny(ctx context.Context, id uint64) (Submission, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE event_submissions SET status=? WHERE submissionid=? AND status=?",
		StatusDenied, id, StatusPending)
	if err != nil {
		return Submission{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Submission{}, err
	}
	if n == 0 {
		return Submission{}, ErrNotPending
	}
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+submissionColumns+submissionFrom+" WHERE s.submissionid=?", id)
	return scanSubmission(row)
}
