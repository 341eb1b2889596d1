package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/campus-events/bulletin/internal/utils"
)

// EventFilter captures the optional query parameters of the public listing.
// Fields hold the raw query-string values; interpretation happens in
// BuildListQuery so the whole filter-to-SQL mapping is testable in one place.
type EventFilter struct {
	StartDate  string   // "YYYY-MM-DD", optional lower bound
	EndDate    string   // "YYYY-MM-DD", optional upper bound
	Categories []string // raw event type ids from repeated query params
	Search     string   // free-text term matched against name and description
	Sort       string   // "asc" or "desc"; anything else means asc
}

// BuildListQuery turns a filter into the public listing SQL and its
// arguments. now is the civil timestamp used to hide past events.
//
// Date-range policy: with both bounds the query keeps events overlapping
// [start 00:00:00, end 23:59:59] (interval overlap, not containment); a lone
// bound relaxes only its own side. Non-numeric category ids are coerced to
// an impossible match instead of failing the request.
func BuildListQuery(f EventFilter, now string) (string, []any) {
	where := []string{"e.endtime > ?"}
	args := []any{now}

	rangeStart := utils.DayStart(f.StartDate)
	rangeEnd := utils.DayEnd(f.EndDate)
	switch {
	case rangeStart != "" && rangeEnd != "":
		where = append(where, "e.starttime <= ?", "e.endtime >= ?")
		args = append(args, rangeEnd, rangeStart)
	case rangeStart != "":
		where = append(where, "e.endtime >= ?")
		args = append(args, rangeStart)
	case rangeEnd != "":
		where = append(where, "e.starttime <= ?")
		args = append(args, rangeEnd)
	}

	if len(f.Categories) > 0 {
		in := make([]string, len(f.Categories))
		for i, raw := range f.Categories {
			in[i] = "?"
			id, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				id = -1 // impossible type id, matches nothing
			}
			args = append(args, id)
		}
		where = append(where, "e.eventtypeid IN ("+strings.Join(in, ",")+")")
	}

	if term := strings.TrimSpace(f.Search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		where = append(where, "(LOWER(e.eventname) LIKE ? OR LOWER(e.eventdescription) LIKE ?)")
		args = append(args, pattern, pattern)
	}

	dir := "ASC"
	if strings.EqualFold(f.Sort, "desc") {
		dir = "DESC"
	}

	query := "SELECT " + eventColumns + eventFrom +
		" WHERE " + strings.Join(where, " AND ") +
		" ORDER BY e.starttime " + dir
	return query, args
}

// List runs the built listing query. Callers that render the public page
// should treat an error as "empty result plus load-failed message" so the
// page always renders.
func (r *EventRepo) List(ctx context.Context, f EventFilter, now string) ([]Event, error) {
	query, args := BuildListQuery(f, now)
	rows, err := r.DB.QueryContext(ctx, query, args...)
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
