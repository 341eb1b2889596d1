package repository

import (
	"reflect"
	"strings"
	"testing"
)

const testNow = "2025-06-15 12:00:00"

func buildFor(t *testing.T, f EventFilter) (string, []any) {
	t.Helper()
	query, args := BuildListQuery(f, testNow)
	if len(strings.Split(query, "?"))-1 != len(args) {
		t.Fatalf("placeholder/arg mismatch: %d placeholders, %d args\n%s",
			len(strings.Split(query, "?"))-1, len(args), query)
	}
	return query, args
}

func TestBuildListQueryHidesPastEvents(t *testing.T) {
	query, args := buildFor(t, EventFilter{})
	if !strings.Contains(query, "e.endtime > ?") {
		t.Errorf("query missing now filter:\n%s", query)
	}
	if args[0] != testNow {
		t.Errorf("first arg = %v, want %q", args[0], testNow)
	}
	if strings.Contains(query, "IN (") || strings.Contains(query, "LIKE") {
		t.Errorf("empty filter added clauses:\n%s", query)
	}
	if !strings.HasSuffix(query, "ORDER BY e.starttime ASC") {
		t.Errorf("default sort not ascending:\n%s", query)
	}
}

func TestBuildListQueryDateRange(t *testing.T) {
	tests := []struct {
		name       string
		filter     EventFilter
		wantClause []string
		wantArgs   []any
	}{
		{
			name:   "both bounds use interval overlap",
			filter: EventFilter{StartDate: "2025-07-01", EndDate: "2025-07-10"},
			wantClause: []string{
				"e.starttime <= ?",
				"e.endtime >= ?",
			},
			wantArgs: []any{testNow, "2025-07-10 23:59:59", "2025-07-01 00:00:00"},
		},
		{
			name:       "start only relaxes the upper side",
			filter:     EventFilter{StartDate: "2025-07-01"},
			wantClause: []string{"e.endtime >= ?"},
			wantArgs:   []any{testNow, "2025-07-01 00:00:00"},
		},
		{
			name:       "end only relaxes the lower side",
			filter:     EventFilter{EndDate: "2025-07-10"},
			wantClause: []string{"e.starttime <= ?"},
			wantArgs:   []any{testNow, "2025-07-10 23:59:59"},
		},
		{
			name:       "invalid date drops the bound",
			filter:     EventFilter{StartDate: "07/01/2025"},
			wantClause: nil,
			wantArgs:   []any{testNow},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildFor(t, tt.filter)
			for _, clause := range tt.wantClause {
				if !strings.Contains(query, clause) {
					t.Errorf("query missing %q:\n%s", clause, query)
				}
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestBuildListQueryCategories(t *testing.T) {
	query, args := buildFor(t, EventFilter{Categories: []string{"3", " 7 ", "abc"}})
	if !strings.Contains(query, "e.eventtypeid IN (?,?,?)") {
		t.Errorf("category clause wrong:\n%s", query)
	}
	// Non-numeric ids become an impossible match rather than an error.
	if !reflect.DeepEqual(args[1:], []any{3, 7, -1}) {
		t.Errorf("category args = %v, want [3 7 -1]", args[1:])
	}
}

func TestBuildListQuerySearch(t *testing.T) {
	query, args := buildFor(t, EventFilter{Search: "  AbC  "})
	if !strings.Contains(query, "(LOWER(e.eventname) LIKE ? OR LOWER(e.eventdescription) LIKE ?)") {
		t.Errorf("search clause wrong:\n%s", query)
	}
	// Lower-cased pattern against LOWER() columns: "abc" matches "ABCDEF"
	// in a name and "xabcy" inside a description.
	if args[1] != "%abc%" || args[2] != "%abc%" {
		t.Errorf("search args = %v, want %%abc%% twice", args[1:])
	}

	query, args = buildFor(t, EventFilter{Search: "   "})
	if strings.Contains(query, "LIKE") {
		t.Errorf("blank search added a clause:\n%s", query)
	}
	if len(args) != 1 {
		t.Errorf("blank search args = %v", args)
	}
}

func TestBuildListQuerySort(t *testing.T) {
	tests := []struct {
		sort string
		want string
	}{
		{"", "ASC"},
		{"asc", "ASC"},
		{"desc", "DESC"},
		{"DESC", "DESC"},
		{"sideways", "ASC"},
	}
	for _, tt := range tests {
		t.Run("sort="+tt.sort, func(t *testing.T) {
			query, _ := buildFor(t, EventFilter{Sort: tt.sort})
			if !strings.HasSuffix(query, "ORDER BY e.starttime "+tt.want) {
				t.Errorf("sort %q: got\n%s", tt.sort, query)
			}
		})
	}
}

func TestBuildListQueryCombined(t *testing.T) {
	f := EventFilter{
		StartDate:  "2025-07-01",
		EndDate:    "2025-07-31",
		Categories: []string{"2"},
		Search:     "fair",
		Sort:       "desc",
	}
	query, args := buildFor(t, f)
	wantArgs := []any{testNow, "2025-07-31 23:59:59", "2025-07-01 00:00:00", 2, "%fair%", "%fair%"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
	if !strings.HasSuffix(query, "ORDER BY e.starttime DESC") {
		t.Errorf("combined sort wrong:\n%s", query)
	}
}
