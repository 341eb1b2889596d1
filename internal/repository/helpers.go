package repository

import "database/sql"

// nullStr maps an empty string to SQL NULL on write. Optional descriptive
// fields (host, url, link text, image path) are stored as NULL when blank.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullID maps a zero id to SQL NULL on write.
func nullID(id uint64) any {
	if id == 0 {
		return nil
	}
	return id
}

func strOf(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func idOf(ni sql.NullInt64) uint64 {
	if ni.Valid && ni.Int64 > 0 {
		return uint64(ni.Int64)
	}
	return 0
}
