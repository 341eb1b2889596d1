// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver errors. For example, ErrNotPending signals that a
// moderation action raced with (or repeated) an earlier decision and
// should be treated as a silent no-op.
package repository

import "errors"

// ErrNotFound is returned when a row does not exist. Handlers should
// translate this into a redirect back to the originating dashboard.
var ErrNotFound = errors.New("not found")

// ErrNotPending is returned when a moderation action targets a submission
// whose status already left 'pending'. Approved and denied are terminal
// states; the conditional UPDATE that produces this error is also what
// closes the double-approve race.
var ErrNotPending = errors.New("submission not pending")

// ErrEmailExists is returned by user creation when the email is taken.
var ErrEmailExists = errors.New("email already exists")
