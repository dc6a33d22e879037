package service

import "errors"

// ErrNoCategoriesConfigured is returned when a mailbox has no active
// categories to classify into. There is nothing to default to, so the
// resolution fails instead of silently picking something.
var ErrNoCategoriesConfigured = errors.New("no categories configured for this mailbox")
