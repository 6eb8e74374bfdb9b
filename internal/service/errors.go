package service

import "errors"

// ErrNotFound is returned when an operation targets a client, invoice,
// or notification id absent from the current collection. The operation
// is aborted; nothing else is touched.
var ErrNotFound = errors.New("service: not found")
