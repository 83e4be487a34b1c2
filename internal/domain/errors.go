package domain

import "errors"

var (
	// ErrSnapshotNotFound indicates no cached snapshot exists for a key
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrInvalidFarmID indicates an empty or blank farm identifier
	ErrInvalidFarmID = errors.New("farm id cannot be empty")

	// ErrViewNotFound indicates requested detail view doesn't exist
	ErrViewNotFound = errors.New("view not found")

	// ErrTooManyViews indicates the open detail view limit is reached
	ErrTooManyViews = errors.New("too many open views")

	// ErrUpstreamStatus indicates the live endpoint answered with a non-200 status
	ErrUpstreamStatus = errors.New("unexpected upstream status")
)
