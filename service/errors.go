package service

import "errors"

var (
	// ErrNotFound is returned when a product or order id has no entry.
	ErrNotFound = errors.New("not found")

	// ErrPersist means the in-memory state changed but the snapshot write
	// failed. Memory is ahead of disk until the next successful write.
	ErrPersist = errors.New("snapshot write failed")

	// ErrJournal means the mutation was rejected because its journal
	// record could not be written. Nothing was applied.
	ErrJournal = errors.New("journal append failed")
)
