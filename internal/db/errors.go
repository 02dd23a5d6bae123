package db

import "errors"

var (
	// ErrNotFound is returned when a document does not exist in Firestore.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned when a conditional create loses to an
	// existing document.
	ErrAlreadyExists = errors.New("document already exists")
)
