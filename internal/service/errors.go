package service

import "errors"

var (
	// ErrUnauthenticated covers every rejected credential: missing, unknown,
	// expired, revoked or owned by a non-admin.
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrSolicitudNotFound = errors.New("solicitud not found")
	ErrFileNotFound      = errors.New("file not found")
	ErrFileMissing       = errors.New("file not found on disk")
)
