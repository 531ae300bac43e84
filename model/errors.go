package model

import "errors"

var (
	ErrSessionNotFound = errors.New("session does not exist")
)
