package main

import "errors"

// Sentinel errors for command operations
var (
	ErrLanguageDisabled = errors.New("language is disabled in configuration")
	ErrInputRejected    = errors.New("input rejected")
	ErrCasesFailed      = errors.New("some cases failed")
	ErrNoInput          = errors.New("no input given")
	ErrInputSucceeded   = errors.New("input parsed without error")
)
