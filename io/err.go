package io

import (
	"errors"

	"github.com/ezrec/austin/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageTruncated = errors.New(f("truncated image"))
)

// ErrImageOffset locates a malformed byte in an image.
type ErrImageOffset struct {
	Offset int
	Err    error
}

func (err *ErrImageOffset) Error() string {
	return f("byte offset %d %v", err.Offset, err.Err)
}

func (err *ErrImageOffset) Unwrap() error {
	return err.Err
}
