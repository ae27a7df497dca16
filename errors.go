package arsenic

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable, numeric failure domain shared across every
// component. Values are ordinal and part of the contract with callers
// across a language boundary; never reorder them.
type ErrorCode int

const (
	CryptSuccess           ErrorCode = 0
	DecryptSuccess         ErrorCode = 1
	DecryptFail            ErrorCode = 2
	NotAnArsenicFile       ErrorCode = 3
	SrcNotFound            ErrorCode = 4
	SrcCannotOpenRead      ErrorCode = 5
	DesFileExists          ErrorCode = 6
	DesCannotOpenWrite     ErrorCode = 7
	SrcHeaderReadError     ErrorCode = 8
	AbortedByUser          ErrorCode = 9
	InvalidCryptoboxInput  ErrorCode = 10
	BadCryptoboxVersion    ErrorCode = 11
	BadCryptoboxPemHeader  ErrorCode = 12
	EmptyPassword          ErrorCode = 13
)

var errorCodeNames = map[ErrorCode]string{
	CryptSuccess:          "CryptSuccess",
	DecryptSuccess:        "DecryptSuccess",
	DecryptFail:           "DecryptFail",
	NotAnArsenicFile:      "NotAnArsenicFile",
	SrcNotFound:           "SrcNotFound",
	SrcCannotOpenRead:     "SrcCannotOpenRead",
	DesFileExists:         "DesFileExists",
	DesCannotOpenWrite:    "DesCannotOpenWrite",
	SrcHeaderReadError:    "SrcHeaderReadError",
	AbortedByUser:         "AbortedByUser",
	InvalidCryptoboxInput: "InvalidCryptoboxInput",
	BadCryptoboxVersion:   "BadCryptoboxVersion",
	BadCryptoboxPemHeader: "BadCryptoboxPemHeader",
	EmptyPassword:         "EmptyPassword",
}

// String returns the stable name of the error code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error is the error type returned at every component boundary. It always
// carries one of the fourteen stable codes plus the path involved, if any,
// and wraps the underlying cause for errors.Is/errors.As.
type Error struct {
	Code ErrorCode
	Path string // file path, if applicable
	Err  error  // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Path)
	}
	return e.Code.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an Error carrying the given code and optional cause.
func NewError(code ErrorCode, path string, err error) *Error {
	return &Error{Code: code, Path: path, Err: err}
}

// CodeOf extracts the ErrorCode carried by err, if any. Errors not produced
// by this package report CryptSuccess's zero value is not assumed: ok is
// false when err does not wrap an *Error.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}
