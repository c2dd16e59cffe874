package lib

import (
	"fmt"
)

type ErrorI interface {
	Code() ErrorCode     // Returns the error code
	Module() ErrorModule // Returns the error module
	error                // Implements the built-in error interface
}

var _ ErrorI = &Error{} // Ensures *Error implements ErrorI

type ErrorCode uint32 // Defines a type for error codes

type ErrorModule string // Defines a type for error modules

type Error struct {
	ECode   ErrorCode   `json:"code"`   // Error code
	EModule ErrorModule `json:"module"` // Error module
	Msg     string      `json:"msg"`    // Error message
}

func NewError(code ErrorCode, module ErrorModule, msg string) *Error {
	// Constructs a new Error instance
	return &Error{ECode: code, EModule: module, Msg: msg}
}

// Code() returns the associated error code
func (p *Error) Code() ErrorCode { return p.ECode }

// Module() returns module field
func (p *Error) Module() ErrorModule { return p.EModule }

// String() calls Error()
func (p *Error) String() string { return p.Error() }

// Error() returns a formatted string including module, code, and message
func (p *Error) Error() string {
	return fmt.Sprintf("\nModule:  %s\nCode:    %d\nMessage: %s", p.EModule, p.ECode, p.Msg)
}

const (
	// Main Module
	MainModule ErrorModule = "main"

	// Main Module Error Codes
	CodeJSONMarshal   ErrorCode = 1
	CodeJSONUnmarshal ErrorCode = 2
	CodeWriteFile     ErrorCode = 3
	CodeReadFile      ErrorCode = 4
	CodeLogWrite      ErrorCode = 5

	// Consensus (engine contract) Module
	ConsensusModule ErrorModule = "bft"

	// Consensus Module Error Codes
	CodeTemporalBlock ErrorCode = 1
	CodeFatalBlock    ErrorCode = 2

	// Tributary Module
	TributaryModule ErrorModule = "tributary"

	// Tributary Module Error Codes
	CodeEmptyValidatorSet     ErrorCode = 1
	CodeZeroWeight            ErrorCode = 2
	CodeDuplicateValidator    ErrorCode = 3
	CodeInvalidValidatorKey   ErrorCode = 4
	CodeValidatorNotInSet     ErrorCode = 5
	CodeMalformedBlock        ErrorCode = 6
	CodeMissingProvided       ErrorCode = 7
	CodeSignerClosed          ErrorCode = 8
	CodeZeroNonce             ErrorCode = 9
	CodeNonceHygiene          ErrorCode = 10
	CodeInvalidBlockAtCommit  ErrorCode = 11
	CodeSafetyViolation       ErrorCode = 12
	CodeAddBlockInterrupted   ErrorCode = 13
	CodeInvalidSecretKey      ErrorCode = 14
	CodeTransportUnconfigured ErrorCode = 15
)

// nonRecoverable holds the (module, code) pairs that signal the chain must halt
// participation; supervisors treat these as halt-and-alert, never as retryable
var nonRecoverable = map[ErrorModule]map[ErrorCode]struct{}{
	TributaryModule: {
		CodeZeroNonce:            {},
		CodeNonceHygiene:         {},
		CodeInvalidBlockAtCommit: {},
		CodeSafetyViolation:      {},
	},
}

// IsNonRecoverable() reports whether the error signals an unrecoverable fault for the
// chain's participation, like a safety violation or a secret-hygiene assertion failure
func IsNonRecoverable(err error) bool {
	// nil errors are trivially recoverable
	if err == nil {
		return false
	}
	// only module errors can carry the non-recoverable codes
	e, ok := err.(ErrorI)
	if !ok {
		return false
	}
	// look up the (module, code) pair
	codes, ok := nonRecoverable[e.Module()]
	if !ok {
		return false
	}
	_, ok = codes[e.Code()]
	return ok
}

func ErrJSONMarshal(err error) ErrorI {
	return NewError(CodeJSONMarshal, MainModule, fmt.Sprintf("json.Marshal() failed with err: %s", err.Error()))
}

func ErrJSONUnmarshal(err error) ErrorI {
	return NewError(CodeJSONUnmarshal, MainModule, fmt.Sprintf("json.Unmarshal() failed with err: %s", err.Error()))
}

func ErrWriteFile(err error) ErrorI {
	return NewError(CodeWriteFile, MainModule, fmt.Sprintf("os.WriteFile() failed with err: %s", err.Error()))
}

func ErrReadFile(err error) ErrorI {
	return NewError(CodeReadFile, MainModule, fmt.Sprintf("os.ReadFile() failed with err: %s", err.Error()))
}

func newLogError(err error) ErrorI {
	return NewError(CodeLogWrite, MainModule, fmt.Sprintf("log write failed with err: %s", err.Error()))
}
