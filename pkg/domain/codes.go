package domain

import "fmt"

// ErrorCode is a structural validation code. The values are part of the
// contract with consumers that key off codes and must stay bit-exact.
type ErrorCode string

const (
	// CodeMissingName: the trimmed name is empty.
	CodeMissingName ErrorCode = "FO1"
	// CodeMissingOutgoing: at least one outgoing sequence flow is required.
	CodeMissingOutgoing ErrorCode = "FO2"
	// CodeNotOneOutgoing: exactly one outgoing sequence flow is required.
	CodeNotOneOutgoing ErrorCode = "FO3"
	// CodeUnexpectedOutgoing: outgoing sequence flows are not allowed.
	CodeUnexpectedOutgoing ErrorCode = "FO4"
	// CodeMissingIncoming: at least one incoming sequence flow is required.
	CodeMissingIncoming ErrorCode = "FO5"
	// CodeUnexpectedIncoming: incoming sequence flows are not allowed.
	// It shares FO5 with CodeMissingIncoming; existing consumers match on FO5 for both.
	CodeUnexpectedIncoming ErrorCode = "FO5"
)

// String returns the wire value of the code.
func (c ErrorCode) String() string { return string(c) }

// Codes lists the distinct wire codes in ascending order.
func Codes() []ErrorCode {
	return []ErrorCode{CodeMissingName, CodeMissingOutgoing, CodeNotOneOutgoing, CodeUnexpectedOutgoing, CodeMissingIncoming}
}

// ValidationError is a single structural finding.
type ValidationError struct {
	Code    ErrorCode `json:"code" yaml:"code"`
	Message string    `json:"message" yaml:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
