package errutil

import (
	"fmt"
)

type BaseError struct {
	Code    CoreStatus `json:"code"`
	Message string     `json:"message"`
	Err     error      `json:"-"`
}

func (e BaseError) Status() CoreStatus {
	return e.Code
}

func (e BaseError) Unwrap() error {
	return e.Err
}

func (e BaseError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.messageWithErr())
}

func (e BaseError) messageWithErr() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

type Option func(*BaseError)

func WithErr(err error) Option {
	return func(be *BaseError) { be.Err = err }
}

func New(code CoreStatus, message string, opts ...Option) error {
	be := BaseError{Code: code, Message: message}
	for _, opt := range opts {
		opt(&be)
	}
	return be
}

func NotFound(msg string, options ...Option) error {
	return New(StatusNotFound, msg, options...)
}

func Conflict(msg string, options ...Option) error {
	return New(StatusConflict, msg, options...)
}

func Internal(msg string, options ...Option) error {
	return New(StatusInternal, msg, options...)
}

func BackupFailed(msg string, options ...Option) error {
	return New(StatusBackupFailed, msg, options...)
}

func IntegrityCheckFailed(msg string, options ...Option) error {
	return New(StatusIntegrityCheckFailed, msg, options...)
}

func StepExecutionFailed(stepKey string, options ...Option) error {
	return New(StatusStepExecutionFailed, fmt.Sprintf("migration step %q failed", stepKey), options...)
}

func Database(msg string, options ...Option) error {
	return New(StatusDatabase, msg, options...)
}

func Serialization(msg string, options ...Option) error {
	return New(StatusSerialization, msg, options...)
}
