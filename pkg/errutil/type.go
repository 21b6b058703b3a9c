package errutil

import "errors"

// CoreStatus classifies domain errors independently of any transport.
type CoreStatus string

const (
	StatusNotFound CoreStatus = "not_found"
	StatusConflict CoreStatus = "conflict"
	StatusInternal CoreStatus = "internal"
	StatusUnknown  CoreStatus = "unknown"

	// Daily-pipeline taxonomy.
	StatusBackupFailed         CoreStatus = "backup_failed"
	StatusIntegrityCheckFailed CoreStatus = "integrity_check_failed"
	StatusStepExecutionFailed  CoreStatus = "step_execution_failed"
	StatusDatabase             CoreStatus = "database_error"
	StatusSerialization        CoreStatus = "serialization_error"
)

// StatusOf extracts the CoreStatus from an error chain, or StatusUnknown.
func StatusOf(err error) CoreStatus {
	var base BaseError
	if errors.As(err, &base) {
		return base.Code
	}

	var coder interface{ Status() CoreStatus }
	if errors.As(err, &coder) {
		return coder.Status()
	}

	return StatusUnknown
}
