package common

import "errors"

var (

	// repository / reader specific errors
	ErrorNotFound = errors.New("not found")

	// input errors, never retried
	ErrorValidation = errors.New("validation error")

	// signer-specific errors
	ErrorSignerUnavailable = errors.New("signer unavailable")
	ErrorUserRejected      = errors.New("user rejected signing request")
	ErrorSignatureInvalid  = errors.New("signature does not verify")

	// fan-out aggregate errors
	ErrorCancelled        = errors.New("operation cancelled")
	ErrorAllRelaysFailed  = errors.New("no relay answered")
	ErrorAllServersFailed = errors.New("no blob server accepted the upload")

	// blob-specific errors
	ErrorTooLarge  = errors.New("payload exceeds upload size limit")
	ErrorIntegrity = errors.New("server hash does not match local hash")
)
