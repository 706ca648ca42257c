package blobledger

import (
	"errors"
	"fmt"

	azStorageBlob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

const (
	azblobBlobNotFound      = "BlobNotFound"
	azblobBlobAlreadyExists = "BlobAlreadyExists"
	azblobConditionNotMet   = "ConditionNotMet"
)

var (
	ErrBlobNotFound = errors.New("blob not found")
	ErrBlobExists   = errors.New("blob already exists")
)

func AsStorageError(err error) (azStorageBlob.StorageError, bool) {
	serr := &azStorageBlob.StorageError{}
	//nolint
	ierr, ok := err.(*azStorageBlob.InternalError)
	if ierr == nil || !ok {
		return azStorageBlob.StorageError{}, false
	}
	if !ierr.As(&serr) {
		return azStorageBlob.StorageError{}, false
	}
	return *serr, true
}

func hasErrorCode(err error, codes ...string) bool {
	serr, ok := AsStorageError(err)
	if !ok {
		return false
	}
	for _, code := range codes {
		if string(serr.ErrorCode) == code {
			return true
		}
	}
	return false
}

// IsBlobNotFound is true for ErrBlobNotFound and for the azure sdk blob not
// found error.
func IsBlobNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrBlobNotFound) {
		return true
	}
	return hasErrorCode(err, azblobBlobNotFound)
}

// IsBlobExists is true when a create-only put found the blob already
// present. Azure reports this as either BlobAlreadyExists or, for a failed
// If-None-Match precondition, ConditionNotMet.
func IsBlobExists(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrBlobExists) {
		return true
	}
	return hasErrorCode(err, azblobBlobAlreadyExists, azblobConditionNotMet)
}

// wrapConflict wraps err with sentinel if err is a create conflict. All other
// errors, including nil, are returned as is.
func wrapConflict(err error, sentinel error) error {
	if !IsBlobExists(err) {
		return err
	}
	return fmt.Errorf("%s: %w", err.Error(), sentinel)
}
