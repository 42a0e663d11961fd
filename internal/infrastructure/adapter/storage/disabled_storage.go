package storage

import (
	"context"
	"errors"
	"io"

	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
)

// ErrStorageDisabled is returned when uploads are attempted without an object store
var ErrStorageDisabled = errors.New("file storage is not configured")

// DisabledStorage rejects uploads. Products without files still work.
type DisabledStorage struct{}

var _ coreport.FileStorage = DisabledStorage{}

func (DisabledStorage) Upload(context.Context, string, string, string, io.Reader) (string, error) {
	return "", ErrStorageDisabled
}

func (DisabledStorage) Delete(context.Context, string) error {
	return nil
}
