package repository

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Dias221467/Wish_Collector/internal/models"
	"github.com/google/uuid"
)

// WishStore persists wishes in acceptance order.
//
// Append assigns ID and CreatedAt, persists the wish after every record
// committed before it and returns the stored copy. LoadAll returns every
// record in commit order. Implementations must be safe for concurrent use.
type WishStore interface {
	Append(ctx context.Context, wish *models.Wish) (*models.Wish, error)
	LoadAll(ctx context.Context) ([]models.Wish, error)
}

// StoreErrorKind classifies a failed store operation for operators.
type StoreErrorKind string

const (
	DirectoryUnavailable StoreErrorKind = "directory_unavailable"
	FileOpenFailed       StoreErrorKind = "file_open_failed"
	LockFailed           StoreErrorKind = "lock_failed"
	ReadFailed           StoreErrorKind = "read_failed"
	EncodeFailed         StoreErrorKind = "encode_failed"
	WriteFailed          StoreErrorKind = "write_failed"
	BackendFailed        StoreErrorKind = "backend_failed"
)

// StoreError wraps the cause of a failed store operation.
type StoreError struct {
	Kind StoreErrorKind
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("store %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("store %s (%s): %v", e.Kind, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IDGenerator produces unique record identifiers.
type IDGenerator interface {
	NewID() string
}

// Clock reports the time used to stamp new records.
type Clock interface {
	Now() time.Time
}

// UUIDGenerator returns random 128-bit identifiers as 32 lowercase hex characters.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// SystemClock reads the local wall clock, truncated to whole seconds.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().Truncate(time.Second)
}

// stamp fills the store-owned fields on a copy of wish.
func stamp(wish *models.Wish, ids IDGenerator, clock Clock) models.Wish {
	record := *wish
	record.ID = ids.NewID()
	record.CreatedAt = clock.Now()
	return record
}
