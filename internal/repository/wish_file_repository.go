package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Dias221467/Wish_Collector/internal/models"
	"github.com/Dias221467/Wish_Collector/pkg/lock"
	"github.com/Dias221467/Wish_Collector/pkg/metrics"
	"github.com/sirupsen/logrus"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileWishRepository keeps every wish in a single JSON array file.
// Each operation opens its own handle and holds an exclusive lock on it for
// the whole read-modify-write cycle.
type FileWishRepository struct {
	path   string
	ids    IDGenerator
	clock  Clock
	locker lock.Locker

	openFile func(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileOption customizes a FileWishRepository.
type FileOption func(*FileWishRepository)

func WithIDGenerator(ids IDGenerator) FileOption {
	return func(r *FileWishRepository) { r.ids = ids }
}

func WithClock(clock Clock) FileOption {
	return func(r *FileWishRepository) { r.clock = clock }
}

func WithLocker(locker lock.Locker) FileOption {
	return func(r *FileWishRepository) { r.locker = locker }
}

func NewFileWishRepository(path string, opts ...FileOption) *FileWishRepository {
	r := &FileWishRepository{
		path:   path,
		ids:    UUIDGenerator{},
		clock:  SystemClock{},
		locker: lock.Flock{},

		openFile: os.OpenFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the location of the backing file.
func (r *FileWishRepository) Path() string {
	return r.path
}

// Append adds wish to the end of the stored array. Existing elements are kept
// byte-for-byte apart from re-indentation, even when they do not decode as a
// Wish. Content that is not a JSON array is discarded and replaced.
func (r *FileWishRepository) Append(ctx context.Context, wish *models.Wish) (*models.Wish, error) {
	if err := os.MkdirAll(filepath.Dir(r.path), dirPerm); err != nil {
		return nil, r.fail(DirectoryUnavailable, err)
	}

	f, err := r.openFile(r.path, os.O_RDWR|os.O_CREATE, filePerm)
	if err != nil {
		return nil, r.fail(FileOpenFailed, err)
	}
	defer f.Close()

	if err := r.lock(ctx, f); err != nil {
		return nil, err
	}
	defer r.unlock(f)

	elems, err := r.readRaw(f)
	if err != nil {
		return nil, err
	}

	record := stamp(wish, r.ids, r.clock)
	encoded, err := marshalRecord(record)
	if err != nil {
		return nil, r.fail(EncodeFailed, err)
	}
	elems = append(elems, encoded)

	payload, err := encode(elems)
	if err != nil {
		return nil, r.fail(EncodeFailed, err)
	}

	if err := f.Truncate(0); err != nil {
		return nil, r.fail(WriteFailed, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, r.fail(WriteFailed, err)
	}
	if _, err := f.Write(payload); err != nil {
		return nil, r.fail(WriteFailed, err)
	}
	if err := f.Sync(); err != nil {
		return nil, r.fail(WriteFailed, err)
	}

	logrus.WithFields(logrus.Fields{
		"wishID": record.ID,
		"count":  len(elems),
		"path":   r.path,
	}).Debug("Wish appended to file store")

	return &record, nil
}

// LoadAll returns every stored wish in commit order. A missing file is an
// empty store. Elements that do not decode as a Wish are logged and skipped.
func (r *FileWishRepository) LoadAll(ctx context.Context) ([]models.Wish, error) {
	f, err := r.openFile(r.path, os.O_RDONLY, 0)
	if os.IsNotExist(err) {
		return []models.Wish{}, nil
	}
	if err != nil {
		return nil, r.fail(FileOpenFailed, err)
	}
	defer f.Close()

	if err := r.lock(ctx, f); err != nil {
		return nil, err
	}
	defer r.unlock(f)

	elems, err := r.readRaw(f)
	if err != nil {
		return nil, err
	}

	wishes := make([]models.Wish, 0, len(elems))
	for i, elem := range elems {
		var wish models.Wish
		if err := json.Unmarshal(elem, &wish); err != nil || bytes.Equal(elem, []byte("null")) {
			logrus.WithError(err).WithFields(logrus.Fields{
				"path":  r.path,
				"index": i,
			}).Warn("Skipping stored element that is not a wish")
			continue
		}
		wishes = append(wishes, wish)
	}
	return wishes, nil
}

func (r *FileWishRepository) lock(ctx context.Context, f *os.File) error {
	start := time.Now()
	if err := r.locker.Lock(ctx, f); err != nil {
		return r.fail(LockFailed, err)
	}
	metrics.LockWait.Observe(time.Since(start).Seconds())
	return nil
}

func (r *FileWishRepository) unlock(f *os.File) {
	if err := r.locker.Unlock(f); err != nil {
		logrus.WithError(err).WithField("path", r.path).Error("Failed to release store lock")
	}
}

// readRaw returns the elements of the stored array. Empty content, invalid
// JSON and JSON that is not an array all read as an empty store.
func (r *FileWishRepository) readRaw(f *os.File) ([]json.RawMessage, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, r.fail(ReadFailed, err)
	}
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, r.fail(ReadFailed, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []json.RawMessage{}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		logrus.WithError(err).WithField("path", r.path).Warn("Store file is not a JSON array, treating it as empty")
		return []json.RawMessage{}, nil
	}
	return elems, nil
}

func (r *FileWishRepository) fail(kind StoreErrorKind, err error) error {
	metrics.StoreErrors.WithLabelValues(string(kind)).Inc()
	return &StoreError{Kind: kind, Path: r.path, Err: err}
}

// encode renders the full array in memory so nothing is written until it is complete.
func encode(elems []json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(elems); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalRecord(wish models.Wish) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(wish); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}
