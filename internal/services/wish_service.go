package services

import (
	"context"
	"errors"

	"github.com/Dias221467/Wish_Collector/internal/models"
	"github.com/Dias221467/Wish_Collector/internal/repository"
	"github.com/Dias221467/Wish_Collector/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// ErrWishNotFound is returned by GetWish when no record has the given ID.
var ErrWishNotFound = errors.New("wish not found")

// WishService validates submissions and hands accepted ones to the store.
type WishService struct {
	store repository.WishStore
}

func NewWishService(store repository.WishStore) *WishService {
	return &WishService{store: store}
}

// SubmitWish validates the raw input and appends the resulting record.
// It returns a *ValidationError for rejected input and a *repository.StoreError
// when the store could not persist the record.
func (s *WishService) SubmitWish(ctx context.Context, in models.WishInput) (*models.Wish, error) {
	wish, err := ValidateWish(in)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			metrics.ValidationFailures.WithLabelValues(string(verr.Kind)).Inc()
		}
		metrics.Submissions.WithLabelValues("rejected").Inc()
		logrus.WithError(err).Info("Wish submission rejected")
		return nil, err
	}

	created, err := s.store.Append(ctx, wish)
	if err != nil {
		metrics.Submissions.WithLabelValues("store_error").Inc()
		return nil, err
	}

	metrics.Submissions.WithLabelValues("created").Inc()
	logrus.WithFields(logrus.Fields{
		"wishID":   created.ID,
		"category": created.Category,
	}).Info("Wish stored")
	return created, nil
}

// ListWishes returns every stored wish in acceptance order.
func (s *WishService) ListWishes(ctx context.Context) ([]models.Wish, error) {
	return s.store.LoadAll(ctx)
}

// CountWishes returns the number of stored wishes.
func (s *WishService) CountWishes(ctx context.Context) (int, error) {
	wishes, err := s.store.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(wishes), nil
}

// GetWish looks up a single wish by ID.
func (s *WishService) GetWish(ctx context.Context, id string) (*models.Wish, error) {
	wishes, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range wishes {
		if wishes[i].ID == id {
			return &wishes[i], nil
		}
	}
	return nil, ErrWishNotFound
}
