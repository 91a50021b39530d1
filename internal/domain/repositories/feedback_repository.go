package repositories

import (
	"context"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
)

// FeedbackRepository defines the interface for feedback operations.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entities.Feedback) error
	GetByID(ctx context.Context, id int64) (*entities.Feedback, error)
	GetByUserAndBooking(ctx context.Context, userID, bookingID int64) (*entities.Feedback, error)
	List(ctx context.Context) ([]*entities.Feedback, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.Feedback, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]*entities.Feedback, error)
	Update(ctx context.Context, feedback *entities.Feedback) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}
