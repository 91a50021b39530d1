package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	"github.com/zatekoja/shortstay/backend/internal/domain/repositories"
)

// Mocks

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) DeleteByEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockUserRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) MostBookedDays(ctx context.Context) (*entities.UserBookedDays, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserBookedDays), args.Error(1)
}

type MockHostRepository struct {
	mock.Mock
}

func (m *MockHostRepository) Create(ctx context.Context, host *entities.Host) error {
	return m.Called(ctx, host).Error(0)
}

func (m *MockHostRepository) GetByID(ctx context.Context, id int64) (*entities.Host, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Host), args.Error(1)
}

func (m *MockHostRepository) GetByUserID(ctx context.Context, userID int64) (*entities.Host, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Host), args.Error(1)
}

func (m *MockHostRepository) GetByHostCode(ctx context.Context, hostCode string) (*entities.Host, error) {
	args := m.Called(ctx, hostCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Host), args.Error(1)
}

func (m *MockHostRepository) List(ctx context.Context) ([]*entities.Host, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Host), args.Error(1)
}

func (m *MockHostRepository) ListSuperHosts(ctx context.Context) ([]*entities.Host, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Host), args.Error(1)
}

func (m *MockHostRepository) UpdateSuperHostStatus(ctx context.Context, id int64, isSuperHost bool) error {
	return m.Called(ctx, id, isSuperHost).Error(0)
}

func (m *MockHostRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockHostRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockResidenceRepository struct {
	mock.Mock
}

func (m *MockResidenceRepository) Create(ctx context.Context, residence *entities.Residence) error {
	return m.Called(ctx, residence).Error(0)
}

func (m *MockResidenceRepository) GetByID(ctx context.Context, id int64) (*entities.Residence, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Residence), args.Error(1)
}

func (m *MockResidenceRepository) GetByAddressAndFloor(ctx context.Context, address string, floor int) (*entities.Residence, error) {
	args := m.Called(ctx, address, floor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Residence), args.Error(1)
}

func (m *MockResidenceRepository) List(ctx context.Context) ([]*entities.Residence, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Residence), args.Error(1)
}

func (m *MockResidenceRepository) ListByHostID(ctx context.Context, hostID int64) ([]*entities.Residence, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]*entities.Residence), args.Error(1)
}

func (m *MockResidenceRepository) ListByHostCode(ctx context.Context, hostCode string) ([]*entities.Residence, error) {
	args := m.Called(ctx, hostCode)
	return args.Get(0).([]*entities.Residence), args.Error(1)
}

func (m *MockResidenceRepository) Update(ctx context.Context, residence *entities.Residence) error {
	return m.Called(ctx, residence).Error(0)
}

func (m *MockResidenceRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockResidenceRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResidenceRepository) MostPopularSince(ctx context.Context, since time.Time) (*entities.ResidencePopularity, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ResidencePopularity), args.Error(1)
}

// runCheck feeds the optional second return value of an Exclusive call to check
func runCheck(args mock.Arguments, check repositories.BookingCheck) error {
	if len(args) < 2 {
		return nil
	}
	existing, ok := args.Get(1).([]*entities.Booking)
	if !ok {
		return nil
	}
	return check(existing)
}

// MockBookingRepository runs the check it is given against the bookings
// returned as the second value of CreateExclusive/UpdateExclusive.
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateExclusive(ctx context.Context, booking *entities.Booking, check repositories.BookingCheck) error {
	args := m.Called(ctx, booking)
	if err := runCheck(args, check); err != nil {
		return err
	}
	if err := args.Error(0); err != nil {
		return err
	}
	booking.ID = 100
	return nil
}

func (m *MockBookingRepository) UpdateExclusive(ctx context.Context, booking *entities.Booking, check repositories.BookingCheck) error {
	args := m.Called(ctx, booking)
	if err := runCheck(args, check); err != nil {
		return err
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*entities.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context) ([]*entities.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByResidence(ctx context.Context, residenceID int64) ([]*entities.Booking, error) {
	args := m.Called(ctx, residenceID)
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) LastByUser(ctx context.Context, userID int64) (*entities.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) CountByHostCode(ctx context.Context, hostCode string) (int64, error) {
	args := m.Called(ctx, hostCode)
	return args.Get(0).(int64), args.Error(1)
}

type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *entities.Feedback) error {
	return m.Called(ctx, feedback).Error(0)
}

func (m *MockFeedbackRepository) GetByID(ctx context.Context, id int64) (*entities.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) GetByUserAndBooking(ctx context.Context, userID, bookingID int64) (*entities.Feedback, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) List(ctx context.Context) ([]*entities.Feedback, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.Feedback, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*entities.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) ListByBooking(ctx context.Context, bookingID int64) ([]*entities.Feedback, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]*entities.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) Update(ctx context.Context, feedback *entities.Feedback) error {
	return m.Called(ctx, feedback).Error(0)
}

func (m *MockFeedbackRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFeedbackRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.BookingEvent) error {
	return m.Called(ctx, channel, event).Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan *entities.BookingEvent), args.Error(1)
}

func (m *MockEventBus) Unsubscribe(ctx context.Context, channel string) error {
	return m.Called(ctx, channel).Error(0)
}

func (m *MockEventBus) Close() error {
	return m.Called().Error(0)
}
