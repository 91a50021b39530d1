package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, user *entities.User, password string) error {
	return m.Called(ctx, user, password).Error(0)
}

func (m *MockUserService) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, user *entities.User, password string) error {
	return m.Called(ctx, user, password).Error(0)
}

func (m *MockUserService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserService) DeleteByEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockUserService) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserService) MostBookedDays(ctx context.Context) (*entities.UserBookedDays, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserBookedDays), args.Error(1)
}

type MockHostService struct {
	mock.Mock
}

func (m *MockHostService) PromoteUser(ctx context.Context, userID int64) (*entities.Host, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Host), args.Error(1)
}

func (m *MockHostService) GetByID(ctx context.Context, id int64) (*entities.Host, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Host), args.Error(1)
}

func (m *MockHostService) GetByHostCode(ctx context.Context, hostCode string) (*entities.Host, error) {
	args := m.Called(ctx, hostCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Host), args.Error(1)
}

func (m *MockHostService) List(ctx context.Context) ([]*entities.Host, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Host), args.Error(1)
}

func (m *MockHostService) ListSuperHosts(ctx context.Context) ([]*entities.Host, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Host), args.Error(1)
}

func (m *MockHostService) Update(ctx context.Context, host *entities.Host) (*entities.Host, error) {
	args := m.Called(ctx, host)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Host), args.Error(1)
}

func (m *MockHostService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockHostService) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHostService) CountBookingsByHostCode(ctx context.Context, hostCode string) (int64, error) {
	args := m.Called(ctx, hostCode)
	return args.Get(0).(int64), args.Error(1)
}

type MockResidenceService struct {
	mock.Mock
}

func (m *MockResidenceService) Create(ctx context.Context, hostID int64, residence *entities.Residence) error {
	return m.Called(ctx, hostID, residence).Error(0)
}

func (m *MockResidenceService) GetByID(ctx context.Context, id int64) (*entities.Residence, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Residence), args.Error(1)
}

func (m *MockResidenceService) GetByAddressAndFloor(ctx context.Context, address string, floor int) (*entities.Residence, error) {
	args := m.Called(ctx, address, floor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Residence), args.Error(1)
}

func (m *MockResidenceService) List(ctx context.Context) ([]*entities.Residence, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Residence), args.Error(1)
}

func (m *MockResidenceService) ListByHostID(ctx context.Context, hostID int64) ([]*entities.Residence, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Residence), args.Error(1)
}

func (m *MockResidenceService) ListByHostCode(ctx context.Context, hostCode string) ([]*entities.Residence, error) {
	args := m.Called(ctx, hostCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Residence), args.Error(1)
}

func (m *MockResidenceService) Update(ctx context.Context, residence *entities.Residence) error {
	return m.Called(ctx, residence).Error(0)
}

func (m *MockResidenceService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockResidenceService) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResidenceService) MostPopularLastMonth(ctx context.Context) (*entities.ResidencePopularity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ResidencePopularity), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, booking *entities.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingService) GetByID(ctx context.Context, id int64) (*entities.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingService) List(ctx context.Context) ([]*entities.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingService) ListByResidence(ctx context.Context, residenceID int64) ([]*entities.Booking, error) {
	args := m.Called(ctx, residenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingService) ListByUser(ctx context.Context, userID int64) ([]*entities.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingService) LastByUser(ctx context.Context, userID int64) (*entities.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingService) Update(ctx context.Context, booking *entities.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingService) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) Create(ctx context.Context, feedback *entities.Feedback) error {
	return m.Called(ctx, feedback).Error(0)
}

func (m *MockFeedbackService) GetByID(ctx context.Context, id int64) (*entities.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Feedback), args.Error(1)
}

func (m *MockFeedbackService) GetByUserAndBooking(ctx context.Context, userID, bookingID int64) (*entities.Feedback, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Feedback), args.Error(1)
}

func (m *MockFeedbackService) List(ctx context.Context) ([]*entities.Feedback, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Feedback), args.Error(1)
}

func (m *MockFeedbackService) ListByUser(ctx context.Context, userID int64) ([]*entities.Feedback, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Feedback), args.Error(1)
}

func (m *MockFeedbackService) ListByBooking(ctx context.Context, bookingID int64) ([]*entities.Feedback, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Feedback), args.Error(1)
}

func (m *MockFeedbackService) Update(ctx context.Context, feedback *entities.Feedback) error {
	return m.Called(ctx, feedback).Error(0)
}

func (m *MockFeedbackService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFeedbackService) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
