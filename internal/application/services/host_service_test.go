package services_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/shortstay/backend/internal/application/services"
	"github.com/zatekoja/shortstay/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/shortstay/backend/pkg/errors"
)

var hostCodePattern = regexp.MustCompile(`^HOST-[0-9A-F]{8}$`)

func TestHostService_PromoteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a host with a generated code", func(t *testing.T) {
		hosts := new(MockHostRepository)
		users := new(MockUserRepository)
		users.On("GetByID", ctx, int64(5)).Return(&entities.User{ID: 5, Email: "lin@example.com"}, nil)
		hosts.On("GetByUserID", ctx, int64(5)).Return(nil, apperrors.NewNotFoundError("user 5 is not a host"))
		hosts.On("GetByHostCode", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.NewNotFoundError("no host"))
		hosts.On("Create", ctx, mock.MatchedBy(func(h *entities.Host) bool {
			return h.UserID == 5 && hostCodePattern.MatchString(h.HostCode) && !h.IsSuperHost
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*entities.Host).ID = 3
		}).Return(nil)
		hosts.On("GetByID", ctx, int64(3)).Return(&entities.Host{ID: 3, UserID: 5, Email: "lin@example.com"}, nil)

		host, err := services.NewHostService(hosts, users, new(MockBookingRepository)).PromoteUser(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, int64(3), host.ID)
		assert.Equal(t, "lin@example.com", host.Email)
		hosts.AssertExpectations(t)
	})

	t.Run("regenerates a colliding code", func(t *testing.T) {
		hosts := new(MockHostRepository)
		users := new(MockUserRepository)
		users.On("GetByID", ctx, int64(5)).Return(&entities.User{ID: 5}, nil)
		hosts.On("GetByUserID", ctx, int64(5)).Return(nil, apperrors.NewNotFoundError("user 5 is not a host"))
		hosts.On("GetByHostCode", ctx, mock.AnythingOfType("string")).Return(&entities.Host{ID: 1}, nil).Once()
		hosts.On("GetByHostCode", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.NewNotFoundError("no host")).Once()
		hosts.On("Create", ctx, mock.AnythingOfType("*entities.Host")).Return(nil)
		hosts.On("GetByID", ctx, mock.Anything).Return(&entities.Host{ID: 3}, nil)

		_, err := services.NewHostService(hosts, users, new(MockBookingRepository)).PromoteUser(ctx, 5)

		require.NoError(t, err)
		hosts.AssertNumberOfCalls(t, "GetByHostCode", 2)
	})

	t.Run("existing host is a conflict", func(t *testing.T) {
		hosts := new(MockHostRepository)
		users := new(MockUserRepository)
		users.On("GetByID", ctx, int64(5)).Return(&entities.User{ID: 5}, nil)
		hosts.On("GetByUserID", ctx, int64(5)).Return(&entities.Host{ID: 3, UserID: 5}, nil)

		_, err := services.NewHostService(hosts, users, new(MockBookingRepository)).PromoteUser(ctx, 5)

		assert.True(t, apperrors.IsConflict(err))
		hosts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", ctx, int64(5)).Return(nil, apperrors.NewNotFoundError("user with id 5 not found"))

		_, err := services.NewHostService(new(MockHostRepository), users, new(MockBookingRepository)).PromoteUser(ctx, 5)

		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestHostService_Update_WritesUserFields(t *testing.T) {
	ctx := context.Background()
	hosts := new(MockHostRepository)
	users := new(MockUserRepository)
	hosts.On("GetByID", ctx, int64(3)).Return(&entities.Host{ID: 3, UserID: 5, HostCode: "HOST-0A1B2C3D"}, nil)
	users.On("GetByID", ctx, int64(5)).Return(&entities.User{ID: 5, Email: "lin@example.com", PasswordHash: "hash"}, nil)
	users.On("Update", ctx, mock.MatchedBy(func(u *entities.User) bool {
		return u.ID == 5 && u.FirstName == "Lin" && u.Address == "Harbour Rd" && u.PasswordHash == "hash"
	})).Return(nil)

	_, err := services.NewHostService(hosts, users, new(MockBookingRepository)).Update(ctx, &entities.Host{
		ID: 3, HostCode: "HOST-FFFFFFFF", FirstName: "Lin", Email: "lin@example.com", Address: "Harbour Rd",
	})

	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestHostService_CountBookingsByHostCode(t *testing.T) {
	ctx := context.Background()

	t.Run("counts through residences", func(t *testing.T) {
		hosts := new(MockHostRepository)
		bookings := new(MockBookingRepository)
		hosts.On("GetByHostCode", ctx, "HOST-0A1B2C3D").Return(&entities.Host{ID: 3}, nil)
		bookings.On("CountByHostCode", ctx, "HOST-0A1B2C3D").Return(int64(12), nil)

		count, err := services.NewHostService(hosts, new(MockUserRepository), bookings).CountBookingsByHostCode(ctx, "HOST-0A1B2C3D")

		require.NoError(t, err)
		assert.Equal(t, int64(12), count)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		hosts := new(MockHostRepository)
		hosts.On("GetByHostCode", ctx, "HOST-MISSING0").Return(nil, apperrors.NewNotFoundError("host with code HOST-MISSING0 not found"))

		_, err := services.NewHostService(hosts, new(MockUserRepository), new(MockBookingRepository)).CountBookingsByHostCode(ctx, "HOST-MISSING0")

		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestHostStatusService_RecomputeAllContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	hosts := new(MockHostRepository)
	bookings := new(MockBookingRepository)
	hosts.On("List", ctx).Return([]*entities.Host{
		{ID: 1, HostCode: "HOST-00000001"},
		{ID: 2, HostCode: "HOST-00000002"},
	}, nil)
	bookings.On("CountByHostCode", ctx, "HOST-00000001").Return(int64(0), apperrors.NewInternalError("boom", nil))
	bookings.On("CountByHostCode", ctx, "HOST-00000002").Return(int64(150), nil)
	hosts.On("UpdateSuperHostStatus", ctx, int64(2), true).Return(nil)

	err := services.NewHostStatusService(hosts, bookings, 0, nil).RecomputeAll(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "host 1")
	hosts.AssertCalled(t, "UpdateSuperHostStatus", ctx, int64(2), true)
}

func TestHostStatusService_ConfigurableThreshold(t *testing.T) {
	ctx := context.Background()
	hosts := new(MockHostRepository)
	bookings := new(MockBookingRepository)
	hosts.On("GetByID", ctx, int64(1)).Return(&entities.Host{ID: 1, HostCode: "HOST-00000001"}, nil)
	bookings.On("CountByHostCode", ctx, "HOST-00000001").Return(int64(10), nil)
	hosts.On("UpdateSuperHostStatus", ctx, int64(1), true).Return(nil)

	service := services.NewHostStatusService(hosts, bookings, 10, nil)

	require.NoError(t, service.Recompute(ctx, 1))
	assert.Equal(t, 10, service.Threshold())
	hosts.AssertExpectations(t)
}
