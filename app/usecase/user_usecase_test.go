package usecase

import (
	"context"
	"log/slog"
	"testing"

	"github.com/peitrae/tandain-auth/app/domain"
	mock_port "github.com/peitrae/tandain-auth/app/mocks"
	apperrors "github.com/peitrae/tandain-auth/app/utils/errors"
	"github.com/peitrae/tandain-auth/app/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	l, err := logger.New("debug")
	require.NoError(t, err)
	return l
}

func TestUserUsecase_GetUserByID(t *testing.T) {
	tests := []struct {
		name        string
		id          int64
		setupMocks  func(*mock_port.MockIdentityResolver)
		wantErrCode apperrors.ErrorCode
		wantUser    *domain.User
	}{
		{
			name: "returns the user when it exists",
			id:   1,
			setupMocks: func(m *mock_port.MockIdentityResolver) {
				m.EXPECT().
					GetByID(gomock.Any(), int64(1)).
					Return(&domain.User{ID: 1, Name: "Ada", Email: "ada@example.com"}, nil)
			},
			wantUser: &domain.User{ID: 1, Name: "Ada", Email: "ada@example.com"},
		},
		{
			name: "missing user maps to not found",
			id:   42,
			setupMocks: func(m *mock_port.MockIdentityResolver) {
				m.EXPECT().
					GetByID(gomock.Any(), int64(42)).
					Return(nil, nil)
			},
			wantErrCode: apperrors.ErrCodeNotFound,
		},
		{
			name: "store errors pass through",
			id:   1,
			setupMocks: func(m *mock_port.MockIdentityResolver) {
				m.EXPECT().
					GetByID(gomock.Any(), int64(1)).
					Return(nil, apperrors.New(apperrors.ErrCodeIdentityStoreUnavailable, "failed to look up user by id"))
			},
			wantErrCode: apperrors.ErrCodeIdentityStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			resolver := mock_port.NewMockIdentityResolver(ctrl)
			tt.setupMocks(resolver)

			uc := NewUserUseCase(resolver, testLogger(t))
			user, err := uc.GetUserByID(context.Background(), tt.id)

			if tt.wantErrCode != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, tt.wantErrCode))
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUser, user)
			}
		})
	}
}
