package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"

	"github.com/peitrae/tandain-auth/app/domain"
	apperrors "github.com/peitrae/tandain-auth/app/utils/errors"
	"github.com/peitrae/tandain-auth/app/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUserRepository(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)
	repo := NewUserRepository(mockDB, testLogger).(*UserRepository)

	return repo, mockDB
}

func userColumns() []string {
	return []string{"id", "name", "email", "photo_url", "created_at"}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	photoURL := "https://x/a.png"
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		email       string
		setupDB     func(pgxmock.PgxPoolIface)
		wantUser    *domain.User
		wantErrCode apperrors.ErrorCode
	}{
		{
			name:  "found",
			email: "ada@example.com",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(userColumns()).
					AddRow(int64(1), "Ada", "ada@example.com", &photoURL, createdAt)
				mockDB.ExpectQuery("SELECT id, name, email, photo_url, created_at").
					WithArgs("ada@example.com").
					WillReturnRows(rows)
			},
			wantUser: &domain.User{
				ID:        1,
				Name:      "Ada",
				Email:     "ada@example.com",
				PhotoURL:  &photoURL,
				CreatedAt: createdAt,
			},
		},
		{
			name:  "missing row is not an error",
			email: "nobody@example.com",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT id, name, email, photo_url, created_at").
					WithArgs("nobody@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name:  "database outage",
			email: "ada@example.com",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT id, name, email, photo_url, created_at").
					WithArgs("ada@example.com").
					WillReturnError(errors.New("connection refused"))
			},
			wantErrCode: apperrors.ErrCodeIdentityStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestUserRepository(t)
			defer mockDB.Close()
			tt.setupDB(mockDB)

			user, err := repo.GetByEmail(context.Background(), tt.email)

			if tt.wantErrCode != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, tt.wantErrCode))
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUser, user)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mockDB := createTestUserRepository(t)
		defer mockDB.Close()

		rows := pgxmock.NewRows(userColumns()).
			AddRow(int64(1), "Ada", "ada@example.com", (*string)(nil), createdAt)
		mockDB.ExpectQuery("SELECT id, name, email, photo_url, created_at").
			WithArgs(int64(1)).
			WillReturnRows(rows)

		user, err := repo.GetByID(context.Background(), 1)

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, int64(1), user.ID)
		assert.Nil(t, user.PhotoURL)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("missing row returns nil without error", func(t *testing.T) {
		repo, mockDB := createTestUserRepository(t)
		defer mockDB.Close()

		mockDB.ExpectQuery("SELECT id, name, email, photo_url, created_at").
			WithArgs(int64(42)).
			WillReturnError(pgx.ErrNoRows)

		user, err := repo.GetByID(context.Background(), 42)

		require.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestUserRepository_Create(t *testing.T) {
	photoURL := "https://x/a.png"

	tests := []struct {
		name        string
		user        *domain.User
		setupDB     func(pgxmock.PgxPoolIface)
		wantErrCode apperrors.ErrorCode
	}{
		{
			name: "success fills generated fields",
			user: &domain.User{Name: "Ada", Email: "ada@example.com", PhotoURL: &photoURL},
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).
					AddRow(int64(1), time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
				mockDB.ExpectQuery("INSERT INTO users").
					WithArgs("Ada", "ada@example.com", &photoURL).
					WillReturnRows(rows)
			},
		},
		{
			name: "unique violation maps to duplicate email",
			user: &domain.User{Name: "Ada", Email: "ada@example.com"},
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("INSERT INTO users").
					WithArgs("Ada", "ada@example.com", (*string)(nil)).
					WillReturnError(&pgconn.PgError{
						Code:           "23505",
						ConstraintName: "users_email_key",
					})
			},
			wantErrCode: apperrors.ErrCodeDuplicateEmail,
		},
		{
			name: "other failures map to store outage",
			user: &domain.User{Name: "Ada", Email: "ada@example.com"},
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("INSERT INTO users").
					WithArgs("Ada", "ada@example.com", (*string)(nil)).
					WillReturnError(errors.New("connection refused"))
			},
			wantErrCode: apperrors.ErrCodeIdentityStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestUserRepository(t)
			defer mockDB.Close()
			tt.setupDB(mockDB)

			err := repo.Create(context.Background(), tt.user)

			if tt.wantErrCode != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, tt.wantErrCode))
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), tt.user.ID)
				assert.False(t, tt.user.CreatedAt.IsZero())
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}
