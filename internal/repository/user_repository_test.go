package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"redsocial/internal/models"
)

func newMockUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewUserRepository(sqlxDB), mock, func() { db.Close() }
}

func TestUserRepository_CreateUser(t *testing.T) {
	repo, mock, closeDB := newMockUserRepo(t)
	defer closeDB()

	ctx := context.Background()
	password := "password123"

	t.Run("success", func(t *testing.T) {
		user := &models.User{
			Username: "ana",
			Email:    "ana@example.com",
		}

		mock.ExpectExec(`
			INSERT INTO users (username, email, password_hash, bio, avatar_url, language)
			VALUES (?, ?, ?, ?, ?, ?)
		`).
			WithArgs(
				"ana",
				"ana@example.com",
				sqlmock.AnyArg(), // password_hash
				"",
				"",
				"en",
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateUser(ctx, user, password)

		assert.NoError(t, err)
		assert.NotEqual(t, password, user.PasswordHash)
		assert.Equal(t, "en", user.Language)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		user := &models.User{
			Username: "ana2",
			Email:    "ana@example.com",
		}

		mock.ExpectExec(`
			INSERT INTO users (username, email, password_hash, bio, avatar_url, language)
			VALUES (?, ?, ?, ?, ?, ?)
		`).
			WithArgs("ana2", "ana@example.com", sqlmock.AnyArg(), "", "", "en").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateUser(ctx, user, password)

		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestUserRepository_GetUserByUsername(t *testing.T) {
	repo, mock, closeDB := newMockUserRepo(t)
	defer closeDB()

	ctx := context.Background()
	columns := []string{"username", "email", "password_hash", "bio", "avatar_url", "language"}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs("ana").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("ana", "ana@example.com", "hash", "hi", "", "es"))

		user, err := repo.GetUserByUsername(ctx, "ana")

		require.NoError(t, err)
		assert.Equal(t, "ana", user.Username)
		assert.Equal(t, "hi", user.Bio)
		assert.Equal(t, "es", user.Language)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByUsername(ctx, "ghost")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	repo, mock, closeDB := newMockUserRepo(t)
	defer closeDB()

	ctx := context.Background()
	columns := []string{"username", "email", "password_hash", "bio", "avatar_url", "language"}

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs("ana@example.com").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("ana", "ana@example.com", string(hash), "", "", "en"))

		user, err := repo.VerifyPassword(ctx, "ana@example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "ana", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs("ana@example.com").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("ana", "ana@example.com", string(hash), "", "", "en"))

		user, err := repo.VerifyPassword(ctx, "ana@example.com", "wrong")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.VerifyPassword(ctx, "ghost@example.com", "secret123")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	repo, mock, closeDB := newMockUserRepo(t)
	defer closeDB()

	ctx := context.Background()
	query := `
		UPDATE users
		SET bio        = COALESCE($2, bio),
		    language   = COALESCE($3, language),
		    avatar_url = COALESCE($4, avatar_url)
		WHERE username = $1
	`

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		bio := "new bio"

		mock.ExpectExec(query).
			WithArgs("ana", bio, nil, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateProfile(ctx, UpdateProfileRequest{Username: "ana", Bio: &bio})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		bio := "new bio"

		mock.ExpectExec(query).
			WithArgs("ghost", bio, nil, nil).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateProfile(ctx, UpdateProfileRequest{Username: "ghost", Bio: &bio})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
