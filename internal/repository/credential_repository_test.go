package repository_test

import (
	"context"
	"testing"
	"time"

	"taskdesk/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestCredentialRepository_Get_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewCredentialRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "credentials" WHERE profile = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"profile", "token", "updated_at"}).
			AddRow("default", "stored-token", time.Now()))

	// Act
	cred, err := repo.Get(context.Background(), "default")

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, cred)
	assert.Equal(t, "stored-token", cred.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepository_Get_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewCredentialRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "credentials" WHERE profile = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"profile", "token", "updated_at"}))

	// Act
	cred, err := repo.Get(context.Background(), "default")

	// Assert
	assert.ErrorIs(t, err, repository.ErrCredentialNotFound)
	assert.Nil(t, cred)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepository_Get_Error(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewCredentialRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "credentials" WHERE profile = .*`).
		WillReturnError(assert.AnError)

	// Act
	cred, err := repo.Get(context.Background(), "default")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, cred)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepository_Save(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewCredentialRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "credentials" .* ON CONFLICT \("profile"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := repo.Save(context.Background(), "default", "new-token")

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileTokens_GetMissingIsEmpty(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	tokens := repository.NewCredentialRepository(gormDB).Profile("work")

	mock.ExpectQuery(`SELECT .* FROM "credentials" WHERE profile = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"profile", "token", "updated_at"}))

	// Act
	token, err := tokens.Get(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileTokens_Clear(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	tokens := repository.NewCredentialRepository(gormDB).Profile("work")

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "credentials" WHERE profile = .*`).
		WithArgs("work").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := tokens.Clear(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_UnknownDriver(t *testing.T) {
	db, err := repository.Open("mysql", "dsn")

	assert.Nil(t, db)
	assert.EqualError(t, err, `unsupported store driver "mysql"`)
}
