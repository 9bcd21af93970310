package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"festive-births-svc/internal/access"
	"festive-births-svc/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestDeliveryCreate_RollsBackWhenBabyInsertFails(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDeliveryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "deliveries"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "babies"`)).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	delivery := &models.Delivery{District: "Buffalo City Metro", Facility: "Frere Hospital"}
	babies := []models.Baby{{Gender: strPtr(models.GenderMale), Weight: intPtr(3200)}}

	err := repo.Create(context.Background(), delivery, babies)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryCreate_WithoutBabies(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDeliveryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "deliveries"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	delivery := &models.Delivery{NoBirthsToReport: true, Facility: "Frere Hospital"}
	require.NoError(t, repo.Create(context.Background(), delivery, nil))
	assert.Equal(t, uint(3), delivery.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryList_AppliesFacilityScope(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDeliveryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "deliveries" WHERE deliveries.facility = $1`)).
		WithArgs("Frere Hospital").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "deliveries" WHERE deliveries.facility = $1 ORDER BY deliveries.timestamp DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	scope := access.Scope{Kind: access.ScopeFacility, Facility: "Frere Hospital"}
	rows, total, err := repo.List(context.Background(), scope, "", 1, 25)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, int64(0), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryList_NoScopeMatchesNothing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDeliveryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "deliveries" WHERE 1 = 0`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "deliveries" WHERE 1 = 0`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := repo.List(context.Background(), access.Scope{Kind: access.ScopeNone}, "", 1, 25)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryDelete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDeliveryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "deliveries" WHERE "deliveries"."id" = $1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPersalExists_ExcludesSelf(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "profiles" WHERE persal_number = $1 AND user_id <> $2`)).
		WithArgs("12345678", 4).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.PersalExists(context.Background(), "12345678", 4)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPersalExists_NewProfile(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "profiles" WHERE persal_number = $1`)).
		WithArgs("12345678").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.PersalExists(context.Background(), "12345678", 0)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserListByIDs_EmptySkipsQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	users, err := repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}
