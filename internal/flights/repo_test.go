package flights

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFlightsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS flights (
  id TEXT PRIMARY KEY,
  code TEXT UNIQUE NOT NULL,
  route TEXT NOT NULL,
  date TEXT NOT NULL,
  time TEXT NOT NULL,
  gate TEXT NOT NULL,
  interested INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 0,
  link TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func mustCreateFlight(t *testing.T, repo *Repository, code string) *FlightDTO {
	t.Helper()
	flight, err := repo.Create(context.Background(), CreateFlightDTO{
		Code:  code,
		Route: "Tulsa -> Dallas",
		Date:  "2025-02-01",
		Time:  "14:30",
		Gate:  "B7",
	})
	require.NoError(t, err)
	return FromModel(flight)
}

func TestCreateStartsInactiveWithZeroInterest(t *testing.T) {
	repo := NewRepository(setupFlightsTestDB(t))

	flight := mustCreateFlight(t, repo, "ASA101")
	assert.False(t, flight.Active)
	assert.Equal(t, 0, flight.Interested)
	assert.NotEqual(t, uuid.Nil, flight.ID)
}

func TestCreateDuplicateCodeLeavesExistingRowIntact(t *testing.T) {
	db := setupFlightsTestDB(t)
	repo := NewRepository(db)

	original := mustCreateFlight(t, repo, "ASA101")

	_, err := repo.Create(context.Background(), CreateFlightDTO{
		Code:  "ASA101",
		Route: "Somewhere -> Else",
		Date:  "2025-03-01",
		Time:  "09:00",
		Gate:  "A1",
	})
	require.Error(t, err)

	flights, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, original.Route, flights[0].Route)
	assert.Equal(t, original.Gate, flights[0].Gate)
}

func TestListOrdersByDateThenTime(t *testing.T) {
	repo := NewRepository(setupFlightsTestDB(t))

	ctx := context.Background()
	_, err := repo.Create(ctx, CreateFlightDTO{Code: "LATE", Route: "r", Date: "2025-02-02", Time: "08:00", Gate: "g"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, CreateFlightDTO{Code: "EARLY", Route: "r", Date: "2025-02-01", Time: "22:00", Gate: "g"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, CreateFlightDTO{Code: "MID", Route: "r", Date: "2025-02-02", Time: "06:00", Gate: "g"})
	require.NoError(t, err)

	flights, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, flights, 3)
	assert.Equal(t, "EARLY", flights[0].Code)
	assert.Equal(t, "MID", flights[1].Code)
	assert.Equal(t, "LATE", flights[2].Code)
}

func TestIncrementInterestCountsEveryCall(t *testing.T) {
	repo := NewRepository(setupFlightsTestDB(t))
	mustCreateFlight(t, repo, "ASA101")

	ctx := context.Background()
	var last int
	for i := 1; i <= 5; i++ {
		count, err := repo.IncrementInterest(ctx, "ASA101")
		require.NoError(t, err)
		last = count
	}
	assert.Equal(t, 5, last)

	flights, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, flights[0].Interested)
}

func TestIncrementInterestUnknownCode(t *testing.T) {
	repo := NewRepository(setupFlightsTestDB(t))

	_, err := repo.IncrementInterest(context.Background(), "NOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSetActiveRoundTripPreservesFields(t *testing.T) {
	repo := NewRepository(setupFlightsTestDB(t))
	created := mustCreateFlight(t, repo, "ASA101")

	ctx := context.Background()
	activated, err := repo.SetActive(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, activated.Active)

	deactivated, err := repo.SetActive(ctx, created.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)
	assert.Equal(t, created.Code, deactivated.Code)
	assert.Equal(t, created.Route, deactivated.Route)
	assert.Equal(t, created.Gate, deactivated.Gate)
	assert.Equal(t, created.Interested, deactivated.Interested)
}

func TestSetActiveUnknownID(t *testing.T) {
	repo := NewRepository(setupFlightsTestDB(t))

	_, err := repo.SetActive(context.Background(), uuid.New(), true)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := NewRepository(setupFlightsTestDB(t))
	created := mustCreateFlight(t, repo, "ASA101")

	ctx := context.Background()
	require.NoError(t, repo.Delete(ctx, created.ID))

	flights, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, flights)

	// second delete of the same id is a no-op, not an error
	require.NoError(t, repo.Delete(ctx, created.ID))
}
