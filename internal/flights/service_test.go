package flights

import (
	"context"
	"testing"

	"github.com/asavirtual/flightboard-backend/pkg/enums"
	pkgerrors "github.com/asavirtual/flightboard-backend/pkg/errors"
	"github.com/asavirtual/flightboard-backend/pkg/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlightsService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupFlightsTestDB(t)))
	require.NoError(t, err)
	return svc
}

func staffActor() session.Session {
	return session.Session{Username: "maria", Role: enums.StaffRoleHR}
}

func assertErrorCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected a typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
}

func TestServiceCreateRequiresStaffSession(t *testing.T) {
	svc := newFlightsService(t)

	_, err := svc.Create(context.Background(), session.Session{}, CreateFlightDTO{
		Code: "ASA101", Route: "r", Date: "2025-02-01", Time: "10:00", Gate: "A1",
	})
	assertErrorCode(t, err, pkgerrors.CodeForbidden)
}

func TestServiceCreateDuplicateCodeConflicts(t *testing.T) {
	svc := newFlightsService(t)
	ctx := context.Background()

	input := CreateFlightDTO{Code: "ASA101", Route: "r", Date: "2025-02-01", Time: "10:00", Gate: "A1"}
	_, err := svc.Create(ctx, staffActor(), input)
	require.NoError(t, err)

	_, err = svc.Create(ctx, staffActor(), input)
	assertErrorCode(t, err, pkgerrors.CodeConflict)
}

func TestServiceIncrementInterestIsPublic(t *testing.T) {
	svc := newFlightsService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, staffActor(), CreateFlightDTO{
		Code: "ASA101", Route: "r", Date: "2025-02-01", Time: "10:00", Gate: "A1",
	})
	require.NoError(t, err)

	// no actor: interest signalling does not require a session
	count, err := svc.IncrementInterest(ctx, "ASA101")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = svc.IncrementInterest(ctx, "UNKNOWN")
	assertErrorCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceSetActive(t *testing.T) {
	svc := newFlightsService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, staffActor(), CreateFlightDTO{
		Code: "ASA101", Route: "r", Date: "2025-02-01", Time: "10:00", Gate: "A1",
	})
	require.NoError(t, err)

	_, err = svc.SetActive(ctx, session.Session{}, created.ID, true)
	assertErrorCode(t, err, pkgerrors.CodeForbidden)

	updated, err := svc.SetActive(ctx, staffActor(), created.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Active)

	_, err = svc.SetActive(ctx, staffActor(), uuid.New(), true)
	assertErrorCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceDelete(t *testing.T) {
	svc := newFlightsService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, staffActor(), CreateFlightDTO{
		Code: "ASA101", Route: "r", Date: "2025-02-01", Time: "10:00", Gate: "A1",
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, session.Session{}, created.ID)
	assertErrorCode(t, err, pkgerrors.CodeForbidden)

	require.NoError(t, svc.Delete(ctx, staffActor(), created.ID))

	flights, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, flights)
}
