package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"listinghub/internal/domain"
	"listinghub/internal/repository/sqlite"
	"listinghub/internal/service"
)

func newListingFixture(t *testing.T) (service.ListingService, *sql.DB, int64) {
	t.Helper()

	db := openTestDB(t)
	agent := &domain.Agent{Username: "owner", Email: "owner@example.com", PasswordHash: "x"}
	_, err := sqlite.NewAgentRepository(db).Create(context.Background(), agent)
	require.NoError(t, err)

	svc := service.NewListingService(sqlite.NewListingRepository(db), sqlite.NewListingPhotoRepository(db))
	return svc, db, agent.ID
}

func TestListingCreateDefaultsToDraft(t *testing.T) {
	t.Parallel()

	svc, _, agentID := newListingFixture(t)
	ctx := context.Background()

	listing, err := svc.Create(ctx, agentID, domain.Listing{Title: "Loft Downtown", Status: "bogus"})
	require.NoError(t, err)
	require.Equal(t, domain.ListingStatusDraft, listing.Status)
	require.NotEmpty(t, listing.Slug)
	require.Equal(t, agentID, listing.AgentID)
}

func TestListingCreateRequiresTitle(t *testing.T) {
	t.Parallel()

	svc, _, agentID := newListingFixture(t)

	_, err := svc.Create(context.Background(), agentID, domain.Listing{Title: "   "})
	require.Error(t, err)
}

func TestListingPublicOnlyActive(t *testing.T) {
	t.Parallel()

	svc, _, agentID := newListingFixture(t)
	ctx := context.Background()

	draft, err := svc.Create(ctx, agentID, domain.Listing{Title: "Draft House"})
	require.NoError(t, err)
	active, err := svc.Create(ctx, agentID, domain.Listing{Title: "Active House", Status: domain.ListingStatusActive})
	require.NoError(t, err)

	public, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	require.Equal(t, active.ID, public[0].ID)

	mine, err := svc.ListByAgent(ctx, agentID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	require.NoError(t, svc.UpdateStatus(ctx, agentID, draft.ID, domain.ListingStatusActive))
	public, err = svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 2)
}

func TestListingOwnerChecks(t *testing.T) {
	t.Parallel()

	svc, db, agentID := newListingFixture(t)
	ctx := context.Background()

	other := &domain.Agent{Username: "intruder", Email: "intruder@example.com", PasswordHash: "x"}
	_, err := sqlite.NewAgentRepository(db).Create(ctx, other)
	require.NoError(t, err)

	listing, err := svc.Create(ctx, agentID, domain.Listing{Title: "Guarded"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, domain.Listing{ID: listing.ID, Title: "Hijacked"})
	require.ErrorIs(t, err, service.ErrNotListingOwner)

	err = svc.UpdateStatus(ctx, other.ID, listing.ID, domain.ListingStatusActive)
	require.ErrorIs(t, err, service.ErrNotListingOwner)

	err = svc.Delete(ctx, other.ID, listing.ID)
	require.ErrorIs(t, err, service.ErrNotListingOwner)

	err = svc.ReplacePhotos(ctx, other.ID, listing.ID, nil)
	require.ErrorIs(t, err, service.ErrNotListingOwner)
}

func TestListingUpdateStatusValidation(t *testing.T) {
	t.Parallel()

	svc, _, agentID := newListingFixture(t)
	ctx := context.Background()

	listing, err := svc.Create(ctx, agentID, domain.Listing{Title: "Status Check"})
	require.NoError(t, err)

	err = svc.UpdateStatus(ctx, agentID, listing.ID, "nonsense")
	require.Error(t, err)
}

func TestListingPhotosRoundTrip(t *testing.T) {
	t.Parallel()

	svc, _, agentID := newListingFixture(t)
	ctx := context.Background()

	listing, err := svc.Create(ctx, agentID, domain.Listing{Title: "With Photos"})
	require.NoError(t, err)

	err = svc.ReplacePhotos(ctx, agentID, listing.ID, []domain.ListingPhoto{
		{ObjectKey: "photos/front.jpg", Position: 0},
		{ObjectKey: "photos/kitchen.jpg", Position: 1},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, listing.ID)
	require.NoError(t, err)
	require.Len(t, got.Photos, 2)
	require.Equal(t, "photos/front.jpg", got.Photos[0].ObjectKey)
}
