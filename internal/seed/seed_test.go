package seed

import (
	"context"
	"testing"
	"time"

	"auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{AdminEmail: "admin@auction.com", AdminPassword: "admin123"}
}

func TestRun_StartData(t *testing.T) {
	t.Parallel()

	db := testutil.NewTestDB(t)
	repo := repository.NewGormRepo(db)
	ctx := context.Background()
	now := time.Now().UTC()

	res, err := Run(ctx, repo, testOptions(), now)
	require.NoError(t, err)
	assert.Equal(t, Result{Users: 2, Auctions: 4, Bids: 2, Likes: 1}, res)

	admin, err := repo.Users().GetUserByEmail(ctx, "admin@auction.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.CheckPassword("admin123"))

	user, err := repo.Users().GetUserByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
	assert.True(t, user.CheckPassword("user123"))

	categories, err := repo.Auctions().Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Antikviteter", "Böcker", "Keramik", "Konst"}, categories)

	auctions, err := repo.Auctions().ListAuctions(ctx, repository.AuctionFilter{Status: models.StatusActive, Now: now.Add(time.Second)})
	require.NoError(t, err)
	require.Len(t, auctions, 4)

	var klocka models.Auction
	for _, a := range auctions {
		if a.StartingBid == 500 {
			klocka = a
		}
	}
	require.NotZero(t, klocka.ID)
	assert.Equal(t, 750.0, klocka.CurrentAmount())
	assert.Equal(t, "vintage_klocka.jpg", klocka.Image)

	winning, err := repo.Bids().GetWinningBid(ctx, klocka.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, winning.UserID)

	counts, err := repo.Likes().CountReactions(ctx, klocka.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts.Likes)
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	db := testutil.NewTestDB(t)
	repo := repository.NewGormRepo(db)
	ctx := context.Background()

	_, err := Run(ctx, repo, testOptions(), time.Now().UTC())
	require.NoError(t, err)

	res, err := Run(ctx, repo, testOptions(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	n, err := repo.Bids().CountBids(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestRun_WithFakeAuctions(t *testing.T) {
	t.Parallel()

	db := testutil.NewTestDB(t)
	repo := repository.NewGormRepo(db)

	opts := testOptions()
	opts.FakeAuctions = 10
	opts.FakerSeed = 42

	res, err := Run(context.Background(), repo, opts, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 14, res.Auctions)
}

func TestFakeAuctions(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	auctions := FakeAuctions(20, 7, now)
	require.Len(t, auctions, 20)

	statuses := map[models.AuctionStatus]int{}
	for i := range auctions {
		a := auctions[i]
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Description)
		assert.Contains(t, fakeCategories, a.Category)
		assert.Greater(t, a.StartingBid, 0.0)
		assert.True(t, a.EndTime.After(a.StartTime))
		assert.Nil(t, a.CurrentBid)
		statuses[a.Status(now)]++
	}
	assert.Equal(t, 12, statuses[models.StatusActive])
	assert.Equal(t, 4, statuses[models.StatusUpcoming])
	assert.Equal(t, 4, statuses[models.StatusEnded])

	again := FakeAuctions(20, 7, now)
	assert.Equal(t, auctions[0].Title, again[0].Title, "same seed, same data")
}
