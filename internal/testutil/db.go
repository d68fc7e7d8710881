// Package testutil provides shared database fixtures for backend tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"auction-marketplace/internal/database"
	model "auction-marketplace/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the auction schema.
// Every connection of the pool sees the same data through the shared cache.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// CreateUser inserts an active user with password "password"
func CreateUser(t testing.TB, db *gorm.DB, email string, admin bool) model.User {
	t.Helper()

	user := model.NewUser(email, "Test", "User")
	user.IsAdmin = admin
	require.NoError(t, user.SetPassword("password"))
	require.NoError(t, db.Create(&user).Error)
	return user
}

// CreateAuction inserts an auction running from start to end
func CreateAuction(t testing.TB, db *gorm.DB, title string, startingBid float64, start, end time.Time) model.Auction {
	t.Helper()

	auction := model.NewAuction(model.AuctionParams{
		Title:       title,
		Description: title + " description",
		Category:    "Electronics",
		StartingBid: startingBid,
		StartTime:   start,
		EndTime:     end,
	}, start)
	require.NoError(t, db.Create(&auction).Error)
	return auction
}

// CreateActiveAuction inserts an auction that started an hour ago and ends in a day
func CreateActiveAuction(t testing.TB, db *gorm.DB, title string, startingBid float64) model.Auction {
	t.Helper()
	now := time.Now().UTC()
	return CreateAuction(t, db, title, startingBid, now.Add(-time.Hour), now.Add(24*time.Hour))
}

// CreateBid inserts a bid and raises the auction's current bid to match
func CreateBid(t testing.TB, db *gorm.DB, auctionID, userID uint, amount float64, at time.Time) model.Bid {
	t.Helper()

	bid := model.NewBid(auctionID, userID, amount, at)
	require.NoError(t, db.Omit("Auction", "User").Create(&bid).Error)
	require.NoError(t, db.Model(&model.Auction{}).
		Where("id = ? AND (current_bid IS NULL OR current_bid < ?)", auctionID, amount).
		Update("current_bid", amount).Error)
	return bid
}
