// Package seed fills an empty database with start data for development and demos.
package seed

import (
	"context"
	"fmt"
	"time"

	"auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/utils"
)

// Options configures the seeder
type Options struct {
	AdminEmail    string
	AdminPassword string
	// FakeAuctions adds generated auctions on top of the start auctions
	FakeAuctions int
	// FakerSeed makes generated data reproducible; 0 picks a random seed
	FakerSeed int64
}

// Result counts the rows created by Run
type Result struct {
	Users    int
	Auctions int
	Bids     int
	Likes    int
}

type startUser struct {
	email, password, firstName, lastName string
	admin                                bool
}

type startAuction struct {
	title, description, category, image string
	startingBid                         float64
	duration                            time.Duration
}

var startAuctions = []startAuction{
	{
		title:       "Vintage Klocka från 1950-talet",
		description: "En vacker vintage klocka i utmärkt skick. Perfekt för samlare.",
		category:    "Antikviteter",
		image:       "vintage_klocka.jpg",
		startingBid: 500,
		duration:    7 * 24 * time.Hour,
	},
	{
		title:       "Handmålad Tavla - Landskap",
		description: "Original oljemålning av svenskt landskap. Signerad av konstnären.",
		category:    "Konst",
		image:       "tavla_landskap.jpg",
		startingBid: 1200,
		duration:    5 * 24 * time.Hour,
	},
	{
		title:       "Samlarupplaga Bok - Första Tryckning",
		description: "Sällsynt första tryckning av klassisk svensk litteratur.",
		category:    "Böcker",
		image:       "bok_forsta_tryckning.jpg",
		startingBid: 800,
		duration:    3 * 24 * time.Hour,
	},
	{
		title:       "Keramikvas - Gustavsberg",
		description: "Vintage keramikvas från Gustavsberg. Perfekt skick.",
		category:    "Keramik",
		image:       "keramikvas_gustavsberg.jpg",
		startingBid: 300,
		duration:    10 * 24 * time.Hour,
	},
}

// startBidSteps are added to the starting bid of the first auction
var startBidSteps = []float64{100, 250}

// Run creates start users, auctions, bids and likes. Each kind is only seeded while
// its table is empty, so running it on every start is safe.
func Run(ctx context.Context, repo repository.AuctionDB, opts Options, now time.Time) (Result, error) {
	var res Result
	err := repo.WithTx(ctx, func(tx repository.AuctionDB) error {
		var err error
		if res.Users, err = seedUsers(ctx, tx, opts, now); err != nil {
			return err
		}
		if res.Auctions, err = seedAuctions(ctx, tx, opts, now); err != nil {
			return err
		}
		if res.Bids, err = seedBids(ctx, tx, now); err != nil {
			return err
		}
		res.Likes, err = seedLikes(ctx, tx, now)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	utils.Info("seed complete", map[string]any{
		"users":    res.Users,
		"auctions": res.Auctions,
		"bids":     res.Bids,
		"likes":    res.Likes,
	})
	return res, nil
}

func seedUsers(ctx context.Context, tx repository.AuctionDB, opts Options, now time.Time) (int, error) {
	n, err := tx.Users().CountUsers(ctx)
	if err != nil || n > 0 {
		return 0, err
	}

	users := []startUser{
		{email: opts.AdminEmail, password: opts.AdminPassword, firstName: "Admin", lastName: "User", admin: true},
		{email: "user@example.com", password: "user123", firstName: "Test", lastName: "User"},
	}
	for _, su := range users {
		user := models.NewUser(su.email, su.firstName, su.lastName)
		user.IsAdmin = su.admin
		user.CreatedAt = now
		if err := user.SetPassword(su.password); err != nil {
			return 0, fmt.Errorf("seed: hash password of %s: %w", su.email, err)
		}
		if err := tx.Users().CreateUser(ctx, &user); err != nil {
			return 0, fmt.Errorf("seed: %w", err)
		}
	}
	return len(users), nil
}

func seedAuctions(ctx context.Context, tx repository.AuctionDB, opts Options, now time.Time) (int, error) {
	n, err := tx.Auctions().CountAuctions(ctx)
	if err != nil || n > 0 {
		return 0, err
	}

	created := 0
	for _, sa := range startAuctions {
		auction := models.NewAuction(models.AuctionParams{
			Title:       sa.title,
			Description: sa.description,
			Category:    sa.category,
			Image:       sa.image,
			StartingBid: sa.startingBid,
			StartTime:   now,
			EndTime:     now.Add(sa.duration),
		}, now)
		if err := tx.Auctions().CreateAuction(ctx, &auction); err != nil {
			return created, fmt.Errorf("seed: %w", err)
		}
		created++
	}

	if opts.FakeAuctions > 0 {
		for _, auction := range FakeAuctions(opts.FakeAuctions, opts.FakerSeed, now) {
			auction := auction
			if err := tx.Auctions().CreateAuction(ctx, &auction); err != nil {
				return created, fmt.Errorf("seed: %w", err)
			}
			created++
		}
	}
	return created, nil
}

func seedBids(ctx context.Context, tx repository.AuctionDB, now time.Time) (int, error) {
	n, err := tx.Bids().CountBids(ctx)
	if err != nil || n > 0 {
		return 0, err
	}

	auction, user, ok, err := firstAuctionAndUser(ctx, tx)
	if err != nil || !ok {
		return 0, err
	}

	at := now.Add(-time.Duration(len(startBidSteps)) * time.Minute)
	for _, step := range startBidSteps {
		bid := models.NewBid(auction.ID, user.ID, auction.StartingBid+step, at)
		if err := tx.Bids().RecordBid(ctx, &bid); err != nil {
			return 0, fmt.Errorf("seed: %w", err)
		}
		if _, err := tx.Auctions().RaiseCurrentBid(ctx, auction.ID, bid.Amount); err != nil {
			return 0, fmt.Errorf("seed: %w", err)
		}
		at = at.Add(time.Minute)
	}
	return len(startBidSteps), nil
}

func seedLikes(ctx context.Context, tx repository.AuctionDB, now time.Time) (int, error) {
	auction, user, ok, err := firstAuctionAndUser(ctx, tx)
	if err != nil || !ok {
		return 0, err
	}

	counts, err := tx.Likes().CountReactions(ctx, auction.ID)
	if err != nil || counts.Likes+counts.Dislikes > 0 {
		return 0, err
	}

	like := models.NewLike(user.ID, auction.ID, models.ReactionLike, now)
	if err := tx.Likes().CreateLike(ctx, &like); err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	return 1, nil
}

// firstAuctionAndUser picks the oldest auction and the oldest non-admin user
func firstAuctionAndUser(ctx context.Context, tx repository.AuctionDB) (models.Auction, models.User, bool, error) {
	auctions, err := tx.Auctions().ListAuctions(ctx, repository.AuctionFilter{Now: time.Now().UTC()})
	if err != nil {
		return models.Auction{}, models.User{}, false, fmt.Errorf("seed: %w", err)
	}
	users, err := tx.Users().ListUsers(ctx)
	if err != nil {
		return models.Auction{}, models.User{}, false, fmt.Errorf("seed: %w", err)
	}

	var auction models.Auction
	for i := range auctions {
		if auction.ID == 0 || auctions[i].ID < auction.ID {
			auction = auctions[i]
		}
	}
	var user models.User
	for i := range users {
		if !users[i].IsAdmin && (user.ID == 0 || users[i].ID < user.ID) {
			user = users[i]
		}
	}
	return auction, user, auction.ID != 0 && user.ID != 0, nil
}
