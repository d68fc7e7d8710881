package seed

import (
	"math"
	"time"

	"auction-marketplace/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

var fakeCategories = []string{"Antikviteter", "Konst", "Böcker", "Keramik", "Möbler", "Smycken", "Elektronik"}

// FakeAuctions generates n auctions spread over the three states: most are running,
// some start later and some have already ended. A seed of 0 is random.
func FakeAuctions(n int, seed int64, now time.Time) []models.Auction {
	faker := gofakeit.New(seed)
	auctions := make([]models.Auction, 0, n)

	for i := 0; i < n; i++ {
		var start, end time.Time
		switch i % 5 {
		case 3:
			start = now.Add(time.Duration(faker.Number(1, 72)) * time.Hour)
			end = start.Add(time.Duration(faker.Number(24, 240)) * time.Hour)
		case 4:
			end = now.Add(-time.Duration(faker.Number(1, 240)) * time.Hour)
			start = end.Add(-time.Duration(faker.Number(24, 240)) * time.Hour)
		default:
			start = now.Add(-time.Duration(faker.Number(1, 48)) * time.Hour)
			end = now.Add(time.Duration(faker.Number(1, 336)) * time.Hour)
		}

		auctions = append(auctions, models.NewAuction(models.AuctionParams{
			Title:       faker.ProductName(),
			Description: faker.ProductDescription(),
			Category:    fakeCategories[faker.Number(0, len(fakeCategories)-1)],
			StartingBid: math.Round(faker.Price(50, 5000)),
			StartTime:   start,
			EndTime:     end,
		}, now))
	}
	return auctions
}
