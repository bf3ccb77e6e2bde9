package integration_test

const (
	dbName         = "cinema_booking"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"

	// Seeded catalog, see testdata/seed_up.sql
	TestCinemaSlug     = "grand-cinema"
	TestMovieSlug      = "the-go-story"
	TestSeanceId       = 1
	TestExpiredSeance  = 4
	TestSeancePrice    = 1500
	TestHallACapacity  = 5
	TestReceiptAddress = "buyer@example.com"
)
