package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MoviesTestSuite struct {
	BaseSuite
}

func TestMoviesSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	suite.Run(t, new(MoviesTestSuite))
}

func (s *MoviesTestSuite) TestHealthcheck() {
	scenario := Scenario{
		Name:           "reports the service as up",
		Method:         "GET",
		URL:            "/health",
		ExpectedStatus: http.StatusOK,
	}

	scenario.Run(s.T(), s.app)
}

func (s *MoviesTestSuite) TestGetMovies() {
	scenarios := []Scenario{
		{
			Name:           "lists all movies",
			Method:         "GET",
			URL:            "/movies",
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"movies": [
					{"id": 1, "title": "The Go Story", "slug": "the-go-story", "description": "A story about building things.", "posterUrl": "https://example.com/poster-go.jpg", "releaseDate": "2024-01-15", "duration": 120},
					{"id": 2, "title": "Channel Dreams", "slug": "channel-dreams", "description": "Concurrency on the big screen.", "posterUrl": "https://example.com/poster-ch.jpg", "releaseDate": "2024-06-01", "duration": 95}
				],
				"metadata": {
					"currentPage": 1,
					"firstPage": 1,
					"lastPage": 1,
					"pageSize": 10,
					"totalRecords": 2
				}
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seedCatalog(t, app)
			},
		},
		{
			Name:           "filters movies by search term",
			Method:         "GET",
			URL:            "/movies?term=channel",
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"movies": [
					{"id": 2, "title": "Channel Dreams", "slug": "channel-dreams", "description": "Concurrency on the big screen.", "posterUrl": "https://example.com/poster-ch.jpg", "releaseDate": "2024-06-01", "duration": 95}
				],
				"metadata": {
					"currentPage": 1,
					"firstPage": 1,
					"lastPage": 1,
					"pageSize": 10,
					"totalRecords": 1
				}
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				seedCatalog(t, app)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}
