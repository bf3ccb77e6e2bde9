package app

import (
	"net/http"

	"github.com/kinopark/cinema-booking-system/api"
	"github.com/kinopark/cinema-booking-system/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"
)

type paginationParams struct {
	Page     int `validate:"gte=1"`
	PageSize int `validate:"gte=1,lte=100"`
}

func (app *Application) readPagination(r *http.Request) (domain.Pagination, error) {
	qs := r.URL.Query()

	page, err := app.readInt(qs, "page", DefaultPage)
	if err != nil {
		return domain.Pagination{}, err
	}

	pageSize, err := app.readInt(qs, "page_size", DefaultPageSize)
	if err != nil {
		return domain.Pagination{}, err
	}

	pagination := domain.Pagination{
		Page:     page,
		PageSize: pageSize,
		Term:     app.readString(qs, "term", ""),
		Sort:     app.readString(qs, "sort", DefaultSort),
	}

	return pagination, nil
}

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(paginationParams{Page: pagination.Page, PageSize: pagination.PageSize})
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   toMovieSummaries(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieSummaries(movies []*domain.Movie) []api.MovieSummary {
	summaries := make([]api.MovieSummary, len(movies))

	for i, movie := range movies {
		summaries[i] = toMovieSummary(movie)
	}

	return summaries
}

func toMovieSummary(movie *domain.Movie) api.MovieSummary {
	if movie == nil {
		return api.MovieSummary{}
	}

	return api.MovieSummary{
		Id:          movie.ID,
		Title:       movie.Title,
		Slug:        movie.Slug,
		Description: movie.Description,
		PosterUrl:   movie.PosterUrl,
		ReleaseDate: movie.ReleaseDate.Format("2006-01-02"),
		Duration:    movie.Duration,
	}
}

func toApiMetadata(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
