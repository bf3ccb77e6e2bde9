package app

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kinopark/cinema-booking-system/api"
	"github.com/kinopark/cinema-booking-system/internal/domain"
)

const dateLayout = "2006-01-02"

func (app *Application) readSeanceIdParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "seanceId"))
	if err != nil || id < 1 {
		return 0, errors.New("invalid seance id")
	}

	return id, nil
}

func (app *Application) GetUpcomingSeances(w http.ResponseWriter, r *http.Request) {
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

	seances, metadata, err := app.seanceRepo.GetUpcoming(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.SeanceListResponse{
		Seances:  toSeanceSummaries(seances),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetExpiredSeances(w http.ResponseWriter, r *http.Request) {
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

	seances, metadata, err := app.seanceRepo.GetExpired(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.SeanceListResponse{
		Seances:  toSeanceSummaries(seances),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSeance(w http.ResponseWriter, r *http.Request) {
	id, err := app.readSeanceIdParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	seance, err := app.seanceRepo.GetById(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponseWithMsg(w, r, domain.ErrSeanceNotFound.Error())
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	hall, err := app.hallRepo.GetById(r.Context(), seance.HallID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	tickets, err := app.ticketRepo.ListBySeance(r.Context(), seance.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.SeanceDetailResponse{
		Seance:   toSeanceSummary(*seance),
		Capacity: hall.Layout.Capacity(),
		SeatMap:  toSeatMap(hall.Layout, tickets),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTodaySchedule(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	cinemaSlug := app.readString(qs, "cinema", "")

	hallId, err := app.readInt(qs, "hall_id", 0)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seances, err := app.seanceRepo.GetForToday(r.Context(), cinemaSlug, hallId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.SeanceListResponse{
		Seances: toSeanceSummaries(seances),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type scheduleParams struct {
	Cinema string `validate:"required"`
	Date   string `validate:"omitempty,schedule_date"`
}

func (app *Application) GetSchedule(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	params := scheduleParams{
		Cinema: app.readString(qs, "cinema", ""),
		Date:   app.readString(qs, "date", ""),
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	hallIds, err := app.readIntCSV(qs, "hall_ids")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	techIds, err := app.readIntCSV(qs, "tech_ids")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	filters := domain.ScheduleFilters{
		CinemaSlug: params.Cinema,
		HallIDs:    hallIds,
		MovieSlugs: app.readCSV(qs, "movie_slugs"),
		TechIDs:    techIds,
	}

	if params.Date != "" {
		date, err := time.Parse(dateLayout, params.Date)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		filters.Date = &date
	}

	days, err := app.seanceRepo.GetSchedule(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ScheduleResponse{
		CinemaSlug: params.Cinema,
		Days:       toScheduleDays(days),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeanceSummaries(seances []domain.Seance) []api.SeanceSummary {
	summaries := make([]api.SeanceSummary, len(seances))

	for i, seance := range seances {
		summaries[i] = toSeanceSummary(seance)
	}

	return summaries
}

func toSeanceSummary(seance domain.Seance) api.SeanceSummary {
	return api.SeanceSummary{
		Id:          seance.ID,
		MovieTitle:  seance.MovieTitle,
		MovieSlug:   seance.MovieSlug,
		CinemaName:  seance.CinemaName,
		HallName:    seance.HallName,
		Technology:  seance.Technology,
		StartsAt:    seance.StartsAt,
		PriceCents:  seance.PriceCents,
		TicketsSold: seance.TicketsSold,
	}
}

func toScheduleDays(days []domain.DaySchedule) []api.ScheduleDay {
	scheduleDays := make([]api.ScheduleDay, len(days))

	for i, day := range days {
		scheduleDays[i] = api.ScheduleDay{
			Date:    day.Date.Format(dateLayout),
			Seances: toSeanceSummaries(day.Seances),
		}
	}

	return scheduleDays
}

// toSeatMap overlays sold tickets onto the hall layout. Seats absent from the
// layout never appear in the map, even if a stray ticket references them.
func toSeatMap(layout domain.Layout, tickets []domain.Ticket) []api.SeatMapRow {
	sold := make(map[[2]int]bool, len(tickets))
	for _, ticket := range tickets {
		sold[[2]int{ticket.Row, ticket.Seat}] = true
	}

	rows := make([]api.SeatMapRow, len(layout.Rows))
	for i, row := range layout.Rows {
		seats := make([]api.SeatMapSeat, len(row.Seats))
		for j, seat := range row.Seats {
			seats[j] = api.SeatMapSeat{
				Seat:      seat.Number,
				Available: !sold[[2]int{row.Number, seat.Number}],
			}
		}

		rows[i] = api.SeatMapRow{
			Row:   row.Number,
			Seats: seats,
		}
	}

	return rows
}
