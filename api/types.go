// Package api holds the request and response types of the public HTTP
// surface. JSON field names are part of the API contract.
package api

import "time"

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type MovieSummary struct {
	Id          int    `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	PosterUrl   string `json:"posterUrl"`
	ReleaseDate string `json:"releaseDate"`
	Duration    int    `json:"duration"`
}

type MovieListResponse struct {
	Movies   []MovieSummary `json:"movies"`
	Metadata *Metadata      `json:"metadata,omitempty"`
}

type SeanceSummary struct {
	Id          int       `json:"id"`
	MovieTitle  string    `json:"movieTitle"`
	MovieSlug   string    `json:"movieSlug"`
	CinemaName  string    `json:"cinemaName"`
	HallName    string    `json:"hallName"`
	Technology  string    `json:"technology"`
	StartsAt    time.Time `json:"startsAt"`
	PriceCents  int64     `json:"priceCents"`
	TicketsSold int       `json:"ticketsSold,omitempty"`
}

type SeanceListResponse struct {
	Seances  []SeanceSummary `json:"seances"`
	Metadata *Metadata       `json:"metadata,omitempty"`
}

type ScheduleDay struct {
	Date    string          `json:"date"`
	Seances []SeanceSummary `json:"seances"`
}

type ScheduleResponse struct {
	CinemaSlug string        `json:"cinemaSlug"`
	Days       []ScheduleDay `json:"days"`
}

type SeatMapSeat struct {
	Seat      int  `json:"seat"`
	Available bool `json:"available"`
}

type SeatMapRow struct {
	Row   int           `json:"row"`
	Seats []SeatMapSeat `json:"seats"`
}

type SeanceDetailResponse struct {
	Seance   SeanceSummary `json:"seance"`
	Capacity int           `json:"capacity"`
	SeatMap  []SeatMapRow  `json:"seatMap"`
}

type Ticket struct {
	Id        int       `json:"id"`
	SeanceId  int       `json:"seanceId"`
	Row       int       `json:"row"`
	Seat      int       `json:"seat"`
	CreatedAt time.Time `json:"createdAt"`
}

type TicketListResponse struct {
	SeanceId int      `json:"seanceId"`
	Tickets  []Ticket `json:"tickets"`
}

type RecentTicketsResponse struct {
	SeanceId      int      `json:"seanceId"`
	WindowSeconds int      `json:"windowSeconds"`
	Tickets       []Ticket `json:"tickets"`
}

type SeatSelection struct {
	Row  int `json:"row" validate:"required,gt=0"`
	Seat int `json:"seat" validate:"required,gt=0"`
}

type PurchaseRequest struct {
	SeanceId     int             `json:"seance_id" validate:"required,gt=0"`
	Tickets      []SeatSelection `json:"tickets" validate:"required,min=1,dive"`
	ReceiptEmail string          `json:"receipt_email,omitempty" validate:"omitempty,email"`
}

type PurchaseResponse struct {
	Message          string   `json:"message"`
	PaymentReference string   `json:"paymentReference"`
	AmountCents      int64    `json:"amountCents"`
	Tickets          []Ticket `json:"tickets"`
}
