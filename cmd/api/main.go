package main

import (
	"log/slog"
	"os"

	"github.com/kinopark/cinema-booking-system/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stdout, nil)).Error(err.Error())
		os.Exit(1)
	}
}
