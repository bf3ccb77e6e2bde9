package payment

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/kinopark/cinema-booking-system/internal/domain"
)

// Simulator is a development stand-in for a real payment gateway. It
// declines a configurable fraction of charges so that the rollback path
// gets exercised outside of tests; the rate is configuration, not business
// logic.
type Simulator struct {
	declineRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulator(declineRate float64) *Simulator {
	return NewSimulatorWithSource(declineRate, rand.NewSource(time.Now().UnixNano()))
}

// NewSimulatorWithSource allows tests to pin the outcome sequence.
func NewSimulatorWithSource(declineRate float64, source rand.Source) *Simulator {
	if declineRate < 0 {
		declineRate = 0
	}
	if declineRate > 1 {
		declineRate = 1
	}

	return &Simulator{
		declineRate: declineRate,
		rng:         rand.New(source),
	}
}

func (s *Simulator) Charge(ctx context.Context, req domain.PaymentRequest) (*domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	declined := s.rng.Float64() < s.declineRate
	s.mu.Unlock()

	if declined {
		return nil, domain.ErrPaymentDeclined
	}

	return &domain.Payment{
		Reference:   req.Reference,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Status:      domain.PaymentStatusCompleted,
		CreatedAt:   time.Now(),
	}, nil
}
