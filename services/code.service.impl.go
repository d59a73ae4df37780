package services

import (
	"context"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/schilo132/real-estate-property-reservations-api/domain"
	"github.com/schilo132/real-estate-property-reservations-api/repository"
)

// MaxReservationCode bounds the code space: codes are drawn uniformly from
// [1, MaxReservationCode].
const MaxReservationCode = 99999

type CodeServiceImpl struct {
	store       repository.EntityStore
	logger      *logrus.Logger
	maxAttempts int
}

func NewCodeServiceImpl(store repository.EntityStore, logger *logrus.Logger, maxAttempts int) CodeService {
	return &CodeServiceImpl{
		store:       store,
		logger:      logger,
		maxAttempts: maxAttempts,
	}
}

// GenerateUniqueReservationCode draws a random code and re-draws on
// collision against the store. The code space is dense relative to usage,
// so the loop terminates quickly in practice; the attempt bound exists so a
// saturated store surfaces as ErrCodeGenerationExhausted instead of
// spinning forever.
func (s *CodeServiceImpl) GenerateUniqueReservationCode(ctx context.Context) (int, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		code := rand.Intn(MaxReservationCode) + 1
		exists, err := s.store.ReservationCodeExists(ctx, code)
		if err != nil {
			return 0, err
		}
		if !exists {
			return code, nil
		}
	}
	s.logger.WithFields(logrus.Fields{"path": "services/code"}).Error(
		"No free reservation code after ", s.maxAttempts, " attempts")
	return 0, domain.ErrCodeGenerationExhausted
}
