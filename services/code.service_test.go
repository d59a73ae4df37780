package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schilo132/real-estate-property-reservations-api/domain"
	"github.com/schilo132/real-estate-property-reservations-api/repository"
	"github.com/schilo132/real-estate-property-reservations-api/utils"
)

// codeStoreStub fakes only the code existence lookup; the rest of the
// EntityStore surface is never touched by the generator.
type codeStoreStub struct {
	repository.EntityStore
	exists  func(code int) bool
	queried []int
}

func (s *codeStoreStub) ReservationCodeExists(ctx context.Context, code int) (bool, error) {
	s.queried = append(s.queried, code)
	return s.exists(code), nil
}

func quietLogger() *logrus.Logger {
	logger := utils.NewLogger()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestGenerateUniqueReservationCodeInRange(t *testing.T) {
	store := &codeStoreStub{exists: func(code int) bool { return false }}
	codes := NewCodeServiceImpl(store, quietLogger(), 1000)

	for i := 0; i < 100; i++ {
		code, err := codes.GenerateUniqueReservationCode(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, code, 1)
		assert.LessOrEqual(t, code, MaxReservationCode)
	}
}

func TestGenerateUniqueReservationCodeRedrawsOnCollision(t *testing.T) {
	collisions := 3
	store := &codeStoreStub{}
	store.exists = func(code int) bool {
		if collisions > 0 {
			collisions--
			return true
		}
		return false
	}
	codes := NewCodeServiceImpl(store, quietLogger(), 1000)

	code, err := codes.GenerateUniqueReservationCode(context.Background())

	require.NoError(t, err)
	assert.Len(t, store.queried, 4)
	assert.Equal(t, store.queried[len(store.queried)-1], code)
}

func TestGenerateUniqueReservationCodeExhaustsAttemptBound(t *testing.T) {
	store := &codeStoreStub{exists: func(code int) bool { return true }}
	codes := NewCodeServiceImpl(store, quietLogger(), 25)

	_, err := codes.GenerateUniqueReservationCode(context.Background())

	assert.ErrorIs(t, err, domain.ErrCodeGenerationExhausted)
	assert.Len(t, store.queried, 25)
}

func TestGenerateUniqueReservationCodeSkipsStoredCodes(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()
	taken := map[int]bool{}
	for code := 1; code <= 50; code++ {
		_, err := store.InsertReservation(ctx, &domain.Reservation{Code: code})
		require.NoError(t, err)
		taken[code] = true
	}
	codes := NewCodeServiceImpl(store, quietLogger(), 1000)

	code, err := codes.GenerateUniqueReservationCode(ctx)

	require.NoError(t, err)
	assert.False(t, taken[code])
}
