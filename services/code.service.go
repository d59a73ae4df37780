package services

import "context"

// CodeService hands out reservation codes that are free at the moment of
// generation. The store's unique index on the code column is the backstop
// for two generators racing on the same value.
type CodeService interface {
	GenerateUniqueReservationCode(ctx context.Context) (int, error)
}
