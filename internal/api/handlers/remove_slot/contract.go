package remove_slot

import (
	"context"

	removeSlot "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/remove_slot"
)

type RemoveSlotUseCase interface {
	Execute(ctx context.Context, req *removeSlot.Request) (*removeSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
