package choose_subscription

import (
	"context"

	chooseSubscription "github.com/m04kA/SMC-BookingPortal/internal/usecase/choose_subscription"
)

type ChooseSubscriptionUseCase interface {
	Choose(ctx context.Context, session chooseSubscription.DraftSession, req *chooseSubscription.Request) (*chooseSubscription.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
