package get_subscription_options

import (
	"context"

	chooseSubscription "github.com/m04kA/SMC-BookingPortal/internal/usecase/choose_subscription"
)

type ChooseSubscriptionUseCase interface {
	Options(ctx context.Context, session chooseSubscription.DraftSession) (*chooseSubscription.OptionsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
