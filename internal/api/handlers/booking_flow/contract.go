package booking_flow

import (
	"context"

	bookingFlow "github.com/m04kA/SMC-AppointmentService/internal/usecase/booking_flow"
)

type BookingFlowUseCase interface {
	Start(ctx context.Context, userID int64) (*bookingFlow.View, error)
	Get(ctx context.Context, flowID string, userID int64) (*bookingFlow.View, error)
	Execute(ctx context.Context, req *bookingFlow.ActionRequest) (*bookingFlow.View, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
