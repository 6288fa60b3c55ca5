package callbacktypes

import (
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/state"
	"github.com/Freeeeeet/tutor_scheduler/internal/service"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService         *service.UserService
	AvailabilityService *service.AvailabilityService
	BookingService      *service.BookingService
	StateManager        *state.Manager
	Logger              *zap.Logger
}
