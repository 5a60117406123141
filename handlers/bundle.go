package handlers

import "taskhive/middleware"

// HandlerBundle groups all endpoint handlers plus the shared auth dependency.
type HandlerBundle struct {
	Auth middleware.Authenticator

	User    *UserHandler
	Tasker  *TaskerHandler
	Service *ServiceHandler
	Booking *BookingHandler
	Admin   *AdminHandler
	Storage *StorageHandler
	Health  HealthReporter
}
