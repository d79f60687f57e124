package http

import (
	"github.com/inventory-dashboard-api/internal/application/auth"
	"github.com/inventory-dashboard-api/internal/infrastructure/products"
	"github.com/inventory-dashboard-api/internal/infrastructure/smtp"
	"github.com/inventory-dashboard-api/internal/pkg/events"
)

// Deps holds all infrastructure dependencies for the router. The repository
// fields are the minimal store interfaces the application services require,
// so tests can swap in mocks without touching DynamoDB.
type Deps struct {
	OTPRepo       auth.OTPStore
	UserRepo      auth.UserStore
	ProductSource products.Source
	Mailer        smtp.Mailer
	Bus           *events.Bus
}
