// Package stores holds the client-side state of a storefront user: the
// session, the cart and the checkout sequence that turns one into an order.
package stores

import (
	"context"
	"errors"

	"github.com/junaidrashid-git/storefront/events"
	"github.com/junaidrashid-git/storefront/gateway"
	"github.com/junaidrashid-git/storefront/models"
	"go.uber.org/zap"
)

var (
	ErrNotAuthenticated = errors.New("not signed in")
	ErrEmptyCart        = errors.New("cart is empty")

	// ErrMissingProfile is wrapped by AuthError when valid credentials belong
	// to an identity without a users row.
	ErrMissingProfile = errors.New("account has no profile")
)

// AuthGateway issues and resolves sessions.
type AuthGateway interface {
	SignUp(ctx context.Context, email, password string, meta gateway.Metadata) (*gateway.Identity, error)
	SignIn(ctx context.Context, email, password string) (*gateway.Session, error)
	SignOut(ctx context.Context) error
	CurrentSession(ctx context.Context) (*gateway.Session, error)
	DeleteIdentity(ctx context.Context, userID string) error
}

type UserTable interface {
	FindUser(ctx context.Context, id string) (*models.User, error)
	InsertUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id string, patch gateway.UserPatch) error
}

type CartTable interface {
	ListCartItems(ctx context.Context, userID string) ([]models.CartItem, error)
	AddCartQuantity(ctx context.Context, userID, productID string, delta int) error
	SetCartQuantity(ctx context.Context, userID, productID string, quantity int) error
	DeleteCartItem(ctx context.Context, userID, productID string) error
}

type OrderTable interface {
	PlaceOrder(ctx context.Context, userID string, order *models.Order) error
}

// Gateway is everything the stores need from the backend.
type Gateway interface {
	AuthGateway
	UserTable
	CartTable
	OrderTable
}

// Stores bundles the stores of one client, wired to each other.
type Stores struct {
	Session  *SessionStore
	Cart     *CartStore
	Checkout *Checkout
}

// New builds the stores for one client. A nil publisher disables order events.
func New(gw Gateway, publisher events.Publisher, log *zap.Logger) *Stores {
	session := NewSessionStore(gw, gw, log)
	cart := NewCartStore(gw, session, log)
	session.OnSignOut(cart.Reset)
	return &Stores{
		Session:  session,
		Cart:     cart,
		Checkout: NewCheckout(cart, gw, session, publisher, log),
	}
}
