package application

import (
	"context"
	"log/slog"
	"time"

	cartdomain "github.com/vegefoods/cart-service/internal/domains/cart/domain"
	cartports "github.com/vegefoods/cart-service/internal/domains/cart/ports"
	"github.com/vegefoods/cart-service/internal/domains/checkout/domain"
	"github.com/vegefoods/cart-service/internal/domains/checkout/ports"
)

// Service runs the simulated checkout: it snapshots the cart into an
// order, archives it, empties the cart and returns a confirmation. No
// payment or fulfilment happens behind it.
type Service struct {
	cart    cartports.Service
	archive ports.OrderArchive
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithArchive injects an order archive backend.
func WithArchive(archive ports.OrderArchive) Option {
	return func(s *Service) {
		if archive != nil {
			s.archive = archive
		}
	}
}

// WithClock overrides the submission clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the checkout service over the cart service.
func NewService(cart cartports.Service, opts ...Option) *Service {
	s := &Service{
		cart:    cart,
		archive: ports.NoopArchive,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SubmitOrder turns the current cart into a simulated order. A promo
// code entered on the checkout form is applied first; when the code is
// unknown the submission still goes through without it, matching the
// storefront behaviour. An empty cart is rejected with ErrEmptyCart.
func (s *Service) SubmitOrder(ctx context.Context, request domain.OrderRequest) (*domain.Confirmation, error) {
	cart, totals, err := s.cart.Cart(ctx)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	appliedCode := ""
	if request.PromoCode != "" {
		result, err := s.cart.ApplyPromo(ctx, request.PromoCode)
		if err != nil {
			return nil, err
		}
		cart, totals = result.Cart, result.Totals
		if result.Success {
			if cart.Promo != nil {
				appliedCode = cart.Promo.Code
			}
		} else {
			s.logger.WarnContext(ctx, "code promo refusé à la commande",
				slog.String("code", request.PromoCode))
		}
	} else if cart.Promo != nil {
		appliedCode = cart.Promo.Code
	}

	submittedAt := s.now()
	order := domain.Order{
		ID:        domain.NewOrderID(submittedAt),
		Customer:  request.Customer,
		Lines:     orderLines(cart),
		Subtotal:  totals.Subtotal,
		Discount:  totals.Discount,
		Delivery:  totals.Delivery,
		Total:     totals.Total,
		PromoCode: appliedCode,
		CreatedAt: submittedAt,
	}

	if err := s.archive.Record(ctx, order); err != nil {
		// Archiving is best effort; the order still confirms.
		s.logger.ErrorContext(ctx, "échec de l'archivage de la commande",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()))
	}

	s.logger.InfoContext(ctx, "commande simulée enregistrée",
		slog.String("order_id", order.ID),
		slog.Int("lines", len(order.Lines)),
		slog.Int64("total", order.Total))

	if _, err := s.cart.Clear(ctx); err != nil {
		return nil, err
	}

	return &domain.Confirmation{
		OrderID: order.ID,
		Message: domain.ConfirmationMessage(request.Customer.FirstName, order.ID),
	}, nil
}

func orderLines(cart cartdomain.Cart) []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, domain.OrderLine{
			ProductID: item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		})
	}
	return lines
}

var _ ports.Service = (*Service)(nil)
