package purchase

import (
	"context"
	"fmt"
	"strings"

	"pastafresca-be/internal/coupon"
	"pastafresca-be/internal/logger"
	"pastafresca-be/internal/metrics"
	"pastafresca-be/internal/payment"
	"pastafresca-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// Checkout validates the cart against the catalog, applies an optional
	// coupon, persists a pending purchase, and opens a hosted payment session.
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)

	// Reconcile processes an asynchronous payment notification by fetching
	// the authoritative payment from the gateway and transitioning the stored
	// purchase. Safe to call repeatedly for the same payment.
	Reconcile(ctx context.Context, paymentID string) error

	GetByExternalReference(ctx context.Context, ref string) (*Purchase, error)
	List(ctx context.Context, limit, offset int32) ([]*Purchase, error)
	UpdateFulfillmentStatus(ctx context.Context, id string, status FulfillmentStatus) error
}

type service struct {
	repo     Repository
	products product.Repository
	coupons  coupon.Service
	gateway  payment.Gateway
}

func NewService(repo Repository, products product.Repository, coupons coupon.Service, gateway payment.Gateway) Service {
	return &service{
		repo:     repo,
		products: products,
		coupons:  coupons,
		gateway:  gateway,
	}
}

func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Int("item_count", len(input.Items)),
	)

	metrics.CheckoutsStarted.Inc()

	// 1. Payload validation: nothing is persisted past this point on failure.
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(input.BuyerEmail) == "" {
		return nil, ErrMissingEmail
	}

	// 2. Authoritative catalog lookups. Prices always come from the catalog
	// record, never from the client payload.
	lines := make([]LineItem, 0, len(input.Items))
	priceInputs := make([]coupon.LineInput, 0, len(input.Items))

	for i, item := range input.Items {
		logItem := log.With(
			zap.Int("index", i),
			zap.String("product_id", item.ProductID),
			zap.Int("quantity", item.Quantity),
		)

		if item.Quantity <= 0 {
			logItem.Warn("invalid quantity")
			return nil, ErrInvalidQuantity
		}

		p, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			logItem.Error("failed to fetch product", zap.Error(err))
			return nil, err
		}
		if p == nil {
			logItem.Warn("product not found")
			return nil, fmt.Errorf("%w: %s", product.ErrNotFound, item.ProductID)
		}
		if !p.Available {
			logItem.Warn("product not available")
			return nil, fmt.Errorf("%w: %s", product.ErrUnavailable, p.Name)
		}
		if p.TrackStock && p.Stock < item.Quantity {
			logItem.Warn("insufficient stock", zap.Int("stock", p.Stock))
			return nil, fmt.Errorf("%w: %s", product.ErrInsufficientStock, p.Name)
		}

		lines = append(lines, LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  item.Quantity,
			UnitPrice: p.Price,
			ImageURL:  p.ImageURL,
		})
		priceInputs = append(priceInputs, coupon.LineInput{
			Quantity:  item.Quantity,
			UnitPrice: p.Price,
		})
	}

	// 3. Optional coupon.
	var applied *coupon.Coupon
	if input.CouponCode != "" {
		c, err := s.coupons.ValidateCode(ctx, input.CouponCode)
		if err != nil {
			return nil, err
		}
		applied = c
	}

	pricing := coupon.Apply(priceInputs, applied)

	// 4. Snapshot the discounted unit prices into the purchase record.
	for i := range lines {
		lines[i].UnitPrice = pricing.Lines[i].FinalPrice
	}

	p := &Purchase{
		ID:                uuid.New().String(),
		UserID:            input.UserID,
		BuyerName:         input.BuyerName,
		BuyerEmail:        input.BuyerEmail,
		BuyerPhone:        input.BuyerPhone,
		BuyerAddress:      input.BuyerAddress,
		Items:             lines,
		TotalAmount:       pricing.TotalAmount,
		DiscountAmount:    pricing.DiscountAmount,
		FinalAmount:       pricing.FinalAmount,
		PaymentStatus:     PaymentPending,
		FulfillmentStatus: FulfillmentPendientePago,
		DeliveryOption:    input.DeliveryOption,
		DeliverySlot:      input.DeliverySlot,
		Comments:          input.Comments,
	}
	if applied != nil {
		p.Coupon = &CouponSnapshot{
			CouponID:       applied.ID,
			Code:           applied.Code,
			DiscountType:   applied.DiscountType,
			Value:          applied.Value,
			DiscountAmount: pricing.DiscountAmount,
		}
	}

	log = log.With(
		zap.String("purchase_id", p.ID),
		zap.Float64("final_amount", p.FinalAmount),
	)

	// 5. Persist pending before any external call.
	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to persist purchase", zap.Error(err))
		return nil, err
	}

	// 6. Open the hosted payment session using the discounted prices and the
	// purchase id as external reference.
	prefItems := make([]payment.PreferenceItem, 0, len(lines))
	for _, line := range lines {
		prefItems = append(prefItems, payment.PreferenceItem{
			ID:         line.ProductID,
			Title:      line.Name,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			PictureURL: line.ImageURL,
			CurrencyID: "ARS",
		})
	}

	pref, err := s.gateway.CreatePreference(ctx, payment.PreferenceRequest{
		ExternalReference: p.ID,
		Items:             prefItems,
		Payer: payment.Payer{
			Name:  input.BuyerName,
			Email: input.BuyerEmail,
			Phone: input.BuyerPhone,
		},
	})
	if err != nil {
		// The purchase stays pending with no session attached; there is no
		// cleanup sweep, only a failure record for operators.
		metrics.CheckoutsFailed.Inc()
		log.Error("failed to create payment preference", zap.Error(err))
		if recErr := s.repo.RecordFailedCheckout(ctx, p.ID, err.Error()); recErr != nil {
			log.Error("failed to record checkout failure", zap.Error(recErr))
		}
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	log.Info("checkout session created", zap.String("preference_id", pref.ID))

	return &CheckoutResult{
		PurchaseID:       p.ID,
		PreferenceID:     pref.ID,
		InitPoint:        pref.InitPoint,
		SandboxInitPoint: pref.SandboxInitPoint,
	}, nil
}

func (s *service) Reconcile(ctx context.Context, paymentID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Reconcile"),
		zap.String("payment_id", paymentID),
	)

	// Webhook bodies are untrusted; only the id is used, and the status is
	// fetched from the gateway.
	info, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		log.Error("failed to fetch payment from gateway", zap.Error(err))
		return err
	}

	log = log.With(
		zap.String("status", info.Status),
		zap.String("external_reference", info.ExternalReference),
	)

	p, err := s.repo.GetByExternalReference(ctx, info.ExternalReference)
	if err != nil {
		log.Error("failed to look up purchase", zap.Error(err))
		return err
	}
	if p == nil {
		log.Warn("payment references unknown purchase")
		return fmt.Errorf("%w: %s", ErrUnknownOrder, info.ExternalReference)
	}

	switch info.Status {
	case payment.StatusApproved:
		first, err := s.repo.ApproveOnce(ctx, p.ID, info.ID)
		if err != nil {
			return err
		}
		if !first {
			log.Info("purchase already approved, skipping side effects")
			return nil
		}
		s.applyApprovalSideEffects(ctx, p, log)
		metrics.PaymentsApproved.Inc()
		log.Info("purchase approved")

	case payment.StatusRejected, payment.StatusCancelled:
		cancelled := FulfillmentCancelado
		if err := s.repo.UpdatePaymentStatus(ctx, p.ID, PaymentStatus(info.Status), &cancelled, info.ID); err != nil {
			return err
		}
		log.Info("purchase closed", zap.String("payment_status", info.Status))

	default:
		// pending, in_process, etc: record the gateway's view, leave the
		// fulfillment pipeline alone.
		if err := s.repo.UpdatePaymentStatus(ctx, p.ID, PaymentPending, nil, info.ID); err != nil {
			return err
		}
		log.Info("purchase still pending")
	}

	return nil
}

// applyApprovalSideEffects runs the one-shot effects of the first approval.
// Failures are logged, not returned: the approval itself already committed.
func (s *service) applyApprovalSideEffects(ctx context.Context, p *Purchase, log *zap.Logger) {
	if p.Coupon != nil {
		if err := s.coupons.MarkUsed(ctx, p.Coupon.CouponID); err != nil {
			log.Error("failed to mark coupon used",
				zap.String("coupon_id", p.Coupon.CouponID),
				zap.Error(err),
			)
		}
	}

	for _, item := range p.Items {
		ok, err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			log.Error("failed to decrement stock",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			continue
		}
		if !ok {
			// Concurrent pending checkouts can oversell; the guard keeps the
			// counter from going negative.
			log.Warn("stock decrement skipped",
				zap.String("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
			)
		}
	}
}

func (s *service) GetByExternalReference(ctx context.Context, ref string) (*Purchase, error) {
	p, err := s.repo.GetByExternalReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *service) List(ctx context.Context, limit, offset int32) ([]*Purchase, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.List(ctx, limit, offset)
}

func (s *service) UpdateFulfillmentStatus(ctx context.Context, id string, status FulfillmentStatus) error {
	validStatuses := map[FulfillmentStatus]bool{
		FulfillmentPendientePago:    true,
		FulfillmentEnPreparacion:    true,
		FulfillmentListoParaEntrega: true,
		FulfillmentEnCamino:         true,
		FulfillmentEntregado:        true,
		FulfillmentCancelado:        true,
	}

	if !validStatuses[status] {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	return s.repo.UpdateFulfillmentStatus(ctx, id, status)
}
