package purchase

import (
	"context"
	"database/sql"

	"pastafresca-be/internal/coupon"
	"pastafresca-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Purchase) error
	GetByExternalReference(ctx context.Context, ref string) (*Purchase, error)
	List(ctx context.Context, limit, offset int32) ([]*Purchase, error)

	// ApproveOnce flips the purchase to approved/en_preparacion only if it is
	// not already approved. The returned bool reports whether this call won
	// the transition; one-shot side effects key off it.
	ApproveOnce(ctx context.Context, ref, paymentID string) (bool, error)

	// UpdatePaymentStatus is a flat overwrite used for every non-approval
	// branch. A nil fulfillment leaves the operational status untouched.
	UpdatePaymentStatus(ctx context.Context, ref string, status PaymentStatus, fulfillment *FulfillmentStatus, paymentID string) error

	UpdateFulfillmentStatus(ctx context.Context, id string, status FulfillmentStatus) error

	// RecordFailedCheckout keeps a trace of gateway failures after the
	// purchase row was already persisted; the purchase itself is not mutated.
	RecordFailedCheckout(ctx context.Context, purchaseID, reason string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Purchase) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var couponID, couponCode, couponType *string
	var couponValue, couponDiscount *float64
	if p.Coupon != nil {
		couponID = &p.Coupon.CouponID
		couponCode = &p.Coupon.Code
		t := string(p.Coupon.DiscountType)
		couponType = &t
		couponValue = &p.Coupon.Value
		couponDiscount = &p.Coupon.DiscountAmount
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO purchases (
			id, user_id, buyer_name, buyer_email, buyer_phone, buyer_address,
			total_amount, discount_amount, final_amount,
			coupon_id, coupon_code, coupon_discount_type, coupon_value, coupon_discount_amount,
			payment_status, fulfillment_status,
			delivery_option, delivery_slot, comments
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at
	`,
		p.ID, p.UserID, p.BuyerName, p.BuyerEmail, p.BuyerPhone, p.BuyerAddress,
		p.TotalAmount, p.DiscountAmount, p.FinalAmount,
		couponID, couponCode, couponType, couponValue, couponDiscount,
		p.PaymentStatus, p.FulfillmentStatus,
		p.DeliveryOption, p.DeliverySlot, p.Comments,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}

	for _, item := range p.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO purchase_items (purchase_id, product_id, name, quantity, unit_price, image_url)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.ID, item.ProductID, item.Name, item.Quantity, item.UnitPrice, item.ImageURL)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) GetByExternalReference(ctx context.Context, ref string) (*Purchase, error) {
	query := `
		SELECT id, user_id, buyer_name, buyer_email, buyer_phone, buyer_address,
		       total_amount, discount_amount, final_amount,
		       coupon_id, coupon_code, coupon_discount_type, coupon_value, coupon_discount_amount,
		       payment_status, fulfillment_status, payment_id,
		       delivery_option, delivery_slot, comments, created_at, updated_at
		FROM purchases
		WHERE id = $1
	`

	p, err := scanPurchase(r.db.QueryRowContext(ctx, query, ref))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items, err := r.fetchItems(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Items = items

	return p, nil
}

func (r *repository) List(ctx context.Context, limit, offset int32) ([]*Purchase, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"))

	query := `
		SELECT id, user_id, buyer_name, buyer_email, buyer_phone, buyer_address,
		       total_amount, discount_amount, final_amount,
		       coupon_id, coupon_code, coupon_discount_type, coupon_value, coupon_discount_amount,
		       payment_status, fulfillment_status, payment_id,
		       delivery_option, delivery_slot, comments, created_at, updated_at
		FROM purchases
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list purchases", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var purchases []*Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range purchases {
		items, err := r.fetchItems(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Items = items
	}

	return purchases, nil
}

func (r *repository) ApproveOnce(ctx context.Context, ref, paymentID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE purchases
		SET payment_status = 'approved',
		    fulfillment_status = 'en_preparacion',
		    payment_id = $2,
		    updated_at = now()
		WHERE id = $1 AND payment_status <> 'approved'
	`, ref, paymentID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, ref string, status PaymentStatus, fulfillment *FulfillmentStatus, paymentID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE purchases
		SET payment_status = $2,
		    fulfillment_status = COALESCE($3, fulfillment_status),
		    payment_id = $4,
		    updated_at = now()
		WHERE id = $1
	`, ref, status, fulfillment, paymentID)
	return err
}

func (r *repository) UpdateFulfillmentStatus(ctx context.Context, id string, status FulfillmentStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE purchases
		SET fulfillment_status = $2, updated_at = now()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) RecordFailedCheckout(ctx context.Context, purchaseID, reason string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO failed_purchases (purchase_id, reason)
		VALUES ($1, $2)
	`, purchaseID, reason)
	return err
}

func (r *repository) fetchItems(ctx context.Context, purchaseID string) ([]LineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, quantity, unit_price, image_url
		FROM purchase_items
		WHERE purchase_id = $1
		ORDER BY id
	`, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var item LineItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice, &item.ImageURL); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPurchase(row rowScanner) (*Purchase, error) {
	var p Purchase
	var couponID, couponCode, couponType sql.NullString
	var couponValue, couponDiscount sql.NullFloat64
	var paymentID sql.NullString

	err := row.Scan(
		&p.ID, &p.UserID, &p.BuyerName, &p.BuyerEmail, &p.BuyerPhone, &p.BuyerAddress,
		&p.TotalAmount, &p.DiscountAmount, &p.FinalAmount,
		&couponID, &couponCode, &couponType, &couponValue, &couponDiscount,
		&p.PaymentStatus, &p.FulfillmentStatus, &paymentID,
		&p.DeliveryOption, &p.DeliverySlot, &p.Comments, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if couponID.Valid {
		p.Coupon = &CouponSnapshot{
			CouponID:       couponID.String,
			Code:           couponCode.String,
			DiscountType:   coupon.DiscountType(couponType.String),
			Value:          couponValue.Float64,
			DiscountAmount: couponDiscount.Float64,
		}
	}
	p.PaymentID = paymentID.String

	return &p, nil
}
