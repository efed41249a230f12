package product

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, onlyAvailable bool) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) error

	// DecrementStock subtracts qty from tracked stock. It reports whether a
	// row was actually updated, so callers can tell a guarded no-op
	// (stock < qty or untracked product) from success.
	DecrementStock(ctx context.Context, id string, qty int) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	query := `
		SELECT id, name, description, price, image_url, available, stock, track_stock, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.Available, &p.Stock, &p.TrackStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) List(ctx context.Context, onlyAvailable bool) ([]Product, error) {
	query := `
		SELECT id, name, description, price, image_url, available, stock, track_stock, created_at, updated_at
		FROM products
	`
	if onlyAvailable {
		query += ` WHERE available`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
			&p.Available, &p.Stock, &p.TrackStock, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) Create(ctx context.Context, p Product) (Product, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, price, image_url, available, stock, track_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`,
		p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.Available, p.Stock, p.TrackStock,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	return p, err
}

func (r *repository) Update(ctx context.Context, p Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, image_url = $5,
		    available = $6, stock = $7, track_stock = $8, updated_at = now()
		WHERE id = $1
	`,
		p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.Available, p.Stock, p.TrackStock,
	)
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

func (r *repository) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND track_stock AND stock >= $2
	`, id, qty)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
