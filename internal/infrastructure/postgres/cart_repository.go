package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo carritos del POS en PostgreSQL. Save reescribe las líneas en una transacción.
type CartRepo struct {
	q  Querier
	tx *TxRunner
}

// NewCartRepository construye el adaptador. tx se usa para Save.
func NewCartRepository(q Querier, tx *TxRunner) *CartRepo {
	return &CartRepo{q: q, tx: tx}
}

// Get carga cabecera y líneas; (nil, nil) si la sesión no tiene carrito.
func (r *CartRepo) Get(ctx context.Context, sessionID string) (*entity.Cart, error) {
	cart := entity.Cart{SessionID: sessionID}
	err := r.q.QueryRow(ctx,
		`SELECT customer_name, discount, updated_at FROM pos_carts WHERE session_id = $1`, sessionID,
	).Scan(&cart.CustomerName, &cart.Discount, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT product_id, product_name, unit_price, quantity, available_stock
		FROM pos_cart_items WHERE session_id = $1 ORDER BY position`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	cart.Items = make([]entity.CartItem, 0)
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.UnitPrice, &it.Quantity, &it.AvailableStock); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return &cart, nil
}

// Save upsert de la cabecera y reemplazo completo de las líneas.
func (r *CartRepo) Save(ctx context.Context, cart *entity.Cart) error {
	cart.UpdatedAt = time.Now()
	err := r.tx.Run(ctx, func(q Querier) error {
		_, err := q.Exec(ctx, `
			INSERT INTO pos_carts (session_id, customer_name, discount, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (session_id)
			DO UPDATE SET customer_name = EXCLUDED.customer_name, discount = EXCLUDED.discount, updated_at = EXCLUDED.updated_at`,
			cart.SessionID, cart.CustomerName, cart.Discount, cart.UpdatedAt)
		if err != nil {
			return fmt.Errorf("upsert cart: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM pos_cart_items WHERE session_id = $1`, cart.SessionID); err != nil {
			return fmt.Errorf("clear cart items: %w", err)
		}
		for i, it := range cart.Items {
			_, err := q.Exec(ctx, `
				INSERT INTO pos_cart_items (session_id, position, product_id, product_name, unit_price, quantity, available_stock)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				cart.SessionID, i, it.ProductID, it.ProductName, it.UnitPrice, it.Quantity, it.AvailableStock)
			if err != nil {
				return fmt.Errorf("insert cart item: %w", err)
			}
		}
		return nil
	})
	if err != nil && isForeignKeyViolation(err) {
		return domain.ErrSessionExpired
	}
	return err
}

// Delete vacía el carrito de la sesión.
func (r *CartRepo) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM pos_carts WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
