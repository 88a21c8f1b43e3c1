package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sliceline/pizzaorders/internal/adapter/storage"
	"github.com/sliceline/pizzaorders/internal/core/domain"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

var orderColumns = []string{
	"id", "number",
	"customer_name", "customer_phone", "customer_email",
	"delivery_address", "delivery_apartment", "delivery_entrance",
	"delivery_floor", "delivery_comment",
	"total_amount", "delivery_fee", "status", "payment_method",
	"estimated_delivery_at", "created_at", "updated_at",
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.Number,
		&order.Customer.Name,
		&order.Customer.Phone,
		&order.Customer.Email,
		&order.Delivery.Address,
		&order.Delivery.Apartment,
		&order.Delivery.Entrance,
		&order.Delivery.Floor,
		&order.Delivery.Comment,
		&order.TotalAmount,
		&order.DeliveryFee,
		&order.Status,
		&order.PaymentMethod,
		&order.EstimatedDeliveryAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (or *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, or.db, func(tx pgx.Tx) error {
		orderSt := or.db.QueryBuilder.
			Insert("orders").
			Columns("number",
				"customer_name", "customer_phone", "customer_email",
				"delivery_address", "delivery_apartment", "delivery_entrance",
				"delivery_floor", "delivery_comment",
				"total_amount", "delivery_fee", "status", "payment_method",
				"estimated_delivery_at").
			Values(order.Number,
				order.Customer.Name, order.Customer.Phone, order.Customer.Email,
				order.Delivery.Address, order.Delivery.Apartment, order.Delivery.Entrance,
				order.Delivery.Floor, order.Delivery.Comment,
				order.TotalAmount, order.DeliveryFee, order.Status, order.PaymentMethod,
				order.EstimatedDeliveryAt).
			Suffix("returning id")

		sql, args, err := orderSt.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&(order.ID))
		if err != nil {
			return err
		}

		for _, item := range order.Items {
			itemSt := or.db.QueryBuilder.
				Insert("order_items").
				Columns("order_id", "product_id", "size", "quantity", "unit_price").
				Values(order.ID, item.ProductID, item.Size, item.Quantity, item.UnitPrice)

			sql, args, err := itemSt.ToSql()
			if err != nil {
				return err
			}

			_, err = tx.Exec(ctx, sql, args...)
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return or.ReadOrder(ctx, order.ID)
}

func (or *Repository) ReadOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	return or.readOrderWhere(ctx, sq.Eq{"id": id})
}

func (or *Repository) ReadOrderByNumber(ctx context.Context, number string) (*domain.Order, error) {
	return or.readOrderWhere(ctx, sq.Eq{"number": number})
}

func (or *Repository) readOrderWhere(ctx context.Context, pred sq.Eq) (*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(pred)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(or.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	if err := or.loadItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

func (or *Repository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at desc")

	if filter.Status != nil {
		statement = statement.Where(sq.Eq{"status": *filter.Status})
	}
	if filter.CustomerPhone != "" {
		statement = statement.Where(sq.Eq{"customer_phone": filter.CustomerPhone})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	if err := or.loadItems(ctx, list); err != nil {
		return nil, err
	}

	return list, nil
}

// loadItems hydrates the line items of every order in one query, resolving
// product references into full product records.
func (or *Repository) loadItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(orders))
	byID := make(map[uint64]*domain.Order, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
		byID[order.ID] = order
	}

	statement := or.db.QueryBuilder.
		Select("oi.order_id", "oi.product_id", "oi.size", "oi.quantity", "oi.unit_price",
			"p.id", "p.name", "p.description", "p.image_url", "p.price", "p.available").
		From("order_items oi").
		Join("products p on p.id = oi.product_id").
		Where(sq.Eq{"oi.order_id": ids}).
		OrderBy("oi.id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uint64
		item := domain.OrderItem{}
		product := domain.Product{}
		err := rows.Scan(
			&orderID,
			&item.ProductID,
			&item.Size,
			&item.Quantity,
			&item.UnitPrice,
			&product.ID,
			&product.Name,
			&product.Description,
			&product.ImageURL,
			&product.Price,
			&product.Available,
		)
		if err != nil {
			return err
		}
		item.Product = &product
		order := byID[orderID]
		order.Items = append(order.Items, item)
	}

	return rows.Err()
}

func (or *Repository) UpdateOrderStatus(ctx context.Context, id uint64, status domain.OrderStatus) (*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Update("orders").
		Set("status", status).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	tag, err := or.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrDataNotFound
	}

	return or.ReadOrder(ctx, id)
}

func (or *Repository) NextOrderSeq(ctx context.Context) (uint64, error) {
	var seq uint64
	err := or.db.QueryRow(ctx, "select nextval('order_number_seq')").Scan(&seq)
	if err != nil {
		return 0, err
	}
	return seq, nil
}

func (or *Repository) ReadProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	statement := or.db.QueryBuilder.
		Select("id", "name", "description", "image_url", "price", "available").
		From("products").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product := domain.Product{}
	err = or.db.QueryRow(ctx, sql, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.ImageURL,
		&product.Price,
		&product.Available,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &product, nil
}

func (or *Repository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	statement := or.db.QueryBuilder.
		Select("id", "name", "description", "image_url", "price", "available").
		From("products").
		OrderBy("id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Product, 0)
	for rows.Next() {
		product := domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.ImageURL,
			&product.Price,
			&product.Available,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &product)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}
