package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerService manages customer master data and purchase history.
type CustomerService interface {
	// Create rejects duplicate emails with ErrCustomerExists.
	Create(ctx context.Context, name, email, phone string) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
	// Update is partial: blank fields keep their current values.
	Update(ctx context.Context, id int, name, email, phone string) (*Customer, error)
	// History returns the customer's bills, most recent first.
	History(ctx context.Context, id int) ([]Bill, error)
}

type customerService struct {
	pool *pgxpool.Pool
}

func NewCustomerService(pool *pgxpool.Pool) CustomerService {
	return &customerService{pool: pool}
}

func (s *customerService) Create(ctx context.Context, name, email, phone string) (*Customer, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("customer name and email are required: %w", ErrValidation)
	}

	var c Customer
	err := s.pool.QueryRow(ctx, `
		INSERT INTO customers (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, phone, created_at, updated_at
	`, name, email, phone).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrCustomerExists
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &c, nil
}

func (s *customerService) List(ctx context.Context) ([]Customer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, phone, created_at, updated_at
		FROM customers
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *customerService) Update(ctx context.Context, id int, name, email, phone string) (*Customer, error) {
	var c Customer
	err := s.pool.QueryRow(ctx, `
		UPDATE customers
		SET name  = COALESCE(NULLIF($1, ''), name),
		    email = COALESCE(NULLIF($2, ''), email),
		    phone = COALESCE(NULLIF($3, ''), phone),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING id, name, email, phone, created_at, updated_at
	`, name, email, phone, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrCustomerExists
		}
		return nil, fmt.Errorf("failed to update customer %d: %w", id, err)
	}
	return &c, nil
}

func (s *customerService) History(ctx context.Context, id int) ([]Bill, error) {
	var name string
	err := s.pool.QueryRow(ctx, "SELECT name FROM customers WHERE id = $1", id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to resolve customer %d: %w", id, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, customer_id, date, total
		FROM bills
		WHERE customer_id = $1
		ORDER BY date DESC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer history: %w", err)
	}
	defer rows.Close()

	var bills []Bill
	for rows.Next() {
		b := Bill{CustomerName: name}
		if err := rows.Scan(&b.ID, &b.CustomerID, &b.Date, &b.Total); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}
