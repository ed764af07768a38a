// Package postgres archives simulated orders in PostgreSQL via GORM.
// One row per order, with the line summaries denormalized into a text
// array so the archive stays queryable without a join.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/vegefoods/cart-service/internal/domains/checkout/domain"
	"github.com/vegefoods/cart-service/internal/domains/checkout/ports"
)

var _ ports.OrderArchive = (*Archive)(nil)

// Archive is a PostgreSQL-backed order archive.
type Archive struct {
	db *gorm.DB
}

// NewArchive wires a PostgreSQL-backed archive. Caller manages the DB
// lifecycle; schema is applied by the platform migrations.
func NewArchive(db *gorm.DB) *Archive {
	return &Archive{db: db}
}

type orderRecord struct {
	ID            string         `gorm:"primaryKey;column:id;size:32"`
	FirstName     string         `gorm:"column:first_name"`
	LastName      string         `gorm:"column:last_name"`
	Email         string         `gorm:"column:email"`
	Phone         string         `gorm:"column:phone"`
	Address       string         `gorm:"column:address"`
	City          string         `gorm:"column:city"`
	Notes         string         `gorm:"column:notes"`
	LineSummaries pq.StringArray `gorm:"column:line_summaries;type:text[]"`
	Subtotal      int64          `gorm:"column:subtotal"`
	Discount      int64          `gorm:"column:discount"`
	Delivery      int64          `gorm:"column:delivery"`
	Total         int64          `gorm:"column:total"`
	PromoCode     string         `gorm:"column:promo_code;size:64"`
	CreatedAt     time.Time      `gorm:"column:created_at;index"`
}

func (orderRecord) TableName() string { return "order_records" }

func newOrderRecord(order domain.Order) orderRecord {
	return orderRecord{
		ID:            order.ID,
		FirstName:     order.Customer.FirstName,
		LastName:      order.Customer.LastName,
		Email:         order.Customer.Email,
		Phone:         order.Customer.Phone,
		Address:       order.Customer.Address,
		City:          order.Customer.City,
		Notes:         order.Customer.Notes,
		LineSummaries: summarizeLines(order.Lines),
		Subtotal:      order.Subtotal,
		Discount:      order.Discount,
		Delivery:      order.Delivery,
		Total:         order.Total,
		PromoCode:     order.PromoCode,
		CreatedAt:     order.CreatedAt,
	}
}

// Record inserts the order. Order IDs derive from the submission
// instant, so a duplicate insert means the same submission replayed;
// it is reported as an error rather than overwriting the row.
func (a *Archive) Record(ctx context.Context, order domain.Order) error {
	if a == nil || a.db == nil {
		return errors.New("postgres order archive not configured")
	}
	record := newOrderRecord(order)
	return a.db.WithContext(ctx).Create(&record).Error
}

// Recent returns the latest archived orders, newest first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	if a == nil || a.db == nil {
		return nil, errors.New("postgres order archive not configured")
	}
	if limit <= 0 {
		limit = 50
	}
	var records []orderRecord
	if err := a.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *orderRecord) toDomain() domain.Order {
	return domain.Order{
		ID: r.ID,
		Customer: domain.CustomerInfo{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
			Phone:     r.Phone,
			Address:   r.Address,
			City:      r.City,
			Notes:     r.Notes,
		},
		Subtotal:  r.Subtotal,
		Discount:  r.Discount,
		Delivery:  r.Delivery,
		Total:     r.Total,
		PromoCode: r.PromoCode,
		CreatedAt: r.CreatedAt,
	}
}

func summarizeLines(lines []domain.OrderLine) pq.StringArray {
	if len(lines) == 0 {
		return nil
	}
	arr := make(pq.StringArray, 0, len(lines))
	for _, line := range lines {
		arr = append(arr, fmt.Sprintf("%s x%d = %d", line.Name, line.Quantity, line.LineTotal))
	}
	return arr
}
