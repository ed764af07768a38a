package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&cartRecord{},
		&orderRecord{},
	)
}

// Cart schema mirrors the cart Postgres store.
type cartRecord struct {
	Key       string    `gorm:"primaryKey;column:key;size:128"`
	Payload   []byte    `gorm:"column:payload;type:jsonb"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (cartRecord) TableName() string { return "cart_records" }

// Order schema mirrors the checkout Postgres archive.
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
