package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Star schema for the analytical store. Surrogate keys are generated by the
// warehouse and never reassigned; every dimension keeps the source's natural
// key in a unique column so upserts can carry existing keys forward.

type DimActor struct {
	ActorKey   uint      `gorm:"primaryKey;autoIncrement;column:actor_key"`
	ActorID    int       `gorm:"uniqueIndex;column:actor_id"`
	FirstName  string    `gorm:"column:first_name"`
	LastName   string    `gorm:"column:last_name"`
	LastUpdate time.Time `gorm:"column:last_update"`
}

func (DimActor) TableName() string { return "dim_actor" }

type DimCategory struct {
	CategoryKey uint      `gorm:"primaryKey;autoIncrement;column:category_key"`
	CategoryID  int       `gorm:"uniqueIndex;column:category_id"`
	Name        string    `gorm:"column:name"`
	LastUpdate  time.Time `gorm:"column:last_update"`
}

func (DimCategory) TableName() string { return "dim_category" }

type DimStore struct {
	StoreKey   uint      `gorm:"primaryKey;autoIncrement;column:store_key"`
	StoreID    int       `gorm:"uniqueIndex;column:store_id"`
	Address    string    `gorm:"column:address"`
	District   string    `gorm:"column:district"`
	City       string    `gorm:"column:city"`
	Country    string    `gorm:"column:country"`
	LastUpdate time.Time `gorm:"column:last_update"`
}

func (DimStore) TableName() string { return "dim_store" }

type DimCustomer struct {
	CustomerKey uint      `gorm:"primaryKey;autoIncrement;column:customer_key"`
	CustomerID  int       `gorm:"uniqueIndex;column:customer_id"`
	FirstName   string    `gorm:"column:first_name"`
	LastName    string    `gorm:"column:last_name"`
	Email       string    `gorm:"column:email"`
	City        string    `gorm:"column:city"`
	Country     string    `gorm:"column:country"`
	Active      bool      `gorm:"column:active"`
	LastUpdate  time.Time `gorm:"column:last_update"`
}

func (DimCustomer) TableName() string { return "dim_customer" }

type DimFilm struct {
	FilmKey        uint            `gorm:"primaryKey;autoIncrement;column:film_key"`
	FilmID         int             `gorm:"uniqueIndex;column:film_id"`
	Title          string          `gorm:"column:title"`
	Description    string          `gorm:"column:description"`
	ReleaseYear    *int            `gorm:"column:release_year"`
	Language       string          `gorm:"column:language"`
	RentalDuration int             `gorm:"column:rental_duration"`
	RentalRate     decimal.Decimal `gorm:"column:rental_rate;type:decimal(4,2)"`
	Length         *int            `gorm:"column:length"`
	Rating         string          `gorm:"column:rating"`
	LastUpdate     time.Time       `gorm:"column:last_update"`
}

func (DimFilm) TableName() string { return "dim_film" }

// DimDate is keyed by the calendar-derived YYYYMMDD integer, not an
// autoincrement: the key is a pure function of the date, so reruns can never
// mint a second key for the same day.
type DimDate struct {
	DateKey   int       `gorm:"primaryKey;column:date_key"`
	Date      time.Time `gorm:"column:date"`
	Year      int       `gorm:"column:year"`
	Quarter   int       `gorm:"column:quarter"`
	Month     int       `gorm:"column:month"`
	Day       int       `gorm:"column:day"`
	DayOfWeek int       `gorm:"column:day_of_week"`
	IsWeekend bool      `gorm:"column:is_weekend"`
}

func (DimDate) TableName() string { return "dim_date" }

// BridgeFilmActor carries no attributes; the composite key is the row.
type BridgeFilmActor struct {
	FilmKey  uint `gorm:"primaryKey;column:film_key"`
	ActorKey uint `gorm:"primaryKey;column:actor_key"`
}

func (BridgeFilmActor) TableName() string { return "bridge_film_actor" }

type BridgeFilmCategory struct {
	FilmKey     uint `gorm:"primaryKey;column:film_key"`
	CategoryKey uint `gorm:"primaryKey;column:category_key"`
}

func (BridgeFilmCategory) TableName() string { return "bridge_film_category" }

type FactRental struct {
	RentalKey     uint       `gorm:"primaryKey;autoIncrement;column:rental_key"`
	RentalID      int        `gorm:"uniqueIndex;column:rental_id"`
	RentalDateKey int        `gorm:"column:rental_date_key"`
	ReturnDateKey *int       `gorm:"column:return_date_key"`
	CustomerKey   uint       `gorm:"column:customer_key"`
	FilmKey       uint       `gorm:"column:film_key"`
	StoreKey      uint       `gorm:"column:store_key"`
	RentalDate    time.Time  `gorm:"column:rental_date"`
	ReturnDate    *time.Time `gorm:"column:return_date"`
	// DurationDays is recomputed on every pass from the two dates rather
	// than carried over, so source corrections propagate.
	DurationDays *int      `gorm:"column:duration_days"`
	LastUpdate   time.Time `gorm:"column:last_update"`
}

func (FactRental) TableName() string { return "fact_rental" }

type FactPayment struct {
	PaymentKey  uint            `gorm:"primaryKey;autoIncrement;column:payment_key"`
	PaymentID   int             `gorm:"uniqueIndex;column:payment_id"`
	CustomerKey uint            `gorm:"column:customer_key"`
	StoreKey    uint            `gorm:"column:store_key"`
	DateKey     int             `gorm:"column:date_key"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(5,2)"`
	PaymentDate time.Time       `gorm:"column:payment_date"`
	LastUpdate  time.Time       `gorm:"column:last_update"`
}

func (FactPayment) TableName() string { return "fact_payment" }

// SyncWatermark records, per synchronized table, the moment the last
// successful pass began reading. It is the only durable state the engine
// keeps beyond the star schema itself.
type SyncWatermark struct {
	Table        string    `gorm:"primaryKey;column:table_name" json:"table"`
	LastSyncedAt time.Time `gorm:"column:last_synced_at" json:"last_synced_at"`
}

func (SyncWatermark) TableName() string { return "sync_watermark" }
