package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operational DVD-rental schema. The synchronizer only ever reads these
// tables; every struct carries the source's own last_update change timestamp.

type Actor struct {
	ActorID    int       `gorm:"primaryKey;column:actor_id"`
	FirstName  string    `gorm:"column:first_name"`
	LastName   string    `gorm:"column:last_name"`
	LastUpdate time.Time `gorm:"column:last_update"`
}

func (Actor) TableName() string { return "actor" }

type Category struct {
	CategoryID int       `gorm:"primaryKey;column:category_id"`
	Name       string    `gorm:"column:name"`
	LastUpdate time.Time `gorm:"column:last_update"`
}

func (Category) TableName() string { return "category" }

type Country struct {
	CountryID  int       `gorm:"primaryKey;column:country_id"`
	Country    string    `gorm:"column:country"`
	LastUpdate time.Time `gorm:"column:last_update"`
}

func (Country) TableName() string { return "country" }

type City struct {
	CityID     int       `gorm:"primaryKey;column:city_id"`
	City       string    `gorm:"column:city"`
	CountryID  int       `gorm:"column:country_id"`
	Country    *Country  `gorm:"foreignKey:CountryID;references:CountryID"`
	LastUpdate time.Time `gorm:"column:last_update"`
}

func (City) TableName() string { return "city" }

type Address struct {
	AddressID  int       `gorm:"primaryKey;column:address_id"`
	Address    string    `gorm:"column:address"`
	District   string    `gorm:"column:district"`
	CityID     int       `gorm:"column:city_id"`
	City       *City     `gorm:"foreignKey:CityID;references:CityID"`
	LastUpdate time.Time `gorm:"column:last_update"`
}

func (Address) TableName() string { return "address" }

type Store struct {
	StoreID    int       `gorm:"primaryKey;column:store_id"`
	AddressID  int       `gorm:"column:address_id"`
	Address    *Address  `gorm:"foreignKey:AddressID;references:AddressID"`
	LastUpdate time.Time `gorm:"column:last_update"`
}

func (Store) TableName() string { return "store" }

type Customer struct {
	CustomerID int       `gorm:"primaryKey;column:customer_id"`
	StoreID    int       `gorm:"column:store_id"`
	FirstName  string    `gorm:"column:first_name"`
	LastName   string    `gorm:"column:last_name"`
	Email      string    `gorm:"column:email"`
	AddressID  int       `gorm:"column:address_id"`
	Address    *Address  `gorm:"foreignKey:AddressID;references:AddressID"`
	Active     bool      `gorm:"column:active"`
	CreateDate time.Time `gorm:"column:create_date"`
	LastUpdate time.Time `gorm:"column:last_update"`
}

func (Customer) TableName() string { return "customer" }

type Language struct {
	LanguageID int       `gorm:"primaryKey;column:language_id"`
	Name       string    `gorm:"column:name"`
	LastUpdate time.Time `gorm:"column:last_update"`
}

func (Language) TableName() string { return "language" }

type Film struct {
	FilmID         int             `gorm:"primaryKey;column:film_id"`
	Title          string          `gorm:"column:title"`
	Description    string          `gorm:"column:description"`
	ReleaseYear    *int            `gorm:"column:release_year"`
	LanguageID     int             `gorm:"column:language_id"`
	Language       *Language       `gorm:"foreignKey:LanguageID;references:LanguageID"`
	RentalDuration int             `gorm:"column:rental_duration"`
	RentalRate     decimal.Decimal `gorm:"column:rental_rate;type:decimal(4,2)"`
	Length         *int            `gorm:"column:length"`
	Rating         string          `gorm:"column:rating"`
	LastUpdate     time.Time       `gorm:"column:last_update"`
}

func (Film) TableName() string { return "film" }

// FilmActor is the film<->actor association, keyed by both sides.
type FilmActor struct {
	ActorID    int       `gorm:"primaryKey;column:actor_id"`
	FilmID     int       `gorm:"primaryKey;column:film_id"`
	LastUpdate time.Time `gorm:"column:last_update"`
}

func (FilmActor) TableName() string { return "film_actor" }

type FilmCategory struct {
	FilmID     int       `gorm:"primaryKey;column:film_id"`
	CategoryID int       `gorm:"primaryKey;column:category_id"`
	LastUpdate time.Time `gorm:"column:last_update"`
}

func (FilmCategory) TableName() string { return "film_category" }

type Inventory struct {
	InventoryID int       `gorm:"primaryKey;column:inventory_id"`
	FilmID      int       `gorm:"column:film_id"`
	StoreID     int       `gorm:"column:store_id"`
	LastUpdate  time.Time `gorm:"column:last_update"`
}

func (Inventory) TableName() string { return "inventory" }

type Rental struct {
	RentalID    int        `gorm:"primaryKey;column:rental_id"`
	RentalDate  time.Time  `gorm:"column:rental_date"`
	InventoryID int        `gorm:"column:inventory_id"`
	Inventory   *Inventory `gorm:"foreignKey:InventoryID;references:InventoryID"`
	CustomerID  int        `gorm:"column:customer_id"`
	ReturnDate  *time.Time `gorm:"column:return_date"`
	StaffID     int        `gorm:"column:staff_id"`
	LastUpdate  time.Time  `gorm:"column:last_update"`
}

func (Rental) TableName() string { return "rental" }

type Payment struct {
	PaymentID   int             `gorm:"primaryKey;column:payment_id"`
	CustomerID  int             `gorm:"column:customer_id"`
	StaffID     int             `gorm:"column:staff_id"`
	RentalID    *int            `gorm:"column:rental_id"`
	Rental      *Rental         `gorm:"foreignKey:RentalID;references:RentalID"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(5,2)"`
	PaymentDate time.Time       `gorm:"column:payment_date"`
	LastUpdate  time.Time       `gorm:"column:last_update"`
}

func (Payment) TableName() string { return "payment" }
