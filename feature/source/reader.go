package source

import (
	"context"
	"time"

	"warehouse-sync/feature/source/models"

	"gorm.io/gorm"
)

// Reader exposes typed change-detection queries against the operational
// store. A zero `since` means "everything" (full load); otherwise only rows
// whose change timestamp exceeds `since` are returned.
type Reader struct {
	db *gorm.DB
}

// NewReader creates a reader over the operational store connection.
func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

func (r *Reader) changed(ctx context.Context, since time.Time) *gorm.DB {
	q := r.db.WithContext(ctx)
	if !since.IsZero() {
		q = q.Where("last_update > ?", since)
	}
	return q
}

// Actors returns actors changed since the given watermark.
func (r *Reader) Actors(ctx context.Context, since time.Time) ([]models.Actor, error) {
	var rows []models.Actor
	err := r.changed(ctx, since).Find(&rows).Error
	return rows, err
}

// Categories returns categories changed since the given watermark.
func (r *Reader) Categories(ctx context.Context, since time.Time) ([]models.Category, error) {
	var rows []models.Category
	err := r.changed(ctx, since).Find(&rows).Error
	return rows, err
}

// Stores returns stores changed since the given watermark, with the
// address -> city -> country chain eager-loaded for denormalization.
func (r *Reader) Stores(ctx context.Context, since time.Time) ([]models.Store, error) {
	var rows []models.Store
	err := r.changed(ctx, since).
		Preload("Address.City.Country").
		Find(&rows).Error
	return rows, err
}

// Customers returns customers changed since the given watermark, with the
// address chain eager-loaded.
func (r *Reader) Customers(ctx context.Context, since time.Time) ([]models.Customer, error) {
	var rows []models.Customer
	err := r.changed(ctx, since).
		Preload("Address.City.Country").
		Find(&rows).Error
	return rows, err
}

// Films returns films changed since the given watermark, with the language
// eager-loaded.
func (r *Reader) Films(ctx context.Context, since time.Time) ([]models.Film, error) {
	var rows []models.Film
	err := r.changed(ctx, since).
		Preload("Language").
		Find(&rows).Error
	return rows, err
}

// FilmActors returns film/actor associations changed since the watermark.
func (r *Reader) FilmActors(ctx context.Context, since time.Time) ([]models.FilmActor, error) {
	var rows []models.FilmActor
	err := r.changed(ctx, since).Find(&rows).Error
	return rows, err
}

// FilmCategories returns film/category associations changed since the watermark.
func (r *Reader) FilmCategories(ctx context.Context, since time.Time) ([]models.FilmCategory, error) {
	var rows []models.FilmCategory
	err := r.changed(ctx, since).Find(&rows).Error
	return rows, err
}

// Rentals returns rentals whose own row changed OR whose business timestamp
// (rental date) falls after the watermark. A rental opened before the
// watermark but returned after it has a fresh last_update and is picked up
// through the first arm.
func (r *Reader) Rentals(ctx context.Context, since time.Time) ([]models.Rental, error) {
	var rows []models.Rental
	q := r.db.WithContext(ctx).Preload("Inventory")
	if !since.IsZero() {
		q = q.Where("last_update > ? OR rental_date > ?", since, since)
	}
	err := q.Find(&rows).Error
	return rows, err
}

// Payments returns payments whose own row changed OR whose payment date falls
// after the watermark. The rental -> inventory chain is eager-loaded because
// the payment fact resolves its store through it.
func (r *Reader) Payments(ctx context.Context, since time.Time) ([]models.Payment, error) {
	var rows []models.Payment
	q := r.db.WithContext(ctx).Preload("Rental.Inventory")
	if !since.IsZero() {
		q = q.Where("last_update > ? OR payment_date > ?", since, since)
	}
	err := q.Find(&rows).Error
	return rows, err
}

// TransactionDates returns the distinct set of civil dates carried by rental
// and payment timestamps changed since the watermark. Rental rows contribute
// both the rental date and, when present, the return date. The result feeds
// the date dimension, so dates are returned raw; deduplication happens in
// the synchronizer against the target's existing keys.
func (r *Reader) TransactionDates(ctx context.Context, since time.Time) ([]time.Time, error) {
	rentals, err := r.Rentals(ctx, since)
	if err != nil {
		return nil, err
	}
	payments, err := r.Payments(ctx, since)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(rentals)*2+len(payments))
	for _, rental := range rentals {
		dates = append(dates, rental.RentalDate)
		if rental.ReturnDate != nil {
			dates = append(dates, *rental.ReturnDate)
		}
	}
	for _, payment := range payments {
		dates = append(dates, payment.PaymentDate)
	}
	return dates, nil
}
