package sync

import (
	"context"
	"fmt"
	"time"

	"warehouse-sync/feature/calendar"
	"warehouse-sync/feature/keymap"
	"warehouse-sync/feature/source"
	srcmodels "warehouse-sync/feature/source/models"
	"warehouse-sync/feature/warehouse/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// dimensionCaches bundles the run-scoped key maps the fact and bridge passes
// resolve against.
type dimensionCaches struct {
	actor    *keymap.Cache
	category *keymap.Cache
	store    *keymap.Cache
	customer *keymap.Cache
	film     *keymap.Cache
}

// syncRentalFacts upserts the rental fact. Every foreign natural key must
// resolve; a rental with any unresolved reference is skipped with a warning
// and never persisted. Existing facts are matched by rental_id and keep
// their fact key, which makes reruns over an overlapping window idempotent.
func syncRentalFacts(ctx context.Context, reader *source.Reader, tx *gorm.DB, caches dimensionCaches, since time.Time, log *zap.Logger) (*EntityResult, error) {
	rentals, err := reader.Rentals(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rentals: %w", err)
	}

	existing, err := keymap.Build(ctx, tx, "fact_rental", "rental_id", "rental_key")
	if err != nil {
		return nil, err
	}

	res := &EntityResult{Table: "fact_rental"}

	for _, rental := range rentals {
		fact, warn := buildRentalFact(rental, caches)
		if warn != "" {
			res.Skipped++
			res.Warnings = append(res.Warnings, warn)
			log.Warn("Skipping rental fact", zap.Int("rental_id", rental.RentalID), zap.String("reason", warn))
			continue
		}

		if key, ok := existing.Resolve(rental.RentalID); ok {
			fact.RentalKey = key
			if err := tx.Save(&fact).Error; err != nil {
				return nil, fmt.Errorf("failed to update fact_rental %d: %w", rental.RentalID, err)
			}
			res.Updated++
		} else {
			if err := tx.Create(&fact).Error; err != nil {
				return nil, fmt.Errorf("failed to insert fact_rental %d: %w", rental.RentalID, err)
			}
			existing.Put(rental.RentalID, fact.RentalKey)
			res.Inserted++
		}
	}

	return res, nil
}

func buildRentalFact(rental srcmodels.Rental, caches dimensionCaches) (models.FactRental, string) {
	if rental.Inventory == nil {
		return models.FactRental{}, fmt.Sprintf("rental %d: inventory %d not joinable", rental.RentalID, rental.InventoryID)
	}

	customerKey, ok := caches.customer.Resolve(rental.CustomerID)
	if !ok {
		return models.FactRental{}, fmt.Sprintf("rental %d: customer %d not in dimension", rental.RentalID, rental.CustomerID)
	}
	filmKey, ok := caches.film.Resolve(rental.Inventory.FilmID)
	if !ok {
		return models.FactRental{}, fmt.Sprintf("rental %d: film %d not in dimension", rental.RentalID, rental.Inventory.FilmID)
	}
	storeKey, ok := caches.store.Resolve(rental.Inventory.StoreID)
	if !ok {
		return models.FactRental{}, fmt.Sprintf("rental %d: store %d not in dimension", rental.RentalID, rental.Inventory.StoreID)
	}

	fact := models.FactRental{
		RentalID:      rental.RentalID,
		RentalDateKey: calendar.Key(rental.RentalDate),
		CustomerKey:   customerKey,
		FilmKey:       filmKey,
		StoreKey:      storeKey,
		RentalDate:    rental.RentalDate,
		ReturnDate:    rental.ReturnDate,
		LastUpdate:    rental.LastUpdate,
	}

	// Duration is derived, not carried over, so a corrected return date in
	// the source rewrites it on the next pass.
	if rental.ReturnDate != nil {
		returnKey := calendar.Key(*rental.ReturnDate)
		fact.ReturnDateKey = &returnKey
		days := int(rental.ReturnDate.Sub(rental.RentalDate).Hours() / 24)
		fact.DurationDays = &days
	}

	return fact, ""
}

// syncPaymentFacts upserts the payment fact. The store is resolved through
// the payment's rental -> inventory chain; a payment detached from any
// rental cannot be attributed to a store and is skipped with a warning.
func syncPaymentFacts(ctx context.Context, reader *source.Reader, tx *gorm.DB, caches dimensionCaches, since time.Time, log *zap.Logger) (*EntityResult, error) {
	payments, err := reader.Payments(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}

	existing, err := keymap.Build(ctx, tx, "fact_payment", "payment_id", "payment_key")
	if err != nil {
		return nil, err
	}

	res := &EntityResult{Table: "fact_payment"}

	for _, payment := range payments {
		fact, warn := buildPaymentFact(payment, caches)
		if warn != "" {
			res.Skipped++
			res.Warnings = append(res.Warnings, warn)
			log.Warn("Skipping payment fact", zap.Int("payment_id", payment.PaymentID), zap.String("reason", warn))
			continue
		}

		if key, ok := existing.Resolve(payment.PaymentID); ok {
			fact.PaymentKey = key
			if err := tx.Save(&fact).Error; err != nil {
				return nil, fmt.Errorf("failed to update fact_payment %d: %w", payment.PaymentID, err)
			}
			res.Updated++
		} else {
			if err := tx.Create(&fact).Error; err != nil {
				return nil, fmt.Errorf("failed to insert fact_payment %d: %w", payment.PaymentID, err)
			}
			existing.Put(payment.PaymentID, fact.PaymentKey)
			res.Inserted++
		}
	}

	return res, nil
}

func buildPaymentFact(payment srcmodels.Payment, caches dimensionCaches) (models.FactPayment, string) {
	customerKey, ok := caches.customer.Resolve(payment.CustomerID)
	if !ok {
		return models.FactPayment{}, fmt.Sprintf("payment %d: customer %d not in dimension", payment.PaymentID, payment.CustomerID)
	}

	if payment.Rental == nil || payment.Rental.Inventory == nil {
		return models.FactPayment{}, fmt.Sprintf("payment %d: rental chain not joinable, cannot attribute store", payment.PaymentID)
	}
	storeKey, ok := caches.store.Resolve(payment.Rental.Inventory.StoreID)
	if !ok {
		return models.FactPayment{}, fmt.Sprintf("payment %d: store %d not in dimension", payment.PaymentID, payment.Rental.Inventory.StoreID)
	}

	return models.FactPayment{
		PaymentID:   payment.PaymentID,
		CustomerKey: customerKey,
		StoreKey:    storeKey,
		DateKey:     calendar.Key(payment.PaymentDate),
		Amount:      payment.Amount,
		PaymentDate: payment.PaymentDate,
		LastUpdate:  payment.LastUpdate,
	}, ""
}
