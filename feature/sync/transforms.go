package sync

import (
	"fmt"

	"warehouse-sync/feature/source"
	srcmodels "warehouse-sync/feature/source/models"
	"warehouse-sync/feature/warehouse/models"
)

// Per-dimension sync definitions. Transform policy: identifiers and joined
// (foreign-key-bearing) attributes fail the row when missing; the only
// optional-with-default attributes are the customer email and the film
// description, both of which fall back to the empty string.

func actorDimension(r *source.Reader) dimension[srcmodels.Actor, models.DimActor] {
	return dimension[srcmodels.Actor, models.DimActor]{
		table:        "dim_actor",
		naturalCol:   "actor_id",
		surrogateCol: "actor_key",
		fetch:        r.Actors,
		transform: func(a srcmodels.Actor) (models.DimActor, error) {
			return models.DimActor{
				ActorID:    a.ActorID,
				FirstName:  a.FirstName,
				LastName:   a.LastName,
				LastUpdate: a.LastUpdate,
			}, nil
		},
		naturalKey: func(d models.DimActor) int { return d.ActorID },
		surrogate:  func(d models.DimActor) uint { return d.ActorKey },
		setKey:     func(d *models.DimActor, k uint) { d.ActorKey = k },
	}
}

func categoryDimension(r *source.Reader) dimension[srcmodels.Category, models.DimCategory] {
	return dimension[srcmodels.Category, models.DimCategory]{
		table:        "dim_category",
		naturalCol:   "category_id",
		surrogateCol: "category_key",
		fetch:        r.Categories,
		transform: func(c srcmodels.Category) (models.DimCategory, error) {
			return models.DimCategory{
				CategoryID: c.CategoryID,
				Name:       c.Name,
				LastUpdate: c.LastUpdate,
			}, nil
		},
		naturalKey: func(d models.DimCategory) int { return d.CategoryID },
		surrogate:  func(d models.DimCategory) uint { return d.CategoryKey },
		setKey:     func(d *models.DimCategory, k uint) { d.CategoryKey = k },
	}
}

func storeDimension(r *source.Reader) dimension[srcmodels.Store, models.DimStore] {
	return dimension[srcmodels.Store, models.DimStore]{
		table:        "dim_store",
		naturalCol:   "store_id",
		surrogateCol: "store_key",
		fetch:        r.Stores,
		transform: func(s srcmodels.Store) (models.DimStore, error) {
			if s.Address == nil || s.Address.City == nil || s.Address.City.Country == nil {
				return models.DimStore{}, fmt.Errorf("store %d: address chain incomplete, cannot denormalize city/country", s.StoreID)
			}
			return models.DimStore{
				StoreID:    s.StoreID,
				Address:    s.Address.Address,
				District:   s.Address.District,
				City:       s.Address.City.City,
				Country:    s.Address.City.Country.Country,
				LastUpdate: s.LastUpdate,
			}, nil
		},
		naturalKey: func(d models.DimStore) int { return d.StoreID },
		surrogate:  func(d models.DimStore) uint { return d.StoreKey },
		setKey:     func(d *models.DimStore, k uint) { d.StoreKey = k },
	}
}

func customerDimension(r *source.Reader) dimension[srcmodels.Customer, models.DimCustomer] {
	return dimension[srcmodels.Customer, models.DimCustomer]{
		table:        "dim_customer",
		naturalCol:   "customer_id",
		surrogateCol: "customer_key",
		fetch:        r.Customers,
		transform: func(c srcmodels.Customer) (models.DimCustomer, error) {
			if c.Address == nil || c.Address.City == nil || c.Address.City.Country == nil {
				return models.DimCustomer{}, fmt.Errorf("customer %d: address chain incomplete, cannot denormalize city/country", c.CustomerID)
			}
			// Email is optional-with-default; a missing value stays empty.
			return models.DimCustomer{
				CustomerID: c.CustomerID,
				FirstName:  c.FirstName,
				LastName:   c.LastName,
				Email:      c.Email,
				City:       c.Address.City.City,
				Country:    c.Address.City.Country.Country,
				Active:     c.Active,
				LastUpdate: c.LastUpdate,
			}, nil
		},
		naturalKey: func(d models.DimCustomer) int { return d.CustomerID },
		surrogate:  func(d models.DimCustomer) uint { return d.CustomerKey },
		setKey:     func(d *models.DimCustomer, k uint) { d.CustomerKey = k },
	}
}

func filmActorBridge(r *source.Reader) bridge[srcmodels.FilmActor, models.BridgeFilmActor] {
	return bridge[srcmodels.FilmActor, models.BridgeFilmActor]{
		table:        "bridge_film_actor",
		fetch:        r.FilmActors,
		leftNatural:  func(fa srcmodels.FilmActor) int { return fa.FilmID },
		rightNatural: func(fa srcmodels.FilmActor) int { return fa.ActorID },
		makeRow: func(left, right uint) models.BridgeFilmActor {
			return models.BridgeFilmActor{FilmKey: left, ActorKey: right}
		},
	}
}

func filmCategoryBridge(r *source.Reader) bridge[srcmodels.FilmCategory, models.BridgeFilmCategory] {
	return bridge[srcmodels.FilmCategory, models.BridgeFilmCategory]{
		table:        "bridge_film_category",
		fetch:        r.FilmCategories,
		leftNatural:  func(fc srcmodels.FilmCategory) int { return fc.FilmID },
		rightNatural: func(fc srcmodels.FilmCategory) int { return fc.CategoryID },
		makeRow: func(left, right uint) models.BridgeFilmCategory {
			return models.BridgeFilmCategory{FilmKey: left, CategoryKey: right}
		},
	}
}

func filmDimension(r *source.Reader) dimension[srcmodels.Film, models.DimFilm] {
	return dimension[srcmodels.Film, models.DimFilm]{
		table:        "dim_film",
		naturalCol:   "film_id",
		surrogateCol: "film_key",
		fetch:        r.Films,
		transform: func(f srcmodels.Film) (models.DimFilm, error) {
			if f.Language == nil {
				return models.DimFilm{}, fmt.Errorf("film %d: language %d not joinable", f.FilmID, f.LanguageID)
			}
			// Description is optional-with-default; empty is acceptable.
			return models.DimFilm{
				FilmID:         f.FilmID,
				Title:          f.Title,
				Description:    f.Description,
				ReleaseYear:    f.ReleaseYear,
				Language:       f.Language.Name,
				RentalDuration: f.RentalDuration,
				RentalRate:     f.RentalRate,
				Length:         f.Length,
				Rating:         f.Rating,
				LastUpdate:     f.LastUpdate,
			}, nil
		},
		naturalKey: func(d models.DimFilm) int { return d.FilmID },
		surrogate:  func(d models.DimFilm) uint { return d.FilmKey },
		setKey:     func(d *models.DimFilm, k uint) { d.FilmKey = k },
	}
}
