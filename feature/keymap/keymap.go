package keymap

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Cache maps one dimension's natural keys to its surrogate keys. It is owned
// by a single run: built at run start, extended as the run inserts rows,
// discarded when the run ends. Never shared across runs.
type Cache struct {
	dimension string
	keys      map[int]uint
}

// Build reads every (natural key, surrogate key) pair from the named
// dimension table and returns a cache over them. The column names are the
// dimension's own; the query is a two-column scan, not a full row load.
func Build(ctx context.Context, db *gorm.DB, table, naturalCol, surrogateCol string) (*Cache, error) {
	type pair struct {
		Natural   int  `gorm:"column:natural_key"`
		Surrogate uint `gorm:"column:surrogate_key"`
	}

	var pairs []pair
	err := db.WithContext(ctx).
		Table(table).
		Select(fmt.Sprintf("%s AS natural_key, %s AS surrogate_key", naturalCol, surrogateCol)).
		Scan(&pairs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build key map for %s: %w", table, err)
	}

	keys := make(map[int]uint, len(pairs))
	for _, p := range pairs {
		keys[p.Natural] = p.Surrogate
	}

	return &Cache{dimension: table, keys: keys}, nil
}

// Resolve returns the surrogate key for a natural key. The boolean is the
// only "not found" signal; a zero surrogate key is never returned as a
// default, so an unresolved reference cannot silently become a dangling
// foreign key downstream.
func (c *Cache) Resolve(naturalKey int) (uint, bool) {
	key, ok := c.keys[naturalKey]
	return key, ok
}

// Put records a mapping for a row inserted during the current run, so later
// stages of the same run can resolve it without a rebuild.
func (c *Cache) Put(naturalKey int, surrogateKey uint) {
	c.keys[naturalKey] = surrogateKey
}

// Len returns the number of mappings held.
func (c *Cache) Len() int {
	return len(c.keys)
}

// Dimension returns the table this cache was built from.
func (c *Cache) Dimension() string {
	return c.dimension
}
