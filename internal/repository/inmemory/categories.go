package inmemory

import (
	"sync"
	"time"

	expensesdomain "orbit-expenses/internal/domain/expenses"
)

type InMemoryCategoriesCache struct {
	mu   sync.RWMutex
	item *categoriesItem
	now  func() time.Time
}

type categoriesItem struct {
	value     []expensesdomain.Category
	expiresAt time.Time
}

func NewInMemoryCategoriesCache() *InMemoryCategoriesCache {
	return &InMemoryCategoriesCache{now: time.Now}
}

func (c *InMemoryCategoriesCache) Get() ([]expensesdomain.Category, bool) {
	now := c.now()

	c.mu.RLock()
	item := c.item
	c.mu.RUnlock()
	if item == nil {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		if c.item == item {
			c.item = nil
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneCategories(item.value), true
}

func (c *InMemoryCategoriesCache) Set(categories []expensesdomain.Category, ttl time.Duration) {
	if ttl <= 0 {
		c.Invalidate()
		return
	}

	c.mu.Lock()
	c.item = &categoriesItem{
		value:     cloneCategories(categories),
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *InMemoryCategoriesCache) Invalidate() {
	c.mu.Lock()
	c.item = nil
	c.mu.Unlock()
}

func cloneCategories(categories []expensesdomain.Category) []expensesdomain.Category {
	if categories == nil {
		return nil
	}
	cloned := make([]expensesdomain.Category, len(categories))
	copy(cloned, categories)
	return cloned
}
