// Package cache holds list and dashboard responses between mutations. The
// original console reloaded everything after every write; here each mutation
// names the resources it staled, and only those query keys are dropped.
package cache

import (
	"context"
	"time"
)

// Key identifies one cached query: the resource plus its canonical filter
// string (page, limit, filters in fixed order).
type Key struct {
	Resource string
	Params   string
}

// Cache is a byte-level query cache. Implementations: Memory (tests,
// single-instance) and Redis (shared console deployments).
type Cache interface {
	Get(ctx context.Context, key Key) ([]byte, bool)
	Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, resources ...string) error
}

// Cached resource names.
const (
	ResourceOrders     = "orders"
	ResourceMenus      = "menus"
	ResourceCategories = "categories"
	ResourceUsers      = "users"
	ResourceCouriers   = "couriers"
	ResourceOffers     = "offers"
	ResourceDashboard  = "dashboard"
)

// invalidations is the mutation contract: which cached resources each write
// operation stales.
var invalidations = map[string][]string{
	"order.update":    {ResourceOrders, ResourceDashboard},
	"order.delete":    {ResourceOrders, ResourceDashboard},
	"menu.create":     {ResourceMenus, ResourceDashboard},
	"menu.update":     {ResourceMenus, ResourceDashboard},
	"menu.toggle":     {ResourceMenus},
	"menu.delete":     {ResourceMenus, ResourceDashboard},
	"category.create": {ResourceCategories, ResourceMenus},
	"category.update": {ResourceCategories, ResourceMenus},
	"category.delete": {ResourceCategories, ResourceMenus},
	"user.create":     {ResourceUsers},
	"user.update":     {ResourceUsers},
	"user.delete":     {ResourceUsers},
	"courier.create":  {ResourceCouriers},
	"courier.update":  {ResourceCouriers, ResourceOrders},
	"courier.delete":  {ResourceCouriers},
	"banner.create":   {ResourceOffers},
	"banner.delete":   {ResourceOffers},
	"settings.toggle": {ResourceOrders},
}

// StaleAfter returns the resources invalidated by the named mutation.
func StaleAfter(mutation string) []string {
	return invalidations[mutation]
}
