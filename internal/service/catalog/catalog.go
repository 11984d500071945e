// internal/service/catalog/catalog.go
package catalog

import (
	"sort"
	"time"

	"notifyme-service/internal/domain/plan"
	xerrors "notifyme-service/internal/pkg/errors"
)

// Tier is one entry of the fixed plan catalog.
type Tier struct {
	ID           int64
	Name         string
	Rank         int
	DurationDays int
}

// Catalog maps the four plan tiers to their rank and duration. Ranks order
// tiers from cheapest to most expensive.
type Catalog struct {
	tiers map[string]Tier
}

func New() *Catalog {
	tiers := []Tier{
		{ID: 1, Name: plan.TierBasic, Rank: 1, DurationDays: 30},
		{ID: 2, Name: plan.TierRegular, Rank: 2, DurationDays: 90},
		{ID: 3, Name: plan.TierStandard, Rank: 3, DurationDays: 180},
		{ID: 4, Name: plan.TierPremium, Rank: 4, DurationDays: 365},
	}

	byName := make(map[string]Tier, len(tiers))
	for _, t := range tiers {
		byName[t.Name] = t
	}
	return &Catalog{tiers: byName}
}

func (c *Catalog) lookup(name string) (Tier, error) {
	t, ok := c.tiers[name]
	if !ok {
		return Tier{}, xerrors.Wrap(xerrors.ErrUnknownPlan, name)
	}
	return t, nil
}

// DurationDays returns how long a subscription on the named tier lasts.
func (c *Catalog) DurationDays(name string) (int, error) {
	t, err := c.lookup(name)
	if err != nil {
		return 0, err
	}
	return t.DurationDays, nil
}

// Rank returns the tier's position in the price ordering.
func (c *Catalog) Rank(name string) (int, error) {
	t, err := c.lookup(name)
	if err != nil {
		return 0, err
	}
	return t.Rank, nil
}

// EndDate derives a subscription end date from its start and plan tier.
func (c *Catalog) EndDate(name string, start time.Time) (time.Time, error) {
	t, err := c.lookup(name)
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 0, t.DurationDays), nil
}

// Recommendations returns the tiers with rank >= the named tier's rank,
// ascending by rank. The current tier itself is included.
func (c *Catalog) Recommendations(name string) ([]string, error) {
	current, err := c.lookup(name)
	if err != nil {
		return nil, err
	}

	var upgrades []Tier
	for _, t := range c.tiers {
		if t.Rank >= current.Rank {
			upgrades = append(upgrades, t)
		}
	}
	sort.Slice(upgrades, func(i, j int) bool { return upgrades[i].Rank < upgrades[j].Rank })

	names := make([]string, 0, len(upgrades))
	for _, t := range upgrades {
		names = append(names, t.Name)
	}
	return names, nil
}

// Tiers returns all catalog entries ascending by rank.
func (c *Catalog) Tiers() []Tier {
	all := make([]Tier, 0, len(c.tiers))
	for _, t := range c.tiers {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Rank < all[j].Rank })
	return all
}
