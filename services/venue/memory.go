package venue

import (
	"context"
	"fmt"

	"concierge/models"
)

// MemoryProvider serves an immutable catalogue held in memory.
type MemoryProvider struct {
	venues []models.Venue
	byID   map[string]int
}

// NewMemoryProvider copies venues into a new provider. Later duplicates of an id are ignored.
func NewMemoryProvider(venues []models.Venue) *MemoryProvider {
	p := &MemoryProvider{byID: make(map[string]int, len(venues))}
	for _, v := range venues {
		if _, dup := p.byID[v.ID]; dup {
			continue
		}
		p.byID[v.ID] = len(p.venues)
		p.venues = append(p.venues, v.Clone())
	}
	return p
}

func (p *MemoryProvider) GetByID(ctx context.Context, id string) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := p.byID[id]
	if !ok {
		return nil, fmt.Errorf("venue %q: %w", id, ErrNotFound)
	}
	v := p.venues[i].Clone()
	return &v, nil
}

func (p *MemoryProvider) Search(ctx context.Context, q models.VenueQuery) ([]models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var matched []models.Venue
	for _, v := range p.venues {
		if Matches(v, q) {
			matched = append(matched, v.Clone())
		}
	}
	return Finalize(matched, q), nil
}

// Len is the number of venues in the catalogue.
func (p *MemoryProvider) Len() int { return len(p.venues) }
