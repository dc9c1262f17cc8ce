package levels

import (
	"fmt"
	"strings"
)

// Unknown is the rank assigned to any level tag missing from the ordering.
// It never matches a declared rank.
const Unknown = 99

// Ordering maps level tags to integer ranks.
// Ranks are dense, start at 0 and follow declaration order of the tiers;
// every tag within a tier shares the tier's rank.
type Ordering struct {
	ranks map[string]int
	tags  []string
}

// New builds an ordering from tiers of synonymous tags
func New(tiers [][]string) (*Ordering, error) {
	o := &Ordering{ranks: make(map[string]int)}

	for rank, tier := range tiers {
		if len(tier) == 0 {
			return nil, fmt.Errorf("level tier %d has no tags", rank)
		}
		for _, tag := range tier {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				return nil, fmt.Errorf("level tier %d contains an empty tag", rank)
			}
			if existing, ok := o.ranks[tag]; ok {
				return nil, fmt.Errorf("level %q declared twice (tiers %d and %d)", tag, existing, rank)
			}
			o.ranks[tag] = rank
			o.tags = append(o.tags, tag)
		}
	}

	return o, nil
}

// Default returns the level table used by the ProVida calendar sheet
func Default() *Ordering {
	o, _ := New([][]string{
		{"Nenhum"},
		{"Básico"},
		{"Av.1"},
		{"Introdução"},
		{"Av.2"},
		{"Av.2|"},
		{"Av.3"},
		{"Av.3|"},
		{"Av.4"},
	})
	return o
}

// Rank returns the declared rank of tag, or Unknown
func (o *Ordering) Rank(tag string) int {
	if rank, ok := o.ranks[strings.TrimSpace(tag)]; ok {
		return rank
	}
	return Unknown
}

// Known reports whether tag is declared in the ordering
func (o *Ordering) Known(tag string) bool {
	_, ok := o.ranks[strings.TrimSpace(tag)]
	return ok
}

// Tags returns every declared tag in declaration order
func (o *Ordering) Tags() []string {
	tags := make([]string, len(o.tags))
	copy(tags, o.tags)
	return tags
}
