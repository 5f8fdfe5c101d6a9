package app

import (
	"sort"
	"strings"

	"github.com/yourusername/romshelf-go/internal/domain"
)

// DefaultPriorityTitles is the built-in popularity list. Order matters:
// earlier entries rank higher.
var DefaultPriorityTitles = []string{
	"Pokemon - Emerald Version",
	"Pokemon - Fire Red Version (V1.1)",
	"Pokemon Ultra Violet (1.22) LSA (Fire Red Hack)",
	"Pokemon - Ruby Version (V1.1)",
	"Pokemon - Leaf Green Version (V1.1)",
	"Super Mario Advance 4 - Super Mario Bros. 3 (V1.1)",
	"Pokemon Jupiter - 6.04 (Ruby Hack)",
	"Legend Of Zelda, The - The Minish Cap",
	"Pokemon - Sapphire Version (V1.1)",
	"Grand Theft Auto Advance",
	"Super Mario Advance 2 - Super Mario World",
	"Pokemon Black - Special Palace Edition 1 By MB Hacks (Red Hack) Goomba V2.2",
	"Kirby - Nightmare In Dreamland",
	"Dragonball Z - Supersonic Warriors",
	"Classic NES - Super Mario Bros.",
	"Ultimate Spider-Man",
	"Pokemon Mystery Dungeon - Red Rescue Team",
	"Fire Emblem",
	"Kirby & The Amazing Mirror",
	"Mario Kart Super Circuit",
	"Dragonball - Advanced Adventure",
	"Need For Speed - Underground 2",
	"Sonic Advance",
	"Legend Of Zelda, The - A Link To The Past Four Swords",
	"Naruto - Ninja Council 2",
	"Crash Bandicoot - The Huge Adventure",
	"Harvest Moon - Friends Of Mineral Town",
	"Yu-Gi-Oh! - GX Duel Academy",
	"Mario & Luigi - Superstar Saga",
	"Yu-Gi-Oh! - The Sacred Cards",
	"Pokemon - Fire Red Version [a1]",
	"Dragonball Z - The Legacy Of Goku 2",
	"Final Fantasy 6 Advance",
	"Mortal Kombat Advance",
	"Sonic Advance 3",
	"Beyblade G-Revolution",
	"Metal Slug Advance",
	"Metroid - Zero Mission",
	"Fire Emblem - The Sacred Stones",
	"Pokemon Rojo Fuego (S)",
	"Dragonball GT - Transformation",
	"Super Mario Advance",
	"Mother 3 (Eng. Translation 1.1)",
	"Dragonball Z - The Legacy Of Goku",
	"Donkey Kong Country",
	"Golden Sun",
	"Final Fantasy - Tactics Advanced",
	"Castlevania - Aria Of Sorrow",
}

// Ranker orders items against a fixed priority title list. Prioritized
// items sort first, by ascending position in the list; everything else
// keeps its pre-existing relative order.
type Ranker struct {
	priorities []string // lowercased, in priority order
}

// NewRanker creates a ranker for the given priority titles. An empty
// list selects the built-in DefaultPriorityTitles.
func NewRanker(titles []string) *Ranker {
	if len(titles) == 0 {
		titles = DefaultPriorityTitles
	}
	priorities := make([]string, len(titles))
	for i, t := range titles {
		priorities[i] = strings.ToLower(t)
	}
	return &Ranker{priorities: priorities}
}

// Rank returns a new slice with the items reordered by popularity.
// The input slice is never mutated, and the result is always a
// permutation of the input.
func (r *Ranker) Rank(items []domain.Item) []domain.Item {
	// Priority lookup is O(P) per title; compute each index once
	// instead of once per comparison.
	type keyed struct {
		item  domain.Item
		index int
	}
	ks := make([]keyed, len(items))
	for i, it := range items {
		ks[i] = keyed{item: it, index: r.priorityIndex(it.Title)}
	}

	sort.SliceStable(ks, func(a, b int) bool {
		ai, bi := ks[a].index, ks[b].index
		if ai != -1 && bi != -1 {
			return ai < bi
		}
		return ai != -1 && bi == -1
	})

	ranked := make([]domain.Item, len(ks))
	for i, k := range ks {
		ranked[i] = k.item
	}
	return ranked
}

// IsPopular reports whether a title matches any priority list entry
func (r *Ranker) IsPopular(title string) bool {
	return r.priorityIndex(title) != -1
}

// priorityIndex returns the position of the first priority entry where
// either string contains the other, case-insensitively, or -1.
func (r *Ranker) priorityIndex(title string) int {
	lower := strings.ToLower(title)
	for i, p := range r.priorities {
		if strings.Contains(lower, p) || strings.Contains(p, lower) {
			return i
		}
	}
	return -1
}
