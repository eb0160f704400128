package metadata

// catalogDef is the static descriptor behind a "tmdb.<name>" catalog id:
// which extras the listing supports, a fixed option list when the options are
// not genre-derived, and whether a TMDB session is required.
type catalogDef struct {
	nameKey        string
	extraSupported []string
	defaultOptions []string
	requiresAuth   bool
}

var catalogDefs = map[string]catalogDef{
	"top": {
		nameKey:        "popular",
		extraSupported: []string{"genre", "skip", "search"},
	},
	"year": {
		nameKey:        "year",
		extraSupported: []string{"genre", "skip"},
	},
	"language": {
		nameKey:        "language",
		extraSupported: []string{"genre", "skip"},
	},
	"trending": {
		nameKey:        "trending",
		extraSupported: []string{"genre", "skip"},
		defaultOptions: []string{"day", "week"},
	},
	"favorites": {
		nameKey:        "favorites",
		extraSupported: []string{"skip"},
		requiresAuth:   true,
	},
	"watchlist": {
		nameKey:        "watchlist",
		extraSupported: []string{"skip"},
		requiresAuth:   true,
	},
}

// defaultCatalogOrder fixes the manifest order when the user picked nothing.
var defaultCatalogOrder = []string{"top", "year", "language", "trending"}

// catalogDefinition resolves "tmdb.top" style ids. Unknown ids return false
// and the entry is filtered out of the manifest.
func catalogDefinition(catalogID string) (catalogDef, bool) {
	const prefix = "tmdb."
	if len(catalogID) <= len(prefix) || catalogID[:len(prefix)] != prefix {
		return catalogDef{}, false
	}
	def, ok := catalogDefs[catalogID[len(prefix):]]
	return def, ok
}

func (d catalogDef) supports(extra string) bool {
	for _, e := range d.extraSupported {
		if e == extra {
			return true
		}
	}
	return false
}
