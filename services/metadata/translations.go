package metadata

import "strings"

const defaultLanguage = "en-US"

// catalogTranslations holds the display names for catalog entries and option
// labels per language. The selected language is overlaid onto the en-US base,
// so a partial table still renders completely.
var catalogTranslations = map[string]map[string]string{
	"en-US": {
		"popular":   "Popular",
		"trending":  "Trending",
		"year":      "By Year",
		"language":  "By Language",
		"favorites": "Favorites",
		"watchlist": "Watchlist",
		"search":    "Search",
		"day":       "Day",
		"week":      "Week",
	},
	"pt-BR": {
		"popular":   "Populares",
		"trending":  "Em alta",
		"year":      "Por ano",
		"language":  "Por idioma",
		"favorites": "Favoritos",
		"watchlist": "Lista de interesses",
		"search":    "Pesquisar",
		"day":       "Dia",
		"week":      "Semana",
	},
	"es-ES": {
		"popular":   "Populares",
		"trending":  "Tendencias",
		"year":      "Por año",
		"language":  "Por idioma",
		"favorites": "Favoritos",
		"watchlist": "Lista de seguimiento",
		"search":    "Buscar",
		"day":       "Día",
		"week":      "Semana",
	},
	"fr-FR": {
		"popular":   "Populaires",
		"trending":  "Tendances",
		"year":      "Par année",
		"language":  "Par langue",
		"favorites": "Favoris",
		"watchlist": "Liste de suivi",
		"search":    "Rechercher",
		"day":       "Jour",
		"week":      "Semaine",
	},
	"de-DE": {
		"popular":   "Beliebt",
		"trending":  "Im Trend",
		"year":      "Nach Jahr",
		"language":  "Nach Sprache",
		"favorites": "Favoriten",
		"watchlist": "Merkliste",
		"search":    "Suche",
		"day":       "Tag",
		"week":      "Woche",
	},
	"it-IT": {
		"popular":   "Popolari",
		"trending":  "Di tendenza",
		"year":      "Per anno",
		"language":  "Per lingua",
		"favorites": "Preferiti",
		"watchlist": "Lista dei desideri",
		"search":    "Cerca",
		"day":       "Giorno",
		"week":      "Settimana",
	},
}

// loadTranslations merges the selected language over the default base into a
// fresh map.
func loadTranslations(language string) map[string]string {
	merged := make(map[string]string, len(catalogTranslations[defaultLanguage]))
	for k, v := range catalogTranslations[defaultLanguage] {
		merged[k] = v
	}
	for k, v := range catalogTranslations[language] {
		merged[k] = v
	}
	return merged
}

// trendingWindow maps a trending option label back to the upstream window
// key. The manifest advertises the labels translated, so the lookup accepts
// both the selected language's labels and the default ones. Anything else,
// including the empty option, is the day window.
func trendingWindow(language, option string) string {
	labels := loadTranslations(language)
	for _, key := range []string{"day", "week"} {
		if strings.EqualFold(option, key) ||
			strings.EqualFold(option, labels[key]) ||
			strings.EqualFold(option, catalogTranslations[defaultLanguage][key]) {
			return key
		}
	}
	return "day"
}
