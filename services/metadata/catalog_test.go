package metadata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/facuparedes/tmdb-addon/models"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tmdb := newTMDBClient("test-key", srv.Client())
	tmdb.baseURL = srv.URL
	tmdb.minInterval = 0

	ratings := newRatingsClient(srv.Client())
	ratings.baseURL = srv.URL
	ratings.minInterval = 0

	return &Service{
		tmdb:     tmdb,
		fanart:   newFanartClient("", nil),
		ratings:  ratings,
		cache:    newMemCache(time.Minute, time.Minute, false),
		hostName: "http://localhost:1337",
	}
}

func serveJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

const movieGenresBody = `{"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}]}`

func TestPageFromSkip(t *testing.T) {
	cases := []struct{ skip, page int }{
		{0, 1},
		{-5, 1},
		{7, 2},
		{20, 2},
		{40, 3},
	}
	for _, c := range cases {
		if got := pageFromSkip(c.skip); got != c.page {
			t.Fatalf("pageFromSkip(%d) = %d, want %d", c.skip, got, c.page)
		}
	}
}

func TestGetCatalogTrending(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, movieGenresBody)
	})
	mux.HandleFunc("/trending/movie/day", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			t.Errorf("expected page 1, got %q", r.URL.Query().Get("page"))
		}
		serveJSON(w, `{"page":1,"results":[{"id":603,"title":"The Matrix","overview":"A hacker.","release_date":"1999-03-30","poster_path":"/p.jpg","backdrop_path":"/b.jpg","genre_ids":[28,878]}]}`)
	})
	s := newTestService(t, mux)

	metas, err := s.GetCatalog(context.Background(), models.UserConfig{}, "movie", "tmdb.trending", models.CatalogExtra{})
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if len(metas) != 1 {
		t.Fatalf("expected 1 meta, got %d", len(metas))
	}
	m := metas[0]
	if m.ID != "tmdb:603" || m.Type != "movie" || m.Name != "The Matrix" {
		t.Fatalf("unexpected meta: %+v", m)
	}
	if m.Poster != "https://image.tmdb.org/t/p/original/p.jpg" {
		t.Fatalf("unexpected poster: %s", m.Poster)
	}
	if m.Year != "1999" {
		t.Fatalf("unexpected year: %s", m.Year)
	}
	if len(m.Genre) != 2 || m.Genre[0] != "Action" || m.Genre[1] != "Science Fiction" {
		t.Fatalf("unexpected genres: %v", m.Genre)
	}

	// The listing shape must never include the expensive detail fields.
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatal(err)
	}
	for _, forbidden := range []string{"logo", "cast", "videos", "imdbRating"} {
		if _, ok := fields[forbidden]; ok {
			t.Fatalf("lightweight meta must not carry %q", forbidden)
		}
	}
}

func TestTrendingWindow(t *testing.T) {
	cases := []struct {
		language string
		option   string
		window   string
	}{
		{"en-US", "", "day"},
		{"en-US", "Day", "day"},
		{"en-US", "Week", "week"},
		{"pt-BR", "Semana", "week"},
		{"pt-BR", "Dia", "day"},
		{"fr-FR", "Semaine", "week"},
		{"de-DE", "Woche", "week"},
		{"pt-BR", "Week", "week"},
		{"en-US", "nonsense", "day"},
	}
	for _, c := range cases {
		if got := trendingWindow(c.language, c.option); got != c.window {
			t.Fatalf("trendingWindow(%q, %q) = %q, want %q", c.language, c.option, got, c.window)
		}
	}
}

func TestGetCatalogTrendingTranslatedWindow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, movieGenresBody)
	})
	mux.HandleFunc("/trending/movie/week", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, `{"page":1,"results":[{"id":603,"title":"The Matrix","release_date":"1999-03-30"}]}`)
	})
	s := newTestService(t, mux)

	// The manifest advertises the window options translated, so the localized
	// label must still select the week endpoint.
	cfg := models.UserConfig{Language: "pt-BR"}
	metas, err := s.GetCatalog(context.Background(), cfg, "movie", "tmdb.trending", models.CatalogExtra{Genre: "Semana"})
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if len(metas) != 1 || metas[0].ID != "tmdb:603" {
		t.Fatalf("unexpected metas: %+v", metas)
	}
}

func TestGetCatalogSearchShortCircuits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, movieGenresBody)
	})
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") != "matrix" {
			t.Errorf("expected query=matrix, got %q", r.URL.Query().Get("query"))
		}
		serveJSON(w, `{"page":1,"results":[{"id":603,"title":"The Matrix","release_date":"1999-03-30"}]}`)
	})
	s := newTestService(t, mux)

	// Search wins even when the catalog id has its own retrieval path.
	metas, err := s.GetCatalog(context.Background(), models.UserConfig{}, "movie", "tmdb.trending", models.CatalogExtra{Search: "matrix"})
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if len(metas) != 1 || metas[0].ID != "tmdb:603" {
		t.Fatalf("unexpected metas: %+v", metas)
	}
}

func TestGetCatalogGenreFilter(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, movieGenresBody)
	})
	mux.HandleFunc("/discover/movie", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("with_genres") != "28" {
			t.Errorf("expected with_genres=28, got %q", r.URL.Query().Get("with_genres"))
		}
		if r.URL.Query().Get("page") != "3" {
			t.Errorf("expected page 3, got %q", r.URL.Query().Get("page"))
		}
		serveJSON(w, `{"page":3,"results":[]}`)
	})
	s := newTestService(t, mux)

	_, err := s.GetCatalog(context.Background(), models.UserConfig{}, "movie", "tmdb.top", models.CatalogExtra{Genre: "Action", Skip: 40})
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
}

func TestGetCatalogTopGenreMeansNoFilter(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, movieGenresBody)
	})
	mux.HandleFunc("/discover/movie", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("with_genres") != "" {
			t.Errorf("Top must not set with_genres, got %q", r.URL.Query().Get("with_genres"))
		}
		serveJSON(w, `{"page":1,"results":[]}`)
	})
	s := newTestService(t, mux)

	if _, err := s.GetCatalog(context.Background(), models.UserConfig{}, "movie", "tmdb.top", models.CatalogExtra{Genre: "Top"}); err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
}

func TestGetCatalogYearFilter(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/genre/tv/list", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, `{"genres":[]}`)
	})
	mux.HandleFunc("/discover/tv", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("first_air_date_year") != "2020" {
			t.Errorf("expected first_air_date_year=2020, got %q", r.URL.Query().Get("first_air_date_year"))
		}
		serveJSON(w, `{"page":1,"results":[]}`)
	})
	s := newTestService(t, mux)

	if _, err := s.GetCatalog(context.Background(), models.UserConfig{}, "series", "tmdb.year", models.CatalogExtra{Genre: "2020"}); err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
}

func TestGetCatalogUnknownIDIsNoOp(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, movieGenresBody)
	})
	s := newTestService(t, mux)

	metas, err := s.GetCatalog(context.Background(), models.UserConfig{}, "movie", "tmdb.nope", models.CatalogExtra{})
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if len(metas) != 0 {
		t.Fatalf("expected empty listing, got %d", len(metas))
	}
}

func TestGetCatalogAccountListRequiresSession(t *testing.T) {
	s := newTestService(t, http.NewServeMux())
	if _, err := s.GetCatalog(context.Background(), models.UserConfig{}, "movie", "tmdb.favorites", models.CatalogExtra{}); err == nil {
		t.Fatal("expected error without a session")
	}
}

func TestGetCatalogFavorites(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, movieGenresBody)
	})
	mux.HandleFunc("/account", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("session_id") != "sess1" {
			t.Errorf("expected session_id=sess1, got %q", r.URL.Query().Get("session_id"))
		}
		serveJSON(w, `{"id":42}`)
	})
	mux.HandleFunc("/account/42/favorite/movies", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, `{"page":1,"results":[{"id":11,"title":"Star Wars","release_date":"1977-05-25"}]}`)
	})
	s := newTestService(t, mux)

	cfg := models.UserConfig{SessionID: "sess1"}
	metas, err := s.GetCatalog(context.Background(), cfg, "movie", "tmdb.favorites", models.CatalogExtra{})
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if len(metas) != 1 || metas[0].ID != "tmdb:11" {
		t.Fatalf("unexpected metas: %+v", metas)
	}
}

func TestGetCatalogAccountListsNotShared(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, movieGenresBody)
	})
	mux.HandleFunc("/account", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("session_id") == "sess-a" {
			serveJSON(w, `{"id":1}`)
			return
		}
		serveJSON(w, `{"id":2}`)
	})
	mux.HandleFunc("/account/1/favorite/movies", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, `{"page":1,"results":[{"id":100,"title":"First Private Movie"}]}`)
	})
	mux.HandleFunc("/account/2/favorite/movies", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, `{"page":1,"results":[{"id":200,"title":"Second Private Movie"}]}`)
	})
	s := newTestService(t, mux)

	first, err := s.GetCatalog(context.Background(), models.UserConfig{SessionID: "sess-a"}, "movie", "tmdb.favorites", models.CatalogExtra{})
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	second, err := s.GetCatalog(context.Background(), models.UserConfig{SessionID: "sess-b"}, "movie", "tmdb.favorites", models.CatalogExtra{})
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if len(first) != 1 || first[0].ID != "tmdb:100" {
		t.Fatalf("first session listing: %+v", first)
	}
	if len(second) != 1 || second[0].ID != "tmdb:200" {
		t.Fatalf("second session must not see the first session's list: %+v", second)
	}
}

func TestGetCatalogCacheKeyedByPosterKey(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, movieGenresBody)
	})
	mux.HandleFunc("/trending/movie/day", func(w http.ResponseWriter, r *http.Request) {
		serveJSON(w, `{"page":1,"results":[{"id":603,"title":"The Matrix","poster_path":"/p.jpg","release_date":"1999-03-30"}]}`)
	})
	s := newTestService(t, mux)

	plain, err := s.GetCatalog(context.Background(), models.UserConfig{}, "movie", "tmdb.trending", models.CatalogExtra{})
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if !strings.HasPrefix(plain[0].Poster, "https://image.tmdb.org/") {
		t.Fatalf("unexpected poster: %s", plain[0].Poster)
	}

	// A rated-poster key changes the rendered posters, so it must not reuse
	// the keyless cache entry.
	rated, err := s.GetCatalog(context.Background(), models.UserConfig{RPDBKey: "rk1"}, "movie", "tmdb.trending", models.CatalogExtra{})
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if !strings.HasPrefix(rated[0].Poster, "https://api.ratingposterdb.com/rk1/") {
		t.Fatalf("rated poster must not come from the keyless cache entry: %s", rated[0].Poster)
	}
}
