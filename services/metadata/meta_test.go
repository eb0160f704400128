package metadata

import "testing"

func TestSeriesYears(t *testing.T) {
	if got := seriesYears("Ended", "2008-01-20", "2013-09-29"); got != "2008-2013" {
		t.Fatalf("ended show: got %q", got)
	}
	if got := seriesYears("Canceled", "2008-01-20", "2009-06-01"); got != "2008-2009" {
		t.Fatalf("canceled show: got %q", got)
	}
	if got := seriesYears("Returning Series", "2011-04-17", "2019-05-19"); got != "2011-" {
		t.Fatalf("running show: got %q", got)
	}
	if got := seriesYears("Ended", "", "2013-09-29"); got != "" {
		t.Fatalf("missing first air date: got %q", got)
	}
}

func TestReleaseYear(t *testing.T) {
	if got := releaseYear("2010-07-15"); got != "2010" {
		t.Fatalf("got %q", got)
	}
	if got := releaseYear(""); got != "" {
		t.Fatalf("missing date: got %q", got)
	}
	if got := releaseYear("201"); got != "" {
		t.Fatalf("truncated date: got %q", got)
	}
}

func TestParseRuntime(t *testing.T) {
	if got := parseRuntime(148); got != "148 min" {
		t.Fatalf("got %q", got)
	}
	if got := parseRuntime(0); got != "" {
		t.Fatalf("zero runtime: got %q", got)
	}
}

func TestSeriesRuntimePreference(t *testing.T) {
	res := &tmdbTVDetails{
		EpisodeRunTime:   []int{45},
		LastEpisodeToAir: &tmdbEpisodeStub{Runtime: 50},
	}
	if got := seriesRuntime(res); got != 45 {
		t.Fatalf("explicit runtime should win, got %d", got)
	}
	res.EpisodeRunTime = nil
	if got := seriesRuntime(res); got != 50 {
		t.Fatalf("last aired runtime should win, got %d", got)
	}
	res.LastEpisodeToAir = nil
	res.NextEpisodeToAir = &tmdbEpisodeStub{Runtime: 55}
	if got := seriesRuntime(res); got != 55 {
		t.Fatalf("next episode runtime fallback, got %d", got)
	}
}

func TestParseSlug(t *testing.T) {
	if got := parseSlug("movie", "The Dark Knight", "tt0468569"); got != "movie/the-dark-knight-0468569" {
		t.Fatalf("got %q", got)
	}
	if got := parseSlug("series", "Marvel's Agents of S.H.I.E.L.D.", "tt2364582"); got != "series/marvels-agents-of-s-h-i-e-l-d-2364582" {
		t.Fatalf("got %q", got)
	}
	if got := parseSlug("movie", "Heat", ""); got != "movie/heat-" {
		t.Fatalf("missing imdb id: got %q", got)
	}
}

func TestParseCastDedupAndCap(t *testing.T) {
	credits := tmdbCredits{Cast: []tmdbCastMember{
		{Name: "A"}, {Name: "B"}, {Name: "A"}, {Name: "C"}, {Name: "D"}, {Name: "E"}, {Name: "F"},
	}}
	got := parseCast(credits)
	want := []string{"A", "B", "C", "D", "E"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParseCrew(t *testing.T) {
	credits := tmdbCredits{Crew: []tmdbCrewMember{
		{Name: "Jane", Job: "Director"},
		{Name: "John", Job: "Screenplay"},
		{Name: "Alex", Job: "Writer"},
		{Name: "Sam", Job: "Producer"},
	}}
	if got := parseDirector(credits); len(got) != 1 || got[0] != "Jane" {
		t.Fatalf("director: got %v", got)
	}
	if got := parseMovieWriters(credits); len(got) != 2 || got[0] != "John" || got[1] != "Alex" {
		t.Fatalf("writers: got %v", got)
	}
}

func TestParseTrailersYouTubeOnly(t *testing.T) {
	videos := tmdbVideosResponse{Results: []tmdbVideo{
		{Name: "Official Trailer", Key: "abc123", Site: "YouTube", Type: "Trailer"},
		{Name: "Featurette", Key: "def456", Site: "YouTube", Type: "Featurette"},
		{Name: "Vimeo Trailer", Key: "ghi789", Site: "Vimeo", Type: "Trailer"},
	}}
	trailers := parseTrailers(videos)
	if len(trailers) != 1 || trailers[0].Source != "abc123" || trailers[0].Type != "Trailer" {
		t.Fatalf("got %v", trailers)
	}
	streams := parseTrailerStreams(videos)
	if len(streams) != 1 || streams[0].YtID != "abc123" || streams[0].Title != "Official Trailer" {
		t.Fatalf("got %v", streams)
	}
}

func TestParseReleased(t *testing.T) {
	if got := parseReleased("2010-07-15"); got != "2010-07-15T00:00:00.000Z" {
		t.Fatalf("got %q", got)
	}
	if got := parseReleased(""); got != "" {
		t.Fatalf("missing date: got %q", got)
	}
}

func TestPosterRPDBSubstitution(t *testing.T) {
	s := &Service{}
	if got := s.poster("movie", "603", "/poster.jpg", "en-US", ""); got != "https://image.tmdb.org/t/p/original/poster.jpg" {
		t.Fatalf("plain poster: got %q", got)
	}
	got := s.poster("movie", "603", "/poster.jpg", "pt-BR", "key123")
	want := "https://api.ratingposterdb.com/key123/tmdb/poster-default/movie-603.jpg?fallback=true&lang=pt"
	if got != want {
		t.Fatalf("rpdb poster: got %q, want %q", got, want)
	}
	if got := s.poster("movie", "603", "", "en-US", ""); got != "" {
		t.Fatalf("missing path: got %q", got)
	}
}
