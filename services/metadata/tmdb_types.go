package metadata

// Response payload shapes for the TMDB v3 API. Only the fields the addon
// consumes are declared.

type tmdbGenre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type tmdbGenreListResponse struct {
	Genres []tmdbGenre `json:"genres"`
}

type tmdbLanguage struct {
	ISO6391     string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

type tmdbProductionCountry struct {
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
}

type tmdbCastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

type tmdbCrewMember struct {
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

type tmdbCredits struct {
	Cast []tmdbCastMember `json:"cast"`
	Crew []tmdbCrewMember `json:"crew"`
}

type tmdbVideo struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type tmdbVideosResponse struct {
	Results []tmdbVideo `json:"results"`
}

type tmdbExternalIDs struct {
	IMDBID string `json:"imdb_id"`
	TVDBID int64  `json:"tvdb_id"`
}

type tmdbCreatedBy struct {
	Name string `json:"name"`
}

type tmdbEpisodeStub struct {
	Runtime int `json:"runtime"`
}

type tmdbSeasonStub struct {
	SeasonNumber int `json:"season_number"`
	EpisodeCount int `json:"episode_count"`
}

// tmdbMovieDetails is /movie/{id}?append_to_response=videos,credits,external_ids.
type tmdbMovieDetails struct {
	ID                  int64                   `json:"id"`
	IMDBID              string                  `json:"imdb_id"`
	Title               string                  `json:"title"`
	Overview            string                  `json:"overview"`
	ReleaseDate         string                  `json:"release_date"`
	Runtime             int                     `json:"runtime"`
	VoteAverage         float64                 `json:"vote_average"`
	OriginalLanguage    string                  `json:"original_language"`
	PosterPath          string                  `json:"poster_path"`
	BackdropPath        string                  `json:"backdrop_path"`
	Genres              []tmdbGenre             `json:"genres"`
	ProductionCountries []tmdbProductionCountry `json:"production_countries"`
	Credits             tmdbCredits             `json:"credits"`
	Videos              tmdbVideosResponse      `json:"videos"`
	ExternalIDs         tmdbExternalIDs         `json:"external_ids"`
}

// tmdbTVDetails is /tv/{id}?append_to_response=videos,credits,external_ids.
type tmdbTVDetails struct {
	ID                  int64                   `json:"id"`
	Name                string                  `json:"name"`
	Overview            string                  `json:"overview"`
	FirstAirDate        string                  `json:"first_air_date"`
	LastAirDate         string                  `json:"last_air_date"`
	Status              string                  `json:"status"`
	EpisodeRunTime      []int                   `json:"episode_run_time"`
	LastEpisodeToAir    *tmdbEpisodeStub        `json:"last_episode_to_air"`
	NextEpisodeToAir    *tmdbEpisodeStub        `json:"next_episode_to_air"`
	VoteAverage         float64                 `json:"vote_average"`
	OriginalLanguage    string                  `json:"original_language"`
	PosterPath          string                  `json:"poster_path"`
	BackdropPath        string                  `json:"backdrop_path"`
	Genres              []tmdbGenre             `json:"genres"`
	ProductionCountries []tmdbProductionCountry `json:"production_countries"`
	CreatedBy           []tmdbCreatedBy         `json:"created_by"`
	Seasons             []tmdbSeasonStub        `json:"seasons"`
	Credits             tmdbCredits             `json:"credits"`
	Videos              tmdbVideosResponse      `json:"videos"`
	ExternalIDs         tmdbExternalIDs         `json:"external_ids"`
}

// tmdbMediaItem is one result from trending/discover/search/account lists.
// Movie and tv shapes share the struct; the per-type fields are mutually
// exclusive in practice.
type tmdbMediaItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	GenreIDs     []int64 `json:"genre_ids"`
	VoteAverage  float64 `json:"vote_average"`
}

type tmdbListResponse struct {
	Page    int             `json:"page"`
	Results []tmdbMediaItem `json:"results"`
}

type tmdbImage struct {
	FilePath string `json:"file_path"`
	ISO6391  string `json:"iso_639_1"`
}

type tmdbImagesResponse struct {
	Logos []tmdbImage `json:"logos"`
}

type tmdbEpisode struct {
	EpisodeNumber int    `json:"episode_number"`
	SeasonNumber  int    `json:"season_number"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
	AirDate       string `json:"air_date"`
	StillPath     string `json:"still_path"`
}

type tmdbSeasonDetails struct {
	SeasonNumber int           `json:"season_number"`
	Episodes     []tmdbEpisode `json:"episodes"`
}

type tmdbFindResponse struct {
	MovieResults []tmdbMediaItem `json:"movie_results"`
	TVResults    []tmdbMediaItem `json:"tv_results"`
}

type tmdbAccount struct {
	ID int64 `json:"id"`
}

type tmdbRequestTokenResponse struct {
	Success      bool   `json:"success"`
	RequestToken string `json:"request_token"`
	ExpiresAt    string `json:"expires_at"`
}

type tmdbSessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
}
