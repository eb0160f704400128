package metadata

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/facuparedes/tmdb-addon/config"
	"github.com/facuparedes/tmdb-addon/models"
)

// Service aggregates the metadata providers behind the addon contract:
// manifest assembly, catalog listings and per-title canonical records.
type Service struct {
	tmdb     *tmdbClient
	fanart   *fanartClient
	ratings  *ratingsClient
	cache    *memCache
	hostName string
}

func NewService(settings config.Settings) *Service {
	cache := newMemCache(
		time.Duration(settings.Cache.MetaTTLHours)*time.Hour,
		time.Duration(settings.Cache.CatalogTTLHours)*time.Hour,
		settings.Cache.Disabled,
	)
	return &Service{
		tmdb:     newTMDBClient(settings.Addon.TMDBAPIKey, nil),
		fanart:   newFanartClient(settings.Addon.FanartAPIKey, nil),
		ratings:  newRatingsClient(nil),
		cache:    cache,
		hostName: strings.TrimRight(settings.Addon.HostName, "/"),
	}
}

// GetMeta resolves one title to its canonical record. The id is either a
// "tmdb:<n>" id or an imdb "tt" id that is translated first. An id that does
// not resolve yields a nil meta and no error; the handler serializes that as
// the empty meta document.
func (s *Service) GetMeta(ctx context.Context, cfg models.UserConfig, mediaType, id string) (*models.Meta, error) {
	language := cfg.Language
	if language == "" {
		language = defaultLanguage
	}

	tmdbID, err := s.resolveTMDBID(ctx, mediaType, id)
	if err != nil {
		return nil, err
	}
	if tmdbID == "" {
		return nil, nil
	}

	key := fmt.Sprintf("%s:%s:%s", language, mediaType, tmdbID)
	v, err := s.cache.wrap(cacheNamespaceMeta, key, func() (any, error) {
		if mediaType == "movie" {
			return s.movieMeta(ctx, tmdbID, language, cfg)
		}
		return s.tvMeta(ctx, tmdbID, language, cfg)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Meta), nil
}

// resolveTMDBID strips the "tmdb:" prefix or translates an imdb id through
// the find endpoint. An unmatched imdb id resolves to the empty string.
func (s *Service) resolveTMDBID(ctx context.Context, mediaType, id string) (string, error) {
	switch {
	case strings.HasPrefix(id, "tmdb:"):
		return strings.TrimPrefix(id, "tmdb:"), nil
	case strings.HasPrefix(id, "tt"):
		tmdbID, err := s.tmdb.findByIMDB(ctx, mediaType, id)
		if err != nil {
			return "", err
		}
		if tmdbID == 0 {
			log.Printf("[meta] imdb id %s has no tmdb match for %s", id, mediaType)
			return "", nil
		}
		return fmt.Sprintf("%d", tmdbID), nil
	default:
		return "", nil
	}
}

// RequestToken starts the TMDB session handshake.
func (s *Service) RequestToken(ctx context.Context) (*models.TokenResponse, error) {
	res, err := s.tmdb.requestToken(ctx)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{
		Success:      res.Success,
		RequestToken: res.RequestToken,
		ExpiresAt:    res.ExpiresAt,
	}, nil
}

// CreateSession exchanges an approved request token for a session id.
func (s *Service) CreateSession(ctx context.Context, requestToken string) (*models.SessionResponse, error) {
	if requestToken == "" {
		return nil, errors.New("request token is required")
	}
	res, err := s.tmdb.createSession(ctx, requestToken)
	if err != nil {
		return nil, err
	}
	return &models.SessionResponse{
		Success:   res.Success,
		SessionID: res.SessionID,
	}, nil
}
