package metadata

import (
	"context"
	"fmt"
	"log"

	"github.com/sourcegraph/conc/iter"

	"github.com/facuparedes/tmdb-addon/models"
)

const episodeStillBaseURL = "https://image.tmdb.org/t/p/w500"

// expandEpisodes flattens every season into one ordered video list. Seasons
// are fetched concurrently but flattened in season order; a failed season is
// logged and skipped so one bad season never loses the whole show.
func (s *Service) expandEpisodes(ctx context.Context, tmdbID, imdbID, language string, seasons []tmdbSeasonStub, hideThumbnails bool) ([]models.VideoItem, error) {
	if len(seasons) == 0 {
		return nil, nil
	}

	idPrefix := imdbID
	if idPrefix == "" {
		idPrefix = "tmdb:" + tmdbID
	}

	perSeason := iter.Map(seasons, func(season *tmdbSeasonStub) []models.VideoItem {
		details, err := s.tmdb.seasonDetails(ctx, tmdbID, season.SeasonNumber, language)
		if err != nil {
			log.Printf("[episodes] season %d of tmdb:%s failed: %v", season.SeasonNumber, tmdbID, err)
			return nil
		}
		videos := make([]models.VideoItem, 0, len(details.Episodes))
		for _, ep := range details.Episodes {
			item := models.VideoItem{
				ID:       fmt.Sprintf("%s:%d:%d", idPrefix, ep.SeasonNumber, ep.EpisodeNumber),
				Title:    ep.Name,
				Season:   ep.SeasonNumber,
				Episode:  ep.EpisodeNumber,
				Released: parseReleased(ep.AirDate),
				Overview: ep.Overview,
			}
			if !hideThumbnails && ep.StillPath != "" {
				item.Thumbnail = episodeStillBaseURL + ep.StillPath
			}
			videos = append(videos, item)
		}
		return videos
	})

	var flat []models.VideoItem
	for _, videos := range perSeason {
		flat = append(flat, videos...)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("no episodes resolved for tmdb:%s", tmdbID)
	}
	return flat, nil
}
