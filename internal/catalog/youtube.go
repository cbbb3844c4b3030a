package catalog

import (
	"context"
	"fmt"
	"html"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/catvibes/catvibes/internal/library"
)

// musicCategoryID is the YouTube video category for music.
const musicCategoryID = "10"

// topicSuffix marks auto-generated artist channels.
const topicSuffix = " - Topic"

// maxLookupIDs is the most ids Videos.List accepts per call.
const maxLookupIDs = 50

// YouTube searches the YouTube Data API v3.
type YouTube struct {
	service *ytapi.Service
	logger  *log.Entry
}

// NewYouTube creates a client authenticated with apiKey. Extra options are
// appended after the key.
func NewYouTube(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTube, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := ytapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube client: %w", err)
	}
	return &YouTube{
		service: service,
		logger:  log.WithFields(log.Fields{"module": "catalog"}),
	}, nil
}

// Search runs a search and resolves the durations of the hits.
func (y *YouTube) Search(ctx context.Context, query string, kind Kind, limit int) ([]library.Metadata, error) {
	logger := y.logger.WithFields(log.Fields{"function": "Search", "query": query})

	if limit <= 0 {
		return nil, nil
	}

	call := y.service.Search.List([]string{"snippet"}).
		Q(query).
		MaxResults(int64(limit)).
		Type("video")
	if kind == KindSongs {
		call = call.VideoCategoryId(musicCategoryID)
	}

	response, err := call.Context(ctx).Do()
	if err != nil {
		logger.WithError(err).Warn("search failed")
		return nil, classify("search", err)
	}

	ids := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id != nil && item.Id.Kind == "youtube#video" && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}

	results, err := y.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}
	logger.WithField("results", len(results)).Debug("search done")
	return results, nil
}

// Lookup fetches snippet and duration for ids in batches.
func (y *YouTube) Lookup(ctx context.Context, ids []string) ([]library.Metadata, error) {
	byID := make(map[string]library.Metadata, len(ids))

	for start := 0; start < len(ids); start += maxLookupIDs {
		end := min(start+maxLookupIDs, len(ids))
		response, err := y.service.Videos.List([]string{"snippet", "contentDetails"}).
			Id(ids[start:end]...).
			Context(ctx).
			Do()
		if err != nil {
			y.logger.WithError(err).WithField("function", "Lookup").Warn("video lookup failed")
			return nil, classify("lookup", err)
		}
		for _, item := range response.Items {
			byID[item.Id] = videoMetadata(item)
		}
	}

	out := make([]library.Metadata, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func videoMetadata(v *ytapi.Video) library.Metadata {
	m := library.Metadata{ID: v.Id}
	if v.Snippet != nil {
		m.Title = html.UnescapeString(v.Snippet.Title)
		if artist := strings.TrimSuffix(v.Snippet.ChannelTitle, topicSuffix); artist != "" {
			m.Artists = []library.Artist{{Name: artist, ID: v.Snippet.ChannelId}}
		}
	}
	if v.ContentDetails != nil {
		if d, err := ParseISODuration(v.ContentDetails.Duration); err == nil {
			m.DurationSeconds = int(d.Seconds())
			m.Duration = library.FormatTime(d)
		}
	}
	return m
}

func classify(op string, err error) error {
	if isOffline(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrOffline, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
