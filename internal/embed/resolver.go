// Package embed turns a video ID into a ready-to-serve preview document.
package embed

import (
	"context"

	"go.uber.org/zap"

	"github.com/JakeFAU/fxbilibili/internal/opengraph"
	"github.com/JakeFAU/fxbilibili/internal/video"
)

// Fixed preview values for every video.
const (
	SiteName  = "Bilibili"
	VideoType = "video.episode"
)

// Resolver fetches metadata and folds it into an Open Graph document.
type Resolver struct {
	fetcher video.MetadataFetcher
	logger  *zap.Logger
}

// NewResolver creates a Resolver backed by fetcher.
func NewResolver(fetcher video.MetadataFetcher, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{fetcher: fetcher, logger: logger}
}

// Resolve builds the preview for id. Fetch errors are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, id video.ID) (*opengraph.Document, error) {
	info, err := r.fetcher.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := opengraph.New(id.CanonicalURL(), info.Title)
	doc.SetSiteName(SiteName).SetType(VideoType)
	if info.Description != nil {
		doc.SetDescription(*info.Description)
	}
	if info.ThumbnailURL != nil {
		doc.SetImage(*info.ThumbnailURL)
	}
	doc.SetReleaseDate(info.PublishTime).SetDuration(info.Duration)

	r.logger.Debug("embed resolved",
		zap.Stringer("video_id", id),
		zap.String("author", info.AuthorName),
	)
	return doc, nil
}
