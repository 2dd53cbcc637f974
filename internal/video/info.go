package video

import "context"

// Info is the subset of upstream metadata needed to build a preview.
type Info struct {
	Title        string
	Description  *string
	PublishTime  int64
	ModifiedTime int64
	ThumbnailURL *string
	Duration     int64
	AuthorName   string
}

// MetadataFetcher looks up video metadata by ID.
type MetadataFetcher interface {
	Fetch(ctx context.Context, id ID) (Info, error)
}
