package bilibili

// Envelope is the outer structure of every web-interface API response.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TTL     int    `json:"ttl"`
	Data    *T     `json:"data"`
}

// ViewData is the payload of the video view endpoint.
type ViewData struct {
	BVID      string            `json:"bvid"`
	AID       int64             `json:"aid"`
	Videos    int64             `json:"videos"`
	Pic       string            `json:"pic"`
	Title     string            `json:"title"`
	PubDate   int64             `json:"pubdate"`
	CTime     int64             `json:"ctime"`
	Desc      *string           `json:"desc"`
	DescV2    []DescriptionPart `json:"desc_v2"`
	State     int64             `json:"state"`
	Duration  int64             `json:"duration"`
	Owner     Owner             `json:"owner"`
	CID       int64             `json:"cid"`
	Dimension Dimension         `json:"dimension"`
}

// Owner is the uploader of a video.
type Owner struct {
	MID  int64  `json:"mid"`
	Name string `json:"name"`
	Face string `json:"face"`
}

// Dimension describes the first video part's frame.
type Dimension struct {
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
	Rotate int64 `json:"rotate"`
}

// DescriptionPart is one segment of a structured description.
type DescriptionPart struct {
	RawText string `json:"raw_text"`
	Type    int64  `json:"type"`
	BizID   int64  `json:"biz_id"`
}

// Description is either plain text or a list of structured parts.
// Upstream may send both; Plain wins.
type Description struct {
	Plain *string
	Parts []DescriptionPart
}

// Description returns the payload's description variant.
func (d ViewData) Description() Description {
	return Description{Plain: d.Desc, Parts: d.DescV2}
}

// Text returns the description used for previews. Only the plain-text variant
// is consumed; structured parts are ignored.
func (d Description) Text() (string, bool) {
	if d.Plain == nil {
		return "", false
	}
	return *d.Plain, true
}
