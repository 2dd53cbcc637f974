package video

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// BaseURL is the origin of canonical video pages.
const BaseURL = "https://www.bilibili.com"

const (
	numericPrefix = "av"
	codedPrefix   = "BV"
)

// ErrInvalidNumericID is returned when an av identifier is not an integer.
var ErrInvalidNumericID = errors.New("invalid numeric video id")

// Kind selects the addressing scheme of an ID.
type Kind uint8

const (
	// KindNumeric addresses a video by its integer av number.
	KindNumeric Kind = iota
	// KindCoded addresses a video by its opaque BV code.
	KindCoded
)

// ID identifies a video by exactly one of the two addressing schemes.
// The zero value is the numeric id 0. IDs are comparable and may key maps.
type ID struct {
	kind    Kind
	numeric int64
	coded   string
}

// Numeric builds an av-scheme ID.
func Numeric(n int64) ID {
	return ID{kind: KindNumeric, numeric: n}
}

// Coded builds a BV-scheme ID. The code is kept verbatim.
func Coded(code string) ID {
	return ID{kind: KindCoded, coded: code}
}

// ParseNumeric parses the decimal part of an av identifier.
func ParseNumeric(raw string) (ID, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidNumericID, raw)
	}
	return Numeric(n), nil
}

// Kind reports which scheme the ID uses.
func (id ID) Kind() Kind {
	return id.kind
}

// NumericValue returns the av number; ok is false for coded IDs.
func (id ID) NumericValue() (n int64, ok bool) {
	return id.numeric, id.kind == KindNumeric
}

// CodedValue returns the BV code; ok is false for numeric IDs.
func (id ID) CodedValue() (code string, ok bool) {
	return id.coded, id.kind == KindCoded
}

// String renders the path form, e.g. "av170001" or "BV17x411w7KC".
func (id ID) String() string {
	if id.kind == KindCoded {
		return codedPrefix + id.coded
	}
	return numericPrefix + strconv.FormatInt(id.numeric, 10)
}

// CanonicalURL returns the platform page a browser should land on.
func (id ID) CanonicalURL() string {
	return BaseURL + "/video/" + id.String()
}

// QueryParam returns the single upstream query parameter selecting this video.
func (id ID) QueryParam() (name, value string) {
	if id.kind == KindCoded {
		return "bvid", id.coded
	}
	return "aid", strconv.FormatInt(id.numeric, 10)
}

// Compare orders numeric IDs before coded ones, then by value.
func (id ID) Compare(other ID) int {
	if id.kind != other.kind {
		if id.kind < other.kind {
			return -1
		}
		return 1
	}
	if id.kind == KindCoded {
		return strings.Compare(id.coded, other.coded)
	}
	switch {
	case id.numeric < other.numeric:
		return -1
	case id.numeric > other.numeric:
		return 1
	default:
		return 0
	}
}
