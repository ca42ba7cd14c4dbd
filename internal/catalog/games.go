package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	imageBaseURL = "https://images.igdb.com/igdb/image/upload/"

	// CoverSize and ScreenshotSize are the CDN size presets used for rendered images.
	CoverSize      = "t_1080p"
	ScreenshotSize = "t_screenshot_big"

	// DescriptionLimit caps a derived description before the ellipsis is appended.
	DescriptionLimit = 200
)

var errMissingField = errors.New("missing field")

// Featured is a recently released game shown on the landing page.
type Featured struct {
	ID          int64
	Name        string
	Summary     string
	CoverURL    string
	Screenshots []string
	ReleasedAt  time.Time
}

// Summary is a search hit.
type Summary struct {
	ID       int64
	Name     string
	CoverURL string
	Year     int
}

// Detail is the full record used to add a game to a list.
type Detail struct {
	Name     string
	Summary  string
	CoverURL string
	Year     int
}

// Description is the summary shortened for storage.
func (d Detail) Description() string {
	return ShortDescription(d.Summary)
}

// ImageURL builds a CDN URL for an image id at the given size preset.
func ImageURL(size, imageID string) string {
	return imageBaseURL + size + "/" + imageID + ".png"
}

// ShortDescription keeps the text before the first period and caps it at
// DescriptionLimit characters, marking a cut with "...".
func ShortDescription(summary string) string {
	sentence, _, _ := strings.Cut(summary, ".")
	runes := []rune(sentence)
	if len(runes) > DescriptionLimit {
		return string(runes[:DescriptionLimit]) + "..."
	}
	return sentence
}

func parseFeatured(r gjson.Result) (Featured, error) {
	id, name, err := identity(r)
	if err != nil {
		return Featured{}, err
	}
	cover, err := requireString(r, "cover.image_id")
	if err != nil {
		return Featured{}, err
	}
	released := r.Get("first_release_date")
	if released.Type != gjson.Number {
		return Featured{}, fmt.Errorf("%w: first_release_date", errMissingField)
	}

	var screenshots []string
	for _, shot := range r.Get("screenshots").Array() {
		if imageID := shot.Get("image_id").String(); imageID != "" {
			screenshots = append(screenshots, ImageURL(ScreenshotSize, imageID))
		}
	}
	if len(screenshots) == 0 {
		return Featured{}, fmt.Errorf("%w: screenshots", errMissingField)
	}

	return Featured{
		ID:          id,
		Name:        name,
		Summary:     r.Get("summary").String(),
		CoverURL:    ImageURL(CoverSize, cover),
		Screenshots: screenshots,
		ReleasedAt:  time.Unix(released.Int(), 0).UTC(),
	}, nil
}

func parseSummary(r gjson.Result) (Summary, error) {
	id, name, err := identity(r)
	if err != nil {
		return Summary{}, err
	}
	cover, err := requireString(r, "cover.image_id")
	if err != nil {
		return Summary{}, err
	}
	year, err := firstReleaseYear(r)
	if err != nil {
		return Summary{}, err
	}
	return Summary{ID: id, Name: name, CoverURL: ImageURL(CoverSize, cover), Year: year}, nil
}

func parseDetail(r gjson.Result) (Detail, error) {
	name, err := requireString(r, "name")
	if err != nil {
		return Detail{}, err
	}
	cover, err := requireString(r, "cover.image_id")
	if err != nil {
		return Detail{}, err
	}
	year, err := firstReleaseYear(r)
	if err != nil {
		return Detail{}, err
	}
	return Detail{
		Name:     name,
		Summary:  r.Get("summary").String(),
		CoverURL: ImageURL(CoverSize, cover),
		Year:     year,
	}, nil
}

func identity(r gjson.Result) (int64, string, error) {
	id := r.Get("id")
	if id.Type != gjson.Number {
		return 0, "", fmt.Errorf("%w: id", errMissingField)
	}
	name, err := requireString(r, "name")
	if err != nil {
		return 0, "", err
	}
	return id.Int(), name, nil
}

func requireString(r gjson.Result, path string) (string, error) {
	v := r.Get(path)
	if v.Type != gjson.String || v.String() == "" {
		return "", fmt.Errorf("%w: %s", errMissingField, path)
	}
	return v.String(), nil
}

func firstReleaseYear(r gjson.Result) (int, error) {
	date := r.Get("release_dates.0.date")
	if date.Type != gjson.Number {
		return 0, fmt.Errorf("%w: release_dates.0.date", errMissingField)
	}
	return time.Unix(date.Int(), 0).UTC().Year(), nil
}
