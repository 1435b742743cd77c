package scryfall

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ImageVersion selects which rendition of a card image to download.
type ImageVersion string

// Image renditions offered by the upstream.
const (
	ImageSmall  ImageVersion = "small"
	ImageNormal ImageVersion = "normal"
	ImageLarge  ImageVersion = "large"
	ImagePNG    ImageVersion = "png"
)

// ErrNoImage is returned when a card carries no image URI for the requested
// version.
var ErrNoImage = errors.New("card has no image for requested version")

// maxImageBytes bounds a single image download.
const maxImageBytes = 16 << 20

// CardImage downloads the card's image in the given version. The download
// paces itself through the shared dispatch gate like every other upstream
// call.
func (c *Client) CardImage(ctx context.Context, card Card, version ImageVersion) ([]byte, error) {
	uri := card.ImageURIs[string(version)]
	if uri == "" {
		return nil, fmt.Errorf("%w: %s %q", ErrNoImage, card.Name, version)
	}

	if err := c.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodGet, uri, "/image", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newUpstreamError(resp, "/image")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}

	c.logger.Debug().
		Str("card", card.Name).
		Str("version", string(version)).
		Int("bytes", len(data)).
		Msg("Downloaded card image")

	return data, nil
}
