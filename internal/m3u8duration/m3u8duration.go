package m3u8duration

import (
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/etherlabsio/go-m3u8/m3u8"
)

func cleanURL(u string) string {
	parsedURL, _ := url.Parse(u)
	parsedURL.Path = path.Dir(parsedURL.Path)

	return parsedURL.String()
}

// Fetch resolves the total duration of an m3u8 playlist in seconds,
// following a master playlist down to its first media playlist.
func Fetch(url string) (float64, error) {
	resp, err := http.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	playlist, err := m3u8.Read(resp.Body)
	if err != nil {
		return 0, err
	}

	if playlist.IsMaster() {
		for _, item := range playlist.Items {
			if item, ok := item.(*m3u8.PlaylistItem); ok {
				uri := fmt.Sprintf("%s/%s", cleanURL(url), item.URI)
				return Fetch(uri)
			}
		}
	}

	return playlist.Duration(), nil
}
