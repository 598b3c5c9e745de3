package playlist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

type Channel struct {
	ID         string `json:"id"`         // stable channel identifier
	Name       string `json:"name"`       // display name
	LogoURL    string `json:"logoURL"`    // optional logo image URL
	GroupTitle string `json:"groupTitle"` // optional playlist group
	StreamURL  string `json:"streamURL"`  // stream address
}

// NormalizeID derives a channel identifier from a display name. Accents are
// folded to ASCII and everything outside [a-z0-9] is dropped, so
// "Canal São Paulo HD" becomes "canalsaopaulohd".
func NormalizeID(name string) string {
	return strings.ReplaceAll(slug.Make(name), "-", "")
}

// ToM3U renders the channels back into an M3U playlist.
func ToM3U(channels []Channel) (string, error) {
	if len(channels) == 0 {
		return "", errors.New("no channels found")
	}

	var sb strings.Builder
	sb.WriteString("#EXTM3U\n")
	for _, channel := range channels {
		sb.WriteString(fmt.Sprintf("#EXTINF:-1 tvg-id=\"%s\" tvg-name=\"%s\"", channel.ID, channel.Name))
		if channel.LogoURL != "" {
			sb.WriteString(fmt.Sprintf(" tvg-logo=\"%s\"", channel.LogoURL))
		}
		if channel.GroupTitle != "" {
			sb.WriteString(fmt.Sprintf(" group-title=\"%s\"", channel.GroupTitle))
		}
		sb.WriteString(fmt.Sprintf(",%s\n%s\n", channel.Name, channel.StreamURL))
	}
	return sb.String(), nil
}
