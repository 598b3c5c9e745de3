package playlist

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// key="value" pairs inside an #EXTINF line
var attrRegex = regexp.MustCompile(`([a-zA-Z0-9_-]+)="([^"]*)"`)

// pending holds an #EXTINF line that is still waiting for its stream URL.
type pending struct {
	name  string
	attrs map[string]string
	line  int
}

// Parse reads an M3U playlist and returns its channels in playlist order.
// Malformed entries are skipped with a warning instead of failing the whole
// playlist. When two entries share an ID only the first one is kept.
func Parse(r io.Reader) ([]Channel, error) {
	logger := zap.L()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var channels []Channel
	seen := make(map[string]struct{})
	var cur *pending

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#EXTINF"):
			if cur != nil {
				logger.Warn("Skipping a playlist entry without a stream URL.",
					zap.String("name", cur.name), zap.Int("line", cur.line))
			}
			cur = parseEXTINF(line, lineNum)
		case strings.HasPrefix(line, "#"):
			// other directives (#EXTM3U, #EXTVLCOPT, ...) carry nothing we need
			continue
		default:
			if cur == nil {
				logger.Warn("Skipping a stream URL without an #EXTINF line.", zap.Int("line", lineNum))
				continue
			}
			channel := cur.channel(line)
			cur = nil

			if channel.Name == "" {
				logger.Warn("Skipping a playlist entry without a name.", zap.Int("line", lineNum))
				continue
			}
			if _, ok := seen[channel.ID]; ok {
				logger.Warn("Skipping a duplicated channel.",
					zap.String("id", channel.ID), zap.String("name", channel.Name))
				continue
			}
			seen[channel.ID] = struct{}{}
			channels = append(channels, channel)
		}
	}
	if cur != nil {
		logger.Warn("Skipping a playlist entry without a stream URL.",
			zap.String("name", cur.name), zap.Int("line", cur.line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read the playlist: %w", err)
	}

	return channels, nil
}

// parseEXTINF extracts the attributes and the display name of an #EXTINF line.
func parseEXTINF(line string, lineNum int) *pending {
	attrs := make(map[string]string)
	cleaned := line
	for _, m := range attrRegex.FindAllStringSubmatch(line, -1) {
		attrs[strings.ToLower(m[1])] = m[2]
		cleaned = strings.Replace(cleaned, m[0], "", 1)
	}

	// the display name follows the first comma once the pairs are stripped
	var name string
	if parts := strings.SplitN(cleaned, ",", 2); len(parts) == 2 {
		name = strings.TrimSpace(parts[1])
	}
	if name == "" {
		name = attrs["tvg-name"]
	}

	return &pending{name: name, attrs: attrs, line: lineNum}
}

// channel builds the final Channel once the stream URL shows up.
func (p *pending) channel(streamURL string) Channel {
	id := p.attrs["tvg-id"]
	if id == "" {
		id = NormalizeID(p.name)
	}

	return Channel{
		ID:         id,
		Name:       p.name,
		LogoURL:    p.attrs["tvg-logo"],
		GroupTitle: p.attrs["group-title"],
		StreamURL:  streamURL,
	}
}
