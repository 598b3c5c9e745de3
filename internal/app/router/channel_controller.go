package router

import (
	"net/http"
	"sync/atomic"

	"github.com/gleibsonms/epg/internal/app/playlist"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	// cache of the latest playlist channels
	channelsPtr atomic.Pointer[[]playlist.Channel]
)

// GetM3UData returns the cached playlist in m3u format.
func GetM3UData(c *gin.Context) {
	channelsP := channelsPtr.Load()
	if channelsP == nil || len(*channelsP) == 0 {
		c.Status(http.StatusNotFound)
		return
	}

	m3uContent, err := playlist.ToM3U(*channelsP)
	if err != nil {
		logger.Error("Failed to convert the channel list to m3u format.", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.String(http.StatusOK, m3uContent)
}

// updateChannels swaps the cached channel list.
func updateChannels(channels []playlist.Channel) {
	logger.Sugar().Infof("The channel list has been updated, rows: %d.", len(channels))
	channelsPtr.Store(&channels)
}
