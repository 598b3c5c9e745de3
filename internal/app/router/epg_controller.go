package router

import (
	"compress/gzip"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/gleibsonms/epg/internal/app/epg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xmltvGzipFilename = "epg.xml.gz"

var (
	// cache of the latest generated guide
	guidePtr atomic.Pointer[epg.TV]
	// cache of the marshaled XMLTV document
	xmlPtr atomic.Pointer[[]byte]
)

// ChannelJsonEPG is the guide of one channel in JSON format.
type ChannelJsonEPG struct {
	ChannelName string    `json:"channel_name"`
	EPGData     []JsonEPG `json:"epg_data"`
}

type JsonEPG struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// GetJsonEPG returns the programmes of one channel in JSON format.
func GetJsonEPG(c *gin.Context) {
	// the channel can be given by display name or by ID
	chName := c.Query("ch")
	if chName == "" {
		logger.Warn("The name of the channel is null.")
		c.Status(http.StatusBadRequest)
		return
	}

	emptyResp := ChannelJsonEPG{
		ChannelName: chName,
		EPGData:     []JsonEPG{},
	}

	guide := guidePtr.Load()
	if guide == nil {
		c.PureJSON(http.StatusOK, &emptyResp)
		return
	}

	var chID string
	for _, channel := range guide.Channels {
		if channel.DisplayName == chName || channel.ID == chName {
			chID = channel.ID
			break
		}
	}
	if chID == "" {
		c.PureJSON(http.StatusOK, &emptyResp)
		return
	}

	epgData := make([]JsonEPG, 0)
	for _, programme := range guide.Programmes {
		if programme.Channel != chID {
			continue
		}
		epgData = append(epgData, JsonEPG{
			Title: programme.Title,
			Desc:  programme.Desc,
			Start: programme.Start,
			End:   programme.Stop,
		})
	}

	c.PureJSON(http.StatusOK, &ChannelJsonEPG{
		ChannelName: chName,
		EPGData:     epgData,
	})
}

// GetXmlEPG returns the guide as an XMLTV document.
func GetXmlEPG(c *gin.Context) {
	data := xmlPtr.Load()
	if data == nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", *data)
}

// GetXmlEPGWithGzip returns the guide as a gzip compressed XMLTV file.
func GetXmlEPGWithGzip(c *gin.Context) {
	data := xmlPtr.Load()
	if data == nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("Transfer-Encoding", "gzip")
	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", xmltvGzipFilename))

	gzipWriter := gzip.NewWriter(c.Writer)
	defer gzipWriter.Close()

	if _, err := gzipWriter.Write(*data); err != nil {
		logger.Error("Failed to write the compressed guide.", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
}

// updateGuide swaps the cached guide and its marshaled document.
func updateGuide(guide *epg.TV) error {
	data, err := guide.Marshal()
	if err != nil {
		return err
	}

	logger.Sugar().Infof("The guide has been updated, channels: %d, programmes: %d.",
		len(guide.Channels), len(guide.Programmes))
	guidePtr.Store(guide)
	xmlPtr.Store(&data)

	return nil
}
