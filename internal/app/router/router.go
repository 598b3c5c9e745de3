package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gleibsonms/epg/internal/app/config"
	"github.com/gleibsonms/epg/internal/app/epg"
	"github.com/gleibsonms/epg/internal/app/playlist"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var logger *zap.Logger

func NewEngine(ctx context.Context, conf *config.Config, source string, cronSpec string) (*gin.Engine, error) {
	// L(): fetch the global logger
	logger = zap.L()

	gin.SetMode(gin.ReleaseMode)

	gen := newGenerator(conf, source)

	// the first generation must succeed before the service starts
	if err := refreshWithRetry(ctx, gen, 3); err != nil {
		return nil, err
	}

	// run the refresh schedule
	if err := Schedule(ctx, gen, cronSpec); err != nil {
		return nil, err
	}

	r := gin.New()

	r.Use(ginzap.Ginzap(logger, "", false))
	r.Use(ginzap.RecoveryWithZap(logger, true))

	// playlist in m3u format
	r.GET("/channel/m3u", GetM3UData)

	// guide in json format
	r.GET("/epg/json", GetJsonEPG)
	// guide in xmltv format
	r.GET("/epg/xml", GetXmlEPG)
	r.GET("/epg/xml.gz", GetXmlEPGWithGzip)

	return r, nil
}

// generator rebuilds the cached playlist and guide from the source.
type generator struct {
	conf   *config.Config
	source string
	src    *playlist.Source
}

func newGenerator(conf *config.Config, source string) *generator {
	return &generator{
		conf:   conf,
		source: source,
		src: playlist.NewSource(&http.Client{
			Timeout: conf.Timeout(),
		}, conf.UserAgent),
	}
}

// refresh reloads the playlist, regenerates the guide and swaps the caches.
func (g *generator) refresh(ctx context.Context) error {
	rc, err := g.src.Load(ctx, g.source)
	if err != nil {
		return err
	}
	defer rc.Close()

	channels, err := playlist.Parse(rc)
	if err != nil {
		return err
	}

	guide := epg.Generate(channels, epg.Options{
		Window:       g.conf.Window(),
		SlotDuration: g.conf.SlotDuration(),
		UTCOffset:    g.conf.UTCOffset,
		Title:        g.conf.Title,
		Desc:         g.conf.Desc,
	})

	if err = updateGuide(guide); err != nil {
		return err
	}
	updateChannels(channels)

	return nil
}

// refreshWithRetry refreshes the caches, retrying on failure.
func refreshWithRetry(ctx context.Context, gen *generator, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		if err = gen.refresh(ctx); err != nil {
			logger.Sugar().Errorf("Failed to refresh the guide, will try again after waiting %d seconds. Error: %v, number of retries: %d.", waitSeconds, err, i)
			time.Sleep(waitSeconds * time.Second)
		} else {
			break
		}
	}
	return err
}
