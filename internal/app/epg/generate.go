package epg

import (
	"fmt"
	"time"

	"github.com/gleibsonms/epg/internal/app/playlist"
)

const (
	DefaultWindow       = 48 * time.Hour
	DefaultSlotDuration = time.Hour
	DefaultTitle        = "Programa Exemplo"
	DefaultDesc         = "Sem informações no momento."
)

// Options control the placeholder guide generation.
type Options struct {
	Now          time.Time     // start of the guide, time.Now() when zero
	Window       time.Duration // total coverage starting at Now
	SlotDuration time.Duration // length of each placeholder programme
	UTCOffset    int           // hours east of UTC used for timestamps
	Title        string        // base title, numbered per slot
	Desc         string        // description of every placeholder programme
}

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Window <= 0 {
		o.Window = DefaultWindow
	}
	if o.SlotDuration <= 0 {
		o.SlotDuration = DefaultSlotDuration
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Desc == "" {
		o.Desc = DefaultDesc
	}
	return o
}

// Generate builds an XMLTV document with placeholder programmes for every
// channel. Each channel gets contiguous slots covering exactly opts.Window
// starting at opts.Now, with the final slot clamped to the window end. The
// result depends only on the channels and the options, so two runs with the
// same Now produce identical documents.
func Generate(channels []playlist.Channel, opts Options) *TV {
	opts = opts.withDefaults()

	zone := time.FixedZone(fmt.Sprintf("UTC%+03d", opts.UTCOffset), opts.UTCOffset*3600)
	base := opts.Now.In(zone)
	end := base.Add(opts.Window)

	slotsPerChannel := int(opts.Window / opts.SlotDuration)
	if opts.Window%opts.SlotDuration != 0 {
		slotsPerChannel++
	}

	tv := &TV{
		GeneratorInfoName: generatorInfoName,
		GeneratorInfoURL:  generatorInfoURL,
		Channels:          make([]Channel, 0, len(channels)),
		Programmes:        make([]Programme, 0, len(channels)*slotsPerChannel),
	}

	for _, ch := range channels {
		xch := Channel{
			ID:          ch.ID,
			DisplayName: ch.Name,
		}
		if ch.LogoURL != "" {
			xch.Icon = &Icon{Src: ch.LogoURL}
		}
		tv.Channels = append(tv.Channels, xch)

		start := base
		for n := 1; start.Before(end); n++ {
			stop := start.Add(opts.SlotDuration)
			if stop.After(end) {
				// clamp the final slot to the window end
				stop = end
			}
			tv.Programmes = append(tv.Programmes, Programme{
				Start:   start.Format(timeLayout),
				Stop:    stop.Format(timeLayout),
				Channel: ch.ID,
				Title:   fmt.Sprintf("%s %d", opts.Title, n),
				Desc:    opts.Desc,
			})
			start = stop
		}
	}

	return tv
}
