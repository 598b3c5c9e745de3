package cmds

import (
	"errors"
	"fmt"

	"github.com/gleibsonms/epg/internal/app/router"

	"github.com/spf13/cobra"
)

var httpConfig HttpConfig

type HttpConfig struct {
	Port int    `json:"port"`
	Cron string `json:"cron"`
}

func NewServeCLI() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve [m3u-source]",
		Short: "Start an HTTP service exposing the playlist and the generated guide.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := conf.Validate(); err != nil {
				return err
			}

			source := conf.Source
			if len(args) > 0 {
				source = args[0]
			}
			if source == "" {
				return errors.New("no playlist source, pass one as an argument or set source in the config file")
			}

			// create and start the HTTP service
			r, err := router.NewEngine(cmd.Context(), conf, source, httpConfig.Cron)
			if err != nil {
				return err
			}
			if err = r.Run(fmt.Sprintf(":%d", httpConfig.Port)); err != nil {
				return err
			}

			return nil
		},
	}

	serveCmd.Flags().IntVarP(&httpConfig.Port, "port", "p", 8080, "HTTP listen port.")
	serveCmd.Flags().StringVarP(&httpConfig.Cron, "cron", "c", "0 */12 * * *", "Cron schedule used to refresh the playlist and the guide, e.g `0 */12 * * *`.")

	return serveCmd
}
