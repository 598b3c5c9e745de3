package cmds

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gleibsonms/epg/internal/app/config"
	"github.com/gleibsonms/epg/internal/app/epg"
	"github.com/gleibsonms/epg/internal/app/playlist"
	"github.com/gleibsonms/epg/internal/pkg/logging"
	"github.com/gleibsonms/epg/internal/pkg/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string

	conf *config.Config

	output      string
	windowHours int
	slotMinutes int
	utcOffset   int
)

func init() {
	cobra.OnInitialize(initConfig)
}

func NewRootCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "epg <m3u-source>",
		Short:         "Generate a placeholder XMLTV guide from an M3U playlist.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// L(): fetch the global logger
			logger := zap.L()

			applyFlagOverrides(cmd)
			if err := conf.Validate(); err != nil {
				return err
			}

			source := playlist.NewSource(&http.Client{
				Timeout: conf.Timeout(),
			}, conf.UserAgent)

			// load the playlist from the local path or URL
			rc, err := source.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer rc.Close()

			channels, err := playlist.Parse(rc)
			if err != nil {
				return err
			}
			if len(channels) == 0 {
				logger.Warn("No valid channels were found in the playlist.")
			}

			guide := epg.Generate(channels, epg.Options{
				Window:       conf.Window(),
				SlotDuration: conf.SlotDuration(),
				UTCOffset:    conf.UTCOffset,
				Title:        conf.Title,
				Desc:         conf.Desc,
			})

			if err = epg.WriteFile(guide, conf.Output); err != nil {
				logger.Error("Failed to write the XMLTV file.", zap.Error(err))
				return err
			}

			logger.Sugar().Infof("A total of %d channels have been found, and %d programmes have been written to the file %s.",
				len(guide.Channels), len(guide.Programmes), conf.Output)

			return nil
		},
	}

	rootCmd.AddCommand(NewServeCLI())
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path of the YAML config file.")

	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Path of the generated XMLTV file, e.g `epg.xml`.")
	rootCmd.Flags().IntVar(&windowHours, "hours", 0, "Guide coverage in hours starting at the generation time.")
	rootCmd.Flags().IntVar(&slotMinutes, "slot-minutes", 0, "Duration of each placeholder programme in minutes.")
	rootCmd.Flags().IntVar(&utcOffset, "utc-offset", 0, "Timestamp offset in hours east of UTC, e.g `-3`.")

	return rootCmd
}

// applyFlagOverrides lets command line flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		conf.Output = output
	}
	if flags.Changed("hours") {
		conf.WindowHours = windowHours
	}
	if flags.Changed("slot-minutes") {
		conf.SlotMinutes = slotMinutes
	}
	if flags.Changed("utc-offset") {
		conf.UTCOffset = utcOffset
	}
}

// initConfig loads the config file and sets up the global logger.
func initConfig() {
	var err error
	var fPath string

	if cfgFile != "" {
		fPath = cfgFile
	} else {
		cfgHome, err := util.ExecutableDir()
		cobra.CheckErr(err)

		fPath = filepath.Join(cfgHome, "config.yml")

		if _, err = os.Stat(fPath); os.IsNotExist(err) {
			err = config.CreateDefaultCfg(fPath)
			cobra.CheckErr(err)
		}
	}

	conf, err = config.Load(fPath)
	cobra.CheckErr(err)

	cobra.CheckErr(logging.InitLogger(&conf.Log))
}
