package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/m3rciful/summerday/core/buildinfo"
	corecmd "github.com/m3rciful/summerday/core/cmd"
	tghelpers "github.com/m3rciful/summerday/core/telegram/helpers"
	"github.com/m3rciful/summerday/internal/app"
	"github.com/m3rciful/summerday/internal/summer"
	"github.com/m3rciful/summerday/internal/timezone"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		memory     bool
	)

	root := &cobra.Command{
		Use:   "summerday",
		Short: "Inline Telegram bot answering with the sticker of the current day of summer",
		Long: `summerday answers inline queries with a sticker for the current day of
summer (June 1 is day 1, August 31 is day 92) in the user's timezone, and a
fixed sticker the rest of the year.

Run without a subcommand to start the bot.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(configPath, memory)
		},
	}
	root.Flags().BoolVar(&memory, "memory", false, memoryUsage)
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default $CONFIG_PATH)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the inline bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(configPath, memory)
		},
	}
	serveCmd.Flags().BoolVar(&memory, "memory", false, memoryUsage)

	root.AddCommand(
		serveCmd,
		newCollectCmd(&configPath),
		newDayCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), "summerday", buildinfo.String())
			},
		},
	)
	return root
}

const memoryUsage = "keep timezones in memory instead of the database (lost on restart)"

func serve(configPath string, memory bool) error {
	return corecmd.Run(corecmd.Options{
		ConfigPath: configPath,
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			cfg, err := app.LoadConfig(path)
			if err != nil {
				return nil, err
			}
			if memory {
				cfg.MemoryStore = true
			}
			return cfg, nil
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			return app.Bootstrap(cfg.(*app.Config))
		},
	})
}

func newCollectCmd(configPath *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Run the collector bot that builds the sticker table",
		Long: `collect starts the bot in collector mode. Send it the sticker for every
day of summer in order, then the sticker for the rest of the year; the file
ids are written to --out and the bot exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return corecmd.Run(corecmd.Options{
				ConfigPath: *configPath,
				LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
					return app.LoadConfig(path)
				},
				Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
					return app.Collect(cfg.(*app.Config), out)
				},
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stickers.collect_out or file_ids.json)")
	return cmd
}

func newDayCmd() *cobra.Command {
	var (
		offset int
		date   string
		table  string
	)
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Print the day of summer and its sticker slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !timezone.Valid(offset) {
				return fmt.Errorf("--offset %d: %w", offset, timezone.ErrOutOfRange)
			}
			now := time.Now()
			if strings.TrimSpace(date) != "" {
				t, ok := tghelpers.ParseFlexibleDate(date, time.FixedZone("", offset*3600))
				if !ok {
					return fmt.Errorf("--date %q: expected YYYY-MM-DD", date)
				}
				now = t
			}

			day := summer.DayNumber(now, offset)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "zone:   %s\n", timezone.Label(offset))
			fmt.Fprintf(w, "day:    %d\n", day)
			fmt.Fprintf(w, "index:  %d\n", summer.Index(day))
			fmt.Fprintf(w, "summer: %t\n", summer.InSeason(day))
			if table == "" {
				return nil
			}
			t, err := summer.LoadTable(table)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "file:   %s\n", t.ForDay(day))
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", timezone.DefaultOffset, "UTC offset in hours")
	cmd.Flags().StringVar(&date, "date", "", "date to inspect, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&table, "table", os.Getenv("FILE_IDS_PATH"), "sticker table to resolve the file id from")
	return cmd
}
