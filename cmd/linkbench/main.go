package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/percona/linkcontainers/config"
	"github.com/percona/linkcontainers/errors"
	"github.com/percona/linkcontainers/log"
	"github.com/percona/linkcontainers/metrics"
	"github.com/percona/linkcontainers/workload"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		zerolog.Ctx(context.Background()).Fatal().Err(err).Msg("")
	}
}

func newRootCmd() *cobra.Command {
	var (
		logLevelFlag string
		logJSON      bool
		logNoColor   bool
	)

	rootCmd := &cobra.Command{
		Use:   "linkbench",
		Short: "Exercise the linked queue and stack with a self-checking workload",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logLevel, err := zerolog.ParseLevel(logLevelFlag)
			if err != nil {
				log.InitGlobals(0, logJSON, true).Fatal().Msg("Unknown log level")
			}

			lg := log.InitGlobals(logLevel, logJSON, logNoColor)
			ctx := lg.WithContext(context.Background())
			cmd.SetContext(ctx)
		},
	}

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "Log level")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Output log in JSON format")
	rootCmd.PersistentFlags().BoolVar(&logNoColor, "no-color", false, "Disable log color")

	rootCmd.AddCommand(newRunCmd())

	return rootCmd
}

func newRunCmd() *cobra.Command {
	cfg := config.Default()
	envErr := cfg.ApplyEnv()

	var dumpMetrics bool

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the push/pop workload and print a report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if envErr != nil {
				return errors.Wrap(envErr, "environment")
			}

			var reg *prometheus.Registry
			if dumpMetrics {
				reg = prometheus.NewRegistry()
				metrics.Init(reg)
			}

			reports, err := workload.Run(cmd.Context(), cfg)
			if err != nil {
				return errors.Wrap(err, "run workload")
			}

			err = writeReport(cmd.OutOrStdout(), reports)
			if err != nil {
				return errors.Wrap(err, "write report")
			}

			if reg != nil {
				err = writeMetrics(cmd.OutOrStdout(), reg)
				if err != nil {
					return errors.Wrap(err, "write metrics")
				}
			}

			return nil
		},
	}

	cfg.BindFlags(runCmd.Flags())
	runCmd.Flags().BoolVar(&dumpMetrics, "metrics", false,
		"Print metrics in Prometheus text format after the report")

	return runCmd
}

func writeReport(w io.Writer, reports []workload.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "CONTAINER\tOPS\tPUSHES\tPOPS\tEMPTY POPS\tPEAK\tFINAL\tTIME\tOPS/SEC")

	for _, rep := range reports {
		opsPerSec := 0.0
		if secs := rep.Duration.Seconds(); secs > 0 {
			opsPerSec = float64(rep.Ops) / secs
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rep.Container,
			humanize.Comma(int64(rep.Ops)),
			humanize.Comma(int64(rep.Pushes)),
			humanize.Comma(int64(rep.Pops)),
			humanize.Comma(int64(rep.EmptyPops)),
			humanize.Comma(int64(rep.PeakSize)),
			humanize.Comma(int64(rep.FinalSize)),
			rep.Duration.Round(time.Microsecond),
			humanize.Commaf(float64(int64(opsPerSec))))
	}

	return tw.Flush() //nolint:wrapcheck
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "gather")
	}

	for _, mf := range families {
		_, err = expfmt.MetricFamilyToText(w, mf)
		if err != nil {
			return errors.Wrapf(err, "encode %s", mf.GetName())
		}
	}

	return nil
}
