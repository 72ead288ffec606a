// This file is part of dtmovie.
//
// dtmovie is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dtmovie is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dtmovie.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jetsetilly/dtmovie/logger"
	"github.com/jetsetilly/dtmovie/metrics"
	"github.com/jetsetilly/dtmovie/movie"
	"github.com/jetsetilly/dtmovie/paths"
	"github.com/jetsetilly/dtmovie/prefs"
	"github.com/jetsetilly/dtmovie/statsview"
	"github.com/jetsetilly/dtmovie/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// exit values
const (
	exitFlags = 10
	exitMode  = 20
)

// rootOptions are the options shared by every command.
type rootOptions struct {
	prefsPath string
	overrides string
	echo      bool
	metrics   string
	statsview bool

	prefs   *movie.Preferences
	reg     *metrics.Metrics
	server  *http.Server
	stopper func()
}

func main() {
	// ctrl-c cancels the context. a second ctrl-c is not caught
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Printf("* error: %v\n", err)
		if errors.Is(err, errFlags) {
			os.Exit(exitFlags)
		}
		os.Exit(exitMode)
	}
}

var errFlags = errors.New("bad arguments")

func versionString() string {
	v, r, _ := version.Version()
	return fmt.Sprintf("%s (%s)", v, r)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "dtmovie",
		Short:         "record, play back and manage DTM input movies",
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.teardown()
		},
	}

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errFlags, err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.prefsPath, "prefs", "", "preferences file (default is the resource directory)")
	flags.StringVar(&opts.overrides, "set", "", "override preferences for this run (key::value; key::value)")
	flags.BoolVar(&opts.echo, "echo", false, "echo the log to stderr")
	flags.StringVar(&opts.metrics, "metrics", "", "serve prometheus metrics on the address")
	flags.BoolVar(&opts.statsview, "statsview", false, fmt.Sprintf("run stats server (%s)", statsview.URL("")))

	cmd.AddCommand(newInspectCommand(opts))
	cmd.AddCommand(newVerifyCommand(opts))
	cmd.AddCommand(newRecordCommand(opts))
	cmd.AddCommand(newCatalogueCommand(opts))

	return cmd
}

func (opts *rootOptions) setup(cmd *cobra.Command) error {
	if opts.echo {
		logger.SetEcho(cmd.ErrOrStderr())
	}

	path := opts.prefsPath
	if path == "" {
		path = prefs.DefaultPath(paths.ResourcePath(prefs.DefaultPrefsFile))
	}

	overrides := prefs.ParseOverrides(opts.overrides)

	var err error
	opts.prefs, err = movie.NewPreferences(path, overrides)
	if err != nil {
		return err
	}
	if u := overrides.Unused(); u != "" {
		logger.Logf(logger.Allow, "prefs", "unused overrides: %s", u)
	}

	if opts.metrics != "" {
		reg := prometheus.NewRegistry()
		opts.reg, err = metrics.NewMetrics(reg)
		if err != nil {
			return err
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		opts.server = &http.Server{
			Addr:              opts.metrics,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := opts.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Log(logger.Allow, "metrics", err)
			}
		}()
	}

	if opts.statsview {
		opts.stopper = statsview.Launch(cmd.ErrOrStderr(), "")
	}

	return nil
}

func (opts *rootOptions) teardown() {
	if opts.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = opts.server.Shutdown(ctx)
		opts.server = nil
	}
	if opts.stopper != nil {
		opts.stopper()
		opts.stopper = nil
	}
}
