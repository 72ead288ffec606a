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
	"github.com/jetsetilly/dtmovie/verify"
	"github.com/spf13/cobra"
)

type verifyOptions struct {
	*rootOptions
	game     string
	jobs     int
	failFast bool
}

func newVerifyCommand(root *rootOptions) *cobra.Command {
	opts := &verifyOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "verify <file>...",
		Short: "replay movies headlessly and report any desync",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := verify.Run(cmd.Context(), cmd.OutOrStdout(), args, verify.Options{
				Game:     opts.game,
				Jobs:     opts.jobs,
				FailFast: opts.failFast,
				Metrics:  opts.reg,
			})
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.game, "game", "", "game image to compare with the checksum in each movie")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "number of movies to verify at once (default one per CPU)")
	flags.BoolVar(&opts.failFast, "fail-fast", false, "stop after the first failure")

	return cmd
}
