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
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/dtmovie/digest"
	"github.com/jetsetilly/dtmovie/dtm"
	"github.com/jetsetilly/dtmovie/inputs"
	"github.com/spf13/cobra"
)

type inspectOptions struct {
	*rootOptions
	memviz string
}

func newInspectCommand(root *rootOptions) *cobra.Command {
	opts := &inspectOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "describe the header and input stream of a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.OutOrStdout(), args[0])
		},
	}

	cmd.Flags().StringVar(&opts.memviz, "memviz", "", "write a graphviz diagram of the parsed header to the file")

	return cmd
}

func (opts *inspectOptions) run(output io.Writer, path string) error {
	h, payload, err := dtm.ReadFile(path)
	if err != nil {
		return err
	}

	h.Describe(output, len(payload))

	if n := inputs.NewLayout(h.Devices()).Records(len(payload)); n >= 0 {
		fmt.Fprintf(output, "%-16s %d\n", "records:", n)
	}
	fmt.Fprintf(output, "%-16s %016x\n", "fingerprint:", digest.Payload(payload))

	if opts.memviz != "" {
		f, err := os.Create(opts.memviz)
		if err != nil {
			return err
		}
		memviz.Map(f, &h)
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(output, "header diagram written to %s\n", opts.memviz)
	}

	return nil
}
