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

	"github.com/jetsetilly/dtmovie/catalogue"
	"github.com/jetsetilly/dtmovie/paths"
	"github.com/spf13/cobra"
)

type catalogueOptions struct {
	*rootOptions
	db string
}

// open the catalogue and run f. the catalogue is always closed
func (opts *catalogueOptions) with(f func(cat *catalogue.Session) error) (err error) {
	cat, err := catalogue.Open(opts.db)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cat.Close(); err == nil {
			err = cerr
		}
	}()
	return f(cat)
}

func newCatalogueCommand(root *rootOptions) *cobra.Command {
	opts := &catalogueOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:     "catalogue",
		Aliases: []string{"cat"},
		Short:   "manage the catalogue of recordings",
	}

	cmd.PersistentFlags().StringVar(&opts.db, "db", paths.ResourcePath("catalogue"), "catalogue directory")

	cmd.AddCommand(&cobra.Command{
		Use:   "add <file>...",
		Short: "add movies to the catalogue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.with(func(cat *catalogue.Session) error {
				for _, path := range args {
					ent, err := cat.Add(path)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "added: %s\n", ent)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.with(func(cat *catalogue.Session) error {
				return cat.List(cmd.OutOrStdout())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "archive <id>",
		Short: "store a compressed copy of a movie in the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.with(func(cat *catalogue.Session) error {
				ent, err := cat.Archive(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "archived: %s\n", ent)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "restore <id> <file>",
		Short: "write an archived movie to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.with(func(cat *catalogue.Session) error {
				if err := cat.Restore(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "restored: %s\n", args[1])
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "remove a movie from the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.with(func(cat *catalogue.Session) error {
				ent, err := cat.Find(args[0])
				if err != nil {
					return err
				}
				if err := cat.Delete(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted: %s\n", ent.ShortID())
				return nil
			})
		},
	})

	return cmd
}
