package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/munge/internal/collision"
	"github.com/arloliu/munge/node"
	"github.com/arloliu/munge/vault"
)

func mergeCmd() *cli.Command {
	return &cli.Command{
		Name:      "merge",
		Usage:     "Combine the entries of several containers into one",
		ArgsUsage: "<container>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "output container file",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 2 {
				return fmt.Errorf("expected at least two containers to merge")
			}

			w, err := node.NewWriter()
			if err != nil {
				return err
			}
			defer w.Close()

			var rootTag node.Tag
			packs := collision.NewTracker()

			// Entries are copied verbatim in input order; only hashed pack
			// identities are checked for collisions.
			appendEntries := func(path string, w *node.Writer) error {
				in, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open container: %w", err)
				}
				defer in.Close()

				v, err := vault.Open(in)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				for _, entry := range v.Entries() {
					if hash, hashed := entry.Identity.Hash(); hashed {
						if err := packs.TrackHash(hash); err != nil {
							return fmt.Errorf("%s: %w", path, err)
						}
					}

					payload, err := v.Reader().Payload(entry.Header)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					if err := w.Raw(entry.Header.Tag, payload); err != nil {
						return err
					}
				}

				return nil
			}

			inputs := cmd.Args().Slice()

			// Peek the first container for the root tag before writing it.
			err = func() error {
				in, err := os.Open(inputs[0])
				if err != nil {
					return fmt.Errorf("open container: %w", err)
				}
				defer in.Close()

				v, err := vault.Open(in)
				if err != nil {
					return fmt.Errorf("%s: %w", inputs[0], err)
				}
				rootTag = v.Root().Tag

				return nil
			}()
			if err != nil {
				return err
			}

			err = w.Node(rootTag, func(w *node.Writer) error {
				for _, path := range inputs {
					if err := appendEntries(path, w); err != nil {
						return err
					}
				}

				return nil
			})
			if err != nil {
				return err
			}

			out, err := os.Create(cmd.String("output"))
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer out.Close()

			n, err := w.WriteTo(out)
			if err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			fmt.Fprintf(cmd.Writer, "merged %d containers into %s (%d bytes)\n",
				len(inputs), cmd.String("output"), n)

			return nil
		},
	}
}
