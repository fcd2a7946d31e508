package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/munge/manifest"
	"github.com/arloliu/munge/node"
)

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "Assemble a container from a JSON or YAML manifest",
		ArgsUsage: "<manifest>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "output container file",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one manifest path")
			}
			manifestPath := cmd.Args().First()

			m, err := manifest.Load(manifestPath)
			if err != nil {
				return err
			}

			w, err := node.NewWriter()
			if err != nil {
				return err
			}
			defer w.Close()

			if err := manifest.Build(w, m, filepath.Dir(manifestPath)); err != nil {
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

			fmt.Fprintf(cmd.Writer, "built %s (%d bytes)\n", cmd.String("output"), n)

			return nil
		},
	}
}
