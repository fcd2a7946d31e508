package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/munge/vault"
)

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Extract a resource addressed by a /-separated pack path",
		ArgsUsage: "<container> <path>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "output file for the exported chunk",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "payload-only",
				Usage: "write only the payload bytes, without the chunk header",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("expected <container> and <path> arguments")
			}

			in, err := os.Open(cmd.Args().Get(0))
			if err != nil {
				return fmt.Errorf("open container: %w", err)
			}
			defer in.Close()

			v, err := vault.Open(in)
			if err != nil {
				return err
			}

			out, err := os.Create(cmd.String("output"))
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer out.Close()

			path := cmd.Args().Get(1)
			if cmd.Bool("payload-only") {
				payload, err := v.ReadRaw(path)
				if err != nil {
					return err
				}
				if _, err := out.Write(payload); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			} else if err := v.Export(out, path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.Writer, "exported %s to %s\n", path, cmd.String("output"))

			return nil
		},
	}
}
