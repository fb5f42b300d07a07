package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	app "github.com/okian/benchboard/internal/app"
	"github.com/okian/benchboard/internal/domain/score"
)

func (c *cli) submitCmd() *cobra.Command {
	var (
		s        score.Score
		artifact string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a benchmark run",
		Long: `Record one benchmark run. The artifact hash is taken from --hash or
computed from the file given by --artifact.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if artifact != "" {
				sum, err := hashFile(artifact)
				if err != nil {
					return err
				}
				s.Hash = sum
			}
			ctx := cmd.Context()
			return c.withService(ctx, func(svc *app.Service) error {
				if err := svc.Submit(ctx, s); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), s)
				return err
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&s.Name, "name", "", "player name")
	f.StringVar(&s.Command, "command", "", "benchmarked command")
	f.Float64Var(&s.TimeNS, "time-ns", 0, "elapsed time in nanoseconds")
	f.StringVar(&s.Language, "language", "", "source language")
	f.StringVar(&s.Hash, "hash", "", "content hash of the benchmarked artifact")
	f.StringVar(&artifact, "artifact", "", "artifact file to hash with SHA-256")
	for _, name := range []string{"name", "command", "time-ns", "language"} {
		_ = cmd.MarkFlagRequired(name)
	}
	cmd.MarkFlagsMutuallyExclusive("hash", "artifact")
	return cmd
}

// hashFile returns the hex SHA-256 of the file at path.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hash artifact: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash artifact %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
