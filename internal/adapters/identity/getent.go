// Package identity resolves account names to the real names shown on the
// score board.
package identity

import (
	"context"
	"os/exec"
	"strings"

	"github.com/okian/benchboard/pkg/logger"
)

// gecosField is the 0-based index of the GECOS field in a passwd entry.
const gecosField = 4

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Getent resolves names from the host account directory via `getent passwd`.
type Getent struct {
	run    Runner
	logger logger.Logger
}

// GetentOption applies a configuration option to Getent.
type GetentOption func(*Getent)

// WithRunner replaces command execution, mainly for tests.
func WithRunner(run Runner) GetentOption {
	return func(g *Getent) {
		if run != nil {
			g.run = run
		}
	}
}

// WithLogger logs lookup failures at debug level.
func WithLogger(l logger.Logger) GetentOption {
	return func(g *Getent) {
		g.logger = l
	}
}

// NewGetent creates a Getent resolver.
func NewGetent(opts ...GetentOption) *Getent {
	g := &Getent{run: execOutput}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RealName returns the first comma-separated part of the account's GECOS
// field. A missing tool, unknown account or empty field yields ok=false.
// Names that getent would read as options are never looked up.
func (g *Getent) RealName(ctx context.Context, account string) (string, bool) {
	if account == "" || strings.HasPrefix(account, "-") || strings.ContainsAny(account, ":\n") {
		return "", false
	}
	out, err := g.run(ctx, "getent", "passwd", account)
	if err != nil {
		if g.logger != nil {
			g.logger.Debug(ctx, "getent lookup failed", logger.String("account", account), logger.Error(err))
		}
		return "", false
	}
	return parsePasswd(string(out))
}

// parsePasswd extracts the full name from a passwd line
// name:pw:uid:gid:gecos:home:shell.
func parsePasswd(line string) (string, bool) {
	line, _, _ = strings.Cut(line, "\n")
	fields := strings.Split(line, ":")
	if len(fields) <= gecosField {
		return "", false
	}
	name, _, _ := strings.Cut(fields[gecosField], ",")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	return name, true
}

func execOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
