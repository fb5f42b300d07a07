package loadgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/benchboard/internal/domain/score"
)

var languages = []string{"go", "rust", "c", "zig", "python"} //nolint:gochecknoglobals // read-only

// maxTicks bounds the random part of a generated time.
const maxTicks = 1_000_000

// generate builds cfg.Scores scores for players tagged with a fresh run id,
// so verification can ignore rows already on the server. Times are
// distinct, which keeps the expected ranking independent of submit order.
func generate(cfg *Config) (string, []score.Score) {
	runID := uuid.NewString()[:8]
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	out := make([]score.Score, cfg.Scores)
	for i := range out {
		player := fmt.Sprintf("lg-%s-p%d", runID, rng.IntN(cfg.Players))
		command := fmt.Sprintf("./bench --case %d", rng.IntN(cfg.Commands))
		ticks := rng.IntN(maxTicks) + 1
		out[i] = score.New(
			player,
			command,
			float64(ticks*cfg.Scores+i),
			uuid.NewString(),
			languages[rng.IntN(len(languages))],
		)
	}
	return "lg-" + runID + "-", out
}
