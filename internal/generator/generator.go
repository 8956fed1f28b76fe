package generator

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/config"
	"github.com/kshitij-v-mehta/gray-scott-campaign/pkg/counter"
	"github.com/kshitij-v-mehta/gray-scott-campaign/pkg/types"
)

// Tallies counts enumeration results for the end-of-campaign report.
type Tallies struct {
	Generated counter.Counter
	Skipped   counter.Counter
}

// round3 rounds a grid value to 3 decimal places. This precision is
// load-bearing: it fixes the run-directory naming scheme, so repeated
// invocations of the orchestrator resolve the same grid point to the same
// directory.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// formatValue renders a rounded grid value in its shortest decimal form,
// e.g. 0.1 rather than 0.100.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DirName is the canonical run-directory name for one (F, k) grid point.
func DirName(f, k float64) string {
	return fmt.Sprintf("F_%s-k_%s", formatValue(f), formatValue(k))
}

// Enumerate walks the (F, k) grid and emits one WorkItem per combination
// whose run directory does not yet exist under ensembleRoot. Existing
// directories are skipped, which is what makes rerunning the orchestrator
// resume a partially completed ensemble at whole-run granularity. Enumerate
// performs no writes, only existence checks.
//
// Two orchestrator processes enumerating the same ensemble root concurrently
// can both pass the existence check for the same point; the loser surfaces a
// directory conflict at execution time. Known limitation.
func Enumerate(log *zap.Logger, template types.RunConfig, sweep config.Sweep,
	ensembleRoot string, tallies *Tallies, emit func(types.WorkItem)) {

	for i := 0; i < sweep.F.Count; i++ {
		f := round3(sweep.F.Base + float64(i)*sweep.F.Step)
		for j := 0; j < sweep.K.Count; j++ {
			k := round3(sweep.K.Base + float64(j)*sweep.K.Step)

			dir := filepath.Join(ensembleRoot, DirName(f, k))
			if _, err := os.Stat(dir); err == nil {
				log.Info("skipping existing run directory", zap.String("dir", dir))
				tallies.Skipped.Inc()
				continue
			}

			cfg := template.Clone()
			cfg.F = f
			cfg.K = k
			emit(types.WorkItem{Dir: dir, Config: cfg})
			tallies.Generated.Inc()
		}
	}

	log.Info("grid enumeration complete",
		zap.Int64("generated", tallies.Generated.Load()),
		zap.Int64("skipped", tallies.Skipped.Load()))
}
