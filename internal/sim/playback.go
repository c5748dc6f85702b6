package sim

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"ghostlidar-sim/internal/telemetry"
)

// ReplayHistory feeds recorded ticks from r to writer. A speed >0 scales the
// recorded gaps between timestamps; speed <= 0 replays without delay.
func ReplayHistory(ctx context.Context, r io.Reader, writer StateWriter, speed float64) (int, error) {
	dec := json.NewDecoder(r)
	var prev time.Time
	n := 0
	for {
		var st telemetry.SimulationState
		if err := dec.Decode(&st); err != nil {
			if err == io.EOF {
				return n, nil
			}
			return n, err
		}
		if !prev.IsZero() && speed > 0 {
			diff := st.Timestamp.Sub(prev)
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if !sleepUnlessDone(diff, ctx.Done()) {
				return n, ctx.Err()
			}
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := writer.WriteState(st); err != nil {
			return n, err
		}
		n++
		prev = st.Timestamp
	}
}

// ReplayHistoryFile opens a history file and replays it.
func ReplayHistoryFile(ctx context.Context, path string, writer StateWriter, speed float64) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return ReplayHistory(ctx, f, writer, speed)
}
