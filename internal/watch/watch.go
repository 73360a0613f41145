// Package watch streams completed-cycle events to a writer.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/dyluth/warren/pkg/ledger"
)

// OutputFormat selects how events are written.
type OutputFormat string

const (
	OutputFormatDefault OutputFormat = "default"
	OutputFormatJSONL   OutputFormat = "jsonl"
)

// Source delivers cycle events.
type Source interface {
	Events() <-chan *ledger.CycleEvent
	Errors() <-chan error
}

// Stream writes events from src until ctx is done, the source closes, or
// limit events have been written. A limit of zero streams without end.
// Returns the number of events written.
func Stream(ctx context.Context, src Source, w io.Writer, format OutputFormat, limit int) (int, error) {
	written := 0
	events := src.Events()
	errs := src.Errors()

	for {
		select {
		case <-ctx.Done():
			return written, nil

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Printf("[Watch] %v", err)

		case ev, ok := <-events:
			if !ok {
				return written, nil
			}
			if err := writeEvent(w, ev, format); err != nil {
				return written, err
			}
			written++
			if limit > 0 && written >= limit {
				return written, nil
			}
		}
	}
}

func writeEvent(w io.Writer, ev *ledger.CycleEvent, format OutputFormat) error {
	if format == OutputFormatJSONL {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("failed to marshal cycle event: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}

	line := fmt.Sprintf("tick %-8d missions %-4d failures %-4d %4dms", ev.Tick, ev.Missions, ev.Failures, ev.DurationMs)
	if ev.Invalidated {
		line += "  (cache invalidated)"
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
