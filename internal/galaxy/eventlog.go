package galaxy

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// WriteEventLog writes the log as tab-separated lines inside an lz4 frame:
// tick, star, owner, category, key, numeric value, detail.
func WriteEventLog(w io.Writer, entries []SimLogEntry) error {
	zw := lz4.NewWriter(w)
	bw := bufio.NewWriter(zw)
	for _, e := range entries {
		value := strings.NewReplacer("\t", " ", "\n", " ").Replace(e.Value)
		if _, err := fmt.Fprintf(bw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Tick, e.Star, e.Owner, e.Category, e.Key,
			strconv.FormatFloat(e.NumVal, 'g', -1, 64), value); err != nil {
			return fmt.Errorf("write event: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush events: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close lz4 frame: %w", err)
	}
	return nil
}

// ReadEventLog decodes a stream written by WriteEventLog.
func ReadEventLog(r io.Reader) ([]SimLogEntry, error) {
	sc := bufio.NewScanner(lz4.NewReader(r))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var out []SimLogEntry
	line := 0
	for sc.Scan() {
		line++
		f := strings.SplitN(sc.Text(), "\t", 7)
		if len(f) != 7 {
			return out, fmt.Errorf("event line %d: want 7 fields, got %d", line, len(f))
		}
		tick, err := strconv.Atoi(f[0])
		if err != nil {
			return out, fmt.Errorf("event line %d tick: %w", line, err)
		}
		num, err := strconv.ParseFloat(f[5], 64)
		if err != nil {
			return out, fmt.Errorf("event line %d value: %w", line, err)
		}
		out = append(out, SimLogEntry{
			Tick:     tick,
			Star:     f[1],
			Owner:    f[2],
			Category: f[3],
			Key:      f[4],
			NumVal:   num,
			Value:    f[6],
		})
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("read events: %w", err)
	}
	return out, nil
}
