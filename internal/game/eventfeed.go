package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ljorgens/pax-galaxia-remake/internal/galaxy"
)

const (
	feedMaxEntries = 60
	feedLineHeight = 14
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Label   string // star label e.g. "S07", or "--"
	Owner   string
	Message string
}

// EventFeed is a ring buffer of the latest game events rendered on-screen.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int

	source *galaxy.SimLog // log being followed
	cursor int            // entries of source already consumed
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends an entry, overwriting the oldest when full.
func (f *EventFeed) Add(tick int, label, owner, msg string) {
	f.entries[f.head] = FeedEntry{Tick: tick, Label: label, Owner: owner, Message: msg}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	out := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		out[i] = f.entries[idx]
	}
	return out
}

// Follow pulls new entries from a SimLog. A different log (a new game)
// restarts the cursor.
func (f *EventFeed) Follow(log *galaxy.SimLog) {
	if log != f.source {
		f.source = log
		f.cursor = 0
	}
	if log == nil {
		return
	}
	for _, e := range log.Since(f.cursor) {
		if msg, ok := feedMessage(e); ok {
			f.Add(e.Tick, e.Star, e.Owner, msg)
		}
	}
	f.cursor = log.Len()
}

// feedMessage picks the events worth showing a player.
func feedMessage(e galaxy.SimLogEntry) (string, bool) {
	switch e.Category + "/" + e.Key {
	case "combat/capture":
		return "captured (" + e.Value + ")", true
	case "combat/repelled":
		return "siege repelled", true
	case "combat/retreat":
		return "retreat " + e.Value, true
	case "mirror/lock":
		return "mirror lane " + e.Value, true
	case "win/victory":
		return e.Value, true
	case "scene/change":
		return e.Value, true
	}
	return "", false
}

// Draw renders the feed in the side panel, newest at the bottom.
func (f *EventFeed) Draw(screen *ebiten.Image, x, y, w, h int, colors map[string]color.RGBA) {
	vector.FillRect(screen, float32(x), float32(y), float32(w), 16, color.RGBA{R: 18, G: 22, B: 34, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", x+8, y)
	vector.StrokeLine(screen, float32(x), float32(y+16), float32(x+w), float32(y+16), 1, color.RGBA{R: 50, G: 60, B: 90, A: 200}, false)

	entries := f.Recent()
	maxVisible := (h - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	recent := 3
	ly := y + 20
	for i, e := range entries {
		if i >= len(entries)-recent {
			vector.FillRect(screen, float32(x+2), float32(ly), float32(w-4), feedLineHeight, color.RGBA{R: 28, G: 34, B: 52, A: 160}, false)
		}
		dot, ok := colors[e.Owner]
		if !ok {
			dot = hexColor(galaxy.NeutralColor)
		}
		vector.FillRect(screen, float32(x+5), float32(ly+4), 3, 6, dot, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%3d %s %s", e.Tick, e.Label, e.Message), x+12, ly)
		ly += feedLineHeight
	}
}
