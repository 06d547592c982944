package diag

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownChannel indicates a trace channel name that is not defined.
var ErrUnknownChannel = errors.New("diag: unknown trace channel")

// Channel is a single trace channel.
type Channel uint8

const (
	// Load traces loader progress.
	Load Channel = 1 << iota
	// Link traces every link read.
	Link
	// Plaquette traces per-site plaquette breakdowns.
	Plaquette
	// Wilson traces Wilson loop evaluation.
	Wilson
	// Stats traces aggregation internals.
	Stats
)

// All enables every channel.
const All Set = Set(Load | Link | Plaquette | Wilson | Stats)

var channelNames = map[string]Channel{
	"load":      Load,
	"link":      Link,
	"plaquette": Plaquette,
	"wilson":    Wilson,
	"stats":     Stats,
}

// String returns the channel name.
func (c Channel) String() string {
	for name, ch := range channelNames {
		if ch == c {
			return name
		}
	}

	return fmt.Sprintf("Channel(%d)", uint8(c))
}

// Set is a bitset of enabled channels. The zero value traces nothing.
type Set uint8

// Has reports whether c is enabled.
func (s Set) Has(c Channel) bool { return s&Set(c) != 0 }

// With returns s with c enabled.
func (s Set) With(c Channel) Set { return s | Set(c) }

// Names returns the enabled channel names, sorted.
func (s Set) Names() []string {
	out := make([]string, 0, len(channelNames))
	for name, ch := range channelNames {
		if s.Has(ch) {
			out = append(out, name)
		}
	}
	sort.Strings(out)

	return out
}

// String renders the set as a comma-separated list.
func (s Set) String() string { return strings.Join(s.Names(), ",") }

// ParseChannels resolves channel names (case-insensitive, "all" allowed)
// into a Set. Empty names are skipped.
func ParseChannels(names []string) (Set, error) {
	var s Set
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if name == "all" {
			s |= All
			continue
		}
		ch, ok := channelNames[name]
		if !ok {
			return 0, fmt.Errorf("%q: %w", raw, ErrUnknownChannel)
		}
		s = s.With(ch)
	}

	return s, nil
}

// ForVerbosity maps the CLI verbosity level to channels:
// 0 → none, 1 → load, 2 and above → all.
func ForVerbosity(level int) Set {
	switch {
	case level <= 0:
		return 0
	case level == 1:
		return Set(Load)
	default:
		return All
	}
}
