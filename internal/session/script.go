package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/torus-snake/internal/core"
	"github.com/vovakirdan/torus-snake/internal/games/snake"
)

// Script holds inputs keyed by the tick they are applied on (1-based).
type Script map[uint64][]core.Action

// Add appends a direction to the inputs of tick.
func (s Script) Add(tick uint64, d snake.Direction) {
	s[tick] = append(s[tick], d.Action())
}

// ParseScript parses a comma separated list of "tick:direction" pairs,
// e.g. "5:down,9:left". Whitespace around entries is ignored.
func ParseScript(text string) (Script, error) {
	script := make(Script)
	for _, entry := range strings.Split(text, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		tickStr, dirStr, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("session: bad script entry %q: expected tick:direction", entry)
		}
		tick, err := strconv.ParseUint(strings.TrimSpace(tickStr), 10, 64)
		if err != nil || tick == 0 {
			return nil, fmt.Errorf("session: bad tick in %q: must be a positive integer", entry)
		}
		dir, ok := snake.ParseDirection(dirStr)
		if !ok {
			return nil, fmt.Errorf("session: bad direction in %q", entry)
		}
		script.Add(tick, dir)
	}
	return script, nil
}
