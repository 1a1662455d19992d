package leaderboard

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taubyte/example-games-tower-blocks/internal/tower"
)

// Submission limits enforced before a round is sent.
const (
	MaxNameLength  = 20
	MinDurationMs  = 1000
	MaxDurationMs  = 3600000
	MinFinalBlocks = 1
	MaxFinalBlocks = 1000
)

// ErrInvalidSubmission is wrapped by every validation failure.
var ErrInvalidSubmission = errors.New("invalid submission")

// Validate checks a finished round against the submission limits.
func Validate(data tower.GameStateData) error {
	name := data.PlayerName
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: player name is required", ErrInvalidSubmission)
	case utf8.RuneCountInString(name) > MaxNameLength:
		return fmt.Errorf("%w: player name longer than %d characters", ErrInvalidSubmission, MaxNameLength)
	case data.DurationMs < MinDurationMs || data.DurationMs > MaxDurationMs:
		return fmt.Errorf("%w: game duration %dms outside [%d, %d]", ErrInvalidSubmission, data.DurationMs, MinDurationMs, MaxDurationMs)
	case data.FinalBlockCount < MinFinalBlocks || data.FinalBlockCount > MaxFinalBlocks:
		return fmt.Errorf("%w: final block count %d outside [%d, %d]", ErrInvalidSubmission, data.FinalBlockCount, MinFinalBlocks, MaxFinalBlocks)
	case len(data.GameEvents) == 0:
		return fmt.Errorf("%w: no game events", ErrInvalidSubmission)
	}
	return nil
}

// PlacedBlocks counts the events that added a block to the tower.
func PlacedBlocks(events []tower.GameEvent) int {
	n := 0
	for _, e := range events {
		if e.EventType != tower.EventMissed {
			n++
		}
	}
	return n
}
