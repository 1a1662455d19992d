package tower

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// EventType names a placement outcome in the game log.
type EventType string

// EventBlockPlaced is never logged by this game, which records every landing as
// chopped or perfect. The leaderboard still accepts it from other clients.
const (
	EventBlockPlaced      EventType = "block_placed"
	EventBlockChopped     EventType = "block_chopped"
	EventPerfectPlacement EventType = "perfect_placement"
	EventMissed           EventType = "missed"
)

// EventTypeFor maps a cut outcome to its logged event type.
func EventTypeFor(o Outcome) EventType {
	switch o {
	case OutcomePerfect:
		return EventPerfectPlacement
	case OutcomeChopped:
		return EventBlockChopped
	default:
		return EventMissed
	}
}

// Vec is the wire form of a vector.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// VecOf converts an mgl64 vector to its wire form.
func VecOf(v mgl64.Vec3) Vec {
	return Vec{X: v[0], Y: v[1], Z: v[2]}
}

// GameEvent is one entry of the per-round placement log.
type GameEvent struct {
	EventType      EventType `json:"event_type"`
	BlockIndex     int       `json:"block_index"`
	BlockPosition  Vec       `json:"block_position"`
	BlockScale     Vec       `json:"block_scale"`
	TargetPosition Vec       `json:"target_position"`
	TargetScale    Vec       `json:"target_scale"`
	Timestamp      int64     `json:"timestamp"` // Milliseconds since the round started
}

// GameStateData is the finalized record of a round, as submitted to the leaderboard.
type GameStateData struct {
	PlayerName      string      `json:"player_name"`
	GameID          uuid.UUID   `json:"game_id"`
	GameEvents      []GameEvent `json:"game_events"`
	DurationMs      int64       `json:"game_duration"`
	FinalBlockCount int         `json:"final_block_count"`
}

// UnmarshalJSON accepts a missing or empty game_id as uuid.Nil.
func (d *GameStateData) UnmarshalJSON(b []byte) error {
	type plain GameStateData
	var aux struct {
		plain
		GameID string `json:"game_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	*d = GameStateData(aux.plain)
	d.GameID = uuid.Nil
	if aux.GameID != "" {
		id, err := uuid.Parse(aux.GameID)
		if err != nil {
			return fmt.Errorf("tower: game_id: %w", err)
		}
		d.GameID = id
	}
	return nil
}

// Clone returns a deep copy safe to hand to another goroutine.
func (d GameStateData) Clone() GameStateData {
	out := d
	out.GameEvents = append([]GameEvent(nil), d.GameEvents...)
	return out
}

// Stats are the per-round counters reported when a round ends.
type Stats struct {
	BlocksPlaced       int
	PerfectCount       int
	HighestScore       int
	GamesPlayed        int
	PlayTimeMs         int64
	ConsecutivePerfect int
}
