package game

import "github.com/cbodonnell/trajectory/pkg/game/types"

// AttemptLog is the ordered, append-only history of completed attempts.
type AttemptLog struct {
	records  []types.AttemptRecord
	sequence int
}

func NewAttemptLog() *AttemptLog {
	return &AttemptLog{}
}

// Append records an attempt with the next sequence number and returns it.
func (l *AttemptLog) Append(angle float64, power float64, dragEnabled bool, distance float64) types.AttemptRecord {
	l.sequence++
	record := types.AttemptRecord{
		Sequence:    l.sequence,
		Angle:       angle,
		Power:       power,
		DragEnabled: dragEnabled,
		Distance:    distance,
	}
	l.records = append(l.records, record)
	return record
}

// Records returns a copy of the history in append order.
func (l *AttemptLog) Records() []types.AttemptRecord {
	records := make([]types.AttemptRecord, len(l.records))
	copy(records, l.records)
	return records
}

func (l *AttemptLog) Len() int {
	return len(l.records)
}

// Reset clears the history and restarts numbering at 1.
func (l *AttemptLog) Reset() {
	l.records = nil
	l.sequence = 0
}
