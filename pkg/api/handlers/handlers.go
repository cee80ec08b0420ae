package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cbodonnell/trajectory/pkg/game/types"
	"github.com/cbodonnell/trajectory/pkg/log"
	"github.com/cbodonnell/trajectory/pkg/metrics"
	"github.com/cbodonnell/trajectory/pkg/queue"
	"github.com/cbodonnell/trajectory/pkg/state"
	"github.com/cbodonnell/trajectory/pkg/units"
)

// maxBodyBytes bounds command request bodies
const maxBodyBytes = 1 << 12

// DistanceResponse is the readout of the most recent landing.
type DistanceResponse struct {
	Distance string  `json:"distance"`
	Meters   float64 `json:"meters"`
}

// HealthResponse reports liveness and command backlog.
type HealthResponse struct {
	Status    string `json:"status"`
	QueueSize int    `json:"queueSize"`
	Tick      uint64 `json:"tick"`
}

// CommandResponse acknowledges a queued command.
type CommandResponse struct {
	Queued string `json:"queued"`
}

func HandleFire(commandQueue queue.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		command := &types.FireCommand{}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(command); err != nil {
			log.Debug("failed to decode fire command: %v", err)
			http.Error(w, "Invalid fire command", http.StatusBadRequest)
			return
		}
		enqueueCommand(w, commandQueue, "fire", command)
	}
}

func HandleReset(commandQueue queue.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enqueueCommand(w, commandQueue, "reset", &types.ResetCommand{})
	}
}

func HandleResize(commandQueue queue.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		command := &types.ResizeCommand{}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(command); err != nil {
			log.Debug("failed to decode resize command: %v", err)
			http.Error(w, "Invalid resize command", http.StatusBadRequest)
			return
		}
		if command.Width <= 0 || command.Height <= 0 {
			http.Error(w, "Width and height must be positive", http.StatusBadRequest)
			return
		}
		enqueueCommand(w, commandQueue, "resize", command)
	}
}

func enqueueCommand(w http.ResponseWriter, commandQueue queue.Queue, name string, command interface{}) {
	if err := commandQueue.Enqueue(command); err != nil {
		if errors.Is(err, queue.ErrQueueFull) {
			metrics.CommandsDropped.WithLabelValues("queue_full").Inc()
			http.Error(w, "Command queue is full", http.StatusServiceUnavailable)
			return
		}
		log.Error("failed to enqueue %s command: %v", name, err)
		http.Error(w, "Failed to enqueue command", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusAccepted, &CommandResponse{Queued: name})
}

func HandleSnapshot(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := stateManager.Get(r.Context())
		if err != nil {
			log.Error("failed to get snapshot: %v", err)
			http.Error(w, "Failed to get snapshot", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	}
}

func HandleAttempts(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := stateManager.Get(r.Context())
		if err != nil {
			log.Error("failed to get snapshot: %v", err)
			http.Error(w, "Failed to get attempts", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, snapshot.Attempts)
	}
}

func HandleTrails(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := stateManager.Get(r.Context())
		if err != nil {
			log.Error("failed to get snapshot: %v", err)
			http.Error(w, "Failed to get trails", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, snapshot.Trails)
	}
}

func HandleDistance(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := stateManager.Get(r.Context())
		if err != nil {
			log.Error("failed to get snapshot: %v", err)
			http.Error(w, "Failed to get distance", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, &DistanceResponse{
			Distance: units.Format(snapshot.Distance),
			Meters:   snapshot.Distance,
		})
	}
}

func HandleHealth(commandQueue queue.Queue, stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := stateManager.Get(r.Context())
		if err != nil {
			log.Error("failed to get snapshot: %v", err)
			http.Error(w, "Failed to get snapshot", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, &HealthResponse{
			Status:    "ok",
			QueueSize: commandQueue.Size(),
			Tick:      snapshot.Tick,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}
