package recorder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/nudge/internal/constants"
	apperrors "github.com/julianstephens/nudge/internal/errors"
	"github.com/julianstephens/nudge/internal/logger"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/storage"
)

// Recorder appends reminder responses to the persisted response log.
type Recorder struct {
	kv storage.KV
}

func New(kv storage.KV) *Recorder {
	return &Recorder{kv: kv}
}

// Load reads the response log from kv. A missing value is an empty log. A
// malformed value is also returned as an empty log, with ErrMalformedState.
func Load(kv storage.KV) (models.ResponseLog, error) {
	data, ok, err := kv.Get(constants.ResponseLogKey)
	if err != nil {
		return models.ResponseLog{}, fmt.Errorf("failed to read %s: %w", constants.ResponseLogKey, err)
	}
	if !ok || len(data) == 0 {
		return models.ResponseLog{}, nil
	}

	var log models.ResponseLog
	if err := json.Unmarshal(data, &log); err != nil {
		return models.ResponseLog{}, fmt.Errorf("%w: %s: %v", apperrors.ErrMalformedState, constants.ResponseLogKey, err)
	}
	return log, nil
}

// Load returns the persisted log, treating unreadable data as empty.
func (r *Recorder) Load() models.ResponseLog {
	log, err := Load(r.kv)
	if err != nil {
		logger.Warn("Treating response log as empty", "error", err)
	}
	return log
}

// Record appends {kind, now} to the log with a read-modify-write. Failures
// are logged and returned; there is no retry.
func (r *Recorder) Record(kind models.ResponseKind, now time.Time) error {
	log := r.Load()
	if err := log.Append(kind, now); err != nil {
		return err
	}

	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("failed to encode response log: %w", err)
	}
	if err := r.kv.Set(constants.ResponseLogKey, data); err != nil {
		logger.Error("Failed to persist response", "response", kind, "error", err)
		return fmt.Errorf("failed to persist response: %w", err)
	}

	logger.Debug("Response recorded", "response", kind, "at", now.Format(time.RFC3339), "total", log.Len())
	return nil
}
