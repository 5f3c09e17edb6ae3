package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/venueo/media-pipeline-go/internal/logger"
	"github.com/venueo/media-pipeline-go/internal/model"
	"github.com/venueo/media-pipeline-go/internal/port"
	"github.com/venueo/media-pipeline-go/internal/usecase/ingest"
)

// NotifyResponse mirrors the trigger contract: the webhook acknowledges the
// whole batch, per-image outcomes are observable via logs and metrics only.
type NotifyResponse struct {
	Queued int    `json:"queued"`
	Status string `json:"status"`
}

// StorageNotifyHandler receives a bucket-notification POST, decodes the
// URL-encoded object keys and enqueues the batch for the worker.
func StorageNotifyHandler(dispatcher port.TaskDispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.NotificationPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid notification payload", err)
			return
		}

		events := make([]model.UploadEvent, 0, len(payload.Records))
		for _, rec := range payload.Records {
			key, err := ingest.DecodeObjectKey(rec.S3.Object.Key)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "invalid object key in notification", err)
				return
			}
			if rec.S3.Bucket.Name == "" || key == "" {
				WriteError(w, http.StatusBadRequest, "notification record missing bucket or key", nil)
				return
			}
			events = append(events, model.UploadEvent{Bucket: rec.S3.Bucket.Name, Key: key})
		}

		if len(events) == 0 {
			logger.Warn(r.Context(), "notification carried no records, nothing to do")
			RespondJSON(w, http.StatusOK, NotifyResponse{Queued: 0, Status: "empty"})
			return
		}

		if err := dispatcher.EnqueueIngestUploads(r.Context(), events); err != nil {
			WriteError(w, http.StatusInternalServerError, "could not enqueue ingest batch", err)
			return
		}

		RespondJSON(w, http.StatusAccepted, NotifyResponse{Queued: len(events), Status: "queued"})
		log.Printf("✅  Queued ingest batch of %d event(s)", len(events))
	}
}
