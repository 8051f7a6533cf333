package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vitarsport/sales-analytics-api/internal/scheduler"
	"github.com/vitarsport/sales-analytics-api/pkg/apiErrors"
)

// TriggerDatasetReload re-reads the accounting exports on demand, outside the
// nightly schedule.
func TriggerDatasetReload(service *scheduler.DatasetReloadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("manual dataset reload requested")

		if err := service.TriggerManualReload(r.Context()); err != nil {
			if errors.Is(err, scheduler.ErrReloadInProgress) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "a dataset reload is already running", nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "dataset reload failed", nil)
			return
		}

		writeJSON(w, map[string]string{"status": "reloaded"})
	}
}

// GetDatasetStatus reports the reload job state.
func GetDatasetStatus(service *scheduler.DatasetReloadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, service.GetStatus())
	}
}
