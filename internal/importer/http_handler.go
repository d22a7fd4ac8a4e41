package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

// DefaultMaxUploadBytes caps uploads when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

// Handler exposes the importer as an HTTP upload endpoint.
type Handler struct {
	service   *Service
	logger    *logrus.Logger
	maxUpload int64
}

// NewHTTPHandler wraps the service with a POST endpoint enforcing the
// upload size cap.
func NewHTTPHandler(service *Service, logger *logrus.Logger, maxUpload int64) http.Handler {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	return &Handler{service: service, logger: logger, maxUpload: maxUpload}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("file required: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read file: %v", err), http.StatusBadRequest)
		return
	}

	summary, err := h.service.Import(r.Context(), Request{
		FileName: header.Filename,
		Data:     bytes.NewReader(data),
	})
	if err != nil {
		if h.logger != nil {
			h.logger.WithField("file", header.Filename).Warnf("import rejected: %v", err)
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if h.logger != nil {
		h.logger.WithFields(logrus.Fields{
			"file":     header.Filename,
			"rows":     summary.Rows,
			"inserted": summary.Inserted,
			"updated":  summary.Updated,
			"skipped":  summary.Skipped,
		}).Info("import completed")
	}

	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
