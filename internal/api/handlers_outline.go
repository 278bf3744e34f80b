package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/outliner/internal/assemble"
	"github.com/dgallion1/outliner/internal/fragment"
	"github.com/dgallion1/outliner/internal/pipeline"
)

// handleOutline extracts an outline synchronously and returns it in the
// response. Small documents finish in milliseconds, so there is no need
// to round-trip a job ID.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	format := assemble.FormatJSON
	if v := r.URL.Query().Get("format"); v != "" {
		f, err := assemble.ParseFormat(v)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = f
	}

	src, err := fragment.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	frags, err := src.Extract(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Error("fragment extraction failed", "filename", filename, "error", err)
		jsonError(w, "failed to extract document content", http.StatusUnprocessableEntity)
		return
	}

	result := s.orchestrator.Extractor().Extract(frags)

	switch format {
	case assemble.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
	case assemble.FormatText:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	if err := assemble.Write(w, &result, format); err != nil {
		s.log.Error("write outline response", "error", err)
	}
}

// handleGetOutline returns a previously computed outline by document ID.
// The in-memory job store is checked first, then the result sink.
func (s *Server) handleGetOutline(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	if job := s.orchestrator.GetJobByDoc(docID); job != nil {
		if result := job.Result(); result != nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"doc_id":   docID,
				"filename": job.Filename,
				"outline":  result,
			})
			return
		}
		// Known job, still processing.
		snap := job.Snapshot()
		if snap.Status != pipeline.StatusFailed {
			jsonError(w, fmt.Sprintf("outline not ready (status %s)", snap.Status), http.StatusConflict)
			return
		}
	}

	if sink := s.orchestrator.Sink(); sink != nil {
		rec, err := sink.GetOutline(r.Context(), docID)
		if err != nil {
			jsonError(w, "result sink lookup failed: "+err.Error(), http.StatusBadGateway)
			return
		}
		if rec != nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"doc_id":   rec.DocID,
				"filename": rec.Filename,
				"outline":  rec.Outline,
			})
			return
		}
	}

	jsonError(w, "outline not found", http.StatusNotFound)
}

// readUpload pulls the uploaded file out of a multipart form, applying
// the size limit. Writes an error response and returns ok=false on
// failure.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	// Limit total request size, with slack for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !fragment.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return "", nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return "", nil, false
	}
	return filename, data, true
}
