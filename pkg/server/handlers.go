package server

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/vango-dev/vxml/internal/errors"
	"github.com/vango-dev/vxml/pkg/document"
)

const (
	contentTypeXML  = "application/xml; charset=utf-8"
	contentTypeJSON = "application/json"

	// requestSource names posted documents in error locations. It is not a
	// path, so no source context is read from disk.
	requestSource = "<request>"
)

// handleRender decodes the posted document and responds with its markup.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	tree, err := document.DecodeBytes(requestSource, raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out, err := s.render(r.Context(), tree)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeXML)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, out)
}

// writeError responds 400 with the JSON form of a coded error, and 500 for
// anything else.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var e *errors.Error
	if !errors.As(err, &e) {
		s.logger.ErrorContext(r.Context(), "render error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusBadRequest)
	io.WriteString(w, e.FormatJSON())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok")
}
