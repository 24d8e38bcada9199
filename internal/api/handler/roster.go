package handler

import (
	"net/http"

	"github.com/openfest/gatekeeper/internal/api/response"
	"github.com/openfest/gatekeeper/internal/services/roster"
)

// maxRosterSize caps uploaded roster files at 10 MiB
const maxRosterSize = 10 << 20

// RosterHandler handles roster import endpoints
type RosterHandler struct {
	importer *roster.Importer
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(importer *roster.Importer) *RosterHandler {
	return &RosterHandler{
		importer: importer,
	}
}

// Import handles POST /api/v1/roster/import (multipart "file" field)
func (h *RosterHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRosterSize); err != nil {
		WriteError(w, NewInvalidRequestError("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, NewInvalidRequestError("file field is required"))
		return
	}
	defer func() { _ = file.Close() }()

	report, err := h.importer.Import(r.Context(), header.Filename, file)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, report)
}
