package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/handler/http/middleware"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/handler/http/response"
)

type ScanHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
}

type scanHandlerImpl struct {
	scanService scan.ScanService
}

func NewScanHandler(scanService scan.ScanService) ScanHandler {
	return &scanHandlerImpl{scanService: scanService}
}

// Record implements ScanHandler. Accepts either a plain JSON body or a
// multipart form with a 'data' JSON field and an optional 'photo' file used
// for face verification.
func (h *scanHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req scan.RecordScanRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		// Parse multipart form (max 10MB)
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		dataJSON := r.FormValue("data")
		if dataJSON == "" {
			response.BadRequest(w, "Field 'data' is required", nil)
			return
		}
		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			slog.Error("Failed to unmarshal JSON data", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}

		file, _, err := r.FormFile("photo")
		if err == nil {
			defer file.Close()
			image, readErr := io.ReadAll(file)
			if readErr != nil {
				response.BadRequest(w, "Invalid file upload", nil)
				return
			}
			req.Image = image
		} else if err != http.ErrMissingFile {
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	req.OrganizationID = middleware.OrganizationID(r)
	if req.EmployeeID == "" {
		req.EmployeeID = middleware.EmployeeID(r)
	}

	result, err := h.scanService.RecordScan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Scan recorded", result)
}
