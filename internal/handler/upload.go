package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rudovey/workpay/internal/context"
	"github.com/rudovey/workpay/internal/response"
)

// maxProofUploadSize bounds a single proof attachment.
const maxProofUploadSize = 20 << 20 // 20 MB

// HandleProofUpload receives a proof attachment as multipart form data,
// pushes it to the file store and returns the hosted URL. The URL is
// what draft and claim submissions carry as the proof's file reference.
func (h *RouteHandler) HandleProofUpload(w http.ResponseWriter, r *http.Request) {
	worker := context.ContextGetAuthenticatedWorker(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxProofUploadSize)

	if err := r.ParseMultipartForm(maxProofUploadSize); err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	uploaded, header, err := r.FormFile("file")
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}
	defer uploaded.Close()

	fileName := fmt.Sprintf("proofs/%d-%d-%s", worker.ID, time.Now().UnixNano(), header.Filename)

	url, err := h.Uploader.UploadFile(uploaded, fileName)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := map[string]string{"file_ref": url}

	message := "File uploaded successfully"

	err = response.JSONCreatedResponse(w, data, message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
