package handlers

import (
	"io"
	"net/http"

	"github.com/amirhodzic/snapvision-backend/internal/errs"
)

const maxUploadBytes = 32 << 20

// readMultipartFile buffers the uploaded file completely and removes the
// multipart temp files before returning, on every path.
func readMultipartFile(r *http.Request, field string) (data []byte, filename string, err error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "", errs.NewValidationError("invalid multipart payload")
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", errs.NewValidationError("file is required")
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, "", errs.NewValidationError("could not read uploaded file")
	}
	return data, header.Filename, nil
}
