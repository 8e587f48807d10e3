package inbound

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
	"github.com/shandysiswandi/sheetboard/internal/dashboard/usecase"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgerror"
)

const filesField = "files"

// extractMultipartFiles streams every "files" part into an UploadedFile.
// Browsers do not send modification times, so the upload time stands in.
func extractMultipartFiles(r *http.Request, maxBytes int64) ([]entity.UploadedFile, error) {
	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.EqualFold(mediaType, "multipart/form-data") {
		return nil, pkgerror.NewInvalidFormat()
	}

	reader, err := r.MultipartReader()
	if err != nil {
		return nil, pkgerror.NewInvalidFormat()
	}

	now := time.Now().Unix()
	remaining := maxBytes
	var files []entity.UploadedFile

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				return nil, pkgerror.NewTooLarge("upload is too large")
			}
			return nil, pkgerror.NewInvalidFormat()
		}

		if part.FormName() != filesField || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		data, err := io.ReadAll(io.LimitReader(part, remaining+1))
		_ = part.Close()
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				return nil, pkgerror.NewTooLarge("upload is too large")
			}
			return nil, pkgerror.NewInvalidFormat()
		}

		remaining -= int64(len(data))
		if remaining < 0 {
			return nil, pkgerror.NewTooLarge("upload is too large")
		}

		files = append(files, entity.UploadedFile{
			Contents:     usecase.EncodeContents(part.Header.Get("Content-Type"), data),
			Filename:     part.FileName(),
			LastModified: now,
		})
	}
}
