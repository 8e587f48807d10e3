package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
	"github.com/shandysiswandi/sheetboard/internal/dashboard/usecase"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgerror"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgsession"
)

type HTTPEndpoint struct {
	uc       uc
	title    string
	maxBytes int64
	validate *structValidator
}

func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	var req UploadRequest
	if err := h.decodeJSON(r, &req); err != nil {
		return nil, err
	}

	files := make([]entity.UploadedFile, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, entity.UploadedFile{
			Contents:     f.Contents,
			Filename:     f.Filename,
			LastModified: f.LastModified,
		})
	}

	result, err := h.uc.Upload(ctx, pkgsession.ID(ctx), files)
	if err != nil {
		return nil, err
	}

	return toUploadResponse(result), nil
}

func (h *HTTPEndpoint) Table(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Table(ctx, pkgsession.ID(ctx))
	if err != nil {
		return nil, err
	}

	return toTableResponse(result), nil
}

func (h *HTTPEndpoint) ChangeFilter(ctx context.Context, r *http.Request) (any, error) {
	var req FilterRequest
	if err := h.decodeJSON(r, &req); err != nil {
		return nil, err
	}

	result, err := h.uc.ChangeFilter(ctx, pkgsession.ID(ctx), usecase.FilterInput{
		Start: req.StartDate,
		End:   req.EndDate,
		Users: req.Users,
	})
	if err != nil {
		return nil, err
	}

	return toTableResponse(result), nil
}

func (h *HTTPEndpoint) Submit(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Submit(ctx, pkgsession.ID(ctx))
	if err != nil {
		return nil, err
	}

	return toTableResponse(result), nil
}

func (h *HTTPEndpoint) Controls(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Controls(ctx, pkgsession.ID(ctx))
	if err != nil {
		return nil, err
	}

	return toControlsResponse(result.Controls, &result.Selection), nil
}

func (h *HTTPEndpoint) Analysis(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Analysis(ctx, pkgsession.ID(ctx))
	if err != nil {
		return nil, err
	}

	return toAnalysisResponse(result), nil
}

func (h *HTTPEndpoint) Dataset(ctx context.Context, r *http.Request) (any, error) {
	transport, err := h.uc.Dataset(ctx, pkgsession.ID(ctx))
	if err != nil {
		return nil, err
	}

	return DatasetResponse{Transport: transport}, nil
}

func (h *HTTPEndpoint) Clear(ctx context.Context, r *http.Request) (any, error) {
	if err := h.uc.Clear(ctx, pkgsession.ID(ctx)); err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *HTTPEndpoint) decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return pkgerror.NewInvalidFormat()
	}

	body := http.MaxBytesReader(nil, r.Body, h.maxBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return pkgerror.NewTooLarge("request body is too large")
		}
		return pkgerror.NewInvalidFormat()
	}

	return h.validate.Struct(v)
}
