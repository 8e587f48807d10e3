package inbound

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
	"github.com/shandysiswandi/sheetboard/internal/dashboard/usecase"
)

type UploadRequest struct {
	Files []UploadFile `json:"files" validate:"dive"`
}

type UploadFile struct {
	Contents     string `json:"contents" validate:"required"`
	Filename     string `json:"filename" validate:"required"`
	LastModified int64  `json:"last_modified" validate:"gte=0"`
}

type FilterRequest struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Users     []string `json:"users" validate:"dive,required"`
}

type FileResult struct {
	Filename string        `json:"filename"`
	Format   entity.Format `json:"format"`
	Rows     int           `json:"rows"`
}

type FileError struct {
	Filename string           `json:"filename"`
	Kind     entity.ErrorKind `json:"kind"`
	Error    string           `json:"error"`
}

type FileInfo struct {
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Selection struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Users     []string `json:"users"`
}

type ControlsResponse struct {
	MinDate   string     `json:"min_date"`
	MaxDate   string     `json:"max_date"`
	Users     []string   `json:"users"`
	Files     []FileInfo `json:"files"`
	Selection *Selection `json:"selection,omitempty"`
}

type UploadResponse struct {
	BatchID   string           `json:"batch_id"`
	Rows      int              `json:"rows"`
	Succeeded []FileResult     `json:"succeeded"`
	Failed    []FileError      `json:"failed"`
	Controls  ControlsResponse `json:"controls"`
}

func (UploadResponse) StatusCode() int {
	return http.StatusCreated
}

func (UploadResponse) Message() string {
	return "upload processed"
}

type Column struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type TableResponse struct {
	Columns     []Column            `json:"columns"`
	Rows        []map[string]string `json:"rows"`
	total       int
	submitCount int
}

func (r TableResponse) Meta() map[string]any {
	return map[string]any{
		"total":        r.total,
		"returned":     len(r.Rows),
		"submit_count": r.submitCount,
	}
}

type NumericSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

type UserSummary struct {
	User      string           `json:"user"`
	Rows      int              `json:"rows"`
	FirstDate string           `json:"first_date"`
	LastDate  string           `json:"last_date"`
	Numeric   []NumericSummary `json:"numeric"`
}

type AnalysisResponse struct {
	NumericColumns []string      `json:"numeric_columns"`
	Users          []UserSummary `json:"users"`
}

type DatasetResponse struct {
	Transport string `json:"transport"`
}

func toUploadResponse(res usecase.UploadResult) UploadResponse {
	out := UploadResponse{
		BatchID:   strconv.FormatInt(res.Report.BatchID, 10),
		Rows:      res.Rows,
		Succeeded: make([]FileResult, 0, len(res.Report.Succeeded)),
		Failed:    make([]FileError, 0, len(res.Report.Failed)),
		Controls:  toControlsResponse(res.Controls, nil),
	}

	for _, s := range res.Report.Succeeded {
		out.Succeeded = append(out.Succeeded, FileResult{Filename: s.Filename, Format: s.Format, Rows: s.Rows})
	}
	for _, f := range res.Report.Failed {
		out.Failed = append(out.Failed, FileError{Filename: f.Filename, Kind: f.Kind, Error: f.Err.Error()})
	}

	return out
}

func toControlsResponse(c entity.Controls, sel *entity.FilterSelection) ControlsResponse {
	out := ControlsResponse{
		MinDate: formatDate(c.MinDate),
		MaxDate: formatDate(c.MaxDate),
		Users:   c.Users,
		Files:   make([]FileInfo, 0, len(c.Files)),
	}
	if out.Users == nil {
		out.Users = []string{}
	}

	for _, f := range c.Files {
		out.Files = append(out.Files, FileInfo{Name: f.Name, UploadedAt: f.UploadedAt})
	}

	if sel != nil {
		users := sel.Users
		if users == nil {
			users = []string{}
		}
		out.Selection = &Selection{StartDate: formatDate(sel.Start), EndDate: formatDate(sel.End), Users: users}
	}

	return out
}

func toTableResponse(res usecase.TableResult) TableResponse {
	out := TableResponse{
		Columns:     make([]Column, 0, len(res.Table.Columns)),
		Rows:        res.Table.Rows,
		total:       res.Table.Total,
		submitCount: res.SubmitCount,
	}
	if out.Rows == nil {
		out.Rows = []map[string]string{}
	}

	for _, c := range res.Table.Columns {
		out.Columns = append(out.Columns, Column{Name: c.Name, ID: c.ID})
	}

	return out
}

func toAnalysisResponse(a entity.Analysis) AnalysisResponse {
	out := AnalysisResponse{
		NumericColumns: a.NumericColumns,
		Users:          make([]UserSummary, 0, len(a.Users)),
	}
	if out.NumericColumns == nil {
		out.NumericColumns = []string{}
	}

	for _, u := range a.Users {
		us := UserSummary{
			User:      u.User,
			Rows:      u.Rows,
			FirstDate: formatDate(u.FirstDate),
			LastDate:  formatDate(u.LastDate),
			Numeric:   make([]NumericSummary, 0, len(u.Numeric)),
		}
		for _, n := range u.Numeric {
			us.Numeric = append(us.Numeric, NumericSummary(n))
		}
		out.Users = append(out.Users, us)
	}

	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return usecase.FormatCell(t)
}
