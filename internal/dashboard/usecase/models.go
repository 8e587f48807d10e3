package usecase

import "github.com/shandysiswandi/sheetboard/internal/dashboard/entity"

type UploadResult struct {
	Report   entity.UploadReport
	Controls entity.Controls
	Rows     int
}

type TableResult struct {
	Table       entity.Table
	SubmitCount int
}

type ControlsResult struct {
	Controls  entity.Controls
	Selection entity.FilterSelection
}

type TabResult struct {
	TabID string
	State entity.TabState
}

type FilterInput struct {
	Start string
	End   string
	Users []string
}
