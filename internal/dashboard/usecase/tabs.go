package usecase

import "github.com/shandysiswandi/sheetboard/internal/dashboard/entity"

// UnknownTabText is shown for a tab id nothing renders.
const UnknownTabText = "This shouldn't be displayed for now..."

// SwitchTab maps a tab id to the view to show. An empty id is the initial Overview.
func SwitchTab(tabID string) entity.TabState {
	switch entity.TabID(tabID) {
	case entity.TabOverview, "":
		return entity.TabStateOverview
	case entity.TabAnalysis:
		return entity.TabStateAnalysis
	default:
		return entity.TabStateUnknown
	}
}
