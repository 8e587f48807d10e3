package entity

// Format is the spreadsheet flavour detected from an uploaded filename.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLS     Format = "xls"
	FormatXLSX    Format = "xlsx"
	FormatUnknown Format = "unknown"
)

// ErrorKind classifies why one uploaded file could not be used.
type ErrorKind string

const (
	ErrorKindUnsupportedFormat ErrorKind = "UNSUPPORTED_FORMAT"
	ErrorKindDecode            ErrorKind = "DECODE_ERROR"
	ErrorKindParse             ErrorKind = "PARSE_ERROR"
)

// TabID names a top-level view of the dashboard.
type TabID string

const (
	TabOverview TabID = "tab-overview"
	TabAnalysis TabID = "tab-analysis"
)

// TabState is the state of the tab switcher.
type TabState string

const (
	TabStateOverview TabState = "OVERVIEW"
	TabStateAnalysis TabState = "ANALYSIS"
	TabStateUnknown  TabState = "UNKNOWN"
)
