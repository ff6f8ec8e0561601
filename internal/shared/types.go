package shared

// TableQuery carries the table view parameters shared by the API and CLI:
// which window to read, how to sort, what to filter, and which page to show.
type TableQuery struct {
	Period  string
	Tag     string
	Search  string
	SortKey string
	SortDir string
	Page    int
}
