package wiki

// PageRef identifies one page enumerated from a category listing.
type PageRef struct {
	ID    int64
	Title string
}

// categoryMembersResponse is the wire shape of a list=categorymembers query.
type categoryMembersResponse struct {
	Continue struct {
		CmContinue string `json:"cmcontinue"`
	} `json:"continue"`
	Query struct {
		CategoryMembers []struct {
			PageID int64  `json:"pageid"`
			Title  string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
}

// extractsResponse is the wire shape of a prop=extracts query with
// formatversion=2. A missing extract decodes to the empty string.
type extractsResponse struct {
	Query struct {
		Pages []struct {
			PageID  int64  `json:"pageid"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}
