package notion

import "time"

// Page is one raw database row. Property shapes vary between schema
// revisions, so every accessor below tolerates absent fields.
type Page struct {
	ID         string              `json:"id"`
	Properties map[string]Property `json:"properties"`
}

type Property struct {
	Type        string     `json:"type"`
	Title       []RichText `json:"title,omitempty"`
	RichText    []RichText `json:"rich_text,omitempty"`
	Number      *float64   `json:"number,omitempty"`
	URL         *string    `json:"url,omitempty"`
	Files       []File     `json:"files,omitempty"`
	Select      *Option    `json:"select,omitempty"`
	Status      *Option    `json:"status,omitempty"`
	MultiSelect []Option   `json:"multi_select,omitempty"`
}

type RichText struct {
	PlainText string `json:"plain_text"`
}

type Option struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type File struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	File     *FileLink `json:"file,omitempty"`
	External *FileLink `json:"external,omitempty"`
}

type FileLink struct {
	URL        string     `json:"url"`
	ExpiryTime *time.Time `json:"expiry_time,omitempty"`
}

// Filter is the subset of the query filter grammar the catalog pushes down.
type Filter struct {
	Property string        `json:"property"`
	Select   *SelectFilter `json:"select,omitempty"`
}

type SelectFilter struct {
	Equals string `json:"equals"`
}

type queryRequest struct {
	StartCursor string  `json:"start_cursor,omitempty"`
	PageSize    int     `json:"page_size,omitempty"`
	Filter      *Filter `json:"filter,omitempty"`
}

type queryResponse struct {
	Object     string  `json:"object"`
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
