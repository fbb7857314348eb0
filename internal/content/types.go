package content

// Sys carries the identity and type metadata every CMS record has.
type Sys struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	LinkType    string          `json:"linkType,omitempty"`
	ContentType *ContentTypeRef `json:"contentType,omitempty"`
}

type ContentTypeRef struct {
	Sys struct {
		ID string `json:"id"`
	} `json:"sys"`
}

// Entry is a raw CMS entry. Field values come back as generic JSON: strings,
// numbers, nested link objects, or arrays of those.
type Entry struct {
	Sys    Sys            `json:"sys"`
	Fields map[string]any `json:"fields"`
}

// Asset is a raw CMS media record.
type Asset struct {
	Sys    Sys            `json:"sys"`
	Fields map[string]any `json:"fields"`
}

type Includes struct {
	Entry []Entry `json:"Entry,omitempty"`
	Asset []Asset `json:"Asset,omitempty"`
}

// EntriesResponse is the delivery API's paginated entry listing. Linked
// records referenced by the items live in Includes.
type EntriesResponse struct {
	Total    int      `json:"total"`
	Skip     int      `json:"skip"`
	Limit    int      `json:"limit"`
	Items    []Entry  `json:"items"`
	Includes Includes `json:"includes"`
}
