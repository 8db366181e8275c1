package kmedia

// LessonsResponse is the body of GET /lessons
type LessonsResponse struct {
	Total int          `json:"total"`
	Items []Collection `json:"items"`
}

// CollectionsResponse is the body of GET /collections
type CollectionsResponse struct {
	Total       int          `json:"total"`
	Collections []Collection `json:"collections"`
}

// ContentUnitsResponse is the body of GET /content_units
type ContentUnitsResponse struct {
	Total        int           `json:"total"`
	ContentUnits []ContentUnit `json:"content_units"`
}

// Collection is a lesson (or any other collection) as returned by the API
type Collection struct {
	ID           string        `json:"id"`
	ContentType  string        `json:"content_type,omitempty"`
	Name         string        `json:"name,omitempty"`
	FilmDate     string        `json:"film_date,omitempty"`
	Views        int           `json:"views,omitempty"`
	ContentUnits []ContentUnit `json:"content_units,omitempty"`
}

// ContentUnit is a single media item
type ContentUnit struct {
	ID          string  `json:"id"`
	ContentType string  `json:"content_type,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	FilmDate    string  `json:"film_date,omitempty"`
	Duration    float64 `json:"duration,omitempty"` // Seconds, may be fractional
	Files       []File  `json:"files,omitempty"`
}

// File is a physical file of a content unit
type File struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Size     int64   `json:"size,omitempty"`
	Type     string  `json:"type"`
	Language string  `json:"language"`
	MimeType string  `json:"mimetype,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}
