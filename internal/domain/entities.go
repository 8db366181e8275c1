package domain

// FileTypeVideo is the File.Type value of playable video streams
const FileTypeVideo = "video"

// Lesson is a daily lesson summary from the lessons catalog
type Lesson struct {
	ID       string // Collection identifier of the lesson
	FilmDate string // Calendar date, "YYYY-MM-DD"
}

// Collection groups the content units (parts) of one lesson
type Collection struct {
	ID       string // Equals the lesson identifier
	FilmDate string
	Units    []ContentUnit
}

// ContentUnit is the API's atomic media item
type ContentUnit struct {
	ID       string
	Name     string
	Duration int    // Seconds
	FilmDate string // Calendar date, "YYYY-MM-DD"
	Files    []File // Only populated when fetched with files
}

// File is a physical file attached to a content unit
type File struct {
	ID       string
	Name     string
	Language string // e.g. "pt", "en"
	Type     string // "video", "audio", "subtitle", ...
	MimeType string
}

// IsVideo reports whether the file is a video stream
func (f File) IsVideo() bool {
	return f.Type == FileTypeVideo
}

// Part is the view model of one playable segment of a lesson.
// One Part is built per ContentUnit; it is not mutated after construction.
type Part struct {
	LessonID     string
	PartID       string
	Title        string
	Duration     string // Formatted, e.g. "1 hora e 5 minutos"
	Date         string // Formatted for the UI language
	ThumbnailURL string
}
