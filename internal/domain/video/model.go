package video

// Video запись о видео в том виде, в котором ее отдает GET /api/videos.
// Клиент никогда не меняет запись локально, только перечитывает список.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Uploader    string `json:"uploader"`
	Views       int    `json:"views"`
	FilePath    string `json:"file_path"`
}
