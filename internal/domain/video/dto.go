package video

// UploadRequest данные формы загрузки
type UploadRequest struct {
	Title string
	File  *UploadFile
}

// UploadResponse ответ сервера на POST /api/videos
type UploadResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	FilePath string `json:"file_path"`
}
