package dto

type DocumentResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	FilePath   string `json:"file_path"`
	OwnerID    string `json:"owner_id"`
	ProjectID  string `json:"project_id,omitempty"`
	UploadedAt string `json:"uploaded_at"`
}

type DocumentStatisticsResponse struct {
	Characters int `json:"character_count"`
	Words      int `json:"word_count"`
	Lines      int `json:"line_count"`
}

type DocumentInsightsResponse struct {
	DocumentID string                     `json:"document_id"`
	Summary    string                     `json:"summary"`
	Metadata   map[string]string          `json:"metadata,omitempty"`
	PageCount  int                        `json:"page_count,omitempty"`
	Statistics DocumentStatisticsResponse `json:"statistics"`
}

type TranslateRequest struct {
	TargetLanguage string `json:"target_language" validate:"required"`
}

type TranslationResponse struct {
	DocumentID     string `json:"document_id"`
	TargetLanguage string `json:"target_language"`
	TranslatedText string `json:"translated_text"`
}
