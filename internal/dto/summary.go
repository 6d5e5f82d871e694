package dto

type SummaryResponse struct {
	DocumentID  string `json:"document_id"`
	Summary     string `json:"summary"`
	GeneratedAt string `json:"generated_at"`
}

type DocumentFailureResponse struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	State      string `json:"state"`
	Reason     string `json:"reason"`
}

type ProjectSummaryResponse struct {
	ProjectID   string                    `json:"project_id"`
	Attempted   int                       `json:"attempted"`
	Succeeded   int                       `json:"succeeded"`
	Failed      int                       `json:"failed"`
	Summary     string                    `json:"summary"`
	Failures    []DocumentFailureResponse `json:"failures,omitempty"`
	GeneratedAt string                    `json:"generated_at"`
}
