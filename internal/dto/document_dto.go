package dto

type UploadResponse struct {
	Message string `json:"message"`
	Chunks  int    `json:"chunks"`
}

// PublishDocumentIngestedMessage is the payload carried on the
// DOCUMENT_INGESTED topic after a document is chunked and indexed.
type PublishDocumentIngestedMessage struct {
	Source string `json:"source"`
	Chunks int    `json:"chunks"`
}
