package dto

type QueryResponse struct {
	ParsedQuery    map[string]interface{} `json:"parsed_query"`
	DecisionResult map[string]interface{} `json:"decision_result"`
}

type BulkQueryResponse struct {
	Answers []string `json:"answers"`
}

type RunRequest struct {
	Documents string   `json:"documents" validate:"required,url"`
	Questions []string `json:"questions" validate:"required,min=1,dive,required"`
}

type RunResponse struct {
	Answers []string `json:"answers"`
}
