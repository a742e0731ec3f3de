package model

type ExtractRequestBody struct {
	Path       string `json:"path"`
	OutputType string `json:"output_type"`
	Lookback   int    `json:"lookback"`
	Transpose  *bool  `json:"transpose"`
}

type ExtractResponse struct {
	File    string       `json:"file"`
	NumRows int          `json:"num_rows"`
	Rows    []FeatureRow `json:"rows"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
