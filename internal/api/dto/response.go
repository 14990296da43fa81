package dto

// ErrorBody 错误信息
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse 统一错误返回 {"error": {"code", "message"}}
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// MessageResponse 仅包含提示信息
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse 健康检查
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
