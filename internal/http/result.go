package httpapi

import (
	"errors"
	"net/http"

	"safetynet-alerts/internal/repository"
	"safetynet-alerts/internal/service"
)

// errorBody 错误响应体（成功响应直接返回 DTO，不加包装）
type errorBody struct {
	Error string `json:"error"`
}

// statusForErr 错误种类 -> HTTP 状态码
// NotFound / AlreadyExists 是调用方可恢复的预期情况；
// InvalidInput 400；存储不可用等其余错误对本次请求是致命的（500）
func statusForErr(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidBirthdate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForErr(err), errorBody{Error: err.Error()})
}
