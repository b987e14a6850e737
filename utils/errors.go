package utils

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码常量，贯穿核心层与HTTP层
const (
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "RESOURCE_NOT_FOUND"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeInvalidStatus    = "INVALID_STATUS"
	ErrCodeInvalidStage     = "INVALID_STAGE"
	ErrCodeInvalidValue     = "INVALID_VALUE"
	ErrCodeEmailExists      = "EMAIL_EXISTS"
	ErrCodeAlreadyConverted = "ALREADY_CONVERTED"
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
	ErrCodeUncertain        = "UNCERTAIN_OPERATION"
)

// ApiError 自定义API错误
type ApiError struct {
	StatusCode int
	Message    string
	ErrorCode  string
}

// Error 实现error接口
func (e *ApiError) Error() string {
	return e.Message
}

// NewApiError 创建API错误
func NewApiError(message string, statusCode int, errorCode string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	}
}

// CreateNotFoundError 创建资源不存在错误
func CreateNotFoundError(resource string) *ApiError {
	return NewApiError(resource+"不存在", http.StatusNotFound, ErrCodeNotFound)
}

// CreateUnauthorizedError 创建未授权错误
func CreateUnauthorizedError(message string) *ApiError {
	if message == "" {
		message = "未授权访问"
	}
	return NewApiError(message, http.StatusUnauthorized, ErrCodeUnauthorized)
}

// CreateForbiddenError 创建权限不足错误
func CreateForbiddenError() *ApiError {
	return NewApiError("权限不足", http.StatusForbidden, ErrCodeForbidden)
}

// CreateBadRequestError 创建错误请求错误
func CreateBadRequestError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, ErrCodeBadRequest)
}

// CreateInvalidStatusError 创建非法线索状态错误
func CreateInvalidStatusError(status string) *ApiError {
	return NewApiError(
		fmt.Sprintf("无效的线索状态: %s", status),
		http.StatusBadRequest,
		ErrCodeInvalidStatus,
	)
}

// CreateInvalidStageError 创建非法商机阶段错误
func CreateInvalidStageError(stage string) *ApiError {
	return NewApiError(
		fmt.Sprintf("无效的商机阶段: %s", stage),
		http.StatusBadRequest,
		ErrCodeInvalidStage,
	)
}

// CreateInvalidValueError 创建非法商机金额错误
func CreateInvalidValueError(value float64) *ApiError {
	return NewApiError(
		fmt.Sprintf("商机金额不能为负数: %v", value),
		http.StatusBadRequest,
		ErrCodeInvalidValue,
	)
}

// CreateEmailExistsError 创建邮箱已注册错误
func CreateEmailExistsError(email string) *ApiError {
	return NewApiError("邮箱已被注册: "+email, http.StatusConflict, ErrCodeEmailExists)
}

// CreateAlreadyConvertedError 创建线索重复转化错误
func CreateAlreadyConvertedError() *ApiError {
	return NewApiError(
		"线索已转化为商机，请刷新页面查看最新状态",
		http.StatusConflict,
		ErrCodeAlreadyConverted,
	)
}

// CreateStoreUnavailableError 创建存储层暂时不可用错误，调用方可退避重试
func CreateStoreUnavailableError(err error) *ApiError {
	message := "存储服务暂时不可用，请稍后重试"
	if err != nil {
		message = message + ": " + err.Error()
	}
	return NewApiError(message, http.StatusServiceUnavailable, ErrCodeStoreUnavailable)
}

// CreateUncertainOperationError 创建操作结果不确定错误
func CreateUncertainOperationError() *ApiError {
	return NewApiError(
		"操作状态不确定，请刷新页面查看最新状态",
		http.StatusInternalServerError,
		ErrCodeUncertain,
	)
}

// HandleError 处理错误并返回适当的响应
func HandleError(c *gin.Context, err error) {
	if c == nil {
		return
	}
	// 记录错误
	errorMessage := err.Error()
	LogError(err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}, "API错误: "+errorMessage)

	// 处理API错误
	if apiErr, ok := err.(*ApiError); ok {
		response := gin.H{"success": false, "error": apiErr.Message}
		if apiErr.ErrorCode != "" {
			response["code"] = apiErr.ErrorCode
		}
		c.JSON(apiErr.StatusCode, response)
		return
	}

	// 其他未预期的错误
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   errorMessage,
	})
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, data interface{}, message string, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := gin.H{"success": true}
	if data != nil {
		response["data"] = data
	}
	if message != "" {
		response["message"] = message
	}

	c.JSON(code, response)
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}
