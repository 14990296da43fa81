package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"vufs_catalog_v1/internal/api/dto"
	"vufs_catalog_v1/internal/middleware"
	"vufs_catalog_v1/pkg/apperr"
)

// respondError 统一错误返回 {"error": {"code", "message"}}
// 内部错误只返回通用信息，原始错误连同请求 ID 写日志
func respondError(ctx *gin.Context, logger *zap.Logger, err error) {
	appErr := apperr.Wrap(err)
	if appErr.Kind == apperr.KindInternal {
		logger.Error("请求处理失败",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.String("request_id", middleware.GetRequestID(ctx)),
			zap.Error(appErr.Cause))
	}

	ctx.JSON(appErr.HTTPStatus(), dto.ErrorResponse{
		Error: dto.ErrorBody{Code: appErr.Code, Message: appErr.Message},
	})
}

// bindError 绑定 / 校验错误 -> 领域错误
// required 缺失为 MISSING_FIELDS，其余校验失败为 VALIDATION_ERROR
func bindError(err error) *apperr.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return apperr.MissingFields("%s is required", fe.Field())
		}
		return apperr.Validation(apperr.CodeValidation, "%s failed %s validation", fe.Field(), fe.Tag())
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return apperr.Validation(apperr.CodeValidation, "malformed JSON body")
	case errors.As(err, &typeErr):
		return apperr.Validation(apperr.CodeValidation, "%s has the wrong type", typeErr.Field)
	}
	return apperr.Validation(apperr.CodeValidation, "invalid request: %v", err)
}

// parseID 路径参数解析为正整数 ID
func parseID(ctx *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation(apperr.CodeInvalidID, "invalid %s: %q", param, ctx.Param(param))
	}
	return id, nil
}

// parseBoolQuery 未提供时为 false
func parseBoolQuery(ctx *gin.Context, key string) (bool, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperr.Validation(apperr.CodeValidation, "%s must be a boolean", key)
	}
	return v, nil
}

func messagef(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
