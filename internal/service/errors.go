package service

import (
	"vufs_catalog_v1/pkg/apperr"
	"vufs_catalog_v1/pkg/database"
)

// translateErr 存储层错误 -> 领域错误
func translateErr(err error, entity string, id interface{}) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	if database.IsNotFound(err) {
		return apperr.NotFound(entity, id)
	}
	if database.IsUniqueViolation(err) {
		return apperr.Conflict("%s already exists", entity).WithCause(err)
	}
	return apperr.Internal(err)
}
