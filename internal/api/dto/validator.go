package dto

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"vufs_catalog_v1/internal/model"
)

// RegisterValidators 注册自定义校验 tag，并让错误信息使用 json / form 字段名
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	v.RegisterTagNameFunc(fieldName)
	return v.RegisterValidation("taxonomy_level", validateTaxonomyLevel)
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// validateTaxonomyLevel 层级必须属于品类或品牌树
func validateTaxonomyLevel(fl validator.FieldLevel) bool {
	level := model.Level(fl.Field().String())
	for _, kind := range []model.NodeKind{model.KindCategory, model.KindBrand} {
		if _, ok := kind.Depth(level); ok {
			return true
		}
	}
	return false
}
