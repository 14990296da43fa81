package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"vufs_catalog_v1/internal/api/dto"
	"vufs_catalog_v1/internal/model"
	"vufs_catalog_v1/pkg/apperr"
)

// BulkType 批量导入目标
type BulkType string

const (
	BulkCategory       BulkType = "category"
	BulkBrand          BulkType = "brand"
	BulkColor          BulkType = "color"
	BulkMaterial       BulkType = "material"
	BulkPattern        BulkType = "pattern"
	BulkFit            BulkType = "fit"
	BulkSize           BulkType = "size"
	BulkAttributeValue BulkType = "attribute-value"
)

// bulkTypeAliases 去空白、小写后精确匹配
var bulkTypeAliases = map[string]BulkType{
	"category":         BulkCategory,
	"categories":       BulkCategory,
	"brand":            BulkBrand,
	"brands":           BulkBrand,
	"color":            BulkColor,
	"colors":           BulkColor,
	"colour":           BulkColor,
	"colours":          BulkColor,
	"material":         BulkMaterial,
	"materials":        BulkMaterial,
	"pattern":          BulkPattern,
	"patterns":         BulkPattern,
	"fit":              BulkFit,
	"fits":             BulkFit,
	"size":             BulkSize,
	"sizes":            BulkSize,
	"attribute-value":  BulkAttributeValue,
	"attribute-values": BulkAttributeValue,
	"attribute value":  BulkAttributeValue,
	"attribute values": BulkAttributeValue,
}

// ParseBulkType 未知类型返回 UNSUPPORTED_TYPE
func ParseBulkType(raw string) (BulkType, error) {
	if t, ok := bulkTypeAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t, nil
	}
	return "", apperr.UnsupportedType(raw)
}

// itemCreator 按名称创建一条记录
type itemCreator func(ctx context.Context, name, attributeSlug string) error

// BulkDeps 批量导入依赖的各实体服务
type BulkDeps struct {
	Taxonomy   *TaxonomyService
	Colors     *CatalogService[model.Color]
	Materials  *CatalogService[model.Material]
	Patterns   *CatalogService[model.Pattern]
	Fits       *CatalogService[model.Fit]
	Sizes      *CatalogService[model.Size]
	Attributes *AttributeService
}

// BulkService 批量导入
type BulkService struct {
	creators   map[BulkType]itemCreator
	attributes *AttributeService
	logger     *zap.Logger
}

// NewBulkService 创建批量导入服务
func NewBulkService(deps BulkDeps, logger *zap.Logger) *BulkService {
	rootNode := func(kind model.NodeKind) itemCreator {
		return func(ctx context.Context, name, _ string) error {
			_, err := deps.Taxonomy.AddNode(ctx, kind, dto.CreateNodeRequest{Name: name, Level: string(kind.RootLevel())})
			return err
		}
	}

	return &BulkService{
		creators: map[BulkType]itemCreator{
			BulkCategory: rootNode(model.KindCategory),
			BulkBrand:    rootNode(model.KindBrand),
			BulkColor: func(ctx context.Context, name, _ string) error {
				_, err := deps.Colors.Add(ctx, &model.Color{Name: name})
				return err
			},
			BulkMaterial: func(ctx context.Context, name, _ string) error {
				_, err := deps.Materials.Add(ctx, &model.Material{Name: name})
				return err
			},
			BulkPattern: func(ctx context.Context, name, _ string) error {
				_, err := deps.Patterns.Add(ctx, &model.Pattern{Name: name})
				return err
			},
			BulkFit: func(ctx context.Context, name, _ string) error {
				_, err := deps.Fits.Add(ctx, &model.Fit{Name: name})
				return err
			},
			BulkSize: func(ctx context.Context, name, _ string) error {
				_, err := deps.Sizes.Add(ctx, &model.Size{Name: name})
				return err
			},
			BulkAttributeValue: func(ctx context.Context, name, slug string) error {
				_, err := deps.Attributes.AddValueBySlug(ctx, slug, name)
				return err
			},
		},
		attributes: deps.Attributes,
		logger:     logger,
	}
}

// BulkAddItems 逐条独立写入，不包事务
// 唯一约束冲突计为 skipped，其它失败记入 errors，不中断后续条目
func (s *BulkService) BulkAddItems(ctx context.Context, req dto.BulkAddRequest) (*dto.BulkResult, error) {
	typ, err := ParseBulkType(req.Type)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(req.AttributeSlug)
	if typ == BulkAttributeValue {
		if slug == "" {
			return nil, apperr.MissingFields("attributeSlug is required for attribute values")
		}
		exists, err := s.attributes.TypeExists(ctx, slug)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.Validation(apperr.CodeValidation, "attribute type %q does not exist", slug)
		}
	}

	create := s.creators[typ]
	result := &dto.BulkResult{Errors: []dto.BulkItemError{}}

	for i, item := range req.Items {
		name := strings.TrimSpace(item)
		if name == "" {
			result.Errors = append(result.Errors, dto.BulkItemError{Index: i, Item: item, Message: "item name is empty"})
			continue
		}

		err := create(ctx, name, slug)
		switch {
		case err == nil:
			result.CreatedCount++
		case apperr.IsConflict(err):
			result.SkippedCount++
		default:
			s.logger.Warn("批量导入条目失败",
				zap.String("type", string(typ)),
				zap.Int("index", i),
				zap.String("item", item),
				zap.Error(err))
			result.Errors = append(result.Errors, dto.BulkItemError{Index: i, Item: item, Message: itemErrorMessage(err)})
		}
	}

	s.logger.Info("批量导入完成",
		zap.String("type", string(typ)),
		zap.Int("created", result.CreatedCount),
		zap.Int("skipped", result.SkippedCount),
		zap.Int("failed", len(result.Errors)))
	return result, nil
}

// itemErrorMessage 内部错误不外露细节
func itemErrorMessage(err error) string {
	e := apperr.Wrap(err)
	return e.Message
}
