package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"vufs_catalog_v1/internal/api/dto"
	"vufs_catalog_v1/internal/model"
	"vufs_catalog_v1/internal/repository"
	"vufs_catalog_v1/pkg/apperr"
	"vufs_catalog_v1/pkg/database"
)

// TaxonomyService 品类 / 品牌树服务
type TaxonomyService struct {
	nodeRepo repository.NodeRepository
	uow      *repository.CatalogUnitOfWork
	logger   *zap.Logger
}

// NewTaxonomyService 创建树服务
func NewTaxonomyService(nodeRepo repository.NodeRepository, uow *repository.CatalogUnitOfWork, logger *zap.Logger) *TaxonomyService {
	return &TaxonomyService{
		nodeRepo: nodeRepo,
		uow:      uow,
		logger:   logger,
	}
}

// ==================== 查询 ====================

// ListNodes 按层级 / 父节点筛选
func (s *TaxonomyService) ListNodes(ctx context.Context, kind model.NodeKind, query dto.ListNodesQuery) ([]model.TaxonomyNode, error) {
	filter := repository.NodeFilter{Kind: kind, ParentID: query.ParentID}
	if query.Level != "" {
		level := model.Level(query.Level)
		if _, ok := kind.Depth(level); !ok {
			return nil, apperr.Validation(apperr.CodeValidation, "level %q is not valid for %s", query.Level, kind)
		}
		filter.Level = level
	}

	nodes, err := s.nodeRepo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return nodes, nil
}

// SearchNodes 名称搜索
func (s *TaxonomyService) SearchNodes(ctx context.Context, kind model.NodeKind, q string) ([]model.TaxonomyNode, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperr.Validation(apperr.CodeMissingQuery, "query parameter q is required")
	}

	nodes, err := s.nodeRepo.Search(ctx, kind, q, repository.DefaultSearchLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return nodes, nil
}

// GetNode 获取单个节点
func (s *TaxonomyService) GetNode(ctx context.Context, kind model.NodeKind, id int64) (*model.TaxonomyNode, error) {
	node, err := s.nodeRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, translateErr(err, string(kind), id)
	}
	return node, nil
}

// GetPath 从根到指定节点的完整路径
// 最多走 kind.MaxDepth() 层；出现环或链路过深返回 TAXONOMY_CYCLE，父节点缺失视为数据损坏
func (s *TaxonomyService) GetPath(ctx context.Context, kind model.NodeKind, id int64) ([]model.TaxonomyNode, error) {
	node, err := s.GetNode(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	chain := []model.TaxonomyNode{*node}
	visited := map[int64]bool{node.ID: true}

	for cur := node; cur.ParentID != nil; {
		if len(chain) >= kind.MaxDepth() {
			return nil, apperr.Validation(apperr.CodeTaxonomyCycle, "%s %d exceeds %d levels", kind, id, kind.MaxDepth())
		}

		parentID := *cur.ParentID
		if visited[parentID] {
			return nil, apperr.Validation(apperr.CodeTaxonomyCycle, "%s %d has a cyclic parent chain", kind, id)
		}

		parent, err := s.nodeRepo.GetByID(ctx, kind, parentID)
		if database.IsNotFound(err) {
			return nil, apperr.Internal(fmt.Errorf("%s %d references missing parent %d", kind, cur.ID, parentID))
		}
		if err != nil {
			return nil, apperr.Internal(err)
		}

		visited[parent.ID] = true
		chain = append(chain, *parent)
		cur = parent
	}

	// 根在前
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// GetTree 一次读取整棵树，在内存中组装
func (s *TaxonomyService) GetTree(ctx context.Context, kind model.NodeKind) ([]*model.TreeNode, error) {
	nodes, err := s.nodeRepo.ListByKind(ctx, kind)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	byID := make(map[int64]*model.TreeNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = &model.TreeNode{TaxonomyNode: n, Children: []*model.TreeNode{}}
	}

	roots := make([]*model.TreeNode, 0)
	for _, n := range nodes {
		tn := byID[n.ID]
		if n.ParentID == nil {
			roots = append(roots, tn)
			continue
		}
		parent, ok := byID[*n.ParentID]
		if !ok {
			s.logger.Warn("孤立节点，父节点不存在",
				zap.String("kind", string(kind)),
				zap.Int64("id", n.ID),
				zap.Int64("parent_id", *n.ParentID))
			continue
		}
		parent.Children = append(parent.Children, tn)
	}
	return roots, nil
}

// ==================== 写操作 ====================

// AddNode 新增节点，校验层级与父节点
func (s *TaxonomyService) AddNode(ctx context.Context, kind model.NodeKind, req dto.CreateNodeRequest) (*model.TaxonomyNode, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.MissingFields("name is required")
	}

	level := model.Level(req.Level)
	if _, ok := kind.Depth(level); !ok {
		return nil, apperr.Validation(apperr.CodeValidation, "level %q is not valid for %s", req.Level, kind)
	}
	if err := s.checkParent(ctx, kind, level, req.ParentID); err != nil {
		return nil, err
	}

	node := &model.TaxonomyNode{Kind: kind, Level: level, Name: name, ParentID: req.ParentID}
	if err := s.nodeRepo.Create(ctx, node); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("%s %q already exists at this position", kind, name).WithCause(err)
		}
		return nil, apperr.Internal(err)
	}

	s.logger.Info("新增节点",
		zap.String("kind", string(kind)),
		zap.String("level", string(level)),
		zap.Int64("id", node.ID),
		zap.String("name", name))
	return node, nil
}

// UpdateNode 重命名 / 移动节点
func (s *TaxonomyService) UpdateNode(ctx context.Context, kind model.NodeKind, id int64, req dto.UpdateNodeRequest) (*model.TaxonomyNode, error) {
	if req.Name == nil && req.ParentID == nil {
		return nil, apperr.MissingFields("name or parentId is required")
	}

	node, err := s.GetNode(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.MissingFields("name must not be empty")
		}
		fields["name"] = name
	}

	if req.ParentID != nil {
		if err := s.checkMove(ctx, kind, node, *req.ParentID); err != nil {
			return nil, err
		}
		fields["parent_id"] = *req.ParentID
		fields["parent_key"] = *req.ParentID
	}

	if err := s.nodeRepo.UpdateFields(ctx, id, fields); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("%s with the same name already exists at this position", kind).WithCause(err)
		}
		return nil, apperr.Internal(err)
	}

	s.logger.Info("更新节点", zap.String("kind", string(kind)), zap.Int64("id", id), zap.Any("fields", fields))
	return s.GetNode(ctx, kind, id)
}

// DeleteNode 删除节点
// 有子节点时拒绝；cascade 为 true 时在同一事务中删除整棵子树及其属性
func (s *TaxonomyService) DeleteNode(ctx context.Context, kind model.NodeKind, id int64, cascade bool) (int64, error) {
	if _, err := s.GetNode(ctx, kind, id); err != nil {
		return 0, err
	}

	children, err := s.nodeRepo.CountChildren(ctx, id)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	if children > 0 && !cascade {
		return 0, apperr.New(apperr.KindConflict, apperr.CodeHasChildren,
			fmt.Sprintf("%s %d has %d children; use cascade=true to delete the subtree", kind, id, children))
	}

	var deleted int64
	err = s.uow.Transaction(ctx, func(tx *repository.CatalogUnitOfWork) error {
		ids, err := collectSubtree(ctx, tx.Nodes, id, kind.MaxDepth())
		if err != nil {
			return err
		}
		if err := tx.Attributes.DeleteByEntities(ctx, model.EntityKind(kind), ids); err != nil {
			return err
		}
		deleted, err = tx.Nodes.DeleteByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return 0, apperr.Wrap(err)
	}

	s.logger.Info("删除节点",
		zap.String("kind", string(kind)),
		zap.Int64("id", id),
		zap.Bool("cascade", cascade),
		zap.Int64("deleted", deleted))
	return deleted, nil
}

// ==================== 层级构建 ====================

// BuildCategoryHierarchy page > blue > white > gray 逐级查找或创建
func (s *TaxonomyService) BuildCategoryHierarchy(ctx context.Context, req dto.CategoryHierarchyRequest) (*dto.Hierarchy, error) {
	return s.buildHierarchy(ctx, model.KindCategory, req.Names())
}

// BuildBrandHierarchy brand > line > collaboration 逐级查找或创建
func (s *TaxonomyService) BuildBrandHierarchy(ctx context.Context, req dto.BrandHierarchyRequest) (*dto.Hierarchy, error) {
	return s.buildHierarchy(ctx, model.KindBrand, req.Names())
}

// buildHierarchy 名称去除首尾空白后精确匹配，遇到第一个空名称即停止
func (s *TaxonomyService) buildHierarchy(ctx context.Context, kind model.NodeKind, names []string) (*dto.Hierarchy, error) {
	levels := kind.Levels()
	if len(names) == 0 || strings.TrimSpace(names[0]) == "" {
		return nil, apperr.MissingFields("%s name is required", levels[0])
	}

	result := &dto.Hierarchy{Chain: make([]model.TaxonomyNode, 0, len(levels))}
	var parentID *int64

	for i, raw := range names {
		if i >= len(levels) {
			break
		}
		name := strings.TrimSpace(raw)
		if name == "" {
			break
		}

		node, created, err := s.findOrCreate(ctx, kind, levels[i], parentID, name)
		if err != nil {
			return nil, err
		}
		if created {
			result.Created++
		}

		result.Chain = append(result.Chain, *node)
		parentID = &node.ID
	}

	deepest := result.Chain[len(result.Chain)-1]
	result.Deepest = &deepest
	return result, nil
}

// findOrCreate 唯一索引冲突说明并发创建，回读已有节点
func (s *TaxonomyService) findOrCreate(ctx context.Context, kind model.NodeKind, level model.Level, parentID *int64, name string) (*model.TaxonomyNode, bool, error) {
	existing, err := s.nodeRepo.FindChild(ctx, kind, level, parentID, name)
	if err == nil {
		return existing, false, nil
	}
	if !database.IsNotFound(err) {
		return nil, false, apperr.Internal(err)
	}

	node := &model.TaxonomyNode{Kind: kind, Level: level, Name: name, ParentID: parentID}
	if err := s.nodeRepo.Create(ctx, node); err != nil {
		if !database.IsUniqueViolation(err) {
			return nil, false, apperr.Internal(err)
		}
		existing, err = s.nodeRepo.FindChild(ctx, kind, level, parentID, name)
		if err != nil {
			return nil, false, apperr.Internal(err)
		}
		return existing, false, nil
	}

	s.logger.Info("层级构建新增节点",
		zap.String("kind", string(kind)),
		zap.String("level", string(level)),
		zap.Int64("id", node.ID),
		zap.String("name", name))
	return node, true, nil
}

// ==================== 私有方法 ====================

// checkParent 根层级不能有父节点；其余层级的父节点必须同类型且恰好高一级
func (s *TaxonomyService) checkParent(ctx context.Context, kind model.NodeKind, level model.Level, parentID *int64) error {
	wantLevel, hasParent := kind.ParentLevel(level)
	if !hasParent {
		if parentID != nil {
			return apperr.Validation(apperr.CodeValidation, "%s-level nodes cannot have a parent", level)
		}
		return nil
	}
	if parentID == nil {
		return apperr.MissingFields("parentId is required for %s-level nodes", level)
	}

	parent, err := s.nodeRepo.GetByID(ctx, kind, *parentID)
	if database.IsNotFound(err) {
		return apperr.Validation(apperr.CodeValidation, "parent %s %d does not exist", kind, *parentID)
	}
	if err != nil {
		return apperr.Internal(err)
	}
	if parent.Level != wantLevel {
		return apperr.Validation(apperr.CodeValidation, "parent of a %s-level node must be %s-level, got %s", level, wantLevel, parent.Level)
	}
	return nil
}

// checkMove 目标父节点不能是自身或其后代
func (s *TaxonomyService) checkMove(ctx context.Context, kind model.NodeKind, node *model.TaxonomyNode, parentID int64) error {
	if parentID == node.ID {
		return apperr.Validation(apperr.CodeTaxonomyCycle, "%s %d cannot be its own parent", kind, node.ID)
	}
	if err := s.checkParent(ctx, kind, node.Level, &parentID); err != nil {
		return err
	}

	path, err := s.GetPath(ctx, kind, parentID)
	if err != nil {
		return err
	}
	for _, p := range path {
		if p.ID == node.ID {
			return apperr.Validation(apperr.CodeTaxonomyCycle, "cannot move %s %d under its own descendant %d", kind, node.ID, parentID)
		}
	}
	return nil
}

// collectSubtree 按层展开子树 ID，深度受层级数限制
func collectSubtree(ctx context.Context, repo repository.NodeRepository, rootID int64, maxDepth int) ([]int64, error) {
	ids := []int64{rootID}
	frontier := []int64{rootID}
	seen := map[int64]bool{rootID: true}

	for depth := 1; depth < maxDepth && len(frontier) > 0; depth++ {
		children, err := repo.ListChildrenIDs(ctx, frontier)
		if err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, id := range children {
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
			frontier = append(frontier, id)
		}
	}
	return ids, nil
}
