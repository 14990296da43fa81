package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vufs_catalog_v1/internal/model"
	"vufs_catalog_v1/pkg/apperr"
)

func TestAttributeTypes_Slug(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		wantSlug string
	}{
		{"Fabric Weight", "fabric-weight"},
		{"  Multi   Space!! ", "multi-space"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := s.attributes.Types.Add(ctx, &model.AttributeType{Name: tt.name})
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlug, typ.Slug)
		})
	}

	_, err := s.attributes.Types.Add(ctx, &model.AttributeType{Name: "fabric weight"})
	assert.True(t, apperr.IsConflict(err), "同 slug 视为重复")

	_, err = s.attributes.Types.Add(ctx, &model.AttributeType{Name: "!!!"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestAttributeTypes_RenameKeepsSlug(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	typ, err := s.attributes.Types.Add(ctx, &model.AttributeType{Name: "Neckline"})
	require.NoError(t, err)

	got, err := s.attributes.Types.Update(ctx, typ.ID, map[string]interface{}{"name": "Neck Style"})
	require.NoError(t, err)
	assert.Equal(t, "Neck Style", got.Name)
	assert.Equal(t, "neckline", got.Slug)
}

func TestAttributeTypes_DeleteRemovesValues(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	typ, err := s.attributes.Types.Add(ctx, &model.AttributeType{Name: "Fabric Weight"})
	require.NoError(t, err)
	_, err = s.attributes.AddValueBySlug(ctx, "fabric-weight", "Light")
	require.NoError(t, err)
	_, err = s.attributes.AddValueBySlug(ctx, "fabric-weight", "Heavy")
	require.NoError(t, err)

	require.NoError(t, s.attributes.Types.Delete(ctx, typ.ID))

	values, err := s.attributes.Values.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, values)

	assert.True(t, apperr.IsNotFound(s.attributes.Types.Delete(ctx, typ.ID)))
}

func TestAttributeValues_RequireType(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	_, err := s.attributes.AddValueBySlug(ctx, "unknown", "X")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = s.attributes.Values.Add(ctx, &model.AttributeValue{Name: "X"})
	assert.True(t, apperr.HasCode(err, apperr.CodeMissingFields))

	_, err = s.attributes.Types.Add(ctx, &model.AttributeType{Name: "Season"})
	require.NoError(t, err)
	_, err = s.attributes.AddValueBySlug(ctx, "season", "Summer")
	require.NoError(t, err)
	_, err = s.attributes.AddValueBySlug(ctx, "season", "Summer")
	assert.True(t, apperr.IsConflict(err))
}

func TestSetAttribute_Upsert(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	first, err := s.attributes.SetAttribute(ctx, model.EntityCategory, int64Ptr(7), "fabric-weight", "light")
	require.NoError(t, err)
	second, err := s.attributes.SetAttribute(ctx, model.EntityCategory, int64Ptr(7), "fabric-weight", "heavy")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "heavy", second.Value)

	attrs, err := s.attributes.ListEntityAttributes(ctx, model.EntityCategory, 7)
	require.NoError(t, err)
	require.Len(t, attrs, 1)
	assert.Equal(t, "heavy", attrs[0].Value)

	// 属性 slug 不要求已存在
	_, err = s.attributes.SetAttribute(ctx, model.EntitySize, int64Ptr(1), "no-such-type", "x")
	assert.NoError(t, err)
}

func TestSetAttribute_Validation(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	_, err := s.attributes.SetAttribute(ctx, model.EntityBrand, nil, "origin", "IT")
	assert.True(t, apperr.HasCode(err, apperr.CodeMissingFields))

	_, err = s.attributes.SetAttribute(ctx, model.EntityBrand, int64Ptr(1), " ", "IT")
	assert.True(t, apperr.HasCode(err, apperr.CodeMissingFields))

	_, err = s.attributes.SetAttribute(ctx, model.EntityKind("store"), int64Ptr(1), "origin", "IT")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestDeleteAttribute(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	_, err := s.attributes.SetAttribute(ctx, model.EntityBrand, int64Ptr(3), "origin", "IT")
	require.NoError(t, err)

	require.NoError(t, s.attributes.DeleteAttribute(ctx, model.EntityBrand, 3, "origin"))
	assert.True(t, apperr.IsNotFound(s.attributes.DeleteAttribute(ctx, model.EntityBrand, 3, "origin")))
}
