package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	"github.com/SscSPs/budget_approval_app/internal/core/services"
)

func TestTemplateService_ListTemplates(t *testing.T) {
	svc := services.NewTemplateService()

	templates := svc.ListTemplates(context.Background())

	require.Len(t, templates, 4)
	names := make([]string, len(templates))
	for i, tpl := range templates {
		names[i] = tpl.Name
		assert.NotEmpty(t, tpl.Description)
		assert.NotEmpty(t, tpl.Items)
	}
	assert.Equal(t, []string{"personal", "business", "project", "event"}, names)
}

func TestTemplateService_GetTemplateByName(t *testing.T) {
	svc := services.NewTemplateService()

	tpl, err := svc.GetTemplateByName(context.Background(), "Personal")

	require.NoError(t, err)
	assert.Equal(t, "personal", tpl.Name)
}

func TestTemplateService_GetTemplateByName_NotFound(t *testing.T) {
	svc := services.NewTemplateService()

	tpl, err := svc.GetTemplateByName(context.Background(), "wedding")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, tpl)
}
