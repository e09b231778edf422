package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerRegistrado(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var openapi map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &openapi))
	paths, ok := openapi["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/portal/login")
	assert.Contains(t, paths, "/api/sales/{id}/advance")
}
