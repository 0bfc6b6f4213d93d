package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/passport-api/docs"
)

func TestSwaggerRegistrado(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths               map[string]any `json:"paths"`
		SecurityDefinitions map[string]any `json:"securityDefinitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "Passport API", doc.Info.Title)
	assert.Contains(t, doc.Paths, "/api/passports/{id}/public")
	assert.Contains(t, doc.Paths, "/api/cbam/declarations/{id}/export/xml")
	assert.Contains(t, doc.SecurityDefinitions, "ApiKey")
	assert.Contains(t, doc.SecurityDefinitions, "AdminToken")
}
