package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerRegistered(t *testing.T) {
	SwaggerInfo.Host = "api.example.com"
	SwaggerInfo.Schemes = []string{"https"}

	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Host    string                    `json:"host"`
		Schemes []string                  `json:"schemes"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "api.example.com", doc.Host)
	assert.Equal(t, []string{"https"}, doc.Schemes)
	for _, p := range []string{"/expense", "/expenses", "/categories", "/expenses/month", "/expenses/month/export", "/health"} {
		assert.Contains(t, doc.Paths, p)
	}
	assert.Contains(t, doc.Paths["/expense"], "post")
}
