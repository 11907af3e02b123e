package docs

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type swaggerDoc struct {
	Paths map[string]map[string]struct {
		Description string                `json:"description"`
		Security    []map[string][]string `json:"security"`
	} `json:"paths"`
	SecurityDefinitions map[string]struct {
		Type        string `json:"type"`
		In          string `json:"in"`
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"securityDefinitions"`
}

func readDoc(t *testing.T) swaggerDoc {
	t.Helper()
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestSecurityDefinitionDescribesBothTransports(t *testing.T) {
	doc := readDoc(t)

	def, ok := doc.SecurityDefinitions["BearerAuth"]
	require.True(t, ok)
	assert.Equal(t, "header", def.In)
	assert.Equal(t, "Authorization", def.Name)
	assert.Contains(t, def.Description, `"token" field of the JSON body`)
}

func TestSecuredOperationsDocumentBodyToken(t *testing.T) {
	doc := readDoc(t)
	public := map[string]bool{"/auth/register": true, "/auth/login": true}

	require.Len(t, doc.Paths, 11)
	for path, ops := range doc.Paths {
		op, ok := ops["post"]
		require.True(t, ok, path)
		if public[path] {
			assert.Empty(t, op.Security, path)
			continue
		}
		require.Len(t, op.Security, 1, path)
		assert.Contains(t, op.Security[0], "BearerAuth", path)
		assert.True(t, strings.Contains(op.Description, `JSON body field "token"`), path)
	}
}
