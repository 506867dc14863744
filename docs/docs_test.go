package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerInfo_Paths(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	tests := []struct {
		path   string
		method string
	}{
		{path: "/user/plan/subscribe/{id}", method: "put"},
		{path: "/user/plan/unsubscribe/{id}", method: "put"},
		{path: "/user/plan/{id}", method: "get"},
		{path: "/plan", method: "post"},
		{path: "/health", method: "get"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			require.Contains(t, doc.Paths, tt.path)
			assert.Contains(t, doc.Paths[tt.path], tt.method)
		})
	}
}
