package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	body, err := Render(TemplateWelcome, map[string]string{
		"UserName":  "Ada <script>",
		"UserEmail": "ada@example.com",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Welcome to LightBnB, Ada &lt;script&gt;!")
	assert.Contains(t, body, "ada@example.com")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	require.Error(t, err)
}

func TestRenderPreview(t *testing.T) {
	body, err := RenderPreview(TemplateWelcome)
	require.NoError(t, err)

	assert.Contains(t, body, "Devin Sanders")
}
