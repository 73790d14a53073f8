package mailtemplate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/campaign-manager/internal/lib/mailtemplate"
)

func TestRender(t *testing.T) {
	html, err := mailtemplate.Render(mailtemplate.Vars{
		PublishedDate: "2024-01-01",
		ArticleURL:    "https://example.com/article",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "2024-01-01")
	assert.Contains(t, html, `href="https://example.com/article"`)
}

func TestRender_EscapesURL(t *testing.T) {
	html, err := mailtemplate.Render(mailtemplate.Vars{
		PublishedDate: "2024-01-01",
		ArticleURL:    `https://example.com/?a=1&b="2"`,
	})
	require.NoError(t, err)

	assert.NotContains(t, html, `b="2"`)
	assert.Contains(t, html, "&amp;")
}
