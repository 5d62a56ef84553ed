package httphandler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDescription_EmptyInput(t *testing.T) {
	assert.Equal(t, "", renderDescription(""))
}

func TestRenderDescription_Formatting(t *testing.T) {
	result := renderDescription("**Хлопок 100%**\n\n~~старая цена~~")
	assert.Contains(t, result, "<strong>Хлопок 100%</strong>")
	assert.Contains(t, result, "<del>старая цена</del>")
}

func TestRenderDescription_HardWraps(t *testing.T) {
	result := renderDescription("line one\nline two")
	assert.Contains(t, result, "<br")
}

func TestRenderDescription_Table(t *testing.T) {
	result := renderDescription("| Size | Chest |\n|---|---|\n| M | 96 |")
	assert.Contains(t, result, "<table>")
	assert.Contains(t, result, "<td>96</td>")
}

func TestRenderDescription_ExternalLink(t *testing.T) {
	result := renderDescription("[size chart](https://example.com/sizes)")
	assert.Contains(t, result, `href="https://example.com/sizes"`)
	assert.Contains(t, result, "nofollow")
	assert.Contains(t, result, `target="_blank"`)
}

func TestRenderDescription_SanitizesScript(t *testing.T) {
	result := renderDescription(`<script>alert("xss")</script><img src=x onerror=alert(1)>`)
	assert.NotContains(t, result, "<script>")
	assert.NotContains(t, result, "onerror")
}
