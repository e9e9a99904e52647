package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

func TestRegistry_Extract_ByExtension(t *testing.T) {
	r := Default()
	ctx := context.Background()

	text, err := r.Extract(ctx, []byte("plain content"), "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "plain content", text)

	text, err = r.Extract(ctx, []byte("# Title\n\nbody text"), "README.md")
	require.NoError(t, err)
	assert.Equal(t, "Title\n\nbody text", text)
}

func TestRegistry_Extract_CaseInsensitiveExtension(t *testing.T) {
	r := Default()

	text, err := r.Extract(context.Background(), []byte("upper"), "NOTES.TXT")
	require.NoError(t, err)
	assert.Equal(t, "upper", text)
}

func TestRegistry_Extract_UnsupportedFormat(t *testing.T) {
	r := Default()

	for _, name := range []string{"image.png", "archive.zip", "noextension"} {
		_, err := r.Extract(context.Background(), []byte("data"), name)
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat, name)
	}
}

func TestRegistry_Supported(t *testing.T) {
	r := Default()

	assert.True(t, r.Supported("doc.pdf"))
	assert.True(t, r.Supported("doc.docx"))
	assert.True(t, r.Supported("doc.md"))
	assert.False(t, r.Supported("doc.exe"))
}

func TestRegistry_Extensions_Sorted(t *testing.T) {
	exts := Default().Extensions()

	require.NotEmpty(t, exts)
	for i := 1; i < len(exts); i++ {
		assert.Less(t, exts[i-1], exts[i])
	}
	assert.Contains(t, exts, ".txt")
	assert.Contains(t, exts, ".pdf")
}
