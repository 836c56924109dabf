package instagram

import (
	"context"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebResolverRejectsNonInstagramURL(t *testing.T) {
	nop := zerolog.Nop()
	resolver := NewWebResolver(NewClient(0, 1, 0, &nop))

	for _, bad := range []string{
		"https://example.com/p/Cab12Xy/",
		"https://www.instagram.com/someuser/",
		"not a url at all",
	} {
		_, err := resolver.Resolve(context.Background(), bad)
		require.Error(t, err, "url %q", bad)

		var igErr *Error
		require.ErrorAs(t, err, &igErr, "url %q", bad)
		assert.Equal(t, ErrorKindBadInput, igErr.Kind, "url %q", bad)
	}
}

func TestMediaQueryURL(t *testing.T) {
	raw := mediaQueryURL("Cab12Xy")

	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "www.instagram.com", u.Hostname())
	assert.Equal(t, graphQLPath, u.Path)
	assert.Equal(t, mediaQueryHash, u.Query().Get("query_hash"))
	assert.JSONEq(t, `{"shortcode": "Cab12Xy"}`, u.Query().Get("variables"))
}
