package instagram

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const photoPayload = `{
	"data": {
		"shortcode_media": {
			"__typename": "GraphImage",
			"id": "3112233445566778899",
			"shortcode": "Cab12Xy",
			"display_url": "https://cdn.example/photo.jpg",
			"is_video": false,
			"owner": {"username": "someuser"},
			"edge_media_to_caption": {"edges": [{"node": {"text": "sunset #beach @friend"}}]}
		}
	},
	"status": "ok"
}`

const videoPayload = `{
	"data": {
		"shortcode_media": {
			"__typename": "GraphVideo",
			"id": "3112233445566778900",
			"shortcode": "Cab12Xz",
			"display_url": "https://cdn.example/thumb.jpg",
			"video_url": "https://cdn.example/video.mp4",
			"is_video": true,
			"owner": {"username": "someuser"},
			"edge_media_to_caption": {"edges": []}
		}
	},
	"status": "ok"
}`

const albumPayload = `{
	"data": {
		"shortcode_media": {
			"__typename": "GraphSidecar",
			"id": "3112233445566778901",
			"shortcode": "Cab12X0",
			"display_url": "https://cdn.example/cover.jpg",
			"owner": {"username": "someuser"},
			"edge_media_to_caption": {"edges": [{"node": {"text": "trip"}}]},
			"edge_sidecar_to_children": {"edges": [
				{"node": {"__typename": "GraphImage", "id": "1", "display_url": "https://cdn.example/1.jpg", "is_video": false}},
				{"node": {"__typename": "GraphVideo", "id": "2", "display_url": "https://cdn.example/2.jpg", "video_url": "https://cdn.example/2.mp4", "is_video": true}}
			]}
		}
	},
	"status": "ok"
}`

func decodeMedia(t *testing.T, payload string) *shortcodeMedia {
	t.Helper()

	var resp mediaResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	require.NotNil(t, resp.Data.ShortcodeMedia)

	return resp.Data.ShortcodeMedia
}

func TestMediaFromGraphQLPhoto(t *testing.T) {
	media, err := mediaFromGraphQL(decodeMedia(t, photoPayload))
	require.NoError(t, err)

	assert.Equal(t, MediaTypePhoto, media.Type)
	assert.Equal(t, "3112233445566778899", media.PK)
	assert.Equal(t, "Cab12Xy", media.Shortcode)
	assert.Equal(t, "https://cdn.example/photo.jpg", media.URL)
	assert.Equal(t, "someuser", media.Owner)
	assert.Equal(t, "sunset #beach @friend", media.Caption)
	assert.Empty(t, media.Items)
}

func TestMediaFromGraphQLVideo(t *testing.T) {
	media, err := mediaFromGraphQL(decodeMedia(t, videoPayload))
	require.NoError(t, err)

	assert.Equal(t, MediaTypeVideo, media.Type)
	assert.Equal(t, "https://cdn.example/video.mp4", media.URL)
	assert.Equal(t, "https://cdn.example/thumb.jpg", media.ThumbnailURL)
	assert.Empty(t, media.Caption)
}

func TestMediaFromGraphQLAlbum(t *testing.T) {
	media, err := mediaFromGraphQL(decodeMedia(t, albumPayload))
	require.NoError(t, err)

	assert.Equal(t, MediaTypeAlbum, media.Type)
	require.Len(t, media.Items, 2)

	assert.Equal(t, MediaTypePhoto, media.Items[0].Type)
	assert.Equal(t, "https://cdn.example/1.jpg", media.Items[0].URL)

	assert.Equal(t, MediaTypeVideo, media.Items[1].Type)
	assert.Equal(t, "https://cdn.example/2.mp4", media.Items[1].URL)
}

func TestMediaFromGraphQLUnknownTypename(t *testing.T) {
	_, err := mediaFromGraphQL(&shortcodeMedia{Typename: "GraphStory"})
	require.Error(t, err)

	var igErr *Error
	require.ErrorAs(t, err, &igErr)
	assert.Equal(t, ErrorKindParsing, igErr.Kind)
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code int
		kind ErrorKind
	}{
		{http.StatusUnauthorized, ErrorKindAuth},
		{http.StatusForbidden, ErrorKindAuth},
		{http.StatusNotFound, ErrorKindNotFound},
		{http.StatusTooManyRequests, ErrorKindRateLimit},
		{http.StatusInternalServerError, ErrorKindServerError},
		{http.StatusBadGateway, ErrorKindServerError},
		{http.StatusBadRequest, ErrorKindUnknown},
	}

	for _, tt := range tests {
		err := checkStatus(tt.code)
		require.Error(t, err, "status %d", tt.code)

		var igErr *Error
		require.ErrorAs(t, err, &igErr)
		assert.Equal(t, tt.kind, igErr.Kind, "status %d", tt.code)
	}

	assert.NoError(t, checkStatus(http.StatusOK))
}

func TestErrorRetryable(t *testing.T) {
	assert.True(t, (&Error{Kind: ErrorKindNetwork}).Retryable())
	assert.True(t, (&Error{Kind: ErrorKindServerError}).Retryable())
	assert.True(t, (&Error{Kind: ErrorKindRateLimit}).Retryable())
	assert.False(t, (&Error{Kind: ErrorKindAuth}).Retryable())
	assert.False(t, (&Error{Kind: ErrorKindNotFound}).Retryable())
}
