package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Resolver turns an Instagram post or reel URL into media metadata.
type Resolver interface {
	Resolve(ctx context.Context, postURL string) (*Media, error)
}

// WebResolver resolves media through the public GraphQL web endpoint. It works
// without credentials; media hidden from logged-out visitors needs a session
// (see SessionResolver).
type WebResolver struct {
	client *Client
}

// NewWebResolver creates an anonymous resolver on top of the given client.
func NewWebResolver(client *Client) *WebResolver {
	return &WebResolver{client: client}
}

func (r *WebResolver) Resolve(ctx context.Context, postURL string) (*Media, error) {
	shortcode := ShortcodeFromURL(postURL)
	if shortcode == "" {
		return nil, &Error{Kind: ErrorKindBadInput, Message: "not an Instagram post or reel URL"}
	}

	var resp mediaResponse
	if err := r.client.GetJSON(ctx, mediaQueryURL(shortcode), &resp); err != nil {
		return nil, fmt.Errorf("fetch media %s: %w", shortcode, err)
	}

	if resp.RequiresToLogin {
		return nil, &Error{Kind: ErrorKindAuth, Message: "Instagram requires login to view this media"}
	}

	if resp.Data.ShortcodeMedia == nil {
		return nil, &Error{Kind: ErrorKindNotFound, Message: "media not found or private"}
	}

	media, err := mediaFromGraphQL(resp.Data.ShortcodeMedia)
	if err != nil {
		return nil, err
	}

	if media.PK == "" {
		media.PK = strconv.FormatUint(PKFromShortcode(shortcode), 10)
	}

	return media, nil
}

func mediaQueryURL(shortcode string) string {
	variables, _ := json.Marshal(map[string]string{"shortcode": shortcode})

	params := url.Values{}
	params.Set("query_hash", mediaQueryHash)
	params.Set("variables", string(variables))

	return baseURL + graphQLPath + "?" + params.Encode()
}
