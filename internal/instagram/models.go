package instagram

// MediaType is the kind of media a post resolves to.
type MediaType string

const (
	MediaTypePhoto MediaType = "photo"
	MediaTypeVideo MediaType = "video"
	MediaTypeAlbum MediaType = "album"
)

// MediaItem is a single photo or video. Albums carry one per child.
type MediaItem struct {
	PK           string
	Type         MediaType
	URL          string
	ThumbnailURL string
}

// Media is a resolved Instagram post or reel.
type Media struct {
	PK           string
	Shortcode    string
	Type         MediaType
	URL          string
	ThumbnailURL string
	Caption      string
	Owner        string
	Items        []MediaItem
}

// GraphQL typenames returned by the web media query.
const (
	typenameImage   = "GraphImage"
	typenameVideo   = "GraphVideo"
	typenameSidecar = "GraphSidecar"
)

type mediaResponse struct {
	RequiresToLogin bool      `json:"requires_to_login"`
	Data            mediaData `json:"data"`
	Status          string    `json:"status"`
}

type mediaData struct {
	ShortcodeMedia *shortcodeMedia `json:"shortcode_media"`
}

type shortcodeMedia struct {
	Typename   string       `json:"__typename"`
	ID         string       `json:"id"`
	Shortcode  string       `json:"shortcode"`
	DisplayURL string       `json:"display_url"`
	VideoURL   string       `json:"video_url"`
	IsVideo    bool         `json:"is_video"`
	Owner      mediaOwner   `json:"owner"`
	Caption    captionEdges `json:"edge_media_to_caption"`
	Children   sidecarEdges `json:"edge_sidecar_to_children"`
}

type mediaOwner struct {
	Username string `json:"username"`
}

type captionEdges struct {
	Edges []captionEdge `json:"edges"`
}

type captionEdge struct {
	Node captionNode `json:"node"`
}

type captionNode struct {
	Text string `json:"text"`
}

type sidecarEdges struct {
	Edges []sidecarEdge `json:"edges"`
}

type sidecarEdge struct {
	Node sidecarNode `json:"node"`
}

type sidecarNode struct {
	Typename   string `json:"__typename"`
	ID         string `json:"id"`
	DisplayURL string `json:"display_url"`
	VideoURL   string `json:"video_url"`
	IsVideo    bool   `json:"is_video"`
}

type loginResponse struct {
	Authenticated bool   `json:"authenticated"`
	User          bool   `json:"user"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

func mediaFromGraphQL(sm *shortcodeMedia) (*Media, error) {
	media := &Media{
		PK:           sm.ID,
		Shortcode:    sm.Shortcode,
		ThumbnailURL: sm.DisplayURL,
		Owner:        sm.Owner.Username,
	}

	if len(sm.Caption.Edges) > 0 {
		media.Caption = sm.Caption.Edges[0].Node.Text
	}

	switch sm.Typename {
	case typenameImage:
		media.Type = MediaTypePhoto
		media.URL = sm.DisplayURL
	case typenameVideo:
		media.Type = MediaTypeVideo
		media.URL = sm.VideoURL
	case typenameSidecar:
		media.Type = MediaTypeAlbum

		for _, edge := range sm.Children.Edges {
			item := MediaItem{
				PK:           edge.Node.ID,
				ThumbnailURL: edge.Node.DisplayURL,
			}

			if edge.Node.IsVideo || edge.Node.Typename == typenameVideo {
				item.Type = MediaTypeVideo
				item.URL = edge.Node.VideoURL
			} else {
				item.Type = MediaTypePhoto
				item.URL = edge.Node.DisplayURL
			}

			media.Items = append(media.Items, item)
		}
	default:
		return nil, &Error{
			Kind:    ErrorKindParsing,
			Message: "unsupported media typename: " + sm.Typename,
		}
	}

	return media, nil
}
