// Package types contains the request, response and wire types for the
// LinkedIn REST API.
package types

// Visibility controls who can see a created share.
type Visibility string

const (
	// VisibilityPublic makes the share visible to anyone. This is the
	// default when a ShareRequest leaves Visibility empty.
	VisibilityPublic Visibility = "PUBLIC"
	// VisibilityConnections restricts the share to 1st-degree connections.
	VisibilityConnections Visibility = "CONNECTIONS"
)

// Media categories for the specificContent block of a share.
const (
	MediaCategoryNone    = "NONE"
	MediaCategoryArticle = "ARTICLE"
	MediaCategoryImage   = "IMAGE"
)

// Fixed lifecycle and media states used by the UGC posts endpoint.
const (
	LifecycleStatePublished = "PUBLISHED"
	MediaStatusReady        = "READY"
)

const personURNPrefix = "urn:li:person:"

// PersonURN builds the member URN for a bare member ID.
func PersonURN(id string) string {
	return personURNPrefix + id
}

// ShareRequest is the caller-facing input for creating a share.
// Comment is required. URL and Image select the media variant: a URL produces
// an ARTICLE share, an image asset URN produces an IMAGE share, and neither
// produces a text-only share. If both are set the URL wins.
type ShareRequest struct {
	// Comment is the share commentary text. Required.
	Comment string `validate:"required"`

	// URL of an article to attach. Optional.
	URL string

	// Image is a digital media asset URN returned by the upload
	// registration endpoint. Optional, ignored when URL is set.
	Image string

	// Title and Description annotate the attached media. Optional; when
	// nil the corresponding fields are omitted from the payload entirely.
	Title       *string
	Description *string

	// Visibility of the share. Defaults to VisibilityPublic when empty.
	Visibility Visibility `validate:"omitempty,oneof=PUBLIC CONNECTIONS"`
}

// Text is the API's wrapper object for plain text values.
type Text struct {
	Text string `json:"text"`
}

// Media is a single entry of a share's media sequence. Exactly one of
// OriginalURL (articles) or Media (image asset URN) is set.
type Media struct {
	Status      string `json:"status"`
	OriginalURL string `json:"originalUrl,omitempty"`
	Media       string `json:"media,omitempty"`
	Title       *Text  `json:"title,omitempty"`
	Description *Text  `json:"description,omitempty"`
}

// ShareContent is the namespaced content block of a share payload.
type ShareContent struct {
	ShareCommentary    Text    `json:"shareCommentary"`
	ShareMediaCategory string  `json:"shareMediaCategory"`
	Media              []Media `json:"media,omitempty"`
}

// SpecificContent wraps ShareContent under its namespaced key.
type SpecificContent struct {
	ShareContent ShareContent `json:"com.linkedin.ugc.ShareContent"`
}

// ShareVisibility wraps the visibility value under its namespaced key.
type ShareVisibility struct {
	MemberNetworkVisibility Visibility `json:"com.linkedin.ugc.MemberNetworkVisibility"`
}

// SharePayload is the wire JSON for POST /v2/ugcPosts.
type SharePayload struct {
	Author          string          `json:"author"`
	LifecycleState  string          `json:"lifecycleState"`
	SpecificContent SpecificContent `json:"specificContent"`
	Visibility      ShareVisibility `json:"visibility"`
}

// ServiceRelationship names a party allowed to act on an uploaded asset.
type ServiceRelationship struct {
	RelationshipType string `json:"relationshipType"`
	Identifier       string `json:"identifier"`
}

// RegisterUploadRequest is the inner object of an upload registration.
type RegisterUploadRequest struct {
	Recipes              []string              `json:"recipes"`
	Owner                string                `json:"owner"`
	ServiceRelationships []ServiceRelationship `json:"serviceRelationships"`
}

// RegisterUploadPayload is the wire JSON for POST /v2/assets?action=registerUpload.
type RegisterUploadPayload struct {
	RegisterUploadRequest RegisterUploadRequest `json:"registerUploadRequest"`
}

// Profile is the normalized result of the profile endpoint. FirstName,
// LastName and PictureURL are empty when the response did not carry the
// corresponding localized or image data; that is not an error.
type Profile struct {
	ID         string
	FirstName  string
	LastName   string
	PictureURL string
}

// ShareResult identifies a share created through the UGC posts endpoint.
type ShareResult struct {
	// ID is the URN of the created share (e.g. "urn:li:share:123").
	ID string
}

// UploadRegistration is the normalized result of registering an image
// upload: where to PUT the bytes, and the asset URN to reference in a
// subsequent IMAGE share.
type UploadRegistration struct {
	UploadURL string
	AssetURN  string
}
