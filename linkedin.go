// Package linkedin provides a Go client for LinkedIn's versioned REST API:
// profile retrieval, email retrieval, content shares and image-asset uploads.
//
// OAuth token acquisition is out of scope; callers supply an access token
// (or their own TokenProvider) and the client handles request shaping,
// header and path-scoping rules, and the mapping of API error responses
// into typed errors.
//
// Basic usage:
//
//	client, err := linkedin.NewClient(&linkedin.Config{
//		AccessToken: "your-access-token",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	profile, err := client.Profile(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
package linkedin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dsandstrom/linkedin/internal"
	pkgerrs "github.com/dsandstrom/linkedin/pkg/errors"
	"github.com/dsandstrom/linkedin/pkg/types"
)

const (
	// DefaultBaseURL is the default LinkedIn API base URL. Relative
	// request paths are scoped under its /v2 namespace.
	DefaultBaseURL = "https://api.linkedin.com/"
	// DefaultUserAgent is the default user agent string.
	DefaultUserAgent = "go-linkedin/0.1"
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultProfileProjection selects the profile fields the Profile
	// call requests, including the playable display-image streams the
	// picture URL is taken from.
	DefaultProfileProjection = "(id,firstName,lastName,profilePicture(displayImage~:playableStreams))"
	// DefaultEmailProjection selects the resolved handles the
	// EmailAddress call reads the address from.
	DefaultEmailProjection = "(elements*(handle~))"
)

// RateLimitConfig controls how requests are throttled before reaching
// LinkedIn.
type RateLimitConfig struct {
	// RequestsPerMinute caps steady-state throughput. Defaults to 60 if zero.
	RequestsPerMinute float64
	// Burst allows short spikes above the steady-state rate. Defaults to 10 if zero.
	Burst int
}

// TokenProvider defines the interface for retrieving an access token.
// Implementations own caching and renewal; the client never refreshes or
// mutates the credential.
type TokenProvider interface {
	// GetToken returns a valid access token for making authenticated requests.
	GetToken(ctx context.Context) (string, error)
}

// staticTokenProvider serves a fixed token. Used when Config.AccessToken is set.
type staticTokenProvider string

func (t staticTokenProvider) GetToken(context.Context) (string, error) {
	return string(t), nil
}

// Config holds the configuration for the LinkedIn client.
//
// Either AccessToken or TokenProvider is required. Everything else is
// optional and defaulted by NewClient.
type Config struct {
	// AccessToken is a bearer token obtained through LinkedIn's OAuth
	// flow. Ignored when TokenProvider is set.
	AccessToken string

	// TokenProvider supplies tokens per request. Provide one when tokens
	// are refreshed externally.
	TokenProvider TokenProvider

	// BaseURL for the LinkedIn API.
	// Defaults to DefaultBaseURL if not specified.
	BaseURL string

	// UserAgent string to identify your application.
	UserAgent string

	// HTTPClient to use for requests.
	// Defaults to a client with DefaultTimeout if not specified.
	HTTPClient *http.Client

	// Logger for structured diagnostics.
	// Optional. If provided, debug information will be logged during API calls.
	Logger *slog.Logger

	// RateLimit throttles outgoing requests. Defaults apply when nil.
	RateLimit *RateLimitConfig

	// ProfileProjection overrides the field projection used by Profile.
	// Defaults to DefaultProfileProjection.
	ProfileProjection string

	// EmailProjection overrides the field projection used by EmailAddress.
	// Defaults to DefaultEmailProjection.
	EmailProjection string
}

// Client is the LinkedIn API client. All methods issue exactly one network
// round trip and are safe for concurrent use.
type Client struct {
	client   *internal.Client
	parser   *internal.Parser
	validate *validator.Validate
	config   *Config
}

// NewClient creates a new LinkedIn client with the provided configuration.
// It validates the configuration, applies defaults and wires the
// authenticated dispatcher. No network call is made here.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, &pkgerrs.UsageError{Field: "config", Message: "config cannot be nil"}
	}

	auth := config.TokenProvider
	if auth == nil {
		if config.AccessToken == "" {
			return nil, &pkgerrs.UsageError{Field: "config", Message: "AccessToken or TokenProvider is required"}
		}
		auth = staticTokenProvider(config.AccessToken)
	}

	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if config.ProfileProjection == "" {
		config.ProfileProjection = DefaultProfileProjection
	}
	if config.EmailProjection == "" {
		config.EmailProjection = DefaultEmailProjection
	}

	var rateCfg *internal.RateLimitConfig
	if config.RateLimit != nil {
		rateCfg = &internal.RateLimitConfig{
			RequestsPerMinute: config.RateLimit.RequestsPerMinute,
			Burst:             config.RateLimit.Burst,
		}
	}

	client, err := internal.NewClient(
		config.HTTPClient,
		auth,
		config.BaseURL,
		config.UserAgent,
		rateCfg,
		config.Logger,
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		client:   client,
		parser:   internal.NewParser(),
		validate: validator.New(),
		config:   config,
	}, nil
}

// Profile returns the authenticated member's profile. Localized name fields
// and the picture URL are left empty when the API response does not carry
// them; that is not an error.
func (c *Client) Profile(ctx context.Context) (*types.Profile, error) {
	body, err := c.client.Get(ctx, "me?projection="+c.config.ProfileProjection, nil)
	if err != nil {
		return nil, err
	}

	return c.parser.ParseProfile(body)
}

// EmailAddress returns the authenticated member's primary email address.
// Unlike Profile, a response that does not match the expected shape is an
// error (*pkgerrs.ParseError).
func (c *Client) EmailAddress(ctx context.Context) (string, error) {
	body, err := c.client.Get(ctx, "emailAddress?q=members&projection="+c.config.EmailProjection, nil)
	if err != nil {
		return "", err
	}

	return c.parser.ParseEmail(body)
}

// AddShare creates a share on behalf of the member identified by authorID
// (the bare member ID, not a full URN). The share must carry a comment; a
// URL or image asset URN selects the media variant, with the URL taking
// precedence when both are present.
//
// Validation failures surface as *pkgerrs.UsageError before any network
// call is made.
func (c *Client) AddShare(ctx context.Context, authorID string, share *types.ShareRequest) (*types.ShareResult, error) {
	if err := c.validateAuthorID(authorID); err != nil {
		return nil, err
	}
	if share == nil {
		return nil, &pkgerrs.UsageError{Field: "share", Message: "share cannot be nil"}
	}
	if err := c.validate.Struct(share); err != nil {
		return nil, usageErrorFor(err)
	}

	payload := internal.BuildSharePayload(authorID, share)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &pkgerrs.ClientError{Operation: "AddShare", Err: err}
	}

	resp, err := c.client.Post(ctx, "ugcPosts", body, nil, false)
	if err != nil {
		return nil, err
	}

	return c.parser.ParseShareResult(resp)
}

// RegisterImageUpload registers an image upload for the member identified by
// authorID and returns the pre-signed upload URL together with the asset URN
// to reference from a subsequent IMAGE share.
func (c *Client) RegisterImageUpload(ctx context.Context, authorID string) (*types.UploadRegistration, error) {
	if err := c.validateAuthorID(authorID); err != nil {
		return nil, err
	}

	payload := internal.BuildImageUploadPayload(authorID)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &pkgerrs.ClientError{Operation: "RegisterImageUpload", Err: err}
	}

	resp, err := c.client.Post(ctx, "assets?action=registerUpload", body, nil, false)
	if err != nil {
		return nil, err
	}

	return c.parser.ParseUploadRegistration(resp)
}

// UploadImage posts raw image bytes to a pre-signed upload URL returned by
// RegisterImageUpload. The URL is already fully qualified and outside the
// /v2 namespace, so it is used verbatim, with an octet-stream content type.
func (c *Client) UploadImage(ctx context.Context, uploadURL string, data []byte) error {
	if uploadURL == "" {
		return &pkgerrs.UsageError{Field: "uploadURL", Message: "upload URL cannot be empty"}
	}

	headers := map[string]string{
		internal.HeaderContentType: internal.ContentTypeOctet,
	}
	_, err := c.client.Post(ctx, uploadURL, data, headers, true)
	return err
}

func (c *Client) validateAuthorID(authorID string) error {
	if strings.TrimSpace(authorID) == "" {
		return &pkgerrs.UsageError{Field: "authorID", Message: "author ID cannot be empty"}
	}
	return nil
}

// usageErrorFor converts a validator error into the client's usage error,
// naming the first offending field.
func usageErrorFor(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &pkgerrs.UsageError{
			Field:   "share." + fe.Field(),
			Message: "failed validation on '" + fe.Tag() + "'",
		}
	}
	return &pkgerrs.UsageError{Field: "share", Message: err.Error()}
}
