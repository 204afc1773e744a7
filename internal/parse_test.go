package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrs "github.com/dsandstrom/linkedin/pkg/errors"
)

const profileFixture = `{
	"id": "a1b2c3",
	"firstName": {
		"localized": {"en_US": "Malcolm"},
		"preferredLocale": {"country": "US", "language": "en"}
	},
	"lastName": {
		"localized": {"en_US": "Reynolds"},
		"preferredLocale": {"country": "US", "language": "en"}
	},
	"profilePicture": {
		"displayImage~": {
			"elements": [
				{"identifiers": [{"identifier": "https://media.example.com/100x100"}]},
				{"identifiers": [{"identifier": "https://media.example.com/200x200"}]},
				{"identifiers": [{"identifier": "https://media.example.com/400x400"}]},
				{"identifiers": [{"identifier": "https://media.example.com/800x800"}]}
			]
		}
	}
}`

func TestParseProfile_FullResponse(t *testing.T) {
	profile, err := NewParser().ParseProfile([]byte(profileFixture))
	require.NoError(t, err)

	assert.Equal(t, "a1b2c3", profile.ID)
	assert.Equal(t, "Malcolm", profile.FirstName)
	assert.Equal(t, "Reynolds", profile.LastName)
	// Elements run smallest to largest; the LAST one is the picture.
	assert.Equal(t, "https://media.example.com/800x800", profile.PictureURL)
}

func TestParseProfile_MissingLocalizedNames(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no name fields", `{"id": "a1b2c3"}`},
		{"no localized sub-object", `{"id": "a1b2c3", "firstName": {"preferredLocale": {"country": "US", "language": "en"}}}`},
		{"preferred locale not in localized map", `{"id": "a1b2c3", "firstName": {
			"localized": {"fr_FR": "Malcolm"},
			"preferredLocale": {"country": "US", "language": "en"}
		}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := NewParser().ParseProfile([]byte(tt.body))
			require.NoError(t, err, "missing localized data is omission, not an error")
			assert.Equal(t, "a1b2c3", profile.ID)
			assert.Empty(t, profile.FirstName)
		})
	}
}

func TestParseProfile_MissingPictureChain(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no profilePicture", `{"id": "x"}`},
		{"no resolved displayImage", `{"id": "x", "profilePicture": {}}`},
		{"empty elements", `{"id": "x", "profilePicture": {"displayImage~": {"elements": []}}}`},
		{"element without identifiers", `{"id": "x", "profilePicture": {"displayImage~": {"elements": [{"identifiers": []}]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := NewParser().ParseProfile([]byte(tt.body))
			require.NoError(t, err, "a broken picture chain is omission, not an error")
			assert.Empty(t, profile.PictureURL)
		})
	}
}

func TestParseProfile_MalformedJSON(t *testing.T) {
	_, err := NewParser().ParseProfile([]byte(`{"id":`))
	var parseErr *pkgerrs.ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParseEmail(t *testing.T) {
	email, err := NewParser().ParseEmail([]byte(`{"elements":[{"handle~":{"emailAddress":"mal@blue.sun"}}]}`))
	require.NoError(t, err)
	assert.Equal(t, "mal@blue.sun", email)
}

// The email parser is strict where the profile parser is graceful. The two
// behaviors diverge on purpose; existing callers rely on each.
func TestParseEmail_StrictOnShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"elements":`},
		{"no elements key", `{}`},
		{"empty elements", `{"elements":[]}`},
		{"element without handle", `{"elements":[{}]}`},
		{"handle without address", `{"elements":[{"handle~":{}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().ParseEmail([]byte(tt.body))
			var parseErr *pkgerrs.ParseError
			require.True(t, errors.As(err, &parseErr), "expected ParseError, got %v", err)
			assert.Equal(t, "emailAddress", parseErr.Operation)
		})
	}
}

func TestParseShareResult(t *testing.T) {
	result, err := NewParser().ParseShareResult([]byte(`{"id":"urn:li:share:6400"}`))
	require.NoError(t, err)
	assert.Equal(t, "urn:li:share:6400", result.ID)

	_, err = NewParser().ParseShareResult([]byte(`{}`))
	var parseErr *pkgerrs.ParseError
	require.True(t, errors.As(err, &parseErr))
}

const registrationFixture = `{
	"value": {
		"uploadMechanism": {
			"com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest": {
				"headers": {},
				"uploadUrl": "https://api.linkedin.com/mediaUpload/C55/feedshare-uploadedImage/0?ca=vector_feedshare&sig=abc"
			}
		},
		"asset": "urn:li:digitalmediaAsset:C55",
		"mediaArtifact": "urn:li:digitalmediaMediaArtifact:(urn:li:digitalmediaAsset:C55,urn:li:digitalmediaMediaArtifactClass:uploadedImage)"
	}
}`

func TestParseUploadRegistration(t *testing.T) {
	reg, err := NewParser().ParseUploadRegistration([]byte(registrationFixture))
	require.NoError(t, err)
	assert.Equal(t, "https://api.linkedin.com/mediaUpload/C55/feedshare-uploadedImage/0?ca=vector_feedshare&sig=abc", reg.UploadURL)
	assert.Equal(t, "urn:li:digitalmediaAsset:C55", reg.AssetURN)
}

func TestParseUploadRegistration_MissingPieces(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty value", `{"value":{}}`},
		{"wrong mechanism key", `{"value":{"uploadMechanism":{"something.else":{"uploadUrl":"https://x"}},"asset":"urn:li:digitalmediaAsset:C55"}}`},
		{"no asset", `{"value":{"uploadMechanism":{"com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest":{"uploadUrl":"https://x"}}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().ParseUploadRegistration([]byte(tt.body))
			var parseErr *pkgerrs.ParseError
			require.True(t, errors.As(err, &parseErr), "expected ParseError, got %v", err)
		})
	}
}
