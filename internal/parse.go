package internal

import (
	"encoding/json"
	"fmt"

	pkgerrs "github.com/dsandstrom/linkedin/pkg/errors"
	"github.com/dsandstrom/linkedin/pkg/types"
)

// mediaUploadMechanismKey is the namespaced key under which the registration
// response carries the pre-signed upload request.
const mediaUploadMechanismKey = "com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"

// Parser handles parsing of LinkedIn API responses.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// localizedField is the API's shape for locale-keyed values: the actual
// strings live under "localized", keyed by "{language}_{country}" taken from
// the sibling preferredLocale object.
type localizedField struct {
	Localized       map[string]string `json:"localized"`
	PreferredLocale struct {
		Language string `json:"language"`
		Country  string `json:"country"`
	} `json:"preferredLocale"`
}

// value resolves the preferred-locale entry, or "" when the localized data
// is missing.
func (f *localizedField) value() string {
	if f == nil || f.Localized == nil {
		return ""
	}
	key := f.PreferredLocale.Language + "_" + f.PreferredLocale.Country
	return f.Localized[key]
}

type profileEnvelope struct {
	ID             string          `json:"id"`
	FirstName      *localizedField `json:"firstName"`
	LastName       *localizedField `json:"lastName"`
	ProfilePicture *struct {
		DisplayImage *struct {
			Elements []struct {
				Identifiers []struct {
					Identifier string `json:"identifier"`
				} `json:"identifiers"`
			} `json:"elements"`
		} `json:"displayImage~"`
	} `json:"profilePicture"`
}

// ParseProfile extracts a normalized Profile from the /me response.
//
// Missing localized names and missing display-image data are omitted, not
// errors. When picture elements are present the LAST one is selected; the
// elements are ordered smallest to largest rendition and callers want the
// biggest available image.
func (p *Parser) ParseProfile(data []byte) (*types.Profile, error) {
	var envelope profileEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &pkgerrs.ParseError{Operation: "profile", Err: err}
	}

	profile := &types.Profile{
		ID:        envelope.ID,
		FirstName: envelope.FirstName.value(),
		LastName:  envelope.LastName.value(),
	}

	if pic := envelope.ProfilePicture; pic != nil && pic.DisplayImage != nil && len(pic.DisplayImage.Elements) > 0 {
		last := pic.DisplayImage.Elements[len(pic.DisplayImage.Elements)-1]
		if len(last.Identifiers) > 0 {
			profile.PictureURL = last.Identifiers[0].Identifier
		}
	}

	return profile, nil
}

type emailEnvelope struct {
	Elements []struct {
		// RawMessage so that an absent handle~ is distinguishable from
		// an empty one.
		Handle json.RawMessage `json:"handle~"`
	} `json:"elements"`
}

// ParseEmail extracts the address from the emailAddress response. Unlike
// ParseProfile there is no graceful omission here: any shape mismatch is an
// error. Unifying the two would change caller-visible behavior.
func (p *Parser) ParseEmail(data []byte) (string, error) {
	var envelope emailEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", &pkgerrs.ParseError{Operation: "emailAddress", Err: err}
	}
	if len(envelope.Elements) == 0 {
		return "", &pkgerrs.ParseError{Operation: "emailAddress", Message: "response has no elements"}
	}
	if len(envelope.Elements[0].Handle) == 0 {
		return "", &pkgerrs.ParseError{Operation: "emailAddress", Message: "response element has no resolved handle"}
	}

	var handle struct {
		EmailAddress string `json:"emailAddress"`
	}
	if err := json.Unmarshal(envelope.Elements[0].Handle, &handle); err != nil {
		return "", &pkgerrs.ParseError{Operation: "emailAddress", Err: err}
	}
	if handle.EmailAddress == "" {
		return "", &pkgerrs.ParseError{Operation: "emailAddress", Message: "handle has no emailAddress"}
	}

	return handle.EmailAddress, nil
}

// ParseShareResult extracts the created share's URN from a ugcPosts response.
func (p *Parser) ParseShareResult(data []byte) (*types.ShareResult, error) {
	var envelope struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &pkgerrs.ParseError{Operation: "addShare", Err: err}
	}
	if envelope.ID == "" {
		return nil, &pkgerrs.ParseError{Operation: "addShare", Message: "response has no id"}
	}
	return &types.ShareResult{ID: envelope.ID}, nil
}

// ParseUploadRegistration extracts the pre-signed upload URL and the asset
// URN from an assets registration response. A registration without either is
// unusable, so both are required.
func (p *Parser) ParseUploadRegistration(data []byte) (*types.UploadRegistration, error) {
	var envelope struct {
		Value struct {
			UploadMechanism map[string]struct {
				UploadURL string `json:"uploadUrl"`
			} `json:"uploadMechanism"`
			Asset string `json:"asset"`
		} `json:"value"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &pkgerrs.ParseError{Operation: "registerImageUpload", Err: err}
	}

	mechanism, ok := envelope.Value.UploadMechanism[mediaUploadMechanismKey]
	if !ok || mechanism.UploadURL == "" {
		return nil, &pkgerrs.ParseError{
			Operation: "registerImageUpload",
			Message:   fmt.Sprintf("response has no %s uploadUrl", mediaUploadMechanismKey),
		}
	}
	if envelope.Value.Asset == "" {
		return nil, &pkgerrs.ParseError{Operation: "registerImageUpload", Message: "response has no asset"}
	}

	return &types.UploadRegistration{
		UploadURL: mechanism.UploadURL,
		AssetURN:  envelope.Value.Asset,
	}, nil
}
