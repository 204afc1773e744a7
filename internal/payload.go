package internal

import (
	"github.com/dsandstrom/linkedin/pkg/types"
)

const (
	feedshareImageRecipe = "urn:li:digitalmediaRecipe:feedshare-image"
	ugcIdentifier        = "urn:li:userGeneratedContent"
	ownerRelationship    = "OWNER"
)

// BuildSharePayload turns a validated ShareRequest into the exact nested
// JSON structure the UGC posts endpoint expects. Callers are responsible for
// validating the input first.
//
// Media variant selection, in precedence order: a URL produces an ARTICLE
// share, otherwise an image asset URN produces an IMAGE share, otherwise
// the share is text-only with no media field at all. The URL branch is
// checked first, so a request carrying both yields the ARTICLE variant.
func BuildSharePayload(authorID string, share *types.ShareRequest) *types.SharePayload {
	visibility := share.Visibility
	if visibility == "" {
		visibility = types.VisibilityPublic
	}

	content := types.ShareContent{
		ShareCommentary:    types.Text{Text: share.Comment},
		ShareMediaCategory: types.MediaCategoryNone,
	}

	switch {
	case share.URL != "":
		content.ShareMediaCategory = types.MediaCategoryArticle
		content.Media = []types.Media{annotateMedia(types.Media{
			Status:      types.MediaStatusReady,
			OriginalURL: share.URL,
		}, share)}
	case share.Image != "":
		content.ShareMediaCategory = types.MediaCategoryImage
		content.Media = []types.Media{annotateMedia(types.Media{
			Status: types.MediaStatusReady,
			Media:  share.Image,
		}, share)}
	}

	return &types.SharePayload{
		Author:          types.PersonURN(authorID),
		LifecycleState:  types.LifecycleStatePublished,
		SpecificContent: types.SpecificContent{ShareContent: content},
		Visibility:      types.ShareVisibility{MemberNetworkVisibility: visibility},
	}
}

// annotateMedia attaches title and description only when the caller supplied
// them. Absent fields are omitted from the JSON, never serialized as null.
func annotateMedia(m types.Media, share *types.ShareRequest) types.Media {
	if share.Title != nil {
		m.Title = &types.Text{Text: *share.Title}
	}
	if share.Description != nil {
		m.Description = &types.Text{Text: *share.Description}
	}
	return m
}

// BuildImageUploadPayload builds the fixed-shape registration request for an
// image destined for a feed share. Nothing about it varies per call except
// the owning member.
func BuildImageUploadPayload(authorID string) *types.RegisterUploadPayload {
	return &types.RegisterUploadPayload{
		RegisterUploadRequest: types.RegisterUploadRequest{
			Recipes: []string{feedshareImageRecipe},
			Owner:   types.PersonURN(authorID),
			ServiceRelationships: []types.ServiceRelationship{
				{
					RelationshipType: ownerRelationship,
					Identifier:       ugcIdentifier,
				},
			},
		},
	}
}
