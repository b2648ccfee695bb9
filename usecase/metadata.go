package usecase

import (
	"strings"

	"social-manager/domain/model"
	apperrors "social-manager/pkg/errors"
)

// YouTube hard limits on video metadata.
const (
	maxTitleLength       = 100
	maxDescriptionLength = 5000
	maxTags              = 500
	maxTagLength         = 30
)

// ExtractYouTubeMetadata derives upload metadata from the youtube block of a
// script document, enforcing YouTube's field limits. Uploads default to
// private so nothing goes live without a human flipping it.
func ExtractYouTubeMetadata(doc *model.ScriptDocument) (*model.YouTubeMetadata, error) {
	var target *model.YouTubeTarget
	if doc != nil {
		for _, m := range doc.Media {
			if m.YouTube != nil {
				target = m.YouTube
				break
			}
		}
	}
	if target == nil {
		return nil, apperrors.Validation("no youtube metadata found in script")
	}

	title := strings.TrimSpace(truncate(target.Title, maxTitleLength))
	if title == "" {
		return nil, apperrors.Validation("youtube title is empty")
	}
	if len([]rune(title)) > maxTitleLength {
		return nil, apperrors.Validation("youtube title exceeds 100 characters")
	}

	tags := make([]string, 0, len(target.Hashtags))
	for _, h := range target.Hashtags {
		tag := strings.TrimPrefix(h, "#")
		if tag == "" {
			continue
		}
		if r := []rune(tag); len(r) > maxTagLength {
			tag = string(r[:maxTagLength])
		}
		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}

	return &model.YouTubeMetadata{
		Title:       title,
		Description: strings.TrimSpace(truncate(target.Description, maxDescriptionLength)),
		Tags:        tags,
		// Marked synthetic: every video here is machine-generated.
		PrivacyStatus:           "private",
		MadeForKids:             false,
		SelfDeclaredMadeForKids: false,
		ContainsSyntheticMedia:  true,
		CategoryID:              "22",
	}, nil
}

// truncate caps s at limit runes, ending with "..." when it had to cut.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
