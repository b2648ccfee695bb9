package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-manager/domain/model"
	apperrors "social-manager/pkg/errors"
	"social-manager/usecase"
)

func docWithYouTube(target *model.YouTubeTarget) *model.ScriptDocument {
	return &model.ScriptDocument{
		Title:  "internal working title",
		Scenes: []model.Scene{{Image: "a.png", Voiceover: "hello"}},
		Media:  []model.MediaTarget{{YouTube: target}},
	}
}

func TestExtractYouTubeMetadata_Defaults(t *testing.T) {
	meta, err := usecase.ExtractYouTubeMetadata(docWithYouTube(&model.YouTubeTarget{
		Title:       "Morning Routine",
		Description: "A calm start to the day.",
		Hashtags:    []string{"#morning", "routine", ""},
	}))
	require.NoError(t, err)

	assert.Equal(t, "Morning Routine", meta.Title)
	assert.Equal(t, "A calm start to the day.", meta.Description)
	assert.Equal(t, []string{"morning", "routine"}, meta.Tags)
	assert.Equal(t, "private", meta.PrivacyStatus)
	assert.False(t, meta.MadeForKids)
	assert.False(t, meta.SelfDeclaredMadeForKids)
	assert.True(t, meta.ContainsSyntheticMedia)
	assert.Equal(t, "22", meta.CategoryID)
}

func TestExtractYouTubeMetadata_TruncatesLongTitle(t *testing.T) {
	long := strings.Repeat("a", 150)
	meta, err := usecase.ExtractYouTubeMetadata(docWithYouTube(&model.YouTubeTarget{Title: long}))
	require.NoError(t, err)

	assert.Len(t, meta.Title, 100)
	assert.True(t, strings.HasSuffix(meta.Title, "..."))
	assert.Equal(t, strings.Repeat("a", 97), strings.TrimSuffix(meta.Title, "..."))
}

func TestExtractYouTubeMetadata_ExactLimitTitleUntouched(t *testing.T) {
	exact := strings.Repeat("b", 100)
	meta, err := usecase.ExtractYouTubeMetadata(docWithYouTube(&model.YouTubeTarget{Title: exact}))
	require.NoError(t, err)
	assert.Equal(t, exact, meta.Title)
}

// TestExtractYouTubeMetadata_TitleNeverOverLimit sweeps title lengths around
// the cap, including multi-byte runes, and checks the result always fits.
func TestExtractYouTubeMetadata_TitleNeverOverLimit(t *testing.T) {
	for _, length := range []int{99, 100, 101, 103, 250} {
		for _, glyph := range []string{"a", "日"} {
			title := strings.Repeat(glyph, length)
			meta, err := usecase.ExtractYouTubeMetadata(docWithYouTube(&model.YouTubeTarget{Title: title}))
			require.NoError(t, err)
			assert.LessOrEqual(t, len([]rune(meta.Title)), 100)
		}
	}
}

func TestExtractYouTubeMetadata_TruncatesDescriptionAndTags(t *testing.T) {
	meta, err := usecase.ExtractYouTubeMetadata(docWithYouTube(&model.YouTubeTarget{
		Title:       "ok",
		Description: strings.Repeat("d", 6000),
		Hashtags:    []string{"#" + strings.Repeat("t", 40)},
	}))
	require.NoError(t, err)

	assert.Len(t, meta.Description, 5000)
	assert.True(t, strings.HasSuffix(meta.Description, "..."))
	require.Len(t, meta.Tags, 1)
	assert.Len(t, meta.Tags[0], 30)
}

func TestExtractYouTubeMetadata_NoYouTubeBlock(t *testing.T) {
	meta, err := usecase.ExtractYouTubeMetadata(&model.ScriptDocument{Title: "no media"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, meta)
}

func TestExtractYouTubeMetadata_EmptyTitle(t *testing.T) {
	meta, err := usecase.ExtractYouTubeMetadata(docWithYouTube(&model.YouTubeTarget{
		Title:       "   ",
		Description: "has a description but no title",
	}))
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, meta)
}
