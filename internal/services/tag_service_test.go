package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Go 1.22", "go-1-22"},
		{"  spaced  out  ", "spaced-out"},
		{"C++ & Rust!", "c-rust"},
		{"UPPER", "upper"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestTagService(t *testing.T) {
	env := newTestEnv(t)
	tagRepo := repositories.NewTagRepository(env.db)
	svc := NewTagService(tagRepo)
	creator := createTestUser(t, env.db, "alice")

	t.Run("create derives the slug from the text", func(t *testing.T) {
		tag, err := svc.Create(creator.ID, &dto.CreateTagRequest{Text: "Web Development"})
		require.NoError(t, err)
		assert.Equal(t, "Web Development", tag.Text)
		assert.Equal(t, "web-development", tag.Url)
	})

	t.Run("duplicate slug is rejected", func(t *testing.T) {
		_, err := svc.Create(creator.ID, &dto.CreateTagRequest{Text: "web development"})
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, appErr.HTTPCode)
	})

	t.Run("text without letters or digits is rejected", func(t *testing.T) {
		_, err := svc.Create(creator.ID, &dto.CreateTagRequest{Text: "!!!"})
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("lookup by slug", func(t *testing.T) {
		tag, err := svc.GetBySlug("web-development")
		require.NoError(t, err)
		assert.Equal(t, "Web Development", tag.Text)

		_, err = svc.GetBySlug("no-such-tag")
		require.Error(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		tag, err := svc.Create(creator.ID, &dto.CreateTagRequest{Text: "Throwaway"})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(tag.ID))

		_, err = svc.GetBySlug("throwaway")
		require.Error(t, err)
	})

	t.Run("paginated list with counts", func(t *testing.T) {
		list, err := svc.List(dto.ListTagsQuery{Page: 1})
		require.NoError(t, err)
		require.Len(t, list.Tags, 1)
		assert.Zero(t, list.Tags[0].PostCount)

		newest, err := svc.List(dto.ListTagsQuery{Sort: "newest", Page: 1})
		require.NoError(t, err)
		assert.Len(t, newest.Tags, 1)
	})

	t.Run("list all is ordered by text", func(t *testing.T) {
		_, err := svc.Create(creator.ID, &dto.CreateTagRequest{Text: "Algorithms"})
		require.NoError(t, err)

		tags, err := svc.ListAll()
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "Algorithms", tags[0].Text)
		assert.Equal(t, "Web Development", tags[1].Text)
	})
}
