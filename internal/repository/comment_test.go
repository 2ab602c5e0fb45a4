package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestAuthor(t, db)
	reader := &models.User{Email: "reader@example.com", PasswordHash: "hash", Name: "Reader"}
	require.NoError(t, db.Create(reader).Error)

	post := &models.Post{
		Title:    "A Post",
		Date:     "January 2, 2026",
		Body:     "Body",
		AuthorID: author.ID,
	}
	require.NoError(t, db.Create(post).Error)

	t.Run("Create and GetByID", func(t *testing.T) {
		comment := &models.Comment{
			Text:     "Nice post!",
			AuthorID: reader.ID,
			PostID:   post.ID,
		}
		err := repo.Create(ctx, comment)
		require.NoError(t, err)
		assert.NotZero(t, comment.ID)

		fetched, err := repo.GetByID(ctx, comment.ID)
		require.NoError(t, err)
		assert.Equal(t, "Nice post!", fetched.Text)
		assert.Equal(t, "Reader", fetched.Author.Name)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
	})

	t.Run("ListByPost orders oldest first", func(t *testing.T) {
		other := &models.Post{
			Title:    "Another Post",
			Date:     "January 3, 2026",
			Body:     "Body",
			AuthorID: author.ID,
		}
		require.NoError(t, db.Create(other).Error)

		for _, text := range []string{"one", "two"} {
			require.NoError(t, repo.Create(ctx, &models.Comment{
				Text:     text,
				AuthorID: reader.ID,
				PostID:   other.ID,
			}))
		}

		comments, err := repo.ListByPost(ctx, other.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "one", comments[0].Text)
		assert.Equal(t, "two", comments[1].Text)
		// Comments from the first post must not leak in.
		for _, c := range comments {
			assert.Equal(t, other.ID, c.PostID)
		}
	})
}
