package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreatePostRequest
		wantErr bool
		field   string
	}{
		{
			name:    "valid post",
			req:     &CreatePostRequest{Title: "Hello", Content: "World", Author: "kim"},
			wantErr: false,
		},
		{
			name:    "missing title",
			req:     &CreatePostRequest{Content: "World", Author: "kim"},
			wantErr: true,
			field:   "title",
		},
		{
			name:    "missing content",
			req:     &CreatePostRequest{Title: "Hello", Author: "kim"},
			wantErr: true,
			field:   "content",
		},
		{
			name:    "missing author",
			req:     &CreatePostRequest{Title: "Hello", Content: "World"},
			wantErr: true,
			field:   "author",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, []string{"body", tt.field}, verrs[0].Loc)
			assert.Equal(t, "missing", verrs[0].Type)
		})
	}
}

func TestUpdatePostRequestValidation(t *testing.T) {
	t.Run("valid update", func(t *testing.T) {
		req := &UpdatePostRequest{Title: "New", Content: "Body"}
		assert.NoError(t, req.Validate())
	})

	t.Run("empty payload reports both fields", func(t *testing.T) {
		req := &UpdatePostRequest{}
		err := req.Validate()
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
		assert.Contains(t, err.Error(), "body.title")
		assert.Contains(t, err.Error(), "body.content")
	})
}

func TestNewPost(t *testing.T) {
	req := &CreatePostRequest{Title: "T", Content: "C", Author: "A"}
	post := req.NewPost()

	assert.Zero(t, post.ID)
	assert.True(t, post.CreatedAt.IsZero())
	assert.Equal(t, "T", post.Title)
	assert.Equal(t, "C", post.Content)
	assert.Equal(t, "A", post.Author)
}
