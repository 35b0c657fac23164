package controllers

import (
	"net/http"

	"postboard/app/models"
	"postboard/app/services"
)

// DeletedMessage is returned after a post is deleted.
const DeletedMessage = "게시글이 성공적으로 삭제되었습니다."

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index lists the most recent posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, err)
		return
	}

	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, r, err)
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), &req)
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Update replaces the title and content of a post
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, err)
		return
	}

	var req models.UpdatePostRequest
	if err := decodeBody(r, &req); err != nil {
		sendError(w, r, err)
		return
	}

	post, err := pc.postService.UpdatePost(r.Context(), id, &req)
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, err)
		return
	}

	if err := pc.postService.DeletePost(r.Context(), id); err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"message": DeletedMessage})
}
