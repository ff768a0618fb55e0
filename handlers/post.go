package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"devconnect/models"
	"devconnect/store"
	"devconnect/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetPosts returns every post, newest first. Store failures keep the
// original 404 contract instead of surfacing a 500.
func GetPosts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	all, err := posts.FindAll(ctx)
	if err != nil {
		log.Printf("GetPosts error: %v", err)
		fail(c, http.StatusNotFound, "nopostfound", "No posts found")
		return
	}
	if all == nil {
		all = []models.Post{}
	}

	c.JSON(http.StatusOK, all)
}

func GetPost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "nopostfound", "No post found with that ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	post, err := posts.FindByID(ctx, postID)
	if err != nil {
		fail(c, http.StatusNotFound, "nopostfound", "No post found with that ID")
		return
	}

	c.JSON(http.StatusOK, post)
}

func CreatePost(c *gin.Context) {
	var req validation.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "badrequest", err.Error())
		return
	}

	if errs, ok := validation.ValidatePostInput(req); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	post := models.Post{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		Text:     req.Text,
		Name:     req.Name,
		Avatar:   req.Avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
		Date:     time.Now().Unix(),
	}

	if err := posts.Insert(ctx, &post); err != nil {
		log.Printf("CreatePost error: %v", err)
		fail(c, http.StatusInternalServerError, "server", "Failed to create post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost removes the caller's post. The delete is filtered on both id
// and owner, so another user's post looks exactly like a missing one.
func DeletePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "nopost", "No post found with that ID")
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := posts.DeleteOwned(ctx, postID, userID); err != nil {
		fail(c, http.StatusNotFound, "nopost", "No post found with that ID")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func LikePost(c *gin.Context) {
	post, userID, ok := loadPostForCaller(c)
	if !ok {
		return
	}

	if post.LikeIndex(userID) >= 0 {
		fail(c, http.StatusBadRequest, "alreadyliked", "User already liked this post")
		return
	}

	// Prepend the like and write the whole post back
	post.Likes = append([]models.Like{{UserID: userID}}, post.Likes...)

	savePost(c, post)
}

func UnlikePost(c *gin.Context) {
	post, userID, ok := loadPostForCaller(c)
	if !ok {
		return
	}

	idx := post.LikeIndex(userID)
	if idx < 0 {
		fail(c, http.StatusBadRequest, "notliked", "You have not yet liked this post")
		return
	}

	post.Likes = append(post.Likes[:idx], post.Likes[idx+1:]...)

	savePost(c, post)
}

func AddComment(c *gin.Context) {
	var req validation.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "badrequest", err.Error())
		return
	}

	if errs, ok := validation.ValidatePostInput(req); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	post, userID, ok := loadPostForCaller(c)
	if !ok {
		return
	}

	comment := models.Comment{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Text:   req.Text,
		Name:   req.Name,
		Avatar: req.Avatar,
		Date:   time.Now().Unix(),
	}

	post.Comments = append([]models.Comment{comment}, post.Comments...)

	savePost(c, post)
}

// RemoveComment deletes one comment by id. Any authenticated user may do
// this; there is deliberately no commenter-ownership check.
func RemoveComment(c *gin.Context) {
	commentID, err := primitive.ObjectIDFromHex(c.Param("comment_id"))
	if err != nil {
		fail(c, http.StatusNotFound, "commentnotexists", "Comment does not exist")
		return
	}

	post, _, ok := loadPostForCaller(c)
	if !ok {
		return
	}

	idx := post.CommentIndex(commentID)
	if idx < 0 {
		fail(c, http.StatusNotFound, "commentnotexists", "Comment does not exist")
		return
	}

	post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)

	savePost(c, post)
}

// loadPostForCaller resolves the authenticated user and the :id post, or
// writes the error response and reports false.
func loadPostForCaller(c *gin.Context) (*models.Post, primitive.ObjectID, bool) {
	userID, ok := callerID(c)
	if !ok {
		return nil, primitive.NilObjectID, false
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "nopost", "No post found with that ID")
		return nil, primitive.NilObjectID, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	post, err := posts.FindByID(ctx, postID)
	if err != nil {
		fail(c, http.StatusNotFound, "nopost", "No post found with that ID")
		return nil, primitive.NilObjectID, false
	}

	return post, userID, true
}

func savePost(c *gin.Context, post *models.Post) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := posts.Replace(ctx, post); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "nopost", "No post found with that ID")
			return
		}
		log.Printf("savePost error: %v", err)
		fail(c, http.StatusInternalServerError, "server", "Failed to update post")
		return
	}

	c.JSON(http.StatusOK, post)
}
