package handlers

import (
	"net/http"
	"time"

	"devconnect/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stores shared across all handler files, injected once at startup.
var users store.UserStore
var profiles store.ProfileStore
var posts store.PostStore

// SetStores wires the persistence layer into the handlers.
func SetStores(u store.UserStore, pr store.ProfileStore, po store.PostStore) {
	users = u
	profiles = pr
	posts = po
}

const storeTimeout = 10 * time.Second

// fail writes the standard error shape: a stable kind in "error" plus a
// human message.
func fail(c *gin.Context, status int, kind, msg string) {
	c.JSON(status, gin.H{"error": kind, "message": msg})
}

// callerID resolves the authenticated user id set by the JWT middleware.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		fail(c, http.StatusUnauthorized, "unauthorized", "Invalid user ID")
		return primitive.NilObjectID, false
	}
	return userID, true
}
