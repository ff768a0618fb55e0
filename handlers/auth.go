package handlers

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"devconnect/middleware"
	"devconnect/models"
	"devconnect/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// gravatarURL derives the default avatar from the email, so new users are
// never faceless.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(sum[:]))
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "badrequest", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	// Check if email already exists
	_, err := users.FindByEmail(ctx, req.Email)
	if err == nil {
		fail(c, http.StatusBadRequest, "email", "Email already exists")
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusInternalServerError, "server", "Database error")
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "server", "Failed to hash password")
		return
	}
	hashed := string(hashedPassword)

	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hashed,
		Avatar:       gravatarURL(req.Email),
		CreatedAt:    time.Now().Unix(),
	}

	if err := users.Insert(ctx, &user); err != nil {
		fail(c, http.StatusInternalServerError, "server", "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "badrequest", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	user, err := users.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusUnauthorized, "credentials", "Invalid email or password")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "server", "Database error")
		return
	}

	if user.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)) != nil {
		fail(c, http.StatusUnauthorized, "credentials", "Invalid email or password")
		return
	}

	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &middleware.Claims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(middleware.JWTSecret())
	if err != nil {
		fail(c, http.StatusInternalServerError, "server", "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   "Bearer " + tokenString,
	})
}

// CurrentUser echoes the authenticated identity.
func CurrentUser(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	user, err := users.FindByID(ctx, userID)
	if err != nil {
		fail(c, http.StatusNotFound, "nouser", "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}
