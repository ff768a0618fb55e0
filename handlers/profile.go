package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"devconnect/models"
	"devconnect/store"
	"devconnect/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// withUser resolves the owning user's name and avatar into the response,
// the way the original API populated the user reference.
func withUser(ctx context.Context, p models.Profile) models.ProfileResponse {
	resp := models.ProfileResponse{Profile: p}
	user, err := users.FindByID(ctx, p.UserID)
	if err != nil {
		resp.User = models.UserRef{ID: p.UserID}
		return resp
	}
	resp.User = user.Ref()
	return resp
}

// GetCurrentProfile returns the caller's own profile.
func GetCurrentProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	profile, err := profiles.FindByUser(ctx, userID)
	if err != nil {
		fail(c, http.StatusNotFound, "noprofile", "There is no profile for this user")
		return
	}

	c.JSON(http.StatusOK, withUser(ctx, *profile))
}

func GetAllProfiles(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	all, err := profiles.FindAll(ctx)
	if err != nil {
		log.Printf("GetAllProfiles error: %v", err)
		fail(c, http.StatusNotFound, "noprofile", "There are no profiles")
		return
	}
	if len(all) == 0 {
		fail(c, http.StatusNotFound, "noprofile", "There are no profiles")
		return
	}

	resp := make([]models.ProfileResponse, len(all))
	for i, p := range all {
		resp[i] = withUser(ctx, p)
	}

	c.JSON(http.StatusOK, resp)
}

func GetProfileByHandle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	profile, err := profiles.FindByHandle(ctx, c.Param("handle"))
	if err != nil {
		fail(c, http.StatusNotFound, "noprofile", "There is no profile for this user")
		return
	}

	c.JSON(http.StatusOK, withUser(ctx, *profile))
}

func GetProfileByUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		fail(c, http.StatusNotFound, "noprofile", "There is no profile for this user")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	profile, err := profiles.FindByUser(ctx, userID)
	if err != nil {
		fail(c, http.StatusNotFound, "noprofile", "There is no profile for this user")
		return
	}

	c.JSON(http.StatusOK, withUser(ctx, *profile))
}

// CreateOrUpdateProfile merges the present fields into an existing profile,
// or creates a new one after checking the handle is free. Absent optional
// fields are never written, so an update cannot null out stored values.
func CreateOrUpdateProfile(c *gin.Context) {
	var req validation.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "badrequest", err.Error())
		return
	}

	if errs, ok := validation.ValidateProfileInput(req); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	upd := profileUpdateFromInput(req)

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	existing, err := profiles.FindByUser(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusInternalServerError, "server", "Database error")
		return
	}

	if existing != nil {
		updated, err := profiles.Merge(ctx, userID, upd)
		if err != nil {
			if errors.Is(err, store.ErrDuplicateHandle) {
				fail(c, http.StatusBadRequest, "handle", "That handle already exists")
				return
			}
			log.Printf("CreateOrUpdateProfile merge error: %v", err)
			fail(c, http.StatusInternalServerError, "server", "Failed to update profile")
			return
		}
		c.JSON(http.StatusOK, updated)
		return
	}

	// Creating: reject a handle already taken by another user's profile.
	// The unique index backs this up against racing writers.
	if _, err := profiles.FindByHandle(ctx, req.Handle); err == nil {
		fail(c, http.StatusBadRequest, "handle", "That handle already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusInternalServerError, "server", "Database error")
		return
	}

	profile := models.Profile{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Handle:     req.Handle,
		Status:     req.Status,
		Skills:     strings.Split(req.Skills, ","),
		Experience: []models.Experience{},
		Education:  []models.Education{},
		Date:       time.Now().Unix(),
	}
	applyOptional(&profile, upd)

	if err := profiles.Insert(ctx, &profile); err != nil {
		if errors.Is(err, store.ErrDuplicateHandle) {
			fail(c, http.StatusBadRequest, "handle", "That handle already exists")
			return
		}
		log.Printf("CreateOrUpdateProfile insert error: %v", err)
		fail(c, http.StatusInternalServerError, "server", "Failed to create profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// profileUpdateFromInput keeps only the fields the client actually sent,
// matching the original's if-present field building.
func profileUpdateFromInput(req validation.ProfileInput) store.ProfileUpdate {
	var upd store.ProfileUpdate
	set := func(dst **string, v string) {
		if v != "" {
			*dst = &v
		}
	}
	set(&upd.Handle, req.Handle)
	set(&upd.Company, req.Company)
	set(&upd.Website, req.Website)
	set(&upd.Location, req.Location)
	set(&upd.Status, req.Status)
	set(&upd.Bio, req.Bio)
	set(&upd.GithubUsername, req.GithubUsername)

	// Skills arrive as a comma separated string; split literally, no trimming
	if req.Skills != "" {
		upd.Skills = strings.Split(req.Skills, ",")
	}

	if req.Youtube != "" || req.Twitter != "" || req.Facebook != "" ||
		req.Linkedin != "" || req.Instagram != "" {
		upd.Social = &models.Social{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			Linkedin:  req.Linkedin,
			Instagram: req.Instagram,
		}
	}

	return upd
}

func applyOptional(p *models.Profile, upd store.ProfileUpdate) {
	if upd.Company != nil {
		p.Company = *upd.Company
	}
	if upd.Website != nil {
		p.Website = *upd.Website
	}
	if upd.Location != nil {
		p.Location = *upd.Location
	}
	if upd.Bio != nil {
		p.Bio = *upd.Bio
	}
	if upd.GithubUsername != nil {
		p.GithubUsername = *upd.GithubUsername
	}
	p.Social = upd.Social
}

func AddExperience(c *gin.Context) {
	var req validation.ExperienceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "badrequest", err.Error())
		return
	}

	if errs, ok := validation.ValidateExperienceInput(req); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	profile, ok := loadOwnProfile(c)
	if !ok {
		return
	}

	entry := models.Experience{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}

	profile.Experience = append([]models.Experience{entry}, profile.Experience...)

	saveProfile(c, profile)
}

func AddEducation(c *gin.Context) {
	var req validation.EducationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "badrequest", err.Error())
		return
	}

	if errs, ok := validation.ValidateEducationInput(req); !ok {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	profile, ok := loadOwnProfile(c)
	if !ok {
		return
	}

	entry := models.Education{
		ID:           primitive.NewObjectID(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}

	profile.Education = append([]models.Education{entry}, profile.Education...)

	saveProfile(c, profile)
}

// RemoveExperience deletes one experience entry by id. An unknown id is a
// not-found, never a blind splice.
func RemoveExperience(c *gin.Context) {
	entryID, err := primitive.ObjectIDFromHex(c.Param("exp_id"))
	if err != nil {
		fail(c, http.StatusNotFound, "experiencenotexists", "Experience entry does not exist")
		return
	}

	profile, ok := loadOwnProfile(c)
	if !ok {
		return
	}

	idx := profile.ExperienceIndex(entryID)
	if idx < 0 {
		fail(c, http.StatusNotFound, "experiencenotexists", "Experience entry does not exist")
		return
	}

	profile.Experience = append(profile.Experience[:idx], profile.Experience[idx+1:]...)

	saveProfile(c, profile)
}

func RemoveEducation(c *gin.Context) {
	entryID, err := primitive.ObjectIDFromHex(c.Param("edu_id"))
	if err != nil {
		fail(c, http.StatusNotFound, "educationnotexists", "Education entry does not exist")
		return
	}

	profile, ok := loadOwnProfile(c)
	if !ok {
		return
	}

	idx := profile.EducationIndex(entryID)
	if idx < 0 {
		fail(c, http.StatusNotFound, "educationnotexists", "Education entry does not exist")
		return
	}

	profile.Education = append(profile.Education[:idx], profile.Education[idx+1:]...)

	saveProfile(c, profile)
}

// DeleteProfile removes the caller's profile and then their user record.
// Ordering matters: the profile goes first so a failure cannot leave a
// profile pointing at a deleted user.
func DeleteProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := profiles.DeleteByUser(ctx, userID); err != nil {
		log.Printf("DeleteProfile error: %v", err)
		fail(c, http.StatusInternalServerError, "server", "Failed to delete profile")
		return
	}

	if err := users.Delete(ctx, userID); err != nil {
		log.Printf("DeleteProfile user delete error: %v", err)
		fail(c, http.StatusInternalServerError, "server", "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// loadOwnProfile resolves the caller's profile, or writes the error
// response and reports false.
func loadOwnProfile(c *gin.Context) (*models.Profile, bool) {
	userID, ok := callerID(c)
	if !ok {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	profile, err := profiles.FindByUser(ctx, userID)
	if err != nil {
		fail(c, http.StatusNotFound, "noprofile", "There is no profile for this user")
		return nil, false
	}

	return profile, true
}

func saveProfile(c *gin.Context, profile *models.Profile) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := profiles.Replace(ctx, profile); err != nil {
		log.Printf("saveProfile error: %v", err)
		fail(c, http.StatusInternalServerError, "server", "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}
