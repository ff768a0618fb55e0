package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testEnv struct {
	users    *fakeUserStore
	profiles *fakeProfileStore
	posts    *fakePostStore
	router   *gin.Engine
	caller   primitive.ObjectID
}

// newTestEnv wires fake stores into the handlers and builds a router whose
// auth middleware is replaced by a stub that injects the caller identity.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:    newFakeUserStore(),
		profiles: newFakeProfileStore(),
		posts:    newFakePostStore(),
		caller:   primitive.NewObjectID(),
	}
	SetStores(env.users, env.profiles, env.posts)

	router := gin.New()
	api := router.Group("/api")

	api.POST("/users/register", Register)
	api.POST("/users/login", Login)

	api.GET("/posts", GetPosts)
	api.GET("/posts/:id", GetPost)
	api.GET("/profile/all", GetAllProfiles)
	api.GET("/profile/handle/:handle", GetProfileByHandle)
	api.GET("/profile/user/:user_id", GetProfileByUser)

	protected := api.Group("")
	protected.Use(func(c *gin.Context) {
		c.Set("userId", env.caller.Hex())
	})
	protected.GET("/users/current", CurrentUser)
	protected.POST("/posts", CreatePost)
	protected.DELETE("/posts/:id", DeletePost)
	protected.POST("/posts/like/:id", LikePost)
	protected.POST("/posts/unlike/:id", UnlikePost)
	protected.POST("/posts/comment/:id", AddComment)
	protected.DELETE("/posts/comment/:id/:comment_id", RemoveComment)
	protected.GET("/profile", GetCurrentProfile)
	protected.POST("/profile", CreateOrUpdateProfile)
	protected.POST("/profile/experience", AddExperience)
	protected.POST("/profile/education", AddEducation)
	protected.DELETE("/profile/experience/:exp_id", RemoveExperience)
	protected.DELETE("/profile/education/:edu_id", RemoveEducation)
	protected.DELETE("/profile", DeleteProfile)

	env.router = router
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// doRaw sends the body bytes as-is, for requests that are deliberately not
// valid JSON.
func (e *testEnv) doRaw(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// errorKind pulls the stable "error" field out of a failure response.
func errorKind(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	decodeJSON(t, w, &body)
	kind, _ := body["error"].(string)
	return kind
}
