package api

import (
	"Folio/internal/api/dto"
	"Folio/internal/api/handler"
	"Folio/internal/pkg/testutil"
	"Folio/internal/repository"
	"Folio/internal/service"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store := repository.NewStore(testutil.NewTestDB(t))
	postSvc := service.NewPostService(store, service.NewTagReconciler(store), nil)
	tagSvc := service.NewTagService(store, service.NewOrphanSweeper(store), nil)
	return SetupRouter(&HandlersGroup{
		PostHandler: handler.NewPostHandler(postSvc),
		TagHandler:  handler.NewTagHandler(tagSvc),
	})
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func createPost(t *testing.T, r *gin.Engine, body string) dto.PostDTO {
	t.Helper()
	w := do(t, r, http.MethodPost, "/posts", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.PostDTO](t, w)
}

func tagNames(tags []*dto.TagDTO) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.Name)
	}
	return out
}

func TestHome(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Blog API is running", decode[dto.MessageDTO](t, w).Message)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}

func TestTraceHeaderIsEchoed(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Trace-ID"))
}

func TestCreatePost(t *testing.T) {
	r := newTestRouter(t)

	post := createPost(t, r, `{"title":"Hello","author":"ann","tags":["A","a","B"]}`)
	assert.NotZero(t, post.ID)
	assert.Equal(t, "Hello", post.Title)
	require.NotNil(t, post.Author)
	assert.Equal(t, "ann", *post.Author)
	assert.Equal(t, []string{"a", "b"}, tagNames(post.Tags))
}

func TestCreatePostBadRequests(t *testing.T) {
	r := newTestRouter(t)

	cases := map[string]string{
		"missing title": `{"content":"x"}`,
		"blank title":   `{"title":"   "}`,
		"broken json":   `{"title":`,
		"wrong type":    `{"title":"ok","tags":"go"}`,
		"long tag":      `{"title":"ok","tags":["` + strings.Repeat("t", 51) + `"]}`,
		"empty body":    ``,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/posts", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.NotEmpty(t, decode[dto.ErrorDTO](t, w).Error)
		})
	}

	w := do(t, r, http.MethodGet, "/posts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]dto.PostDTO](t, w))
}

func TestGetPost(t *testing.T) {
	r := newTestRouter(t)
	post := createPost(t, r, `{"title":"Hello","tags":["go"]}`)

	w := do(t, r, http.MethodGet, "/posts/"+itoa(post.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.PostDTO](t, w)
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, []string{"go"}, tagNames(got.Tags))

	w = do(t, r, http.MethodGet, "/posts/9999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", decode[dto.ErrorDTO](t, w).Error)

	w = do(t, r, http.MethodGet, "/posts/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPosts(t *testing.T) {
	r := newTestRouter(t)
	first := createPost(t, r, `{"title":"first","tags":["x"]}`)
	second := createPost(t, r, `{"title":"second"}`)

	w := do(t, r, http.MethodGet, "/posts", "")
	require.Equal(t, http.StatusOK, w.Code)
	posts := decode[[]dto.PostDTO](t, w)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
	assert.Equal(t, []string{"x"}, tagNames(posts[1].Tags))
}

func TestUpdatePost(t *testing.T) {
	r := newTestRouter(t)
	post := createPost(t, r, `{"title":"Hello","tags":["a","b"]}`)
	path := "/posts/" + itoa(post.ID)

	w := do(t, r, http.MethodPut, path, `{"title":"Renamed","tags":["B","c"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.PostDTO](t, w)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, []string{"b", "c"}, tagNames(updated.Tags))

	w = do(t, r, http.MethodPatch, path, `{"content":"body"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	patched := decode[dto.PostDTO](t, w)
	assert.Equal(t, "Renamed", patched.Title)
	assert.Equal(t, []string{"b", "c"}, tagNames(patched.Tags))

	w = do(t, r, http.MethodPatch, path, `{"tags":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[dto.PostDTO](t, w).Tags)

	w = do(t, r, http.MethodPut, "/posts/9999", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPut, path, `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePostAndCleanup(t *testing.T) {
	r := newTestRouter(t)
	post := createPost(t, r, `{"title":"Hello","tags":["solo","shared"]}`)
	createPost(t, r, `{"title":"Other","tags":["shared"]}`)
	path := "/posts/" + itoa(post.ID)

	w := do(t, r, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post deleted successfully", decode[dto.MessageDTO](t, w).Message)

	w = do(t, r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/tags", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.TagDTO](t, w), 2)

	w = do(t, r, http.MethodDelete, "/tags/cleanup", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[dto.TagCleanupDTO](t, w)
	assert.EqualValues(t, 1, res.DeletedCount)
	assert.Equal(t, "Deleted 1 orphaned tag(s)", res.Message)

	w = do(t, r, http.MethodDelete, "/tags/cleanup", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[dto.TagCleanupDTO](t, w).DeletedCount)
}

func TestGetPostsByTag(t *testing.T) {
	r := newTestRouter(t)
	createPost(t, r, `{"title":"one","tags":["Go"]}`)
	createPost(t, r, `{"title":"two","tags":["go","db"]}`)

	for _, name := range []string{"go", "Go", "GO"} {
		w := do(t, r, http.MethodGet, "/tags/"+name+"/posts", "")
		require.Equal(t, http.StatusOK, w.Code)
		posts := decode[[]dto.PostInfoDTO](t, w)
		require.Len(t, posts, 2)
		assert.Equal(t, "two", posts[0].Title)
	}

	w := do(t, r, http.MethodGet, "/tags/rust/posts", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Tag not found", decode[dto.ErrorDTO](t, w).Error)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodGet, "/", "")

	w := do(t, r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/posts", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func TestPatchNullUnpublishesPost(t *testing.T) {
	r := newTestRouter(t)
	post := createPost(t, r, `{"title":"Hello","author":"x","publishedAt":"2024-01-01T00:00:00Z"}`)
	require.NotNil(t, post.PublishedAt)
	path := "/posts/" + itoa(post.ID)

	w := do(t, r, http.MethodPatch, path, `{"publishedAt":null,"author":null}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	patched := decode[dto.PostDTO](t, w)
	assert.Nil(t, patched.PublishedAt)
	assert.Nil(t, patched.Author)
	assert.Equal(t, "Hello", patched.Title)

	w = do(t, r, http.MethodPatch, path, `{"title":null}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublishedAtAcceptsDateOnly(t *testing.T) {
	r := newTestRouter(t)

	post := createPost(t, r, `{"title":"dated","publishedAt":"2024-01-01"}`)
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, "2024-01-01", post.PublishedAt.UTC().Format("2006-01-02"))

	w := do(t, r, http.MethodPut, "/posts/"+itoa(post.ID), `{"publishedAt":"2024-02-03"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.PostDTO](t, w)
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, "2024-02-03", updated.PublishedAt.UTC().Format("2006-01-02"))

	w = do(t, r, http.MethodPost, "/posts", `{"title":"bad","publishedAt":"01/02/2024"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
