package dashboard_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/asset-dashboard/internal/client"
	"github.com/rogerio-castellano/asset-dashboard/internal/dashboard"
	api "github.com/rogerio-castellano/asset-dashboard/internal/http"
	handler "github.com/rogerio-castellano/asset-dashboard/internal/http/handlers"
	"github.com/rogerio-castellano/asset-dashboard/internal/notify"
	"github.com/rogerio-castellano/asset-dashboard/internal/redissvc"
	"github.com/rogerio-castellano/asset-dashboard/internal/repo"
)

var (
	router        http.Handler
	adminToken    string
	operatorToken string

	prefRepo  *repo.InMemoryPreferenceRepository
	itemCache *repo.ItemCache
	session   *dashboard.Session

	upstream     *upstreamAPI
	requestCount int
	requestMu    sync.Mutex
)

// upstreamAPI fakes the external listing API: skip/limit paging, a native
// status filter, and a switchable failure mode.
type upstreamAPI struct {
	mu      sync.Mutex
	items   []map[string]any
	failing bool
	server  *httptest.Server
}

func wireItem(id int, description string, branchID int, branchName, status string, value float64, purchaseDate string) map[string]any {
	return map[string]any{
		"id":                 id,
		"description":        description,
		"fixed_asset_number": fmt.Sprintf("FA-%04d", id),
		"branch_id":          branchID,
		"branch":             map[string]any{"id": branchID, "name": branchName},
		"status":             status,
		"accounting_value":   value,
		"purchase_date":      purchaseDate,
		"created_at":         purchaseDate + "T09:00:00",
	}
}

func seedItems() []map[string]any {
	return []map[string]any{
		wireItem(1, "Notebook", 1, "Matriz", "APPROVED", 1000, "2024-03-15"),
		wireItem(2, "Chair", 1, "Matriz", "PENDING", 500, "2024-01-10"),
		wireItem(3, "Server", 2, "Filial SP", "PENDING", 2000, "2024-03-01"),
	}
}

func newUpstreamAPI() *upstreamAPI {
	u := &upstreamAPI{items: seedItems()}
	mux := http.NewServeMux()
	mux.HandleFunc("/items/", u.handleItems)
	mux.HandleFunc("/branches/", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, []map[string]any{
			{"id": 1, "name": "Matriz"},
			{"id": 2, "name": "Filial SP"},
		})
	})
	mux.HandleFunc("/categories/", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, []map[string]any{
			{"id": 1, "name": "Eletrônicos", "depreciation_months": 60},
			{"id": 2, "name": "Mobiliário", "depreciation_months": 120},
		})
	})
	u.server = httptest.NewServer(mux)
	return u
}

func (u *upstreamAPI) handleItems(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.failing {
		http.Error(w, "unavailable", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	matched := make([]map[string]any, 0, len(u.items))
	for _, item := range u.items {
		if status := q.Get("status"); status != "" && item["status"] != status {
			continue
		}
		matched = append(matched, item)
	}

	skip, _ := strconv.Atoi(q.Get("skip"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if skip > len(matched) {
		skip = len(matched)
	}
	matched = matched[skip:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	writeBody(w, matched)
}

func (u *upstreamAPI) setFailing(failing bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failing = failing
}

func (u *upstreamAPI) setItems(items []map[string]any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.items = items
}

func (u *upstreamAPI) reset() {
	u.setFailing(false)
	u.setItems(seedItems())
}

func writeBody(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func init() {
	upstream = newUpstreamAPI()

	apiClient := client.New(upstream.server.URL, 5*time.Second)
	itemCache = repo.NewItemCache(apiClient, 1000, 20000)
	session = dashboard.NewSession(itemCache)
	if err := itemCache.Load(context.Background()); err != nil {
		panic(fmt.Sprintf("seed load failed: %v", err))
	}

	prefRepo = repo.NewInMemoryPreferenceRepository()

	// The notifier target is never dialed in this suite: publishes are
	// fire-and-forget, so a dead address only produces a logged failure.
	rs := redissvc.NewRedisService(redis.NewClient(&redis.Options{Addr: "localhost:0"}), context.Background())

	handler.SetSession(session)
	handler.SetResolver(dashboard.NewResolver(apiClient))
	handler.SetPreferenceRepo(prefRepo)
	handler.SetNotifier(notify.NewNotifier(rs, "dashboard:alerts"))
	handler.SetAPIClient(apiClient)

	router = api.NewRouter()

	adminToken = signToken(1, "admin")
	operatorToken = signToken(2, "operator")
}

func signToken(userID int, role string) string {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("super-secret-key"))
	if err != nil {
		panic(fmt.Sprintf("error signing token: %v", err))
	}
	return token
}

// doRequest runs one request through the router. Each request gets a
// distinct client address so the per-IP rate limiter never couples tests.
func doRequest(method, target, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	requestMu.Lock()
	requestCount++
	req.RemoteAddr = fmt.Sprintf("10.0.%d.%d:4000", requestCount/256, requestCount%256)
	requestMu.Unlock()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](w *httptest.ResponseRecorder) (T, error) {
	var out T
	err := json.NewDecoder(w.Body).Decode(&out)
	return out, err
}

// resetDashboardState reloads the seed population and clears any filter
// left behind by a previous test.
func resetDashboardState() {
	upstream.reset()
	if err := itemCache.Load(context.Background()); err != nil {
		panic(fmt.Sprintf("reload failed: %v", err))
	}
	session.SetFilters(dashboard.FilterSpec{})
}
