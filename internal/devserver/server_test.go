package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tapppp/storeorders/internal/models"
)

type fakePublisher struct {
	mu       sync.Mutex
	store    string
	messages []string
}

func (p *fakePublisher) PublishNewOrder(ctx context.Context, storeID, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store = storeID
	p.messages = append(p.messages, message)
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakePublisher) {
	pub := &fakePublisher{}
	srv, err := New(Config{
		StoreID:   "1",
		StoreName: "Dev Store",
		Email:     "merchant@example.com",
		Password:  "secret",
		TokenKey:  []byte("0123456789abcdef"),
	}, pub, zap.NewNop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, pub
}

func login(t *testing.T, ts *httptest.Server, email, password string) (string, int) {
	body := strings.NewReader(`{"useremail":"` + email + `","userPassword":"` + password + `"}`)
	resp, err := http.Post(ts.URL+"/api/login", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode
	}

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Token, resp.StatusCode
}

func authedPost(t *testing.T, ts *httptest.Server, token, path string) *http.Response {
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestServer_LoginIssuesToken(t *testing.T) {
	ts, _ := newTestServer(t)

	token, code := login(t, ts, "merchant@example.com", "secret")
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, token)
}

func TestServer_LoginRejectsWrongPassword(t *testing.T) {
	ts, _ := newTestServer(t)

	_, code := login(t, ts, "merchant@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestServer_FetchOrdersRequiresToken(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := authedPost(t, ts, "", "/api/Stores/fetch_orders?store_id=1&order_status=All_Orders")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_SeedFetchMutateDelete(t *testing.T) {
	ts, pub := newTestServer(t)

	token, code := login(t, ts, "merchant@example.com", "secret")
	require.Equal(t, http.StatusOK, code)

	// seed publishes the push event
	resp := authedPost(t, ts, token, "/dev/seed")
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, pub.messages, 1)
	assert.Equal(t, "1", pub.store)
	assert.Contains(t, pub.messages[0], "new order")

	// the seeded order shows up in the snapshot
	resp = authedPost(t, ts, token, "/api/Stores/fetch_orders?store_id=1&order_status=All_Orders")
	var raw []models.RawOrder
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	resp.Body.Close()
	require.Len(t, raw, 1)
	assert.Equal(t, models.OrderStatusPending, raw[0].OrderStatus)
	mid := raw[0].MID

	// approve it
	resp = authedPost(t, ts, token, "/api/Stores/update_status_by_mid?store_id=1&mid=1&new_status=Dispatch")
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = authedPost(t, ts, token, "/api/Stores/fetch_orders?store_id=1&order_status=All_Orders")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	resp.Body.Close()
	require.Len(t, raw, 1)
	assert.Equal(t, models.OrderStatusDispatch, raw[0].OrderStatus)

	// delete it
	resp = authedPost(t, ts, token, "/api/Stores/Delete_Order_By_Id?id=1&store_id=1")
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, uint64(1), mid)

	resp = authedPost(t, ts, token, "/api/Stores/fetch_orders?store_id=1&order_status=All_Orders")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	resp.Body.Close()
	assert.Empty(t, raw)
}

func TestServer_UpdateStatusRejectsUnknownStatus(t *testing.T) {
	ts, _ := newTestServer(t)

	token, _ := login(t, ts, "merchant@example.com", "secret")

	resp := authedPost(t, ts, token, "/api/Stores/update_status_by_mid?store_id=1&mid=1&new_status=Shipped")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
