package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapppp/storeorders/internal/models"
	"github.com/tapppp/storeorders/internal/session"
)

var testSession = session.Session{
	StoreID: "17",
	Token:   "test-token",
}

func TestClient_Login(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantSess session.Session
		wantErr  error
	}{
		{
			name: "success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/login", r.URL.Path)
				w.Write([]byte(`{"token":"tok123","storedata":{"storeId":17,"storeName":"My Store","storeImg":"https://img/store.png"}}`))
			},
			wantSess: session.Session{
				StoreID:       "17",
				Token:         "tok123",
				StoreName:     "My Store",
				StoreImageURL: "https://img/store.png",
			},
		},
		{
			name: "invalid_credentials",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"Invalid credentials"}`))
			},
			wantErr: models.ErrAuth,
		},
		{
			name: "malformed_body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
			wantErr: models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(srv.URL)
			sess, err := client.Login(context.Background(), "m@example.com", "pw")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSess, sess)
		})
	}
}

func TestClient_FetchOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/Stores/fetch_orders", r.URL.Path)
		assert.Equal(t, "17", r.URL.Query().Get("store_id"))
		assert.Equal(t, "All_Orders", r.URL.Query().Get("order_status"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Write([]byte(`[{"orderId":"#9","mid":1,"orderStatus":"Pending","totalPrice":120.5}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	raw, err := client.FetchOrders(context.Background(), testSession)

	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, "#9", raw[0].OrderID)
	assert.Equal(t, uint64(1), raw[0].MID)
	assert.Equal(t, 120.5, raw[0].TotalPrice)
}

func TestClient_FetchOrders_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErr: models.ErrAuth,
		},
		{
			name: "malformed_payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"not":"an array"}`))
			},
			wantErr: models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(srv.URL)
			_, err := client.FetchOrders(context.Background(), testSession)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_FetchOrders_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient(srv.URL)
	_, err := client.FetchOrders(context.Background(), testSession)
	require.ErrorIs(t, err, models.ErrNetwork)
}

func TestClient_UpdateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Stores/update_status_by_mid", r.URL.Path)
		assert.Equal(t, "17", r.URL.Query().Get("store_id"))
		assert.Equal(t, "5", r.URL.Query().Get("mid"))
		assert.Equal(t, "Dispatch", r.URL.Query().Get("new_status"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.UpdateStatus(context.Background(), testSession, 5, models.OrderStatusDispatch)
	require.NoError(t, err)
}

func TestClient_UpdateStatus_NonSuccessIsMutationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.UpdateStatus(context.Background(), testSession, 5, models.OrderStatusDecline)

	var mutErr *models.MutationError
	require.True(t, errors.As(err, &mutErr))
	assert.Equal(t, http.StatusInternalServerError, mutErr.StatusCode)
}

func TestClient_DeleteOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Stores/Delete_Order_By_Id", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("id"))
		assert.Equal(t, "17", r.URL.Query().Get("store_id"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	require.NoError(t, client.DeleteOrder(context.Background(), testSession, 5))
}

func TestClient_DeleteOrder_NonSuccessIsMutationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.DeleteOrder(context.Background(), testSession, 5)

	var mutErr *models.MutationError
	require.True(t, errors.As(err, &mutErr))
	assert.Equal(t, http.StatusNotFound, mutErr.StatusCode)
}
