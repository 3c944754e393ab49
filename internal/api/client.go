package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tapppp/storeorders/internal/models"
	"github.com/tapppp/storeorders/internal/session"
)

// Client represents HTTP client for store backend requests
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates new Client instance
func NewClient(baseURL string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: baseURL,
	}
}

type loginRequest struct {
	UserEmail    string `json:"useremail"`
	UserPassword string `json:"userPassword"`
}

type loginResponse struct {
	Token     string `json:"token"`
	StoreData struct {
		StoreID   int64  `json:"storeId"`
		StoreName string `json:"storeName"`
		StoreImg  string `json:"storeImg"`
	} `json:"storedata"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Login authenticates the merchant and returns the store session
// 200 — успешный вход, в ответе token и storedata;
// 401 — неверные учётные данные, в ответе message.
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	reqURL, err := url.JoinPath(c.baseURL, "api", "login")
	if err != nil {
		return session.Session{}, err
	}

	body, err := json.Marshal(loginRequest{UserEmail: email, UserPassword: password})
	if err != nil {
		return session.Session{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return session.Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("login: %w", models.ErrNetwork)
	}

	if resp.StatusCode != http.StatusOK {
		errResp := errorResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Message == "" {
			return session.Session{}, models.ErrAuth
		}
		return session.Session{}, fmt.Errorf("%s: %w", errResp.Message, models.ErrAuth)
	}

	loginResp := loginResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return session.Session{}, models.ErrValidation
	}

	return session.Session{
		StoreID:       strconv.FormatInt(loginResp.StoreData.StoreID, 10),
		Token:         loginResp.Token,
		StoreName:     loginResp.StoreData.StoreName,
		StoreImageURL: loginResp.StoreData.StoreImg,
	}, nil
}

// FetchOrders returns the full current order list for the session's store
func (c *Client) FetchOrders(ctx context.Context, sess session.Session) ([]models.RawOrder, error) {
	reqURL, err := url.JoinPath(c.baseURL, "api", "Stores", "fetch_orders")
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("store_id", sess.StoreID)
	q.Set("order_status", "All_Orders")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", models.ErrNetwork)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var raw []models.RawOrder
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return nil, models.ErrValidation
		}
		return raw, nil
	case http.StatusUnauthorized:
		return nil, models.ErrAuth
	default:
		return nil, fmt.Errorf("fetch orders: unexpected status %d", resp.StatusCode)
	}
}

// UpdateStatus changes order status by its mutation id
func (c *Client) UpdateStatus(ctx context.Context, sess session.Session, mid uint64, newStatus string) error {
	reqURL, err := url.JoinPath(c.baseURL, "api", "Stores", "update_status_by_mid")
	if err != nil {
		return err
	}

	q := url.Values{}
	q.Set("store_id", sess.StoreID)
	q.Set("mid", strconv.FormatUint(mid, 10))
	q.Set("new_status", newStatus)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("update status: %w", models.ErrNetwork)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.NewMutationError("update status", resp.StatusCode)
	}

	return nil
}

// DeleteOrder removes order by its mutation id
func (c *Client) DeleteOrder(ctx context.Context, sess session.Session, mid uint64) error {
	reqURL, err := url.JoinPath(c.baseURL, "api", "Stores", "Delete_Order_By_Id")
	if err != nil {
		return err
	}

	q := url.Values{}
	q.Set("id", strconv.FormatUint(mid, 10))
	q.Set("store_id", sess.StoreID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("delete order: %w", models.ErrNetwork)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.NewMutationError("delete order", resp.StatusCode)
	}

	return nil
}
