package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"gharplans/internal/server"
	auth "gharplans/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	testJWTSecret     = "test-secret"
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "Adm1nSecret!"
)

type testApp struct {
	e     *echo.Echo
	store *memStore
}

// ルーティング一式をメモリ上のDBで組み立てる
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := newMemStore()
	e := server.New(false)
	e.Logger.SetOutput(io.Discard)

	server.Wire(e, store.repositories(), server.Options{
		JWTSecret:     testJWTSecret,
		JWTTTL:        time.Hour,
		BcryptCost:    bcrypt.MinCost,
		OrderIDPrefix: "GharPlans",
	})

	//管理者を用意
	created, err := auth.NewEnsureAdminUsecase(memUsers{store}, auth.NewBcryptPasswords(bcrypt.MinCost)).
		Execute(context.Background(), "Admin", testAdminEmail, testAdminPassword)
	if err != nil || !created {
		t.Fatalf("seed admin failed: created=%v err=%v", created, err)
	}

	return &testApp{e: e, store: store}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (a *testApp) doJSON(t *testing.T, method string, path string, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal failed: %v", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status=%d want=%d body=%s", rec.Code, want, rec.Body.String())
	}
}

func mustDecode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("json.Unmarshal failed: %v body=%s", err, rec.Body.String())
	}
}

func mustEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	mustDecode(t, rec, &env)
	return env
}

func toStr(v int64) string {
	return strconv.FormatInt(v, 10)
}

func (a *testApp) login(t *testing.T, email string, password string) string {
	t.Helper()

	rec := a.doJSON(t, http.MethodPost, "/user/login", "", map[string]string{"email": email, "password": password})
	requireStatus(t, rec, http.StatusOK)

	var out struct {
		Data struct {
			Token struct {
				AccessToken string `json:"accessToken"`
			} `json:"token"`
		} `json:"data"`
	}
	mustDecode(t, rec, &out)
	if out.Data.Token.AccessToken == "" {
		t.Fatalf("access token is empty: body=%s", rec.Body.String())
	}
	return out.Data.Token.AccessToken
}

func (a *testApp) adminLogin(t *testing.T) string {
	t.Helper()
	return a.login(t, testAdminEmail, testAdminPassword)
}

// 会員登録してIDを返す
func (a *testApp) registerUser(t *testing.T, name string, email string) int64 {
	t.Helper()

	rec := a.doJSON(t, http.MethodPost, "/user/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "Str0ngPass!",
	})
	requireStatus(t, rec, http.StatusCreated)

	var out struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	mustDecode(t, rec, &out)
	return out.Data.ID
}

// 管理者でカテゴリと商品を作り、商品IDを返す
func (a *testApp) createProduct(t *testing.T, adminToken string, categoryID int64, name string, price string) int64 {
	t.Helper()

	rec := a.doJSON(t, http.MethodPost, "/product/products", adminToken, map[string]interface{}{
		"categoryId": categoryID,
		"name":       name,
		"price":      json.Number(price),
	})
	requireStatus(t, rec, http.StatusCreated)

	var out struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	mustDecode(t, rec, &out)
	return out.Data.ID
}

func (a *testApp) createCategory(t *testing.T, adminToken string, name string) int64 {
	t.Helper()

	rec := a.doJSON(t, http.MethodPost, "/category", adminToken, map[string]string{"name": name})
	requireStatus(t, rec, http.StatusCreated)

	var out struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	mustDecode(t, rec, &out)
	return out.Data.ID
}

func (a *testApp) addToCart(t *testing.T, userID int64, productID int64, qty int64) {
	t.Helper()

	rec := a.doJSON(t, http.MethodPost, "/cart", "", map[string]int64{
		"userId":    userID,
		"productId": productID,
		"quantity":  qty,
	})
	requireStatus(t, rec, http.StatusCreated)
}
