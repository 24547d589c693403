// Package client предоставляет Go-клиент HTTP API сервиса memopad.
// Клиент хранит пару токенов сессии и подставляет access токен в
// заголовок Authorization для защищенных операций.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Константы для сообщений об ошибках.
const (
	errCtxBuildingRequest = "building request"
	errCtxSendingRequest  = "sending request"
	errCtxDecodingBody    = "decoding response body"
)

const defaultTimeout = 10 * time.Second

// ErrPasswordMismatch возвращается, когда подтверждение пароля не
// совпадает с паролем. Проверка выполняется до обращения к серверу.
var ErrPasswordMismatch = errors.New("passwords do not match")

// ErrNotAuthenticated возвращается при вызове защищенной операции без
// активной сессии.
var ErrNotAuthenticated = errors.New("not authenticated")

// APIError описывает ошибку, возвращенную сервером.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Note - заметка в формате HTTP API.
type Note struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Color      string    `json:"color"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NotePatch - частичное обновление заметки. Только ненулевые указатели
// попадают в тело запроса; явный false для IsFavorite передается.
type NotePatch struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	Color      *string `json:"color,omitempty"`
	IsFavorite *bool   `json:"isFavorite,omitempty"`
}

// Session - активная сессия пользователя.
type Session struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Profile - профиль текущего пользователя.
type Profile struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Client - клиент HTTP API.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// Option настраивает клиент.
type Option func(*Client)

// WithHTTPClient задает используемый http.Client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// New создает новый клиент API с указанным базовым адресом.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticated сообщает, есть ли у клиента активная сессия.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken != ""
}

// SignUp регистрирует нового пользователя. Совпадение пароля и его
// подтверждения проверяется на стороне клиента.
func (c *Client) SignUp(ctx context.Context, email, name, password, passwordConfirm string) (*Session, error) {
	if password != passwordConfirm {
		return nil, ErrPasswordMismatch
	}

	body := map[string]string{
		"email":    email,
		"name":     name,
		"password": password,
	}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &session, false); err != nil {
		return nil, err
	}

	c.storeSession(&session)
	return &session, nil
}

// SignIn аутентифицирует пользователя по email и паролю.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &session, false); err != nil {
		return nil, err
	}

	c.storeSession(&session)
	return &session, nil
}

// Refresh обменивает refresh токен на новую пару токенов.
func (c *Client) Refresh(ctx context.Context) (*Session, error) {
	c.mu.RLock()
	refreshToken := c.refreshToken
	c.mu.RUnlock()

	if refreshToken == "" {
		return nil, ErrNotAuthenticated
	}

	body := map[string]string{"refresh_token": refreshToken}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", body, &session, false); err != nil {
		return nil, err
	}

	c.storeSession(&session)
	return &session, nil
}

// SignOut завершает сессию: сервер отзывает refresh токены
// пользователя, клиент забывает локальную пару токенов.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/session/signout", nil, nil, true); err != nil {
		return err
	}

	c.mu.Lock()
	c.accessToken = ""
	c.refreshToken = ""
	c.mu.Unlock()

	return nil
}

// GetProfile возвращает профиль текущего пользователя.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListNotes возвращает все заметки пользователя, новые первыми.
func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var notes []Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes, true); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote создает новую заметку. Пустые поля получают значения по
// умолчанию на сервере.
func (c *Client) CreateNote(ctx context.Context, title, content, color string) (*Note, error) {
	body := map[string]string{
		"title":   title,
		"content": content,
		"color":   color,
	}

	var note Note
	if err := c.do(ctx, http.MethodPost, "/notes", body, &note, true); err != nil {
		return nil, err
	}
	return &note, nil
}

// ReplaceNote полностью заменяет заголовок и содержимое заметки.
func (c *Client) ReplaceNote(ctx context.Context, noteID, title, content string) (*Note, error) {
	body := map[string]string{
		"title":   title,
		"content": content,
	}

	var note Note
	if err := c.do(ctx, http.MethodPut, "/notes/"+noteID, body, &note, true); err != nil {
		return nil, err
	}
	return &note, nil
}

// PatchNote применяет частичное обновление заметки.
func (c *Client) PatchNote(ctx context.Context, noteID string, patch NotePatch) (*Note, error) {
	var note Note
	if err := c.do(ctx, http.MethodPatch, "/notes/"+noteID, patch, &note, true); err != nil {
		return nil, err
	}
	return &note, nil
}

// ToggleFavorite переключает флаг избранного у заметки.
func (c *Client) ToggleFavorite(ctx context.Context, noteID string, isFavorite bool) (*Note, error) {
	return c.PatchNote(ctx, noteID, NotePatch{IsFavorite: &isFavorite})
}

// DeleteNote удаляет заметку.
func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+noteID, nil, nil, true)
}

// storeSession запоминает пару токенов активной сессии.
func (c *Client) storeSession(session *Session) {
	c.mu.Lock()
	c.accessToken = session.AccessToken
	c.refreshToken = session.RefreshToken
	c.mu.Unlock()
}

// do выполняет HTTP запрос и декодирует JSON-ответ. Ответы вне 2xx
// превращаются в *APIError с сообщением сервера.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authenticated bool) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxBuildingRequest, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxBuildingRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	if authenticated {
		c.mu.RLock()
		token := c.accessToken
		c.mu.RUnlock()

		if token == "" {
			return ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxSendingRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", errCtxDecodingBody, err)
	}
	return nil
}

// decodeAPIError извлекает сообщение об ошибке из тела ответа.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
