package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/dmitrijs2005/helpdesk/internal/logging"
	"github.com/dmitrijs2005/helpdesk/internal/server/config"
	"github.com/dmitrijs2005/helpdesk/internal/server/models"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	mu            sync.Mutex
	tokens        map[models.SessionToken]string
	authErr       error
	createErr     error
	invalidateErr error
	invalidated   []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: map[models.SessionToken]string{}}
}

func (f *fakeSessions) login(userID string) *http.Cookie {
	f.mu.Lock()
	defer f.mu.Unlock()
	token := models.SessionToken("tok-" + userID)
	f.tokens[token] = userID
	return &http.Cookie{Name: common.SessionCookieName, Value: string(token)}
}

func (f *fakeSessions) Authenticate(_ context.Context, token models.SessionToken) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authErr != nil {
		return "", f.authErr
	}
	if userID, ok := f.tokens[token]; ok && token != "" {
		return userID, nil
	}
	return "", common.ErrUnauthenticated
}

func (f *fakeSessions) Create(_ context.Context, userID string) (models.SessionToken, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	return models.SessionToken(f.login(userID).Value), nil
}

func (f *fakeSessions) InvalidateAll(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.invalidateErr != nil {
		return f.invalidateErr
	}
	for tok, uid := range f.tokens {
		if uid == userID {
			delete(f.tokens, tok)
		}
	}
	f.invalidated = append(f.invalidated, userID)
	return nil
}

type fakeCredentials struct {
	passwords map[string]string // email -> password
	ids       map[string]string // email -> user id
	verifyErr error
	updateErr error
	updated   map[string]string
}

func newFakeCredentials() *fakeCredentials {
	return &fakeCredentials{
		passwords: map[string]string{"a@x.com": "secret"},
		ids:       map[string]string{"a@x.com": "u-1"},
		updated:   map[string]string{},
	}
}

func (f *fakeCredentials) Verify(_ context.Context, email, password string) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	if pw, ok := f.passwords[email]; ok && pw == password {
		return f.ids[email], nil
	}
	return "", common.ErrInvalidCredentials
}

func (f *fakeCredentials) UpdatePassword(_ context.Context, userID, newPassword string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated[userID] = newPassword
	return nil
}

type fakeRegistrar struct {
	registerErr error
	registered  map[string]string // token -> email
	inviteErr   error
	invitedAs   []string
	pending     []*models.PendingRegistration
	pendingErr  error
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{registered: map[string]string{}}
}

func (f *fakeRegistrar) Invite(_ context.Context, surname, name string) (*models.Invitation, error) {
	if f.inviteErr != nil {
		return nil, f.inviteErr
	}
	f.invitedAs = append(f.invitedAs, surname+" "+name)
	return &models.Invitation{UserID: "u-new", TokenID: "tok-new"}, nil
}

func (f *fakeRegistrar) Register(_ context.Context, tokenID, email, password string) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	if _, used := f.registered[tokenID]; used {
		return common.ErrInvalidToken
	}
	f.registered[tokenID] = email
	return nil
}

func (f *fakeRegistrar) Pending(context.Context) ([]*models.PendingRegistration, error) {
	return f.pending, f.pendingErr
}

type fakeGate struct {
	admins map[string]bool
	err    error
}

func (f *fakeGate) IsAdmin(_ context.Context, userID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.admins[userID], nil
}

type statusUpdate struct {
	id     int64
	status models.Status
}

type fakeProblems struct {
	created   []*models.Problem
	createErr error
	updates   []statusUpdate
	updateErr error
	list      []*models.Problem
	dashboard *models.Dashboard
	err       error
}

func (f *fakeProblems) Create(_ context.Context, creatorID, name, description, category string) (*models.Problem, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p := &models.Problem{
		ID:          int64(len(f.created) + 1),
		Name:        name,
		Description: description,
		Category:    category,
		Status:      models.StatusActive,
		CreatorID:   creatorID,
	}
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakeProblems) UpdateStatus(_ context.Context, id int64, status models.Status) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, statusUpdate{id, status})
	return nil
}

func (f *fakeProblems) Dashboard(context.Context) (*models.Dashboard, error) {
	return f.dashboard, f.err
}

func (f *fakeProblems) List(context.Context) ([]*models.Problem, error) {
	return f.list, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type env struct {
	srv      *HTTPServer
	sessions *fakeSessions
	creds    *fakeCredentials
	reg      *fakeRegistrar
	gate     *fakeGate
	problems *fakeProblems
	pinger   *fakePinger
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		sessions: newFakeSessions(),
		creds:    newFakeCredentials(),
		reg:      newFakeRegistrar(),
		gate:     &fakeGate{admins: map[string]bool{"admin-1": true}},
		problems: &fakeProblems{},
		pinger:   &fakePinger{},
	}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	e.srv = NewHTTPServer(cfg, logging.Nop{}, Services{
		Sessions:      e.sessions,
		Credentials:   e.creds,
		Registration:  e.reg,
		Authorization: e.gate,
		Problems:      e.problems,
		DB:            e.pinger,
	})
	return e
}

func (e *env) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == common.SessionCookieName {
			return c
		}
	}
	return nil
}
