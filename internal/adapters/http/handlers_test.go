package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/joinboard/api/internal/application/services"
	"github.com/joinboard/api/internal/domain/entities"
	"github.com/joinboard/api/internal/infrastructure/config"
	"github.com/joinboard/api/internal/infrastructure/logger"
)

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	return e
}

type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*entities.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return entities.ErrEmailTaken
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, entities.ErrUserNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*entities.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

type memTokenRepo struct {
	mu     sync.Mutex
	nextID int64
	byUser map[int64]*entities.AuthToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{byUser: make(map[int64]*entities.AuthToken)}
}

func (r *memTokenRepo) GetOrCreate(_ context.Context, userID int64, candidate string) (*entities.AuthToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.byUser[userID]; ok {
		return t, nil
	}
	r.nextID++
	t := &entities.AuthToken{ID: r.nextID, UserID: userID, Token: candidate}
	r.byUser[userID] = t
	return t, nil
}

func (r *memTokenRepo) GetByToken(_ context.Context, token string) (*entities.AuthToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byUser {
		if t.Token == token {
			return t, nil
		}
	}
	return nil, entities.ErrTokenNotFound
}

func (r *memTokenRepo) DeleteByUserID(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUser, userID)
	return nil
}

type memTaskRepo struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*entities.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[int64]*entities.Task)}
}

func (r *memTaskRepo) Create(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	task.ID = r.nextID
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id int64) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, entities.ErrTaskNotFound
}

func (r *memTaskRepo) List(_ context.Context) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tasks := make([]*entities.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		cp := *t
		tasks = append(tasks, &cp)
	}
	return tasks, nil
}

func (r *memTaskRepo) UpdateOwned(_ context.Context, task *entities.Task, authorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.tasks[task.ID]
	if !ok || existing.AuthorID != authorID {
		return entities.ErrTaskNotFound
	}
	task.AuthorID = authorID
	cp := *task
	cp.CreatedAt = existing.CreatedAt
	r.tasks[task.ID] = &cp
	return nil
}

func (r *memTaskRepo) DeleteOwned(_ context.Context, id, authorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.tasks[id]
	if !ok || existing.AuthorID != authorID {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

type memContactRepo struct {
	mu       sync.Mutex
	nextID   int64
	contacts map[int64]*entities.Contact
}

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{contacts: make(map[int64]*entities.Contact)}
}

func (r *memContactRepo) Create(_ context.Context, contact *entities.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	contact.ID = r.nextID
	cp := *contact
	r.contacts[contact.ID] = &cp
	return nil
}

func (r *memContactRepo) GetByID(_ context.Context, id int64) (*entities.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.contacts[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, entities.ErrContactNotFound
}

func (r *memContactRepo) List(_ context.Context) ([]*entities.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contacts := make([]*entities.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		cp := *c
		contacts = append(contacts, &cp)
	}
	return contacts, nil
}

func (r *memContactRepo) Update(_ context.Context, contact *entities.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[contact.ID]; !ok {
		return entities.ErrContactNotFound
	}
	cp := *contact
	r.contacts[contact.ID] = &cp
	return nil
}

func (r *memContactRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[id]; !ok {
		return entities.ErrContactNotFound
	}
	delete(r.contacts, id)
	return nil
}

type testEnv struct {
	echo           *echo.Echo
	authHandler    *AuthHandler
	taskHandler    *TaskHandler
	contactHandler *ContactHandler
	authService    *services.AuthService
}

func newTestEnv() *testEnv {
	nop := logger.NewNop()
	authService := services.NewAuthService(newMemUserRepo(), newMemTokenRepo(), config.AuthConfig{BcryptCost: 4}, nop)
	taskService := services.NewTaskService(newMemTaskRepo(), nop)
	contactService := services.NewContactService(newMemContactRepo(), nop)

	return &testEnv{
		echo:           newTestEcho(),
		authHandler:    NewAuthHandler(authService, nop),
		taskHandler:    NewTaskHandler(taskService, nop),
		contactHandler: NewContactHandler(contactService, nop),
		authService:    authService,
	}
}

func (env *testEnv) jsonRequest(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return env.echo.NewContext(req, rec), rec
}

func (env *testEnv) registerAndLogin(t *testing.T, email string) (int64, string) {
	t.Helper()
	ctx := context.Background()

	user, err := env.authService.Register(ctx, services.RegisterRequest{
		Username:  strings.SplitN(email, "@", 2)[0],
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "pass-1234",
	})
	require.NoError(t, err)

	resp, err := env.authService.Login(ctx, services.LoginRequest{Email: email, Password: "pass-1234"})
	require.NoError(t, err)
	return user.ID, resp.Token
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Code
}

func TestRegisterCreatesUserWithoutExposingHash(t *testing.T) {
	env := newTestEnv()
	c, rec := env.jsonRequest(http.MethodPost, "/register",
		`{"username":"anna","first_name":"Anna","last_name":"Schmidt","email":"anna@example.com","password":"pw-123456"}`)

	require.NoError(t, env.authHandler.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"anna@example.com"`)
	require.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterRejectsMalformedEmail(t *testing.T) {
	env := newTestEnv()
	c, _ := env.jsonRequest(http.MethodPost, "/register",
		`{"username":"anna","first_name":"Anna","last_name":"Schmidt","email":"not-an-email","password":"pw"}`)

	err := env.authHandler.Register(c)
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
}

func TestRegisterDuplicateEmailReturns400(t *testing.T) {
	env := newTestEnv()
	env.registerAndLogin(t, "anna@example.com")

	c, _ := env.jsonRequest(http.MethodPost, "/register",
		`{"username":"other","first_name":"Anna","last_name":"Schmidt","email":"anna@example.com","password":"pw-123456"}`)

	err := env.authHandler.Register(c)
	require.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestLoginReturnsTokenAndRepeatIsStable(t *testing.T) {
	env := newTestEnv()
	env.registerAndLogin(t, "anna@example.com")

	c, rec := env.jsonRequest(http.MethodPost, "/login", `{"email":"anna@example.com","password":"pass-1234"}`)
	require.NoError(t, env.authHandler.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var first services.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	require.Len(t, first.Token, 40)

	c2, rec2 := env.jsonRequest(http.MethodPost, "/login", `{"email":"anna@example.com","password":"pass-1234"}`)
	require.NoError(t, env.authHandler.Login(c2))

	var second services.LoginResponse
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &second))
	require.Equal(t, first.Token, second.Token)
}

func TestLoginFailureBodyIsUniform(t *testing.T) {
	env := newTestEnv()
	env.registerAndLogin(t, "anna@example.com")

	cases := map[string]string{
		"unknown email":  `{"email":"ghost@example.com","password":"pass-1234"}`,
		"wrong password": `{"email":"anna@example.com","password":"nope-1234"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := env.jsonRequest(http.MethodPost, "/login", body)
			err := env.authHandler.Login(c)
			require.Equal(t, http.StatusBadRequest, httpStatus(t, err))

			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			require.Equal(t, "Invalid credentials", httpErr.Message)
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv()
	userID, token := env.registerAndLogin(t, "anna@example.com")

	c, rec := env.jsonRequest(http.MethodPost, "/logout", "")
	c.Set(ContextKeyUserID, userID)

	require.NoError(t, env.authHandler.Logout(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, err := env.authService.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, entities.ErrTokenNotFound)
}

func TestCreateTaskRoundTripsDueDate(t *testing.T) {
	env := newTestEnv()
	userID, _ := env.registerAndLogin(t, "anna@example.com")

	c, rec := env.jsonRequest(http.MethodPost, "/tasks",
		`{"title":"Ship v2","description":"Final checks","due_date":"2022-12-12","status":"todo","subtasks":[{"title":"Changelog","done":false}]}`)
	c.Set(ContextKeyUserID, userID)

	require.NoError(t, env.taskHandler.CreateTask(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"due_date":"2022-12-12"`)

	var task entities.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	require.Equal(t, userID, task.AuthorID)
	require.Len(t, task.Subtasks, 1)
}

func TestCreateTaskRejectsMalformedDate(t *testing.T) {
	env := newTestEnv()
	userID, _ := env.registerAndLogin(t, "anna@example.com")

	c, _ := env.jsonRequest(http.MethodPost, "/tasks",
		`{"title":"Ship v2","description":"Final checks","due_date":"12/12/2022","status":"todo"}`)
	c.Set(ContextKeyUserID, userID)

	err := env.taskHandler.CreateTask(c)
	require.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestUpdateTaskByNonOwnerReturns404(t *testing.T) {
	env := newTestEnv()
	ownerID, _ := env.registerAndLogin(t, "owner@example.com")
	otherID, _ := env.registerAndLogin(t, "other@example.com")

	c, rec := env.jsonRequest(http.MethodPost, "/tasks",
		`{"title":"Ship v2","description":"Final checks","due_date":"2026-09-15","status":"todo"}`)
	c.Set(ContextKeyUserID, ownerID)
	require.NoError(t, env.taskHandler.CreateTask(c))

	var task entities.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))

	upd, _ := env.jsonRequest(http.MethodPut, "/tasks/1",
		`{"title":"Hijacked","description":"x","due_date":"2026-09-15","status":"done"}`)
	upd.SetParamNames("id")
	upd.SetParamValues("1")
	upd.Set(ContextKeyUserID, otherID)

	err := env.taskHandler.UpdateTask(upd)
	require.Equal(t, http.StatusNotFound, httpStatus(t, err))

	// The task is untouched.
	get, getRec := env.jsonRequest(http.MethodGet, "/tasks/1", "")
	get.SetParamNames("id")
	get.SetParamValues("1")
	require.NoError(t, env.taskHandler.GetTask(get))
	require.Contains(t, getRec.Body.String(), `"Ship v2"`)
}

func TestDeleteTaskByNonOwnerReturns404(t *testing.T) {
	env := newTestEnv()
	ownerID, _ := env.registerAndLogin(t, "owner@example.com")
	otherID, _ := env.registerAndLogin(t, "other@example.com")

	c, _ := env.jsonRequest(http.MethodPost, "/tasks",
		`{"title":"Ship v2","description":"Final checks","due_date":"2026-09-15","status":"todo"}`)
	c.Set(ContextKeyUserID, ownerID)
	require.NoError(t, env.taskHandler.CreateTask(c))

	del, _ := env.jsonRequest(http.MethodDelete, "/tasks/1", "")
	del.SetParamNames("id")
	del.SetParamValues("1")
	del.Set(ContextKeyUserID, otherID)
	require.Equal(t, http.StatusNotFound, httpStatus(t, env.taskHandler.DeleteTask(del)))

	del2, delRec := env.jsonRequest(http.MethodDelete, "/tasks/1", "")
	del2.SetParamNames("id")
	del2.SetParamValues("1")
	del2.Set(ContextKeyUserID, ownerID)
	require.NoError(t, env.taskHandler.DeleteTask(del2))
	require.Equal(t, http.StatusNoContent, delRec.Code)
}

func TestContactLifecycle(t *testing.T) {
	env := newTestEnv()

	c, rec := env.jsonRequest(http.MethodPost, "/contacts",
		`{"name":"Marc","surname":"Weber","email":"marc@example.com","phone":"+49 170 1234567"}`)
	require.NoError(t, env.contactHandler.CreateContact(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var contact entities.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contact))

	del, delRec := env.jsonRequest(http.MethodDelete, "/contacts/1", "")
	del.SetParamNames("id")
	del.SetParamValues("1")
	require.NoError(t, env.contactHandler.DeleteContact(del))
	require.Equal(t, http.StatusNoContent, delRec.Code)

	get, _ := env.jsonRequest(http.MethodGet, "/contacts/1", "")
	get.SetParamNames("id")
	get.SetParamValues("1")
	require.Equal(t, http.StatusNotFound, httpStatus(t, env.contactHandler.GetContact(get)))
}

func TestGetTaskWithBadIDReturns400(t *testing.T) {
	env := newTestEnv()

	c, _ := env.jsonRequest(http.MethodGet, "/tasks/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.Equal(t, http.StatusBadRequest, httpStatus(t, env.taskHandler.GetTask(c)))
}
