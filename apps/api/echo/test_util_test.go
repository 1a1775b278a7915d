package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/calendar"
	"github.com/nandyala/kacheri/core/causelist"
	"github.com/nandyala/kacheri/core/expense"
	"github.com/nandyala/kacheri/core/hearing"
	"github.com/nandyala/kacheri/core/matter"
	"github.com/nandyala/kacheri/core/notification"
	"github.com/nandyala/kacheri/core/task"
	"github.com/nandyala/kacheri/core/user"
	emailsvc "github.com/nandyala/kacheri/services/email"
	dummydb "github.com/nandyala/kacheri/storage/database/dummy"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type nopLogger struct{}

func (nopLogger) Enable(bool) {}

func (nopLogger) Debug(string, ...interface{}) {}

func (nopLogger) Info(string, ...interface{}) {}

func (nopLogger) Warn(string, ...interface{}) {}

func (nopLogger) Error(string, ...interface{}) {}

func (nopLogger) Fatal(string, ...interface{}) {}

// fetcherStub stands in for the court causelist endpoint.
type fetcherStub struct {
	result causelist.FetchResult
	err    error
	calls  int
}

func (f *fetcherStub) FetchDaily(ctx context.Context, advocateCode, listDate string) (causelist.FetchResult, error) {
	f.calls++
	if f.err != nil {
		return causelist.FetchResult{}, f.err
	}
	return f.result, nil
}

type testEnv struct {
	app Server

	usrRepo       user.Repository
	matterRepo    matter.Repository
	taskRepo      task.Repository
	hearingRepo   hearing.Repository
	expenseRepo   expense.Repository
	causelistRepo causelist.Repository

	fetcher *fetcherStub
	calSvc  *calendar.Service
}

func testConfig() *core.Config {
	return &core.Config{
		TestMode:  true,
		Env:       "TEST",
		AppName:   "Kacheri",
		SecretKey: "secret",
		Server: core.ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := testConfig()
	logger := nopLogger{}

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed, %v", err)
	}

	usrRepo := dummydb.NewUserRepository(db)
	matterRepo := dummydb.NewMatterRepository(db)
	taskRepo := dummydb.NewTaskRepository(db)
	hearingRepo := dummydb.NewHearingRepository(db)
	expenseRepo := dummydb.NewExpenseRepository(db)
	causelistRepo := dummydb.NewCauselistRepository(db)
	notifRepo := dummydb.NewNotificationRepository(db)
	resetter := dummydb.NewResetter(db)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	fetcher := &fetcherStub{}

	calSvc := calendar.NewService(taskRepo, matterRepo, hearingRepo, causelistRepo, logger)
	causelistSvc := causelist.NewService(causelistRepo, fetcher, calSvc)
	notifSvc := notification.NewService(notifRepo, matterRepo, taskRepo, usrRepo, mailSvc, logger)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	app := NewServer(ServerDeps{
		Conf:           conf,
		DisableReqLogs: true,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		UserSvc:        user.NewService(usrRepo),
		MatterSvc:      matter.NewService(matterRepo),
		TaskSvc:        task.NewService(taskRepo),
		HearingSvc:     hearing.NewService(hearingRepo),
		ExpenseSvc:     expense.NewService(expenseRepo),
		CauselistSvc:   causelistSvc,
		CalendarSvc:    calSvc,
		NotifSvc:       notifSvc,
		Resetter:       resetter,
	})

	return &testEnv{
		app:           app,
		usrRepo:       usrRepo,
		matterRepo:    matterRepo,
		taskRepo:      taskRepo,
		hearingRepo:   hearingRepo,
		expenseRepo:   expenseRepo,
		causelistRepo: causelistRepo,
		fetcher:       fetcher,
		calSvc:        calSvc,
	}
}

func (env *testEnv) createUser(t *testing.T, name, uname, email string, roles []string, isActive bool) user.User {
	t.Helper()
	now := time.Now().UTC()
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		IsActive:  isActive,
		Roles:     roles,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword("S3cr3t#pwd"); err != nil {
		t.Fatalf("SetPassword() failed, %v", err)
	}
	usr, err := env.usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed, %v", err)
	}
	return usr
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
