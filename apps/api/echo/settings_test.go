package echoapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/nandyala/kacheri/core/matter"
	"github.com/nandyala/kacheri/core/user"
)

func Test_settingsApi_reset(t *testing.T) {
	env := setup(t)

	usr := env.createUser(t, "Asha Rao", "asharao", "asha@test.in", nil, true)
	admin := env.createUser(t, "Admin", "admin1", "admin@test.in", []string{user.RoleAdmin}, true)

	ctx := context.Background()
	if _, err := env.matterRepo.CreateMatter(ctx, matter.Matter{
		CaseNo:      "WP 1234/2025",
		Status:      matter.StatusOpen,
		ListingDate: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("CreateMatter() failed, %v", err)
	}

	// populate the calendar cache so the reset has something to invalidate
	if tl := env.calSvc.Load(ctx); len(tl.Events) != 1 {
		t.Fatalf("len(events) = %d; want 1", len(tl.Events))
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", token: getToken(t, usr), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Reset", token: getToken(t, admin), wantCode: http.StatusOK,
			wantData: marchallObj(t, SuccessResponse{Success: "All application data has been cleared"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/settings/reset", tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	matters, err := env.matterRepo.QueryMatters(ctx, nil, nil)
	if err != nil {
		t.Fatalf("QueryMatters() failed, %v", err)
	}
	if len(matters) != 0 {
		t.Errorf("len(matters) = %d; want 0 after reset", len(matters))
	}

	// user accounts survive the reset
	if _, err = env.usrRepo.GetUser(ctx, user.GetFilter{ID: admin.ID}); err != nil {
		t.Errorf("admin account should survive reset, got %v", err)
	}

	// cached timeline was invalidated
	if tl := env.calSvc.Load(ctx); len(tl.Events) != 0 {
		t.Errorf("len(events) = %d; want 0 after reset", len(tl.Events))
	}
}
