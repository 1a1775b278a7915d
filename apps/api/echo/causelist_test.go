package echoapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/causelist"
)

func Test_causelistApi_save(t *testing.T) {
	env := setup(t)

	usr := env.createUser(t, "Asha Rao", "asharao", "asha@test.in", nil, true)
	token := getToken(t, usr)

	env.fetcher.result = causelist.FetchResult{
		Cases: []causelist.CaseEntry{
			{CaseNo: "WP 1234/2025", Petitioner: "A", Respondent: "B"},
			{CaseNo: "WP 5678/2025", Petitioner: "C", Respondent: "D"},
		},
	}

	t.Run("Auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/causelists")
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Advocate code required", func(t *testing.T) {
		body := marchallObj(t, saveCauselistRequest{ListDate: "25-12-2025"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/causelists", token, body)
		env.app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"advocate_code": "this field is required"}),
		}
		checkCodeAndData(t, tt, rec)
	})

	var saved causelist.Snapshot

	t.Run("First save fetches and persists", func(t *testing.T) {
		body := marchallObj(t, saveCauselistRequest{AdvocateCode: "19272", ListDate: "25-12-2025"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/causelists", token, body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body = %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if saved.AdvocateCode != "19272" || saved.ListDate != "25-12-2025" {
			t.Errorf("snapshot key = (%s, %s); want (19272, 25-12-2025)", saved.AdvocateCode, saved.ListDate)
		}
		if saved.TotalCases != 2 {
			t.Errorf("total cases = %d; want 2", saved.TotalCases)
		}
		if saved.SavedBy != usr.ID {
			t.Errorf("saved by = %s; want %s", saved.SavedBy, usr.ID)
		}
		if env.fetcher.calls != 1 {
			t.Errorf("fetcher calls = %d; want 1", env.fetcher.calls)
		}
	})

	t.Run("Existing snapshot is not refetched", func(t *testing.T) {
		body := marchallObj(t, saveCauselistRequest{AdvocateCode: "19272", ListDate: "25-12-2025"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/causelists", token, body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var snap causelist.Snapshot
		if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if snap.ID != saved.ID {
			t.Errorf("snapshot ID = %s; want existing %s", snap.ID, saved.ID)
		}
		if env.fetcher.calls != 1 {
			t.Errorf("fetcher calls = %d; want still 1", env.fetcher.calls)
		}
	})

	t.Run("Endpoint failure maps to bad gateway", func(t *testing.T) {
		env.fetcher.err = core.NewExternalServiceError("causelist endpoint", http.StatusServiceUnavailable)
		defer func() { env.fetcher.err = nil }()

		body := marchallObj(t, saveCauselistRequest{AdvocateCode: "19272", ListDate: "26-12-2025"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/causelists", token, body)
		env.app.ServeHTTP(rec, req)

		tt := httpTest{
			wantCode: http.StatusBadGateway,
			wantData: marchallObj(t, httpErr{Error: "causelist endpoint responded with status 503"}),
		}
		checkCodeAndData(t, tt, rec)
	})
}

func Test_causelistApi_exportAndDestroy(t *testing.T) {
	env := setup(t)

	usr := env.createUser(t, "Asha Rao", "asharao", "asha@test.in", nil, true)
	token := getToken(t, usr)

	env.fetcher.result = causelist.FetchResult{
		Cases: []causelist.CaseEntry{{CaseNo: "WP 1234/2025"}},
	}
	body := marchallObj(t, saveCauselistRequest{AdvocateCode: "19272", ListDate: "10-01-2025"})
	req, rec := newAuthRequest(http.MethodPost, "/v1/causelists", token, body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("save failed: code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var snap causelist.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	t.Run("List", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/causelists", token)
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t, snap)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Export", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/causelists/"+snap.ID+"/export", token)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		disp := rec.Header().Get("Content-Disposition")
		if !strings.Contains(disp, `causelist_19272_10012025.json`) {
			t.Errorf("content disposition = %q; want filename causelist_19272_10012025.json", disp)
		}
		var exported causelist.Snapshot
		if err := json.Unmarshal(rec.Body.Bytes(), &exported); err != nil {
			t.Fatalf("export is not valid JSON: %v", err)
		}
		if exported.ID != snap.ID {
			t.Errorf("exported ID = %s; want %s", exported.ID, snap.ID)
		}
	})

	t.Run("Export unknown snapshot", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/causelists/lol/export", token)
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/causelists/"+snap.ID, token)
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusNoContent)
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/causelists", token)
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t, []interface{}{}...)}
		checkCodeAndData(t, tt, rec)
	})
}
