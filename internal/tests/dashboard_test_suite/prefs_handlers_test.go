package dashboard_test_suite

import (
	"net/http"
	"reflect"
	"testing"

	handler "github.com/rogerio-castellano/asset-dashboard/internal/http/handlers"
	"github.com/rogerio-castellano/asset-dashboard/internal/repo"
)

func TestGetPreferences_DefaultByRole(t *testing.T) {
	prefRepo.Reset(1)
	prefRepo.Reset(2)

	w := doRequest(http.MethodGet, "/preferences/", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp, err := decodeBody[handler.PreferencesResponse](w)
	if err != nil {
		t.Fatalf("decoding failed: %v", err)
	}
	if !resp.Default {
		t.Error("a fresh user must get the default flag")
	}
	if !reflect.DeepEqual(resp.Layout, repo.DefaultLayout("admin")) {
		t.Errorf("expected the admin default layout, got %v", resp.Layout)
	}
	if resp.Theme != repo.ThemeLight {
		t.Errorf("expected the light theme default, got %q", resp.Theme)
	}

	// The operator role gets its own, smaller default.
	w = doRequest(http.MethodGet, "/preferences/", operatorToken, nil)
	resp, err = decodeBody[handler.PreferencesResponse](w)
	if err != nil {
		t.Fatalf("decoding failed: %v", err)
	}
	if !reflect.DeepEqual(resp.Layout, repo.DefaultLayout("operator")) {
		t.Errorf("expected the operator default layout, got %v", resp.Layout)
	}
}

func TestPutLayout(t *testing.T) {
	prefRepo.Reset(1)

	layout := []string{"kpi-total-value", "chart-evolution"}
	w := doRequest(http.MethodPut, "/preferences/layout", adminToken, handler.LayoutRequest{Layout: layout})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp, err := decodeBody[handler.PreferencesResponse](w)
	if err != nil {
		t.Fatalf("decoding failed: %v", err)
	}
	if !reflect.DeepEqual(resp.Layout, layout) {
		t.Errorf("expected %v, got %v", layout, resp.Layout)
	}
	if resp.Default {
		t.Error("a saved layout is not a default")
	}

	// The saved layout survives a reload.
	w = doRequest(http.MethodGet, "/preferences/", adminToken, nil)
	resp, _ = decodeBody[handler.PreferencesResponse](w)
	if !reflect.DeepEqual(resp.Layout, layout) {
		t.Errorf("expected the stored layout back, got %v", resp.Layout)
	}
}

func TestPutLayout_Validation(t *testing.T) {
	w := doRequest(http.MethodPut, "/preferences/layout", adminToken, handler.LayoutRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an empty layout, got %d", w.Code)
	}

	w = doRequest(http.MethodPut, "/preferences/layout", adminToken, handler.LayoutRequest{Layout: []string{"kpi-total-value", ""}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an empty widget id, got %d", w.Code)
	}
}

func TestPutTheme(t *testing.T) {
	prefRepo.Reset(1)

	w := doRequest(http.MethodPut, "/preferences/theme", adminToken, handler.ThemeRequest{Theme: "dark"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp, err := decodeBody[handler.PreferencesResponse](w)
	if err != nil {
		t.Fatalf("decoding failed: %v", err)
	}
	if resp.Theme != repo.ThemeDark {
		t.Errorf("expected dark, got %q", resp.Theme)
	}

	w = doRequest(http.MethodPut, "/preferences/theme", adminToken, handler.ThemeRequest{Theme: "neon"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an unknown theme, got %d", w.Code)
	}
}

func TestPresetLifecycle(t *testing.T) {
	prefRepo.Reset(1)

	// Set a layout, snapshot it as a preset, change the layout, apply the
	// preset back.
	layout := []string{"kpi-pending-value", "chart-branch"}
	doRequest(http.MethodPut, "/preferences/layout", adminToken, handler.LayoutRequest{Layout: layout})

	w := doRequest(http.MethodPost, "/preferences/presets/audit", adminToken, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	resp, err := decodeBody[handler.PreferencesResponse](w)
	if err != nil {
		t.Fatalf("decoding failed: %v", err)
	}
	if !reflect.DeepEqual(resp.Presets["audit"], layout) {
		t.Errorf("expected the preset to snapshot the current layout, got %v", resp.Presets["audit"])
	}

	doRequest(http.MethodPut, "/preferences/layout", adminToken, handler.LayoutRequest{Layout: []string{"kpi-total-items"}})

	w = doRequest(http.MethodPost, "/preferences/presets/audit/apply", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp, _ = decodeBody[handler.PreferencesResponse](w)
	if !reflect.DeepEqual(resp.Layout, layout) {
		t.Errorf("expected the preset layout restored, got %v", resp.Layout)
	}

	w = doRequest(http.MethodDelete, "/preferences/presets/audit", adminToken, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = doRequest(http.MethodPost, "/preferences/presets/audit/apply", adminToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for a deleted preset, got %d", w.Code)
	}
}

func TestPreset_ExplicitLayoutBody(t *testing.T) {
	prefRepo.Reset(1)

	layout := []string{"chart-category", "table-top-items"}
	w := doRequest(http.MethodPost, "/preferences/presets/compact", adminToken, handler.LayoutRequest{Layout: layout})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	resp, err := decodeBody[handler.PreferencesResponse](w)
	if err != nil {
		t.Fatalf("decoding failed: %v", err)
	}
	if !reflect.DeepEqual(resp.Presets["compact"], layout) {
		t.Errorf("expected the explicit layout stored, got %v", resp.Presets["compact"])
	}
}

func TestDeletePreset_NotFound(t *testing.T) {
	prefRepo.Reset(1)

	w := doRequest(http.MethodDelete, "/preferences/presets/ghost", adminToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	prefRepo.Reset(1)

	layout := []string{"kpi-total-value", "chart-evolution"}
	doRequest(http.MethodPut, "/preferences/layout", adminToken, handler.LayoutRequest{Layout: layout})
	doRequest(http.MethodPost, "/preferences/presets/backup", adminToken, nil)

	w := doRequest(http.MethodGet, "/preferences/export", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	exported, err := decodeBody[repo.Preferences](w)
	if err != nil {
		t.Fatalf("decoding failed: %v", err)
	}
	if !reflect.DeepEqual(exported.Layout, layout) {
		t.Fatalf("unexpected exported layout: %v", exported.Layout)
	}

	// Wipe and restore from the exported document.
	doRequest(http.MethodPost, "/preferences/reset", adminToken, nil)

	w = doRequest(http.MethodPost, "/preferences/import", adminToken, exported)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp, err := decodeBody[handler.PreferencesResponse](w)
	if err != nil {
		t.Fatalf("decoding failed: %v", err)
	}
	if !reflect.DeepEqual(resp.Layout, layout) {
		t.Errorf("expected the imported layout, got %v", resp.Layout)
	}
	if !reflect.DeepEqual(resp.Presets["backup"], layout) {
		t.Errorf("expected the imported preset, got %v", resp.Presets)
	}
}

func TestImportPreferences_NormalizesBadFields(t *testing.T) {
	prefRepo.Reset(1)

	w := doRequest(http.MethodPost, "/preferences/import", adminToken, repo.Preferences{Theme: "neon"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp, err := decodeBody[handler.PreferencesResponse](w)
	if err != nil {
		t.Fatalf("decoding failed: %v", err)
	}
	if resp.Theme != repo.ThemeLight {
		t.Errorf("expected the theme normalized to light, got %q", resp.Theme)
	}
	if !reflect.DeepEqual(resp.Layout, repo.DefaultLayout("admin")) {
		t.Errorf("expected the role default layout, got %v", resp.Layout)
	}
}

func TestResetPreferences(t *testing.T) {
	doRequest(http.MethodPut, "/preferences/theme", adminToken, handler.ThemeRequest{Theme: "dark"})

	w := doRequest(http.MethodPost, "/preferences/reset", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp, err := decodeBody[handler.PreferencesResponse](w)
	if err != nil {
		t.Fatalf("decoding failed: %v", err)
	}
	if !resp.Default || resp.Theme != repo.ThemeLight {
		t.Errorf("expected the role default back, got %+v", resp)
	}
}

func TestPreferences_CorruptStateFallsBack(t *testing.T) {
	prefRepo.SetRaw(1, []byte(`{"layout": broken`))

	w := doRequest(http.MethodGet, "/preferences/", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 despite corrupt state, got %d", w.Code)
	}
	resp, err := decodeBody[handler.PreferencesResponse](w)
	if err != nil {
		t.Fatalf("decoding failed: %v", err)
	}
	if !resp.Default {
		t.Error("corrupt state must fall back to the role default")
	}
	if !reflect.DeepEqual(resp.Layout, repo.DefaultLayout("admin")) {
		t.Errorf("expected the admin default layout, got %v", resp.Layout)
	}
}
