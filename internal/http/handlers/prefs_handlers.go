package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/asset-dashboard/internal/repo"
)

// loadPrefs returns the caller's stored preferences, normalized, or the
// role default when nothing usable is stored.
func loadPrefs(id Identity) (repo.Preferences, bool, error) {
	prefs, err := prefRepo.Get(id.UserID)
	if errors.Is(err, repo.ErrPreferencesNotFound) {
		return repo.DefaultPreferences(id.Role), true, nil
	}
	if err != nil {
		return repo.Preferences{}, false, err
	}
	return repo.Normalize(prefs, id.Role), false, nil
}

// GetPreferencesHandler godoc
// @Summary Stored dashboard preferences for the caller
// @Description Missing or corrupt stored state falls back to the role's default layout
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PreferencesResponse
// @Failure 500 {string} string "Store unavailable"
// @Router /preferences [get]
func GetPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	id := IdentityFromRequest(r)
	prefs, isDefault, err := loadPrefs(id)
	if err != nil {
		http.Error(w, "could not load preferences", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse(prefs, isDefault))
}

// PutLayoutHandler godoc
// @Summary Replace the widget layout
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param layout body LayoutRequest true "Ordered widget identifiers"
// @Success 200 {object} PreferencesResponse
// @Failure 400 {object} map[string]string
// @Router /preferences/layout [put]
func PutLayoutHandler(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if len(req.Layout) == 0 {
		http.Error(w, "layout must not be empty", http.StatusBadRequest)
		return
	}
	for _, widget := range req.Layout {
		if widget == "" {
			http.Error(w, "layout contains an empty widget id", http.StatusBadRequest)
			return
		}
	}

	id := IdentityFromRequest(r)
	prefs, _, err := loadPrefs(id)
	if err != nil {
		http.Error(w, "could not load preferences", http.StatusInternalServerError)
		return
	}
	prefs.Layout = req.Layout
	if err := prefRepo.Save(id.UserID, prefs); err != nil {
		http.Error(w, "could not save preferences", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse(prefs, false))
}

// PutThemeHandler godoc
// @Summary Set the theme preference
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param theme body ThemeRequest true "light or dark"
// @Success 200 {object} PreferencesResponse
// @Failure 400 {object} map[string]string
// @Router /preferences/theme [put]
func PutThemeHandler(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.Theme != repo.ThemeLight && req.Theme != repo.ThemeDark {
		http.Error(w, "theme must be light or dark", http.StatusBadRequest)
		return
	}

	id := IdentityFromRequest(r)
	prefs, _, err := loadPrefs(id)
	if err != nil {
		http.Error(w, "could not load preferences", http.StatusInternalServerError)
		return
	}
	prefs.Theme = req.Theme
	if err := prefRepo.Save(id.UserID, prefs); err != nil {
		http.Error(w, "could not save preferences", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse(prefs, false))
}

// SavePresetHandler godoc
// @Summary Save the current (or an explicit) layout as a named preset
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Preset name"
// @Param layout body LayoutRequest false "Layout to store; defaults to the current layout"
// @Success 201 {object} PreferencesResponse
// @Failure 400 {object} map[string]string
// @Router /preferences/presets/{name} [post]
func SavePresetHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		http.Error(w, "preset name is required", http.StatusBadRequest)
		return
	}

	var req LayoutRequest
	// The body is optional: an empty body snapshots the current layout.
	_ = readJSON(w, r, &req)

	id := IdentityFromRequest(r)
	prefs, _, err := loadPrefs(id)
	if err != nil {
		http.Error(w, "could not load preferences", http.StatusInternalServerError)
		return
	}

	layout := req.Layout
	if len(layout) == 0 {
		layout = prefs.Layout
	}
	prefs.Presets[name] = layout

	if err := prefRepo.Save(id.UserID, prefs); err != nil {
		http.Error(w, "could not save preferences", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, preferencesResponse(prefs, false))
}

// ApplyPresetHandler godoc
// @Summary Make a named preset the active layout
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Param name path string true "Preset name"
// @Success 200 {object} PreferencesResponse
// @Failure 404 {string} string "Preset not found"
// @Router /preferences/presets/{name}/apply [post]
func ApplyPresetHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	id := IdentityFromRequest(r)
	prefs, _, err := loadPrefs(id)
	if err != nil {
		http.Error(w, "could not load preferences", http.StatusInternalServerError)
		return
	}

	layout, ok := prefs.Presets[name]
	if !ok {
		http.Error(w, "preset not found", http.StatusNotFound)
		return
	}
	prefs.Layout = layout

	if err := prefRepo.Save(id.UserID, prefs); err != nil {
		http.Error(w, "could not save preferences", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse(prefs, false))
}

// DeletePresetHandler godoc
// @Summary Delete a named preset
// @Tags preferences
// @Security BearerAuth
// @Param name path string true "Preset name"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Preset not found"
// @Router /preferences/presets/{name} [delete]
func DeletePresetHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	id := IdentityFromRequest(r)
	prefs, isDefault, err := loadPrefs(id)
	if err != nil {
		http.Error(w, "could not load preferences", http.StatusInternalServerError)
		return
	}

	if _, ok := prefs.Presets[name]; !ok || isDefault {
		http.Error(w, "preset not found", http.StatusNotFound)
		return
	}
	delete(prefs.Presets, name)

	if err := prefRepo.Save(id.UserID, prefs); err != nil {
		http.Error(w, "could not save preferences", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportPreferencesHandler godoc
// @Summary Export the full preference document
// @Description The payload round-trips through the import endpoint
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} repo.Preferences
// @Router /preferences/export [get]
func ExportPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	id := IdentityFromRequest(r)
	prefs, _, err := loadPrefs(id)
	if err != nil {
		http.Error(w, "could not load preferences", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// ImportPreferencesHandler godoc
// @Summary Replace stored preferences with an exported document
// @Description The document is normalized before storing; bad fields fall back to the role default
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param preferences body repo.Preferences true "Exported preference document"
// @Success 200 {object} PreferencesResponse
// @Failure 400 {object} map[string]string
// @Router /preferences/import [post]
func ImportPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	var prefs repo.Preferences
	if err := readJSON(w, r, &prefs); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	id := IdentityFromRequest(r)
	prefs = repo.Normalize(prefs, id.Role)
	if err := prefRepo.Save(id.UserID, prefs); err != nil {
		http.Error(w, "could not save preferences", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse(prefs, false))
}

// ResetPreferencesHandler godoc
// @Summary Discard stored preferences and return to the role default
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PreferencesResponse
// @Router /preferences/reset [post]
func ResetPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	id := IdentityFromRequest(r)
	if err := prefRepo.Reset(id.UserID); err != nil {
		http.Error(w, "could not reset preferences", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse(repo.DefaultPreferences(id.Role), true))
}
