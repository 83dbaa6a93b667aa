package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/form-live/api/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// 1. Create two groups
	idA := createGroup(t, app, "Team A")
	idB := createGroup(t, app, "Team B")

	// 2. Public listing returns them in display order
	resp, err := app.Client.Get(app.Server.URL + "/api/groups")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var groups []domain.Group
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&groups))
	resp.Body.Close()

	require.Len(t, groups, 2)
	assert.Equal(t, "Team A", groups[0].Name)
	assert.Equal(t, 1, groups[0].DisplayOrder)
	assert.Equal(t, "Team B", groups[1].Name)
	assert.Equal(t, 2, groups[1].DisplayOrder)

	// 3. Rename group A
	body, _ := json.Marshal(map[string]string{"name": "Team A Renamed"})
	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/api/admin/groups/%s", app.Server.URL, idA), bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// 4. Reorder: B first
	reorder, _ := json.Marshal(map[string]map[string]int{"orders": {idA: 2, idB: 1}})
	req, err = http.NewRequest(http.MethodPut, app.Server.URL+"/api/admin/groups/reorder", bytes.NewReader(reorder))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Client.Get(app.Server.URL + "/api/groups")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&groups))
	resp.Body.Close()
	assert.Equal(t, "Team B", groups[0].Name)
	assert.Equal(t, "Team A Renamed", groups[1].Name)

	// 5. Delete group B
	req, err = http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/admin/groups/%s", app.Server.URL, idB), nil)
	require.NoError(t, err)
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM groups").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestDeleteGroupWithVotesRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	groupID := createGroup(t, app, "Team A")

	resp := submitVote(t, app, groupID, "device-"+uuid.NewString(), 4)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/admin/groups/%s", app.Server.URL, groupID), nil)
	require.NoError(t, err)
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM groups").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestBulkCreateGroups(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	body, _ := json.Marshal(map[string][]string{"names": {"A", "B", "C"}})
	resp, err := app.Client.Post(app.Server.URL+"/api/admin/groups/bulk", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Len(t, created["ids"], 3)
}
