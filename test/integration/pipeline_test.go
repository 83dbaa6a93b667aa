package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/form-live/api/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full pipeline round trip: votes in, aggregation run, ranked results out.
func TestAggregationPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	idA := createGroup(t, app, "Team A")
	idB := createGroup(t, app, "Team B")
	idC := createGroup(t, app, "Team C")

	// Team A: 5,4,5 -> 4.67; Team B: 3 -> 3.0; Team C: no votes -> 0
	for _, score := range []float64{5, 4, 5} {
		resp := submitVote(t, app, idA, "device-"+uuid.NewString(), score)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	resp := submitVote(t, app, idB, "device-"+uuid.NewString(), 3)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Trigger one batch run through the admin endpoint
	resp, err := app.Client.Post(app.Server.URL+"/api/admin/aggregation/run", "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Public results reflect the ranking
	resp, err = app.Client.Get(app.Server.URL + "/api/results")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Results   []domain.Result `json:"results"`
		UpdatedAt *time.Time      `json:"updated_at"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.Len(t, payload.Results, 3)
	require.NotNil(t, payload.UpdatedAt)

	byName := map[string]domain.Result{}
	for _, r := range payload.Results {
		byName[r.GroupName] = r
	}

	assert.Equal(t, 4.67, byName["Team A"].AverageScore)
	assert.Equal(t, 1, byName["Team A"].Rank)
	assert.Equal(t, 14, byName["Team A"].TotalScore)
	assert.Equal(t, 3, byName["Team A"].VoteCount)

	assert.Equal(t, 3.0, byName["Team B"].AverageScore)
	assert.Equal(t, 2, byName["Team B"].Rank)

	assert.Equal(t, 0.0, byName["Team C"].AverageScore)
	assert.Equal(t, 3, byName["Team C"].Rank)
	assert.Equal(t, 0, byName["Team C"].VoteCount)
	assert.Equal(t, idC, byName["Team C"].GroupID.String())
}

func TestResultsHidden(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	patch, _ := json.Marshal(map[string]bool{"results_visible": false})
	req, err := http.NewRequest(http.MethodPatch, app.Server.URL+"/api/admin/settings", bytes.NewReader(patch))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Client.Get(app.Server.URL + "/api/results")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestCSVExport(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	groupID := createGroup(t, app, "Team A")

	resp := submitVote(t, app, groupID, "device-"+uuid.NewString(), 5)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err := app.Client.Get(app.Server.URL + "/api/admin/votes/export")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	lines := strings.Split(strings.TrimRight(body.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "groupId,groupName,score,deviceId,createdAt", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], groupID+",Team A,5,device-"))
}

func TestManualRunWhileSchedulerBusy(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// Aggregation status endpoint answers even with an empty history
	resp, err := app.Client.Get(app.Server.URL + "/api/admin/aggregation/status")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status struct {
		IsProcessing bool              `json:"is_processing"`
		History      []json.RawMessage `json:"history"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	resp.Body.Close()
	assert.False(t, status.IsProcessing)
	assert.Empty(t, status.History)
}
