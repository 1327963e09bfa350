package tests

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func truncateAllTables(db *sql.DB) {
	queries := []string{
		`TRUNCATE TABLE memberships RESTART IDENTITY CASCADE;`,
		`TRUNCATE TABLE teams RESTART IDENTITY CASCADE;`,
		`TRUNCATE TABLE users RESTART IDENTITY CASCADE;`,
		`TRUNCATE TABLE companies RESTART IDENTITY CASCADE;`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			panic(err)
		}
	}
}

func seedCompany(t *testing.T, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(`INSERT INTO companies (id, name) VALUES ($1, $2)`, id, name)
	require.NoError(t, err)
	return id
}

func seedUser(t *testing.T, companyID *uuid.UUID, role string, qualified bool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(
		`INSERT INTO users (id, name, company_id, role, qualified) VALUES ($1, $2, $3, $4, $5)`,
		id, "user-"+id.String()[:8], companyID, role, qualified)
	require.NoError(t, err)
	return id
}

func doRequest(t *testing.T, method, path string, actorID uuid.UUID, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, baseURL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", actorID.String())

	resp, err := httpClient.Do(req)
	require.NoError(t, err)

	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func countRows(t *testing.T, table string, where string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE `+where, args...).Scan(&n))
	return n
}
