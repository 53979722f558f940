package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studentreg/internal/app/models/dto"
	"github.com/yigit/studentreg/internal/form"
)

type fakeAPI struct {
	mu       sync.Mutex
	created  []dto.CreateStudentRequest
	students string
	health   string
	failWith string
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
	mux.HandleFunc("POST /api/getAllStudents", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `{"success":true,"data":`+f.students+`}`)
	})
	mux.HandleFunc("POST /api/health", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `{"success":true,"data":`+f.health+`}`)
	})
	mux.HandleFunc("POST /api/hello", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `{"success":true,"data":{"message":"Hello World"}}`)
	})
	mux.HandleFunc("POST /api/createStudent", func(w http.ResponseWriter, r *http.Request) {
		if f.failWith != "" {
			write(w, http.StatusBadRequest, `{"success":false,"error":"`+f.failWith+`"}`)
			return
		}
		var req dto.CreateStudentRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.mu.Lock()
		f.created = append(f.created, req)
		f.mu.Unlock()
		write(w, http.StatusOK, `{"success":true,"data":{"_id":"6650f0c2a1b2c3d4e5f60718"}}`)
	})
	return mux
}

func run(t *testing.T, api *fakeAPI, input string, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	cmd := NewRootCommand(strings.NewReader(input), &out)
	cmd.SetArgs(append([]string{"--api-url", srv.URL, "--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList(t *testing.T) {
	api := &fakeAPI{students: `[
		{"_id":"6650f0c2a1b2c3d4e5f60718","firstName":"Ada","lastName":"Lovelace","studentId":"S-1","department":"computer-science","year":2,"address":{"city":"Boston","country":"USA"},"createdAt":"2025-04-23T12:01:05.123Z"},
		{"_id":"6650f0c2a1b2c3d4e5f60719","firstName":"Marie","lastName":"Curie","studentId":"S-2","department":"physics","year":3,"address":{"city":"Paris","country":"France"}}
	]`}

	out, err := run(t, api, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered Students (2)")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Computer Science")
	assert.Contains(t, out, "Boston, United States")
	assert.Contains(t, out, "2025-04-23T12:01:05.123Z")
	assert.Contains(t, out, "Marie Curie")
}

func TestList_Empty(t *testing.T) {
	out, err := run(t, &fakeAPI{students: `[]`}, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered Students (0)")
	assert.Contains(t, out, "No students registered yet.")
}

func TestHealthAndHello(t *testing.T) {
	api := &fakeAPI{health: `{"status":"ok","timestamp":"2025-04-23T12:01:05.123Z","uptime":3.2,"mongodb":"connected"}`}
	out, err := run(t, api, "", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "All systems operational")
	assert.Contains(t, out, "3.2s")

	api.health = `{"status":"ok","timestamp":"2025-04-23T12:01:05.123Z","uptime":3.2,"mongodb":"disconnected"}`
	out, err = run(t, api, "", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "Service degraded")

	out, err = run(t, api, "", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello World")
	assert.NotContains(t, out, "API request")

	out, err = run(t, api, "", "--verbose", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "API request")
	assert.Contains(t, out, "/api/hello")
}

// answers for every prompt in registerPrompts order
var registerAnswers = []string{
	"Ada", "Lovelace", "ada@example.com", "2004-12-10", "S-2024-001",
	"12345", // phone, rejected the first time
	"12 Analytical Way", "Boston", "MA", "02108",
	"",  // country, keeps the default
	"2024-09-01", "B.Sc. Computer Science",
	"1", // department by index
	"2", "", "",
}

func TestRegister_RepromptsInvalidFields(t *testing.T) {
	api := &fakeAPI{}
	input := strings.Join(append(registerAnswers, "555 123 4567"), "\n") + "\n"

	out, err := run(t, api, input, "register")
	require.NoError(t, err)

	assert.Contains(t, out, "Phone number must be at least 10 digits")
	assert.Contains(t, out, `Student "Ada Lovelace" has been registered successfully!`)

	require.Len(t, api.created, 1)
	got := api.created[0]
	assert.Equal(t, "555 123 4567", got.Phone)
	assert.Equal(t, "computer-science", got.Department)
	assert.Equal(t, "USA", got.Address.Country)
	assert.Equal(t, 2, got.Year)
	assert.Equal(t, "2004-12-10", got.DateOfBirth.String())
}

func TestRegister_ServerRejects(t *testing.T) {
	api := &fakeAPI{failWith: "Email already registered"}
	answers := append([]string(nil), registerAnswers...)
	answers[5] = "5551234567"

	out, err := run(t, api, strings.Join(answers, "\n")+"\n", "register")
	require.Error(t, err)
	assert.EqualError(t, err, "Email already registered")
	assert.Contains(t, out, "Email already registered")
}

func TestRegister_InputClosed(t *testing.T) {
	_, err := run(t, &fakeAPI{}, "Ada\nLovelace\n", "register")
	assert.ErrorIs(t, err, errInputClosed)
}

func TestResolveChoice(t *testing.T) {
	assert.Equal(t, "India", resolveChoice(form.CountryOptions, "1"))
	assert.Equal(t, "UK", resolveChoice(form.CountryOptions, "united kingdom"))
	assert.Equal(t, "physics", resolveChoice(form.DepartmentOptions, "Physics"))
	assert.Equal(t, "Atlantis", resolveChoice(form.CountryOptions, "Atlantis"))
	assert.Equal(t, "99", resolveChoice(form.CountryOptions, "99"))
}
