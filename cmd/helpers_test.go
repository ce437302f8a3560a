package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"hubctl/internal/api"
	"hubctl/internal/cli"
	"hubctl/internal/profile"
	"hubctl/internal/prompt/prompttest"

	"github.com/stretchr/testify/assert"
)

// runCLI executes a fresh command tree with args against storage and the
// scripted prompter and returns what it wrote to stdout and stderr.
func runCLI(t *testing.T, storage *profile.Storage, script *prompttest.Script, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(profile.ProfileEnvVar, "")
	t.Setenv(cli.EndpointEnvVar, "")
	t.Setenv(cli.TokenEnvVar, "test-token")

	root := newRootCmd(cli.WithStorage(storage), cli.WithPrompter(script))
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func newTestStorage(t *testing.T) *profile.Storage {
	t.Helper()
	return profile.NewStorageWithPath(t.TempDir())
}

// fakeAPI serves the channel and organization endpoints from memory.
type fakeAPI struct {
	mu            sync.Mutex
	channels      []api.Channel
	organizations []api.Organization
	// orgChannels are returned instead of channels for requests scoped to an
	// organization.
	orgChannels map[string][]api.Channel
	created     []api.ChannelCreate
	updated     map[string]api.ChannelCreate
	deleted     []string
	gets        []string
}

func newFakeAPI(t *testing.T, channels ...api.Channel) (*fakeAPI, string) {
	t.Helper()
	f := &fakeAPI{channels: channels, updated: map[string]api.ChannelCreate{}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /distchannels", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		items := f.channels
		if org := r.Header.Get("X-ST-Organization"); org != "" {
			items = f.orgChannels[org]
		}
		writeTestJSON(t, w, map[string]any{"items": items})
	})
	mux.HandleFunc("GET /distchannels/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.gets = append(f.gets, r.PathValue("id"))
		for _, ch := range f.channels {
			if ch.ChannelID == r.PathValue("id") {
				writeTestJSON(t, w, ch)
				return
			}
		}
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("POST /distchannels", func(w http.ResponseWriter, r *http.Request) {
		var in api.ChannelCreate
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		f.mu.Lock()
		defer f.mu.Unlock()
		f.created = append(f.created, in)
		writeTestJSON(t, w, api.Channel{ChannelID: "new-id", Name: in.Name, Description: in.Description, Type: in.Type})
	})
	mux.HandleFunc("PUT /distchannels/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in api.ChannelCreate
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		f.mu.Lock()
		defer f.mu.Unlock()
		f.updated[r.PathValue("id")] = in
		writeTestJSON(t, w, api.Channel{ChannelID: r.PathValue("id"), Name: in.Name, Description: in.Description, Type: in.Type})
	})
	mux.HandleFunc("DELETE /distchannels/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.deleted = append(f.deleted, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /organizations", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeTestJSON(t, w, map[string]any{"items": f.organizations})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return f, server.URL
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func sampleChannels() []api.Channel {
	return []api.Channel{
		{ChannelID: "id-c", Name: "charlie", Description: "third"},
		{ChannelID: "id-a", Name: "Alpha", Description: "first"},
		{ChannelID: "id-b", Name: "bravo", Description: "second"},
	}
}
