package socket

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/corey/carbot/internal/domain/dispatch"
	"github.com/corey/carbot/internal/ports"
)

// =============================================================================
// Unix socket daemon: JSON-over-socket protocol for ask, patterns, health, shutdown
// =============================================================================

type testBackend struct {
	*dispatch.Dispatcher
}

func (b testBackend) Patterns() []string { return b.Table().Patterns() }
func (b testBackend) Catalog() string    { return "films" }
func (b testBackend) RecordCount() int   { return 2 }

func testFixtures(t *testing.T) Backend {
	t.Helper()
	directors := map[string]string{"jaws": "steven spielberg", "chinatown": "roman polanski"}
	table, err := dispatch.NewTable([]dispatch.Rule{
		{Pattern: "who directed %", Action: func(c []string) ([]string, error) {
			if d, ok := directors[c[0]]; ok {
				return []string{d}, nil
			}
			return nil, nil
		}},
		{Pattern: "fail on _", Action: func(c []string) ([]string, error) {
			return nil, errors.New("boom")
		}},
		{Pattern: "bye", Action: dispatch.Bye},
	})
	require.NoError(t, err)
	return testBackend{dispatch.NewDispatcher(table)}
}

// testSocketPath keeps socket paths short; Unix sockets cap them near 108 bytes.
func testSocketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "carbot-sock")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "d.sock")
}

func startServer(t *testing.T) (*Server, *Client) {
	t.Helper()
	sockPath := testSocketPath(t)
	srv := NewServer(testFixtures(t), sockPath, zaptest.NewLogger(t))
	require.NoError(t, srv.Start())
	t.Cleanup(func() { srv.Stop() })
	return srv, NewClient(sockPath)
}

func TestSocketPath_StableAndCatalogScoped(t *testing.T) {
	a := SocketPath("/srv/carbot", "cars")
	assert.Equal(t, a, SocketPath("/srv/carbot", "cars"))
	assert.NotEqual(t, a, SocketPath("/srv/carbot", "movies"))
	assert.NotEqual(t, a, SocketPath("/srv/other", "cars"))
	assert.True(t, strings.HasPrefix(a, "/tmp/carbot-"))
	assert.True(t, strings.HasSuffix(a, ".sock"))
}

func TestServer_AskRoundtrip(t *testing.T) {
	_, client := startServer(t)

	result, err := client.Ask([]string{"who", "directed", "jaws"})
	require.NoError(t, err)
	assert.Equal(t, []string{"steven spielberg"}, result.Reply.Answers)
	assert.Equal(t, "who directed %", result.Reply.Pattern)
	assert.Equal(t, []string{"jaws"}, result.Reply.Captures)
	assert.NotEmpty(t, result.Elapsed)
}

func TestServer_AskSentinels(t *testing.T) {
	_, client := startServer(t)

	reply, err := client.Answer([]string{"who", "directed", "nothing"})
	require.NoError(t, err)
	assert.Equal(t, []string{dispatch.NoAnswers}, reply.Answers)

	reply, err = client.Answer([]string{"hi", "there"})
	require.NoError(t, err)
	assert.Equal(t, []string{dispatch.NotUnderstood}, reply.Answers)
}

func TestServer_ByeDoesNotStopDaemon(t *testing.T) {
	srv, client := startServer(t)

	reply, err := client.Answer([]string{"bye"})
	require.NoError(t, err)
	assert.True(t, reply.Terminate)
	assert.Nil(t, reply.Answers)

	select {
	case <-srv.ShutdownCh():
		t.Fatal("bye must not signal daemon shutdown")
	default:
	}
	assert.True(t, client.Ping())
}

func TestServer_ActionErrorReturned(t *testing.T) {
	_, client := startServer(t)

	_, err := client.Answer([]string{"fail", "on", "this"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error")
	assert.Contains(t, err.Error(), "boom")

	// connection-level failure does not poison later requests
	reply, err := client.Answer([]string{"who", "directed", "chinatown"})
	require.NoError(t, err)
	assert.Equal(t, []string{"roman polanski"}, reply.Answers)
}

func TestServer_Patterns(t *testing.T) {
	_, client := startServer(t)

	result, err := client.Patterns()
	require.NoError(t, err)
	assert.Equal(t, "films", result.Catalog)
	assert.Equal(t, []string{"who directed %", "fail on _", "bye"}, result.Patterns)
}

func TestServer_Health(t *testing.T) {
	_, client := startServer(t)

	health, err := client.Health()
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "films", health.Catalog)
	assert.Equal(t, 2, health.Records)
	assert.Equal(t, 3, health.Rules)
	assert.NotEmpty(t, health.Uptime)
}

func TestServer_UnknownMethodAndBadJSON(t *testing.T) {
	srv, _ := startServer(t)

	conn, err := net.Dial("unix", srv.Addr())
	require.NoError(t, err)
	defer conn.Close()
	scanner := bufio.NewScanner(conn)

	_, err = conn.Write([]byte("{not json\n"))
	require.NoError(t, err)
	require.True(t, scanner.Scan())
	var resp Response
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
	assert.Equal(t, "invalid request JSON", resp.Error)

	_, err = conn.Write([]byte(`{"id":"x","method":"dance"}` + "\n"))
	require.NoError(t, err)
	require.True(t, scanner.Scan())
	resp = Response{}
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
	assert.Equal(t, "x", resp.ID)
	assert.Equal(t, "unknown method: dance", resp.Error)
}

func TestServer_Shutdown(t *testing.T) {
	sockPath := testSocketPath(t)
	srv := NewServer(testFixtures(t), sockPath, nil)
	require.NoError(t, srv.Start())

	client := NewClient(sockPath)
	assert.True(t, client.Ping())

	require.NoError(t, client.Shutdown())

	select {
	case <-srv.ShutdownCh():
	default:
		t.Fatal("ShutdownCh should be closed after Shutdown request")
	}

	// The daemon is responsible for calling Stop() after receiving the signal.
	srv.Stop()
	srv.Stop()

	_, err := os.Stat(sockPath)
	assert.True(t, os.IsNotExist(err), "socket file should be removed after shutdown")
	assert.False(t, client.Ping())
}

func TestServer_ConcurrentClients(t *testing.T) {
	_, client := startServer(t)

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	// 10 clients x 10 requests each
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := NewClient(client.sockPath)
			for j := 0; j < 10; j++ {
				reply, err := c.Answer([]string{"who", "directed", "jaws"})
				if err != nil {
					errs <- err
					return
				}
				if len(reply.Answers) != 1 {
					errs <- assert.AnError
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent client error: %v", err)
	}
}

func TestServer_StaleSocket(t *testing.T) {
	sockPath := testSocketPath(t)

	// A plain file where the socket should be: nothing is listening.
	require.NoError(t, os.WriteFile(sockPath, []byte("stale"), 0600))

	srv := NewServer(testFixtures(t), sockPath, nil)
	require.NoError(t, srv.Start(), "should replace stale socket")
	defer srv.Stop()

	health, err := NewClient(sockPath).Health()
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}

func TestServer_AlreadyRunning(t *testing.T) {
	srv, _ := startServer(t)

	second := NewServer(testFixtures(t), srv.Addr(), nil)
	err := second.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daemon already running")
}

func TestClient_NoDaemon(t *testing.T) {
	client := NewClient(testSocketPath(t))
	assert.False(t, client.Ping())
	_, err := client.Answer([]string{"bye"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect")
}

var _ ports.Answerer = (*Client)(nil)
