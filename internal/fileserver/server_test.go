package fileserver_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mybrain/journal/internal/domain"
	"github.com/mybrain/journal/internal/fileserver"
)

// ServerTestSuite runs a live server on a loopback ephemeral port per test.
type ServerTestSuite struct {
	suite.Suite
	root     string
	server   *fileserver.Server
	serveErr chan error
	baseURL  string
	client   *http.Client
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.root = s.T().TempDir()
	s.writeFile("index.html", "<h1>SoulOS</h1>")
	s.writeFile("main.js", "console.log('ring');\n")
	s.writeFile("notes/day1.md", "# Day 1\n$$x$$\n")

	srv, err := fileserver.New(fileserver.Config{Root: s.root, Host: "127.0.0.1", Port: "0"})
	s.Require().NoError(err)
	s.Require().NoError(srv.Listen(context.Background()))
	s.server = srv

	s.serveErr = make(chan error, 1)
	go func() {
		s.serveErr <- srv.Serve()
	}()

	s.baseURL = "http://" + srv.Addr().String()
	s.client = &http.Client{
		Transport: &http.Transport{DisableKeepAlives: true},
		Timeout:   5 * time.Second,
	}
}

func (s *ServerTestSuite) TearDownTest() {
	s.client.CloseIdleConnections()
	s.Require().NoError(s.server.Close())
	s.Require().NoError(<-s.serveErr)
}

func (s *ServerTestSuite) writeFile(rel, content string) {
	path := filepath.Join(s.root, filepath.FromSlash(rel))
	s.Require().NoError(os.MkdirAll(filepath.Dir(path), 0o755))
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
}

func (s *ServerTestSuite) get(path string) (*http.Response, string) {
	resp, err := s.client.Get(s.baseURL + path)
	s.Require().NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, string(body)
}

func (s *ServerTestSuite) TestGetExistingFile() {
	resp, body := s.get("/notes/day1.md")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("# Day 1\n$$x$$\n", body)
}

func (s *ServerTestSuite) TestGetInfersContentType() {
	resp, _ := s.get("/index.html")
	s.Equal("text/html; charset=utf-8", resp.Header.Get("Content-Type"))
}

func (s *ServerTestSuite) TestRootServesIndex() {
	resp, body := s.get("/")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("<h1>SoulOS</h1>", body)
}

func (s *ServerTestSuite) TestDirectoryListing() {
	resp, body := s.get("/notes/")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "day1.md")
}

func (s *ServerTestSuite) TestMissingFile() {
	resp, _ := s.get("/does-not-exist.txt")

	s.GreaterOrEqual(resp.StatusCode, 400)
	s.Less(resp.StatusCode, 500)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ServerTestSuite) TestHead() {
	resp, err := s.client.Head(s.baseURL + "/main.js")
	s.Require().NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Empty(body)
	s.Equal(strconv.Itoa(len("console.log('ring');\n")), resp.Header.Get("Content-Length"))
}

func (s *ServerTestSuite) TestPostNotAllowed() {
	resp, err := s.client.Post(s.baseURL+"/main.js", "text/plain", nil)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusMethodNotAllowed, resp.StatusCode)
}

func (s *ServerTestSuite) TestConnectionClosedAfterResponse() {
	resp, _ := s.get("/main.js")
	s.True(resp.Close, "server must not keep connections alive")
}

func (s *ServerTestSuite) TestSecondServerOnSamePortFails() {
	port := strconv.Itoa(s.server.Addr().(*net.TCPAddr).Port)

	second, err := fileserver.New(fileserver.Config{Root: s.root, Host: "127.0.0.1", Port: port})
	s.Require().NoError(err)

	err = second.Listen(context.Background())
	s.Require().Error(err)
	s.ErrorIs(err, domain.ErrAddressInUse)
	s.ErrorIs(err, syscall.EADDRINUSE)
}

func (s *ServerTestSuite) TestOneConnectionAtATime() {
	// Hold the only slot with an idle connection.
	blocker, err := net.Dial("tcp", s.server.Addr().String())
	s.Require().NoError(err)

	impatient := &http.Client{
		Transport: &http.Transport{DisableKeepAlives: true},
		Timeout:   300 * time.Millisecond,
	}
	_, err = impatient.Get(s.baseURL + "/main.js")
	s.Require().Error(err, "request must wait while another connection is open")

	s.Require().NoError(blocker.Close())

	resp, body := s.get("/main.js")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("console.log('ring');\n", body)
}

func (s *ServerTestSuite) TestCloseTwice() {
	s.NoError(s.server.Close())
	s.NoError(s.server.Close())
}

func TestServeBeforeListen(t *testing.T) {
	srv, err := fileserver.New(fileserver.Config{Root: t.TempDir(), Port: "0"})
	require.NoError(t, err)

	assert.Error(t, srv.Serve(), "serving without a listener must fail")
	assert.Nil(t, srv.Addr())
}

func TestCloseBeforeServe(t *testing.T) {
	srv, err := fileserver.New(fileserver.Config{Root: t.TempDir(), Host: "127.0.0.1", Port: "0"})
	require.NoError(t, err)
	require.NoError(t, srv.Listen(context.Background()))

	require.NoError(t, srv.Close())
	assert.NoError(t, srv.Serve())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := fileserver.New(fileserver.Config{Root: filepath.Join(t.TempDir(), "missing"), Port: "8000"})
	assert.ErrorIs(t, err, domain.ErrRootNotDirectory)
}
