package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"

	"playcatalog/logging"
)

func TestSearchCommand(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`[{"appId":"com.chess","title":"Chess","score":4.567,"free":true},{"appId":"com.blank"}]`))
	}))
	defer server.Close()
	defer logging.Init("", os.Stderr)

	var out bytes.Buffer
	err := run(context.Background(), []string{"browser", "--gateway", server.URL, "search", "chess", "club"}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if gotQuery != "chess club" {
		t.Errorf("query = %q", gotQuery)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("output:\n%s", out.String())
	}
	for _, want := range []string{"com.chess", "4.6", "Free", "Chess"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line %q missing %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], "N/A") || !strings.Contains(lines[1], "Unnamed App") {
		t.Errorf("fallbacks missing: %q", lines[1])
	}
}

func TestSearchCommandNeedsQuery(t *testing.T) {
	defer logging.Init("", os.Stderr)
	if err := run(context.Background(), []string{"browser", "search"}, &bytes.Buffer{}); err == nil {
		t.Error("expected an error without a query")
	}
}

func TestSetupLoggingToFile(t *testing.T) {
	defer logging.Init("", os.Stderr)
	path := filepath.Join(t.TempDir(), "browser.log")

	opts := options{LogFile: path, LogLevel: "debug"}
	closer, err := opts.setupLogging()
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("hello from the browser")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello from the browser") {
		t.Errorf("log file = %q", data)
	}
}
