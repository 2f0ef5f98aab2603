package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/relposts/internal/config"
	"github.com/gorewood/relposts/internal/dataset"
	"github.com/gorewood/relposts/internal/post"
	"github.com/gorewood/relposts/internal/site"
)

// makeOpener writes mail.yaml into a fresh site and returns an Opener for it.
func makeOpener(t *testing.T, mail string) Opener {
	t.Helper()
	t.Setenv("RELPOSTS_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if mail != "" {
		if err := os.WriteFile(filepath.Join(dataDir, "mail.yaml"), []byte(mail), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.Default()
	cfg.OutputDir = root
	return func() (*site.Site, error) { return site.Open(cfg, nil) }
}

const testMail = `"1.0":
  threads:
    - summary: T1
      messages: [m1, m2]
      reference_count: 5
  reference_count: 5
  thread_count: 1
  announcement: m0
`

func TestNewServer(t *testing.T) {
	if NewServer("test", makeOpener(t, testMail)) == nil {
		t.Fatal("NewServer() returned nil")
	}
}

func TestHandleListReleases(t *testing.T) {
	handler := handleListReleases(makeOpener(t, testMail))

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ListReleasesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 1 || len(out.Releases) != 1 {
		t.Fatalf("out = %+v, want one release", out)
	}
	want := site.Summary{Release: "1.0", MailRefs: 5, Threads: 1}
	if out.Releases[0] != want {
		t.Errorf("Releases[0] = %+v, want %+v", out.Releases[0], want)
	}
}

func TestHandleListReleases_MissingDataset(t *testing.T) {
	handler := handleListReleases(makeOpener(t, ""))

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ListReleasesInput{})
	if !errors.Is(err, dataset.ErrMissingDataset) {
		t.Errorf("error = %v, want ErrMissingDataset", err)
	}
}

func TestHandleRenderRelease(t *testing.T) {
	handler := handleRenderRelease(makeOpener(t, testMail))

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, RenderReleaseInput{Release: "1.0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "1-0-release.md" {
		t.Errorf("Name = %q", out.Name)
	}
	if !strings.Contains(out.Content, "(5 refs)") {
		t.Errorf("Content missing thread line:\n%s", out.Content)
	}
}

func TestHandleRenderRelease_Errors(t *testing.T) {
	handler := handleRenderRelease(makeOpener(t, testMail))

	if _, _, err := handler(context.Background(), &mcp.CallToolRequest{}, RenderReleaseInput{}); err == nil {
		t.Error("expected error for empty release")
	}

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, RenderReleaseInput{Release: "2.0"})
	if !errors.Is(err, post.ErrUnknownRelease) {
		t.Errorf("error = %v, want ErrUnknownRelease", err)
	}
}
