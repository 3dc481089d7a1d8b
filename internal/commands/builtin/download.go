package builtin

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cmcshell/internal/logger"
	"cmcshell/internal/output"
	"cmcshell/pkg/cmctypes"
)

// DownloadCommand fetches a URL into a directory. Certificate checking
// follows the session transport-verify flag; the downloaded file is
// undoable like any created artifact.
type DownloadCommand struct{}

func (c *DownloadCommand) Name() string        { return "download" }
func (c *DownloadCommand) Description() string { return "Download a URL into a directory" }
func (c *DownloadCommand) Usage() string       { return "download '<url>' to '<dir>'" }

func (c *DownloadCommand) UsesConfirmGate() bool { return true }

func (c *DownloadCommand) Routes() []cmctypes.RouteSpec {
	return []cmctypes.RouteSpec{
		cmctypes.Pattern(`^download\s+(?:'([^']*)'|(\S+))\s+to\s+(?:'([^']*)'|(\S+))$`),
	}
}

func (c *DownloadCommand) Execute(args []string, line string) error {
	rawURL := pick(args[0], args[1])
	dir := sessionCtx().Resolve(pick(args[2], args[3]))

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return cmctypes.ValidationErrorf("not a valid URL: %s", rawURL)
	}
	if !pathExists(dir) {
		return cmctypes.NotFoundErrorf("no such directory: %s", dir)
	}
	name := filepath.Base(parsed.Path)
	if name == "." || name == "/" || name == "" {
		name = "download"
	}
	dest := filepath.Join(dir, name)
	if pathExists(dest) {
		return cmctypes.ConflictErrorf("%s already exists", dest)
	}

	proceed, simulated := gate("Download " + rawURL + " to " + dest)
	if !proceed {
		return cancelled("download " + rawURL)
	}
	if simulated {
		simulate("would download " + rawURL + " to " + dest)
		return nil
	}

	verify := sessionCtx().Flags().SSLVerify()
	client := &http.Client{
		Timeout: 5 * time.Minute,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: !verify},
		},
	}
	if !verify {
		output.Println(output.Warn("Certificate verification is off for this download."))
	}

	logger.Debug("Downloading", "url", rawURL, "dest", dest)
	resp, err := client.Get(rawURL)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s", strings.TrimSpace(resp.Status))
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", dest, err)
	}
	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return fmt.Errorf("download failed: %w", err)
	}

	sessionCtx().Undo().Push(cmctypes.UndoRecord{
		Kind: cmctypes.UndoCopy,
		Dest: dest,
	})
	logAction("download %s -> %s", rawURL, dest)
	output.Println(output.Success(fmt.Sprintf("Downloaded %s (%s)", dest, humanSize(n))))
	return nil
}

// isURL reports whether s looks like a fetchable URL.
func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func init() {
	mustRegister(&DownloadCommand{})
}
