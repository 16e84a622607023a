package custom

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/vidpool/vidpool/filesystem"
	"github.com/vidpool/vidpool/util"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// maxScript bounds a downloaded script.
const maxScript = 1 << 20

// Install downloads the script at remoteURL to dest (resolved like Load) and reports whether
// the local copy changed. The new file is only swapped in after it compiles.
func Install(ctx context.Context, client *http.Client, remoteURL, dest string) (bool, error) {
	dest = Resolve(dest)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return false, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("download %s: unexpected status %d", remoteURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScript))
	if err != nil {
		return false, err
	}

	if local, err := filesystem.API().ReadFile(dest); err == nil && sha256.Sum256(local) == sha256.Sum256(body) {
		return false, nil
	}

	chunk, err := parse.Parse(bytes.NewReader(body), dest)
	if err != nil {
		return false, fmt.Errorf("%s: %w", remoteURL, err)
	}
	if _, err = lua.Compile(chunk, dest); err != nil {
		return false, fmt.Errorf("%s: %w", remoteURL, err)
	}

	if err = filesystem.API().MkdirAll(filepath.Dir(dest), os.ModePerm); err != nil {
		return false, err
	}

	tmp := dest + ".tmp"
	if err = filesystem.API().WriteFile(tmp, body, 0o644); err != nil {
		return false, err
	}
	if err = filesystem.API().Rename(tmp, dest); err != nil {
		_ = filesystem.API().Remove(tmp)
		return false, err
	}

	Invalidate(dest)
	return true, nil
}

// List returns the names of the scripts found in dir.
func List(dir string) ([]string, error) {
	infos, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, info := range infos {
		if !info.IsDir() && filepath.Ext(info.Name()) == ".lua" {
			names = append(names, info.Name())
		}
	}
	return names, nil
}
