// Package version checks the release feed for a newer build and compares semantic versions.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/filesystem"
	"github.com/vidpool/vidpool/network"
	"github.com/vidpool/vidpool/util"
	"github.com/vidpool/vidpool/where"
)

// releaseURL is the GitHub API document describing the latest release.
var releaseURL = "https://api.github.com/repos/vidpool/vidpool/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the newest released version without the "v" prefix.
// The answer is cached on disk for two days.
func Latest(ctx context.Context) (string, error) {
	if ver, expired, err := versionCacher.Get(); err == nil && !expired && ver != "" {
		return ver, nil
	}

	ver, err := fetchLatest(ctx)
	if err != nil {
		return "", err
	}

	_ = versionCacher.Set(ver)
	return ver, nil
}

func fetchLatest(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", constant.Vidpool+"/"+constant.Version)

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release feed: unexpected status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}
