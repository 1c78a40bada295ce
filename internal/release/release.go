// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/matt-FFFFFF/ytdlwrap"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ctxlog"
)

var (
	releasesURL = "https://api.github.com/repos/ytdl-org/youtube-dl/releases"
	downloadURL = "https://github.com/ytdl-org/youtube-dl/releases/download"
)

var (
	// ErrUnexpectedStatus is returned when the release index answers with anything but 200.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	// ErrNoReleases is returned when the index lists no releases.
	ErrNoReleases = errors.New("no releases found")
	// ErrListReleases is returned when the release index cannot be fetched or decoded.
	ErrListReleases = errors.New("failed to list releases")
)

// Release is one entry of the release index.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
	Assets      []Asset   `json:"assets"`
}

// Asset is a file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	Size               int64  `json:"size"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Releases returns one page of the release index, newest first.
// Page numbers start at 1.
func Releases(ctx context.Context, page, perPage int) ([]Release, error) {
	u, err := url.Parse(releasesURL)
	if err != nil {
		return nil, errors.Join(ErrListReleases, err)
	}

	q := u.Query()
	q.Set("page", strconv.Itoa(max(page, 1)))
	q.Set("per_page", strconv.Itoa(max(perPage, 1)))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Join(ErrListReleases, err)
	}

	req.Header.Set("User-Agent", ytdlwrap.UserAgent())
	req.Header.Set("Accept", "application/vnd.github+json")

	ctxlog.Debug(ctx, "fetching release index", "url", u.String())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrListReleases, err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Join(ErrListReleases, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status))
	}

	var releases []Release
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, errors.Join(ErrListReleases, err)
	}

	return releases, nil
}

// Latest returns the newest release.
func Latest(ctx context.Context) (Release, error) {
	releases, err := Releases(ctx, 1, 1)
	if err != nil {
		return Release{}, err
	}

	if len(releases) == 0 {
		return Release{}, ErrNoReleases
	}

	return releases[0], nil
}
