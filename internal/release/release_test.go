// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package release

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryContent = []byte("#!/usr/bin/env python\nprint('hello')\n")

// fakeGitHub serves a release index and release binaries.
func fakeGitHub(t *testing.T, tags ...string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/releases", func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "ytdlwrap/"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))

		var releases []Release
		for _, tag := range tags {
			releases = append(releases, Release{TagName: tag, Name: "youtube-dl " + tag})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(releases)
	})

	mux.HandleFunc("/download/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/download/"), "/")
		if len(parts) != 2 || parts[0] != tags[0] {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte(parts[1] + "\n"))
		_, _ = w.Write(binaryContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func stubServer(t *testing.T, srv *httptest.Server) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()

	stubs := gostub.Stub(&releasesURL, srv.URL+"/releases")
	stubs.Stub(&downloadURL, srv.URL+"/download")
	stubs.Stub(&FsFactory, func() afero.Fs {
		return fs
	})
	t.Cleanup(stubs.Reset)

	return fs
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "youtube-dl.exe", FileName("windows"))
	assert.Equal(t, "youtube-dl.exe", FileName("win32"))
	assert.Equal(t, "youtube-dl", FileName("linux"))
	assert.Equal(t, "youtube-dl", FileName("darwin"))
	assert.Equal(t, "youtube-dl", FileName(""))
}

func TestReleases(t *testing.T) {
	stubServer(t, fakeGitHub(t, "2021.12.17", "2021.06.06"))

	releases, err := Releases(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, releases, 2)
	assert.Equal(t, "2021.12.17", releases[0].TagName)
	assert.Equal(t, "2021.06.06", releases[1].TagName)
}

func TestReleases_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	stubServer(t, srv)

	_, err := Releases(context.Background(), 1, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.ErrorIs(t, err, ErrListReleases)
}

func TestLatest(t *testing.T) {
	stubServer(t, fakeGitHub(t, "2021.12.17"))

	latest, err := Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2021.12.17", latest.TagName)
}

func TestLatest_Empty(t *testing.T) {
	stubServer(t, fakeGitHub(t))

	_, err := Latest(context.Background())
	assert.ErrorIs(t, err, ErrNoReleases)
}

func TestDownload(t *testing.T) {
	fs := stubServer(t, fakeGitHub(t, "2021.12.17"))

	path, err := Download(context.Background(), DownloadRequest{
		Version:  "2021.12.17",
		Path:     "/opt/bin/youtube-dl",
		Platform: "linux",
	})
	require.NoError(t, err)
	assert.Equal(t, "/opt/bin/youtube-dl", path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "youtube-dl\n"+string(binaryContent), string(data))

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, "-rwxr-xr-x", info.Mode().Perm().String())
}

func TestDownload_LatestWindows(t *testing.T) {
	fs := stubServer(t, fakeGitHub(t, "2021.12.17"))

	path, err := Download(context.Background(), DownloadRequest{Platform: "windows"})
	require.NoError(t, err)
	assert.Equal(t, "youtube-dl.exe", filepath.Base(path))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "youtube-dl.exe\n"))
}

func TestDownload_UnknownVersion(t *testing.T) {
	fs := stubServer(t, fakeGitHub(t, "2021.12.17"))

	_, err := Download(context.Background(), DownloadRequest{
		Version:  "1999.01.01",
		Path:     "/opt/bin/youtube-dl",
		Platform: "linux",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDownload)

	exists, _ := afero.Exists(fs, "/opt/bin/youtube-dl")
	assert.False(t, exists)
}
