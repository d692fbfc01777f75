package service

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// maxThumbnailSize caps local thumbnail files at 5 MiB.
	maxThumbnailSize = 5 * 1024 * 1024

	thumbnailHeadTimeout = 10 * time.Second
)

// thumbnailNameRe permits letters, digits, spaces, the CJK range and a fixed
// punctuation set, with one of the supported image extensions.
var thumbnailNameRe = regexp.MustCompile(`^[a-zA-Z0-9 \x{4e00}-\x{9fa5}_'×+!&.-]+\.(?i:png|jpe?g|gif|webp)$`)

// ThumbnailResolver turns a row's thumbnail reference into the value stored
// on the game: either a verified remote URL (kept verbatim) or a
// /uploads/<file> path matched case-insensitively against the local upload
// directory.
type ThumbnailResolver struct {
	uploadDir string
	client    *http.Client
}

func NewThumbnailResolver(uploadDir string, client *http.Client) *ThumbnailResolver {
	if client == nil {
		client = &http.Client{Timeout: thumbnailHeadTimeout}
	}
	return &ThumbnailResolver{uploadDir: uploadDir, client: client}
}

// Resolve validates ref and returns the thumbnail value to store.
// Any returned error is a row-scoped failure.
func (r *ThumbnailResolver) Resolve(ctx context.Context, ref string) (string, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return r.resolveRemote(ctx, ref)
	}
	return r.resolveLocal(ref)
}

func (r *ThumbnailResolver) resolveRemote(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", fmt.Errorf("thumbnail URL %s is not requestable: %v", url, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("thumbnail URL %s is unreachable: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("thumbnail URL %s returned HTTP %d", url, resp.StatusCode)
	}

	// Stored verbatim on success.
	return url, nil
}

func (r *ThumbnailResolver) resolveLocal(ref string) (string, error) {
	name := strings.TrimPrefix(ref, "uploads/")

	if !thumbnailNameRe.MatchString(name) {
		return "", fmt.Errorf(
			"thumbnail filename %q is invalid: allowed are letters, digits, spaces, Chinese characters and _ ' × + ! & . - with a png/jpg/jpeg/gif/webp extension (e.g. \"space runner.png\")",
			name,
		)
	}

	entries, err := os.ReadDir(r.uploadDir)
	if err != nil {
		return "", fmt.Errorf("failed to read upload directory: %v", err)
	}

	var listing []string
	var matched string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		listing = append(listing, entry.Name())
		if matched == "" && strings.EqualFold(entry.Name(), name) {
			matched = entry.Name()
		}
	}

	if matched == "" {
		return "", fmt.Errorf(
			"thumbnail file %q not found in upload directory; available files: [%s]",
			name, strings.Join(listing, ", "),
		)
	}

	info, err := os.Stat(filepath.Join(r.uploadDir, matched))
	if err != nil {
		return "", fmt.Errorf("failed to stat thumbnail file %q: %v", matched, err)
	}
	if info.Size() > maxThumbnailSize {
		return "", fmt.Errorf(
			"thumbnail file %q is %.2f MiB, exceeding the 5 MiB limit",
			matched, float64(info.Size())/(1024*1024),
		)
	}

	// Stored path uses the on-disk casing.
	return "/uploads/" + matched, nil
}
