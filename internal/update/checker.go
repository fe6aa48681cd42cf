package update

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const (
	RepoOwner = "Zacy-Sokach"
	RepoName  = "PolyChat"
	Repo      = RepoOwner + "/" + RepoName
)

type ReleaseInfo struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

type Checker struct {
	client *http.Client
}

func NewChecker() *Checker {
	return &Checker{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Checker) GetLatestVersion() (string, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", Repo)

	resp, err := c.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest version: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release ReleaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return release.TagName, nil
}

func (c *Checker) CheckForUpdate(currentVersion string) (bool, string, error) {
	latestVersion, err := c.GetLatestVersion()
	if err != nil {
		return false, "", err
	}

	if compareVersions(currentVersion, latestVersion) < 0 {
		return true, latestVersion, nil
	}

	return false, latestVersion, nil
}

func (c *Checker) GetDownloadURL(version string) string {
	binaryName := fmt.Sprintf("polychat-%s-%s", runtime.GOOS, runtime.GOARCH)
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}

	return fmt.Sprintf("https://github.com/%s/releases/download/%s/%s", Repo, version, binaryName)
}

// compareVersions 比较两个语义化版本号，v1 < v2 返回负数
func compareVersions(v1, v2 string) int {
	v1 = strings.TrimPrefix(v1, "v")
	v2 = strings.TrimPrefix(v2, "v")

	parts1 := strings.Split(v1, ".")
	parts2 := strings.Split(v2, ".")

	for i := 0; i < len(parts1) || i < len(parts2); i++ {
		n1, n2 := 0, 0
		if i < len(parts1) {
			n1, _ = strconv.Atoi(parts1[i])
		}
		if i < len(parts2) {
			n2, _ = strconv.Atoi(parts2[i])
		}
		if n1 != n2 {
			return n1 - n2
		}
	}

	return 0
}
