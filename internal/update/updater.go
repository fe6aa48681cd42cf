package update

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

type Updater struct {
	checker *Checker
	client  *http.Client
}

func NewUpdater() *Updater {
	return &Updater{
		checker: NewChecker(),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Update 下载最新版本并原子替换当前可执行文件
func (u *Updater) Update(currentVersion string) error {
	hasUpdate, latestVersion, err := u.checker.CheckForUpdate(currentVersion)
	if err != nil {
		return fmt.Errorf("failed to check for update: %w", err)
	}

	if !hasUpdate {
		return fmt.Errorf("already running the latest version (%s)", currentVersion)
	}

	downloadURL := u.checker.GetDownloadURL(latestVersion)

	tempDir, err := os.MkdirTemp("", "polychat-update-")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	binaryPath := filepath.Join(tempDir, "polychat")
	if runtime.GOOS == "windows" {
		binaryPath += ".exe"
	}

	if err := u.downloadFile(downloadURL, binaryPath); err != nil {
		return fmt.Errorf("failed to download update: %w", err)
	}

	if err := os.Chmod(binaryPath, 0755); err != nil {
		return fmt.Errorf("failed to make binary executable: %w", err)
	}

	executablePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get current executable path: %w", err)
	}

	backupPath := executablePath + ".backup"
	if err := os.Rename(executablePath, backupPath); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	if err := os.Rename(binaryPath, executablePath); err != nil {
		// 安装失败时回滚备份
		os.Rename(backupPath, executablePath)
		return fmt.Errorf("failed to install update: %w", err)
	}

	os.Remove(backupPath)

	return nil
}

func (u *Updater) downloadFile(url, destPath string) error {
	resp, err := u.client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}
