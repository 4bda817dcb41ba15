package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"streamNotify/internal/domain"
)

const (
	minInterval = 10 * time.Second
	appDirName  = "streamnotify"
)

type Settings struct {
	General      GeneralSettings      `toml:"general"`
	Watch        WatchSettings        `toml:"watch"`
	Notification NotificationSettings `toml:"notification"`
}

// GeneralSettings.Language is "en", "ja" or "auto" (use the OS language).
type GeneralSettings struct {
	Language string `toml:"language"`
}

// WatchSettings values are in seconds.
type WatchSettings struct {
	Interval       int `toml:"interval"`
	RequestTimeout int `toml:"request_timeout"`
}

type NotificationSettings struct {
	Format  string `toml:"format"`
	Timeout int    `toml:"timeout"`
	IconDir string `toml:"icon_dir"`
}

func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{
			Language: "auto",
		},
		Watch: WatchSettings{
			Interval:       60,
			RequestTimeout: 10,
		},
		Notification: NotificationSettings{
			Format:  string(domain.FormatDialog),
			Timeout: 60,
			IconDir: defaultIconDir(),
		},
	}
}

func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "settings.toml"
	}
	return filepath.Join(dir, appDirName, "settings.toml")
}

func defaultIconDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appDirName)
	}
	return filepath.Join(dir, appDirName)
}

// LoadSettings decodes path over the defaults. A missing file yields defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return s, fmt.Errorf("%w: decode settings %s: %v", domain.ErrConfig, path, err)
	}
	return s, s.normalize()
}

func (s *Settings) normalize() error {
	def := DefaultSettings()
	if s.Watch.Interval <= 0 {
		s.Watch.Interval = def.Watch.Interval
	}
	if s.Watch.RequestTimeout <= 0 {
		s.Watch.RequestTimeout = def.Watch.RequestTimeout
	}
	if s.Notification.Timeout <= 0 {
		s.Notification.Timeout = def.Notification.Timeout
	}
	if s.Notification.IconDir == "" {
		s.Notification.IconDir = def.Notification.IconDir
	}
	if s.General.Language == "" {
		s.General.Language = def.General.Language
	}
	if s.Notification.Format == "" {
		s.Notification.Format = def.Notification.Format
	}
	if _, err := domain.ParseNotificationFormat(s.Notification.Format); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConfig, err)
	}
	return nil
}

// PollInterval never goes below minInterval to stay clear of Helix rate limits.
func (s Settings) PollInterval() time.Duration {
	d := time.Duration(s.Watch.Interval) * time.Second
	if d < minInterval {
		return minInterval
	}
	return d
}

func (s Settings) RequestTimeout() time.Duration {
	return time.Duration(s.Watch.RequestTimeout) * time.Second
}

func (s Settings) NotificationTimeout() time.Duration {
	return time.Duration(s.Notification.Timeout) * time.Second
}

func (s Settings) Format() domain.NotificationFormat {
	f, err := domain.ParseNotificationFormat(s.Notification.Format)
	if err != nil {
		return domain.FormatDialog
	}
	return f
}

// SaveSettings writes s to path, creating the parent directory.
func SaveSettings(s Settings, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open settings file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}

// SettingsExist reports whether a settings file is present at path.
func SettingsExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
