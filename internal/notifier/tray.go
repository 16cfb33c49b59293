package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/nudge/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Tray delivers desktop notifications through the tray companion's local webhook.
type Tray struct {
	client *http.Client
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

type trayEndpoint struct {
	port   string
	secret string
}

func NewTray() *Tray {
	return &Tray{
		client: &http.Client{Timeout: constants.RequestTimeout},
	}
}

func (t *Tray) endpoint() (trayEndpoint, error) {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return trayEndpoint{}, err
	}
	return findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
}

// Available reports why the tray cannot take notifications, or nil if it can.
func (t *Tray) Available() error {
	_, err := t.endpoint()
	return err
}

func (t *Tray) Send(ctx context.Context, text string) error {
	ep, err := t.endpoint()
	if err != nil {
		return err
	}
	payload := WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}
	return t.sendNotification(ctx, ep, payload)
}

// GetTrayAppConfigDir returns the configuration directory used by the tray application.
// A lockfile_dir in the tray's settings.json overrides the default.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil {
		if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
			return *store.Settings.LockfileDir, nil
		}
	}

	return trayConfigDir, nil
}

// findAndValidateTrayProcess reads a port|pid|secret lockfile and checks
// that pid is a live tray process.
func findAndValidateTrayProcess(lockfilePath string) (trayEndpoint, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return trayEndpoint{}, errors.New(constants.TrayExecutablePrefix + " is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return trayEndpoint{}, errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
		return trayEndpoint{}, errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return trayEndpoint{}, errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return trayEndpoint{}, fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return trayEndpoint{}, errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return trayEndpoint{}, errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return trayEndpoint{}, errors.New(constants.TrayExecutablePrefix + " process not running")
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return trayEndpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, process.Executable())
	}

	return trayEndpoint{port: port, secret: secret}, nil
}

func (t *Tray) sendNotification(ctx context.Context, ep trayEndpoint, payload WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://127.0.0.1:%s", ep.port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Nudge-Secret", ep.secret)

	res, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
