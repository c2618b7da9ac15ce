package scripts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"danmiz.net/care-setting-service/pkg/common"
	"danmiz.net/care-setting-service/pkg/store"
	"go.uber.org/zap"
)

type ReportType string

const (
	ZoneReport    ReportType = "zoneReport"
	PersonReport  ReportType = "personReport"
	SettingReport ReportType = "settingReport"
)

const (
	ResetWipeSpecificUser = "WIPESPECIFICUSER"
)

// Runner is the boundary to the external backup/report scripts. Commands
// run to completion or failure; there is no cancellation beyond the
// context and no retry.
type Runner interface {
	CreateBackup(ctx context.Context, backupType, title, description string, zoneID *uint) error
	LoadBackup(ctx context.Context, backupType, backupName string, zoneID *uint) error
	FactoryReset(ctx context.Context, resetType string, userID *uint) error
	// CreateReport generates a report file and returns its final filename
	// under the reports directory.
	CreateReport(ctx context.Context, reportType ReportType, start, end time.Time, name string, entityID uint) (string, error)
	// ActivityTemplates retrieves the stored schedule templates.
	ActivityTemplates(ctx context.Context) ([]store.ActivityTemplate, error)
}

// ExecRunner runs the python scripts from ScriptsDir. Generated reports
// are moved into ReportsDir, from where the http layer serves them.
type ExecRunner struct {
	ScriptsDir string
	ReportsDir string
}

func (e *ExecRunner) runScript(ctx context.Context, name string, args []string) (string, error) {
	logger := common.GetLoggerWith(common.LoggerNameScriptRunner)

	cmd := exec.CommandContext(ctx, "python3", append([]string{name + ".py"}, args...)...)
	cmd.Dir = e.ScriptsDir

	if args[0] != "retrieveSchedules" {
		logger.Info("Executing script", zap.String("script", name), zap.Strings("args", args))
	}

	out, err := cmd.Output()
	if err != nil {
		logger.Error("Script failed", zap.String("script", name), zap.Strings("args", args), zap.Error(err))
		return "", fmt.Errorf("run %s: %w", name, err)
	}
	return string(out), nil
}

func (e *ExecRunner) CreateBackup(ctx context.Context, backupType, title, description string, zoneID *uint) error {
	args := []string{backupType, strings.ReplaceAll(title, " ", "_"), description}
	if zoneID != nil {
		args = append(args, fmt.Sprintf("%d", *zoneID))
	}
	_, err := e.runScript(ctx, "BackupModule", args)
	return err
}

func (e *ExecRunner) LoadBackup(ctx context.Context, backupType, backupName string, zoneID *uint) error {
	args := []string{backupType, backupName}
	if zoneID != nil {
		args = append(args, fmt.Sprintf("%d", *zoneID))
	}
	_, err := e.runScript(ctx, "BackupModule", args)
	return err
}

func (e *ExecRunner) FactoryReset(ctx context.Context, resetType string, userID *uint) error {
	args := []string{"reset", resetType}
	if resetType == ResetWipeSpecificUser && userID != nil {
		args = append(args, fmt.Sprintf("%d", *userID))
	}
	_, err := e.runScript(ctx, "BackupModule", args)
	return err
}

func (e *ExecRunner) CreateReport(ctx context.Context, reportType ReportType, start, end time.Time, name string, entityID uint) (string, error) {
	// The report script expects its date arguments wrapped in single
	// quotes.
	args := []string{string(reportType), "'" + WireDate(start) + "'", "'" + WireDate(end) + "'", name}
	if reportType == ZoneReport || reportType == PersonReport {
		args = append(args, fmt.Sprintf("%d", entityID))
	}
	args = append(args, "False")

	stdout, err := e.runScript(ctx, "RepGen", args)
	if err != nil {
		return "", err
	}

	// The script prints the path of the file it wrote; only the final
	// segment is meaningful.
	parts := strings.Split(strings.TrimSpace(stdout), "/")
	fileName := parts[len(parts)-1]
	if fileName == "" {
		return "", fmt.Errorf("report script produced no file name")
	}

	srcPath := filepath.Join(e.ScriptsDir, "reports", fileName)
	destPath := filepath.Join(e.ReportsDir, fileName)
	if err := moveFile(srcPath, destPath); err != nil {
		return "", fmt.Errorf("move report: %w", err)
	}

	return fileName, nil
}

func (e *ExecRunner) ActivityTemplates(ctx context.Context) ([]store.ActivityTemplate, error) {
	stdout, err := e.runScript(ctx, "BackupModule", []string{"retrieveSchedules"})
	if err != nil {
		return nil, err
	}
	return ParseActivityTemplates(stdout)
}

// ParseActivityTemplates decodes the retrieveSchedules stdout contract: a
// header line followed by a JSON array of templates on the second line.
func ParseActivityTemplates(stdout string) ([]store.ActivityTemplate, error) {
	lines := strings.Split(stdout, "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("template output missing payload line")
	}

	var templates []store.ActivityTemplate
	if err := json.Unmarshal([]byte(lines[1]), &templates); err != nil {
		return nil, fmt.Errorf("parse template payload: %w", err)
	}
	return templates, nil
}

// WireDate formats a date the way the report scripts consume it. The month
// is zero-based in this format; the scripts count months from 0.
func WireDate(t time.Time) string {
	return fmt.Sprintf("%d-%02d-%02d", t.Year(), int(t.Month())-1, t.Day())
}

func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	// Rename fails across filesystems; copy and remove instead.
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	if err := os.Remove(src); err != nil {
		common.GetLoggerWith(common.LoggerNameScriptRunner).Error("Failed to delete report source", zap.String("path", src), zap.Error(err))
	}
	return nil
}
