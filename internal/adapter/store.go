package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/d365fo-tools/recweaver/internal/config"
	m "github.com/d365fo-tools/recweaver/internal/model"
)

// Store delivers a finished test script to its configured destinations. The
// content is handed over once, in full; there are no partial writes.
type Store interface {
	FileName(testName string, at time.Time) string
	Save(ctx context.Context, fileName, content, message string) ([]m.Report, error)
}

type fileStore struct {
	destination config.SaveDestination
	outputDir   string
	devops      DevOpsClient // nil when DevOps is not configured
	log         hclog.Logger
}

// NewStore constructs a Store. devops may be nil when the DevOps destination
// is disabled.
func NewStore(settings config.Settings, devops DevOpsClient, log hclog.Logger) Store {
	return &fileStore{
		destination: settings.SaveDestination,
		outputDir:   settings.LocalStorage.OutputDirectory,
		devops:      devops,
		log:         log,
	}
}

// FileName derives a deterministic file name from the test name and
// timestamp.
func (s *fileStore) FileName(testName string, at time.Time) string {
	var b strings.Builder

	for _, r := range testName {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	safe := strings.ToLower(strings.Trim(b.String(), "_"))

	return fmt.Sprintf("test_%s_%s.py", safe, at.Format("20060102_150405"))
}

func (s *fileStore) Save(ctx context.Context, fileName, content, message string) ([]m.Report, error) {
	wantLocal := s.destination == config.SaveLocal || s.destination == config.SaveLocalAndDevOps
	wantDevOps := s.destination == config.SaveDevOps || s.destination == config.SaveLocalAndDevOps

	var (
		localReport  *m.Report
		devopsReport *m.Report
	)

	// No shared context cancellation: destinations are independent, and a
	// failed local write must not abort an in-flight push (or vice versa).
	// Each report carries its own outcome; Wait surfaces the first error.
	var g errgroup.Group

	if wantLocal {
		g.Go(func() error {
			report := s.saveLocal(fileName, content)
			localReport = &report

			return report.Err
		})
	}

	if wantDevOps {
		g.Go(func() error {
			report := s.pushDevOps(ctx, fileName, content, message)
			devopsReport = &report

			return report.Err
		})
	}

	err := g.Wait()

	var reports []m.Report
	if localReport != nil {
		reports = append(reports, *localReport)
	}

	if devopsReport != nil {
		reports = append(reports, *devopsReport)
	}

	return reports, err
}

func (s *fileStore) saveLocal(fileName, content string) m.Report {
	report := m.Report{Destination: m.DestinationLocal}

	if s.outputDir == "" {
		report.Err = fmt.Errorf("output directory not configured")
		return report
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		report.Err = fmt.Errorf("failed to create output directory: %w", err)
		return report
	}

	fullPath := filepath.Join(s.outputDir, fileName)

	if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
		report.Err = fmt.Errorf("failed to save test file: %w", err)
		return report
	}

	s.log.Info("saved test file", "path", fullPath)
	report.Detail = fullPath

	return report
}

func (s *fileStore) pushDevOps(ctx context.Context, fileName, content, message string) m.Report {
	report := m.Report{Destination: m.DestinationDevOps}

	if s.devops == nil {
		report.Err = fmt.Errorf("devops not configured")
		return report
	}

	commitID, err := s.devops.PushFile(ctx, fileName, content, message)
	if err != nil {
		report.Err = err
		return report
	}

	report.Detail = commitID

	return report
}
