package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/narcscan/domain"
)

// ReportUseCase renders parsed reports in the requested format
type ReportUseCase struct {
	service    domain.ReportService
	formatter  domain.ReportFormatter
	fileHelper *FileHelper
}

// NewReportUseCase creates a new report use case
func NewReportUseCase(service domain.ReportService, formatter domain.ReportFormatter) *ReportUseCase {
	return &ReportUseCase{
		service:    service,
		formatter:  formatter,
		fileHelper: NewFileHelper(),
	}
}

// Execute parses the reports named by req and writes them to
// req.OutputPath, or to req.OutputWriter when no path is set. It returns the
// parsed reports.
func (uc *ReportUseCase) Execute(ctx context.Context, req domain.ReportRequest) ([]domain.ParsedReport, error) {
	if len(req.Paths) == 0 {
		return nil, domain.NewInvalidInputError("no input paths specified", nil)
	}
	if req.OutputPath == "" && req.OutputWriter == nil {
		return nil, domain.NewInvalidInputError("no output destination specified", nil)
	}

	files, err := ResolveReportPaths(uc.fileHelper, req.Paths, req.Recursive, req.ReportPatterns, req.ExcludePatterns)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to collect report files", err)
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no CodeNarc report files found in the specified paths", nil)
	}

	reports, err := uc.service.ParseAll(ctx, files)
	if err != nil {
		return nil, domain.NewAnalysisError("report parsing failed", err)
	}

	if req.OutputPath == "" {
		return reports, uc.formatter.Write(reports, req.OutputFormat, req.OutputWriter)
	}

	if err := uc.writeFile(reports, req); err != nil {
		return nil, err
	}
	return reports, nil
}

func (uc *ReportUseCase) writeFile(reports []domain.ParsedReport, req domain.ReportRequest) error {
	if dir := filepath.Dir(req.OutputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.NewOutputError(fmt.Sprintf("failed to create directory %s", dir), err)
		}
	}

	file, err := os.Create(req.OutputPath)
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to create %s", req.OutputPath), err)
	}

	if err := uc.formatter.Write(reports, req.OutputFormat, file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to close %s", req.OutputPath), err)
	}
	return nil
}
