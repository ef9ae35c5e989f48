package documents

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var unsafeMonthRe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// BatchPackager renders one salary slip per selected month and packs them
// into a single archive. A failure on any month aborts the batch.
type BatchPackager struct {
	render    func(DocumentType, string) ([]byte, error)
	templates TemplateExecutor
	files     FileStore
	now       func() time.Time
}

func ArchiveName(employeeID string) string {
	return employeeID + "_Salary_Slips.zip"
}

// SlipEntryName names a month's slip inside the archive and on disk. Only
// letters, digits, '_' and '-' survive, so the name never carries a path.
func SlipEntryName(month string) string {
	token := strings.Trim(unsafeMonthRe.ReplaceAllString(strings.TrimSpace(month), "_"), "_")
	if token == "" {
		token = "month"
	}
	return "Salary_Slip_" + token + ".pdf"
}

func (b *BatchPackager) Package(ctx context.Context, base Composition, months []string) (Artifact, error) {
	employeeID := base.Context.Employee.ID
	entries := make([]ArchiveEntry, 0, len(months))
	paths := make([]string, 0, len(months))
	seen := make(map[string]bool, len(months))

	for _, month := range months {
		if err := ctx.Err(); err != nil {
			return Artifact{}, err
		}
		name := SlipEntryName(month)
		if seen[name] {
			continue
		}
		seen[name] = true
		monthCtx := base.Context.Clone()
		monthCtx.CurrentMonth = month

		html, err := b.templates.Execute(base.Template, monthCtx)
		if err != nil {
			return Artifact{}, fmt.Errorf("%w %q: %w", ErrMonthRenderFailed, month, err)
		}
		data, err := b.render(SalarySlip, html)
		if err != nil {
			return Artifact{}, fmt.Errorf("%w %q: %w", ErrMonthRenderFailed, month, err)
		}

		stored, err := b.files.Save(ctx, employeeID, name, data)
		if err != nil {
			return Artifact{}, fmt.Errorf("store %s: %w", name, err)
		}
		entries = append(entries, ArchiveEntry{Name: name, Data: data})
		paths = append(paths, stored)
	}

	archive, err := BuildArchive(entries, b.now())
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Name:        ArchiveName(employeeID),
		ContentType: ContentTypeZIP,
		Data:        archive,
		Paths:       paths,
	}, nil
}
