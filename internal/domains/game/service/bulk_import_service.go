package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"gameportal-backend/internal/domains/category"
	"gameportal-backend/internal/domains/game/model"
	"gameportal-backend/internal/domains/game/repository"
	"gameportal-backend/internal/domains/tag"
	"gameportal-backend/internal/shared/utils"
	"gameportal-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// maxImportSize caps CSV uploads at 10 MiB.
const maxImportSize = 10 * 1024 * 1024

// requiredColumns must all be present in the header, case-insensitively.
var requiredColumns = []string{"title", "description", "thumbnailurl", "gameurl"}

const importTemplateCSV = `title,description,thumbnailurl,gameurl,instructions,categories,tags,slug
Space Runner,A fast runner,space.png,https://example.com/play,Use arrow keys to move,Action,hot,space-runner
`

type bulkImportService struct {
	games      repository.Repository
	categories category.Repository
	tags       tag.Repository
	cache      cache.Cache
	thumbnails *ThumbnailResolver
}

// NewBulkImportService creates the CSV game importer.
func NewBulkImportService(
	games repository.Repository,
	categories category.Repository,
	tags tag.Repository,
	cacheClient cache.Cache,
	thumbnails *ThumbnailResolver,
) BulkImportServiceInterface {
	return &bulkImportService{
		games:      games,
		categories: categories,
		tags:       tags,
		cache:      cacheClient,
		thumbnails: thumbnails,
	}
}

func (s *bulkImportService) TemplateCSV() []byte {
	return []byte(importTemplateCSV)
}

// ImportGames is the main entry point for the bulk import.
//
// PHASE 1 checks request-level preconditions and parses the CSV; any failure
// there aborts the whole import with no side effects. PHASE 2 processes rows
// sequentially, in file order, each inside its own failure boundary: one
// row's problem never aborts or rolls back the others.
func (s *bulkImportService) ImportGames(ctx context.Context, file *multipart.FileHeader) (*model.ImportResult, error) {
	log.Info().
		Str("file_name", file.Filename).
		Int64("file_size", file.Size).
		Msg("Starting bulk game import")

	// PHASE 1: preconditions
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		return nil, model.NewPreconditionError("file must have a .csv extension")
	}

	if file.Size > maxImportSize {
		return nil, model.NewPreconditionError(
			"file is %.2f MiB, exceeding the 10 MiB limit",
			float64(file.Size)/(1024*1024),
		)
	}

	rows, precondErr := s.parseCSV(file)
	if precondErr != nil {
		return nil, precondErr
	}

	// PHASE 2: per-row processing
	result := &model.ImportResult{
		Total:    len(rows),
		Errors:   []model.RowError{},
		Warnings: []model.RowWarning{},
	}

	for _, row := range rows {
		warnings, err := s.importRowSafe(ctx, row)
		result.Warnings = append(result.Warnings, warnings...)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, model.RowError{Row: row.Row, Error: err.Error()})
			continue
		}
		result.Success++
	}

	result.SuccessRate = fmt.Sprintf("%.1f%%", float64(result.Success)/float64(result.Total)*100)

	// Invalidate cached game listings so the portal pages pick up new games.
	if err := s.cache.DeletePattern(ctx, "games:*"); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate game list cache after import")
	}

	log.Info().
		Int("total", result.Total).
		Int("success", result.Success).
		Int("failed", result.Failed).
		Msg("Bulk game import completed")

	return result, nil
}

// parseCSV turns the upload into header-keyed rows.
// Returns a PreconditionError for structural parse errors (all of them),
// an empty record set, or missing required columns.
func (s *bulkImportService) parseCSV(file *multipart.FileHeader) ([]model.ImportRow, *model.PreconditionError) {
	src, err := file.Open()
	if err != nil {
		return nil, model.NewPreconditionError("failed to open file: %v", err)
	}
	defer src.Close()

	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, model.NewPreconditionError("CSV file is empty")
		}
		return nil, model.NewPreconditionError("failed to read CSV header: %v", err)
	}

	colMap := make(map[string]int)
	for i, name := range header {
		colMap[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := colMap[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, model.NewPreconditionError("missing required columns: %s", strings.Join(missing, ", "))
	}

	var records [][]string
	var csvErrors []model.CSVError

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				csvErrors = append(csvErrors, model.CSVError{
					Row:     parseErr.Line,
					Code:    "parse_error",
					Message: parseErr.Err.Error(),
				})
				continue
			}
			return nil, model.NewPreconditionError("failed to read CSV: %v", err)
		}
		records = append(records, record)
	}

	if len(csvErrors) > 0 {
		return nil, &model.PreconditionError{
			Message:   "CSV contains structural errors",
			CSVErrors: csvErrors,
		}
	}

	if len(records) == 0 {
		return nil, model.NewPreconditionError("CSV file contains no data rows")
	}

	getCol := func(record []string, name string) string {
		if idx, ok := colMap[name]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	rows := make([]model.ImportRow, 0, len(records))
	for i, record := range records {
		rows = append(rows, model.ImportRow{
			Row:          i + 1, // 1-based for human-facing reporting
			Title:        getCol(record, "title"),
			Description:  getCol(record, "description"),
			ThumbnailURL: getCol(record, "thumbnailurl"),
			GameURL:      getCol(record, "gameurl"),
			Instructions: getCol(record, "instructions"),
			Categories:   getCol(record, "categories"),
			Tags:         getCol(record, "tags"),
			Slug:         getCol(record, "slug"),
		})
	}

	return rows, nil
}

// importRowSafe is the mandatory per-row failure boundary: panics and errors
// become this row's failure message and processing moves to the next row.
func (s *bulkImportService) importRowSafe(ctx context.Context, row model.ImportRow) (warnings []model.RowWarning, err error) {
	defer func() {
		if p := recover(); p != nil {
			log.Error().Int("row", row.Row).Interface("panic", p).Msg("Import row panicked")
			if pErr, ok := p.(error); ok {
				err = pErr
			} else {
				err = fmt.Errorf("unknown error")
			}
		}
	}()

	return s.importRow(ctx, row)
}

func (s *bulkImportService) importRow(ctx context.Context, row model.ImportRow) ([]model.RowWarning, error) {
	var warnings []model.RowWarning

	// 1. Required fields
	for _, field := range []struct{ name, value string }{
		{"title", row.Title},
		{"description", row.Description},
		{"thumbnailUrl", row.ThumbnailURL},
		{"gameUrl", row.GameURL},
	} {
		if field.value == "" {
			return warnings, fmt.Errorf("missing required field: %s", field.name)
		}
	}

	// 2. Thumbnail
	thumbnail, err := s.thumbnails.Resolve(ctx, row.ThumbnailURL)
	if err != nil {
		return warnings, err
	}

	// 3. Category (never fails the row; degrades to the sentinel)
	categoryName, warning := s.resolveCategory(ctx, row)
	if warning != nil {
		warnings = append(warnings, *warning)
	}

	// 4. Tags (partial resolution warns, never fails the row)
	tagIDs, warning := s.resolveTags(ctx, row)
	if warning != nil {
		warnings = append(warnings, *warning)
	}

	// 5. Slug
	slug := row.Slug
	if slug == "" {
		slug = utils.GenerateTitleSlug(row.Title)
	}

	// 6. Slug uniqueness — collisions fail the row, no upsert path exists.
	exists, err := s.games.ExistsBySlug(ctx, slug)
	if err != nil {
		return warnings, fmt.Errorf("failed to check slug: %v", err)
	}
	if exists {
		return warnings, fmt.Errorf("slug %q already exists", slug)
	}

	// 7. Create
	instructions := row.Instructions
	if instructions == "" {
		instructions = model.DefaultInstructions
	}

	now := time.Now()
	game := &model.Game{
		ID:           uuid.New(),
		Title:        row.Title,
		Slug:         slug,
		Description:  row.Description,
		Instructions: instructions,
		Thumbnail:    thumbnail,
		GameURL:      row.GameURL,
		CategoryName: categoryName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.games.CreateWithTags(ctx, game, tagIDs); err != nil {
		if errors.Is(err, model.ErrDuplicateSlug) {
			return warnings, fmt.Errorf("slug %q already exists", slug)
		}
		return warnings, err
	}

	log.Info().
		Int("row", row.Row).
		Str("game_id", game.ID.String()).
		Str("slug", slug).
		Msg("Imported game")

	return warnings, nil
}

// resolveCategory uses only the first of a comma-separated categories cell
// (warning when more were given), reusing an existing category matched by
// exact name or derived slug, creating one otherwise. Persistence errors
// degrade to the sentinel value instead of failing the row.
func (s *bulkImportService) resolveCategory(ctx context.Context, row model.ImportRow) (string, *model.RowWarning) {
	names := splitList(row.Categories)
	if len(names) == 0 {
		return model.SentinelCategory, nil
	}

	var warning *model.RowWarning
	if len(names) > 1 {
		warning = &model.RowWarning{
			Row:     row.Row,
			Message: fmt.Sprintf("only first category %q used, rest ignored: %s", names[0], strings.Join(names[1:], ", ")),
		}
	}

	name := names[0]

	found, err := s.categories.FindByNameOrSlug(ctx, name, utils.GenerateSlug(name))
	if err == nil {
		return found.Name, warning
	}
	if !errors.Is(err, category.ErrNotFound) {
		log.Warn().Err(err).Int("row", row.Row).Str("category", name).
			Msg("Category lookup failed, falling back to sentinel")
		return model.SentinelCategory, warning
	}

	created, err := s.categories.Create(ctx, category.New(name))
	if err != nil {
		log.Warn().Err(err).Int("row", row.Row).Str("category", name).
			Msg("Category create failed, falling back to sentinel")
		return model.SentinelCategory, warning
	}

	return created.Name, warning
}

// resolveTags deduplicates the comma-separated tags cell case-sensitively,
// batch-resolves existing tags by name or slug, creates the missing ones
// with a skip-duplicate batch insert, and re-queries for the full identity
// set. A shortfall is a warning, never a failure.
func (s *bulkImportService) resolveTags(ctx context.Context, row model.ImportRow) ([]uuid.UUID, *model.RowWarning) {
	names := dedupe(splitList(row.Tags))
	if len(names) == 0 {
		return nil, nil
	}

	slugs := make([]string, len(names))
	for i, name := range names {
		slugs[i] = utils.GenerateSlug(name)
	}

	existing, err := s.tags.FindByNamesOrSlugs(ctx, names, slugs)
	if err != nil {
		log.Warn().Err(err).Int("row", row.Row).Msg("Tag lookup failed")
		return nil, &model.RowWarning{
			Row:     row.Row,
			Message: fmt.Sprintf("resolved 0 of %d tags", len(names)),
		}
	}

	known := make(map[string]bool, len(existing)*2)
	for _, t := range existing {
		known[t.Name] = true
		known[t.Slug] = true
	}

	var toCreate []*tag.Tag
	for i, name := range names {
		if !known[name] && !known[slugs[i]] {
			toCreate = append(toCreate, tag.New(name))
		}
	}

	if len(toCreate) > 0 {
		if err := s.tags.CreateBatchSkipDuplicates(ctx, toCreate); err != nil {
			log.Warn().Err(err).Int("row", row.Row).Msg("Tag batch insert failed")
		}
		// Re-query for the authoritative identity set; the batch insert may
		// have skipped rows created by a concurrent import.
		existing, err = s.tags.FindByNamesOrSlugs(ctx, names, slugs)
		if err != nil {
			log.Warn().Err(err).Int("row", row.Row).Msg("Tag re-query failed")
			existing = nil
		}
	}

	tagIDs := make([]uuid.UUID, 0, len(existing))
	for _, t := range existing {
		tagIDs = append(tagIDs, t.ID)
	}

	var warning *model.RowWarning
	if len(tagIDs) < len(names) {
		warning = &model.RowWarning{
			Row:     row.Row,
			Message: fmt.Sprintf("resolved %d of %d tags", len(tagIDs), len(names)),
		}
	}

	return tagIDs, warning
}

// splitList splits a comma-separated cell into trimmed, non-empty values.
func splitList(cell string) []string {
	if cell == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(cell, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// dedupe removes duplicates case-sensitively, preserving first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
