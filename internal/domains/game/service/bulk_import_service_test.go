package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gameportal-backend/internal/domains/category"
	"gameportal-backend/internal/domains/game/model"
	"gameportal-backend/internal/domains/tag"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// FAKES
// ========================================

type fakeGameRepo struct {
	created     []*model.Game
	createdTags map[string][]uuid.UUID
	existing    map[string]bool
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{
		createdTags: map[string][]uuid.UUID{},
		existing:    map[string]bool{},
	}
}

func (f *fakeGameRepo) CreateWithTags(_ context.Context, game *model.Game, tagIDs []uuid.UUID) error {
	if f.existing[game.Slug] {
		return model.ErrDuplicateSlug
	}
	f.existing[game.Slug] = true
	f.created = append(f.created, game)
	f.createdTags[game.Slug] = tagIDs
	return nil
}

func (f *fakeGameRepo) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	return f.existing[slug], nil
}

func (f *fakeGameRepo) GetBySlug(context.Context, string) (*model.Game, error) {
	return nil, model.ErrNotFound
}
func (f *fakeGameRepo) List(context.Context, model.ListFilter) ([]model.Game, int, error) {
	return nil, 0, nil
}
func (f *fakeGameRepo) Popular(context.Context, int) ([]model.Game, error) { return nil, nil }
func (f *fakeGameRepo) Newest(context.Context, int) ([]model.Game, error)  { return nil, nil }
func (f *fakeGameRepo) Update(context.Context, *model.Game, []uuid.UUID) error {
	return nil
}
func (f *fakeGameRepo) Delete(context.Context, uuid.UUID) error             { return nil }
func (f *fakeGameRepo) IncrementPlayCount(context.Context, uuid.UUID) error { return nil }

type fakeCategoryRepo struct {
	cats        []*category.Category
	lookupErr   error
	createErr   error
	createCalls int
}

func (f *fakeCategoryRepo) FindByNameOrSlug(_ context.Context, name, slug string) (*category.Category, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, c := range f.cats {
		if c.Name == name || c.Slug == slug {
			return c, nil
		}
	}
	return nil, category.ErrNotFound
}

func (f *fakeCategoryRepo) Create(_ context.Context, entity *category.Category) (*category.Category, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.cats = append(f.cats, entity)
	return entity, nil
}

func (f *fakeCategoryRepo) GetByID(context.Context, uuid.UUID) (*category.Category, error) {
	return nil, category.ErrNotFound
}
func (f *fakeCategoryRepo) GetBySlug(context.Context, string) (*category.Category, error) {
	return nil, category.ErrNotFound
}
func (f *fakeCategoryRepo) List(context.Context) ([]category.Category, error) { return nil, nil }
func (f *fakeCategoryRepo) Update(_ context.Context, entity *category.Category) (*category.Category, error) {
	return entity, nil
}
func (f *fakeCategoryRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeTagRepo struct {
	tags       []tag.Tag
	batchCalls [][]*tag.Tag
	dropBatch  bool // pretend the insert was skipped entirely
}

func (f *fakeTagRepo) FindByNamesOrSlugs(_ context.Context, names, slugs []string) ([]tag.Tag, error) {
	inNames := map[string]bool{}
	for _, n := range names {
		inNames[n] = true
	}
	inSlugs := map[string]bool{}
	for _, s := range slugs {
		inSlugs[s] = true
	}

	var out []tag.Tag
	for _, t := range f.tags {
		if inNames[t.Name] || inSlugs[t.Slug] {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTagRepo) CreateBatchSkipDuplicates(_ context.Context, tags []*tag.Tag) error {
	f.batchCalls = append(f.batchCalls, tags)
	if f.dropBatch {
		return nil
	}
	for _, t := range tags {
		dup := false
		for _, existing := range f.tags {
			if existing.Slug == t.Slug {
				dup = true
				break
			}
		}
		if !dup {
			f.tags = append(f.tags, *t)
		}
	}
	return nil
}

func (f *fakeTagRepo) Create(_ context.Context, entity *tag.Tag) (*tag.Tag, error) {
	f.tags = append(f.tags, *entity)
	return entity, nil
}
func (f *fakeTagRepo) GetByID(context.Context, uuid.UUID) (*tag.Tag, error) {
	return nil, tag.ErrNotFound
}
func (f *fakeTagRepo) List(context.Context) ([]tag.Tag, error) { return nil, nil }
func (f *fakeTagRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeCache struct {
	deletedPatterns []string
}

func (f *fakeCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (f *fakeCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (f *fakeCache) Delete(context.Context, ...string) error { return nil }
func (f *fakeCache) DeletePattern(_ context.Context, pattern string) error {
	f.deletedPatterns = append(f.deletedPatterns, pattern)
	return nil
}
func (f *fakeCache) Ping(context.Context) error { return nil }

// ========================================
// FIXTURE
// ========================================

type importerFixture struct {
	games      *fakeGameRepo
	categories *fakeCategoryRepo
	tags       *fakeTagRepo
	cache      *fakeCache
	svc        BulkImportServiceInterface
}

func newImporterFixture(t *testing.T) *importerFixture {
	t.Helper()

	dir := t.TempDir()
	writeUpload(t, dir, "space.png", 16)
	writeUpload(t, dir, "puzzle.jpg", 16)

	f := &importerFixture{
		games:      newFakeGameRepo(),
		categories: &fakeCategoryRepo{},
		tags:       &fakeTagRepo{},
		cache:      &fakeCache{},
	}
	f.svc = NewBulkImportService(f.games, f.categories, f.tags, f.cache, NewThumbnailResolver(dir, nil))
	return f
}

func csvUpload(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

const csvHeader = "title,description,thumbnailurl,gameurl,instructions,categories,tags,slug\n"

// ========================================
// ROW PROCESSING
// ========================================

func TestImportGames_AllRowsValid(t *testing.T) {
	f := newImporterFixture(t)

	file := csvUpload(t, "games.csv", csvHeader+
		"Space Runner,A fast runner,space.png,https://example.com/a,Use arrows,Action,hot,\n"+
		"Puzzle Mania,Match tiles,puzzle.jpg,https://example.com/b,,Puzzle,,puzzle-mania\n")

	result, err := f.svc.ImportGames(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "100.0%", result.SuccessRate)

	require.Len(t, f.games.created, 2)
	first, second := f.games.created[0], f.games.created[1]

	assert.Equal(t, "space-runner", first.Slug) // derived from the title
	assert.Equal(t, "/uploads/space.png", first.Thumbnail)
	assert.Equal(t, "Use arrows", first.Instructions)
	assert.Equal(t, "Action", first.CategoryName)

	assert.Equal(t, "puzzle-mania", second.Slug) // explicit slug column wins
	assert.Equal(t, model.DefaultInstructions, second.Instructions)

	assert.Equal(t, []string{"games:*"}, f.cache.deletedPatterns)
}

func TestImportGames_RowFailuresAreIsolated(t *testing.T) {
	f := newImporterFixture(t)

	file := csvUpload(t, "games.csv", csvHeader+
		"Good Game,desc,space.png,https://example.com/a,,,,\n"+
		",desc,space.png,https://example.com/b,,,,\n"+
		"No Thumb,desc,missing.png,https://example.com/c,,,,\n")

	result, err := f.svc.ImportGames(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, "33.3%", result.SuccessRate)

	require.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Error, "missing required field: title")
	assert.Equal(t, 3, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Error, "not found in upload directory")

	require.Len(t, f.games.created, 1)
	assert.Equal(t, "good-game", f.games.created[0].Slug)
}

func TestImportGames_SlugCollisionFailsRow(t *testing.T) {
	f := newImporterFixture(t)

	content := csvHeader + "Space Runner,desc,space.png,https://example.com/a,,,,\n"

	result, err := f.svc.ImportGames(context.Background(), csvUpload(t, "games.csv", content))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Success)

	// Re-importing the same file must fail every row; there is no upsert.
	result, err = f.svc.ImportGames(context.Background(), csvUpload(t, "games.csv", content))
	require.NoError(t, err)

	assert.Equal(t, result.Total, result.Failed)
	assert.Equal(t, 0, result.Success)
	assert.Equal(t, "0.0%", result.SuccessRate)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error, `slug "space-runner" already exists`)
	assert.Len(t, f.games.created, 1)
}

func TestImportGames_HeaderIsCaseInsensitive(t *testing.T) {
	f := newImporterFixture(t)

	file := csvUpload(t, "games.csv",
		"Title,DESCRIPTION,ThumbnailUrl,GameUrl\n"+
			"Space Runner,desc,space.png,https://example.com/a\n")

	result, err := f.svc.ImportGames(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Success)
}

// ========================================
// CATEGORIES
// ========================================

func TestImportGames_OnlyFirstCategoryUsed(t *testing.T) {
	f := newImporterFixture(t)

	file := csvUpload(t, "games.csv", csvHeader+
		"Space Runner,desc,space.png,https://example.com/a,,\"Action, Puzzle\",,\n")

	result, err := f.svc.ImportGames(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, 1, result.Warnings[0].Row)
	assert.Contains(t, result.Warnings[0].Message, `only first category "Action" used`)
	assert.Contains(t, result.Warnings[0].Message, "Puzzle")

	assert.Equal(t, 1, f.categories.createCalls)
	assert.Equal(t, "Action", f.games.created[0].CategoryName)
}

func TestImportGames_ExistingCategoryReused(t *testing.T) {
	f := newImporterFixture(t)
	f.categories.cats = append(f.categories.cats, category.New("Action"))

	file := csvUpload(t, "games.csv", csvHeader+
		"Space Runner,desc,space.png,https://example.com/a,,action,,\n")

	result, err := f.svc.ImportGames(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 0, f.categories.createCalls) // matched by slug "action"
	assert.Equal(t, "Action", f.games.created[0].CategoryName)
}

func TestImportGames_CategoryFailureDegradesToSentinel(t *testing.T) {
	f := newImporterFixture(t)
	f.categories.lookupErr = errors.New("connection refused")

	file := csvUpload(t, "games.csv", csvHeader+
		"Space Runner,desc,space.png,https://example.com/a,,Action,,\n")

	result, err := f.svc.ImportGames(context.Background(), file)
	require.NoError(t, err)

	// Category trouble never fails a row.
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, model.SentinelCategory, f.games.created[0].CategoryName)
}

func TestImportGames_EmptyCategoriesGetSentinel(t *testing.T) {
	f := newImporterFixture(t)

	file := csvUpload(t, "games.csv", csvHeader+
		"Space Runner,desc,space.png,https://example.com/a,,,,\n")

	result, err := f.svc.ImportGames(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	assert.Equal(t, model.SentinelCategory, f.games.created[0].CategoryName)
}

// ========================================
// TAGS
// ========================================

func TestImportGames_TagsMixedExistingAndNew(t *testing.T) {
	f := newImporterFixture(t)
	f.tags.tags = append(f.tags.tags, *tag.New("hot"))

	file := csvUpload(t, "games.csv", csvHeader+
		"Space Runner,desc,space.png,https://example.com/a,,,\"hot, Fresh, hot\",\n")

	result, err := f.svc.ImportGames(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	assert.Empty(t, result.Warnings)

	// Only the unknown tag goes through the batch insert.
	require.Len(t, f.tags.batchCalls, 1)
	require.Len(t, f.tags.batchCalls[0], 1)
	assert.Equal(t, "Fresh", f.tags.batchCalls[0][0].Name)

	assert.Len(t, f.games.createdTags["space-runner"], 2)
}

func TestImportGames_TagShortfallWarnsButSucceeds(t *testing.T) {
	f := newImporterFixture(t)
	f.tags.tags = append(f.tags.tags, *tag.New("hot"))
	f.tags.dropBatch = true

	file := csvUpload(t, "games.csv", csvHeader+
		"Space Runner,desc,space.png,https://example.com/a,,,\"hot, ghost\",\n")

	result, err := f.svc.ImportGames(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "resolved 1 of 2 tags", result.Warnings[0].Message)
	assert.Len(t, f.games.createdTags["space-runner"], 1)
}

// ========================================
// PRECONDITIONS
// ========================================

func requirePrecondition(t *testing.T, err error) *model.PreconditionError {
	t.Helper()
	var precondErr *model.PreconditionError
	require.ErrorAs(t, err, &precondErr)
	return precondErr
}

func TestImportGames_Preconditions(t *testing.T) {
	t.Run("non-csv extension", func(t *testing.T) {
		f := newImporterFixture(t)
		_, err := f.svc.ImportGames(context.Background(), csvUpload(t, "games.xlsx", "x"))
		precond := requirePrecondition(t, err)
		assert.Equal(t, "file must have a .csv extension", precond.Message)
	})

	t.Run("oversized file", func(t *testing.T) {
		f := newImporterFixture(t)
		// Size is checked before the file is opened.
		header := &multipart.FileHeader{Filename: "big.csv", Size: 11 * 1024 * 1024}
		_, err := f.svc.ImportGames(context.Background(), header)
		precond := requirePrecondition(t, err)
		assert.Equal(t, "file is 11.00 MiB, exceeding the 10 MiB limit", precond.Message)
	})

	t.Run("empty file", func(t *testing.T) {
		f := newImporterFixture(t)
		_, err := f.svc.ImportGames(context.Background(), csvUpload(t, "games.csv", ""))
		precond := requirePrecondition(t, err)
		assert.Equal(t, "CSV file is empty", precond.Message)
	})

	t.Run("header only", func(t *testing.T) {
		f := newImporterFixture(t)
		_, err := f.svc.ImportGames(context.Background(), csvUpload(t, "games.csv", csvHeader))
		precond := requirePrecondition(t, err)
		assert.Equal(t, "CSV file contains no data rows", precond.Message)
	})

	t.Run("missing required columns", func(t *testing.T) {
		f := newImporterFixture(t)
		_, err := f.svc.ImportGames(context.Background(),
			csvUpload(t, "games.csv", "title,description\na,b\n"))
		precond := requirePrecondition(t, err)
		assert.Equal(t, "missing required columns: thumbnailurl, gameurl", precond.Message)
	})

	t.Run("structural errors collected, nothing imported", func(t *testing.T) {
		f := newImporterFixture(t)
		_, err := f.svc.ImportGames(context.Background(), csvUpload(t, "games.csv", csvHeader+
			"Good Game,desc,space.png,https://example.com/a,,,,\n"+
			"broken,row,with,too,many,fields,breaking,the,header,count\n"))
		precond := requirePrecondition(t, err)
		assert.Equal(t, "CSV contains structural errors", precond.Message)
		require.Len(t, precond.CSVErrors, 1)
		assert.Equal(t, "parse_error", precond.CSVErrors[0].Code)
		assert.Equal(t, 3, precond.CSVErrors[0].Row)
		assert.Empty(t, f.games.created)
	})
}

func TestTemplateCSV(t *testing.T) {
	f := newImporterFixture(t)

	template := string(f.svc.TemplateCSV())
	assert.Contains(t, template, "title,description,thumbnailurl,gameurl")
	assert.Contains(t, template, "Space Runner")
}
