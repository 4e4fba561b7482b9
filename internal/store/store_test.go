package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"musicroot/internal/app/data"
	"musicroot/internal/app/paging"
	"musicroot/internal/models"
)

var (
	musicRowColumns = []string{
		"id", "name", "duration", "is_single", "disabled", "created_at", "album_id",
		"category_id", "category_name",
		"musician_id", "musician_name", "email", "password_hash", "role", "musician_disabled", "musician_created_at",
	}
	albumRowColumns = []string{
		"id", "name", "created_at",
		"musician_id", "musician_name", "email", "password_hash", "role", "disabled", "musician_created_at",
	}
	trackRowColumns = []string{
		"id", "name", "duration", "is_single", "disabled", "created_at", "album_id", "category_id", "category_name",
	}
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("expected 23505 to be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("expected 23503 not to be a unique violation")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Fatalf("expected plain error not to be a unique violation")
	}
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{term: "blue", want: "%blue%"},
		{term: "100%", want: `%100\%%`},
		{term: "a_b", want: `%a\_b%`},
		{term: `back\slash`, want: `%back\\slash%`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.term, func(t *testing.T) {
			if got := containsPattern(tc.term); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestMusicFindAllMatchesWildcardsLiterally(t *testing.T) {
	s, mock := newMockStore(t)

	where := `WHERE m.name ILIKE $1 ESCAPE '\' AND m.disabled = FALSE`
	mock.ExpectQuery(regexp.QuoteMeta(countMusics + where)).
		WithArgs(`%50\%%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(regexp.QuoteMeta(selectMusics + where + " ORDER BY m.created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs(`%50\%%`, 50, 0).
		WillReturnRows(sqlmock.NewRows(musicRowColumns))

	page, err := s.Musics().FindAll(context.Background(), paging.Normalize(1, 50), data.MusicFilter{Name: "50%"})
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if page.Total != 0 || len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %#v", page)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCategoryFindByID(t *testing.T) {
	s, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(selectCategoryByID)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(id.String(), "JAZZ"))
	mock.ExpectQuery(regexp.QuoteMeta(selectCategoryByID)).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	got, err := s.Categories().FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.ID != id || got.Name != models.CategoryJazz {
		t.Fatalf("unexpected category %#v", got)
	}

	missing, err := s.Categories().FindByID(context.Background(), id)
	if missing != nil || err != nil {
		t.Fatalf("expected nil, nil for missing category, got %#v, %v", missing, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMusicianRegisterDuplicate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertMusician)).
		WithArgs("Nils", "nils@example.com", "hash", "MUSICIAN", false).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := s.Musicians().Register(context.Background(), &models.Musician{
		Name: "Nils", Email: "nils@example.com", Password: "hash", Role: models.RoleMusician,
	})
	if !errors.Is(err, data.ErrDuplicate) {
		t.Fatalf("expected data.ErrDuplicate, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMusicianRegister(t *testing.T) {
	s, mock := newMockStore(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(insertMusician)).
		WithArgs("Nils", "nils@example.com", "hash", "MUSICIAN", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(12), created))

	got, err := s.Musicians().Register(context.Background(), &models.Musician{
		Name: "Nils", Email: "nils@example.com", Password: "hash", Role: models.RoleMusician,
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if got.ID != 12 || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected musician %#v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMusicianFindByIDLoadsAlbums(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now().UTC()
	albumID := uuid.New()
	trackID := uuid.New()
	catID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(selectMusicianByID)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "disabled", "created_at"}).
			AddRow(int64(3), "Nils", "nils@example.com", "hash", "MUSICIAN", false, now))
	mock.ExpectQuery(regexp.QuoteMeta(selectAlbums + "WHERE a.musician_id = $1 ORDER BY a.created_at DESC")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(albumRowColumns).
			AddRow(albumID.String(), "Felt", now, int64(3), "Nils", "nils@example.com", "hash", "MUSICIAN", false, now))
	mock.ExpectQuery(regexp.QuoteMeta(selectAlbumTracks)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(trackRowColumns).
			AddRow(trackID.String(), "Unter", 180, false, false, now, albumID.String(), catID.String(), "CLASSICAL"))

	got, err := s.Musicians().FindByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if len(got.Albums) != 1 || got.Albums[0].ID != albumID {
		t.Fatalf("expected one album, got %#v", got.Albums)
	}
	if len(got.Albums[0].Musics) != 1 || got.Albums[0].Musics[0].Category.Name != models.CategoryClassical {
		t.Fatalf("expected album track list, got %#v", got.Albums[0].Musics)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMusicianFindByNameMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectMusicianByName)).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	got, err := s.Musicians().FindByName(context.Background(), "nobody")
	if got != nil || err != nil {
		t.Fatalf("expected nil, nil; got %#v, %v", got, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMusicFindAllBuildsFilters(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now().UTC()
	id := uuid.New()
	catID := uuid.New()

	where := `WHERE m.name ILIKE $1 ESCAPE '\' AND al.name ILIKE $2 ESCAPE '\' AND m.musician_id = $3`
	mock.ExpectQuery(regexp.QuoteMeta(countMusics + where)).
		WithArgs("%abc%", "%live%", int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(11)))
	mock.ExpectQuery(regexp.QuoteMeta(selectMusics + where + " ORDER BY m.created_at DESC LIMIT $4 OFFSET $5")).
		WithArgs("%abc%", "%live%", int64(9), 5, 5).
		WillReturnRows(sqlmock.NewRows(musicRowColumns).
			AddRow(id.String(), "abc", 200, true, true, now, nil, catID.String(), "POP",
				int64(9), "Owner", "owner@example.com", "hash", "MUSICIAN", false, now))

	page, err := s.Musics().FindAll(context.Background(), paging.Normalize(2, 5), data.MusicFilter{
		Name:            "abc",
		Album:           "live",
		MusicianID:      9,
		IncludeDisabled: true,
	})
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if page.Total != 11 || page.Number != 1 || len(page.Items) != 1 {
		t.Fatalf("unexpected page %#v", page)
	}
	got := page.Items[0]
	if got.Album != nil || got.Musician.ID != 9 || got.Category.Name != models.CategoryPop || !got.Disabled {
		t.Fatalf("unexpected music %#v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMusicFindAllHidesDisabledByDefault(t *testing.T) {
	s, mock := newMockStore(t)

	where := "WHERE m.disabled = FALSE"
	mock.ExpectQuery(regexp.QuoteMeta(countMusics + where)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(regexp.QuoteMeta(selectMusics + where + " ORDER BY m.created_at DESC LIMIT $1 OFFSET $2")).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows(musicRowColumns))

	page, err := s.Musics().FindAll(context.Background(), paging.Normalize(0, 999), data.MusicFilter{})
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if page.Total != 0 || len(page.Items) != 0 {
		t.Fatalf("unexpected page %#v", page)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMusicFindByIDAttachesAlbum(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now().UTC()
	id := uuid.New()
	albumID := uuid.New()
	catID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(selectMusics + "WHERE m.id = $1 ORDER BY m.created_at DESC LIMIT 1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(musicRowColumns).
			AddRow(id.String(), "Teardrop", 330, false, false, now, albumID.String(), catID.String(), "ELECTRONIC",
				int64(4), "Massive", "massive@example.com", "hash", "MUSICIAN", false, now))
	mock.ExpectQuery(regexp.QuoteMeta(selectAlbums + "WHERE a.id = ANY($1) ORDER BY a.created_at DESC")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(albumRowColumns).
			AddRow(albumID.String(), "Mezzanine", now, int64(4), "Massive", "massive@example.com", "hash", "MUSICIAN", false, now))
	mock.ExpectQuery(regexp.QuoteMeta(selectAlbumTracks)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(trackRowColumns).
			AddRow(id.String(), "Teardrop", 330, false, false, now, albumID.String(), catID.String(), "ELECTRONIC").
			AddRow(uuid.NewString(), "Angel", 380, false, false, now, albumID.String(), catID.String(), "ELECTRONIC"))

	got, err := s.Musics().FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.Album == nil || got.Album.Name != "Mezzanine" || len(got.Album.Musics) != 2 {
		t.Fatalf("expected album with two tracks, got %#v", got.Album)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMusicUpdateNotFound(t *testing.T) {
	s, mock := newMockStore(t)
	id := uuid.New()
	catID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(updateMusic)).
		WithArgs(id, "x", 1, false, true, catID, uuid.NullUUID{}).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.Musics().Update(context.Background(), &models.Music{
		ID:       id,
		Name:     "x",
		Duration: 1,
		Disabled: true,
		Category: &models.Category{ID: catID},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAlbumRegister(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(insertAlbum)).
		WithArgs(sqlmock.AnyArg(), "Felt", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	got, err := s.Albums().Register(context.Background(), &models.Album{Name: "Felt", Musician: &models.Musician{ID: 3}})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if got.ID == uuid.Nil || got.OwnerID() != 3 || len(got.Musics) != 0 {
		t.Fatalf("unexpected album %#v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAlbumFindAllByMusician(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM albums a WHERE a.musician_id = $1 AND a.name ILIKE $2 ESCAPE '\'`)).
		WithArgs(int64(3), "%fel%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(regexp.QuoteMeta(selectAlbums + `WHERE a.musician_id = $1 AND a.name ILIKE $2 ESCAPE '\' ORDER BY a.created_at DESC LIMIT $3 OFFSET $4`)).
		WithArgs(int64(3), "%fel%", 10, 0).
		WillReturnRows(sqlmock.NewRows(albumRowColumns))

	page, err := s.Albums().FindAllByMusician(context.Background(), paging.Normalize(1, 10), 3, " fel ")
	if err != nil {
		t.Fatalf("FindAllByMusician error: %v", err)
	}
	if page.Total != 0 || len(page.Items) != 0 {
		t.Fatalf("unexpected page %#v", page)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlaylistFindByIDMissing(t *testing.T) {
	s, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(selectPlaylistByID)).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	got, err := s.Playlists().FindByID(context.Background(), id)
	if got != nil || err != nil {
		t.Fatalf("expected nil, nil; got %#v, %v", got, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlaylistFindByIDWithEntries(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now().UTC()
	id := uuid.New()
	entryID := uuid.New()
	musicID := uuid.New()
	catID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(selectPlaylistByID)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "cover_image", "sort_order", "disabled", "created_at", "updated_at",
			"user_id", "user_name", "email", "password_hash", "role", "user_disabled", "user_created_at",
		}).AddRow(id.String(), "Late Night", "cover.png", 1, false, now, now,
			int64(7), "Jordan", "jordan@example.com", "hash", "USER", false, now))
	mock.ExpectQuery(regexp.QuoteMeta(selectPlaylistEntries)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "playlist_id", "music_id", "position", "disabled", "created_at"}).
			AddRow(entryID.String(), id.String(), musicID.String(), 0, true, now))
	mock.ExpectQuery(regexp.QuoteMeta(selectMusics + "WHERE m.id = $1 ORDER BY m.created_at DESC LIMIT 1")).
		WithArgs(musicID).
		WillReturnRows(sqlmock.NewRows(musicRowColumns).
			AddRow(musicID.String(), "Kerala", 250, true, false, now, nil, catID.String(), "ELECTRONIC",
				int64(2), "Bonobo", "bonobo@example.com", "hash", "MUSICIAN", false, now))

	got, err := s.Playlists().FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.User == nil || got.User.ID != 7 || len(got.Musics) != 1 {
		t.Fatalf("unexpected playlist %#v", got)
	}
	entry := got.Musics[0]
	if !entry.Disabled || entry.Music == nil || entry.Music.Disabled || entry.Music.Name != "Kerala" {
		t.Fatalf("unexpected entry %#v", entry)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlaylistUpdateNotFound(t *testing.T) {
	s, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(updatePlaylist)).
		WithArgs(id, "Mix", "", 0, true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := s.Playlists().Update(context.Background(), &models.Playlist{ID: id, Name: "Mix", Disabled: true}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
