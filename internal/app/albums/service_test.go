package albums

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"musicroot/internal/app/apperr"
	"musicroot/internal/app/data"
	"musicroot/internal/models"
	"musicroot/internal/store/memory"
)

type fixture struct {
	store    *memory.Store
	svc      Service
	category models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := memory.New()
	categories := st.SeedCategories()
	return &fixture{
		store:    st,
		svc:      New(st.Musicians(), st.Albums(), st.Musics()),
		category: categories[models.CategoryRock],
	}
}

func (f *fixture) musician(t *testing.T, name string) *models.Musician {
	t.Helper()

	m, err := f.store.Musicians().Register(context.Background(), &models.Musician{Name: name, Email: name + "@example.com"})
	if err != nil {
		t.Fatalf("register musician: %v", err)
	}
	return m
}

func (f *fixture) music(t *testing.T, owner *models.Musician, name string, album *models.Album) *models.Music {
	t.Helper()

	cat := f.category
	m, err := f.store.Musics().Register(context.Background(), &models.Music{
		Name:     name,
		Category: &cat,
		Musician: owner,
		Album:    album,
	})
	if err != nil {
		t.Fatalf("register music: %v", err)
	}
	return m
}

func (f *fixture) albumFor(t *testing.T, owner *models.Musician, name string) *models.Album {
	t.Helper()

	out, err := f.svc.Register(context.Background(), owner.ID, name)
	if err != nil {
		t.Fatalf("register album: %v", err)
	}
	a, err := f.store.Albums().FindByID(context.Background(), out.ID)
	if err != nil || a == nil {
		t.Fatalf("reload album: %v", err)
	}
	return a
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	m := f.musician(t, "portishead")

	out, err := f.svc.Register(context.Background(), m.ID, " Dummy ")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if out.Name != "Dummy" || out.TotalMusics != 0 {
		t.Fatalf("unexpected output %#v", out)
	}

	if _, err := f.svc.Register(context.Background(), m.ID, "Dummy"); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict for duplicate name, got %v", err)
	}
	if _, err := f.svc.Register(context.Background(), m.ID, ""); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	other := f.musician(t, "other")
	if _, err := f.svc.Register(context.Background(), other.ID, "Dummy"); err != nil {
		t.Fatalf("album names are scoped per musician, got %v", err)
	}
}

func TestListOwn(t *testing.T) {
	f := newFixture(t)
	m := f.musician(t, "owner")
	for _, name := range []string{"Third", "Portishead", "Dummy"} {
		f.albumFor(t, m, name)
	}
	f.albumFor(t, f.musician(t, "other"), "Dummy Too")

	out, err := f.svc.ListOwn(context.Background(), m.ID, "", -3, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out.Page != 1 || out.PerPage != 5 || out.TotalItems != 3 {
		t.Fatalf("unexpected page %#v", out)
	}
	if out.Albums[0].Name != "Dummy" {
		t.Fatalf("expected newest first, got %q", out.Albums[0].Name)
	}

	filtered, err := f.svc.ListOwn(context.Background(), m.ID, "dum", 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if filtered.TotalItems != 1 {
		t.Fatalf("expected one match, got %#v", filtered.Albums)
	}
}

func TestInsertMusic(t *testing.T) {
	f := newFixture(t)
	m := f.musician(t, "owner")
	a := f.albumFor(t, m, "OK Computer")
	track := f.music(t, m, "Lucky", nil)

	out, err := f.svc.InsertMusic(context.Background(), m.ID, a.ID, track.ID)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if out.Album == nil || out.Album.ID != a.ID || out.Album.TotalMusics != 1 {
		t.Fatalf("expected music on album, got %#v", out.Album)
	}

	again, err := f.svc.InsertMusic(context.Background(), m.ID, a.ID, track.ID)
	if err != nil {
		t.Fatalf("expected repeated insert on the same album to succeed, got %v", err)
	}
	if again.Album == nil || again.Album.ID != a.ID {
		t.Fatalf("unexpected album %#v", again.Album)
	}
}

func TestInsertMusicOnAnotherAlbumConflicts(t *testing.T) {
	f := newFixture(t)
	m := f.musician(t, "owner")
	first := f.albumFor(t, m, "A")
	second := f.albumFor(t, m, "B")
	track := f.music(t, m, "Song", first)

	if _, err := f.svc.InsertMusic(context.Background(), m.ID, second.ID, track.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	reloaded, err := f.store.Musics().FindByID(context.Background(), track.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if id, ok := reloaded.AlbumID(); !ok || id != first.ID {
		t.Fatalf("album reference changed to %v", id)
	}
}

func TestInsertMusicDuplicateNameConflicts(t *testing.T) {
	f := newFixture(t)
	m := f.musician(t, "owner")
	a := f.albumFor(t, m, "A")
	f.music(t, m, "Intro", a)
	loose := f.music(t, m, "Intro", nil)

	if _, err := f.svc.InsertMusic(context.Background(), m.ID, a.ID, loose.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestInsertMusicOwnership(t *testing.T) {
	f := newFixture(t)
	five := f.musician(t, "five")
	nine := f.musician(t, "nine")
	albumOfNine := f.albumFor(t, nine, "Theirs")
	albumOfFive := f.albumFor(t, five, "Mine")
	musicOfFive := f.music(t, five, "M1", nil)
	musicOfNine := f.music(t, nine, "M2", nil)

	tests := []struct {
		name    string
		albumID uuid.UUID
		musicID uuid.UUID
	}{
		{name: "album not owned", albumID: albumOfNine.ID, musicID: musicOfFive.ID},
		{name: "music not owned", albumID: albumOfFive.ID, musicID: musicOfNine.ID},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.InsertMusic(context.Background(), five.ID, tc.albumID, tc.musicID); !errors.Is(err, apperr.ErrForbidden) {
				t.Fatalf("expected forbidden, got %v", err)
			}
		})
	}
}

func TestInsertMusicNotFound(t *testing.T) {
	f := newFixture(t)
	m := f.musician(t, "owner")
	a := f.albumFor(t, m, "A")
	track := f.music(t, m, "Song", nil)

	if _, err := f.svc.InsertMusic(context.Background(), m.ID, uuid.New(), track.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected missing album, got %v", err)
	}
	if _, err := f.svc.InsertMusic(context.Background(), m.ID, a.ID, uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected missing music, got %v", err)
	}
	if _, err := f.svc.InsertMusic(context.Background(), m.ID, uuid.Nil, track.ID); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRemoveMusic(t *testing.T) {
	f := newFixture(t)
	m := f.musician(t, "owner")
	a := f.albumFor(t, m, "A")
	track := f.music(t, m, "Song", a)

	out, err := f.svc.RemoveMusic(context.Background(), m.ID, track.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if out.Album != nil {
		t.Fatalf("expected no album, got %#v", out.Album)
	}

	if _, err := f.svc.RemoveMusic(context.Background(), m.ID, track.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict for music without album, got %v", err)
	}

	intruder := f.musician(t, "intruder")
	if _, err := f.svc.RemoveMusic(context.Background(), intruder.ID, track.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

type racingAlbums struct {
	*memory.Albums
}

func (racingAlbums) Register(context.Context, *models.Album) (*models.Album, error) {
	return nil, data.ErrDuplicate
}

func TestRegisterDuplicateFromStoreConflicts(t *testing.T) {
	st := memory.New()
	m, err := st.Musicians().Register(context.Background(), &models.Musician{Name: "Nina", Email: "nina@example.com"})
	if err != nil {
		t.Fatalf("register musician: %v", err)
	}

	svc := New(st.Musicians(), racingAlbums{st.Albums()}, st.Musics())
	if _, err := svc.Register(context.Background(), m.ID, "Pastel Blues"); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
