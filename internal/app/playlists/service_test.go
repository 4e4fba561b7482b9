package playlists

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"musicroot/internal/app/apperr"
	"musicroot/internal/models"
	"musicroot/internal/store/memory"
)

type fixture struct {
	store    *memory.Store
	svc      Service
	musician *models.Musician
	category models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := memory.New()
	categories := st.SeedCategories()
	musician, err := st.Musicians().Register(context.Background(), &models.Musician{Name: "Bonobo", Email: "bonobo@example.com"})
	if err != nil {
		t.Fatalf("register musician: %v", err)
	}

	return &fixture{
		store:    st,
		svc:      New(st.Users(), st.Playlists(), st.PlaylistMusics(), st.Musics()),
		musician: musician,
		category: categories[models.CategoryJazz],
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()

	u, err := f.store.Users().Register(context.Background(), &models.User{Name: name, Email: name + "@example.com", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("register user: %v", err)
	}
	return u
}

func (f *fixture) music(t *testing.T, name string, disabled bool) *models.Music {
	t.Helper()

	cat := f.category
	m, err := f.store.Musics().Register(context.Background(), &models.Music{
		Name:     name,
		Disabled: disabled,
		Category: &cat,
		Musician: f.musician,
	})
	if err != nil {
		t.Fatalf("register music: %v", err)
	}
	return m
}

func (f *fixture) playlist(t *testing.T, owner *models.User, name string) uuid.UUID {
	t.Helper()

	out, err := f.svc.Register(context.Background(), owner.ID, NewPlaylist{Name: name, CoverImage: "covers/late.png"})
	if err != nil {
		t.Fatalf("register playlist: %v", err)
	}
	return out.ID
}

func intPtr(v int) *int { return &v }

func TestGetPlaylistOrdersEntriesAndKeepsFlagsApart(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "jordan")
	playlistID := f.playlist(t, owner, "Late Night")

	first := f.music(t, "Kerala", false)
	second := f.music(t, "Cirrus", false)

	// Insert slot 1 before slot 0 so ordering is not insertion order.
	if _, err := f.svc.AddMusic(context.Background(), owner.ID, playlistID, second.ID, intPtr(1)); err != nil {
		t.Fatalf("add second: %v", err)
	}
	added, err := f.svc.AddMusic(context.Background(), owner.ID, playlistID, first.ID, intPtr(0))
	if err != nil {
		t.Fatalf("add first: %v", err)
	}

	var entryAtOne uuid.UUID
	for _, e := range added.Musics {
		if e.Position == 1 {
			entryAtOne = e.ID
		}
	}
	if _, err := f.svc.DisableMusic(context.Background(), owner.ID, playlistID, entryAtOne); err != nil {
		t.Fatalf("disable entry: %v", err)
	}

	// Disable the underlying track of slot 0 directly.
	first.Disabled = true
	if _, err := f.store.Musics().Update(context.Background(), first); err != nil {
		t.Fatalf("disable music: %v", err)
	}

	out, err := f.svc.Get(context.Background(), playlistID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(out.Musics) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out.Musics))
	}
	if out.Musics[0].Position != 0 || out.Musics[1].Position != 1 {
		t.Fatalf("entries out of order: %#v", out.Musics)
	}
	if out.Musics[0].Disabled || !out.Musics[0].Music.Disabled {
		t.Fatalf("slot 0 flags mixed up: %#v", out.Musics[0])
	}
	if !out.Musics[1].Disabled || out.Musics[1].Music.Disabled {
		t.Fatalf("slot 1 flags mixed up: %#v", out.Musics[1])
	}
	if out.Musics[1].Music.Category == nil || out.Musics[1].Music.Category.Name != "JAZZ" {
		t.Fatalf("expected embedded category, got %#v", out.Musics[1].Music.Category)
	}
	if out.User == nil || out.User.ID != owner.ID {
		t.Fatalf("expected owner in output, got %#v", out.User)
	}
}

func TestGetFailures(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "jordan")
	playlistID := f.playlist(t, owner, "Archive")

	if _, err := f.svc.Get(context.Background(), uuid.Nil); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := f.svc.Get(context.Background(), uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err := f.svc.Disable(context.Background(), owner.ID, playlistID); err != nil {
		t.Fatalf("disable: %v", err)
	}
	_, err := f.svc.Get(context.Background(), playlistID)
	if !errors.Is(err, apperr.ErrForbidden) || err.Error() != "Playlist is disabled" {
		t.Fatalf("expected Playlist is disabled, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "jordan")
	disabled := f.user(t, "gone")
	f.store.DisableUser(disabled.ID)

	tests := []struct {
		name    string
		actorID int64
		in      NewPlaylist
		want    error
	}{
		{name: "missing actor", in: NewPlaylist{Name: "x"}, want: apperr.ErrInvalidInput},
		{name: "missing name", actorID: owner.ID, in: NewPlaylist{Name: "  "}, want: apperr.ErrInvalidInput},
		{name: "negative order", actorID: owner.ID, in: NewPlaylist{Name: "x", Order: -1}, want: apperr.ErrInvalidInput},
		{name: "unknown user", actorID: 999, in: NewPlaylist{Name: "x"}, want: apperr.ErrNotFound},
		{name: "disabled user", actorID: disabled.ID, in: NewPlaylist{Name: "x"}, want: apperr.ErrForbidden},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.Register(context.Background(), tc.actorID, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	out, err := f.svc.Register(context.Background(), owner.ID, NewPlaylist{Name: "Focus", Order: 2})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if out.Name != "Focus" || out.Order != 2 || out.Disabled || len(out.Musics) != 0 {
		t.Fatalf("unexpected output %#v", out)
	}
}

func TestAddMusic(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "jordan")
	intruder := f.user(t, "intruder")
	playlistID := f.playlist(t, owner, "Mix")
	track := f.music(t, "Flashlight", false)
	muted := f.music(t, "Muted", true)

	out, err := f.svc.AddMusic(context.Background(), owner.ID, playlistID, track.ID, nil)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(out.Musics) != 1 || out.Musics[0].Position != 0 {
		t.Fatalf("expected slot 0, got %#v", out.Musics)
	}

	out, err = f.svc.AddMusic(context.Background(), owner.ID, playlistID, track.ID, intPtr(4))
	if err != nil {
		t.Fatalf("add at 4: %v", err)
	}
	out, err = f.svc.AddMusic(context.Background(), owner.ID, playlistID, track.ID, nil)
	if err != nil {
		t.Fatalf("append after 4: %v", err)
	}
	if got := out.Musics[len(out.Musics)-1].Position; got != 5 {
		t.Fatalf("expected append at 5, got %d", got)
	}

	tests := []struct {
		name     string
		actorID  int64
		playlist uuid.UUID
		music    uuid.UUID
		position *int
		want     error
	}{
		{name: "taken position", actorID: owner.ID, playlist: playlistID, music: track.ID, position: intPtr(4), want: apperr.ErrConflict},
		{name: "negative position", actorID: owner.ID, playlist: playlistID, music: track.ID, position: intPtr(-1), want: apperr.ErrInvalidInput},
		{name: "not owner", actorID: intruder.ID, playlist: playlistID, music: track.ID, want: apperr.ErrForbidden},
		{name: "disabled music", actorID: owner.ID, playlist: playlistID, music: muted.ID, want: apperr.ErrForbidden},
		{name: "unknown music", actorID: owner.ID, playlist: playlistID, music: uuid.New(), want: apperr.ErrNotFound},
		{name: "unknown playlist", actorID: owner.ID, playlist: uuid.New(), music: track.ID, want: apperr.ErrNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.AddMusic(context.Background(), tc.actorID, tc.playlist, tc.music, tc.position); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDisableMusic(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "jordan")
	playlistID := f.playlist(t, owner, "Mix")
	otherID := f.playlist(t, owner, "Other")
	track := f.music(t, "Flashlight", false)

	out, err := f.svc.AddMusic(context.Background(), owner.ID, playlistID, track.ID, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	entryID := out.Musics[0].ID

	for i := 0; i < 2; i++ {
		out, err = f.svc.DisableMusic(context.Background(), owner.ID, playlistID, entryID)
		if err != nil {
			t.Fatalf("disable #%d: %v", i+1, err)
		}
		if !out.Musics[0].Disabled {
			t.Fatalf("expected entry disabled after call #%d", i+1)
		}
	}

	if _, err := f.svc.DisableMusic(context.Background(), owner.ID, otherID, entryID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected entry from another playlist to be not found, got %v", err)
	}
}

func TestDisableIsIdempotent(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "jordan")
	intruder := f.user(t, "intruder")
	playlistID := f.playlist(t, owner, "Mix")

	if _, err := f.svc.Disable(context.Background(), intruder.ID, playlistID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	first, err := f.svc.Disable(context.Background(), owner.ID, playlistID)
	if err != nil {
		t.Fatalf("first disable: %v", err)
	}
	second, err := f.svc.Disable(context.Background(), owner.ID, playlistID)
	if err != nil {
		t.Fatalf("second disable: %v", err)
	}
	if !first.Disabled || !second.Disabled || first.ID != second.ID {
		t.Fatalf("expected same disabled state, got %#v and %#v", first, second)
	}

	track := f.music(t, "Late", false)
	if _, err := f.svc.AddMusic(context.Background(), owner.ID, playlistID, track.ID, nil); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected disabled playlist to reject new music, got %v", err)
	}
}
