package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-companion/internal/domain/community"
	"pet-companion/internal/domain/pets"
	"pet-companion/internal/platform/apperrors"
	"pet-companion/internal/ports/media"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, h http.Handler) (*Client, func()) {
	t.Helper()
	ts := httptest.NewServer(h)
	c, err := NewClient(Config{BaseURL: ts.URL, Timeout: time.Second}, staticToken("tok"), nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, ts.Close
}

func TestMapErr_Taxonomy(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/alerts", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/api/scans/food", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"code":"QUOTA_EXCEEDED","message":"Sin intentos"}`))
	})
	mux.HandleFunc("/api/pets", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"db down"}`))
	})

	c, done := newTestClient(t, mux)
	defer done()

	cleared := 0
	c.OnUnauthorized(func() { cleared++ })
	ctx := context.Background()

	if _, err := NewAlertsRepo(c).List(ctx); apperrors.KindOf(err) != apperrors.KindUnauthorized || cleared != 1 {
		t.Fatalf("expected unauthorized + session cleared, got %v cleared=%d", err, cleared)
	}

	_, err := NewAnalyzer(c).Analyze(ctx, "food", "", media.Photo{Name: "x.jpg", Data: []byte("x")})
	if apperrors.KindOf(err) != apperrors.KindQuotaExceeded {
		t.Fatalf("expected quota, got %v", err)
	}

	_, err = NewPetsRepo(c).ListByOwner(ctx, "u1")
	if n, st := apperrors.NoticeFrom(err); n.Message != "db down" || st != http.StatusBadGateway {
		t.Fatalf("expected server notice with backend message, got %#v %d", n, st)
	}
}

func TestMapErr_Network(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c, _ := NewClient(Config{BaseURL: url, Timeout: time.Second}, staticToken("tok"), nil)
	_, err := NewCommunityRepo(c).ListLost(context.Background())
	if apperrors.KindOf(err) != apperrors.KindNetwork {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestCommunityRepo_ListAndPublish(t *testing.T) {
	var gotAuth, gotDatos string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/lost-pets", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`[{"id":7,"user_id":3,"pet_name":"Tom","lat":"-34.6","lng":null,"contact":"11"}]`))
			return
		}
		_ = r.ParseMultipartForm(1 << 20)
		gotDatos = r.FormValue("datos")
		w.WriteHeader(http.StatusCreated)
	})

	c, done := newTestClient(t, mux)
	defer done()
	repo := NewCommunityRepo(c)
	ctx := context.Background()

	lost, err := repo.ListLost(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	it := community.Normalize(lost[0], community.TagLost)
	if it.ID != "7" || it.OwnerID != "3" || it.Lng != "" || gotAuth != "Bearer tok" {
		t.Fatalf("unexpected item %#v auth=%q", it, gotAuth)
	}

	err = repo.PublishLost(ctx, community.LostDTO{PetName: "Milo", Description: "collar"}, &media.Photo{Name: "m.jpg", Data: []byte("j")})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	var sent map[string]any
	if err := json.Unmarshal([]byte(gotDatos), &sent); err != nil || sent["pet_name"] != "Milo" {
		t.Fatalf("expected datos json, got %q", gotDatos)
	}
}

func TestPetsRepo_DecodesLooseIDs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/pets", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":12,"user_id":"u1","name":"Milo","species":"perro","birth_date":"2020-03-01T00:00:00.000000Z","weight_kg":12.5}]`))
	})
	c, done := newTestClient(t, mux)
	defer done()

	got, err := NewPetsRepo(c).ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := pets.Pet{ID: "12", OwnerID: "u1", Name: "Milo", Species: pets.SpeciesDog, BirthDate: "2020-03-01", WeightKg: 12.5}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("unexpected pets %#v", got)
	}
}

func TestPetsRepo_FillsOwnerWhenBackendOmitsIt(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/pets", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Milo"},
			{"id": 2, "user_id": "otro", "name": "Luna"},
		})
	})
	c, done := newTestClient(t, mux)
	defer done()

	list, err := NewPetsRepo(c).ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].OwnerID != "u1" || list[1].OwnerID != "otro" {
		t.Fatalf("unexpected owners %#v", list)
	}
}
