package router_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-companion/internal/config"
	"pet-companion/internal/router"
)

func newServer(t *testing.T) (*httptest.Server, *router.App) {
	t.Helper()

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Backend.BaseURL = ""
	cfg.Backend.DevToken = "dev-token"
	cfg.Backend.DevScanLimit = 1
	cfg.Storage.Driver = config.DriverMemory
	cfg.Cloudinary.CloudName = ""

	app, err := router.NewRouter(router.Options{Config: cfg})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(app.Handler)
	t.Cleanup(func() {
		ts.Close()
		app.Refresh.Wait()
		_ = app.Close()
	})
	return ts, app
}

func TestHTTP_EndToEnd_CommunityAndPets(t *testing.T) {
	ts, app := newServer(t)

	// 1) Sin sesión todo lo privado responde 401
	{
		st, body := doReq(t, ts.URL, "GET", "/pets", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without session, got %d body=%s", st, string(body))
		}
	}

	// 2) Login con el token de desarrollo: carga las cinco colecciones
	login(t, ts.URL, "dev-token")
	{
		var feed feedResp
		getJSON(t, ts.URL, "/community", &feed)
		if len(feed.Items) != 5 {
			t.Fatalf("expected 5 seeded listings after login, got %d", len(feed.Items))
		}
	}

	// 3) Filtros: por tag, cerca mío y búsqueda que apaga cerca mío
	{
		var feed feedResp
		getJSON(t, ts.URL, "/community?tag=lost", &feed)
		if len(feed.Items) != 2 {
			t.Fatalf("expected 2 lost listings, got %d", len(feed.Items))
		}

		getJSON(t, ts.URL, "/community?only_nearby=true&location_granted=true&lat=-34.6037&lng=-58.3816", &feed)
		if len(feed.Items) != 4 {
			t.Fatalf("expected 4 nearby listings (La Plata out, no-coords in), got %d", len(feed.Items))
		}

		getJSON(t, ts.URL, "/community?only_nearby=true&location_granted=true&lat=-34.6037&lng=-58.3816&q=toby", &feed)
		if len(feed.Items) != 1 || feed.Items[0].PetName != "Toby" {
			t.Fatalf("expected only Toby, got %#v", feed.Items)
		}
		if feed.Query.OnlyNearby {
			t.Fatalf("search must turn only_nearby off")
		}
	}

	// 4) Alta de mascota: sin foto es error de validación, con foto se crea
	{
		datos := map[string]any{"name": "Milo", "species": "dog", "birth_date": "2020-01-01", "weight_kg": 12}
		st, body := doMultipart(t, ts.URL, "POST", "/pets", datos, nil, nil)
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 without photo, got %d body=%s", st, string(body))
		}
		n := decodeNotice(t, body)
		if n.Modal != "validation" || n.Field != "photo" {
			t.Fatalf("expected validation modal on photo, got %#v", n)
		}
	}
	petID := ""
	{
		datos := map[string]any{"name": "Milo", "species": "dog", "birth_date": "2020-01-01", "weight_kg": 12}
		st, body := doMultipart(t, ts.URL, "POST", "/pets", datos, nil, tinyPNG(t))
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
		}
		var p struct {
			ID        string `json:"id"`
			Condition string `json:"condition"`
		}
		_ = json.Unmarshal(body, &p)
		if p.ID == "" || p.Condition != "Sano" {
			t.Fatalf("unexpected pet %s", string(body))
		}
		petID = p.ID

		var list []map[string]any
		getJSON(t, ts.URL, "/pets", &list)
		if len(list) != 1 {
			t.Fatalf("expected pet list refreshed after create, got %d", len(list))
		}
	}

	// 5) Peso fuera de rango
	{
		datos := map[string]any{"weight_kg": 500}
		st, body := doMultipart(t, ts.URL, "PATCH", "/pets/"+petID, datos, nil, nil)
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 for weight, got %d body=%s", st, string(body))
		}
		if n := decodeNotice(t, body); n.Field != "weight_kg" {
			t.Fatalf("expected weight_kg field, got %#v", n)
		}
	}

	// 6) Publicar perdida, verla en "mías" y borrarla
	lostID := ""
	{
		datos := map[string]any{"pet_name": "Rocky", "description": "Perro marrón", "contact": "11-5555-0100", "lat": -34.60, "lng": -58.38}
		st, body := doMultipart(t, ts.URL, "POST", "/community/lost", datos, nil, tinyPNG(t))
		if st != http.StatusCreated {
			t.Fatalf("expected 201 publish lost, got %d body=%s", st, string(body))
		}

		var feed feedResp
		getJSON(t, ts.URL, "/community?only_mine=true", &feed)
		if len(feed.Items) != 1 || feed.Items[0].Tag != "lost" {
			t.Fatalf("expected my lost listing, got %#v", feed.Items)
		}
		lostID = feed.Items[0].ID
	}
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/community/lost/1", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 deleting someone else's listing, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/ui/actions", map[string]any{
			"type": "ask_delete",
			"ref":  map[string]string{"tag": "lost", "id": lostID},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 ask_delete, got %d", st)
		}
		st, body := doReq(t, ts.URL, "POST", "/ui/actions", map[string]any{"type": "confirm_delete"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 confirm_delete, got %d body=%s", st, string(body))
		}

		var feed feedResp
		getJSON(t, ts.URL, "/community?only_mine=true", &feed)
		if len(feed.Items) != 0 {
			t.Fatalf("expected listing gone after delete, got %d", len(feed.Items))
		}
	}

	// 7) Escaneos: cancelar no hace nada, el segundo análisis supera el cupo
	{
		st, _ := doMultipart(t, ts.URL, "POST", "/scans/food", nil, map[string]string{"cancelled": "true"}, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 for cancelled picker, got %d", st)
		}

		fields := map[string]string{"pet_id": petID}
		st, body := doMultipart(t, ts.URL, "POST", "/scans/food", nil, fields, tinyPNG(t))
		if st != http.StatusOK {
			t.Fatalf("expected 200 first scan, got %d body=%s", st, string(body))
		}

		st, body = doMultipart(t, ts.URL, "POST", "/scans/food", nil, fields, tinyPNG(t))
		if st != http.StatusPaymentRequired {
			t.Fatalf("expected 402 over quota, got %d body=%s", st, string(body))
		}
		if n := decodeNotice(t, body); n.Modal != "upsell" {
			t.Fatalf("expected upsell modal, got %#v", n)
		}
	}

	// 8) Logout vacía la sesión y el estado local
	app.Refresh.Wait()
	{
		st, _ := doReq(t, ts.URL, "POST", "/session/logout", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 logout, got %d", st)
		}
		if len(app.Store.Pets()) != 0 || len(app.Store.Lost()) != 0 {
			t.Fatalf("expected local state cleared on logout")
		}
		st, _ = doReq(t, ts.URL, "GET", "/community", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 after logout, got %d", st)
		}
	}
}

func TestHTTP_LoginRejectsUnknownToken(t *testing.T) {
	ts, _ := newServer(t)

	st, body := doReq(t, ts.URL, "POST", "/session/login", map[string]string{"token": "nope"})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", st, string(body))
	}
	st, _ = doReq(t, ts.URL, "GET", "/session", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected no session, got %d", st)
	}
}

type feedResp struct {
	Items []struct {
		ID      string `json:"id"`
		Tag     string `json:"tag"`
		PetName string `json:"pet_name"`
	} `json:"items"`
	Query struct {
		OnlyNearby bool `json:"only_nearby"`
	} `json:"query"`
}

type notice struct {
	Type    string `json:"type"`
	Modal   string `json:"modal"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func decodeNotice(t *testing.T, body []byte) notice {
	t.Helper()
	var n notice
	if err := json.Unmarshal(body, &n); err != nil {
		t.Fatalf("decode notice: %v body=%s", err, string(body))
	}
	return n
}

func login(t *testing.T, baseURL, token string) {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/session/login", map[string]string{"token": token})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}
}

func getJSON(t *testing.T, baseURL, path string, out any) {
	t.Helper()
	st, body := doReq(t, baseURL, "GET", path, nil)
	if st != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d body=%s", path, st, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("GET %s: decode: %v", path, err)
	}
}

func doReq(t *testing.T, baseURL, method, path string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return send(t, req)
}

// doMultipart manda datos como JSON en "datos", campos sueltos y la foto en "files".
func doMultipart(t *testing.T, baseURL, method, path string, datos any, fields map[string]string, photo []byte) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if datos != nil {
		b, _ := json.Marshal(datos)
		_ = mw.WriteField("datos", string(b))
	}
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if photo != nil {
		part, err := mw.CreateFormFile("files", "photo.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = part.Write(photo)
	}
	_ = mw.Close()

	req, err := http.NewRequest(method, baseURL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return send(t, req)
}

func send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
