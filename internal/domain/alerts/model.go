package alerts

import "time"

// DeepLink es la pantalla que abre cualquier notificación push de alertas.
const DeepLink = "/alerts"

// Alert es un aviso del sistema (vacunas, recordatorios, avisos de la comunidad).
type Alert struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	Link      string    `json:"link,omitempty"`
}

// NewUnread devuelve las alertas no leídas de next que no estaban en prev.
func NewUnread(prev, next []Alert) []Alert {
	seen := make(map[string]struct{}, len(prev))
	for _, a := range prev {
		seen[a.ID] = struct{}{}
	}

	var out []Alert
	for _, a := range next {
		if a.Read {
			continue
		}
		if _, ok := seen[a.ID]; ok {
			continue
		}
		out = append(out, a)
	}
	return out
}

// CountUnread cuenta las alertas sin leer.
func CountUnread(items []Alert) int {
	n := 0
	for _, a := range items {
		if !a.Read {
			n++
		}
	}
	return n
}
