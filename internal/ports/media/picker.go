package media

import "context"

// Photo es una imagen elegida por el usuario (cámara o galería).
type Photo struct {
	Name        string
	ContentType string
	Data        []byte
}

// Result es el resultado de abrir el selector. Cancelled no es un error:
// el usuario cerró el diálogo y la acción debe terminar sin efectos.
type Result struct {
	Photo     Photo
	Cancelled bool
}

// Picked construye un Result con foto.
func Picked(p Photo) Result { return Result{Photo: p} }

// Cancelled construye un Result cancelado.
func Cancelled() Result { return Result{Cancelled: true} }

// Picker abre el selector nativo.
type Picker interface {
	Pick(ctx context.Context) (Result, error)
}
