package ports

import (
	"context"
	"io"
)

// LogoStorage puerto de salida hacia el almacenamiento de objetos para los
// logos institucionales.
type LogoStorage interface {
	// UploadLogo sube el archivo y devuelve la URL de lectura.
	UploadLogo(ctx context.Context, objectName, contentType string, r io.Reader, size int64) (string, error)
}
