package report

import "context"

// Renderer convierte las líneas del informe en un documento PDF.
type Renderer interface {
	Render(ctx context.Context, title string, lines []string) ([]byte, error)
}

// Mail mensaje con un archivo adjunto tomado del disco.
type Mail struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string
	AttachmentName string
}

// Mailer puerto de envío de correo (implementado con SMTP).
type Mailer interface {
	Send(ctx context.Context, msg Mail) error
}
