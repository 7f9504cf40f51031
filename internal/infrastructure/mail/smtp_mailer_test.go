package mail

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/multitenant-inventory/internal/application/report"
)

type recordingDialer struct {
	raw []byte
	to  []string
	err error
}

func (d *recordingDialer) DialAndSend(msgs ...*gomail.Message) error {
	for _, m := range msgs {
		d.to = append(d.to, m.GetHeader("To")...)
		var buf bytes.Buffer
		if _, err := m.WriteTo(&buf); err != nil {
			return err
		}
		d.raw = buf.Bytes()
	}
	return d.err
}

func TestSend_AdjuntaArchivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory-123.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	d := &recordingDialer{}
	m := &SMTPMailer{from: "no-reply@example.com", dialer: d}
	err := m.Send(context.Background(), report.Mail{
		To: "ops@example.com", Subject: "Inventory Report", Body: "hola",
		AttachmentPath: path, AttachmentName: "inventory.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ops@example.com"}, d.to)
	assert.Contains(t, string(d.raw), "inventory.pdf")
	assert.NotContains(t, string(d.raw), "inventory-123.pdf")
	assert.Contains(t, string(d.raw), "Subject: Inventory Report")
}

func TestSend_ErrorSMTP(t *testing.T) {
	m := &SMTPMailer{from: "no-reply@example.com", dialer: &recordingDialer{err: errors.New("connection refused")}}
	err := m.Send(context.Background(), report.Mail{To: "ops@example.com", Subject: "s", Body: "b"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestSend_ContextoCancelado(t *testing.T) {
	d := &recordingDialer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := (&SMTPMailer{dialer: d}).Send(ctx, report.Mail{To: "ops@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, d.to)
}
