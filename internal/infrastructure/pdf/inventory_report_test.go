package pdf

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_DocumentoPDF(t *testing.T) {
	g := NewReportGenerator("test", false)
	out, err := g.Render(context.Background(), "Inventory Report", []string{
		"Company: Acme | Product: Laptop | Quantity: 100 | Date: 2024-03-09 14:05",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.True(t, bytes.Contains(out, []byte("Company: Acme | Product: Laptop | Quantity: 100")))
}

func TestRender_VariasPaginas(t *testing.T) {
	lines := make([]string, 0, 150)
	for i := 0; i < 150; i++ {
		lines = append(lines, fmt.Sprintf("Company: C%d | Product: P%d | Quantity: %d | Date: 2024-01-01 00:00", i, i, i))
	}
	short, err := NewReportGenerator("test", true).Render(context.Background(), "Inventory Report", lines[:1])
	require.NoError(t, err)
	long, err := NewReportGenerator("test", true).Render(context.Background(), "Inventory Report", lines)
	require.NoError(t, err)
	assert.Greater(t, len(long), len(short))
}

func TestRender_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReportGenerator("test", true).Render(ctx, "Inventory Report", []string{"x"})
	assert.ErrorIs(t, err, context.Canceled)
}
