package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gamekeeper/internal/logging"
)

func TestLogMailer_WritesLink(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(logging.NewSlogJSON(&buf, "debug"))

	require.NoError(t, m.SendConfirmation(context.Background(), "a@b.io", "http://x/verify?token=t"))
	out := buf.String()
	assert.Contains(t, out, `"to":"a@b.io"`)
	assert.Contains(t, out, `"link":"http://x/verify?token=t"`)
	assert.Contains(t, out, `"module":"mailer"`)
}
