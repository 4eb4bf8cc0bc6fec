package mailer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildMessage(t *testing.T) {
	raw := string(buildMessage("biblioteca@academy.test", Message{
		To:      []string{"prof@academy.test"},
		Subject: "Empréstimos em atraso",
		HTML:    "<p>olá</p>",
	}))

	assert.Contains(t, raw, "From: biblioteca@academy.test\r\n")
	assert.Contains(t, raw, "To: prof@academy.test\r\n")
	assert.Contains(t, raw, "Content-Type: text/html")
	assert.NotContains(t, raw, "Subject: Empréstimos", "assunto com acento deve ser codificado")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>olá</p>"))
}

func TestSMTPMailer_NotConfigured(t *testing.T) {
	m := NewSMTPMailer(Config{}, zap.NewNop())
	err := m.Send(context.Background(), Message{To: []string{"a@b.c"}})
	require.Error(t, err)
}
