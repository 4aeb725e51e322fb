package core_test

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/bursary/core"
	appfs "github.com/trezcool/bursary/fs"
	"github.com/trezcool/bursary/tests"
)

type receipt struct {
	StudentName   string
	ReceiptNumber string
	BankName      string
	PaymentDate   string
	Amount        string
	TotalPaid     string
	Remaining     string
	Status        string
	Currency      string
}

func TestEmailMessage_Render(t *testing.T) {
	conf := core.NewTestConfig()
	logger := testutil.NewLogger()
	core.ParseEmailTemplates(appfs.FS, conf, logger)
	require.Empty(t, logger.Entries("error"))

	t.Run("templated", func(t *testing.T) {
		msg := &core.EmailMessage{
			To:           []mail.Address{{Address: "ada@test.cd"}},
			TemplateName: "payment_receipt",
			TemplateData: receipt{
				StudentName:   "Ada Lovelace",
				ReceiptNumber: "R-42",
				BankName:      "Rawbank",
				PaymentDate:   "2026-09-01",
				Amount:        "1000.00",
				TotalPaid:     "1000.00",
				Remaining:     "499000.00",
				Status:        "PARTIALLY_PAID",
				Currency:      "XAF",
			},
		}
		require.NoError(t, msg.Render())
		assert.True(t, msg.HasRecipients())
		assert.True(t, msg.HasContent())
		assert.Contains(t, msg.TextContent, "Hello Ada Lovelace")
		assert.Contains(t, msg.TextContent, "499000.00 XAF")
		assert.Contains(t, msg.HTMLContent, "<td>R-42</td>")
	})

	t.Run("missing data", func(t *testing.T) {
		msg := &core.EmailMessage{TemplateName: "payment_receipt", TemplateData: struct{ StudentName string }{"Ada"}}
		assert.Error(t, msg.Render())
	})

	t.Run("plain body", func(t *testing.T) {
		msg := &core.EmailMessage{BodyStr: "hello"}
		require.NoError(t, msg.Render())
		assert.Equal(t, "hello", msg.TextContent)
		assert.Empty(t, msg.HTMLContent)
		assert.False(t, msg.HasRecipients())
	})

	t.Run("unknown template", func(t *testing.T) {
		msg := &core.EmailMessage{TemplateName: "nope"}
		require.NoError(t, msg.Render())
		assert.False(t, msg.HasContent())
	})
}
