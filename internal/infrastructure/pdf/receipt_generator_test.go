package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

func TestGenerateReceipt(t *testing.T) {
	order := &entity.Order{
		ID:        "66a1f0c2e4b0a1b2c3d4e5f6",
		Status:    entity.StatusApproved,
		Total:     decimal.NewFromInt(8500),
		Discount:  decimal.NewFromInt(500),
		CreatedAt: time.Date(2026, 5, 4, 15, 30, 0, 0, time.UTC),
		Items: []entity.OrderItem{
			{ProductName: "Acetaminofén 500mg", Quantity: 2, Price: decimal.NewFromInt(1500)},
			{ProductName: "Suero oral", Quantity: 1, Price: decimal.NewFromInt(6000)},
		},
	}

	out, err := NewMarotoReceiptGenerator().GenerateReceipt(context.Background(), "Farmacia Central", order, "Pedro")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceipt_OrdenNil(t *testing.T) {
	_, err := NewMarotoReceiptGenerator().GenerateReceipt(context.Background(), "Farmacia", nil, "")
	assert.Error(t, err)
}
