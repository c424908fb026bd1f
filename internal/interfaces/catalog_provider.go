package interfaces

import (
	"context"

	"github.com/sheikh-saqib/fitcoin-ledger/internal/models"
)

// CatalogProvider supplies the redeemable items. The ledger never mutates the result.
type CatalogProvider interface {
	List(ctx context.Context) ([]models.CatalogItem, error)
}
