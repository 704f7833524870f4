package audit

import (
	"context"

	"zenbill/internal/core/appctx"
	"zenbill/internal/core/entity"
)

// EnrichCreatedBy stamps CreatedBy and UpdatedBy from the context user.
// No-op when no user is attached to the context.
func EnrichCreatedBy(ctx context.Context, doc *entity.BaseDocument) {
	userID := appctx.GetUserID(ctx)
	if userID == "" {
		return
	}
	doc.CreatedBy = userID
	doc.UpdatedBy = userID
}

// EnrichUpdatedBy stamps only UpdatedBy from the context user.
func EnrichUpdatedBy(ctx context.Context, doc *entity.BaseDocument) {
	userID := appctx.GetUserID(ctx)
	if userID == "" {
		return
	}
	doc.UpdatedBy = userID
}
