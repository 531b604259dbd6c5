package cart

import (
	"context"
	"net/http"

	"github.com/dishpatch/dishpatch-backend/api/middleware"
	"github.com/dishpatch/dishpatch-backend/api/responses"
	"github.com/dishpatch/dishpatch-backend/api/validators"
	cartsvc "github.com/dishpatch/dishpatch-backend/internal/cart"
	pkgerrors "github.com/dishpatch/dishpatch-backend/pkg/errors"
	"github.com/dishpatch/dishpatch-backend/pkg/logger"
)

// Hydrate returns the session's cart with vendor groups and pricing summary.
func Hydrate(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := requireSession(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.Hydrate(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(*view))
	}
}

// AddItem builds a line item from the posted selection and merges it into
// the cart.
func AddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := requireSession(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.AddItem(ctx, sessionID, toAddItemInput(payload))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newMutationResponse(result))
	}
}

// UpdateQuantity applies a signed delta to an existing cart slot.
func UpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := requireSession(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.UpdateQuantity(ctx, sessionID, payload.ItemKey, payload.Delta)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newMutationResponse(result))
	}
}

// RemoveItem drops the named customization slot from the cart.
func RemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := requireSession(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload RemoveItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.RemoveItem(ctx, sessionID, payload.ItemKey)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newMutationResponse(result))
	}
}

// Clear empties the cart. Clearing an already-empty cart is not an error.
func Clear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := requireSession(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Clear(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newMutationResponse(result))
	}
}

// SetLocation records the delivery zipcode, clearing the cart when it
// actually changes.
func SetLocation(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := requireSession(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload LocationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.InvalidateForLocationChange(ctx, sessionID, payload.Zipcode)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newMutationResponse(result))
	}
}

func requireSession(ctx context.Context) (string, error) {
	sessionID := middleware.SessionIDFromContext(ctx)
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "missing X-Session-Id header")
	}
	return sessionID, nil
}
