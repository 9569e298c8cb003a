package services

import (
	"context"
	stderrors "errors"

	"stayhub/commands"
	"stayhub/constants"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/store"
)

// authorizer decides whether the caller may touch a loaded property.
type authorizer func(p *models.Property) error

// ownedBy scopes access to one vendor. An empty vendorID is admin access.
// Soft-deleted properties are hidden either way.
func ownedBy(vendorID string) authorizer {
	return func(p *models.Property) error {
		if !p.IsActive || (vendorID != "" && p.VendorID != vendorID) {
			return errors.NotFound("Property not found")
		}
		return nil
	}
}

func activeProperty(p *models.Property) error {
	if !p.IsActive {
		return errors.Validation("Property is not active")
	}
	return nil
}

// mutateProperty is the only write path for rooms and beds: load, check,
// apply, compare-and-swap. A lost version race reloads and re-applies, so
// a bed claim always re-checks availability against fresh state.
func mutateProperty(ctx context.Context, st store.Store, id string, auth authorizer, cmd commands.BedCommand) (*models.Property, error) {
	for attempt := 1; ; attempt++ {
		p, err := st.Properties().Get(ctx, id)
		if err != nil {
			return nil, storeErr(err, "Property not found")
		}
		if auth != nil {
			if err := auth(p); err != nil {
				return nil, err
			}
		}
		if err := cmd.Apply(p); err != nil {
			return nil, err
		}
		err = st.Properties().Save(ctx, p)
		if err == nil {
			return p, nil
		}
		if !stderrors.Is(err, store.ErrVersionConflict) {
			return nil, storeErr(err, "Property not found")
		}
		if attempt >= constants.MaxClaimAttempts {
			return nil, errors.Conflict("Property was modified by another request, please retry")
		}
	}
}

// storeErr maps persistence errors onto AppErrors.
func storeErr(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.IsAppError(err):
		return err
	case stderrors.Is(err, store.ErrNotFound):
		return errors.NotFound(notFound)
	case stderrors.Is(err, store.ErrDuplicate):
		return errors.Conflict("Record already exists")
	case stderrors.Is(err, store.ErrVersionConflict):
		return errors.Conflict("Record was modified by another request, please retry")
	default:
		return errors.Internal("Database error", err)
	}
}

func isNotFound(err error) bool {
	return errors.HasCode(err, errors.ErrCodeNotFound)
}

func isStoreNotFound(err error) bool {
	return stderrors.Is(err, store.ErrNotFound)
}
