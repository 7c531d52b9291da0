/*
Package feeregistry manages the editable, per-asset fee lines (registration,
legal, platform and brokerage) that override the static catalog.

Usage:

	reg := feeregistry.New(assetID, store)

	entry, err := reg.Add(ctx, feeregistry.Input{
	    Name:         "Stamp Duty",
	    Value:        1.5,
	    IsPercentage: true,
	    Type:         models.AssetFeeTypeRegistration,
	})

	legal := models.AssetFeeTypeLegal
	entry, err = reg.Edit(ctx, entry.ID, feeregistry.Patch{Type: &legal})

	err = reg.Remove(ctx, entry.ID)

Error Handling:

- ErrEmptyName, ErrNegativeValue, ErrPercentageExceeds100, ErrInvalidValue, ErrInvalidFeeType: validation
- ErrEntryNotFound: unknown id
- ErrEntryBusy: another mutation of the same id is still waiting on the store
- ErrBackingStore: the store call failed; the original cause is wrapped as well

The registry never keeps an entry the store rejected and never applies an
update or delete the store did not confirm.
*/
package feeregistry
