package ledger

import "errors"

var (
	// ErrInvalidMultiplier indicates a bonus multiplier that is zero or negative.
	ErrInvalidMultiplier = errors.New("bonus multiplier must be positive")
	// ErrMultiplierTooLarge indicates a multiplier whose award exceeds MaxAwardPoints.
	ErrMultiplierTooLarge = errors.New("bonus multiplier too large")
	// ErrPointsOverflow indicates an award that would push the balance past the int range.
	ErrPointsOverflow = errors.New("points balance would overflow")
	// ErrStoreUnavailable indicates the snapshot could not be read back before a write.
	ErrStoreUnavailable = errors.New("snapshot store unavailable")
	// ErrMissingStore indicates a ledger was opened without a snapshot store.
	ErrMissingStore = errors.New("snapshot store is required")
	// ErrMissingCatalog indicates a ledger was opened without a catalog provider.
	ErrMissingCatalog = errors.New("catalog provider is required")
)
