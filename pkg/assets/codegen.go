package assets

import (
	"fmt"
	"strconv"
)

// seedAssetCode is emitted when no asset exists yet.
const seedAssetCode = "TS00001"

// nextAssetCode derives the next code from the most recently created
// asset's code: the two-letter prefix is kept and the numeric suffix is
// incremented, zero-padded to five digits. A malformed code fails fast
// rather than silently producing a bad one.
func nextAssetCode(lastCode string) (string, error) {
	if lastCode == "" {
		return seedAssetCode, nil
	}
	if len(lastCode) < 3 {
		return "", fmt.Errorf("asset code %q is too short to increment", lastCode)
	}

	prefix := lastCode[:2]
	n, err := strconv.Atoi(lastCode[2:])
	if err != nil {
		return "", fmt.Errorf("asset code %q has a non-numeric suffix: %w", lastCode, err)
	}

	return fmt.Sprintf("%s%05d", prefix, n+1), nil
}
