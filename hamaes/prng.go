package hamaes

import "github.com/tuneinsight/lattigo/v4/utils"

// NewSeedStream returns a deterministic byte stream keyed by seed. The
// fault-sweep rig and the randomized tests derive keys, plaintexts and
// fault sites from it so experiments replay exactly.
func NewSeedStream(seed []byte) (utils.PRNG, error) {
	return utils.NewKeyedPRNG(seed)
}
