package setla

import (
	"context"

	qerrors "github.com/sara-star-quant/setla/internal/errors"
	"github.com/sara-star-quant/setla/pkg/crypto"
	"github.com/sara-star-quant/setla/pkg/metrics"
)

// Health check names returned by HealthChecks.
const (
	HealthCheckPOST     = "post"
	HealthCheckRNG      = "rng"
	HealthCheckPairwise = "pairwise"
)

// HealthChecks returns the self tests of the scheme for registration with a
// metrics.HealthCheck:
//   - post: the power-on known-answer tests passed
//   - rng: the randomness source passes the continuous health check
//   - pairwise: a throwaway key pair round-trips a fixed message
//
// The rng and pairwise checks read from the scheme's randomness source.
func (s *Scheme) HealthChecks() map[string]metrics.CheckFunc {
	return map[string]metrics.CheckFunc{
		HealthCheckPOST: func() error {
			if !crypto.POSTPassed() {
				return qerrors.ErrSelfTestFailed
			}
			return nil
		},
		HealthCheckRNG: func() error {
			if result := crypto.RNGHealthCheck(s.rng); !result.Passed {
				return result.Error
			}
			return nil
		},
		HealthCheckPairwise: func() error {
			kp, err := generateKeyPair(s.params, s.rng)
			if err != nil {
				return err
			}
			defer kp.Zeroize()
			return s.pairwiseConsistency(context.Background(), kp)
		},
	}
}
