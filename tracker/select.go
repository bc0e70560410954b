package tracker

import "roomtiny/internal/log"

// SelectSource attempts the candidates in order and returns the first whose
// Connect succeeds, or nil when none does. The order is the precedence
// rule: the external tracker is listed before the internal fusion provider,
// so it wins when both would connect. Failures are logged once here, not
// retried per frame.
func SelectSource(candidates ...Source) Source {
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if err := c.Connect(); err != nil {
			log.Warn("tracker unavailable", "kind", c.Kind().String(), "err", err)
			continue
		}
		log.Info("tracker connected", "kind", c.Kind().String())
		return c
	}
	log.Info("no tracker connected, manual input only")
	return nil
}
