// Package adapt implements a computerized adaptive testing (CAT) engine
// built on the two-parameter logistic IRT model, with Bayesian knowledge
// tracing (BKT) for per-skill mastery estimation.
//
// adapt provides a pure-Go Session that selects the statistically most
// informative next item for a test-taker, re-estimates latent ability after
// every response via Newton-Raphson maximum likelihood, and maintains a
// per-skill mastery probability. The adapt/calibrate subpackage fits item
// parameters from historical response logs.
//
// Basic usage:
//
//	bank, err := adapt.NewItemBank(items)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sess, err := adapt.NewSession(bank, adapt.CATConfig{MaxItems: 20, SEStop: 0.3}, adapt.DefaultBKTParams)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for {
//	    item, ok := sess.NextItem()
//	    if !ok {
//	        break
//	    }
//	    if _, err := sess.RecordResponse(item.ID, askUser(item)); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	result, err := sess.Finalize()
package adapt
