// Package predictors provides an embeddable net/http handler that serves
// the built-in predictor catalog as JSON: the predictor directory, the
// per-predictor descriptor set, and the inferred form model.
//
// The default handler responds to GET and HEAD requests under
// /api/predictors, with {id}/fields and {id}/form subroutes. It exists for
// static deployments that run without a scoring service.
package predictors
